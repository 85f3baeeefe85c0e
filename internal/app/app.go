package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/allisson/cachevault/internal/config"
	"github.com/allisson/cachevault/internal/database"
)

// Open validates cfg, builds the container, connects to the database and applies
// pending schema migrations. The returned container must be released with Shutdown.
func Open(ctx context.Context, cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	container := NewContainer(cfg)

	db, err := container.DB()
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to migrate database: %w", err),
			container.Shutdown(ctx),
		)
	}

	return container, nil
}
