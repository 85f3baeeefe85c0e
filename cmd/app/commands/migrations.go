package commands

import (
	"context"
	"log/slog"

	"github.com/allisson/cachevault/internal/app"
	"github.com/allisson/cachevault/internal/config"
)

// RunMigrations opens the configured database and applies every pending migration.
// Running it against an up to date schema is a no-op.
func RunMigrations(ctx context.Context, cfg *config.Config) error {
	container, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}

	logger := container.Logger()
	defer closeContainer(container, logger)

	logger.Info("migrations completed", slog.String("driver", cfg.DBDriver))
	return nil
}
