package commands

import (
	"context"
	"fmt"
	"log/slog"

	customValidation "github.com/allisson/cachevault/internal/validation"
	"github.com/allisson/cachevault/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/cachevault/internal/vault/usecase"
)

// RunDelete removes an entry and all of its attributes.
func RunDelete(
	ctx context.Context,
	vaultUseCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	namespace, keyName string,
) error {
	path := dto.EntryPath{Namespace: namespace, KeyName: keyName}
	if err := path.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	if err := vaultUseCase.Delete(ctx, namespace, keyName); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	logger.Info("entry deleted", slog.String("namespace", namespace), slog.String("key", keyName))
	_, _ = fmt.Fprintf(ioTuple.Writer, "Entry deleted: %s/%s\n", namespace, keyName)
	return nil
}
