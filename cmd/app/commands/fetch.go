package commands

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	customValidation "github.com/allisson/cachevault/internal/validation"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
	"github.com/allisson/cachevault/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/cachevault/internal/vault/usecase"
)

// RunFetch decrypts an entry and prints it. Attributes are included only when
// withAttributes is set.
//
// Text output:
//
//	Value: s3cret
//	Expired At: 2030-01-02T03:04:05Z
//	Attributes:
//	  env=prod
//	  owner=ops
//
// The expiry line is omitted when the entry has none. JSON output is the same body
// the HTTP API returns for GET /v1/entries/:namespace/:key.
func RunFetch(
	ctx context.Context,
	vaultUseCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	namespace, keyName string,
	withAttributes bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	path := dto.EntryPath{Namespace: namespace, KeyName: keyName}
	if err := path.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	var (
		secret *vaultDomain.Secret
		err    error
	)
	if withAttributes {
		secret, err = vaultUseCase.FetchWithAttributes(ctx, namespace, keyName)
	} else {
		secret, err = vaultUseCase.Fetch(ctx, namespace, keyName)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch entry: %w", err)
	}

	logger.Debug("entry fetched", slog.String("namespace", namespace), slog.String("key", keyName))

	if format == formatJSON {
		return writeJSON(ioTuple.Writer, dto.MapSecretToEntryResponse(namespace, keyName, secret))
	}

	outputSecretText(ioTuple, secret)
	return nil
}

// outputSecretText prints the secret in human-readable form with attributes sorted by name.
func outputSecretText(ioTuple IOTuple, secret *vaultDomain.Secret) {
	_, _ = fmt.Fprintf(ioTuple.Writer, "Value: %s\n", secret.Value)
	if secret.ExpiredAt != nil {
		_, _ = fmt.Fprintf(ioTuple.Writer, "Expired At: %s\n", secret.ExpiredAt.UTC().Format(time.RFC3339))
	}
	if len(secret.Attributes) == 0 {
		return
	}
	_, _ = fmt.Fprintln(ioTuple.Writer, "Attributes:")
	for _, name := range slices.Sorted(maps.Keys(secret.Attributes)) {
		_, _ = fmt.Fprintf(ioTuple.Writer, "  %s=%s\n", name, secret.Attributes[name])
	}
}
