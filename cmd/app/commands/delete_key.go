package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
	cryptoService "github.com/allisson/cachevault/internal/crypto/service"
)

// ErrNotConfirmed is returned when the operator does not confirm a key deletion.
var ErrNotConfirmed = errors.New("key deletion not confirmed")

// RunDeleteKey removes key material from the credential store. Unless force is set the
// operator must type the purpose back on ioTuple.Reader.
func RunDeleteKey(
	ctx context.Context,
	provider cryptoService.KeyProvider,
	identity cryptoDomain.KeyringIdentity,
	logger *slog.Logger,
	ioTuple IOTuple,
	purpose string,
	force bool,
) error {
	target := cryptoDomain.Purpose(purpose)
	if target != identity.EncryptionKeyPurpose && target != identity.PepperPurpose {
		return fmt.Errorf(
			"invalid purpose: %s (valid options: %s, %s)",
			purpose,
			identity.EncryptionKeyPurpose,
			identity.PepperPurpose,
		)
	}

	if !force {
		_, _ = fmt.Fprintf(
			ioTuple.Writer,
			"Deleting %q from %q makes every stored value protected by it unreadable.\n",
			purpose,
			identity.Service,
		)
		_, _ = fmt.Fprint(ioTuple.Writer, "Type the purpose to confirm: ")

		if ioTuple.Reader == nil {
			return ErrNotConfirmed
		}
		scanner := bufio.NewScanner(ioTuple.Reader)
		if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != purpose {
			return ErrNotConfirmed
		}
	}

	logger.Info("deleting key material",
		slog.String("service", identity.Service),
		slog.String("purpose", purpose),
		slog.Bool("forced", force),
	)

	if err := provider.Delete(ctx, target); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	_, _ = fmt.Fprintf(ioTuple.Writer, "Key deleted: %s/%s\n", identity.Service, purpose)
	return nil
}
