package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
	"github.com/allisson/cachevault/internal/crypto/service/mocks"
)

func TestRunDeleteKey(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	identity := cryptoDomain.DefaultKeyringIdentity()

	t.Run("forced", func(t *testing.T) {
		provider := mocks.NewMockKeyProvider(t)
		provider.On("Delete", ctx, cryptoDomain.PurposePepper).Return(nil)

		var out bytes.Buffer
		err := RunDeleteKey(ctx, provider, identity, logger, IOTuple{Writer: &out}, "pepper", true)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Key deleted: cache-vault/pepper")
	})

	t.Run("confirmed", func(t *testing.T) {
		provider := mocks.NewMockKeyProvider(t)
		provider.On("Delete", ctx, cryptoDomain.PurposeEncryptionKey).Return(nil)

		var out bytes.Buffer
		ioTuple := IOTuple{Reader: strings.NewReader("encryption-key\n"), Writer: &out}
		err := RunDeleteKey(ctx, provider, identity, logger, ioTuple, "encryption-key", false)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Type the purpose to confirm")
	})

	t.Run("not-confirmed", func(t *testing.T) {
		provider := mocks.NewMockKeyProvider(t)

		ioTuple := IOTuple{Reader: strings.NewReader("yes\n"), Writer: &bytes.Buffer{}}
		err := RunDeleteKey(ctx, provider, identity, logger, ioTuple, "pepper", false)
		assert.ErrorIs(t, err, ErrNotConfirmed)
	})

	t.Run("unknown-purpose", func(t *testing.T) {
		provider := mocks.NewMockKeyProvider(t)

		err := RunDeleteKey(ctx, provider, identity, logger, IOTuple{Writer: &bytes.Buffer{}}, "other", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid purpose")
	})

	t.Run("provider-error", func(t *testing.T) {
		provider := mocks.NewMockKeyProvider(t)
		storeErr := errors.New("keyring locked")
		provider.On("Delete", ctx, cryptoDomain.PurposePepper).Return(storeErr)

		err := RunDeleteKey(ctx, provider, identity, logger, IOTuple{Writer: &bytes.Buffer{}}, "pepper", true)
		assert.ErrorIs(t, err, storeErr)
	})
}
