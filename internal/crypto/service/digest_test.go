package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

func TestPepperedDigester_Digest(t *testing.T) {
	ctx := context.Background()

	t.Run("deterministic under one pepper", func(t *testing.T) {
		provider := NewSecretKeyProvider(newMemorySecretStore(), "cache-vault", discardLogger())
		digester := NewPepperedDigester(provider, cryptoDomain.PurposePepper)

		first, err := digester.Digest(ctx, []byte("alice@example.com"))
		require.NoError(t, err)
		second, err := digester.Digest(ctx, []byte("alice@example.com"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("distinct inputs give distinct digests", func(t *testing.T) {
		provider := NewSecretKeyProvider(newMemorySecretStore(), "cache-vault", discardLogger())
		digester := NewPepperedDigester(provider, cryptoDomain.PurposePepper)

		a, err := digester.Digest(ctx, []byte("alice@example.com"))
		require.NoError(t, err)
		b, err := digester.Digest(ctx, []byte("bob@example.com"))
		require.NoError(t, err)
		empty, err := digester.Digest(ctx, nil)
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
		assert.NotEqual(t, a, empty)
	})

	t.Run("different peppers give different digests", func(t *testing.T) {
		digesterA := NewPepperedDigester(
			NewSecretKeyProvider(newMemorySecretStore(), "cache-vault", discardLogger()),
			cryptoDomain.PurposePepper,
		)
		digesterB := NewPepperedDigester(
			NewSecretKeyProvider(newMemorySecretStore(), "cache-vault", discardLogger()),
			cryptoDomain.PurposePepper,
		)

		a, err := digesterA.Digest(ctx, []byte("value"))
		require.NoError(t, err)
		b, err := digesterB.Digest(ctx, []byte("value"))
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("argon2id with the pepper as salt", func(t *testing.T) {
		pepper := newRandomKey(t, cryptoDomain.KeySize)
		store := newMemorySecretStore()
		store.put("cache-vault", "pepper", EncodeKey(pepper))
		digester := NewPepperedDigester(
			NewSecretKeyProvider(store, "cache-vault", discardLogger()),
			cryptoDomain.PurposePepper,
		)

		got, err := digester.Digest(ctx, []byte("value"))
		require.NoError(t, err)

		want := argon2.IDKey([]byte("value"), pepper, 2, 19456, 1, 32)
		assert.Equal(t, want, got.Bytes())
	})

	t.Run("pepper unavailable", func(t *testing.T) {
		digester := NewPepperedDigester(
			&failingKeyProvider{err: cryptoDomain.ErrSecretStoreUnavailable},
			cryptoDomain.PurposePepper,
		)

		_, err := digester.Digest(ctx, []byte("value"))
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyUnavailable)
		assert.ErrorIs(t, err, cryptoDomain.ErrSecretStoreUnavailable)
	})
}
