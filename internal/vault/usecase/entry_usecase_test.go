package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
	cryptoServiceMocks "github.com/allisson/cachevault/internal/crypto/service/mocks"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
	vaultUsecaseMocks "github.com/allisson/cachevault/internal/vault/usecase/mocks"
)

func TestEntryUseCase_Upsert(t *testing.T) {
	ctx := context.Background()
	payload := cryptoDomain.EncryptedPayload{
		Ciphertext: []byte("ciphertext"),
		Nonce:      []byte("nonce-12byte"),
	}

	t.Run("Success_EncryptsBeforeWriting", func(t *testing.T) {
		mockCodec := cryptoServiceMocks.NewMockCodec(t)
		mockRepo := vaultUsecaseMocks.NewMockEntryRepository(t)
		useCase := NewEntryUseCase(mockRepo, mockCodec)

		local := time.FixedZone("UTC-3", -3*60*60)
		expiredAt := time.Date(2030, 1, 2, 3, 4, 5, 0, local)

		mockCodec.On("Encrypt", ctx, "hunter2").Return(payload, nil).Once()
		mockRepo.On("Upsert", ctx, mock.MatchedBy(func(entry *vaultDomain.Entry) bool {
			return entry.Namespace == "default" &&
				entry.KeyName == "db-password" &&
				string(entry.EncryptedValue) == "ciphertext" &&
				string(entry.Nonce) == "nonce-12byte" &&
				entry.CreatedAt.Equal(entry.UpdatedAt) &&
				entry.CreatedAt.Location() == time.UTC &&
				entry.ExpiredAt != nil &&
				entry.ExpiredAt.Equal(expiredAt) &&
				entry.ExpiredAt.Location() == time.UTC
		})).Return(int64(4), nil).Once()

		id, err := useCase.Upsert(ctx, "default", "db-password", "hunter2", &expiredAt)
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
	})

	t.Run("Error_KeyUnavailable_NothingWritten", func(t *testing.T) {
		mockCodec := cryptoServiceMocks.NewMockCodec(t)
		mockRepo := vaultUsecaseMocks.NewMockEntryRepository(t)
		useCase := NewEntryUseCase(mockRepo, mockCodec)

		mockCodec.On("Encrypt", ctx, "hunter2").
			Return(cryptoDomain.EncryptedPayload{}, cryptoDomain.ErrKeyUnavailable).
			Once()

		_, err := useCase.Upsert(ctx, "default", "db-password", "hunter2", nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyUnavailable)
		mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Error_Repository", func(t *testing.T) {
		mockCodec := cryptoServiceMocks.NewMockCodec(t)
		mockRepo := vaultUsecaseMocks.NewMockEntryRepository(t)
		useCase := NewEntryUseCase(mockRepo, mockCodec)
		repoErr := errors.New("disk full")

		mockCodec.On("Encrypt", ctx, "v").Return(payload, nil).Once()
		mockRepo.On("Upsert", ctx, mock.Anything).Return(int64(0), repoErr).Once()

		_, err := useCase.Upsert(ctx, "default", "k", "v", nil)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestEntryUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := vaultUsecaseMocks.NewMockEntryRepository(t)
		useCase := NewEntryUseCase(mockRepo, cryptoServiceMocks.NewMockCodec(t))
		entry := &vaultDomain.Entry{ID: 1, Namespace: "default", KeyName: "k"}

		mockRepo.On("GetByName", ctx, "default", "k").Return(entry, nil).Once()
		mockRepo.On("GetByID", ctx, int64(1)).Return(entry, nil).Once()

		got, err := useCase.Get(ctx, "default", "k")
		require.NoError(t, err)
		assert.Same(t, entry, got)

		got, err = useCase.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Same(t, entry, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := vaultUsecaseMocks.NewMockEntryRepository(t)
		useCase := NewEntryUseCase(mockRepo, cryptoServiceMocks.NewMockCodec(t))

		mockRepo.On("GetByName", ctx, "default", "missing").Return(nil, vaultDomain.ErrEntryNotFound).Once()

		got, err := useCase.Get(ctx, "default", "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, vaultDomain.ErrEntryNotFound)
	})
}

func TestEntryUseCase_Plaintext(t *testing.T) {
	ctx := context.Background()
	entry := &vaultDomain.Entry{Nonce: []byte("nonce"), EncryptedValue: []byte("ct")}

	t.Run("Success", func(t *testing.T) {
		mockCodec := cryptoServiceMocks.NewMockCodec(t)
		useCase := NewEntryUseCase(vaultUsecaseMocks.NewMockEntryRepository(t), mockCodec)

		mockCodec.On("Decrypt", ctx, entry.Nonce, entry.EncryptedValue).Return("hunter2", nil).Once()

		plaintext, err := useCase.Plaintext(ctx, entry)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", plaintext)
	})

	t.Run("Error_AuthenticationFailedSurfacesUnchanged", func(t *testing.T) {
		mockCodec := cryptoServiceMocks.NewMockCodec(t)
		useCase := NewEntryUseCase(vaultUsecaseMocks.NewMockEntryRepository(t), mockCodec)

		mockCodec.On("Decrypt", ctx, entry.Nonce, entry.EncryptedValue).
			Return("", cryptoDomain.ErrAuthenticationFailed).
			Once()

		plaintext, err := useCase.Plaintext(ctx, entry)
		assert.Empty(t, plaintext)
		assert.Equal(t, cryptoDomain.ErrAuthenticationFailed, err)
	})
}
