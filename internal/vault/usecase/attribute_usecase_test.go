package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
	cryptoServiceMocks "github.com/allisson/cachevault/internal/crypto/service/mocks"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
	vaultUsecaseMocks "github.com/allisson/cachevault/internal/vault/usecase/mocks"
)

func TestAttributeUseCase_Upsert(t *testing.T) {
	ctx := context.Background()
	payload := cryptoDomain.EncryptedPayload{Ciphertext: []byte("ct"), Nonce: []byte("nonce-12byte")}
	var digest cryptoDomain.Digest
	digest[0] = 0xAB

	t.Run("Success_StoresCiphertextAndDigest", func(t *testing.T) {
		mockRepo := vaultUsecaseMocks.NewMockAttributeRepository(t)
		mockCodec := cryptoServiceMocks.NewMockCodec(t)
		mockDigester := cryptoServiceMocks.NewMockDigester(t)
		useCase := NewAttributeUseCase(mockRepo, mockCodec, mockDigester)

		mockCodec.On("Encrypt", ctx, "alice@example.com").Return(payload, nil).Once()
		mockDigester.On("Digest", ctx, []byte("alice@example.com")).Return(digest, nil).Once()
		mockRepo.On("Upsert", ctx, mock.MatchedBy(func(attribute *vaultDomain.Attribute) bool {
			return attribute.EntryID == 9 &&
				attribute.Name == "email" &&
				string(attribute.EncryptedValue) == "ct" &&
				len(attribute.HashedValue) == cryptoDomain.DigestSize &&
				attribute.HashedValue[0] == 0xAB
		})).Return(int64(21), nil).Once()

		id, err := useCase.Upsert(ctx, 9, "email", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(21), id)
	})

	t.Run("Error_PepperUnavailable", func(t *testing.T) {
		mockRepo := vaultUsecaseMocks.NewMockAttributeRepository(t)
		mockCodec := cryptoServiceMocks.NewMockCodec(t)
		mockDigester := cryptoServiceMocks.NewMockDigester(t)
		useCase := NewAttributeUseCase(mockRepo, mockCodec, mockDigester)

		mockCodec.On("Encrypt", ctx, "v").Return(payload, nil).Once()
		mockDigester.On("Digest", ctx, []byte("v")).
			Return(cryptoDomain.Digest{}, cryptoDomain.ErrKeyUnavailable).
			Once()

		_, err := useCase.Upsert(ctx, 9, "email", "v")
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyUnavailable)
		mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Error_EncryptionFailed", func(t *testing.T) {
		mockRepo := vaultUsecaseMocks.NewMockAttributeRepository(t)
		mockCodec := cryptoServiceMocks.NewMockCodec(t)
		mockDigester := cryptoServiceMocks.NewMockDigester(t)
		useCase := NewAttributeUseCase(mockRepo, mockCodec, mockDigester)

		mockCodec.On("Encrypt", ctx, "v").
			Return(cryptoDomain.EncryptedPayload{}, cryptoDomain.ErrEncryptionFailed).
			Once()

		_, err := useCase.Upsert(ctx, 9, "email", "v")
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionFailed)
	})
}

func TestAttributeUseCase_Lookups(t *testing.T) {
	ctx := context.Background()
	attribute := &vaultDomain.Attribute{ID: 3, EntryID: 9, Name: "email", Nonce: []byte("n"), EncryptedValue: []byte("c")}

	mockRepo := vaultUsecaseMocks.NewMockAttributeRepository(t)
	mockCodec := cryptoServiceMocks.NewMockCodec(t)
	useCase := NewAttributeUseCase(mockRepo, mockCodec, cryptoServiceMocks.NewMockDigester(t))

	mockRepo.On("ListByEntryID", ctx, int64(9)).Return([]*vaultDomain.Attribute{attribute}, nil).Once()
	mockRepo.On("GetByName", ctx, int64(9), "email").Return(attribute, nil).Once()
	mockRepo.On("GetByName", ctx, int64(9), "phone").Return(nil, vaultDomain.ErrAttributeNotFound).Once()
	mockRepo.On("GetByID", ctx, int64(3)).Return(attribute, nil).Once()
	mockCodec.On("Decrypt", ctx, attribute.Nonce, attribute.EncryptedValue).Return("alice@example.com", nil).Once()

	listed, err := useCase.List(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	byName, err := useCase.GetByName(ctx, 9, "email")
	require.NoError(t, err)
	assert.Same(t, attribute, byName)

	_, err = useCase.GetByName(ctx, 9, "phone")
	assert.ErrorIs(t, err, vaultDomain.ErrAttributeNotFound)

	byID, err := useCase.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Same(t, attribute, byID)

	plaintext, err := useCase.Plaintext(ctx, attribute)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", plaintext)
}
