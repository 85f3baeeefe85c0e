package usecase

import (
	"context"
	"time"

	cryptoService "github.com/allisson/cachevault/internal/crypto/service"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// attributeUseCase implements AttributeUseCase.
type attributeUseCase struct {
	attributeRepo AttributeRepository
	codec         cryptoService.Codec
	digester      cryptoService.Digester
}

// Upsert encrypts and digests the value and inserts or updates the attribute.
func (a *attributeUseCase) Upsert(ctx context.Context, entryID int64, name, value string) (int64, error) {
	payload, err := a.codec.Encrypt(ctx, value)
	if err != nil {
		return 0, err
	}

	digest, err := a.digester.Digest(ctx, []byte(value))
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	attribute := &vaultDomain.Attribute{
		EntryID:        entryID,
		Name:           name,
		Nonce:          payload.Nonce,
		EncryptedValue: payload.Ciphertext,
		HashedValue:    digest.Bytes(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return a.attributeRepo.Upsert(ctx, attribute)
}

// List returns the attributes of an entry ordered by id.
func (a *attributeUseCase) List(ctx context.Context, entryID int64) ([]*vaultDomain.Attribute, error) {
	return a.attributeRepo.ListByEntryID(ctx, entryID)
}

// GetByName retrieves a single attribute of an entry.
func (a *attributeUseCase) GetByName(
	ctx context.Context,
	entryID int64,
	name string,
) (*vaultDomain.Attribute, error) {
	return a.attributeRepo.GetByName(ctx, entryID, name)
}

// GetByID retrieves an attribute by id.
func (a *attributeUseCase) GetByID(ctx context.Context, id int64) (*vaultDomain.Attribute, error) {
	return a.attributeRepo.GetByID(ctx, id)
}

// Plaintext decrypts the stored value. Codec errors are returned unchanged.
func (a *attributeUseCase) Plaintext(ctx context.Context, attribute *vaultDomain.Attribute) (string, error) {
	return a.codec.Decrypt(ctx, attribute.Nonce, attribute.EncryptedValue)
}

// NewAttributeUseCase creates a new AttributeUseCase.
func NewAttributeUseCase(
	attributeRepo AttributeRepository,
	codec cryptoService.Codec,
	digester cryptoService.Digester,
) AttributeUseCase {
	return &attributeUseCase{
		attributeRepo: attributeRepo,
		codec:         codec,
		digester:      digester,
	}
}
