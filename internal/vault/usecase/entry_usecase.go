package usecase

import (
	"context"
	"time"

	cryptoService "github.com/allisson/cachevault/internal/crypto/service"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// entryUseCase implements EntryUseCase.
type entryUseCase struct {
	entryRepo EntryRepository
	codec     cryptoService.Codec
}

// Upsert encrypts the value and inserts or updates the entry.
func (e *entryUseCase) Upsert(
	ctx context.Context,
	namespace, keyName, value string,
	expiredAt *time.Time,
) (int64, error) {
	payload, err := e.codec.Encrypt(ctx, value)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	entry := &vaultDomain.Entry{
		Namespace:      namespace,
		KeyName:        keyName,
		Nonce:          payload.Nonce,
		EncryptedValue: payload.Ciphertext,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiredAt:      utcPtr(expiredAt),
	}

	return e.entryRepo.Upsert(ctx, entry)
}

// Get retrieves an entry by namespace and key name.
func (e *entryUseCase) Get(ctx context.Context, namespace, keyName string) (*vaultDomain.Entry, error) {
	return e.entryRepo.GetByName(ctx, namespace, keyName)
}

// GetByID retrieves an entry by id.
func (e *entryUseCase) GetByID(ctx context.Context, id int64) (*vaultDomain.Entry, error) {
	return e.entryRepo.GetByID(ctx, id)
}

// Plaintext decrypts the stored value. Codec errors are returned unchanged.
func (e *entryUseCase) Plaintext(ctx context.Context, entry *vaultDomain.Entry) (string, error) {
	return e.codec.Decrypt(ctx, entry.Nonce, entry.EncryptedValue)
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository, codec cryptoService.Codec) EntryUseCase {
	return &entryUseCase{
		entryRepo: entryRepo,
		codec:     codec,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
