package usecase

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/allisson/cachevault/internal/database"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// vaultUseCase implements VaultUseCase on top of the entry and attribute use cases.
type vaultUseCase struct {
	txManager     database.TxManager
	entries       EntryUseCase
	attributes    AttributeUseCase
	entryRepo     EntryRepository
	attributeRepo AttributeRepository
}

// Save upserts the entry and then every attribute.
//
// Attribute upserts run outside any transaction and in lexical name order. The
// first failure stops the loop and is returned; attributes written before it stay.
func (v *vaultUseCase) Save(ctx context.Context, input *vaultDomain.SaveInput) (int64, error) {
	entryID, err := v.entries.Upsert(ctx, input.Namespace, input.KeyName, input.Value, input.ExpiredAt)
	if err != nil {
		return 0, err
	}

	for _, name := range slices.Sorted(maps.Keys(input.Attributes)) {
		if _, err := v.attributes.Upsert(ctx, entryID, name, input.Attributes[name]); err != nil {
			return 0, fmt.Errorf("failed to save attribute %q: %w", name, err)
		}
	}

	return entryID, nil
}

// Fetch decrypts an entry without its attributes.
func (v *vaultUseCase) Fetch(ctx context.Context, namespace, keyName string) (*vaultDomain.Secret, error) {
	entry, err := v.entries.Get(ctx, namespace, keyName)
	if err != nil {
		return nil, err
	}

	value, err := v.entries.Plaintext(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &vaultDomain.Secret{
		Value:     value,
		ExpiredAt: entry.ExpiredAt,
	}, nil
}

// FetchWithAttributes decrypts an entry and every attribute it owns.
func (v *vaultUseCase) FetchWithAttributes(
	ctx context.Context,
	namespace, keyName string,
) (*vaultDomain.Secret, error) {
	entry, err := v.entries.Get(ctx, namespace, keyName)
	if err != nil {
		return nil, err
	}

	value, err := v.entries.Plaintext(ctx, entry)
	if err != nil {
		return nil, err
	}

	attributes, err := v.attributes.List(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	secret := &vaultDomain.Secret{
		Value:     value,
		ExpiredAt: entry.ExpiredAt,
	}
	if len(attributes) == 0 {
		return secret, nil
	}

	secret.Attributes = make(map[string]string, len(attributes))
	for _, attribute := range attributes {
		plaintext, err := v.attributes.Plaintext(ctx, attribute)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt attribute %q: %w", attribute.Name, err)
		}
		secret.Attributes[attribute.Name] = plaintext
	}

	return secret, nil
}

// Delete removes the attributes and then the entry inside one transaction.
func (v *vaultUseCase) Delete(ctx context.Context, namespace, keyName string) error {
	return v.txManager.WithTx(ctx, func(txCtx context.Context) error {
		entry, err := v.entryRepo.GetByName(txCtx, namespace, keyName)
		if err != nil {
			return err
		}

		if err := v.attributeRepo.DeleteByEntryID(txCtx, entry.ID); err != nil {
			return err
		}

		return v.entryRepo.Delete(txCtx, entry.ID)
	})
}

// NewVaultUseCase creates a new VaultUseCase.
func NewVaultUseCase(
	txManager database.TxManager,
	entries EntryUseCase,
	attributes AttributeUseCase,
	entryRepo EntryRepository,
	attributeRepo AttributeRepository,
) VaultUseCase {
	return &vaultUseCase{
		txManager:     txManager,
		entries:       entries,
		attributes:    attributes,
		entryRepo:     entryRepo,
		attributeRepo: attributeRepo,
	}
}
