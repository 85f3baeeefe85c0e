// Package usecase implements the vault operations: encrypted entry and attribute
// upserts, plaintext recovery and the composed save, fetch and delete flows.
package usecase

import (
	"context"
	"time"

	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// EntryRepository defines the interface for Entry persistence operations.
type EntryRepository interface {
	Upsert(ctx context.Context, entry *vaultDomain.Entry) (int64, error)
	GetByName(ctx context.Context, namespace, keyName string) (*vaultDomain.Entry, error)
	GetByID(ctx context.Context, id int64) (*vaultDomain.Entry, error)
	Delete(ctx context.Context, id int64) error
}

// AttributeRepository defines the interface for Attribute persistence operations.
type AttributeRepository interface {
	Upsert(ctx context.Context, attribute *vaultDomain.Attribute) (int64, error)
	GetByName(ctx context.Context, entryID int64, name string) (*vaultDomain.Attribute, error)
	GetByID(ctx context.Context, id int64) (*vaultDomain.Attribute, error)
	ListByEntryID(ctx context.Context, entryID int64) ([]*vaultDomain.Attribute, error)
	DeleteByEntryID(ctx context.Context, entryID int64) error
}

// EntryUseCase manages encrypted entries.
type EntryUseCase interface {
	// Upsert encrypts value and writes it under (namespace, keyName), returning the
	// entry id. An existing entry keeps its id and creation time.
	Upsert(ctx context.Context, namespace, keyName, value string, expiredAt *time.Time) (int64, error)
	// Get returns the entry stored under (namespace, keyName) or ErrEntryNotFound.
	Get(ctx context.Context, namespace, keyName string) (*vaultDomain.Entry, error)
	GetByID(ctx context.Context, id int64) (*vaultDomain.Entry, error)
	// Plaintext decrypts the value of entry.
	Plaintext(ctx context.Context, entry *vaultDomain.Entry) (string, error)
}

// AttributeUseCase manages encrypted attributes of entries.
type AttributeUseCase interface {
	// Upsert encrypts and digests value and writes it under (entryID, name).
	Upsert(ctx context.Context, entryID int64, name, value string) (int64, error)
	// List returns the attributes of entryID in creation order.
	List(ctx context.Context, entryID int64) ([]*vaultDomain.Attribute, error)
	GetByName(ctx context.Context, entryID int64, name string) (*vaultDomain.Attribute, error)
	GetByID(ctx context.Context, id int64) (*vaultDomain.Attribute, error)
	Plaintext(ctx context.Context, attribute *vaultDomain.Attribute) (string, error)
}

// VaultUseCase is the public surface of the vault, shared by the HTTP handler and
// the CLI commands.
//
// Storage model:
//   - an entry is identified by (namespace, key name) and holds one encrypted value
//     plus an optional expiry
//   - attributes hang off an entry by name; each stores its value encrypted and a
//     peppered digest of it
//   - saving an existing entry overwrites it in place, keeping its id and created_at
//
// Errors:
//   - vaultDomain.ErrEntryNotFound for an unknown (namespace, key name)
//   - cryptoDomain.ErrKeyUnavailable when key material cannot be read
//   - cryptoDomain.ErrAuthenticationFailed when a stored value does not verify
//   - apperrors.ErrStorage for database failures
//
// Example usage:
//
//	id, err := vault.Save(ctx, &vaultDomain.SaveInput{
//	    Namespace:  "default",
//	    KeyName:    "github-token",
//	    Value:      "ghp_...",
//	    Attributes: map[string]string{"owner": "ci"},
//	})
//
//	secret, err := vault.FetchWithAttributes(ctx, "default", "github-token")
type VaultUseCase interface {
	// Save upserts the entry and then each attribute in name order. Attribute writes
	// are independent: a failure leaves earlier writes in place.
	Save(ctx context.Context, input *vaultDomain.SaveInput) (int64, error)
	// Fetch returns the decrypted value and expiry of an entry.
	Fetch(ctx context.Context, namespace, keyName string) (*vaultDomain.Secret, error)
	// FetchWithAttributes also returns every attribute. Secret.Attributes is nil when
	// the entry has none.
	FetchWithAttributes(ctx context.Context, namespace, keyName string) (*vaultDomain.Secret, error)
	// Delete removes an entry and its attributes in one transaction.
	Delete(ctx context.Context, namespace, keyName string) error
}
