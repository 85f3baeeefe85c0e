// Package domain defines the records stored by the vault. An Entry is a named,
// encrypted value living under a namespace; an Attribute is a named, encrypted
// sub-value of an Entry that also carries a peppered digest of its plaintext.
package domain

import (
	"time"
)

// Entry is an encrypted value identified by (Namespace, KeyName).
type Entry struct {
	// ID is the row identity. It grows with insertion order and survives upserts.
	ID int64
	// Namespace groups related keys.
	Namespace string
	// KeyName identifies the entry inside its namespace.
	KeyName string
	// Nonce is the AEAD nonce used to seal EncryptedValue.
	Nonce []byte
	// EncryptedValue holds the sealed plaintext.
	EncryptedValue []byte
	// CreatedAt is the UTC time of the first insert.
	CreatedAt time.Time
	// UpdatedAt is the UTC time of the latest upsert.
	UpdatedAt time.Time
	// ExpiredAt is an informational expiry chosen by the caller (nil when unset).
	// Nothing enforces it.
	ExpiredAt *time.Time
}

// Attribute is an encrypted, named sub-value of an Entry.
//
// Attributes are unique per (EntryID, Name) and are removed together with their
// entry. Saving an attribute that already exists replaces its value in place.
type Attribute struct {
	ID int64
	// EntryID references the owning Entry.
	EntryID int64
	// Name identifies the attribute inside its entry.
	Name string
	// Nonce is the AEAD nonce used to seal EncryptedValue.
	Nonce []byte
	// EncryptedValue holds the sealed plaintext.
	EncryptedValue []byte
	// HashedValue is the peppered digest of the plaintext value. It is deterministic
	// for a given pepper, so equal values produce equal digests.
	HashedValue []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
