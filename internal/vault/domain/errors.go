package domain

import (
	"github.com/allisson/cachevault/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrEntryNotFound indicates no entry exists for the requested (namespace, key name).
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "entry not found")

	// ErrAttributeNotFound indicates no attribute exists for the requested (entry, name).
	ErrAttributeNotFound = errors.Wrap(errors.ErrNotFound, "attribute not found")
)
