package domain

import (
	"time"
)

// SaveInput carries everything VaultUseCase.Save writes.
type SaveInput struct {
	Namespace string
	KeyName   string
	Value     string
	// Attributes maps attribute names to plaintext values. Nil and empty are equivalent.
	Attributes map[string]string
	ExpiredAt  *time.Time
}

// Secret is the decrypted view of an entry returned by the fetch operations.
type Secret struct {
	Value     string
	ExpiredAt *time.Time
	// Attributes is nil when the entry has no attribute rows, and holds every
	// attribute otherwise. Only FetchWithAttributes populates it.
	Attributes map[string]string
}
