package dto

import (
	"time"

	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// SaveEntryResponse is returned by PUT requests. It never echoes the value.
type SaveEntryResponse struct {
	ID        int64  `json:"id"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
}

// EntryResponse represents a decrypted entry in API responses.
// SECURITY: Value and Attributes carry plaintext.
type EntryResponse struct {
	Namespace  string            `json:"namespace"`
	Key        string            `json:"key"`
	Value      string            `json:"value"`
	ExpiredAt  *time.Time        `json:"expired_at,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// MapSecretToEntryResponse converts a decrypted secret into an API response.
func MapSecretToEntryResponse(namespace, keyName string, secret *vaultDomain.Secret) EntryResponse {
	return EntryResponse{
		Namespace:  namespace,
		Key:        keyName,
		Value:      secret.Value,
		ExpiredAt:  secret.ExpiredAt,
		Attributes: secret.Attributes,
	}
}
