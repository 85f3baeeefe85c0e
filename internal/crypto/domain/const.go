// Package domain defines the key material, payload and error types shared by the
// credential-store backed key provider, the AEAD codec and the peppered digest.
package domain

// Algorithm represents the AEAD algorithm used to seal vault values.
//
// Both algorithms take a 256-bit key and a 96-bit nonce and append a 16-byte
// authentication tag to the ciphertext. ChaCha20 is the default.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Purpose names a piece of key material inside a credential-store service.
// Together with the service name it forms the identity under which the material
// is stored.
type Purpose string

const (
	// PurposeEncryptionKey is the default purpose of the AEAD key.
	PurposeEncryptionKey Purpose = "encryption-key"

	// PurposePepper is the default purpose of the digest pepper.
	PurposePepper Purpose = "pepper"

	// DefaultService is the default credential-store service name.
	DefaultService = "cache-vault"
)

const (
	// KeySize is the length in bytes of every piece of key material.
	KeySize = 32

	// NonceSize is the length in bytes of an AEAD nonce.
	NonceSize = 12

	// DigestSize is the length in bytes of a peppered digest.
	DigestSize = 32
)

// KeyringIdentity locates the key material inside the platform credential store.
type KeyringIdentity struct {
	Service              string
	EncryptionKeyPurpose Purpose
	PepperPurpose        Purpose
}

// DefaultKeyringIdentity returns the identity used when nothing is configured.
func DefaultKeyringIdentity() KeyringIdentity {
	return KeyringIdentity{
		Service:              DefaultService,
		EncryptionKeyPurpose: PurposeEncryptionKey,
		PepperPurpose:        PurposePepper,
	}
}
