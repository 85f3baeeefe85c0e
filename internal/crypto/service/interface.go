// Package service implements the secret-at-rest protection layer: a key provider
// backed by the platform credential store, an AEAD codec and a peppered digest.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// AEAD seals and opens messages without associated data.
//
// Implementations: AESGCMCipher (AES-256-GCM) and ChaCha20Poly1305Cipher.
//
// Wire layout:
//   - nonce: 12 random bytes, generated inside Seal and stored next to the ciphertext
//   - ciphertext: encrypted plaintext followed by the 16-byte authentication tag
//
// Open fails with a generic error for every mismatch (tampered tag, tampered nonce,
// wrong key, wrong nonce length) so callers cannot tell them apart.
//
// Thread safety:
//
//	Implementations hold only the keyed cipher state and are safe for concurrent
//	use. The codec nevertheless builds a fresh instance per call so key material is
//	not kept alive between operations.
type AEAD interface {
	// Seal encrypts plaintext under a fresh random nonce.
	Seal(plaintext []byte) (ciphertext, nonce []byte, err error)

	// Open authenticates and decrypts ciphertext.
	Open(ciphertext, nonce []byte) ([]byte, error)
}

// AEADManager builds AEAD instances for an algorithm.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// SecretStore is the platform credential store seen by the key provider.
//
// Get returns cryptoDomain.ErrSecretNotFound when nothing is stored. Create must
// fail with cryptoDomain.ErrSecretAlreadyExists if a value is already present;
// it never overwrites.
type SecretStore interface {
	Get(service, user string) (string, error)
	Create(service, user, value string) error
	Delete(service, user string) error
}

// KeyProvider supplies key material by purpose, generating it on first access.
//
// The returned slice belongs to the caller, who should cryptoDomain.Zero it after use.
//
// Errors:
//   - cryptoDomain.ErrCorruptKeyEncoding when stored material cannot be decoded
//   - cryptoDomain.ErrSecretStoreUnavailable when the credential store fails
//   - ctx.Err() when the context is done before the store is consulted
type KeyProvider interface {
	Get(ctx context.Context, purpose cryptoDomain.Purpose) ([]byte, error)
	Delete(ctx context.Context, purpose cryptoDomain.Purpose) error
}

// Codec encrypts and decrypts vault values with the vault encryption key.
//
// Decrypt returns cryptoDomain.ErrAuthenticationFailed for any payload that does not
// verify, and cryptoDomain.ErrInvalidUTF8 when verified plaintext is not text. Key
// provider failures surface as cryptoDomain.ErrKeyUnavailable with the provider error
// still in the chain.
type Codec interface {
	Encrypt(ctx context.Context, plaintext string) (cryptoDomain.EncryptedPayload, error)
	Decrypt(ctx context.Context, nonce, ciphertext []byte) (string, error)
}

// Digester computes the peppered digest of attribute values.
type Digester interface {
	Digest(ctx context.Context, data []byte) (cryptoDomain.Digest, error)
}
