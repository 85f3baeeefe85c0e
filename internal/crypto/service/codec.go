package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// AEADCodec implements Codec. Every call fetches the encryption key from the
// provider, uses it once and zeroes it.
//
// Sealing flow:
//  1. fetch the key for purpose from the KeyProvider
//  2. build the AEAD for algorithm with the AEADManager
//  3. seal (or open) and zero the key and any intermediate plaintext
//
// The algorithm is not stored with the payload. Switching CIPHER_ALGORITHM on a vault
// that already holds entries makes the old entries fail authentication.
//
// Example usage:
//
//	codec := service.NewAEADCodec(provider, service.NewAEADManager(),
//	    cryptoDomain.ChaCha20, cryptoDomain.PurposeEncryptionKey)
//
//	payload, err := codec.Encrypt(ctx, "s3cret")
//	plaintext, err := codec.Decrypt(ctx, payload.Nonce, payload.Ciphertext)
type AEADCodec struct {
	provider    KeyProvider
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
	purpose     cryptoDomain.Purpose
}

// NewAEADCodec creates a codec sealing with algorithm under the key stored for purpose.
func NewAEADCodec(
	provider KeyProvider,
	aeadManager AEADManager,
	algorithm cryptoDomain.Algorithm,
	purpose cryptoDomain.Purpose,
) *AEADCodec {
	return &AEADCodec{
		provider:    provider,
		aeadManager: aeadManager,
		algorithm:   algorithm,
		purpose:     purpose,
	}
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *AEADCodec) Encrypt(ctx context.Context, plaintext string) (cryptoDomain.EncryptedPayload, error) {
	aead, err := c.cipher(ctx)
	if err != nil {
		return cryptoDomain.EncryptedPayload{}, err
	}

	ciphertext, nonce, err := aead.Seal([]byte(plaintext))
	if err != nil {
		return cryptoDomain.EncryptedPayload{}, fmt.Errorf("%w: %w", cryptoDomain.ErrEncryptionFailed, err)
	}

	return cryptoDomain.EncryptedPayload{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// Decrypt authenticates and opens a stored payload. Nothing is returned unless the
// whole payload verifies and decodes as UTF-8.
func (c *AEADCodec) Decrypt(ctx context.Context, nonce, ciphertext []byte) (string, error) {
	aead, err := c.cipher(ctx)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(ciphertext, nonce)
	if err != nil {
		return "", fmt.Errorf("%w: %w", cryptoDomain.ErrAuthenticationFailed, err)
	}
	defer cryptoDomain.Zero(plaintext)

	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.ErrInvalidUTF8
	}

	return string(plaintext), nil
}

// cipher builds an AEAD from freshly fetched key material. The AEAD implementations
// copy the key into their own state, so the fetched slice is zeroed before return.
func (c *AEADCodec) cipher(ctx context.Context) (AEAD, error) {
	key, err := c.provider.Get(ctx, c.purpose)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyUnavailable, err)
	}
	defer cryptoDomain.Zero(key)

	return c.aeadManager.CreateCipher(key, c.algorithm)
}
