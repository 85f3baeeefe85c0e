package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// AESGCMCipher implements AEAD using AES-256-GCM.
//
// Selected with CIPHER_ALGORITHM=aes-gcm on hosts with AES-NI. Values written under
// one algorithm cannot be opened under the other, so the setting must not change
// once a vault holds data.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates an AES-256-GCM cipher. The key must be 32 bytes; AES-128 and
// AES-192 keys are rejected even though crypto/aes accepts them.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("failed to create AES cipher: key must be exactly %d bytes", cryptoDomain.KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext under a random 12-byte nonce. GCM must never see the same
// nonce twice under one key; the 96-bit random draw keeps that probability negligible.
func (a *AESGCMCipher) Seal(plaintext []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Open verifies the GCM tag and decrypts.
func (a *AESGCMCipher) Open(ciphertext, nonce []byte) ([]byte, error) {
	return openAEAD(a.aead, ciphertext, nonce)
}
