package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/argon2"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// Argon2id parameters. Changing any of them changes every digest, so existing
// hashed_value columns would no longer compare equal.
const (
	argon2Time    uint32 = 2
	argon2Memory  uint32 = 19 * 1024
	argon2Threads uint8  = 1
)

// PepperedDigester implements Digester with Argon2id, using the pepper as the salt
// and the caller's bytes as the password.
type PepperedDigester struct {
	provider KeyProvider
	purpose  cryptoDomain.Purpose
}

// NewPepperedDigester creates a digester keyed by the material stored for purpose.
func NewPepperedDigester(provider KeyProvider, purpose cryptoDomain.Purpose) *PepperedDigester {
	return &PepperedDigester{
		provider: provider,
		purpose:  purpose,
	}
}

// Digest returns the deterministic peppered digest of data.
func (d *PepperedDigester) Digest(ctx context.Context, data []byte) (cryptoDomain.Digest, error) {
	var digest cryptoDomain.Digest

	pepper, err := d.provider.Get(ctx, d.purpose)
	if err != nil {
		return digest, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyUnavailable, err)
	}
	defer cryptoDomain.Zero(pepper)

	sum := argon2.IDKey(data, pepper, argon2Time, argon2Memory, argon2Threads, cryptoDomain.DigestSize)
	copy(digest[:], sum)
	cryptoDomain.Zero(sum)

	return digest, nil
}
