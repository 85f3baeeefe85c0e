package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// maxKeyAttempts bounds the read, create-if-absent, re-read cycle. One miss plus one
// re-read covers both the first access and a lost creation race.
const maxKeyAttempts = 2

// SecretKeyProvider implements KeyProvider on top of a SecretStore.
//
// Material is read from the store on every call and never cached. Once a value
// exists for (service, purpose) it is never regenerated: a corrupt value is an
// error, not a reason to write a new key.
type SecretKeyProvider struct {
	store   SecretStore
	service string
	logger  *slog.Logger
}

// NewSecretKeyProvider creates a key provider scoped to one credential-store service.
func NewSecretKeyProvider(store SecretStore, service string, logger *slog.Logger) *SecretKeyProvider {
	return &SecretKeyProvider{
		store:   store,
		service: service,
		logger:  logger,
	}
}

// Get returns KeySize bytes of material for purpose, creating it on first access.
//
// Resolution:
//  1. read (service, purpose) from the store and decode it
//  2. when absent, generate KeySize random bytes and Create them
//  3. re-read, so a process that lost the creation race uses the winner's value
//
// The freshly generated bytes are never returned directly. If the material is still
// absent after maxKeyAttempts reads, Get fails with ErrSecretStoreUnavailable.
func (p *SecretKeyProvider) Get(ctx context.Context, purpose cryptoDomain.Purpose) ([]byte, error) {
	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		encoded, err := p.store.Get(p.service, string(purpose))
		if err == nil {
			return DecodeKey(encoded)
		}
		if !errors.Is(err, cryptoDomain.ErrSecretNotFound) {
			return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrSecretStoreUnavailable, err)
		}

		if attempt == maxKeyAttempts {
			break
		}

		if err := p.create(purpose); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf(
		"%w: %s/%s still absent after %d attempts",
		cryptoDomain.ErrSecretStoreUnavailable,
		p.service,
		purpose,
		maxKeyAttempts,
	)
}

// Delete removes the stored material for purpose. Everything sealed under it
// becomes unrecoverable. Deleting absent material is not an error.
func (p *SecretKeyProvider) Delete(ctx context.Context, purpose cryptoDomain.Purpose) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := p.store.Delete(p.service, string(purpose))
	switch {
	case err == nil:
		p.logger.Warn("key material deleted",
			slog.String("service", p.service),
			slog.String("purpose", string(purpose)),
		)
		return nil
	case errors.Is(err, cryptoDomain.ErrSecretNotFound):
		p.logger.Info("key material already absent",
			slog.String("service", p.service),
			slog.String("purpose", string(purpose)),
		)
		return nil
	default:
		return fmt.Errorf("%w: %w", cryptoDomain.ErrSecretStoreUnavailable, err)
	}
}

// create generates fresh material and stores its encoding. Losing the creation race
// is benign: the caller re-reads whatever the winner stored.
func (p *SecretKeyProvider) create(purpose cryptoDomain.Purpose) error {
	key := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(key)

	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key material: %w", err)
	}

	err := p.store.Create(p.service, string(purpose), EncodeKey(key))
	switch {
	case err == nil:
		p.logger.Info("key material generated",
			slog.String("service", p.service),
			slog.String("purpose", string(purpose)),
		)
		return nil
	case errors.Is(err, cryptoDomain.ErrSecretAlreadyExists):
		p.logger.Warn("key material created concurrently",
			slog.String("service", p.service),
			slog.String("purpose", string(purpose)),
		)
		return nil
	default:
		return fmt.Errorf("%w: %w", cryptoDomain.ErrSecretStoreUnavailable, err)
	}
}
