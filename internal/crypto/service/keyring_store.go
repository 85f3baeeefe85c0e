package service

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// KeyringStore implements SecretStore over the operating system credential store
// (macOS Keychain, Secret Service on Linux, Windows Credential Manager).
type KeyringStore struct{}

// NewKeyringStore creates a SecretStore backed by github.com/zalando/go-keyring.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

// Get reads the value stored under (service, user).
func (k *KeyringStore) Get(service, user string) (string, error) {
	value, err := keyring.Get(service, user)
	if err != nil {
		return "", translateKeyringError(err, service, user)
	}
	return value, nil
}

// Create stores value under (service, user) unless a value is already present.
//
// The OS keyrings only expose an overwriting set, so the presence check and the
// write are two calls and a writer racing between them can still overwrite.
func (k *KeyringStore) Create(service, user, value string) error {
	_, err := keyring.Get(service, user)
	switch {
	case err == nil:
		return cryptoDomain.ErrSecretAlreadyExists
	case !errors.Is(err, keyring.ErrNotFound):
		return translateKeyringError(err, service, user)
	}

	if err := keyring.Set(service, user, value); err != nil {
		return translateKeyringError(err, service, user)
	}
	return nil
}

// Delete removes the value stored under (service, user).
func (k *KeyringStore) Delete(service, user string) error {
	if err := keyring.Delete(service, user); err != nil {
		return translateKeyringError(err, service, user)
	}
	return nil
}

func translateKeyringError(err error, service, user string) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return cryptoDomain.ErrSecretNotFound
	}
	return fmt.Errorf("keyring %s/%s: %w", service, user, err)
}
