package domain

import (
	"github.com/allisson/cachevault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so the
// HTTP layer can map them to status codes without knowing about cryptography.
var (
	// ErrUnsupportedAlgorithm indicates the configured AEAD algorithm is unknown.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates key material is not exactly KeySize bytes. Key
	// material never comes from a client, so this is a server-side fault.
	//
	// HTTP Status: 503 Service Unavailable
	ErrInvalidKeySize = errors.Wrap(errors.ErrUnavailable, "invalid key size")

	// ErrCorruptKeyEncoding indicates a value exists in the credential store but does
	// not decode into KeySize raw bytes. The provider never overwrites such a value,
	// and callers see the key as unavailable.
	//
	// HTTP Status: 503 Service Unavailable
	ErrCorruptKeyEncoding = errors.Wrap(errors.ErrUnavailable, "corrupt key encoding")

	// ErrSecretStoreUnavailable indicates the platform credential store could not be
	// read or written.
	//
	// HTTP Status: 503 Service Unavailable
	ErrSecretStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "secret store unavailable")

	// ErrKeyUnavailable is returned by the codec and the digest when the key provider
	// could not supply material. The provider error stays in the chain.
	//
	// HTTP Status: 503 Service Unavailable
	ErrKeyUnavailable = errors.Wrap(errors.ErrUnavailable, "key unavailable")

	// ErrEncryptionFailed indicates an unexpected AEAD or random source failure while sealing.
	//
	// HTTP Status: 500 Internal Server Error
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrAuthenticationFailed indicates the (key, nonce, ciphertext) triple did not verify.
	//
	// The cause is deliberately not disclosed: tampered ciphertext, tampered nonce,
	// a nonce of the wrong length and a rotated key all look the same.
	//
	// HTTP Status: 500 Internal Server Error
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidUTF8 indicates authenticated plaintext is not valid UTF-8 text.
	//
	// HTTP Status: 500 Internal Server Error
	ErrInvalidUTF8 = errors.New("plaintext is not valid utf-8")
)

// Credential store errors. SecretStore implementations translate their backend
// errors into these.
var (
	// ErrSecretNotFound indicates nothing is stored under (service, purpose).
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrSecretAlreadyExists indicates a create-only write lost a race with a
	// concurrent writer.
	ErrSecretAlreadyExists = errors.Wrap(errors.ErrConflict, "secret already exists")
)
