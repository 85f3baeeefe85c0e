// Package errors defines the error categories shared by every layer of the vault.
// Domain errors wrap one of the category sentinels; the HTTP and CLI surfaces only
// look at the category.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the entry or secret does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict: a uniqueness rule was violated, e.g. a secret created twice.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput: the caller supplied something the vault cannot accept.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable: the credential store or key material could not be reached.
	ErrUnavailable = errors.New("unavailable")

	// ErrStorage: the relational store rejected or failed an operation.
	ErrStorage = errors.New("storage failure")
)

// kinds is the order Kind checks the categories in. An error wrapping several
// sentinels reports the first, so server-side faults come before the categories
// that blame the caller.
var kinds = []error{ErrStorage, ErrUnavailable, ErrNotFound, ErrConflict, ErrInvalidInput}

// Kind returns the category sentinel err belongs to, or nil when err is nil or
// uncategorized.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// New returns an uncategorized error. Domain packages use it for failures that must
// not map to a client-facing category.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapStorage wraps a driver error so it matches ErrStorage while the driver error
// stays reachable through Is and As.
func WrapStorage(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, ErrStorage, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
