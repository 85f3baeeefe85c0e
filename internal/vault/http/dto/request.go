// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cachevault/internal/validation"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// SaveEntryRequest contains the parameters for saving an entry.
// The namespace and key name are extracted from the URL, not the request body.
type SaveEntryRequest struct {
	Value      string            `json:"value"`
	Attributes map[string]string `json:"attributes,omitempty"`
	ExpiredAt  string            `json:"expired_at,omitempty"`
}

// Validate checks if the save entry request is valid.
func (r *SaveEntryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.Required),
		validation.Field(&r.Attributes, validation.By(validateAttributeNames)),
		validation.Field(&r.ExpiredAt, customValidation.RFC3339),
	)
}

// ToSaveInput builds the use case input for the entry at (namespace, keyName).
// Validate must have succeeded first.
func (r *SaveEntryRequest) ToSaveInput(namespace, keyName string) (*vaultDomain.SaveInput, error) {
	input := &vaultDomain.SaveInput{
		Namespace:  namespace,
		KeyName:    keyName,
		Value:      r.Value,
		Attributes: r.Attributes,
	}

	if r.ExpiredAt != "" {
		expiredAt, err := time.Parse(time.RFC3339, r.ExpiredAt)
		if err != nil {
			return nil, fmt.Errorf("invalid expired_at: %w", err)
		}
		input.ExpiredAt = &expiredAt
	}

	return input, nil
}

func validateAttributeNames(value any) error {
	attributes, _ := value.(map[string]string)
	for _, name := range slices.Sorted(maps.Keys(attributes)) {
		if err := validation.Validate(name, customValidation.Identifier()...); err != nil {
			return fmt.Errorf("attribute name %q %w", name, err)
		}
	}
	return nil
}

// EntryPath holds the identifiers carried by /v1/entries/:namespace/:key.
type EntryPath struct {
	Namespace string
	KeyName   string
}

// Validate checks both path identifiers.
func (p EntryPath) Validate() error {
	return validation.Errors{
		"namespace": validation.Validate(p.Namespace, customValidation.Identifier()...),
		"key":       validation.Validate(p.KeyName, customValidation.Identifier()...),
	}.Filter()
}

// ErrInvalidBoolean is returned by ParseBool for anything but "", "true" and "false".
var ErrInvalidBoolean = errors.New("must be true or false")

// ParseBool parses an optional boolean query parameter.
func ParseBool(raw string) (bool, error) {
	switch raw {
	case "", "false":
		return false, nil
	case "true":
		return true, nil
	default:
		return false, ErrInvalidBoolean
	}
}
