// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/cachevault/internal/errors"
)

// MaxNameLength bounds namespaces, key names and attribute names.
const MaxNameLength = 255

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace rejects any whitespace rune, including inner spaces, tabs and
// non-breaking spaces. Identifiers end up in URL paths and CLI arguments, where a
// space is almost always a quoting mistake.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.IndexFunc(s, unicode.IsSpace) < 0
	},
	validation.NewError("validation_no_whitespace", "must not contain whitespace"),
)

// NoControlCharacters rejects invalid UTF-8 and control characters in identifiers.
var NoControlCharacters = validation.NewStringRuleWithError(
	func(s string) bool {
		if !utf8.ValidString(s) {
			return false
		}
		for _, r := range s {
			if unicode.IsControl(r) {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_no_control_characters", "must be valid text without control characters"),
)

// Identifier is the rule set shared by namespaces, key names and attribute names.
func Identifier() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		NotBlank,
		NoWhitespace,
		NoControlCharacters,
		validation.RuneLength(1, MaxNameLength),
	}
}

// RFC3339 validates an optional RFC 3339 timestamp string.
var RFC3339 = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	},
	validation.NewError("validation_rfc3339", "must be an RFC 3339 timestamp"),
)
