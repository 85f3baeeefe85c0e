package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cachevault/internal/errors"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
	"github.com/allisson/cachevault/internal/vault/usecase/mocks"
)

func TestRunSave(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("success-text", func(t *testing.T) {
		vault := mocks.NewMockVaultUseCase(t)
		expiredAt := time.Date(2035, 1, 2, 3, 4, 5, 0, time.UTC)
		vault.On("Save", ctx, mock.MatchedBy(func(input *vaultDomain.SaveInput) bool {
			return input.Namespace == "default" &&
				input.KeyName == "db-password" &&
				input.Value == "hunter2" &&
				input.Attributes["host"] == "db.internal" &&
				input.Attributes["dsn"] == "a=b" &&
				input.ExpiredAt != nil && input.ExpiredAt.Equal(expiredAt)
		})).Return(int64(7), nil)

		var out bytes.Buffer
		err := RunSave(ctx, vault, logger, IOTuple{Writer: &out}, SaveOptions{
			Namespace:  "default",
			KeyName:    "db-password",
			Value:      "hunter2",
			Attributes: []string{"host=db.internal", "dsn=a=b"},
			ExpiredAt:  "2035-01-02T03:04:05Z",
			Format:     "text",
		})
		require.NoError(t, err)
		assert.Equal(t, "Entry saved: default/db-password (id 7)\n", out.String())
	})

	t.Run("success-json-value-from-reader", func(t *testing.T) {
		vault := mocks.NewMockVaultUseCase(t)
		vault.On("Save", ctx, mock.MatchedBy(func(input *vaultDomain.SaveInput) bool {
			return input.Value == "from-stdin" && input.Attributes == nil && input.ExpiredAt == nil
		})).Return(int64(3), nil)

		var out bytes.Buffer
		err := RunSave(ctx, vault, logger, IOTuple{Reader: strings.NewReader("from-stdin\n"), Writer: &out}, SaveOptions{
			Namespace: "default",
			KeyName:   "token",
			Format:    "json",
		})
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, float64(3), got["id"])
		assert.Equal(t, "default", got["namespace"])
		assert.Equal(t, "token", got["key"])
		assert.NotContains(t, out.String(), "from-stdin")
	})

	t.Run("invalid-inputs", func(t *testing.T) {
		tests := []struct {
			name string
			opts SaveOptions
		}{
			{name: "namespace with whitespace", opts: SaveOptions{Namespace: "my ns", KeyName: "k", Value: "v"}},
			{name: "empty key", opts: SaveOptions{Namespace: "default", KeyName: "", Value: "v"}},
			{name: "bad attribute name", opts: SaveOptions{
				Namespace: "default", KeyName: "k", Value: "v", Attributes: []string{" =x"},
			}},
			{name: "bad expiry", opts: SaveOptions{
				Namespace: "default", KeyName: "k", Value: "v", ExpiredAt: "tomorrow",
			}},
			{name: "empty value", opts: SaveOptions{Namespace: "default", KeyName: "k"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				vault := mocks.NewMockVaultUseCase(t)
				tt.opts.Format = "text"

				err := RunSave(ctx, vault, logger, IOTuple{Reader: strings.NewReader(""), Writer: &bytes.Buffer{}}, tt.opts)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			})
		}
	})

	t.Run("malformed-attribute", func(t *testing.T) {
		vault := mocks.NewMockVaultUseCase(t)

		err := RunSave(ctx, vault, logger, IOTuple{Writer: &bytes.Buffer{}}, SaveOptions{
			Namespace: "default", KeyName: "k", Value: "v", Attributes: []string{"no-separator"}, Format: "text",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected name=value")
	})

	t.Run("invalid-format", func(t *testing.T) {
		vault := mocks.NewMockVaultUseCase(t)

		err := RunSave(ctx, vault, logger, IOTuple{Writer: &bytes.Buffer{}}, SaveOptions{
			Namespace: "default", KeyName: "k", Value: "v", Format: "yaml",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("usecase-error", func(t *testing.T) {
		vault := mocks.NewMockVaultUseCase(t)
		saveErr := errors.New("key unavailable")
		vault.On("Save", ctx, mock.Anything).Return(int64(0), saveErr)

		err := RunSave(ctx, vault, logger, IOTuple{Writer: &bytes.Buffer{}}, SaveOptions{
			Namespace: "default", KeyName: "k", Value: "v", Format: "text",
		})
		assert.ErrorIs(t, err, saveErr)
	})
}

func TestParseAttributes(t *testing.T) {
	attributes, err := parseAttributes(nil)
	require.NoError(t, err)
	assert.Nil(t, attributes)

	attributes, err = parseAttributes([]string{"a=1", "b=", "c==x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "", "c": "=x"}, attributes)

	_, err = parseAttributes([]string{"a=1", "a=2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate attribute")
}

func TestReadValue(t *testing.T) {
	value, err := readValue(strings.NewReader("secret\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "secret", value)

	value, err = readValue(strings.NewReader("multi\nline\n"))
	require.NoError(t, err)
	assert.Equal(t, "multi\nline", value)

	value, err = readValue(nil)
	require.NoError(t, err)
	assert.Empty(t, value)
}
