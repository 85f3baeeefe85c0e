package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	customValidation "github.com/allisson/cachevault/internal/validation"
	"github.com/allisson/cachevault/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/cachevault/internal/vault/usecase"
)

// SaveOptions carries the arguments of the save command.
type SaveOptions struct {
	Namespace  string
	KeyName    string
	Value      string
	Attributes []string
	ExpiredAt  string
	Format     string
}

// RunSave encrypts and stores an entry with its attributes. When Value is empty the
// value is read from ioTuple.Reader with one trailing newline removed.
func RunSave(
	ctx context.Context,
	vaultUseCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	opts SaveOptions,
) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}

	value := opts.Value
	if value == "" {
		read, err := readValue(ioTuple.Reader)
		if err != nil {
			return err
		}
		value = read
	}

	attributes, err := parseAttributes(opts.Attributes)
	if err != nil {
		return err
	}

	path := dto.EntryPath{Namespace: opts.Namespace, KeyName: opts.KeyName}
	if err := path.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	req := dto.SaveEntryRequest{Value: value, Attributes: attributes, ExpiredAt: opts.ExpiredAt}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	input, err := req.ToSaveInput(opts.Namespace, opts.KeyName)
	if err != nil {
		return customValidation.WrapValidationError(err)
	}

	id, err := vaultUseCase.Save(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("entry saved",
		slog.String("namespace", opts.Namespace),
		slog.String("key", opts.KeyName),
		slog.Int("attributes", len(attributes)),
	)

	if opts.Format == formatJSON {
		return writeJSON(ioTuple.Writer, dto.SaveEntryResponse{
			ID:        id,
			Namespace: opts.Namespace,
			Key:       opts.KeyName,
		})
	}

	_, _ = fmt.Fprintf(ioTuple.Writer, "Entry saved: %s/%s (id %d)\n", opts.Namespace, opts.KeyName, id)
	return nil
}

// parseAttributes turns repeated name=value flags into a map. Values may contain '='.
func parseAttributes(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	attributes := make(map[string]string, len(raw))
	for _, pair := range raw {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid attribute %q: expected name=value", pair)
		}
		if _, exists := attributes[name]; exists {
			return nil, fmt.Errorf("duplicate attribute %q", name)
		}
		attributes[name] = value
	}
	return attributes, nil
}

// readValue reads the whole reader and drops a single trailing line break.
func readValue(reader io.Reader) (string, error) {
	if reader == nil {
		return "", nil
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read value: %w", err)
	}
	value := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(value, "\r"), nil
}
