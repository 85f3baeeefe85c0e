package errors

import (
	"errors"
	"fmt"
	"testing"
)

type driverError struct {
	Code string
}

func (e *driverError) Error() string { return "driver error " + e.Code }

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "uncategorized", err: errors.New("boom"), want: nil},
		{name: "direct sentinel", err: ErrNotFound, want: ErrNotFound},
		{name: "wrapped", err: Wrap(ErrConflict, "failed to create secret"), want: ErrConflict},
		{name: "storage", err: WrapStorage(&driverError{Code: "SQLITE_BUSY"}, "failed to upsert entry"), want: ErrStorage},
		{
			name: "unavailable outranks invalid input",
			err:  fmt.Errorf("%w: %w", ErrUnavailable, ErrInvalidInput),
			want: ErrUnavailable,
		},
		{
			name: "storage outranks not found",
			err:  WrapStorage(ErrNotFound, "failed to scan entry"),
			want: ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want { //nolint:errorlint // sentinel identity
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	err := New("authentication failed")
	if err.Error() != "authentication failed" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if Kind(err) != nil {
		t.Errorf("expected an uncategorized error, got %v", Kind(err))
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		expected := "wrapped: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrap(nil, "wrapped"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapStorage(t *testing.T) {
	t.Run("matches storage sentinel and keeps driver error", func(t *testing.T) {
		base := &driverError{Code: "23505"}
		wrapped := WrapStorage(base, "failed to upsert entry")

		if !Is(wrapped, ErrStorage) {
			t.Error("expected wrapped error to match ErrStorage")
		}

		var target *driverError
		if !As(wrapped, &target) {
			t.Fatal("expected driver error to be reachable")
		}
		if target.Code != "23505" {
			t.Errorf("expected code 23505, got %s", target.Code)
		}

		expected := "failed to upsert entry: storage failure: driver error 23505"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
	})

	t.Run("nil error", func(t *testing.T) {
		if wrapped := WrapStorage(nil, "ignored"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestIs(t *testing.T) {
	if !Is(Wrap(ErrNotFound, "context"), ErrNotFound) {
		t.Error("expected wrapped ErrNotFound to match")
	}
	if Is(ErrUnavailable, ErrNotFound) {
		t.Error("expected ErrUnavailable not to match ErrNotFound")
	}
}

func TestAs(t *testing.T) {
	wrapped := Wrap(&driverError{Code: "1062"}, "context")

	var target *driverError
	if !As(wrapped, &target) {
		t.Fatal("expected As to find driverError")
	}
	if target.Code != "1062" {
		t.Errorf("expected code 1062, got %s", target.Code)
	}
}
