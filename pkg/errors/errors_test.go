package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "snapshot not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "snapshot not found" {
		t.Errorf("expected message 'snapshot not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeParse, "invalid snapshot content", cause)

	if err.Code != ErrCodeParse {
		t.Errorf("expected code %s, got %s", ErrCodeParse, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("no such file")
	ctx := map[string]any{
		"path": "artifacts/system_snapshot.json",
	}

	err := WrapWithContext(ErrCodeNotFound, "snapshot load failed", cause, ctx)

	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["path"] != "artifacts/system_snapshot.json" {
		t.Errorf("expected path in context")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeInvalidState, "model is not fitted"),
			expected: "[INVALID_STATE] model is not fitted",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeNotFound, "missing")
	outer := Wrap(ErrCodeParse, "extract failed", fmt.Errorf("row 3: %w", inner))

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"nil error", nil, ErrCodeNotFound, false},
		{"plain error", errors.New("x"), ErrCodeNotFound, false},
		{"direct match", inner, ErrCodeNotFound, true},
		{"outer match", outer, ErrCodeParse, true},
		{"nested match through fmt wrap", outer, ErrCodeNotFound, true},
		{"wrapped by fmt", fmt.Errorf("cmd: %w", inner), ErrCodeNotFound, true},
		{"no match", outer, ErrCodeInvalidState, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty code, got %q", got)
	}
	err := fmt.Errorf("cmd: %w", New(ErrCodeInvalidInput, "shape"))
	if got := CodeOf(err); got != ErrCodeInvalidInput {
		t.Errorf("expected %s, got %s", ErrCodeInvalidInput, got)
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeParse,
		ErrCodeInvalidState,
		ErrCodeInvalidInput,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
		ErrCodeInternal,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
