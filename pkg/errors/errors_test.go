package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "user not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "user not found" {
		t.Errorf("expected message 'user not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("throttled")
	err := Wrap(ErrCodeStorage, "scan failed", cause)

	if err.Code != ErrCodeStorage {
		t.Errorf("expected code %s, got %s", ErrCodeStorage, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("unexpected EOF")
	ctx := map[string]any{
		"source": "foods.json",
		"index":  3,
	}

	err := WrapWithContext(ErrCodeParse, "seed document is malformed", cause, ctx)

	if err.Code != ErrCodeParse {
		t.Errorf("expected code %s, got %s", ErrCodeParse, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["source"] != "foods.json" {
		t.Errorf("expected source to be foods.json")
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
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeStorage, "failed", errors.New("root cause")),
			expected: "[STORAGE_FAILURE] failed: root cause",
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

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"structured", New(ErrCodeUnsupportedOperation, "nope"), ErrCodeUnsupportedOperation},
		{"wrapped by fmt", fmt.Errorf("outer: %w", New(ErrCodeNotFound, "missing")), ErrCodeNotFound},
		{"outermost wins", Wrap(ErrCodeStorage, "outer", New(ErrCodeParse, "inner")), ErrCodeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", New(ErrCodeParse, "bad json"))
	if !IsCode(err, ErrCodeParse) {
		t.Error("expected IsCode to find PARSE_ERROR through fmt wrapping")
	}
	if IsCode(err, ErrCodeNotFound) {
		t.Error("did not expect NOT_FOUND")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("nil error should not match any code")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeParse,
		ErrCodeStorage,
		ErrCodeUnsupportedOperation,
		ErrCodeUnauthorized,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
	}

	seen := make(map[ErrorCode]bool, len(codes))
	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
		if seen[code] {
			t.Errorf("duplicate error code: %v", code)
		}
		seen[code] = true
	}
}
