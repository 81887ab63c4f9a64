package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorFormat(t *testing.T) {
	err := NewDomainError("TR-CONF-5020", "configuration fetch failed")
	if got := err.Error(); got != "[TR-CONF-5020] configuration fetch failed" {
		t.Errorf("Error() = %q", got)
	}

	withDetails := err.WithDetails("endpoint unreachable")
	if got := withDetails.Error(); got != "[TR-CONF-5020] configuration fetch failed: endpoint unreachable" {
		t.Errorf("Error() with details = %q", got)
	}
}

func TestDomainErrorIs(t *testing.T) {
	err := ErrConfigApply.WithDetails("rate out of range")
	if !errors.Is(err, ErrConfigApply) {
		t.Error("errors.Is should match by code")
	}
	if errors.Is(err, ErrConfigFetch) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrConfigFetch.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIsDomainError(t *testing.T) {
	err := fmt.Errorf("apply: %w", ErrConfigInvalid)

	if !IsDomainError(err, "TR-CONF-4000") {
		t.Error("IsDomainError should find the wrapped code")
	}
	if IsDomainError(err, "TR-SYS-5000") {
		t.Error("IsDomainError should reject a different code")
	}
	if !IsDomainError(err, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}
	if IsDomainError(errors.New("plain"), "") {
		t.Error("plain errors are not domain errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(ErrSpanNotFound); code != "TR-SYS-4040" {
		t.Errorf("GetErrorCode = %q, want TR-SYS-4040", code)
	}
	if code := GetErrorCode(errors.New("plain")); code != "" {
		t.Errorf("GetErrorCode for plain error = %q, want empty", code)
	}
}
