// Package domain defines the core domain models for TraceMesh.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
//
// @req RQ-0104
// @design DS-0104
type DomainError struct {
	Code    string // Error code (e.g., "TR-CONF-5020")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Remote Configuration Errors (CONF)
// ============================================================================

var (
	// ErrConfigFetch indicates the configuration fetch failed.
	ErrConfigFetch = NewDomainError("TR-CONF-5020", "configuration fetch failed")

	// ErrConfigDecode indicates the fetched configuration could not be decoded.
	ErrConfigDecode = NewDomainError("TR-CONF-5021", "configuration decode failed")

	// ErrConfigApply indicates the configuration could not be applied.
	ErrConfigApply = NewDomainError("TR-CONF-5022", "configuration apply failed")

	// ErrConfigInvalid indicates the configuration failed validation.
	ErrConfigInvalid = NewDomainError("TR-CONF-4000", "invalid configuration")
)

// ============================================================================
// Export Errors (EXPORT)
// ============================================================================

var (
	// ErrExportEncode indicates a span batch could not be serialized.
	ErrExportEncode = NewDomainError("TR-EXPORT-5030", "span batch encode failed")

	// ErrExportSend indicates the agent rejected or never received a batch.
	ErrExportSend = NewDomainError("TR-EXPORT-5031", "span batch send failed")

	// ErrExporterClosed indicates the exporter has shut down.
	ErrExporterClosed = NewDomainError("TR-EXPORT-4090", "exporter closed")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalError indicates an internal error.
	ErrInternalError = NewDomainError("TR-SYS-5000", "internal error")

	// ErrSpanNotFound indicates the requested in-flight span was not found.
	ErrSpanNotFound = NewDomainError("TR-SYS-4040", "span not found")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("TR-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("TR-ARG-1002", "missing required argument")
)
