package service

import (
	"errors"
	"fmt"
)

// ValidationError marks a request the caller got wrong: malformed payload,
// wrong event kind, secret mismatch, or project mismatch. The API layer
// reports these as 400.
type ValidationError struct {
	reason string
}

// NewValidationError creates a ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{reason: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.reason }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DependencyError marks a server-side failure before or after per-file
// processing: repository relationship resolution, or persisting the
// success activity for an already-created issue. The API layer reports
// these as 500.
type DependencyError struct {
	reason string
	cause  error
}

// NewDependencyError creates a DependencyError wrapping cause.
func NewDependencyError(cause error, format string, args ...any) *DependencyError {
	return &DependencyError{reason: fmt.Sprintf(format, args...), cause: cause}
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	if e.cause == nil {
		return e.reason
	}
	return fmt.Sprintf("%s: %v", e.reason, e.cause)
}

// Unwrap returns the underlying cause.
func (e *DependencyError) Unwrap() error { return e.cause }

// IsDependency reports whether err is a DependencyError.
func IsDependency(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}
