package versionbump

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure so callers can react to it programmatically.
type ErrorCode string

const (
	// ErrCodeManifestIO indicates the manifest could not be read or written.
	ErrCodeManifestIO ErrorCode = "MANIFEST_IO"
	// ErrCodeManifestFormat indicates the manifest is not a valid document.
	ErrCodeManifestFormat ErrorCode = "MANIFEST_FORMAT"
	// ErrCodeMissingVersionField indicates the manifest lacks the version field.
	ErrCodeMissingVersionField ErrorCode = "MISSING_VERSION_FIELD"
	// ErrCodeUnparsableManifestVersion indicates the version field is present
	// but does not hold a semantic version string.
	ErrCodeUnparsableManifestVersion ErrorCode = "UNPARSABLE_MANIFEST_VERSION"
	// ErrCodeInvalidLabel indicates a pre-release or build label was rejected.
	ErrCodeInvalidLabel ErrorCode = "INVALID_LABEL"
	// ErrCodeInvalidVersion indicates a full version string was rejected.
	ErrCodeInvalidVersion ErrorCode = "INVALID_VERSION"
	// ErrCodeGit indicates a git operation failed.
	ErrCodeGit ErrorCode = "GIT"
)

// StructuredError carries an error code, a human-readable message, the
// underlying cause and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

func newError(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

func newErrorWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Context: context}
}

func wrapError(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause}
}

func wrapErrorWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// ErrorCodeOf returns the code of the first StructuredError in err's chain,
// or the empty code if there is none.
func ErrorCodeOf(err error) ErrorCode {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
