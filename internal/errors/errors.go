package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Validation errors (VALIDATE-001 to VALIDATE-099), raised client-side
	// before any network call is issued
	ErrCodeFieldRequired ErrorCode = "VALIDATE-001"
	ErrCodeFieldInvalid  ErrorCode = "VALIDATE-002"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthCredentials    ErrorCode = "AUTH-001"
	ErrCodeAuthNotLoggedIn    ErrorCode = "AUTH-002"
	ErrCodeAuthTokenInvalid   ErrorCode = "AUTH-003"
	ErrCodeAuthRegisterFailed ErrorCode = "AUTH-004"

	// Token store errors (STORE-001 to STORE-099)
	ErrCodeStoreNotFound    ErrorCode = "STORE-001"
	ErrCodeStoreUnavailable ErrorCode = "STORE-002"
	ErrCodeStoreCorrupt     ErrorCode = "STORE-003"

	// Network errors (NET-001 to NET-099)
	ErrCodeNetworkFailure ErrorCode = "NET-001"
	ErrCodeNetworkTimeout ErrorCode = "NET-002"

	// Server/API errors (API-001 to API-099)
	ErrCodeServerRejected ErrorCode = "API-001"
	ErrCodeServerDecode   ErrorCode = "API-002"

	// Course collection errors (COURSE-001 to COURSE-099)
	ErrCodeCourseNotFound   ErrorCode = "COURSE-001"
	ErrCodeCourseReload     ErrorCode = "COURSE-002"
	ErrCodeCoursePageBounds ErrorCode = "COURSE-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
	ErrCodeFileUnmarshal   ErrorCode = "IO-003"
)

// Error represents an enhanced error with code, suggestions, and documentation
type Error struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new Error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *Error) WithDocs(url string) *Error {
	e.DocsURL = url
	return e
}

// CodeOf returns the ErrorCode carried by err, or the empty string when err
// does not wrap an *Error anywhere in its chain.
func CodeOf(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// IsValidation reports whether err is a client-side validation error.
// Validation errors block the network call that would otherwise follow.
func IsValidation(err error) bool {
	return strings.HasPrefix(string(CodeOf(err)), "VALIDATE-")
}

// Common error constructors for frequently used errors

// NewFieldRequiredError creates a missing required field error
func NewFieldRequiredError(field string) *Error {
	return New(ErrCodeFieldRequired, fmt.Sprintf("%s is required", field)).
		WithSuggestion(fmt.Sprintf("Provide a non-empty value for %s", field))
}

// NewCredentialError creates an invalid credentials error
func NewCredentialError(cause error) *Error {
	return Wrap(ErrCodeAuthCredentials, "invalid email or password", cause).
		WithSuggestion("Check your email and password and try again").
		WithSuggestion("Use 'classconnect auth forgot-password' to reset your password")
}

// NewNotLoggedInError creates an error for operations requiring a session
func NewNotLoggedInError() *Error {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'classconnect auth login' to authenticate")
}

// NewStoreUnavailableError creates a token store access error
func NewStoreUnavailableError(cause error) *Error {
	return Wrap(ErrCodeStoreUnavailable, "secure token store is unavailable", cause).
		WithSuggestion("Check permissions on the classconnect home directory").
		WithSuggestion("Set CLASSCONNECT_HOME to a writable location")
}

// NewNetworkError creates a transport failure error (no response received)
func NewNetworkError(cause error) *Error {
	return Wrap(ErrCodeNetworkFailure, "could not reach the ClassConnect platform", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify CLASSCONNECT_API_URL points at the right host")
}

// NewCourseNotFoundError creates a missing course error
func NewCourseNotFoundError(id string) *Error {
	return New(ErrCodeCourseNotFound, fmt.Sprintf("course not found: %s", id)).
		WithSuggestion("Run 'classconnect courses list' to see available courses")
}
