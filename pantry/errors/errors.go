// errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured error carrying a machine-readable code, a
// human-readable message and the HTTP status the API layer answers with.
type Error struct {
	// Code is a machine-readable error code (e.g., "not_found", "validation_failed")
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Status is the HTTP status code (not included in JSON)
	Status int `json:"-"`

	// Details contains additional error context (optional)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error (not included in JSON)
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code, so the
// package sentinels (ErrValidation, ErrConflict, ...) match any error of
// their kind regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail adds a single detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Wrap attaches an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// HTTPStatus returns the HTTP status code for the error.
func (e *Error) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// New creates a new Error with code, message, and HTTP status.
func New(code, message string, status int) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// From extracts an *Error from err if possible, or wraps it as an internal error.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{
		Code:    CodeInternalError,
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Is is errors.Is, re-exported so callers need only this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As, re-exported so callers need only this package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Error codes.
const (
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeConflict         = "conflict"
	CodeInternalError    = "internal_error"
	CodeValidationFailed = "validation_failed"
	CodeOutOfRange       = "out_of_range"
)

// Sentinels for errors.Is. They are never returned directly; every failure
// carries its own message and only the code is compared.
var (
	ErrValidation = &Error{Code: CodeValidationFailed}
	ErrConflict   = &Error{Code: CodeConflict}
	ErrNotFound   = &Error{Code: CodeNotFound}
	ErrOutOfRange = &Error{Code: CodeOutOfRange}
)

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

// NotFound creates a 404 Not Found error. Unresolvable currency tokens use it.
func NotFound(message string) *Error {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// MethodNotAllowed creates a 405 Method Not Allowed error.
func MethodNotAllowed(message string) *Error {
	return New(CodeMethodNotAllowed, message, http.StatusMethodNotAllowed)
}

// Conflict creates a 409 Conflict error. Duplicate currency codes or names use it.
func Conflict(message string) *Error {
	return New(CodeConflict, message, http.StatusConflict)
}

// Internal creates a 500 Internal Server Error.
func Internal(message string) *Error {
	return New(CodeInternalError, message, http.StatusInternalServerError)
}

// Validation creates a 400 Bad Request error with the validation code.
func Validation(message string) *Error {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

// OutOfRange creates a 422 error for amounts outside the supported range.
func OutOfRange(message string) *Error {
	return New(CodeOutOfRange, message, http.StatusUnprocessableEntity)
}

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidationErrors collects field-level validation failures.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

// NewValidationErrors creates an empty ValidationErrors.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]FieldError, 0),
	}
}

// AddWithCode adds a field error with a code.
func (v *ValidationErrors) AddWithCode(field, message, code string) *ValidationErrors {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message, Code: code})
	return v
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToError converts the collected failures into a validation *Error whose
// "fields" detail lists them. It returns nil when nothing was collected.
func (v *ValidationErrors) ToError(message string) *Error {
	if !v.HasErrors() {
		return nil
	}
	return Validation(message).WithDetail("fields", v.Errors)
}
