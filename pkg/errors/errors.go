package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Client-facing reasons returned in the "error" field of 4xx responses.
const (
	ReasonMissingFields   = "Missing required fields"
	ReasonNoData          = "No data provided"
	ReasonNoValidFields   = "No valid fields to update"
	ReasonInvalidID       = "Invalid user id"
	ReasonUserNotFound    = "User not found"
	ReasonInvalidJSONBody = "Invalid JSON body"
)

// Common application errors
var (
	ErrNotFound        = NewNotFoundError("user", ReasonUserNotFound)
	ErrMissingFields   = NewValidationError("", ReasonMissingFields)
	ErrNoData          = NewValidationError("", ReasonNoData)
	ErrNoValidFields   = NewValidationError("", ReasonNoValidFields)
	ErrInvalidID       = NewValidationError("id", ReasonInvalidID)
	ErrInvalidJSONBody = NewValidationError("", ReasonInvalidJSONBody)
)

// ValidationError represents a client input failure. Message is the
// machine-readable reason sent back to the caller.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// AlreadyExistsError represents a uniqueness violation reported by storage.
// The HTTP surface reports it as a server error carrying the driver text.
type AlreadyExistsError struct {
	Resource string
	Field    string
	Err      error
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource, field string, err error) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		Field:    field,
		Err:      err,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s with this %s already exists", e.Resource, e.Field)
}

// Unwrap returns the wrapped error
func (e *AlreadyExistsError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *AlreadyExistsError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
// The wrapped error text wins because callers surface it verbatim.
func (e *InternalError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatuser is implemented by errors that know their HTTP status.
type HTTPStatuser interface {
	HTTPStatus() int
}

// StatusOf walks the error chain and returns the first HTTP status found,
// or 500 when no error in the chain carries one.
func StatusOf(err error) int {
	var s HTTPStatuser
	if stderrors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// IsAlreadyExists reports whether err is an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var ae *AlreadyExistsError
	return stderrors.As(err, &ae)
}
