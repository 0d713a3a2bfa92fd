package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Yada error code.
type ErrorCode string

const (
	ErrDuplicateIdentifier ErrorCode = "DUPLICATE_IDENTIFIER" // 409
	ErrEmptyComposition    ErrorCode = "EMPTY_COMPOSITION"    // 422
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrPersistenceFailure  ErrorCode = "PERSISTENCE_FAILURE"  // 500
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// YadaError represents a structured error with code, status, and details.
type YadaError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *YadaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDuplicateIdentifier creates a 409 error for a food identifier that
// already exists in the catalog, in either the basic or composite group.
func NewDuplicateIdentifier(identifier string) *YadaError {
	return &YadaError{
		Code:    ErrDuplicateIdentifier,
		Status:  409,
		Message: fmt.Sprintf("food already exists: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewEmptyComposition creates a 422 error for a composite food created
// with no components.
func NewEmptyComposition(identifier string) *YadaError {
	return &YadaError{
		Code:    ErrEmptyComposition,
		Status:  422,
		Message: fmt.Sprintf("composite food %q has no components", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewNotFound creates a 404 error for when a food cannot be found.
func NewNotFound(identifier string) *YadaError {
	return &YadaError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("food not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *YadaError {
	return &YadaError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewPersistenceFailure creates a 500 error for an I/O failure while
// saving or loading a data file. In-memory state is unaffected.
func NewPersistenceFailure(file string, err error) *YadaError {
	return &YadaError{
		Code:    ErrPersistenceFailure,
		Status:  500,
		Message: fmt.Sprintf("persistence failure for %s: %v", file, err),
		Details: map[string]any{"file": file},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *YadaError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &YadaError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a YadaError with the given code.
// Wrapped YadaErrors are unwrapped.
func Is(err error, code ErrorCode) bool {
	var yErr *YadaError
	if stderrors.As(err, &yErr) {
		return yErr.Code == code
	}
	return false
}
