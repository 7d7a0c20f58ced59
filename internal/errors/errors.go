// Package errors defines the typed error taxonomy shared by the CLI, HTTP
// and MCP surfaces. Best-effort paths (memory capture) never surface these
// to their caller; request/response paths map Status onto HTTP codes.
package errors

import "fmt"

// ErrorCode identifies a coachmem error category.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404
	ErrEmbeddingFailed ErrorCode = "EMBEDDING_FAILED" // 502
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// CoachError is a structured error with code, status and optional details.
type CoachError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CoachError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *CoachError {
	return &CoachError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing session or segment.
func NewNotFound(identifier string) *CoachError {
	return &CoachError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewEmbeddingFailed creates a 502 error for an embedding-gateway failure.
// The memory writer catches and suppresses this; only the search path may
// observe it before degrading to an empty result.
func NewEmbeddingFailed(err error) *CoachError {
	msg := "embedding request failed"
	if err != nil {
		msg = fmt.Sprintf("embedding request failed: %v", err)
	}
	return &CoachError{
		Code:    ErrEmbeddingFailed,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *CoachError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &CoachError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a CoachError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*CoachError); ok {
		return cErr.Code == code
	}
	return false
}
