// Package services provides the alert composition service shared by the API, the CLI and the dispatcher.
package services

import (
	"errors"
	"fmt"

	"github.com/dukex/flowalert/pkg/composer"
)

// ErrInvalidRequest indicates a request that could not be decoded or validated.
var ErrInvalidRequest = errors.New("invalid request")

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, composer.ErrUnknownKind)
}

// IsComposeDefect checks if a composer rejected its input, which should return HTTP 422.
func IsComposeDefect(err error) bool {
	return !IsValidationError(err) && composer.IsInputError(err)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, message string, err error) *ServiceError {
	if err == nil {
		err = ErrInvalidRequest
	}

	return &ServiceError{
		Op:      op,
		Code:    "validation_error",
		Message: message,
		Err:     fmt.Errorf("%w: %w", ErrInvalidRequest, err),
	}
}

// NewComposeError wraps a composer failure for the given alert kind.
func NewComposeError(op, kind string, err error) *ServiceError {
	return &ServiceError{
		Op:   op,
		Code: "compose_error",
		Err:  fmt.Errorf("compose %s alert: %w", kind, err),
	}
}
