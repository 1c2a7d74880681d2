package composer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFailureAction indicates execution options carry a failure action
	// outside the three recognised ones.
	ErrUnknownFailureAction = errors.New("unknown failure action")

	// ErrNilFlow indicates a composer was called without a flow execution.
	ErrNilFlow = errors.New("flow execution is nil")

	// ErrEmptyBatch indicates an executor update failure alert was requested for no flows.
	ErrEmptyBatch = errors.New("flow batch is empty")

	// ErrNilExecutor indicates an executor update failure alert was requested without an executor.
	ErrNilExecutor = errors.New("executor is nil")

	// ErrUnknownKind indicates an alert kind name that is not recognised.
	ErrUnknownKind = errors.New("unknown alert kind")
)

// ComposeError wraps composition defects with the operation and execution involved.
type ComposeError struct {
	Op          string // Composer operation (e.g. "ComposeFirstFailureAlert")
	ExecutionID int    // Execution id if applicable
	Message     string // Additional context
	Err         error  // Underlying error
}

func (e *ComposeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed for execution %d: %s (%v)", e.Op, e.ExecutionID, e.Message, e.Err)
	}

	return fmt.Sprintf("%s failed for execution %d: %v", e.Op, e.ExecutionID, e.Err)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for compose errors.
func (e *ComposeError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsUnknownFailureAction checks if an error was caused by an unrecognised failure action.
func IsUnknownFailureAction(err error) bool {
	return errors.Is(err, ErrUnknownFailureAction)
}

// IsInputError checks if an error indicates the composer was called with bad input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownFailureAction) ||
		errors.Is(err, ErrNilFlow) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, ErrNilExecutor) ||
		errors.Is(err, ErrUnknownKind)
}
