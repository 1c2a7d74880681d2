package events

import (
	"fmt"
	"io"
)

// UpdateError is an executor update failure reported by the workflow engine.
// It formats like a local error so composers can render its trace verbatim.
type UpdateError struct {
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

// NewUpdateError captures err's message and its %+v rendering as the trace.
func NewUpdateError(err error) *UpdateError {
	if err == nil {
		return nil
	}

	return &UpdateError{
		Message: err.Error(),
		Trace:   fmt.Sprintf("%+v", err),
	}
}

func (e *UpdateError) Error() string {
	return e.Message
}

// Format prints the full trace for %+v and the message otherwise.
func (e *UpdateError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && e.Trace != "" {
			_, _ = io.WriteString(s, e.Trace)

			return
		}

		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Message)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Message)
	default:
		_, _ = io.WriteString(s, e.Message)
	}
}

// Err returns the update error as an error value, nil when none was reported.
func (e ExecutorUpdateFailed) Err() error {
	if e.Error == nil {
		return nil
	}

	return e.Error
}
