// Package composer turns flow execution state into alert content.
//
// A Composer implements four alert kinds. Every operation either leaves the
// message untouched and returns false, because nobody is subscribed to that
// kind of alert, or fills the message completely and returns true. Errors are
// reserved for defects in the input, such as an unrecognised failure action;
// the message is left untouched in that case too.
package composer

import (
	"fmt"

	"github.com/dukex/flowalert/pkg/mail"
	"github.com/dukex/flowalert/pkg/models"
)

// Composer builds alert messages for one output format.
type Composer interface {
	// ComposeFirstFailureAlert is sent the first time a flow sees a failing node.
	ComposeFirstFailureAlert(flow *models.FlowExecution, msg *mail.Message) (bool, error)

	// ComposeFailureAlert reports a failed flow. past and reasons are optional context.
	ComposeFailureAlert(flow *models.FlowExecution, past []*models.FlowExecution, msg *mail.Message, reasons ...string) (bool, error)

	// ComposeSuccessAlert reports a flow that finished successfully.
	ComposeSuccessAlert(flow *models.FlowExecution, msg *mail.Message) (bool, error)

	// ComposeExecutorUpdateFailureAlert reports that the status of the given
	// executions could not be refreshed from executor. Recipients come from the
	// first flow's options.
	ComposeExecutorUpdateFailureAlert(flows []*models.FlowExecution, executor *models.Executor, updateErr error, msg *mail.Message) (bool, error)
}

// Kind names an alert kind.
type Kind string

const (
	KindFirstFailure          Kind = "first-failure"
	KindFailure               Kind = "failure"
	KindSuccess               Kind = "success"
	KindExecutorUpdateFailure Kind = "executor-update-failure"
)

// Kinds lists every alert kind.
func Kinds() []Kind {
	return []Kind{KindFirstFailure, KindFailure, KindSuccess, KindExecutorUpdateFailure}
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for _, kind := range Kinds() {
		if string(kind) == s {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
