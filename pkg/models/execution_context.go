package models

// FailureAction is the flow's policy for the rest of the run once a node fails.
type FailureAction string

const (
	// FailureActionFinishCurrentlyRunning stops scheduling new nodes but lets running ones finish.
	FailureActionFinishCurrentlyRunning FailureAction = "FINISH_CURRENTLY_RUNNING"
	// FailureActionCancelAll kills every running node.
	FailureActionCancelAll FailureAction = "CANCEL_ALL"
	// FailureActionFinishAllPossible keeps running every node that does not depend on the failure.
	FailureActionFinishAllPossible FailureAction = "FINISH_ALL_POSSIBLE"
)

// Valid reports whether a is one of the three recognised actions.
func (a FailureAction) Valid() bool {
	switch a {
	case FailureActionFinishCurrentlyRunning, FailureActionCancelAll, FailureActionFinishAllPossible:
		return true
	default:
		return false
	}
}

func (a FailureAction) String() string {
	return string(a)
}

// ExecutionOptions is the per-execution notification policy.
type ExecutionOptions struct {
	FailureEmails []string      `json:"failure_emails,omitempty" validate:"omitempty,dive,email"`
	SuccessEmails []string      `json:"success_emails,omitempty" validate:"omitempty,dive,email"`
	FailureAction FailureAction `json:"failure_action,omitempty"`
	// MailCreator names the composer used for this execution's alerts.
	MailCreator string `json:"mail_creator,omitempty"`
}

// FailureRecipients returns the failure list; nil options yield an empty list.
func (o *ExecutionOptions) FailureRecipients() []string {
	if o == nil {
		return nil
	}

	return o.FailureEmails
}

// SuccessRecipients returns the success list; nil options yield an empty list.
func (o *ExecutionOptions) SuccessRecipients() []string {
	if o == nil {
		return nil
	}

	return o.SuccessEmails
}

// Action returns the configured failure action. An unset action is the
// engine default, FINISH_CURRENTLY_RUNNING; any other value is returned as-is
// so callers can reject it.
func (o *ExecutionOptions) Action() FailureAction {
	if o == nil || o.FailureAction == "" {
		return FailureActionFinishCurrentlyRunning
	}

	return o.FailureAction
}

// Creator returns the composer name for this execution, empty when unset.
func (o *ExecutionOptions) Creator() string {
	if o == nil {
		return ""
	}

	return o.MailCreator
}
