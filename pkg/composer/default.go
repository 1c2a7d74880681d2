package composer

import (
	"fmt"

	"github.com/dukex/flowalert/pkg/mail"
	"github.com/dukex/flowalert/pkg/models"
	"github.com/dukex/flowalert/pkg/timeutil"
)

var _ Composer = (*Default)(nil)

// Default is the HTML composer every registry falls back to.
type Default struct {
	formatter *timeutil.Formatter
	server    ServerInfo
}

type Option func(*Default)

// WithFormatter sets the time formatter used for the timing table.
func WithFormatter(formatter *timeutil.Formatter) Option {
	return func(d *Default) {
		if formatter != nil {
			d.formatter = formatter
		}
	}
}

// WithServer adds the installation name to subjects and execution links to bodies.
func WithServer(server ServerInfo) Option {
	return func(d *Default) {
		d.server = server
	}
}

func NewDefault(opts ...Option) *Default {
	d := &Default{formatter: timeutil.NewFormatter()}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Default) ComposeFirstFailureAlert(flow *models.FlowExecution, msg *mail.Message) (bool, error) {
	if flow == nil {
		return false, &ComposeError{Op: "ComposeFirstFailureAlert", Err: ErrNilFlow}
	}

	options := flow.ExecutionOptions()

	recipients := options.FailureRecipients()
	if len(recipients) == 0 {
		return false, nil
	}

	policy, err := policySentence(options.Action())
	if err != nil {
		return false, &ComposeError{Op: "ComposeFirstFailureAlert", ExecutionID: flow.ExecutionID, Err: err}
	}

	msg.AddAllToAddress(recipients)
	msg.SetMimeType(mail.MimeTypeHTML)
	msg.SetSubject(failedSubject(flow, d.server))
	msg.Append(
		outcomeHeading(flow, "failed", true),
		mail.Paragraph{Text: policy},
		timingTable(flow, d.formatter),
	)
	msg.Append(executionLink(flow, d.server)...)

	return true, nil
}

func (d *Default) ComposeFailureAlert(
	flow *models.FlowExecution,
	past []*models.FlowExecution,
	msg *mail.Message,
	reasons ...string,
) (bool, error) {
	if flow == nil {
		return false, &ComposeError{Op: "ComposeFailureAlert", Err: ErrNilFlow}
	}

	recipients := flow.ExecutionOptions().FailureRecipients()
	if len(recipients) == 0 {
		return false, nil
	}

	msg.AddAllToAddress(recipients)
	msg.SetMimeType(mail.MimeTypeHTML)
	msg.SetSubject(failedSubject(flow, d.server))
	msg.Append(
		outcomeHeading(flow, "failed", true),
		timingTable(flow, d.formatter),
	)
	msg.Append(failedJobs(flow)...)
	msg.Append(reasonList(reasons)...)
	msg.Append(pastExecutions(past, d.formatter)...)
	msg.Append(executionLink(flow, d.server)...)

	return true, nil
}

func (d *Default) ComposeSuccessAlert(flow *models.FlowExecution, msg *mail.Message) (bool, error) {
	if flow == nil {
		return false, &ComposeError{Op: "ComposeSuccessAlert", Err: ErrNilFlow}
	}

	recipients := flow.ExecutionOptions().SuccessRecipients()
	if len(recipients) == 0 {
		return false, nil
	}

	msg.AddAllToAddress(recipients)
	msg.SetMimeType(mail.MimeTypeHTML)
	msg.SetSubject(succeededSubject(flow, d.server))
	msg.Append(
		outcomeHeading(flow, "succeeded", false),
		timingTable(flow, d.formatter),
	)
	msg.Append(executionLink(flow, d.server)...)

	return true, nil
}

func (d *Default) ComposeExecutorUpdateFailureAlert(
	flows []*models.FlowExecution,
	executor *models.Executor,
	updateErr error,
	msg *mail.Message,
) (bool, error) {
	if len(flows) == 0 {
		return false, &ComposeError{Op: "ComposeExecutorUpdateFailureAlert", Err: ErrEmptyBatch}
	}

	for i, flow := range flows {
		if flow == nil {
			return false, &ComposeError{
				Op:      "ComposeExecutorUpdateFailureAlert",
				Message: fmt.Sprintf("batch entry %d", i),
				Err:     ErrNilFlow,
			}
		}
	}

	recipients := flows[0].ExecutionOptions().FailureRecipients()
	if len(recipients) == 0 {
		return false, nil
	}

	if executor == nil {
		return false, &ComposeError{Op: "ComposeExecutorUpdateFailureAlert", ExecutionID: flows[0].ExecutionID, Err: ErrNilExecutor}
	}

	msg.AddAllToAddress(recipients)
	msg.SetMimeType(mail.MimeTypeHTML)
	msg.SetSubject(updateFailedSubject(executor, d.server))
	msg.Append(
		mail.Heading{Level: 2, Text: "Flow status update failed on executor host " + executor.Host, Alert: true},
		mail.Paragraph{Text: "The status of at least one execution running on this executor could not be updated."},
		mail.Heading{Level: 3, Text: "Error details"},
		mail.Preformatted{Text: errorTrace(updateErr)},
		mail.Heading{Level: 3, Text: "Affected executions"},
		executionBullets(flows),
	)

	return true, nil
}
