package web

import (
	"errors"

	"github.com/dukex/flowalert/pkg/models"
)

// FlowAlertRequest is the body of first-failure and success previews.
type FlowAlertRequest struct {
	Flow *models.FlowExecution `json:"flow" validate:"required"`
}

// FailureAlertRequest is the body of failure previews.
type FailureAlertRequest struct {
	Flow           *models.FlowExecution   `json:"flow"                      validate:"required"`
	PastExecutions []*models.FlowExecution `json:"past_executions,omitempty" validate:"omitempty,dive,required"`
	Reasons        []string                `json:"reasons,omitempty"`
}

// ExecutorUpdateFailureRequest is the body of executor-update-failure previews.
type ExecutorUpdateFailureRequest struct {
	Flows    []*models.FlowExecution `json:"flows"           validate:"required,min=1,dive,required"`
	Executor *models.Executor        `json:"executor"        validate:"required"`
	Error    string                  `json:"error,omitempty"`
}

// UpdateErr returns the reported error, nil when the request carries none.
func (r ExecutorUpdateFailureRequest) UpdateErr() error {
	if r.Error == "" {
		return nil
	}

	return errors.New(r.Error)
}

// ComposersResponse lists the registered composers.
type ComposersResponse struct {
	Composers []string `json:"composers"`
	Default   string   `json:"default"`
}

// PreviewResponse is a composed, undelivered alert.
type PreviewResponse struct {
	Kind     string   `json:"kind"`
	Composer string   `json:"composer"`
	Composed bool     `json:"composed"`
	To       []string `json:"to"`
	MimeType string   `json:"mime_type,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Body     string   `json:"body,omitempty"`
}
