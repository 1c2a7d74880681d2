package services

import (
	"context"
	"fmt"

	"github.com/dukex/flowalert/pkg/composer"
	"github.com/dukex/flowalert/pkg/mail"
	"github.com/dukex/flowalert/pkg/models"
	"github.com/dukex/flowalert/pkg/otelhelper"
	"github.com/dukex/flowalert/pkg/registry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ComposeRequest selects an alert kind and carries the inputs it needs.
type ComposeRequest struct {
	Kind composer.Kind

	// Composer overrides the flow's configured composer when set.
	Composer string

	// Flow is required by the first-failure, failure and success kinds.
	Flow    *models.FlowExecution
	Past    []*models.FlowExecution
	Reasons []string

	// Flows, Executor and UpdateErr are used by the executor-update-failure kind.
	Flows     []*models.FlowExecution
	Executor  *models.Executor
	UpdateErr error
}

// ComposeResult is the outcome of one composition.
type ComposeResult struct {
	Composed bool
	Composer string
	Message  *mail.Message
}

// ExecutionIDs returns the ids of the executions the request is about.
func (r ComposeRequest) ExecutionIDs() []int {
	if r.Kind == composer.KindExecutorUpdateFailure {
		ids := make([]int, 0, len(r.Flows))

		for _, flow := range r.Flows {
			if flow != nil {
				ids = append(ids, flow.ExecutionID)
			}
		}

		return ids
	}

	if r.Flow == nil {
		return nil
	}

	return []int{r.Flow.ExecutionID}
}

// composerName is the explicit override or the name configured on the flow.
func (r ComposeRequest) composerName() string {
	if r.Composer != "" {
		return r.Composer
	}

	if r.Kind == composer.KindExecutorUpdateFailure {
		if len(r.Flows) > 0 {
			return r.Flows[0].ExecutionOptions().Creator()
		}

		return ""
	}

	return r.Flow.ExecutionOptions().Creator()
}

// Alerts composes alert messages with composers resolved from a registry.
type Alerts struct {
	registry *registry.Registry
	tracer   trace.Tracer
}

// NewAlerts creates a new alerts service.
func NewAlerts(registry *registry.Registry, tracer trace.Tracer) *Alerts {
	if tracer == nil {
		tracer = otelhelper.Tracer("flowalert/services")
	}

	return &Alerts{
		registry: registry,
		tracer:   tracer,
	}
}

// Composers lists the registered composer names.
func (a *Alerts) Composers() []string {
	return a.registry.Names()
}

// Compose resolves the composer for req and runs the requested alert kind
// against a fresh message. The message is returned even when nothing was composed.
func (a *Alerts) Compose(ctx context.Context, req ComposeRequest) (*ComposeResult, error) {
	name, c := a.registry.Resolve(req.composerName())

	_, span := otelhelper.StartSpan(ctx, a.tracer, "alerts.compose",
		attribute.String(otelhelper.AlertKindKey, string(req.Kind)),
		attribute.String(otelhelper.ComposerKey, name),
		attribute.IntSlice(otelhelper.ExecutionIDKey, req.ExecutionIDs()),
	)
	defer span.End()

	msg := mail.NewMessage()

	composed, err := compose(c, req, msg)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, NewComposeError("Compose", string(req.Kind), err)
	}

	span.SetAttributes(attribute.Bool(otelhelper.AlertSentKey, composed))

	return &ComposeResult{
		Composed: composed,
		Composer: name,
		Message:  msg,
	}, nil
}

func compose(c composer.Composer, req ComposeRequest, msg *mail.Message) (bool, error) {
	switch req.Kind {
	case composer.KindFirstFailure:
		return c.ComposeFirstFailureAlert(req.Flow, msg)
	case composer.KindFailure:
		return c.ComposeFailureAlert(req.Flow, req.Past, msg, req.Reasons...)
	case composer.KindSuccess:
		return c.ComposeSuccessAlert(req.Flow, msg)
	case composer.KindExecutorUpdateFailure:
		return c.ComposeExecutorUpdateFailureAlert(req.Flows, req.Executor, req.UpdateErr, msg)
	default:
		return false, fmt.Errorf("%w: %q", composer.ErrUnknownKind, req.Kind)
	}
}
