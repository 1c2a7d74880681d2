// Package dispatcher turns flow lifecycle events into composed alerts for the delivery subsystem.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dukex/flowalert/pkg/composer"
	"github.com/dukex/flowalert/pkg/eventbus"
	"github.com/dukex/flowalert/pkg/events"
	"github.com/dukex/flowalert/pkg/mail"
	"github.com/dukex/flowalert/pkg/otelhelper"
	"github.com/dukex/flowalert/pkg/services"
	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidEvent indicates an event payload that failed validation.
var ErrInvalidEvent = errors.New("invalid event")

type Dispatcher struct {
	id       string
	logger   *slog.Logger
	eventBus eventbus.EventBus
	alerts   *services.Alerts
	validate *validator.Validate
	tracer   trace.Tracer
}

func New(
	id string,
	eventBus eventbus.EventBus,
	alerts *services.Alerts,
	logger *slog.Logger,
	tracer trace.Tracer,
) *Dispatcher {
	if tracer == nil {
		tracer = otelhelper.Tracer("flowalert/dispatcher")
	}

	return &Dispatcher{
		id:       id,
		logger:   logger.With("module", "flowalert-dispatcher", "dispatcher_id", id),
		eventBus: eventBus,
		alerts:   alerts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tracer:   tracer,
	}
}

// Start registers the flow event handlers and begins consuming.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.InfoContext(ctx, "Starting dispatcher")

	handlers := map[events.EventType]eventbus.EventHandler{
		events.FlowFirstFailureEvent:         d.handleFlowFirstFailure,
		events.FlowFailedEvent:               d.handleFlowFailed,
		events.FlowSucceededEvent:            d.handleFlowSucceeded,
		events.ExecutorUpdateFailedEventType: d.handleExecutorUpdateFailed,
	}

	for eventType, handler := range handlers {
		err := d.eventBus.Handle(eventType, handler)
		if err != nil {
			return fmt.Errorf("handle %s: %w", eventType, err)
		}
	}

	err := d.eventBus.Subscribe(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to subscribe to event bus", "error", err)

		return err
	}

	d.logger.InfoContext(ctx, "Dispatcher started successfully")

	return nil
}

func (d *Dispatcher) handleFlowFirstFailure(ctx context.Context, event any) error {
	e, ok := event.(*events.FlowFirstFailure)
	if !ok {
		d.logger.ErrorContext(ctx, "Invalid event type for FlowFirstFailure")

		return nil
	}

	return d.dispatch(ctx, e.BaseEvent, e, services.ComposeRequest{
		Kind: composer.KindFirstFailure,
		Flow: e.Flow,
	})
}

func (d *Dispatcher) handleFlowFailed(ctx context.Context, event any) error {
	e, ok := event.(*events.FlowFailed)
	if !ok {
		d.logger.ErrorContext(ctx, "Invalid event type for FlowFailed")

		return nil
	}

	return d.dispatch(ctx, e.BaseEvent, e, services.ComposeRequest{
		Kind:    composer.KindFailure,
		Flow:    e.Flow,
		Past:    e.PastExecutions,
		Reasons: e.Reasons,
	})
}

func (d *Dispatcher) handleFlowSucceeded(ctx context.Context, event any) error {
	e, ok := event.(*events.FlowSucceeded)
	if !ok {
		d.logger.ErrorContext(ctx, "Invalid event type for FlowSucceeded")

		return nil
	}

	return d.dispatch(ctx, e.BaseEvent, e, services.ComposeRequest{
		Kind: composer.KindSuccess,
		Flow: e.Flow,
	})
}

func (d *Dispatcher) handleExecutorUpdateFailed(ctx context.Context, event any) error {
	e, ok := event.(*events.ExecutorUpdateFailed)
	if !ok {
		d.logger.ErrorContext(ctx, "Invalid event type for ExecutorUpdateFailed")

		return nil
	}

	return d.dispatch(ctx, e.BaseEvent, e, services.ComposeRequest{
		Kind:      composer.KindExecutorUpdateFailure,
		Flows:     e.Flows,
		Executor:  e.Executor,
		UpdateErr: e.Err(),
	})
}

// dispatch composes the alert for one event and publishes it when composed.
// Events that can never compose are logged and dropped; publish failures are
// returned so the message is redelivered.
func (d *Dispatcher) dispatch(ctx context.Context, base events.BaseEvent, event any, req services.ComposeRequest) error {
	ctx, span := otelhelper.StartSpan(ctx, d.tracer, "dispatcher.dispatch",
		attribute.String(otelhelper.EventIDKey, base.ID),
		attribute.String(otelhelper.DispatcherIDKey, d.id),
		attribute.String(otelhelper.AlertKindKey, string(req.Kind)),
	)
	defer span.End()

	logger := d.logger.With("event_id", base.ID, "kind", req.Kind, "execution_ids", req.ExecutionIDs())
	logger.InfoContext(ctx, "Processing flow event")

	err := d.validate.Struct(event)
	if err != nil {
		otelhelper.SetError(span, err)
		logger.ErrorContext(ctx, "Dropping invalid event", "error", fmt.Errorf("%w: %w", ErrInvalidEvent, err))

		return nil
	}

	result, err := d.alerts.Compose(ctx, req)
	if err != nil {
		otelhelper.SetError(span, err)

		if composer.IsInputError(err) {
			logger.ErrorContext(ctx, "Dropping event the composer rejected", "error", err)

			return nil
		}

		logger.ErrorContext(ctx, "Failed to compose alert", "error", err)

		return pkgerrors.WithStack(err)
	}

	span.SetAttributes(
		attribute.String(otelhelper.ComposerKey, result.Composer),
		attribute.Bool(otelhelper.AlertSentKey, result.Composed),
	)

	if !result.Composed {
		logger.DebugContext(ctx, "Nothing to notify", "composer", result.Composer)

		return nil
	}

	composed := newAlertComposed(d.id, req, result)

	err = d.eventBus.Publish(ctx, publishKey(req), composed)
	if err != nil {
		otelhelper.SetError(span, err)
		logger.ErrorContext(ctx, "Failed to publish composed alert", "error", err)

		return pkgerrors.Wrap(err, "publish composed alert")
	}

	logger.InfoContext(ctx, "Published composed alert",
		"composer", result.Composer,
		"alert_id", composed.ID,
		"recipients", len(composed.To),
	)

	return nil
}

func newAlertComposed(dispatcherID string, req services.ComposeRequest, result *services.ComposeResult) events.AlertComposed {
	msg := result.Message

	composed := events.AlertComposed{
		BaseEvent:    events.NewBaseEvent(events.AlertComposedEvent),
		Kind:         string(req.Kind),
		Composer:     result.Composer,
		ExecutionIDs: req.ExecutionIDs(),
		To:           msg.To(),
		MimeType:     msg.MimeType(),
		Subject:      msg.Subject(),
		Body:         mail.Render(msg),
	}
	composed.DispatcherID = dispatcherID

	return composed
}

// publishKey partitions alerts by flow, or by executor host for update failures.
func publishKey(req services.ComposeRequest) string {
	if req.Kind == composer.KindExecutorUpdateFailure {
		if req.Executor != nil {
			return req.Executor.Host
		}

		return ""
	}

	if req.Flow == nil {
		return ""
	}

	return req.Flow.FlowID + "/" + strconv.Itoa(req.Flow.ExecutionID)
}
