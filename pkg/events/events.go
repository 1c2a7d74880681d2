// Package events defines the flow alert events exchanged with the workflow engine and the delivery subsystem.
package events

import (
	"time"

	"github.com/dukex/flowalert/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topics.
const FlowEventsTopic = "flowalert.flow.events" // Events emitted by the workflow engine
const AlertsTopic = "flowalert.alerts"          // Composed alerts for the delivery subsystem

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Flow lifecycle events that may trigger an alert.
	FlowFirstFailureEvent         EventType = "flow.first_failure"
	FlowFailedEvent               EventType = "flow.failed"
	FlowSucceededEvent            EventType = "flow.succeeded"
	ExecutorUpdateFailedEventType EventType = "executor.update_failed"

	// Output event.
	AlertComposedEvent EventType = "alert.composed"
)

type BaseEvent struct {
	ID           string         `json:"id"`
	Type         EventType      `json:"type"`
	Timestamp    time.Time      `json:"timestamp"`
	DispatcherID string         `json:"dispatcher_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// NewBaseEvent creates a base event with a fresh id and the current time.
func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

// FlowFirstFailure is emitted when a running flow sees its first failed node.
type FlowFirstFailure struct {
	BaseEvent

	Flow *models.FlowExecution `json:"flow" validate:"required"`
}

func (e FlowFirstFailure) GetType() EventType {
	return FlowFirstFailureEvent
}

// FlowFailed is emitted when a flow finishes in failure.
type FlowFailed struct {
	BaseEvent

	Flow           *models.FlowExecution   `json:"flow"                      validate:"required"`
	PastExecutions []*models.FlowExecution `json:"past_executions,omitempty"`
	Reasons        []string                `json:"reasons,omitempty"`
}

func (e FlowFailed) GetType() EventType {
	return FlowFailedEvent
}

// FlowSucceeded is emitted when a flow finishes successfully.
type FlowSucceeded struct {
	BaseEvent

	Flow *models.FlowExecution `json:"flow" validate:"required"`
}

func (e FlowSucceeded) GetType() EventType {
	return FlowSucceededEvent
}

// ExecutorUpdateFailed is emitted when the engine could not refresh the
// status of executions running on an executor.
type ExecutorUpdateFailed struct {
	BaseEvent

	Flows    []*models.FlowExecution `json:"flows"    validate:"required,min=1"`
	Executor *models.Executor        `json:"executor" validate:"required"`
	Error    *UpdateError            `json:"error,omitempty"`
}

func (e ExecutorUpdateFailed) GetType() EventType {
	return ExecutorUpdateFailedEventType
}

// AlertComposed carries a composed message to the delivery subsystem.
type AlertComposed struct {
	BaseEvent

	Kind         string   `json:"kind"`
	Composer     string   `json:"composer"`
	ExecutionIDs []int    `json:"execution_ids"`
	To           []string `json:"to"`
	MimeType     string   `json:"mime_type"`
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
}

func (e AlertComposed) GetType() EventType {
	return AlertComposedEvent
}
