// Package eventbus provides event-driven communication between the workflow engine, the alert dispatcher and the delivery subsystem.
package eventbus

import (
	"context"
	"errors"

	"github.com/dukex/flowalert/pkg/events"
)

// ErrUnknownEventType indicates a message whose event type cannot be decoded.
var ErrUnknownEventType = errors.New("unknown event type")

type Event interface {
	GetType() events.EventType
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler) error
	Subscribe(ctx context.Context) error
}

type EventHandler func(ctx context.Context, event any) error

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}

// TopicFor returns the topic events of the given type travel on.
func TopicFor(eventType events.EventType) string {
	if eventType == events.AlertComposedEvent {
		return events.AlertsTopic
	}

	return events.FlowEventsTopic
}

// NewEvent returns an empty event value of the given type, ready for decoding.
func NewEvent(eventType events.EventType) (any, error) {
	switch eventType {
	case events.FlowFirstFailureEvent:
		return &events.FlowFirstFailure{}, nil
	case events.FlowFailedEvent:
		return &events.FlowFailed{}, nil
	case events.FlowSucceededEvent:
		return &events.FlowSucceeded{}, nil
	case events.ExecutorUpdateFailedEventType:
		return &events.ExecutorUpdateFailed{}, nil
	case events.AlertComposedEvent:
		return &events.AlertComposed{}, nil
	default:
		return nil, ErrUnknownEventType
	}
}
