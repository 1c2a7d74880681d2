package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/flowalert/pkg/channels/gochannel"
	"github.com/dukex/flowalert/pkg/channels/kafka"
	"github.com/dukex/flowalert/pkg/eventbus"
)

// SupportedEventBusProviders lists the values accepted by NewEventBus.
var SupportedEventBusProviders = []string{"kafka", "gochannel"}

// NewEventBus creates an event bus for the given provider.
func NewEventBus(provider string, serviceName string, logger *slog.Logger) (*eventbus.WatermillEventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(wmLogger, serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(logger, pub, sub), nil
	case "gochannel":
		pub, sub, err := gochannel.CreateChannel(wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(logger, pub, sub), nil
	default:
		return nil, fmt.Errorf("unsupported event bus provider %q (supported: %v)", provider, SupportedEventBusProviders)
	}
}
