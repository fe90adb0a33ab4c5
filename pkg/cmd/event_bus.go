package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/channels/gochannel"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/channels/kafka"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/eventbus"
)

// NewEventBus builds the event bus for the given provider. Kafka serves
// production; gochannel keeps single-process setups broker-free.
func NewEventBus(provider, brokers, serviceName string, logger *slog.Logger) eventbus.EventBus {
	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), strings.Split(brokers, ","), serviceName)
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	case "gochannel":
		pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
		if err != nil {
			panic(fmt.Errorf("failed to create gochannel pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	default:
		panic("Unsupported event bus provider: " + provider)
	}
}
