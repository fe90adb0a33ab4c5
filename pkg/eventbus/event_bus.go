// Package eventbus carries domain events between the portal services and the
// automation worker.
package eventbus

import (
	"context"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/events"
)

type Event interface {
	GetType() events.EventType
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

type EventHandler func(ctx context.Context, event *events.DomainEvent) error

type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler)
	Subscribe(ctx context.Context) error
}

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}
