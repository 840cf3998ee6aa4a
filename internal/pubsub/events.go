// Package pubsub provides a generic publish/subscribe event system used to
// fan registry changes and log entries out to the TUI.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	EntryAdded     EventType = "entry_added"
	EntryUpdated   EventType = "entry_updated"
	EntryDeleted   EventType = "entry_deleted"
	OrderChanged   EventType = "order_changed"
	RegistryLoaded EventType = "registry_loaded"
	LogEmitted     EventType = "log_emitted"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
