package port

import (
	"context"

	"mesaYaBooking/internal/modules/reservations/domain"
)

// EventPublisher receives committed reservation changes.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// EventPublisherFunc adapts a function to EventPublisher.
type EventPublisherFunc func(ctx context.Context, event domain.Event) error

func (f EventPublisherFunc) Publish(ctx context.Context, event domain.Event) error {
	return f(ctx, event)
}

// Observer is notified of occupancy cache lookups and write outcomes.
type Observer interface {
	CacheHit()
	CacheMiss()
	Operation(action, result string)
}
