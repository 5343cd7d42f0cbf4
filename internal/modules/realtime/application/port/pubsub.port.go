package port

import (
	"context"
	"time"

	"mesaYaBooking/internal/modules/realtime/domain"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

// Broadcaster sends messages to connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles messages consumed from one broker topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// SeatMapProvider exposes the per-slot free seats of a date.
type SeatMapProvider interface {
	SeatMap(ctx context.Context, date time.Time) ([]reservations.SlotCapacity, error)
	TotalSeats() int
}

// CacheInvalidator drops cached occupancy for the given dates.
type CacheInvalidator interface {
	Invalidate(dates ...time.Time)
}
