package port

import (
	"context"
	"time"

	"mesaYaBooking/internal/modules/reservations/application/usecase"
	"mesaYaBooking/internal/modules/reservations/domain"
)

// ReservationService is the booking surface the chat assistant drives.
type ReservationService interface {
	Availability(ctx context.Context, date time.Time, partySize int) ([]domain.ClockTime, error)
	Create(ctx context.Context, in usecase.CreateInput) (domain.Reservation, error)
	Modify(ctx context.Context, id string, in usecase.ModifyInput) (domain.Reservation, error)
	Cancel(ctx context.Context, id string) (domain.Reservation, error)
	Get(ctx context.Context, id string) (domain.Reservation, error)
}

// ActionObserver counts handled chat actions.
type ActionObserver interface {
	ChatRequest(action string)
}
