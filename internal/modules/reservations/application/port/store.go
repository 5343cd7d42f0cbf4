package port

import (
	"context"
	"time"

	"mesaYaBooking/internal/modules/reservations/domain"
)

// ReservationStore persists reservations. Get, Update and Delete return domain.ErrNotFound for
// unknown identifiers.
type ReservationStore interface {
	Get(ctx context.Context, id string) (domain.Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
	Insert(ctx context.Context, r domain.Reservation) error
	Update(ctx context.Context, r domain.Reservation) error
	Delete(ctx context.Context, id string) (domain.Reservation, error)
}
