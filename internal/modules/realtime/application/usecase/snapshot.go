package usecase

import (
	"context"
	"fmt"
	"time"

	"mesaYaBooking/internal/modules/realtime/application/port"
	"mesaYaBooking/internal/modules/realtime/domain"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

// SnapshotUseCase builds availability snapshots from the reservation engine.
type SnapshotUseCase struct {
	seats port.SeatMapProvider
	now   func() time.Time
}

func NewSnapshotUseCase(seats port.SeatMapProvider) *SnapshotUseCase {
	return &SnapshotUseCase{seats: seats, now: time.Now}
}

// Build returns the availability.snapshot message for date.
func (uc *SnapshotUseCase) Build(ctx context.Context, date time.Time) (*domain.Message, error) {
	capacities, err := uc.seats.SeatMap(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("seat map %s: %w", reservations.DateKey(date), err)
	}
	return domain.BuildSnapshotMessage(date, uc.seats.TotalSeats(), capacities, uc.now()), nil
}

// ForDate parses a YYYY-MM-DD date and builds its snapshot.
func (uc *SnapshotUseCase) ForDate(ctx context.Context, raw string) (time.Time, *domain.Message, error) {
	date, err := reservations.ParseDate(raw)
	if err != nil {
		return time.Time{}, nil, err
	}
	msg, err := uc.Build(ctx, date)
	if err != nil {
		return time.Time{}, nil, err
	}
	return date, msg, nil
}
