package usecase

import (
	"context"
	"log/slog"
	"time"

	"mesaYaBooking/internal/modules/realtime/application/port"
	"mesaYaBooking/internal/modules/realtime/domain"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
	snapshots   *SnapshotUseCase
}

func NewBroadcastUseCase(b port.Broadcaster, snapshots *SnapshotUseCase) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b, snapshots: snapshots}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	uc.broadcaster.Broadcast(ctx, msg)
}

// RefreshDates broadcasts a fresh availability snapshot for every date.
func (uc *BroadcastUseCase) RefreshDates(ctx context.Context, dates ...time.Time) {
	if uc.snapshots == nil {
		return
	}
	for _, date := range dates {
		msg, err := uc.snapshots.Build(ctx, date)
		if err != nil {
			slog.Warn("availability snapshot refresh failed", slog.String("date", reservations.DateKey(date)), slog.Any("error", err))
			continue
		}
		uc.broadcaster.Broadcast(ctx, msg)
	}
}

// Publish streams a committed reservation event to local websocket clients followed by the
// refreshed snapshots of the dates it touched.
func (uc *BroadcastUseCase) Publish(ctx context.Context, event reservations.Event) error {
	uc.Execute(ctx, domain.BuildReservationMessage(event, nil))
	uc.RefreshDates(ctx, event.AffectedDates()...)
	return nil
}
