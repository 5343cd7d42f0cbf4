package handler

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaBooking/internal/modules/realtime/application/port"
	"mesaYaBooking/internal/modules/realtime/application/usecase"
	"mesaYaBooking/internal/modules/realtime/domain"
)

// ReservationEventHandler applies reservation events published by other instances: it drops
// the cached occupancy of the affected dates and relays the event to local websocket clients.
type ReservationEventHandler struct {
	kafkaTopic  string
	origin      string
	invalidator port.CacheInvalidator
	broadcastUC *usecase.BroadcastUseCase
}

func NewReservationEventHandler(kafkaTopic, origin string, invalidator port.CacheInvalidator, broadcastUC *usecase.BroadcastUseCase) *ReservationEventHandler {
	return &ReservationEventHandler{
		kafkaTopic:  strings.TrimSpace(kafkaTopic),
		origin:      strings.TrimSpace(origin),
		invalidator: invalidator,
		broadcastUC: broadcastUC,
	}
}

func (h *ReservationEventHandler) Topic() string { return h.kafkaTopic }

func (h *ReservationEventHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil || !strings.EqualFold(msg.Entity, domain.ReservationsEntity) {
		return nil
	}
	if h.origin != "" && msg.MetadataValue(domain.MetadataOrigin) == h.origin {
		return nil
	}

	dates := msg.AffectedDates()
	if len(dates) == 0 {
		slog.Warn("reservation event without date", slog.String("action", msg.Action), slog.String("resourceId", msg.ResourceID))
		return nil
	}
	if msg.Topic == "" {
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	}

	h.invalidator.Invalidate(dates...)
	h.broadcastUC.Execute(ctx, msg)
	h.broadcastUC.RefreshDates(ctx, dates...)
	slog.Info("reservation event applied", slog.String("action", msg.Action), slog.String("resourceId", msg.ResourceID), slog.String("origin", msg.MetadataValue(domain.MetadataOrigin)))
	return nil
}

var _ port.TopicHandler = (*ReservationEventHandler)(nil)
