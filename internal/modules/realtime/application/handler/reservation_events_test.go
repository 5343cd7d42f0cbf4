package handler

import (
	"context"
	"sync"
	"testing"
	"time"

	"mesaYaBooking/internal/modules/realtime/application/usecase"
	"mesaYaBooking/internal/modules/realtime/domain"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	topics []string
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, msg.Topic)
}

type stubEngine struct {
	invalidated []string
}

func (s *stubEngine) Invalidate(dates ...time.Time) {
	for _, d := range dates {
		s.invalidated = append(s.invalidated, reservations.DateKey(d))
	}
}

func (s *stubEngine) SeatMap(context.Context, time.Time) ([]reservations.SlotCapacity, error) {
	return nil, nil
}

func (s *stubEngine) TotalSeats() int { return 40 }

func newHandler() (*ReservationEventHandler, *stubEngine, *recordingBroadcaster) {
	engine := &stubEngine{}
	b := &recordingBroadcaster{}
	uc := usecase.NewBroadcastUseCase(b, usecase.NewSnapshotUseCase(engine))
	return NewReservationEventHandler(" mesaya.reservations ", "node-a", engine, uc), engine, b
}

func TestHandleForeignEvent(t *testing.T) {
	h, engine, b := newHandler()
	if h.Topic() != "mesaya.reservations" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}

	msg := &domain.Message{
		Entity:   domain.ReservationsEntity,
		Action:   domain.ActionCancelled,
		Metadata: map[string]string{domain.MetadataDate: "2025-06-06", domain.MetadataOrigin: "node-b"},
	}
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(engine.invalidated) != 1 || engine.invalidated[0] != "2025-06-06" {
		t.Fatalf("expected cache invalidation, got %v", engine.invalidated)
	}
	if len(b.topics) != 2 || b.topics[0] != "reservations.cancelled" || b.topics[1] != "availability.snapshot" {
		t.Fatalf("unexpected broadcasts: %v", b.topics)
	}
}

func TestHandleSkipsOwnAndForeignEntities(t *testing.T) {
	h, engine, b := newHandler()

	own := &domain.Message{
		Entity:   domain.ReservationsEntity,
		Action:   domain.ActionCreated,
		Metadata: map[string]string{domain.MetadataDate: "2025-06-06", domain.MetadataOrigin: "node-a"},
	}
	other := &domain.Message{Entity: "users", Action: "created"}
	undated := &domain.Message{Entity: domain.ReservationsEntity, Action: domain.ActionCreated}

	for _, msg := range []*domain.Message{own, other, undated, nil} {
		if err := h.Handle(context.Background(), msg); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}
	if len(engine.invalidated) != 0 || len(b.topics) != 0 {
		t.Fatalf("expected no side effects, got invalidated=%v broadcasts=%v", engine.invalidated, b.topics)
	}
}
