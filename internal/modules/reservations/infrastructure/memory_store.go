package infrastructure

import (
	"context"
	"sync"
	"time"

	"mesaYaBooking/internal/modules/reservations/application/port"
	"mesaYaBooking/internal/modules/reservations/domain"
)

// MemoryStore keeps reservations in process memory. Data is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]domain.Reservation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]domain.Reservation)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return r, nil
}

func (s *MemoryStore) ListByDate(_ context.Context, date time.Time) ([]domain.Reservation, error) {
	key := domain.DateKey(date)
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Reservation, 0)
	for _, r := range s.items {
		if domain.DateKey(r.Date) == key {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *MemoryStore) Insert(_ context.Context, r domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[r.ID] = r
	return nil
}

func (s *MemoryStore) Update(_ context.Context, r domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[r.ID]; !ok {
		return domain.ErrNotFound
	}
	s.items[r.ID] = r
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	delete(s.items, id)
	return r, nil
}

var _ port.ReservationStore = (*MemoryStore)(nil)
