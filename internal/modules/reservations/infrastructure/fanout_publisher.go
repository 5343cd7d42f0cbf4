package infrastructure

import (
	"context"
	"errors"
	"sync"

	"mesaYaBooking/internal/modules/reservations/application/port"
	"mesaYaBooking/internal/modules/reservations/domain"
)

// FanoutPublisher forwards every event to each publisher, joining their errors.
type FanoutPublisher struct {
	mu         sync.RWMutex
	publishers []port.EventPublisher
}

func NewFanoutPublisher(publishers ...port.EventPublisher) *FanoutPublisher {
	f := &FanoutPublisher{}
	f.Add(publishers...)
	return f
}

// Add appends publishers, skipping nil ones. Subscribers that depend on the engine attach here
// once it exists.
func (f *FanoutPublisher) Add(publishers ...port.EventPublisher) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
}

func (f *FanoutPublisher) Publish(ctx context.Context, event domain.Event) error {
	f.mu.RLock()
	publishers := append([]port.EventPublisher(nil), f.publishers...)
	f.mu.RUnlock()

	var errs []error
	for _, p := range publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ port.EventPublisher = (*FanoutPublisher)(nil)
