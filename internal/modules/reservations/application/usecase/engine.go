package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"mesaYaBooking/internal/modules/reservations/application/port"
	"mesaYaBooking/internal/modules/reservations/domain"
)

// CreateInput carries the fields required to book a table.
type CreateInput struct {
	Name      string
	Phone     string
	PartySize int
	Date      time.Time
	Time      domain.ClockTime
}

// ModifyInput carries optional replacements; nil fields keep the current value.
type ModifyInput struct {
	PartySize *int
	Date      *time.Time
	Time      *domain.ClockTime
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithClock overrides the time source used for CreatedAt and event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides reservation reference generation.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithObserver attaches cache and operation instrumentation.
func WithObserver(o port.Observer) EngineOption {
	return func(e *Engine) {
		e.observer = o
	}
}

// Engine answers availability questions and applies reservation writes against a seat capacity.
// Occupancy per date is cached and dropped whenever a write touches the date.
type Engine struct {
	config    domain.RestaurantConfig
	store     port.ReservationStore
	publisher port.EventPublisher
	observer  port.Observer
	cache     *occupancyCache
	now       func() time.Time
	newID     func() string

	// mu serialises capacity checks with the writes that depend on them.
	mu sync.Mutex
}

func NewEngine(config domain.RestaurantConfig, store port.ReservationStore, publisher port.EventPublisher, opts ...EngineOption) *Engine {
	engine := &Engine{
		config:    config,
		store:     store,
		publisher: publisher,
		cache:     newOccupancyCache(),
		now:       time.Now,
		newID:     domain.NewReservationID,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Config returns the restaurant configuration the engine enforces.
func (e *Engine) Config() domain.RestaurantConfig {
	return e.config
}

// TotalSeats returns the seat capacity shared by every slot.
func (e *Engine) TotalSeats() int {
	return e.config.TotalSeats
}

// Availability lists start times on date where a party of the given size fits.
func (e *Engine) Availability(ctx context.Context, date time.Time, partySize int) ([]domain.ClockTime, error) {
	if partySize < 1 {
		return nil, domain.ErrInvalidPartySize
	}
	seatMap, err := e.SeatMap(ctx, date)
	if err != nil {
		return nil, err
	}
	available := make([]domain.ClockTime, 0, len(seatMap))
	for _, slot := range seatMap {
		if slot.SeatsLeft >= partySize {
			available = append(available, slot.Time)
		}
	}
	return available, nil
}

// SeatMap reports, per start slot, the seats left across the whole turn. A start whose turn runs
// past the last start slot has no seats left.
func (e *Engine) SeatMap(ctx context.Context, date time.Time) ([]domain.SlotCapacity, error) {
	date = domain.NormalizeDate(date)

	e.mu.Lock()
	used, err := e.occupancyLocked(ctx, date)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	sched := e.config.Schedule
	starts := sched.StartSlots(date)
	result := make([]domain.SlotCapacity, 0, len(starts))
	for _, start := range starts {
		left := e.config.TotalSeats
		for _, slot := range sched.OccupiedSlots(start) {
			seats, ok := used[slot]
			if !ok {
				left = 0
				break
			}
			if free := e.config.TotalSeats - seats; free < left {
				left = free
			}
		}
		if left < 0 {
			left = 0
		}
		result = append(result, domain.SlotCapacity{Time: start, SeatsLeft: left})
	}
	return result, nil
}

// Create books a new reservation when the party fits for its whole turn.
func (e *Engine) Create(ctx context.Context, in CreateInput) (domain.Reservation, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Reservation{}, domain.ErrMissingName
	}
	if in.PartySize < 1 {
		return domain.Reservation{}, domain.ErrInvalidPartySize
	}
	date := domain.NormalizeDate(in.Date)

	e.mu.Lock()
	ok, err := e.canFitLocked(ctx, date, in.Time, in.PartySize, nil)
	if err != nil {
		e.mu.Unlock()
		e.observe("create", "error")
		return domain.Reservation{}, err
	}
	if !ok {
		e.mu.Unlock()
		e.observe("create", "unavailable")
		return domain.Reservation{}, domain.ErrSlotUnavailable
	}

	reservation := domain.Reservation{
		ID:        e.newID(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		PartySize: in.PartySize,
		Date:      date,
		Time:      in.Time,
		Status:    domain.ReservationStatusConfirmed,
		CreatedAt: e.now().UTC(),
	}
	if err := e.store.Insert(ctx, reservation); err != nil {
		e.mu.Unlock()
		e.observe("create", "error")
		return domain.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}
	e.cache.invalidate(domain.DateKey(date))
	e.mu.Unlock()

	e.observe("create", "ok")
	slog.Info("reservation created", slog.String("reservationId", reservation.ID), slog.String("date", domain.DateKey(date)), slog.String("time", reservation.Time.String()), slog.Int("guests", reservation.PartySize))
	e.publish(ctx, domain.Event{Action: domain.EventCreated, Reservation: reservation, OccurredAt: e.now().UTC()})
	return reservation, nil
}

// Modify changes party size, date or time of an existing reservation. The reservation's own seats
// are ignored while checking the new slot.
func (e *Engine) Modify(ctx context.Context, id string, in ModifyInput) (domain.Reservation, error) {
	id = domain.NormalizeReservationID(id)

	e.mu.Lock()
	current, err := e.store.Get(ctx, id)
	if err != nil {
		e.mu.Unlock()
		e.observe("modify", resultFor(err))
		return domain.Reservation{}, err
	}

	updated := current
	if in.PartySize != nil {
		updated.PartySize = *in.PartySize
	}
	if in.Date != nil {
		updated.Date = domain.NormalizeDate(*in.Date)
	}
	if in.Time != nil {
		updated.Time = *in.Time
	}
	if updated.PartySize < 1 {
		e.mu.Unlock()
		e.observe("modify", "invalid")
		return domain.Reservation{}, domain.ErrInvalidPartySize
	}

	ok, err := e.canFitLocked(ctx, updated.Date, updated.Time, updated.PartySize, &current)
	if err != nil {
		e.mu.Unlock()
		e.observe("modify", "error")
		return domain.Reservation{}, err
	}
	if !ok {
		e.mu.Unlock()
		e.observe("modify", "unavailable")
		return domain.Reservation{}, domain.ErrSlotUnavailable
	}
	if err := e.store.Update(ctx, updated); err != nil {
		e.mu.Unlock()
		e.observe("modify", resultFor(err))
		return domain.Reservation{}, fmt.Errorf("update reservation: %w", err)
	}
	e.cache.invalidate(domain.DateKey(current.Date), domain.DateKey(updated.Date))
	e.mu.Unlock()

	e.observe("modify", "ok")
	slog.Info("reservation updated", slog.String("reservationId", id), slog.String("date", domain.DateKey(updated.Date)), slog.String("time", updated.Time.String()), slog.Int("guests", updated.PartySize))
	event := domain.Event{Action: domain.EventUpdated, Reservation: updated, OccurredAt: e.now().UTC()}
	if !domain.SameDate(current.Date, updated.Date) {
		event.PreviousDate = current.Date
	}
	e.publish(ctx, event)
	return updated, nil
}

// Cancel removes the reservation and returns it marked as cancelled.
func (e *Engine) Cancel(ctx context.Context, id string) (domain.Reservation, error) {
	id = domain.NormalizeReservationID(id)

	e.mu.Lock()
	removed, err := e.store.Delete(ctx, id)
	if err != nil {
		e.mu.Unlock()
		e.observe("cancel", resultFor(err))
		return domain.Reservation{}, err
	}
	e.cache.invalidate(domain.DateKey(removed.Date))
	e.mu.Unlock()

	removed.Status = domain.ReservationStatusCancelled
	e.observe("cancel", "ok")
	slog.Info("reservation cancelled", slog.String("reservationId", id), slog.String("date", domain.DateKey(removed.Date)))
	e.publish(ctx, domain.Event{Action: domain.EventCancelled, Reservation: removed, OccurredAt: e.now().UTC()})
	return removed, nil
}

// Get returns the reservation with the given reference.
func (e *Engine) Get(ctx context.Context, id string) (domain.Reservation, error) {
	return e.store.Get(ctx, domain.NormalizeReservationID(id))
}

// List returns the reservations of a date ordered by start time, then creation.
func (e *Engine) List(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	items, err := e.store.ListByDate(ctx, domain.NormalizeDate(date))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Time != items[j].Time {
			return items[i].Time.Before(items[j].Time)
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// Invalidate drops cached occupancy for the dates, e.g. after another instance wrote to a shared store.
// It waits for any occupancy rebuild in flight, so a rebuild never caches a map older than the call.
func (e *Engine) Invalidate(dates ...time.Time) {
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		if key := domain.DateKey(d); key != "" {
			keys = append(keys, key)
		}
	}
	e.mu.Lock()
	e.cache.invalidate(keys...)
	e.mu.Unlock()
}

func (e *Engine) canFitLocked(ctx context.Context, date time.Time, start domain.ClockTime, partySize int, ignore *domain.Reservation) (bool, error) {
	sched := e.config.Schedule
	if !sched.IsStartSlot(date, start) {
		return false, nil
	}

	used, err := e.occupancyLocked(ctx, date)
	if err != nil {
		return false, err
	}

	var released map[domain.ClockTime]struct{}
	if ignore != nil && domain.SameDate(ignore.Date, date) {
		released = make(map[domain.ClockTime]struct{})
		for _, slot := range sched.OccupiedSlots(ignore.Time) {
			released[slot] = struct{}{}
		}
	}

	for _, slot := range sched.OccupiedSlots(start) {
		seats, ok := used[slot]
		if !ok {
			return false, nil
		}
		if _, ok := released[slot]; ok {
			seats -= ignore.PartySize
		}
		if seats+partySize > e.config.TotalSeats {
			return false, nil
		}
	}
	return true, nil
}

// occupancyLocked returns the cached occupancy for date, building it from the store on a miss.
// The returned map must not be mutated.
func (e *Engine) occupancyLocked(ctx context.Context, date time.Time) (occupancy, error) {
	key := domain.DateKey(date)
	if entry, ok := e.cache.get(key); ok {
		if e.observer != nil {
			e.observer.CacheHit()
		}
		return entry, nil
	}
	if e.observer != nil {
		e.observer.CacheMiss()
	}

	sched := e.config.Schedule
	used := make(occupancy)
	for _, slot := range sched.StartSlots(date) {
		used[slot] = 0
	}

	reservations, err := e.store.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list reservations for %s: %w", key, err)
	}
	for _, r := range reservations {
		for _, slot := range sched.OccupiedSlots(r.Time) {
			if _, ok := used[slot]; ok {
				used[slot] += r.PartySize
			}
		}
	}
	e.cache.set(key, used)
	return used, nil
}

func (e *Engine) publish(ctx context.Context, event domain.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		slog.Warn("reservation event publish failed", slog.String("action", string(event.Action)), slog.String("reservationId", event.Reservation.ID), slog.Any("error", err))
	}
}

func (e *Engine) observe(action, result string) {
	if e.observer != nil {
		e.observer.Operation(action, result)
	}
}

func resultFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
