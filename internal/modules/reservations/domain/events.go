package domain

import "time"

// EventAction names a change applied to a reservation.
type EventAction string

const (
	EventCreated   EventAction = "created"
	EventUpdated   EventAction = "updated"
	EventCancelled EventAction = "cancelled"
)

// Event is emitted after a reservation write has been committed.
type Event struct {
	Action      EventAction
	Reservation Reservation
	// PreviousDate is set when an update moved the reservation to another date.
	PreviousDate time.Time
	OccurredAt   time.Time
}

// AffectedDates lists the dates whose availability changed, without duplicates.
func (e Event) AffectedDates() []time.Time {
	dates := []time.Time{NormalizeDate(e.Reservation.Date)}
	if !e.PreviousDate.IsZero() && !SameDate(e.PreviousDate, e.Reservation.Date) {
		dates = append(dates, NormalizeDate(e.PreviousDate))
	}
	return dates
}
