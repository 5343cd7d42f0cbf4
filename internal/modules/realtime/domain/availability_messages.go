package domain

import (
	"time"

	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

// SlotView is one start slot of an availability snapshot.
type SlotView struct {
	Time      string `json:"time"`
	Label     string `json:"label"`
	SeatsLeft int    `json:"seats_left"`
}

// SnapshotPayload is the data of an availability.snapshot message.
type SnapshotPayload struct {
	Date       string     `json:"date"`
	TotalSeats int        `json:"total_seats"`
	Slots      []SlotView `json:"slots"`
}

// BuildSnapshotMessage composes the availability snapshot for a date.
func BuildSnapshotMessage(date time.Time, totalSeats int, capacities []reservations.SlotCapacity, at time.Time) *Message {
	dateKey := reservations.DateKey(date)
	slots := make([]SlotView, 0, len(capacities))
	for _, capacity := range capacities {
		slots = append(slots, SlotView{
			Time:      capacity.Time.String(),
			Label:     capacity.Time.Label(),
			SeatsLeft: capacity.SeatsLeft,
		})
	}
	return &Message{
		Topic:      SnapshotTopic(AvailabilityEntity),
		Entity:     AvailabilityEntity,
		Action:     ActionSnapshot,
		ResourceID: dateKey,
		Metadata:   map[string]string{MetadataDate: dateKey},
		Data: SnapshotPayload{
			Date:       dateKey,
			TotalSeats: totalSeats,
			Slots:      slots,
		},
		Timestamp: at.UTC(),
	}
}

// BuildReservationMessage composes the realtime form of a committed reservation event.
// The guest's phone number is never broadcast.
func BuildReservationMessage(event reservations.Event, extras map[string]string) *Message {
	action := string(event.Action)
	view := event.Reservation.View()
	view.Phone = nil

	metadata := map[string]string{MetadataDate: view.Date}
	if !event.PreviousDate.IsZero() && !reservations.SameDate(event.PreviousDate, event.Reservation.Date) {
		metadata[MetadataPreviousDate] = reservations.DateKey(event.PreviousDate)
	}
	metadata = mergeInto(metadata, extras)

	at := event.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	return &Message{
		Topic:      CustomTopic(ReservationsEntity, action),
		Entity:     ReservationsEntity,
		Action:     action,
		ResourceID: view.ReservationID,
		Metadata:   metadata,
		Data:       view,
		Timestamp:  at.UTC(),
	}
}

// AffectedDates returns the dates named by the message metadata, skipping malformed values.
func (m *Message) AffectedDates() []time.Time {
	var dates []time.Time
	for _, key := range []string{MetadataDate, MetadataPreviousDate} {
		raw := m.MetadataValue(key)
		if raw == "" {
			continue
		}
		date, err := reservations.ParseDate(raw)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

func mergeInto(target map[string]string, extras map[string]string) map[string]string {
	if len(extras) == 0 {
		return target
	}
	if target == nil {
		target = map[string]string{}
	}
	for key, value := range extras {
		trimmedKey := trim(key)
		trimmedValue := trim(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		target[trimmedKey] = trimmedValue
	}
	return target
}
