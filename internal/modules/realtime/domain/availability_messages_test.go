package domain

import (
	"testing"
	"time"

	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

func TestBuildSnapshotMessage(t *testing.T) {
	date := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.FixedZone("x", 3600))
	capacities := []reservations.SlotCapacity{
		{Time: reservations.Clock(12, 0), SeatsLeft: 40},
		{Time: reservations.Clock(19, 30), SeatsLeft: 6},
	}

	msg := BuildSnapshotMessage(date, 40, capacities, at)

	if msg.Topic != "availability.snapshot" || msg.Entity != AvailabilityEntity || msg.Action != ActionSnapshot {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	if msg.ResourceID != "2025-06-06" || msg.Metadata[MetadataDate] != "2025-06-06" {
		t.Fatalf("expected date scoping, got resource=%q metadata=%v", msg.ResourceID, msg.Metadata)
	}
	if !msg.Timestamp.Equal(at) || msg.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", msg.Timestamp)
	}
	payload, ok := msg.Data.(SnapshotPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", msg.Data)
	}
	if payload.TotalSeats != 40 || len(payload.Slots) != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if got := payload.Slots[1]; got.Time != "19:30" || got.Label != "7:30 PM" || got.SeatsLeft != 6 {
		t.Fatalf("unexpected slot: %+v", got)
	}
}

func TestBuildReservationMessage(t *testing.T) {
	event := reservations.Event{
		Action: reservations.EventUpdated,
		Reservation: reservations.Reservation{
			ID:        "R-ABCDEF0123",
			Name:      "Ana",
			Phone:     "555-0100",
			PartySize: 4,
			Date:      time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
			Time:      reservations.Clock(20, 0),
		},
		PreviousDate: time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		OccurredAt:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	msg := BuildReservationMessage(event, map[string]string{MetadataOrigin: " node-a ", "": "skip", "blank": " "})

	if msg.Topic != "reservations.updated" || msg.ResourceID != "R-ABCDEF0123" {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	expected := map[string]string{
		MetadataDate:         "2025-06-07",
		MetadataPreviousDate: "2025-06-06",
		MetadataOrigin:       "node-a",
	}
	if len(msg.Metadata) != len(expected) {
		t.Fatalf("expected metadata %v, got %v", expected, msg.Metadata)
	}
	for key, value := range expected {
		if msg.Metadata[key] != value {
			t.Fatalf("metadata %q expected %q got %q", key, value, msg.Metadata[key])
		}
	}
	view, ok := msg.Data.(reservations.ReservationView)
	if !ok {
		t.Fatalf("unexpected payload type %T", msg.Data)
	}
	if view.Phone != nil {
		t.Fatalf("phone must not be broadcast")
	}
	if view.Time != "8:00 PM" {
		t.Fatalf("unexpected time label %q", view.Time)
	}

	dates := msg.AffectedDates()
	if len(dates) != 2 || reservations.DateKey(dates[0]) != "2025-06-07" || reservations.DateKey(dates[1]) != "2025-06-06" {
		t.Fatalf("unexpected affected dates: %v", dates)
	}
}

func TestBuildReservationMessageSameDateOmitsPrevious(t *testing.T) {
	date := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	event := reservations.Event{
		Action:       reservations.EventCreated,
		Reservation:  reservations.Reservation{ID: "R-1", Date: date, Time: reservations.Clock(12, 0), PartySize: 2},
		PreviousDate: date,
	}

	msg := BuildReservationMessage(event, nil)
	if _, ok := msg.Metadata[MetadataPreviousDate]; ok {
		t.Fatalf("previousDate should be omitted, got %v", msg.Metadata)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("expected timestamp fallback")
	}
}

func TestAffectedDatesSkipsMalformed(t *testing.T) {
	msg := &Message{Metadata: map[string]string{MetadataDate: "tomorrow", MetadataPreviousDate: "2025-06-06"}}
	dates := msg.AffectedDates()
	if len(dates) != 1 || reservations.DateKey(dates[0]) != "2025-06-06" {
		t.Fatalf("unexpected dates: %v", dates)
	}
	var empty *Message
	if len(empty.AffectedDates()) != 0 {
		t.Fatalf("nil message should have no dates")
	}
}

func TestAvailabilityTopics(t *testing.T) {
	expected := []string{
		"availability.snapshot",
		"availability.error",
		"reservations.created",
		"reservations.updated",
		"reservations.cancelled",
	}
	topics := AvailabilityTopics()
	if len(topics) != len(expected) {
		t.Fatalf("expected %v got %v", expected, topics)
	}
	for i := range expected {
		if topics[i] != expected[i] {
			t.Fatalf("expected %v got %v", expected, topics)
		}
	}
	if CustomTopic(" ", "x") != "" {
		t.Fatalf("blank entity must yield empty topic")
	}
}
