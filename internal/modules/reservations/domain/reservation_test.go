package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestNormalizeReservationStatus(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected ReservationStatus
	}{
		{name: "confirmed lowercase", input: " confirmed ", expected: ReservationStatusConfirmed},
		{name: "american spelling", input: "canceled", expected: ReservationStatusCancelled},
		{name: "unknown passthrough", input: "delayed", expected: ReservationStatus("DELAYED")},
		{name: "empty", input: "  ", expected: ReservationStatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeReservationStatus(tc.input)
			if result != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestNewReservationID(t *testing.T) {
	pattern := regexp.MustCompile(`^R-[0-9A-F]{10}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id := NewReservationID()
		if !pattern.MatchString(id) {
			t.Fatalf("unexpected id format: %s", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestReservationViewAndSummary(t *testing.T) {
	r := Reservation{
		ID:        "R-ABCDEF0123",
		Name:      "Ada",
		PartySize: 4,
		Date:      time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Time:      Clock(19, 30),
	}

	view := r.View()
	if view.Phone != nil {
		t.Fatalf("expected nil phone, got %q", *view.Phone)
	}
	if view.Time != "7:30 PM" || view.Date != "2025-03-14" || view.Guests != 4 {
		t.Fatalf("unexpected view: %+v", view)
	}

	r.Phone = " 555-0101 "
	if view := r.View(); view.Phone == nil || *view.Phone != "555-0101" {
		t.Fatalf("expected trimmed phone, got %+v", view.Phone)
	}

	summary := r.Summary("Reservation confirmed.")
	expected := strings.Join([]string{
		"Reservation confirmed.",
		"- Reference: R-ABCDEF0123",
		"- Name: Ada",
		"- Guests: 4",
		"- Date: 2025-03-14",
		"- Time: 7:30 PM",
	}, "\n")
	if summary != expected {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
}

func TestEventAffectedDates(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	moved := Event{Reservation: Reservation{Date: day}, PreviousDate: day.AddDate(0, 0, -1)}
	if got := len(moved.AffectedDates()); got != 2 {
		t.Fatalf("expected 2 affected dates, got %d", got)
	}
	same := Event{Reservation: Reservation{Date: day}, PreviousDate: day}
	if got := len(same.AffectedDates()); got != 1 {
		t.Fatalf("expected 1 affected date, got %d", got)
	}
}
