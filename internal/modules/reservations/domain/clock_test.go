package domain

import (
	"errors"
	"testing"
)

func TestClockLabel(t *testing.T) {
	cases := map[ClockTime]string{
		Clock(0, 0):   "12:00 AM",
		Clock(9, 5):   "9:05 AM",
		Clock(12, 0):  "12:00 PM",
		Clock(13, 30): "1:30 PM",
		Clock(23, 59): "11:59 PM",
	}
	for clock, expected := range cases {
		if got := clock.Label(); got != expected {
			t.Fatalf("Label(%s) expected %q got %q", clock, expected, got)
		}
		parsed, err := ParseClockLabel(expected)
		if err != nil {
			t.Fatalf("ParseClockLabel(%q) unexpected error: %v", expected, err)
		}
		if parsed != clock {
			t.Fatalf("ParseClockLabel(%q) expected %s got %s", expected, clock, parsed)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	valid := map[string]ClockTime{
		"12:00":   Clock(12, 0),
		" 8:30 ":  Clock(8, 30),
		"23:59":   Clock(23, 59),
		"00:00":   Clock(0, 0),
	}
	for input, expected := range valid {
		got, err := ParseClockTime(input)
		if err != nil {
			t.Fatalf("ParseClockTime(%q) unexpected error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseClockTime(%q) expected %s got %s", input, expected, got)
		}
	}

	for _, input := range []string{"", "24:00", "12:60", "noon", "12", "-1:00"} {
		if _, err := ParseClockTime(input); !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("ParseClockTime(%q) expected ErrInvalidTime, got %v", input, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DateKey(d) != "2025-02-28" {
		t.Fatalf("unexpected key %s", DateKey(d))
	}
	for _, input := range []string{"", "2025-02-30", "28/02/2025"} {
		if _, err := ParseDate(input); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) expected ErrInvalidDate, got %v", input, err)
		}
	}
}

func TestClockAddWraps(t *testing.T) {
	if got := Clock(23, 30).Add(45); got != Clock(0, 15) {
		t.Fatalf("expected 00:15, got %s", got)
	}
}
