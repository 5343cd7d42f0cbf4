package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// Clock builds a ClockTime, wrapping values outside a single day.
func Clock(hour, minute int) ClockTime {
	return ClockFromMinutes(hour*60 + minute)
}

// ClockFromMinutes converts minutes since midnight into a ClockTime.
func ClockFromMinutes(minutes int) ClockTime {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return ClockTime{Hour: minutes / 60, Minute: minutes % 60}
}

// Minutes returns the number of minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Add returns the clock shifted by the given number of minutes.
func (c ClockTime) Add(minutes int) ClockTime {
	return ClockFromMinutes(c.Minutes() + minutes)
}

// Before reports whether c is strictly earlier than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.Minutes() < other.Minutes()
}

// String renders the 24h HH:MM form used on the wire.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Label renders the 12h form shown to guests, e.g. "8:30 PM".
func (c ClockTime) Label() string {
	suffix := "AM"
	if c.Hour >= 12 {
		suffix = "PM"
	}
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, suffix)
}

// ParseClockTime parses a 24h HH:MM value.
func ParseClockTime(raw string) (ClockTime, error) {
	trimmed := strings.TrimSpace(raw)
	hh, mm, ok := strings.Cut(trimmed, ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ParseClockLabel parses the 12h label produced by Label.
func ParseClockLabel(raw string) (ClockTime, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	var suffix string
	switch {
	case strings.HasSuffix(trimmed, "AM"):
		suffix = "AM"
	case strings.HasSuffix(trimmed, "PM"):
		suffix = "PM"
	default:
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	clock, err := ParseClockTime(strings.TrimSpace(strings.TrimSuffix(trimmed, suffix)))
	if err != nil || clock.Hour < 1 || clock.Hour > 12 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	hour := clock.Hour % 12
	if suffix == "PM" {
		hour += 12
	}
	return ClockTime{Hour: hour, Minute: clock.Minute}, nil
}

// ParseDate parses a YYYY-MM-DD date into UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return parsed, nil
}

// NormalizeDate drops the time-of-day and location, keeping the calendar date.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey returns the YYYY-MM-DD form of the date.
func DateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// SameDate reports whether both values fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}
