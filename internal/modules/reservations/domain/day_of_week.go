package domain

import (
	"strings"
	"time"
)

// DayOfWeek encapsulates the allowed opening days using uppercase english names.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var allowedDays = map[string]DayOfWeek{
	string(Monday):    Monday,
	string(Tuesday):   Tuesday,
	string(Wednesday): Wednesday,
	string(Thursday):  Thursday,
	string(Friday):    Friday,
	string(Saturday):  Saturday,
	string(Sunday):    Sunday,
	"MON":             Monday,
	"TUE":             Tuesday,
	"WED":             Wednesday,
	"THU":             Thursday,
	"FRI":             Friday,
	"SAT":             Saturday,
	"SUN":             Sunday,
}

var weekdays = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// NormalizeDaysOpen converts loosely formatted day names into a canonical, de-duplicated list.
// Unknown names are dropped.
func NormalizeDaysOpen(values []string) []DayOfWeek {
	if len(values) == 0 {
		return nil
	}

	var normalized []DayOfWeek
	seen := make(map[DayOfWeek]struct{}, len(values))
	for _, value := range values {
		day, ok := allowedDays[strings.ToUpper(strings.TrimSpace(value))]
		if !ok {
			continue
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		normalized = append(normalized, day)
	}
	return normalized
}

// DayOfWeekFromTime returns the DayOfWeek the date falls on.
func DayOfWeekFromTime(t time.Time) DayOfWeek {
	return weekdays[t.Weekday()]
}
