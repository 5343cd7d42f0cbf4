package domain

import "time"

const (
	DefaultSlotMinutes = 30
	DefaultTurnMinutes = 90
	DefaultTotalSeats  = 40
	DefaultName        = "Dining Reservation Chatbot"
)

// SlotSchedule describes when tables can be booked and how long a party holds its seats.
type SlotSchedule struct {
	Open        ClockTime
	Close       ClockTime
	SlotMinutes int
	TurnMinutes int
	// DaysOpen restricts bookable weekdays. Empty means open every day.
	DaysOpen []DayOfWeek
}

// DefaultSchedule mirrors the house schedule: 12:00 to 23:00, 30 minute slots, 90 minute turns.
func DefaultSchedule() SlotSchedule {
	return SlotSchedule{
		Open:        Clock(12, 0),
		Close:       Clock(23, 0),
		SlotMinutes: DefaultSlotMinutes,
		TurnMinutes: DefaultTurnMinutes,
	}
}

// OpenOn reports whether the restaurant takes bookings on the given date.
func (s SlotSchedule) OpenOn(date time.Time) bool {
	if len(s.DaysOpen) == 0 {
		return true
	}
	day := DayOfWeekFromTime(date)
	for _, open := range s.DaysOpen {
		if open == day {
			return true
		}
	}
	return false
}

// StartSlots lists the candidate start times for the date, from opening until one turn before
// closing. Occupancy is tracked on these slots only, so a party can book a start when every slot
// of its turn is itself a start slot.
func (s SlotSchedule) StartSlots(date time.Time) []ClockTime {
	if !s.OpenOn(date) || s.SlotMinutes <= 0 {
		return nil
	}
	latest := s.Close.Minutes() - s.TurnMinutes
	slots := make([]ClockTime, 0)
	for m := s.Open.Minutes(); m <= latest; m += s.SlotMinutes {
		slots = append(slots, ClockFromMinutes(m))
	}
	return slots
}

// OccupiedSlots lists the slots a party starting at start holds for its turn.
func (s SlotSchedule) OccupiedSlots(start ClockTime) []ClockTime {
	if s.SlotMinutes <= 0 {
		return nil
	}
	end := start.Minutes() + s.TurnMinutes
	slots := make([]ClockTime, 0, s.TurnMinutes/s.SlotMinutes+1)
	for m := start.Minutes(); m < end; m += s.SlotMinutes {
		slots = append(slots, ClockFromMinutes(m))
	}
	return slots
}

// BookableSlots lists the start slots whose whole turn stays on the start slots of the date.
func (s SlotSchedule) BookableSlots(date time.Time) []ClockTime {
	starts := s.StartSlots(date)
	set := make(map[ClockTime]struct{}, len(starts))
	for _, slot := range starts {
		set[slot] = struct{}{}
	}
	bookable := make([]ClockTime, 0, len(starts))
	for _, start := range starts {
		fits := true
		for _, slot := range s.OccupiedSlots(start) {
			if _, ok := set[slot]; !ok {
				fits = false
				break
			}
		}
		if fits {
			bookable = append(bookable, start)
		}
	}
	return bookable
}

// IsStartSlot reports whether t is one of the bookable start times for the date.
func (s SlotSchedule) IsStartSlot(date time.Time, t ClockTime) bool {
	for _, slot := range s.StartSlots(date) {
		if slot == t {
			return true
		}
	}
	return false
}

// RestaurantConfig holds the capacity settings of the single restaurant served.
type RestaurantConfig struct {
	Name       string
	TotalSeats int
	Schedule   SlotSchedule
}

// DefaultRestaurantConfig returns the house configuration.
func DefaultRestaurantConfig() RestaurantConfig {
	return RestaurantConfig{
		Name:       DefaultName,
		TotalSeats: DefaultTotalSeats,
		Schedule:   DefaultSchedule(),
	}
}

// SlotCapacity reports how many seats remain for a party starting at Time.
type SlotCapacity struct {
	Time      ClockTime
	SeatsLeft int
}
