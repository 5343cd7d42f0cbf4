package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reservation is a confirmed booking of seats for a party.
type Reservation struct {
	ID        string
	Name      string
	Phone     string
	PartySize int
	Date      time.Time
	Time      ClockTime
	Status    ReservationStatus
	CreatedAt time.Time
}

// NewReservationID returns a short guest-facing reference such as R-1A2B3C4D5E.
func NewReservationID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "R-" + strings.ToUpper(hex[:10])
}

// NormalizeReservationID trims and uppercases a guest-supplied reference.
func NormalizeReservationID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ReservationView is the JSON projection returned to guests.
type ReservationView struct {
	ReservationID string  `json:"reservation_id"`
	Name          string  `json:"name"`
	Phone         *string `json:"phone"`
	Guests        int     `json:"guests"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
}

// View projects the reservation for guests, rendering the time as a 12h label.
func (r Reservation) View() ReservationView {
	view := ReservationView{
		ReservationID: r.ID,
		Name:          r.Name,
		Guests:        r.PartySize,
		Date:          DateKey(r.Date),
		Time:          r.Time.Label(),
	}
	if phone := strings.TrimSpace(r.Phone); phone != "" {
		view.Phone = &phone
	}
	return view
}

// Summary renders the multi-line confirmation shown in chat.
func (r Reservation) Summary(heading string) string {
	return fmt.Sprintf("%s\n- Reference: %s\n- Name: %s\n- Guests: %d\n- Date: %s\n- Time: %s",
		heading, r.ID, r.Name, r.PartySize, DateKey(r.Date), r.Time.Label())
}
