package domain

import (
	"errors"

	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

var ErrMissingSession = errors.New("missing session id")

// Action names the structured operations the UI can request.
type Action string

const (
	ActionNone         Action = ""
	ActionAvailability Action = "availability"
	ActionBook         Action = "book"
	ActionModify       Action = "modify"
	ActionCancel       Action = "cancel"
	ActionMenu         Action = "menu"
	ActionChat         Action = "chat"
)

// ChatRequest is the payload posted by the web UI. Structured fields take precedence over the
// free text message.
type ChatRequest struct {
	SessionID     string `json:"session_id"`
	Message       string `json:"message"`
	Action        Action `json:"action"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Guests        int    `json:"guests"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	ReservationID string `json:"reservation_id"`
	MenuDetails   bool   `json:"menu_details"`
}

// ChatResponse carries the assistant reply plus optional structured data for the UI.
type ChatResponse struct {
	Reply             string                        `json:"reply"`
	AvailableTimes    []string                      `json:"available_times"`
	ActiveReservation *reservations.ReservationView `json:"active_reservation"`
}

// Reply builds a text-only response.
func Reply(text string) ChatResponse {
	return ChatResponse{Reply: text}
}
