package domain

import "strings"

// ReservationStatus represents the lifecycle of a reservation.
type ReservationStatus string

const (
	ReservationStatusUnknown   ReservationStatus = ""
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

var allowedReservationStatuses = map[string]ReservationStatus{
	string(ReservationStatusConfirmed): ReservationStatusConfirmed,
	string(ReservationStatusCancelled): ReservationStatusCancelled,
	"CANCELED":                         ReservationStatusCancelled,
}

// NormalizeReservationStatus returns the canonical ReservationStatus for the given input.
// Unknown statuses are uppercased and returned as-is to avoid data loss.
func NormalizeReservationStatus(value string) ReservationStatus {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return ReservationStatusUnknown
	}
	if status, ok := allowedReservationStatuses[trimmed]; ok {
		return status
	}
	return ReservationStatus(trimmed)
}
