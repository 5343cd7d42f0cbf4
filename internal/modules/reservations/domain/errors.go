package domain

import "errors"

var (
	ErrNotFound         = errors.New("reservation not found")
	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrInvalidPartySize = errors.New("invalid party size")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time")
	ErrMissingName      = errors.New("missing name")
)
