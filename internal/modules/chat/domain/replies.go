package domain

const (
	ReplySelectDate          = "Select a date to check availability."
	ReplySelectGuests        = "Select number of guests to check availability."
	ReplyNoAvailability      = "No available times for the selected date and party size."
	ReplyAvailabilityShown   = "Available times shown."
	ReplyEnterName           = "Enter a name to place the reservation."
	ReplySelectBookingFields = "Select guests, date, and time to book."
	ReplyBookUnavailable     = "That time is no longer available. Please choose another available time."
	ReplyModifyUnavailable   = "That update is not available. Please choose another available time."
	ReplyProvideModifyRef    = "Provide a reservation reference to modify (e.g., R-XXXXXXXXXX)."
	ReplyProvideCancelRef    = "Provide a reservation reference to cancel (e.g., R-XXXXXXXXXX)."
	ReplyNotFound            = "Reservation not found. Check the reference and try again."
	HeadingConfirmed         = "Reservation confirmed."
	HeadingUpdated           = "Reservation updated."
	HeadingCancelled         = "Reservation cancelled."
	ReplyGreeting            = "How can I help? Use the controls to check availability, book, modify, cancel, or view the menu."
	ReplyAvailabilityHint    = "Use 'Check availability' with guests and date to see available times."
	ReplyBookHint            = "Use 'Book' with guests, date, time, and name to confirm a reservation."
	ReplyModifyHint          = "Use 'Modify' with your reservation reference and the new details."
	ReplyCancelHint          = "Use 'Cancel' with your reservation reference."
	ReplyFallback            = "I can help with table availability, reservations (book/modify/cancel), or the menu. Please use the controls on the left."
)
