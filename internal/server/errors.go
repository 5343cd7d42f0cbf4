package server

import (
	"net/http"

	chat "mesaYaBooking/internal/modules/chat/domain"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
	staff "mesaYaBooking/internal/modules/staff/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/httputil"
)

// NewErrorMapper maps the sentinel errors of every module to HTTP responses.
func NewErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().WithMappings(
		httputil.ErrorMapping{Error: reservations.ErrInvalidDate, Status: http.StatusBadRequest, Message: "invalid date"},
		httputil.ErrorMapping{Error: reservations.ErrInvalidTime, Status: http.StatusBadRequest, Message: "invalid time"},
		httputil.ErrorMapping{Error: reservations.ErrInvalidPartySize, Status: http.StatusBadRequest, Message: "invalid party size"},
		httputil.ErrorMapping{Error: reservations.ErrMissingName, Status: http.StatusBadRequest, Message: "missing name"},
		httputil.ErrorMapping{Error: chat.ErrMissingSession, Status: http.StatusBadRequest, Message: "missing session id"},
		httputil.ErrorMapping{Error: reservations.ErrNotFound, Status: http.StatusNotFound, Message: "reservation not found"},
		httputil.ErrorMapping{Error: reservations.ErrSlotUnavailable, Status: http.StatusConflict, Message: "slot unavailable"},
		httputil.ErrorMapping{Error: auth.ErrMissingToken, Status: http.StatusUnauthorized, Message: "missing token"},
		httputil.ErrorMapping{Error: auth.ErrInvalidToken, Status: http.StatusUnauthorized, Message: "invalid token"},
		httputil.ErrorMapping{Error: staff.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
		httputil.ErrorMapping{Error: auth.ErrForbidden, Status: http.StatusForbidden, Message: "forbidden"},
		httputil.ErrorMapping{Error: staff.ErrLoginDisabled, Status: http.StatusServiceUnavailable, Message: "staff login disabled"},
	)
}
