package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/modules/realtime/application/port"
	"mesaYaBooking/internal/modules/realtime/application/usecase"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
	"mesaYaBooking/internal/shared/auth"
)

// RefreshRequest names the date whose availability should be recomputed.
type RefreshRequest struct {
	Date string `json:"date"`
}

type RefreshResponse struct {
	Success bool   `json:"success"`
	Date    string `json:"date"`
}

// NewRefreshHTTPHandler drops the cached occupancy of a date and pushes a fresh snapshot to
// connected clients. Staff use it after editing reservations directly in the database.
func NewRefreshHTTPHandler(invalidator port.CacheInvalidator, broadcastUC *usecase.BroadcastUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req RefreshRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		date, err := reservations.ParseDate(req.Date)
		if err != nil {
			return err
		}

		invalidator.Invalidate(date)
		broadcastUC.RefreshDates(c.Request().Context(), date)

		subject := ""
		if claims := auth.ClaimsFrom(c); claims != nil {
			subject = claims.Subject
		}
		slog.Info("availability refreshed", slog.String("date", reservations.DateKey(date)), slog.String("subject", subject))
		return c.JSON(http.StatusOK, RefreshResponse{Success: true, Date: reservations.DateKey(date)})
	}
}
