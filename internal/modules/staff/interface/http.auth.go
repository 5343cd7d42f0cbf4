package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/modules/staff/application/usecase"
	"mesaYaBooking/internal/modules/staff/domain"
)

// NewLoginHandler exposes POST /api/auth/login.
func NewLoginHandler(uc *usecase.LoginUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.LoginRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		resp, err := uc.Execute(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	}
}
