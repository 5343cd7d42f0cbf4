package transport

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/modules/menu/domain"
)

// NewMenuHandler exposes GET /api/menu. Descriptions are included only with details=true.
func NewMenuHandler(menu domain.Menu) echo.HandlerFunc {
	return func(c echo.Context) error {
		details, _ := strconv.ParseBool(c.QueryParam("details"))
		categories := menu
		if !details {
			categories = menu.Compact()
		}
		return c.JSON(http.StatusOK, map[string]any{
			"categories": categories,
			"text":       menu.Render(details),
		})
	}
}
