package transport

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/modules/chat/application/usecase"
	chat "mesaYaBooking/internal/modules/chat/domain"
)

//go:embed web/index.html
var indexHTML []byte

// NewIndexHandler serves the single page UI at /.
func NewIndexHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.HTMLBlob(http.StatusOK, indexHTML)
	}
}

// NewChatHandler exposes POST /chat. Domain errors bubble up to the shared HTTP error handler.
func NewChatHandler(uc *usecase.ChatUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req chat.ChatRequest
		if err := c.Bind(&req); err != nil {
			slog.Debug("chat request decode failed", slog.String("ip", c.RealIP()), slog.Any("error", err))
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}

		resp, err := uc.Handle(c.Request().Context(), req)
		if err != nil {
			slog.Warn("chat request failed", slog.String("sessionId", req.SessionID), slog.String("action", string(req.Action)), slog.Any("error", err))
			return err
		}
		return c.JSON(http.StatusOK, resp)
	}
}
