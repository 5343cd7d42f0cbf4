package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	chatusecase "mesaYaBooking/internal/modules/chat/application/usecase"
	chattransport "mesaYaBooking/internal/modules/chat/interface"
	menu "mesaYaBooking/internal/modules/menu/domain"
	menutransport "mesaYaBooking/internal/modules/menu/interface"
	realtimeusecase "mesaYaBooking/internal/modules/realtime/application/usecase"
	"mesaYaBooking/internal/modules/realtime/infrastructure"
	realtimetransport "mesaYaBooking/internal/modules/realtime/interface"
	reservationusecase "mesaYaBooking/internal/modules/reservations/application/usecase"
	reservationtransport "mesaYaBooking/internal/modules/reservations/interface"
	staffusecase "mesaYaBooking/internal/modules/staff/application/usecase"
	stafftransport "mesaYaBooking/internal/modules/staff/interface"
	"mesaYaBooking/internal/platform/metrics"
	"mesaYaBooking/internal/shared/auth"
)

// Dependencies are the assembled components the HTTP surface routes to.
type Dependencies struct {
	Engine    *reservationusecase.Engine
	Chat      *chatusecase.ChatUseCase
	Menu      menu.Menu
	Hub       *infrastructure.Hub
	Snapshots *realtimeusecase.SnapshotUseCase
	Broadcast *realtimeusecase.BroadcastUseCase
	Login     *staffusecase.LoginUseCase
	Validator auth.TokenValidator
	Metrics   *metrics.Metrics
}

// New builds the echo instance with every route of the booking service.
func New(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorMapper().HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("reqID", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
			}
			slog.Debug("http request", attrs...)
			return nil
		},
	}))

	e.GET("/", chattransport.NewIndexHandler())
	e.POST("/chat", chattransport.NewChatHandler(deps.Chat))
	e.GET("/healthz", healthHandler(deps.Hub))
	e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))

	api := e.Group("/api")
	api.GET("/menu", menutransport.NewMenuHandler(deps.Menu))
	api.GET("/availability", reservationtransport.NewAvailabilityHandler(deps.Engine))
	api.GET("/seatmap", reservationtransport.NewSeatMapHandler(deps.Engine))
	api.POST("/auth/login", stafftransport.NewLoginHandler(deps.Login))

	requireStaff := auth.RequireRole(deps.Validator, auth.RoleStaff)
	api.GET("/reservations", reservationtransport.NewListReservationsHandler(deps.Engine), requireStaff)
	api.GET("/reservations/:id", reservationtransport.NewGetReservationHandler(deps.Engine), requireStaff)
	api.DELETE("/reservations/:id", reservationtransport.NewCancelReservationHandler(deps.Engine), requireStaff)
	api.POST("/availability/refresh", realtimetransport.NewRefreshHTTPHandler(deps.Engine, deps.Broadcast), requireStaff)

	e.GET("/ws/availability/:date", realtimetransport.NewAvailabilityWebsocketHandler(deps.Hub, deps.Snapshots))
	e.GET("/ws/notifications", realtimetransport.NewNotificationsWebsocketHandler(deps.Hub, deps.Validator))

	return e
}

func healthHandler(hub *infrastructure.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		clients := 0
		if hub != nil {
			clients = hub.ClientCount()
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"clients": clients,
		})
	}
}
