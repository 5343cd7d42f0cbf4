package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/modules/realtime/application/usecase"
	domain "mesaYaBooking/internal/modules/realtime/domain"
	"mesaYaBooking/internal/modules/realtime/infrastructure"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var availabilityCounter atomic.Uint64

// NewAvailabilityWebsocketHandler exposes /ws/availability/:date. Guests need no token; the
// stream is scoped to the requested date.
func NewAvailabilityWebsocketHandler(hub *infrastructure.Hub, snapshots *usecase.SnapshotUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()
		rawDate := c.Param("date")

		date, err := reservations.ParseDate(rawDate)
		if err != nil {
			slog.Warn("availability ws invalid date", slog.String("date", rawDate), slog.String("ip", peerIP))
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("availability ws upgrade failed", slog.String("date", rawDate), slog.String("reqID", requestID), slog.Any("error", err))
			return err
		}

		dateKey := reservations.DateKey(date)
		sessionID := fmt.Sprintf("avail-%d", availabilityCounter.Add(1))
		client := infrastructure.NewClient(hub, conn, "guest", sessionID, dateKey, 16, newAvailabilityCommandHandler(dateKey, snapshots))

		// Attached before the snapshot is built: events committed meanwhile are delivered too.
		topics := domain.AvailabilityTopics()
		hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				domain.MetadataSessionID: sessionID,
				domain.MetadataDate:      dateKey,
			},
			Data: map[string]any{
				"date":          dateKey,
				"allowedTopics": topics,
			},
			Timestamp: time.Now().UTC(),
		})

		ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
		defer cancel()
		snapshot, err := snapshots.Build(ctx, date)
		if err != nil {
			slog.Error("availability ws snapshot failed", slog.String("date", dateKey), slog.String("sessionId", sessionID), slog.Any("error", err))
			sendCommandError(client, dateKey, domain.ActionSnapshot, "unable to load availability")
			return nil
		}
		client.SendDomainMessage(snapshot)

		slog.Info("availability ws connected", slog.String("date", dateKey), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
		return nil
	}
}
