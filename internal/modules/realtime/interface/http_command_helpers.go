package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"mesaYaBooking/internal/modules/realtime/application/usecase"
	domain "mesaYaBooking/internal/modules/realtime/domain"
	"mesaYaBooking/internal/modules/realtime/infrastructure"
)

// newAvailabilityCommandHandler serves the "snapshot" command. The payload may name another
// date; otherwise the client's own date is used.
func newAvailabilityCommandHandler(dateKey string, snapshots *usecase.SnapshotUseCase) infrastructure.CommandHandler {
	return func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		action := strings.ToLower(strings.TrimSpace(cmd.Action))
		if action != domain.ActionSnapshot {
			sendCommandError(client, dateKey, action, "unsupported action")
			return
		}

		var payload domain.SnapshotCommand
		if len(cmd.Payload) > 0 {
			if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
				sendCommandError(client, dateKey, action, "invalid payload")
				return
			}
		}
		target := strings.TrimSpace(payload.Date)
		if target == "" {
			target = dateKey
		}

		_, msg, err := snapshots.ForDate(ctx, target)
		if err != nil {
			slog.Warn("ws snapshot command failed", slog.String("sessionId", client.SessionID()), slog.String("date", target), slog.Any("error", err))
			sendCommandError(client, dateKey, action, err.Error())
			return
		}
		client.SendDomainMessage(msg)
	}
}

func sendCommandError(client *infrastructure.Client, dateKey, action, reason string) {
	metadata := map[string]string{
		domain.MetadataDate: dateKey,
		"action":            action,
	}
	if strings.TrimSpace(reason) != "" {
		metadata["reason"] = reason
	}
	client.SendDomainMessage(&domain.Message{
		Topic:      domain.ErrorTopic(domain.AvailabilityEntity),
		Entity:     domain.AvailabilityEntity,
		Action:     domain.ActionError,
		ResourceID: dateKey,
		Metadata:   metadata,
		Data: map[string]string{
			"error": reason,
		},
		Timestamp: time.Now().UTC(),
	})
}
