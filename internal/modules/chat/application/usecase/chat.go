package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"mesaYaBooking/internal/modules/chat/application/port"
	chat "mesaYaBooking/internal/modules/chat/domain"
	menu "mesaYaBooking/internal/modules/menu/domain"
	booking "mesaYaBooking/internal/modules/reservations/application/usecase"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

// ChatUseCase turns UI actions and free text into reservation operations and replies.
type ChatUseCase struct {
	reservations port.ReservationService
	menu         menu.Menu
	sessions     *chat.SessionStore
	observer     port.ActionObserver
}

func NewChatUseCase(service port.ReservationService, m menu.Menu, sessions *chat.SessionStore, observer port.ActionObserver) *ChatUseCase {
	return &ChatUseCase{reservations: service, menu: m, sessions: sessions, observer: observer}
}

// Handle dispatches a chat request. Structured actions win; free text only gets guidance.
// Errors are returned for malformed input (bad date, time or party size) and store failures.
func (uc *ChatUseCase) Handle(ctx context.Context, req chat.ChatRequest) (chat.ChatResponse, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return chat.ChatResponse{}, chat.ErrMissingSession
	}
	text := chat.NormalizeText(req.Message)
	action := chat.Action(strings.ToLower(strings.TrimSpace(string(req.Action))))

	if action == chat.ActionMenu || chat.WantsMenu(text) {
		uc.count(chat.ActionMenu)
		details := req.MenuDetails || chat.WantsMenuDetails(text)
		return chat.Reply(uc.menu.Render(details)), nil
	}

	switch action {
	case chat.ActionAvailability:
		uc.count(action)
		return uc.availability(ctx, req)
	case chat.ActionBook:
		uc.count(action)
		return uc.book(ctx, sessionID, req)
	case chat.ActionModify:
		uc.count(action)
		return uc.modify(ctx, sessionID, req)
	case chat.ActionCancel:
		uc.count(action)
		return uc.cancel(ctx, sessionID, req)
	}

	uc.count(chat.ActionChat)
	return chat.Reply(chat.FallbackReply(text)), nil
}

func (uc *ChatUseCase) availability(ctx context.Context, req chat.ChatRequest) (chat.ChatResponse, error) {
	date, err := optionalDate(req.Date)
	if err != nil {
		return chat.ChatResponse{}, err
	}
	if date == nil {
		return chat.Reply(chat.ReplySelectDate), nil
	}
	if req.Guests == 0 {
		return chat.Reply(chat.ReplySelectGuests), nil
	}
	labels, err := uc.availableLabels(ctx, *date, req.Guests)
	if err != nil {
		return chat.ChatResponse{}, err
	}
	if len(labels) == 0 {
		return chat.ChatResponse{Reply: chat.ReplyNoAvailability, AvailableTimes: []string{}}, nil
	}
	return chat.ChatResponse{Reply: chat.ReplyAvailabilityShown, AvailableTimes: labels}, nil
}

func (uc *ChatUseCase) book(ctx context.Context, sessionID string, req chat.ChatRequest) (chat.ChatResponse, error) {
	date, err := optionalDate(req.Date)
	if err != nil {
		return chat.ChatResponse{}, err
	}
	clock, err := optionalClock(req.Time)
	if err != nil {
		return chat.ChatResponse{}, err
	}

	session := uc.sessions.Get(sessionID)
	name := strings.TrimSpace(firstNonEmpty(req.Name, session.Name))
	phone := strings.TrimSpace(firstNonEmpty(req.Phone, session.Phone))
	if name == "" {
		return chat.Reply(chat.ReplyEnterName), nil
	}
	if date == nil || clock == nil || req.Guests == 0 {
		return chat.Reply(chat.ReplySelectBookingFields), nil
	}

	created, err := uc.reservations.Create(ctx, booking.CreateInput{
		Name:      name,
		Phone:     phone,
		PartySize: req.Guests,
		Date:      *date,
		Time:      *clock,
	})
	if errors.Is(err, reservations.ErrSlotUnavailable) {
		labels, availErr := uc.availableLabels(ctx, *date, req.Guests)
		if availErr != nil {
			return chat.ChatResponse{}, availErr
		}
		return chat.ChatResponse{Reply: chat.ReplyBookUnavailable, AvailableTimes: labels}, nil
	}
	if err != nil {
		return chat.ChatResponse{}, err
	}

	uc.sessions.Update(sessionID, func(s *chat.Session) {
		if s.Name == "" {
			s.Name = name
		}
		if s.Phone == "" {
			s.Phone = phone
		}
		s.LastReservationID = created.ID
	})
	view := created.View()
	return chat.ChatResponse{Reply: created.Summary(chat.HeadingConfirmed), ActiveReservation: &view}, nil
}

func (uc *ChatUseCase) modify(ctx context.Context, sessionID string, req chat.ChatRequest) (chat.ChatResponse, error) {
	id := uc.resolveReservationID(sessionID, req.ReservationID)
	if id == "" {
		return chat.Reply(chat.ReplyProvideModifyRef), nil
	}
	current, err := uc.reservations.Get(ctx, id)
	if errors.Is(err, reservations.ErrNotFound) {
		return chat.Reply(chat.ReplyNotFound), nil
	}
	if err != nil {
		return chat.ChatResponse{}, err
	}

	date, err := optionalDate(req.Date)
	if err != nil {
		return chat.ChatResponse{}, err
	}
	clock, err := optionalClock(req.Time)
	if err != nil {
		return chat.ChatResponse{}, err
	}
	if date == nil {
		date = &current.Date
	}
	if clock == nil {
		clock = &current.Time
	}
	guests := req.Guests
	if guests == 0 {
		guests = current.PartySize
	}

	updated, err := uc.reservations.Modify(ctx, id, booking.ModifyInput{PartySize: &guests, Date: date, Time: clock})
	switch {
	case errors.Is(err, reservations.ErrSlotUnavailable):
		labels, availErr := uc.availableLabels(ctx, *date, guests)
		if availErr != nil {
			return chat.ChatResponse{}, availErr
		}
		return chat.ChatResponse{Reply: chat.ReplyModifyUnavailable, AvailableTimes: labels}, nil
	case errors.Is(err, reservations.ErrNotFound):
		return chat.Reply(chat.ReplyNotFound), nil
	case err != nil:
		return chat.ChatResponse{}, err
	}

	uc.sessions.Update(sessionID, func(s *chat.Session) {
		s.LastReservationID = updated.ID
	})
	view := updated.View()
	return chat.ChatResponse{Reply: updated.Summary(chat.HeadingUpdated), ActiveReservation: &view}, nil
}

func (uc *ChatUseCase) cancel(ctx context.Context, sessionID string, req chat.ChatRequest) (chat.ChatResponse, error) {
	id := uc.resolveReservationID(sessionID, req.ReservationID)
	if id == "" {
		return chat.Reply(chat.ReplyProvideCancelRef), nil
	}
	cancelled, err := uc.reservations.Cancel(ctx, id)
	if errors.Is(err, reservations.ErrNotFound) {
		return chat.Reply(chat.ReplyNotFound), nil
	}
	if err != nil {
		return chat.ChatResponse{}, err
	}

	uc.sessions.Update(sessionID, func(s *chat.Session) {
		if s.LastReservationID == id {
			s.LastReservationID = ""
		}
	})
	return chat.Reply(chat.HeadingCancelled + "\n- Reference: " + cancelled.ID), nil
}

func (uc *ChatUseCase) resolveReservationID(sessionID, requested string) string {
	if id := reservations.NormalizeReservationID(requested); id != "" {
		return id
	}
	return reservations.NormalizeReservationID(uc.sessions.Get(sessionID).LastReservationID)
}

func (uc *ChatUseCase) availableLabels(ctx context.Context, date time.Time, guests int) ([]string, error) {
	slots, err := uc.reservations.Availability(ctx, date, guests)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, slot.Label())
	}
	return labels, nil
}

func (uc *ChatUseCase) count(action chat.Action) {
	if uc.observer != nil {
		uc.observer.ChatRequest(string(action))
	}
}

func optionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	date, err := reservations.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func optionalClock(raw string) (*reservations.ClockTime, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	clock, err := reservations.ParseClockTime(raw)
	if err != nil {
		return nil, err
	}
	return &clock, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
