package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaBooking/internal/modules/reservations/application/usecase"
	"mesaYaBooking/internal/modules/reservations/domain"
	"mesaYaBooking/internal/modules/reservations/infrastructure"
	"mesaYaBooking/internal/shared/pagination"
)

var friday = time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) *usecase.Engine {
	t.Helper()
	cfg := domain.DefaultRestaurantConfig()
	cfg.TotalSeats = 10
	return usecase.NewEngine(cfg, infrastructure.NewMemoryStore(), nil)
}

func book(t *testing.T, e *usecase.Engine, name string, guests int, at domain.ClockTime) domain.Reservation {
	t.Helper()
	r, err := e.Create(context.Background(), usecase.CreateInput{Name: name, Phone: "555-" + name, PartySize: guests, Date: friday, Time: at})
	require.NoError(t, err)
	return r
}

func serve(t *testing.T, h echo.HandlerFunc, method, target string, params ...string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	return rec, h(c)
}

func TestAvailabilityHandler(t *testing.T) {
	engine := newEngine(t)
	book(t, engine, "ana", 8, domain.Clock(19, 0))

	rec, err := serve(t, NewAvailabilityHandler(engine), http.MethodGet, "/api/availability?date=2025-06-06&guests=4")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-06", body.Date)
	assert.Equal(t, 4, body.Guests)
	assert.Equal(t, TimeOption{Time: "12:00", Label: "12:00 PM"}, body.AvailableTimes[0])
	for _, option := range body.AvailableTimes {
		assert.NotEqual(t, "19:00", option.Time)
		assert.NotEqual(t, "18:00", option.Time)
	}
}

func TestAvailabilityHandlerValidation(t *testing.T) {
	engine := newEngine(t)
	cases := map[string]error{
		"/api/availability?date=06-06-2025&guests=2": domain.ErrInvalidDate,
		"/api/availability?date=2025-06-06":          domain.ErrInvalidPartySize,
		"/api/availability?date=2025-06-06&guests=0": domain.ErrInvalidPartySize,
	}
	for target, expected := range cases {
		_, err := serve(t, NewAvailabilityHandler(engine), http.MethodGet, target)
		assert.ErrorIs(t, err, expected, target)
	}
}

func TestSeatMapHandler(t *testing.T) {
	engine := newEngine(t)
	book(t, engine, "ana", 6, domain.Clock(12, 0))

	rec, err := serve(t, NewSeatMapHandler(engine), http.MethodGet, "/api/seatmap?date=2025-06-06")
	require.NoError(t, err)

	var body SeatMapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 10, body.TotalSeats)
	require.NotEmpty(t, body.Slots)
	assert.Equal(t, SlotView{Time: "12:00", Label: "12:00 PM", SeatsLeft: 4}, body.Slots[0])
}

func TestStaffReservationHandlers(t *testing.T) {
	engine := newEngine(t)
	late := book(t, engine, "bruno", 2, domain.Clock(20, 0))
	early := book(t, engine, "ana", 2, domain.Clock(12, 30))

	rec, err := serve(t, NewListReservationsHandler(engine), http.MethodGet, "/api/reservations?date=2025-06-06&limit=1")
	require.NoError(t, err)
	var page pagination.Page[StaffReservationView]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, early.ID, page.Items[0].ReservationID)
	assert.Equal(t, "12:30", page.Items[0].StartTime)
	assert.Equal(t, string(domain.ReservationStatusConfirmed), page.Items[0].Status)

	rec, err = serve(t, NewListReservationsHandler(engine), http.MethodGet, "/api/reservations?date=2025-06-06&q=BRU")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, late.ID, page.Items[0].ReservationID)

	rec, err = serve(t, NewGetReservationHandler(engine), http.MethodGet, "/api/reservations/x", "id", " "+late.ID+" ")
	require.NoError(t, err)
	var view StaffReservationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "bruno", view.Name)
	require.NotNil(t, view.Phone)
	assert.Equal(t, "555-bruno", *view.Phone)

	rec, err = serve(t, NewCancelReservationHandler(engine), http.MethodDelete, "/api/reservations/x", "id", late.ID)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, string(domain.ReservationStatusCancelled), view.Status)

	_, err = serve(t, NewGetReservationHandler(engine), http.MethodGet, "/api/reservations/x", "id", late.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = serve(t, NewCancelReservationHandler(engine), http.MethodDelete, "/api/reservations/x", "id", late.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
