package transport

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/modules/reservations/application/usecase"
	"mesaYaBooking/internal/modules/reservations/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/pagination"
)

type TimeOption struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

type AvailabilityResponse struct {
	Date           string       `json:"date"`
	Guests         int          `json:"guests"`
	AvailableTimes []TimeOption `json:"available_times"`
}

type SlotView struct {
	Time      string `json:"time"`
	Label     string `json:"label"`
	SeatsLeft int    `json:"seats_left"`
}

type SeatMapResponse struct {
	Date       string     `json:"date"`
	TotalSeats int        `json:"total_seats"`
	Slots      []SlotView `json:"slots"`
}

// StaffReservationView is the staff projection of a reservation; unlike the guest view it
// carries the status and creation time.
type StaffReservationView struct {
	domain.ReservationView
	StartTime string    `json:"start_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func staffView(r domain.Reservation) StaffReservationView {
	return StaffReservationView{
		ReservationView: r.View(),
		StartTime:       r.Time.String(),
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.UTC(),
	}
}

// NewAvailabilityHandler exposes GET /api/availability?date=YYYY-MM-DD&guests=N.
func NewAvailabilityHandler(engine *usecase.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := domain.ParseDate(c.QueryParam("date"))
		if err != nil {
			return err
		}
		guests, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("guests")))
		if err != nil {
			return domain.ErrInvalidPartySize
		}

		times, err := engine.Availability(c.Request().Context(), date, guests)
		if err != nil {
			return err
		}
		options := make([]TimeOption, 0, len(times))
		for _, t := range times {
			options = append(options, TimeOption{Time: t.String(), Label: t.Label()})
		}
		return c.JSON(http.StatusOK, AvailabilityResponse{
			Date:           domain.DateKey(date),
			Guests:         guests,
			AvailableTimes: options,
		})
	}
}

// NewSeatMapHandler exposes GET /api/seatmap?date=YYYY-MM-DD.
func NewSeatMapHandler(engine *usecase.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := domain.ParseDate(c.QueryParam("date"))
		if err != nil {
			return err
		}
		capacities, err := engine.SeatMap(c.Request().Context(), date)
		if err != nil {
			return err
		}
		slots := make([]SlotView, 0, len(capacities))
		for _, capacity := range capacities {
			slots = append(slots, SlotView{Time: capacity.Time.String(), Label: capacity.Time.Label(), SeatsLeft: capacity.SeatsLeft})
		}
		return c.JSON(http.StatusOK, SeatMapResponse{
			Date:       domain.DateKey(date),
			TotalSeats: engine.TotalSeats(),
			Slots:      slots,
		})
	}
}

// NewListReservationsHandler exposes GET /api/reservations?date=&page=&limit=&q= to staff.
func NewListReservationsHandler(engine *usecase.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := domain.ParseDate(c.QueryParam("date"))
		if err != nil {
			return err
		}
		list, err := engine.List(c.Request().Context(), date)
		if err != nil {
			return err
		}
		query := pagination.FromValues(c.QueryParams())
		page := pagination.Apply(list, query, func(r domain.Reservation) []string {
			return []string{r.ID, r.Name, r.Phone}
		})

		views := make([]StaffReservationView, 0, len(page.Items))
		for _, r := range page.Items {
			views = append(views, staffView(r))
		}
		return c.JSON(http.StatusOK, pagination.Page[StaffReservationView]{
			Items: views,
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.Pages,
		})
	}
}

// NewGetReservationHandler exposes GET /api/reservations/:id to staff.
func NewGetReservationHandler(engine *usecase.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := engine.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, staffView(r))
	}
}

// NewCancelReservationHandler exposes DELETE /api/reservations/:id to staff.
func NewCancelReservationHandler(engine *usecase.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := engine.Cancel(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		subject := ""
		if claims := auth.ClaimsFrom(c); claims != nil {
			subject = claims.Subject
		}
		slog.Info("reservation cancelled by staff", slog.String("reservationId", r.ID), slog.String("subject", subject))
		return c.JSON(http.StatusOK, staffView(r))
	}
}
