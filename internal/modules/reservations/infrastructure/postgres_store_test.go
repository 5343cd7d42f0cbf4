package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"mesaYaBooking/internal/modules/reservations/domain"
)

// fakeRow replays fixed column values into Scan destinations.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *sql.NullString:
			*p = r.values[i].(sql.NullString)
		}
	}
	return nil
}

func TestScanReservation(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*60*60)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, madrid)
	row := fakeRow{values: []any{
		"R-0000000001", "Ada", sql.NullString{}, 4,
		time.Date(2025, 6, 2, 0, 0, 0, 0, madrid), "19:30", "confirmed", created,
	}}

	r, err := scanReservation(row)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if r.Phone != "" || r.PartySize != 4 || r.Time != domain.Clock(19, 30) {
		t.Fatalf("unexpected reservation: %+v", r)
	}
	if domain.DateKey(r.Date) != "2025-06-02" || r.Date.Location() != time.UTC {
		t.Fatalf("expected UTC midnight 2025-06-02, got %s", r.Date)
	}
	if r.Status != domain.ReservationStatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", r.Status)
	}
	if !r.CreatedAt.Equal(created) || r.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected created_at in UTC, got %s", r.CreatedAt)
	}
}

func TestScanReservationErrors(t *testing.T) {
	if _, err := scanReservation(fakeRow{err: sql.ErrNoRows}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	row := fakeRow{values: []any{
		"R-0000000001", "Ada", sql.NullString{String: "555", Valid: true}, 2,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), "7pm", "CONFIRMED", time.Now(),
	}}
	if _, err := scanReservation(row); !errors.Is(err, domain.ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestNullablePhone(t *testing.T) {
	if p := nullablePhone(""); p.Valid {
		t.Fatalf("empty phone must be NULL")
	}
	if p := nullablePhone("555"); !p.Valid || p.String != "555" {
		t.Fatalf("unexpected phone: %+v", p)
	}
}

// TestPostgresStoreLifecycle runs against a real database when MESAYA_TEST_DATABASE_URL is set.
func TestPostgresStoreLifecycle(t *testing.T) {
	dsn := os.Getenv("MESAYA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("MESAYA_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema must be idempotent: %v", err)
	}

	day := time.Date(2031, 3, 4, 0, 0, 0, 0, time.UTC)
	ids := []string{"R-TESTPG0001", "R-TESTPG0002"}
	cleanup := func() {
		for _, id := range ids {
			_, _ = db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
		}
	}
	cleanup()
	t.Cleanup(cleanup)

	late := domain.Reservation{ID: ids[0], Name: "Ada", Phone: "555", PartySize: 2, Date: day, Time: domain.Clock(19, 0), Status: domain.ReservationStatusConfirmed, CreatedAt: time.Now().UTC()}
	early := domain.Reservation{ID: ids[1], Name: "Bo", PartySize: 3, Date: day, Time: domain.Clock(12, 30), Status: domain.ReservationStatusConfirmed, CreatedAt: time.Now().UTC()}
	for _, r := range []domain.Reservation{late, early} {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("insert %s: %v", r.ID, err)
		}
	}

	items, err := store.ListByDate(ctx, day)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != early.ID || items[1].Phone != "555" {
		t.Fatalf("unexpected list: %+v", items)
	}

	late.PartySize = 6
	late.Time = domain.Clock(20, 0)
	if err := store.Update(ctx, late); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.Get(ctx, late.ID)
	if err != nil || got.PartySize != 6 || got.Time != domain.Clock(20, 0) {
		t.Fatalf("expected updated row, got %+v err=%v", got, err)
	}

	removed, err := store.Delete(ctx, late.ID)
	if err != nil || removed.ID != late.ID {
		t.Fatalf("delete: %+v err=%v", removed, err)
	}
	if _, err := store.Get(ctx, late.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Update(ctx, late); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update of missing row, got %v", err)
	}
}
