package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"mesaYaBooking/internal/modules/reservations/application/port"
	"mesaYaBooking/internal/modules/reservations/domain"
)

const reservationsSchema = `
CREATE TABLE IF NOT EXISTS reservations (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    phone            TEXT,
    party_size       INTEGER NOT NULL CHECK (party_size > 0),
    reservation_date DATE NOT NULL,
    reservation_time TEXT NOT NULL,
    status           TEXT NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS reservations_date_idx ON reservations (reservation_date);`

const reservationColumns = `id, name, phone, party_size, reservation_date, reservation_time, status, created_at`

// PostgresStore persists reservations in PostgreSQL through lib/pq.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool for the DSN and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the reservations table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, reservationsSchema); err != nil {
		return fmt.Errorf("create reservations schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (domain.Reservation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	return scanReservation(row)
}

func (s *PostgresStore) ListByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE reservation_date = $1 ORDER BY reservation_time, created_at`, domain.DateKey(date))
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Reservation, 0)
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) Insert(ctx context.Context, r domain.Reservation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reservations (`+reservationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.Name, nullablePhone(r.Phone), r.PartySize, domain.DateKey(r.Date), r.Time.String(), string(r.Status), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reservation %s: %w", r.ID, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, r domain.Reservation) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE reservations SET name = $2, phone = $3, party_size = $4, reservation_date = $5, reservation_time = $6, status = $7 WHERE id = $1`,
		r.ID, r.Name, nullablePhone(r.Phone), r.PartySize, domain.DateKey(r.Date), r.Time.String(), string(r.Status),
	)
	if err != nil {
		return fmt.Errorf("update reservation %s: %w", r.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation %s: %w", r.ID, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (domain.Reservation, error) {
	row := s.db.QueryRowContext(ctx, `DELETE FROM reservations WHERE id = $1 RETURNING `+reservationColumns, id)
	return scanReservation(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (domain.Reservation, error) {
	var (
		r         domain.Reservation
		phone     sql.NullString
		clock     string
		status    string
		createdAt time.Time
	)
	if err := row.Scan(&r.ID, &r.Name, &phone, &r.PartySize, &r.Date, &clock, &status, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reservation{}, domain.ErrNotFound
		}
		return domain.Reservation{}, fmt.Errorf("scan reservation: %w", err)
	}
	parsed, err := domain.ParseClockTime(clock)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("reservation %s: %w", r.ID, err)
	}
	r.Phone = phone.String
	r.Date = domain.NormalizeDate(r.Date)
	r.Time = parsed
	r.Status = domain.NormalizeReservationStatus(status)
	r.CreatedAt = createdAt.UTC()
	return r, nil
}

func nullablePhone(phone string) sql.NullString {
	return sql.NullString{String: phone, Valid: phone != ""}
}

var _ port.ReservationStore = (*PostgresStore)(nil)
