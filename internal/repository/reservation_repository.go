package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. The
// DATE/TIME columns are formatted inside the queries so scans always
// produce the YYYY-MM-DD and HH:MM strings the rest of the system
// works with, regardless of driver parseTime settings.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span this repo and TableRepo.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// reservationColumns is the shared select list. TIME_FORMAT truncates
// seconds so a stored 18:00:00 round-trips as the submitted "18:00".
const reservationColumns = `id, first_name, last_name, mobile_number,
       DATE_FORMAT(reservation_date, '%Y-%m-%d'),
       TIME_FORMAT(reservation_time, '%H:%i'),
       people, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
		&res.ReservationDate, &res.ReservationTime,
		&res.People, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a new reservation with status booked and reads the
// full row back so generated ID, defaults and timestamps are populated
// on the returned value.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	const q = `INSERT INTO reservations
	           (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, model.StatusBooked)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// ListByDate returns the reservations for one calendar date ordered by
// time of day. Finished reservations are hidden from the board unless
// includeFinished is set.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string, includeFinished bool) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_date = ?`
	if !includeFinished {
		q += ` AND status <> 'finished'`
	}
	q += ` ORDER BY reservation_time`
	return r.list(ctx, q, date)
}

// SearchByMobile returns reservations whose phone number contains the
// digits of the query, ordered by date. Both sides are reduced to bare
// digits first, so "(555) 123-4567" matches a stored "555-123-4567"
// and partial queries like "123" match as substrings.
func (r *ReservationRepo) SearchByMobile(ctx context.Context, mobile string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), '-', ''), ' ', '') LIKE ?
	           ORDER BY reservation_date`
	return r.list(ctx, q, "%"+NormalizeMobile(mobile)+"%")
}

// Update rewrites the editable fields of an existing reservation and
// returns the stored row. Status is deliberately not touched here; the
// status endpoint owns that column.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	const q = `UPDATE reservations
	           SET first_name = ?, last_name = ?, mobile_number = ?,
	               reservation_date = ?, reservation_time = ?, people = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, res.ID)
}

// UpdateStatus sets the status column of one reservation and returns
// the stored row. Legality of the transition is the caller's concern.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, status, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateStatusTx is the transactional variant of UpdateStatus used by
// the seat and finish dual-writes. The caller owns commit/rollback.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeMobile strips everything but digits from a phone number.
func NormalizeMobile(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
