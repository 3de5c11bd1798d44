package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// TableRepo provides CRUD operations for dining tables. Occupancy is
// represented by the nullable reservation_id column: set while a party
// is seated, NULL when the table is free. The two writes that flip
// occupancy together with a reservation's status live in ...Tx methods
// so handlers can wrap them in one transaction.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// DB exposes the underlying handle for transactions spanning repos.
func (r *TableRepo) DB() *sql.DB { return r.db }

const tableColumns = `id, table_name, capacity, reservation_id, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }) (*model.Table, error) {
	var (
		t   model.Table
		rid sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.TableName, &t.Capacity, &rid, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rid.Valid {
		v := uint64(rid.Int64)
		t.ReservationID = &v
	}
	return &t, nil
}

// Create inserts a new table and reads the full row back.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) (*model.Table, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tables (table_name, capacity) VALUES (?, ?)`,
		t.TableName, t.Capacity)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a single table or ErrTableNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	return t, err
}

// List returns every table ordered by name.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables ORDER BY table_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignReservationTx links a reservation to a table inside an open
// transaction. Paired with ReservationRepo.UpdateStatusTx by the seat
// handler so both rows change together or not at all.
func (r *TableRepo) AssignReservationTx(ctx context.Context, tx *sql.Tx, tableID, reservationID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE tables SET reservation_id = ? WHERE id = ?`, reservationID, tableID)
	return err
}

// ClearReservationTx frees a table inside an open transaction. Paired
// with the finished-status write by the finish handler.
func (r *TableRepo) ClearReservationTx(ctx context.Context, tx *sql.Tx, tableID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE tables SET reservation_id = NULL WHERE id = ?`, tableID)
	return err
}
