package model

import "time"

// Table describes a dining table as stored in the `tables` table. A
// table optionally holds one active reservation at a time: the
// ReservationID pointer is non-nil exactly when the table is occupied.
//
// Fields:
//  ID            – primary key identifier.
//  TableName     – display name of the table, at least two characters.
//  Capacity      – how many guests the table seats, at least one.
//  ReservationID – reservation currently seated here (nil when free).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Table struct {
	ID            uint64    `json:"table_id"`
	TableName     string    `json:"table_name"`
	Capacity      int       `json:"capacity"`
	ReservationID *uint64   `json:"reservation_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Occupied reports whether the table currently holds a reservation.
func (t *Table) Occupied() bool { return t.ReservationID != nil }
