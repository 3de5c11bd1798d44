// Package repository implements the data-access layer: one repo struct
// per entity over a shared *sql.DB, plus ...Tx variants for the writes
// that must land inside the seat/finish transaction. Sentinel errors
// defined here let handlers map failures to HTTP statuses without
// string matching.
package repository

import "errors"

// ErrReservationNotFound is returned when no reservation exists with
// the requested ID. Handlers translate it into a 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTableNotFound is returned when no table exists with the requested
// ID. Handlers translate it into a 404 response.
var ErrTableNotFound = errors.New("table not found")

// ErrEmailExists is returned when registering a staff account with an
// email that is already taken. Handlers translate it into 409.
var ErrEmailExists = errors.New("email already exists")
