package model

import "time"

// Reservation statuses. A reservation starts as booked, moves to seated
// when the party is assigned to a table, and ends in one of the two
// terminal states. Rows are never deleted; finishing or cancelling is
// how a reservation leaves the board.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Reservation records a party's booking as stored in the `reservations`
// table. Date and time-of-day are kept as the strings the API speaks
// (YYYY-MM-DD and HH:MM); the repository formats the DATE/TIME columns
// on the way out so both sides always agree.
//
// Fields:
//  ID              – primary key identifier.
//  FirstName       – guest first name.
//  LastName        – guest last name.
//  MobileNumber    – contact number, formatting characters allowed.
//  ReservationDate – calendar date of the booking (YYYY-MM-DD).
//  ReservationTime – time of day of the booking (HH:MM, 24h).
//  People          – party size, at least one.
//  Status          – lifecycle state (see constants above).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    `json:"reservation_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	MobileNumber    string    `json:"mobile_number"`
	ReservationDate string    `json:"reservation_date"`
	ReservationTime string    `json:"reservation_time"`
	People          int       `json:"people"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// transitions enumerates every legal edge of the reservation lifecycle.
// Terminal states have no outgoing edges, so any request to move out of
// finished or cancelled falls through to "not allowed".
var transitions = map[string][]string{
	StatusBooked: {StatusSeated, StatusCancelled},
	StatusSeated: {StatusFinished},
}

// CanTransition reports whether moving a reservation between the two
// statuses follows a legal edge of the lifecycle.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
