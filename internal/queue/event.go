// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// ReservationEvent is published whenever a reservation changes state:
// created, seated at a table, finished, or cancelled. It carries enough
// for downstream consumers (notifications, analytics) to act without
// querying the primary database.
type ReservationEvent struct {
	Kind            string  `json:"kind"` // created | seated | finished | cancelled
	ReservationID   uint64  `json:"reservation_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	MobileNumber    string  `json:"mobile_number"`
	ReservationDate string  `json:"reservation_date"`
	ReservationTime string  `json:"reservation_time"`
	People          int     `json:"people"`
	Status          string  `json:"status"`
	TableID         *uint64 `json:"table_id,omitempty"` // set for seated/finished
	OccurredAt      string  `json:"occurred_at"`
}
