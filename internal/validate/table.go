package validate

import (
	"net/http"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// TableNameLength rejects table names shorter than two characters.
func TableNameLength(req *Request) *Fail {
	if len(req.NewTable.TableName) < 2 {
		return Failf(http.StatusBadRequest, "table_name must be at least 2 characters long.")
	}
	return nil
}

// CapacityPositive rejects tables that cannot seat at least one guest.
func CapacityPositive(req *Request) *Fail {
	if req.NewTable.Capacity < 1 {
		return Failf(http.StatusBadRequest, "capacity must be a number greater than or equal to 1.")
	}
	return nil
}

// TableFree rejects seating at a table that already holds a
// reservation. Requires a previous table existence guard.
func TableFree(req *Request) *Fail {
	if req.Table.Occupied() {
		return Failf(http.StatusBadRequest, "Table %d is currently occupied.", req.Table.ID)
	}
	return nil
}

// TableOccupied rejects finishing a table that holds no reservation.
func TableOccupied(req *Request) *Fail {
	if !req.Table.Occupied() {
		return Failf(http.StatusBadRequest, "Table %d is not occupied.", req.Table.ID)
	}
	return nil
}

// CapacityFits rejects seating a party larger than the table. Requires
// both existence guards.
func CapacityFits(req *Request) *Fail {
	if req.Table.Capacity < req.Reservation.People {
		return Failf(http.StatusBadRequest,
			"Table capacity (%d) is smaller than the reservation size (%d).",
			req.Table.Capacity, req.Reservation.People)
	}
	return nil
}

// ReservationNotSeated rejects seating a reservation that is already at
// a table. Requires a previous reservation existence guard.
func ReservationNotSeated(req *Request) *Fail {
	if req.Reservation.Status == model.StatusSeated {
		return Failf(http.StatusBadRequest, "reservation is already seated")
	}
	return nil
}
