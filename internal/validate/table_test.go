package validate

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

func TestTableNameLength(t *testing.T) {
	req := &Request{NewTable: &model.Table{TableName: "A1", Capacity: 2}}
	assert.Nil(t, TableNameLength(req))

	for _, bad := range []string{"", "A"} {
		req.NewTable.TableName = bad
		f := TableNameLength(req)
		require.NotNil(t, f, "%q", bad)
		assert.Equal(t, http.StatusBadRequest, f.Status)
		assert.Equal(t, "table_name must be at least 2 characters long.", f.Message)
	}
}

func TestCapacityPositive(t *testing.T) {
	req := &Request{NewTable: &model.Table{TableName: "A1", Capacity: 1}}
	assert.Nil(t, CapacityPositive(req))

	req.NewTable.Capacity = 0
	f := CapacityPositive(req)
	require.NotNil(t, f)
	assert.Equal(t, "capacity must be a number greater than or equal to 1.", f.Message)
}

func TestTableFreeAndOccupied(t *testing.T) {
	rid := uint64(9)
	free := &model.Table{ID: 3}
	occupied := &model.Table{ID: 3, ReservationID: &rid}

	assert.Nil(t, TableFree(&Request{Table: free}))
	f := TableFree(&Request{Table: occupied})
	require.NotNil(t, f)
	assert.Equal(t, "Table 3 is currently occupied.", f.Message)

	assert.Nil(t, TableOccupied(&Request{Table: occupied}))
	f = TableOccupied(&Request{Table: free})
	require.NotNil(t, f)
	assert.Equal(t, "Table 3 is not occupied.", f.Message)
}

func TestCapacityFits(t *testing.T) {
	req := &Request{
		Table:       &model.Table{Capacity: 4},
		Reservation: &model.Reservation{People: 4},
	}
	assert.Nil(t, CapacityFits(req))

	req.Reservation.People = 5
	f := CapacityFits(req)
	require.NotNil(t, f)
	assert.Equal(t, "Table capacity (4) is smaller than the reservation size (5).", f.Message)
}

func TestReservationNotSeated(t *testing.T) {
	req := &Request{Reservation: &model.Reservation{Status: model.StatusBooked}}
	assert.Nil(t, ReservationNotSeated(req))

	req.Reservation.Status = model.StatusSeated
	f := ReservationNotSeated(req)
	require.NotNil(t, f)
	assert.Equal(t, "reservation is already seated", f.Message)
}
