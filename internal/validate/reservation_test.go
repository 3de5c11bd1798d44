package validate

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/model"
)

func validDraft() *model.Reservation {
	return &model.Reservation{
		FirstName:       "Ann",
		LastName:        "Lee",
		MobileNumber:    "555-000-1111",
		ReservationDate: "2031-01-01", // a Wednesday
		ReservationTime: "18:00",
		People:          2,
	}
}

func fixedNow() time.Time {
	return time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	calls := 0
	pass := func(*Request) *Fail { calls++; return nil }
	fail := func(*Request) *Fail { calls++; return Failf(http.StatusBadRequest, "nope") }

	f := Run(&Request{}, pass, fail, pass)
	require.NotNil(t, f)
	assert.Equal(t, "nope", f.Message)
	assert.Equal(t, 2, calls, "guards after the first failure must not run")
}

func TestReservationHasRequiredFields(t *testing.T) {
	req := &Request{Draft: validDraft()}
	assert.Nil(t, ReservationHasRequiredFields(req))

	req.Draft.MobileNumber = ""
	f := ReservationHasRequiredFields(req)
	require.NotNil(t, f)
	assert.Equal(t, http.StatusBadRequest, f.Status)
	assert.Equal(t, "A 'mobile_number' field is required.", f.Message)

	// The first missing field in declaration order names the error.
	req.Draft.FirstName = ""
	f = ReservationHasRequiredFields(req)
	require.NotNil(t, f)
	assert.Equal(t, "A 'first_name' field is required.", f.Message)
}

func TestPeoplePositive(t *testing.T) {
	req := &Request{Draft: validDraft()}
	assert.Nil(t, PeoplePositive(req))

	req.Draft.People = 0
	f := PeoplePositive(req)
	require.NotNil(t, f)
	assert.Equal(t, http.StatusBadRequest, f.Status)

	req.Draft.People = -3
	assert.NotNil(t, PeoplePositive(req))
}

func TestDateParses(t *testing.T) {
	req := &Request{Draft: validDraft()}
	assert.Nil(t, DateParses(req))

	for _, bad := range []string{"not-a-date", "2031-13-01", "2031-02-30", "01/02/2031"} {
		req.Draft.ReservationDate = bad
		assert.NotNil(t, DateParses(req), bad)
	}
}

func TestTimeMatches(t *testing.T) {
	req := &Request{Draft: validDraft()}
	for _, good := range []string{"00:00", "10:30", "23:59"} {
		req.Draft.ReservationTime = good
		assert.Nil(t, TimeMatches(req), good)
	}
	for _, bad := range []string{"24:00", "9:30", "10:60", "1030", "noonish", ""} {
		req.Draft.ReservationTime = bad
		assert.NotNil(t, TimeMatches(req), bad)
	}
}

func TestWithinHours(t *testing.T) {
	open, _ := config.ParseDayTime("10:30")
	close, _ := config.ParseDayTime("21:30")
	guard := WithinHours(open, close)

	req := &Request{Draft: validDraft()}
	for _, good := range []string{"10:30", "12:00", "21:30"} {
		req.Draft.ReservationTime = good
		assert.Nil(t, guard(req), good)
	}
	for _, bad := range []string{"10:29", "21:31", "09:00", "23:00"} {
		req.Draft.ReservationTime = bad
		f := guard(req)
		require.NotNil(t, f, bad)
		assert.Equal(t, "reservation_time must be between 10:30 and 21:30", f.Message)
	}
}

func TestNotTuesday(t *testing.T) {
	req := &Request{Draft: validDraft()}
	assert.Nil(t, NotTuesday(req))

	req.Draft.ReservationDate = "2030-06-04" // a Tuesday
	f := NotTuesday(req)
	require.NotNil(t, f)
	assert.Equal(t, "the restaurant is closed on Tuesdays", f.Message)
}

func TestInFuture(t *testing.T) {
	req := &Request{Draft: validDraft(), Now: fixedNow()}
	assert.Nil(t, InFuture(req))

	req.Draft.ReservationDate = "2020-01-01"
	assert.NotNil(t, InFuture(req))

	// Same day, earlier time of day.
	req.Draft.ReservationDate = "2030-06-01"
	req.Draft.ReservationTime = "11:00"
	assert.NotNil(t, InFuture(req))

	req.Draft.ReservationTime = "13:00"
	assert.Nil(t, InFuture(req))
}

func TestStatusBookedOnCreate(t *testing.T) {
	req := &Request{SubmittedStatus: ""}
	assert.Nil(t, StatusBookedOnCreate(req))

	req.SubmittedStatus = model.StatusBooked
	assert.Nil(t, StatusBookedOnCreate(req))

	for _, bad := range []string{model.StatusSeated, model.StatusFinished, "random"} {
		req.SubmittedStatus = bad
		assert.NotNil(t, StatusBookedOnCreate(req), bad)
	}
}

func TestStatusKnown(t *testing.T) {
	req := &Request{SubmittedStatus: model.StatusCancelled}
	assert.Nil(t, StatusKnown(req))

	req.SubmittedStatus = "confirmed"
	f := StatusKnown(req)
	require.NotNil(t, f)
	assert.Equal(t, "unknown status: 'confirmed'", f.Message)
}

func TestReservationNotFinished(t *testing.T) {
	req := &Request{Reservation: &model.Reservation{Status: model.StatusBooked}}
	assert.Nil(t, ReservationNotFinished(req))

	req.Reservation.Status = model.StatusFinished
	f := ReservationNotFinished(req)
	require.NotNil(t, f)
	assert.Equal(t, "a finished reservation cannot be updated", f.Message)
}

func TestTransitionAllowed(t *testing.T) {
	req := &Request{
		Reservation:     &model.Reservation{Status: model.StatusSeated},
		SubmittedStatus: model.StatusBooked,
	}
	f := TransitionAllowed(req)
	require.NotNil(t, f)
	assert.Equal(t, "cannot change status from 'seated' to 'booked'", f.Message)

	req.SubmittedStatus = model.StatusFinished
	assert.Nil(t, TransitionAllowed(req))
}
