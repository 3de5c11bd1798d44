package validate

import (
	"net/http"
	"regexp"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/model"
)

const dateLayout = "2006-01-02"

// timePattern accepts 24-hour HH:MM strings only.
var timePattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// reservationFields is the required-field order for reservation
// payloads; the first missing one names the error.
var reservationFields = []struct {
	name    string
	missing func(*model.Reservation) bool
}{
	{"first_name", func(r *model.Reservation) bool { return r.FirstName == "" }},
	{"last_name", func(r *model.Reservation) bool { return r.LastName == "" }},
	{"mobile_number", func(r *model.Reservation) bool { return r.MobileNumber == "" }},
	{"reservation_date", func(r *model.Reservation) bool { return r.ReservationDate == "" }},
	{"reservation_time", func(r *model.Reservation) bool { return r.ReservationTime == "" }},
	{"people", func(r *model.Reservation) bool { return r.People == 0 }},
}

// ReservationHasRequiredFields rejects payloads missing any of the six
// mandatory reservation fields.
func ReservationHasRequiredFields(req *Request) *Fail {
	for _, f := range reservationFields {
		if f.missing(req.Draft) {
			return Failf(http.StatusBadRequest, "A '%s' field is required.", f.name)
		}
	}
	return nil
}

// PeoplePositive rejects non-positive party sizes. Non-numeric values
// never reach this guard: they already fail JSON binding.
func PeoplePositive(req *Request) *Fail {
	if req.Draft.People < 1 {
		return Failf(http.StatusBadRequest, "people must be a number greater than 0")
	}
	return nil
}

// DateParses rejects reservation dates that are not real calendar dates.
func DateParses(req *Request) *Fail {
	if _, err := time.Parse(dateLayout, req.Draft.ReservationDate); err != nil {
		return Failf(http.StatusBadRequest, "reservation_date must be a valid date")
	}
	return nil
}

// TimeMatches rejects reservation times that are not HH:MM 24-hour strings.
func TimeMatches(req *Request) *Fail {
	if !timePattern.MatchString(req.Draft.ReservationTime) {
		return Failf(http.StatusBadRequest, "reservation_time must be a valid time in HH:MM format")
	}
	return nil
}

// WithinHours returns a guard enforcing the configured operating-hours
// window. Runs after TimeMatches, so the time string is well-formed.
func WithinHours(open, close config.DayTime) Guard {
	return func(req *Request) *Fail {
		t, err := config.ParseDayTime(req.Draft.ReservationTime)
		if err != nil {
			return Failf(http.StatusBadRequest, "reservation_time must be a valid time in HH:MM format")
		}
		if t.Minutes() < open.Minutes() || t.Minutes() > close.Minutes() {
			return Failf(http.StatusBadRequest,
				"reservation_time must be between %s and %s", open, close)
		}
		return nil
	}
}

// NotTuesday rejects dates falling on the weekly closing day. The
// weekday is computed in UTC so the server's local zone cannot shift
// a booking across midnight.
func NotTuesday(req *Request) *Fail {
	d, err := time.Parse(dateLayout, req.Draft.ReservationDate)
	if err != nil {
		return Failf(http.StatusBadRequest, "reservation_date must be a valid date")
	}
	if d.UTC().Weekday() == time.Tuesday {
		return Failf(http.StatusBadRequest, "the restaurant is closed on Tuesdays")
	}
	return nil
}

// InFuture rejects composed date+time instants that are already past.
func InFuture(req *Request) *Fail {
	at, err := time.Parse(dateLayout+" 15:04", req.Draft.ReservationDate+" "+req.Draft.ReservationTime)
	if err != nil {
		return Failf(http.StatusBadRequest, "reservation_date must be a valid date")
	}
	if at.Before(req.Now) {
		return Failf(http.StatusBadRequest, "reservation must be in the future")
	}
	return nil
}

// StatusBookedOnCreate rejects creation payloads that try to start a
// reservation in any state other than booked. An absent status is
// fine; the repository sets booked on insert.
func StatusBookedOnCreate(req *Request) *Fail {
	if req.SubmittedStatus != "" && req.SubmittedStatus != model.StatusBooked {
		return Failf(http.StatusBadRequest,
			"status must be 'booked' when creating a reservation, got '%s'", req.SubmittedStatus)
	}
	return nil
}

// StatusKnown rejects transition requests naming a status outside the enum.
func StatusKnown(req *Request) *Fail {
	if !model.ValidStatus(req.SubmittedStatus) {
		return Failf(http.StatusBadRequest, "unknown status: '%s'", req.SubmittedStatus)
	}
	return nil
}

// ReservationNotFinished blocks any mutation of a reservation already
// in the finished state. Requires a previous existence guard.
func ReservationNotFinished(req *Request) *Fail {
	if req.Reservation.Status == model.StatusFinished {
		return Failf(http.StatusBadRequest, "a finished reservation cannot be updated")
	}
	return nil
}

// TransitionAllowed rejects status changes that do not follow a legal
// edge of the lifecycle. Requires existence and StatusKnown first.
func TransitionAllowed(req *Request) *Fail {
	if !model.CanTransition(req.Reservation.Status, req.SubmittedStatus) {
		return Failf(http.StatusBadRequest,
			"cannot change status from '%s' to '%s'", req.Reservation.Status, req.SubmittedStatus)
	}
	return nil
}
