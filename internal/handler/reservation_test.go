package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

var testStamp = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig() config.Config {
	return config.Config{
		OpenTime:  config.DayTime{Hour: 10, Minute: 30},
		CloseTime: config.DayTime{Hour: 21, Minute: 30},
	}
}

func newReservationEnv(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReservationHandler(testConfig(), repository.NewReservationRepo(db)), mock
}

// perform runs a handler directly against a recorded request, outside
// the router, with optional path parameters.
func perform(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	require.NoError(t, h(c))
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

var reservationCols = []string{
	"id", "first_name", "last_name", "mobile_number",
	"reservation_date", "reservation_time",
	"people", "status", "created_at", "updated_at",
}

func bookedRow(id uint64, status string, people int) *sqlmock.Rows {
	return sqlmock.NewRows(reservationCols).
		AddRow(id, "Ann", "Lee", "555-000-1111", "2031-01-01", "18:00", people, status, testStamp, testStamp)
}

const createBody = `{"data":{"first_name":"Ann","last_name":"Lee","mobile_number":"555-000-1111",
	"reservation_date":"2031-01-01","reservation_time":"18:00","people":2}}`

func TestCreateReservation(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectExec(`INSERT INTO reservations`).
		WithArgs("Ann", "Lee", "555-000-1111", "2031-01-01", "18:00", 2, model.StatusBooked).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs(uint64(11)).
		WillReturnRows(bookedRow(11, model.StatusBooked, 2))

	rec := perform(t, h.Create, http.MethodPost, "/reservations", createBody)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Reservation
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	assert.Equal(t, uint64(11), got.ID)
	assert.Equal(t, model.StatusBooked, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationMissingField(t *testing.T) {
	h, _ := newReservationEnv(t)
	body := `{"data":{"last_name":"Lee","mobile_number":"555-000-1111",
		"reservation_date":"2031-01-01","reservation_time":"18:00","people":2}}`

	rec := perform(t, h.Create, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "A 'first_name' field is required.", decodeEnvelope(t, rec).Error)
}

func TestCreateReservationNegativePeople(t *testing.T) {
	h, _ := newReservationEnv(t)
	body := strings.Replace(createBody, `"people":2`, `"people":-2`, 1)

	rec := perform(t, h.Create, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "people must be a number greater than 0", decodeEnvelope(t, rec).Error)
}

func TestCreateReservationNonNumericPeople(t *testing.T) {
	h, _ := newReservationEnv(t)
	body := strings.Replace(createBody, `"people":2`, `"people":"two"`, 1)

	rec := perform(t, h.Create, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeEnvelope(t, rec).Error)
}

func TestCreateReservationOnTuesday(t *testing.T) {
	h, _ := newReservationEnv(t)
	body := strings.Replace(createBody, "2031-01-01", "2030-06-04", 1)

	rec := perform(t, h.Create, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "the restaurant is closed on Tuesdays", decodeEnvelope(t, rec).Error)
}

func TestCreateReservationInPast(t *testing.T) {
	h, _ := newReservationEnv(t)
	body := strings.Replace(createBody, "2031-01-01", "2020-01-01", 1)

	rec := perform(t, h.Create, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "reservation must be in the future", decodeEnvelope(t, rec).Error)
}

func TestCreateReservationOutsideHours(t *testing.T) {
	h, _ := newReservationEnv(t)
	body := strings.Replace(createBody, "18:00", "22:00", 1)

	rec := perform(t, h.Create, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "reservation_time must be between 10:30 and 21:30", decodeEnvelope(t, rec).Error)
}

func TestCreateReservationWithNonBookedStatus(t *testing.T) {
	h, _ := newReservationEnv(t)
	body := strings.Replace(createBody, `"people":2`, `"people":2,"status":"seated"`, 1)

	rec := perform(t, h.Create, http.MethodPost, "/reservations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status must be 'booked' when creating a reservation, got 'seated'", decodeEnvelope(t, rec).Error)
}

func TestReadReservationNotFound(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(reservationCols))

	rec := perform(t, h.Read, http.MethodGet, "/reservations/99", "", "reservation_id", "99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Reservation ID 99 not found", decodeEnvelope(t, rec).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReservationsRequiresQuery(t *testing.T) {
	h, _ := newReservationEnv(t)

	rec := perform(t, h.List, http.MethodGet, "/reservations", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "a date or mobile_number query is required", decodeEnvelope(t, rec).Error)
}

func TestListReservationsByDate(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectQuery(`status <> 'finished' ORDER BY reservation_time`).
		WithArgs("2031-01-01").
		WillReturnRows(bookedRow(1, model.StatusBooked, 2))

	rec := perform(t, h.List, http.MethodGet, "/reservations?date=2031-01-01", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.Reservation
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReservationsByMobile(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectQuery(`LIKE \?`).
		WithArgs("%5550001111%").
		WillReturnRows(bookedRow(5, model.StatusBooked, 2))

	rec := perform(t, h.List, http.MethodGet, "/reservations?mobile_number=555-000-1111", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.Reservation
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	require.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFinishedReservation(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs(uint64(4)).
		WillReturnRows(bookedRow(4, model.StatusFinished, 2))

	rec := perform(t, h.Update, http.MethodPut, "/reservations/4", createBody, "reservation_id", "4")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "a finished reservation cannot be updated", decodeEnvelope(t, rec).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusSeatsBookedReservation(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(bookedRow(3, model.StatusBooked, 2))
	mock.ExpectExec(`UPDATE reservations SET status = \? WHERE id = \?`).
		WithArgs(model.StatusSeated, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(bookedRow(3, model.StatusSeated, 2))

	body := `{"data":{"status":"seated"}}`
	rec := perform(t, h.UpdateStatus, http.MethodPut, "/reservations/3/status", body, "reservation_id", "3")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Reservation
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	assert.Equal(t, model.StatusSeated, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusUnknown(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(bookedRow(3, model.StatusBooked, 2))

	body := `{"data":{"status":"eaten"}}`
	rec := perform(t, h.UpdateStatus, http.MethodPut, "/reservations/3/status", body, "reservation_id", "3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown status: 'eaten'", decodeEnvelope(t, rec).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(bookedRow(3, model.StatusBooked, 2))

	body := `{"data":{"status":"finished"}}`
	rec := perform(t, h.UpdateStatus, http.MethodPut, "/reservations/3/status", body, "reservation_id", "3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot change status from 'booked' to 'finished'", decodeEnvelope(t, rec).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusTerminalState(t *testing.T) {
	h, mock := newReservationEnv(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(bookedRow(3, model.StatusCancelled, 2))

	body := `{"data":{"status":"seated"}}`
	rec := perform(t, h.UpdateStatus, http.MethodPut, "/reservations/3/status", body, "reservation_id", "3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot change status from 'cancelled' to 'seated'", decodeEnvelope(t, rec).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
