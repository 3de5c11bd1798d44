package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/validate"
)

// ReservationHandler serves the /reservations routes.
type ReservationHandler struct {
	Cfg          config.Config
	Reservations *repository.ReservationRepo
}

// NewReservationHandler constructs a ReservationHandler; the repository
// must be non-nil.
func NewReservationHandler(cfg config.Config, repo *repository.ReservationRepo) *ReservationHandler {
	if repo == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Cfg: cfg, Reservations: repo}
}

// reservationPayload mirrors the {"data": {...}} body of reservation
// create and update requests. People is an int so a non-numeric value
// fails binding before any guard runs.
type reservationPayload struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          string `json:"status"`
}

func (p *reservationPayload) draft() *model.Reservation {
	return &model.Reservation{
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		MobileNumber:    p.MobileNumber,
		ReservationDate: p.ReservationDate,
		ReservationTime: p.ReservationTime,
		People:          p.People,
	}
}

// creationGuards is the field-validation sequence shared by create and
// update. Shape checks run before the business rules that assume a
// well-formed date and time.
func (h *ReservationHandler) creationGuards() []validate.Guard {
	return []validate.Guard{
		validate.ReservationHasRequiredFields,
		validate.PeoplePositive,
		validate.DateParses,
		validate.TimeMatches,
		validate.WithinHours(h.Cfg.OpenTime, h.Cfg.CloseTime),
		validate.NotTuesday,
		validate.InFuture,
	}
}

// List handles GET /reservations. With a mobile_number query it runs
// the digits-only phone search ordered by date; with a date query it
// lists that day's reservations ordered by time, hiding finished ones
// unless configured otherwise.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if mobile := c.QueryParam("mobile_number"); mobile != "" {
		out, err := h.Reservations.SearchByMobile(ctx, mobile)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return respondData(c, http.StatusOK, out)
	}
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a date or mobile_number query is required"})
	}
	out, err := h.Reservations.ListByDate(ctx, date, h.Cfg.ListIncludeFinished)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return respondData(c, http.StatusOK, out)
}

// Create handles POST /reservations. Every new reservation starts as
// booked; a payload naming any other status is rejected by the chain.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body struct {
		Data reservationPayload `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	req := &validate.Request{
		Draft:           body.Data.draft(),
		SubmittedStatus: body.Data.Status,
		Now:             time.Now().UTC(),
	}
	guards := append(h.creationGuards(), validate.StatusBookedOnCreate)
	if f := validate.Run(req, guards...); f != nil {
		return respondFail(c, f)
	}

	created, err := h.Reservations.Create(c.Request().Context(), req.Draft)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	publishEvent("created", created, nil)
	return respondData(c, http.StatusCreated, created)
}

// Read handles GET /reservations/:reservation_id.
func (h *ReservationHandler) Read(c echo.Context) error {
	id, ok := pathID(c, "reservation_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	req := &validate.Request{}
	if f := validate.Run(req, reservationExists(c.Request().Context(), h.Reservations, id)); f != nil {
		return respondFail(c, f)
	}
	return respondData(c, http.StatusOK, req.Reservation)
}

// Update handles PUT /reservations/:reservation_id. Field edits rerun
// the creation chain and are refused once a reservation is finished.
// Status is never changed here; that is the status endpoint's job.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "reservation_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Data reservationPayload `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	req := &validate.Request{
		Draft: body.Data.draft(),
		Now:   time.Now().UTC(),
	}
	guards := append([]validate.Guard{
		reservationExists(ctx, h.Reservations, id),
		validate.ReservationNotFinished,
	}, h.creationGuards()...)
	if f := validate.Run(req, guards...); f != nil {
		return respondFail(c, f)
	}

	req.Draft.ID = id
	updated, err := h.Reservations.Update(ctx, req.Draft)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	return respondData(c, http.StatusOK, updated)
}

// UpdateStatus handles PUT /reservations/:reservation_id/status. Only
// the enumerated lifecycle edges are accepted: a booked party can be
// seated or cancelled, a seated one finished, and terminal states
// never move again.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "reservation_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	req := &validate.Request{SubmittedStatus: body.Data.Status}
	if f := validate.Run(req,
		reservationExists(ctx, h.Reservations, id),
		validate.StatusKnown,
		validate.ReservationNotFinished,
		validate.TransitionAllowed,
	); f != nil {
		return respondFail(c, f)
	}

	updated, err := h.Reservations.UpdateStatus(ctx, id, req.SubmittedStatus)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	publishEvent(updated.Status, updated, nil)
	return respondData(c, http.StatusOK, updated)
}
