package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/validate"
)

// TableHandler serves the /tables routes. Seat and Finish are the two
// dual-writes of the system: each one changes a table row and a
// reservation row inside a single transaction so occupancy and status
// can never disagree.
type TableHandler struct {
	Cfg          config.Config
	Tables       *repository.TableRepo
	Reservations *repository.ReservationRepo
}

// NewTableHandler constructs a TableHandler; both repositories must be
// non-nil.
func NewTableHandler(cfg config.Config, tables *repository.TableRepo, reservations *repository.ReservationRepo) *TableHandler {
	if tables == nil || reservations == nil {
		panic("nil repository passed to NewTableHandler")
	}
	return &TableHandler{Cfg: cfg, Tables: tables, Reservations: reservations}
}

// List handles GET /tables, returning every table ordered by name.
func (h *TableHandler) List(c echo.Context) error {
	out, err := h.Tables.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return respondData(c, http.StatusOK, out)
}

// Create handles POST /tables.
func (h *TableHandler) Create(c echo.Context) error {
	var body struct {
		Data struct {
			TableName string `json:"table_name"`
			Capacity  int    `json:"capacity"`
		} `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	req := &validate.Request{
		NewTable: &model.Table{TableName: body.Data.TableName, Capacity: body.Data.Capacity},
	}
	if f := validate.Run(req, validate.TableNameLength, validate.CapacityPositive); f != nil {
		return respondFail(c, f)
	}

	created, err := h.Tables.Create(c.Request().Context(), req.NewTable)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create table"})
	}
	return respondData(c, http.StatusCreated, created)
}

// Seat handles PUT /tables/:table_id/seat. On success the table points
// at the reservation and the reservation is seated; both writes commit
// together or roll back together.
func (h *TableHandler) Seat(c echo.Context) error {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var body struct {
		Data struct {
			ReservationID uint64 `json:"reservation_id"`
		} `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Data.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "A 'reservation_id' field is required."})
	}

	ctx := c.Request().Context()
	req := &validate.Request{}
	if f := validate.Run(req,
		tableExists(ctx, h.Tables, tableID),
		reservationExists(ctx, h.Reservations, body.Data.ReservationID),
		validate.ReservationNotSeated,
		validate.CapacityFits,
		validate.TableFree,
	); f != nil {
		return respondFail(c, f)
	}

	tx, err := h.Tables.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Tables.AssignReservationTx(ctx, tx, tableID, body.Data.ReservationID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to seat reservation"})
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, body.Data.ReservationID, model.StatusSeated); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to seat reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	seated, err := h.Tables.GetByID(ctx, tableID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	req.Reservation.Status = model.StatusSeated
	publishEvent("seated", req.Reservation, &tableID)
	return respondData(c, http.StatusOK, seated)
}

// Finish handles DELETE /tables/:table_id/seat. The table is freed and
// its reservation finished in one transaction.
func (h *TableHandler) Finish(c echo.Context) error {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}

	ctx := c.Request().Context()
	req := &validate.Request{}
	if f := validate.Run(req,
		tableExists(ctx, h.Tables, tableID),
		validate.TableOccupied,
	); f != nil {
		return respondFail(c, f)
	}
	reservationID := *req.Table.ReservationID

	tx, err := h.Tables.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Tables.ClearReservationTx(ctx, tx, tableID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to finish table"})
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, reservationID, model.StatusFinished); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to finish table"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	freed, err := h.Tables.GetByID(ctx, tableID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if finished, err := h.Reservations.GetByID(ctx, reservationID); err == nil {
		publishEvent("finished", finished, &tableID)
	}
	return respondData(c, http.StatusOK, freed)
}
