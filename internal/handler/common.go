// Package handler contains the HTTP handlers. Handlers stay thin: they
// bind the request, run the route's guard chain, call the repository
// (opening a transaction themselves when a write must span both
// entities) and shape the {"data": ...} / {"error": ...} envelope.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/restaurant-reservation/internal/service"
	"github.com/iliyamo/restaurant-reservation/internal/validate"
)

// respondData writes the success envelope.
func respondData(c echo.Context, status int, v any) error {
	return c.JSON(status, echo.Map{"data": v})
}

// respondFail writes the error envelope for a guard failure.
func respondFail(c echo.Context, f *validate.Fail) error {
	return c.JSON(f.Status, echo.Map{"error": f.Message})
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// getUserID extracts the authenticated user id stored by the JWT
// middleware. Claim values arrive as float64 after JSON decoding, so
// several numeric shapes are accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// reservationExists builds a guard that loads a reservation and
// attaches it to the request context, failing with 404 when absent.
func reservationExists(ctx context.Context, repo *repository.ReservationRepo, id uint64) validate.Guard {
	return func(req *validate.Request) *validate.Fail {
		res, err := repo.GetByID(ctx, id)
		if err == repository.ErrReservationNotFound {
			return validate.Failf(http.StatusNotFound, "Reservation ID %d not found", id)
		}
		if err != nil {
			return validate.Failf(http.StatusInternalServerError, "database error")
		}
		req.Reservation = res
		return nil
	}
}

// tableExists builds a guard that loads a table and attaches it to the
// request context, failing with 404 when absent.
func tableExists(ctx context.Context, repo *repository.TableRepo, id uint64) validate.Guard {
	return func(req *validate.Request) *validate.Fail {
		t, err := repo.GetByID(ctx, id)
		if err == repository.ErrTableNotFound {
			return validate.Failf(http.StatusNotFound, "Table with ID %d not found.", id)
		}
		if err != nil {
			return validate.Failf(http.StatusInternalServerError, "database error")
		}
		req.Table = t
		return nil
	}
}

// publishEvent sends a lifecycle event to the broker without blocking
// the response. Failures are already logged by the publisher.
func publishEvent(kind string, res *model.Reservation, tableID *uint64) {
	ev := queue.ReservationEvent{
		Kind:            kind,
		ReservationID:   res.ID,
		FirstName:       res.FirstName,
		LastName:        res.LastName,
		MobileNumber:    res.MobileNumber,
		ReservationDate: res.ReservationDate,
		ReservationTime: res.ReservationTime,
		People:          res.People,
		Status:          res.Status,
		TableID:         tableID,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(ctx, ev)
	}()
}
