// Package router wires HTTP routes to handlers and applies the
// per-route middleware: response caching on the list endpoints, rate
// limiting on every mutating endpoint, and (when configured) staff
// authentication on the mutating endpoints.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// HTTPErrorHandler shapes framework-level failures (unknown route,
// method not allowed, malformed requests) into the same
// {"error": message} envelope the handlers produce.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if s, ok := he.Message.(string); ok {
			message = s
		} else {
			message = http.StatusText(status)
		}
	}
	_ = c.JSON(status, echo.Map{"error": message})
}

// RegisterRoutes registers the reservation and table routes on e.
// rdb may be nil, in which case the cache and rate-limit middleware
// are pass-throughs.
func RegisterRoutes(e *echo.Echo, cfg config.Config, rh *handler.ReservationHandler, th *handler.TableHandler, rdb *redis.Client) {
	e.HTTPErrorHandler = HTTPErrorHandler

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	write := []echo.MiddlewareFunc{middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)}
	if cfg.AuthRequired {
		write = append(write,
			middleware.JWTAuth(cfg.JWTSecret),
			middleware.RequireRole(model.RoleManager, model.RoleHost))
	}

	e.GET("/healthz", handler.Health)

	e.GET("/reservations", rh.List, cache)
	e.POST("/reservations", rh.Create, write...)
	e.GET("/reservations/:reservation_id", rh.Read)
	e.PUT("/reservations/:reservation_id", rh.Update, write...)
	e.PUT("/reservations/:reservation_id/status", rh.UpdateStatus, write...)

	e.GET("/tables", th.List, cache)
	e.POST("/tables", th.Create, write...)
	e.PUT("/tables/:table_id/seat", th.Seat, write...)
	e.DELETE("/tables/:table_id/seat", th.Finish, write...)
}

// RegisterAuth registers the staff account routes. Everything under
// /auth is reachable without a token except /auth/me, which requires a
// valid staff JWT.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleManager, model.RoleHost))
}
