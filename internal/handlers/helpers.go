package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dsmolkov/ecommerce_backend/internal/logging"
	"github.com/dsmolkov/ecommerce_backend/internal/models"
	"github.com/dsmolkov/ecommerce_backend/internal/service"
)

// principal reads the identity the auth middleware resolved into the
// context. Handlers never parse credentials themselves.
func principal(c echo.Context) (uint, models.Role, error) {
	id, ok := c.Get("userID").(uint)
	if !ok || id == 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	role, _ := c.Get("role").(models.Role)
	return id, role, nil
}

// respondError maps typed service errors to HTTP statuses. Unexpected
// failures are logged with full detail and surfaced as a bare 500.
func respondError(c echo.Context, op string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", op)

	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyCart):
		l.Warn("request rejected", "status", http.StatusBadRequest, "error", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		l.Warn("request rejected", "status", http.StatusUnauthorized, "error", err.Error())
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		l.Warn("request rejected", "status", http.StatusForbidden, "error", err.Error())
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn("request rejected", "status", http.StatusNotFound, "error", err.Error())
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		l.Error("request failed", "status", http.StatusInternalServerError, "error", err.Error())
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
