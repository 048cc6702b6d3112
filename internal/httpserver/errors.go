package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mkotchkov/storefront/internal/service"
)

// httpError maps service sentinel errors to status codes. Anything
// unrecognized collapses to a generic 500; the detail stays in the logs.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, reason(err, service.ErrValidation))
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, reason(err, service.ErrConflict))
	case errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, reason(err, service.ErrUnauthenticated))
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, reason(err, service.ErrForbidden))
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, reason(err, service.ErrNotFound))
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}

func reason(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	return strings.TrimPrefix(msg, ": ")
}
