package handler

import (
	"errors"
	"net/http"

	"natal-chart/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// The domain error is kept as the internal cause so the error handler can
// log it and, for client errors, echo its detail.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields").SetInternal(err)

	case errors.Is(err, domain.ErrInvalidTimestamp):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid timestamp format").SetInternal(err)

	case errors.Is(err, domain.ErrInvalidRequest):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)

	case errors.Is(err, domain.ErrChartUpstream):
		return echo.NewHTTPError(http.StatusInternalServerError, "could not generate natal chart").SetInternal(err)

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}
