package handler

import (
	"net/http"

	"natal-chart/internal/domain"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness plus whether the backgrounds catalog is readable.
// A broken catalog only degrades backgrounds, so the service stays healthy.
type HealthHandler struct {
	catalog domain.BackgroundCatalog
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(c domain.BackgroundCatalog) *HealthHandler {
	return &HealthHandler{catalog: c}
}

// Handle processes the /health endpoint.
func (h *HealthHandler) Handle(c echo.Context) error {
	backgrounds := "ok"
	if _, err := h.catalog.Raw(c.Request().Context()); err != nil {
		backgrounds = "unavailable"
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "healthy",
		"backgrounds": backgrounds,
	})
}
