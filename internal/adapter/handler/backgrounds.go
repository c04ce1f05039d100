package handler

import (
	"net/http"

	"natal-chart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// BackgroundsHandler serves the backgrounds catalog at /api/backgrounds.
type BackgroundsHandler struct {
	uc *usecase.ListBackgrounds
}

// NewBackgroundsHandler creates a new backgrounds handler.
func NewBackgroundsHandler(uc *usecase.ListBackgrounds) *BackgroundsHandler {
	return &BackgroundsHandler{uc: uc}
}

// Handle returns the catalog document as-is.
func (h *BackgroundsHandler) Handle(c echo.Context) error {
	return c.JSONBlob(http.StatusOK, h.uc.Execute(c.Request().Context()))
}
