package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"natal-chart/internal/domain"
	"natal-chart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ChartHandler handles /generar_carta_natal.
type ChartHandler struct {
	uc *usecase.GenerateChart
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(uc *usecase.GenerateChart) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// chartRequest is the JSON request body. Pointers tell a missing field apart
// from a zero value, so lat/lon of 0 are accepted.
type chartRequest struct {
	Name         *string     `json:"name" validate:"required,min=1"`
	Timestamp    *string     `json:"utc_dt" validate:"required,min=1"`
	Latitude     *float64    `json:"lat" validate:"required,gte=-90,lte=90"`
	Longitude    *float64    `json:"lon" validate:"required,gte=-180,lte=180"`
	Width        renderWidth `json:"width" validate:"omitempty,gt=0,lte=4096"`
	BackgroundID string      `json:"background_id" validate:"omitempty,max=64"`
}

// renderWidth accepts a JSON number or a numeric string. Fractions are
// truncated toward zero.
type renderWidth int

func (w *renderWidth) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("width: %w", err)
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) {
		return fmt.Errorf("width: not a number: %s", b)
	}
	// Out-of-range values are left for the validator to reject.
	*w = renderWidth(math.Trunc(max(min(f, math.MaxInt32), math.MinInt32)))
	return nil
}

// Handle binds and validates the birth data and returns the decorated SVG.
func (h *ChartHandler) Handle(c echo.Context) error {
	var req chartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return mapDomainError(err)
	}

	svg, err := h.uc.Execute(c.Request().Context(), domain.ChartRequest{
		Name:         *req.Name,
		Timestamp:    *req.Timestamp,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		RenderWidth:  int(req.Width),
		BackgroundID: req.BackgroundID,
	})
	if err != nil {
		return mapDomainError(err)
	}

	return c.Blob(http.StatusOK, "image/svg+xml", []byte(svg))
}
