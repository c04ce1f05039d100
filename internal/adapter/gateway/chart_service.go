package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"natal-chart/internal/domain"
	"natal-chart/metrics"

	"github.com/gabriel-vasile/mimetype"
)

const maxChartBytes = 8 << 20

// ChartServiceGateway implements domain.ChartRenderer against an external
// chart rendering service.
type ChartServiceGateway struct {
	baseURL     string
	token       string
	houseColors []string
	httpClient  *http.Client
}

// NewChartServiceGateway creates a chart service gateway with tuned HTTP transport.
func NewChartServiceGateway(baseURL, token string, houseColors []string, timeout time.Duration) *ChartServiceGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &ChartServiceGateway{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		houseColors: houseColors,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// chartServiceRequest is the body sent to POST /chart.
type chartServiceRequest struct {
	Name        string   `json:"name"`
	UTCDateTime string   `json:"utc_dt"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Width       int      `json:"width"`
	HouseColors []string `json:"house_colors,omitempty"`
}

// Render asks the chart service for the base chart SVG.
func (g *ChartServiceGateway) Render(ctx context.Context, data domain.BirthData) (string, error) {
	start := time.Now()
	svg, err := g.render(ctx, data)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordRender("chart_service", status, time.Since(start).Seconds())
	return svg, err
}

func (g *ChartServiceGateway) render(ctx context.Context, data domain.BirthData) (string, error) {
	body, err := json.Marshal(chartServiceRequest{
		Name:        data.Name,
		UTCDateTime: data.UTC.Format(time.RFC3339),
		Lat:         data.Latitude,
		Lon:         data.Longitude,
		Width:       data.Width,
		HouseColors: g.houseColors,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", domain.ErrChartUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chart", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrChartUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/svg+xml")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrChartUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: chart service returned status %d: %s",
			domain.ErrChartUpstream, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxChartBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", domain.ErrChartUpstream, err)
	}
	if len(raw) > maxChartBytes {
		return "", fmt.Errorf("%w: chart exceeds %d bytes", domain.ErrChartUpstream, maxChartBytes)
	}

	if mt := mimetype.Detect(raw); !mt.Is("image/svg+xml") {
		return "", fmt.Errorf("%w: chart service returned %s, want image/svg+xml", domain.ErrChartUpstream, mt.String())
	}

	return string(raw), nil
}
