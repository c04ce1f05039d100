package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"natal-chart/internal/domain"
	"natal-chart/internal/mocks"
	"natal-chart/internal/usecase"
	"natal-chart/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const baseChart = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 600 600"><circle r="1"/></svg>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

type chartDeps struct {
	renderer  *mocks.MockChartRenderer
	decorator *mocks.MockChartDecorator
	catalog   *mocks.MockBackgroundCatalog
}

func newTestEcho(t *testing.T) (*echo.Echo, chartDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := chartDeps{
		renderer:  mocks.NewMockChartRenderer(ctrl),
		decorator: mocks.NewMockChartDecorator(ctrl),
		catalog:   mocks.NewMockBackgroundCatalog(ctrl),
	}

	uc := usecase.NewGenerateChart(deps.renderer, deps.decorator, deps.catalog, usecase.ChartDefaults{
		Mode:           domain.ModeFramed,
		Width:          600,
		BackgroundHref: "/static/images/template-1.png",
	}, testLogger())

	e := echo.New()
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler(testLogger())
	e.POST("/generar_carta_natal", NewChartHandler(uc).Handle)
	return e, deps
}

func postChart(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generar_carta_natal", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestChartHandler_Success(t *testing.T) {
	e, deps := newTestEcho(t)

	deps.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(baseChart, nil)
	deps.decorator.EXPECT().
		Decorate(gomock.Any(), baseChart, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, d domain.Decoration) string {
			assert.Equal(t, "Ana", d.Name)
			assert.Equal(t, "15.03.1990 14:30 hs", d.DisplayDate)
			assert.Equal(t, "40.7128, -74.0060", d.DisplayLocation)
			assert.Equal(t, 600, d.RenderWidth)
			return "<svg>decorated</svg>"
		})

	rec := postChart(e, `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":40.7128,"lon":-74.006}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "<svg>decorated</svg>", rec.Body.String())
}

func TestChartHandler_ZeroCoordinatesAccepted(t *testing.T) {
	e, deps := newTestEcho(t)

	deps.renderer.EXPECT().
		Render(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data domain.BirthData) (string, error) {
			assert.Zero(t, data.Latitude)
			assert.Zero(t, data.Longitude)
			return baseChart, nil
		})
	deps.decorator.EXPECT().Decorate(gomock.Any(), gomock.Any(), gomock.Any()).Return(baseChart)

	rec := postChart(e, `{"name":"Null Island","utc_dt":"2000-01-01 00:00","lat":0,"lon":0}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChartHandler_WidthAndBackground(t *testing.T) {
	e, deps := newTestEcho(t)

	deps.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(baseChart, nil)
	deps.decorator.EXPECT().
		Decorate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, base string, d domain.Decoration) string {
			assert.Equal(t, 900, d.RenderWidth)
			assert.Equal(t, domain.ModeTransparent, d.Mode)
			return base
		})

	rec := postChart(e, `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":1,"lon":2,"width":900,"background_id":"transparent"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChartHandler_LenientWidth(t *testing.T) {
	tests := map[string]struct {
		width string
		want  int
	}{
		"fractional number": {width: `600.9`, want: 600},
		"numeric string":    {width: `"450"`, want: 450},
		"fractional string": {width: `"320.5"`, want: 320},
		"null uses default": {width: `null`, want: 600},
		"exponent":          {width: `1e3`, want: 1000},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, deps := newTestEcho(t)

			deps.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(baseChart, nil)
			deps.decorator.EXPECT().
				Decorate(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, base string, d domain.Decoration) string {
					assert.Equal(t, tt.want, d.RenderWidth)
					return base
				})

			rec := postChart(e, `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":1,"lon":2,"width":`+tt.width+`}`)

			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}

func TestChartHandler_BadRequests(t *testing.T) {
	tests := map[string]struct {
		body        string
		wantError   string
		wantMessage string
	}{
		"missing lat": {
			body:        `{"name":"Ana","utc_dt":"1990-03-15 14:30","lon":-74.006}`,
			wantError:   "missing required fields",
			wantMessage: "lat",
		},
		"missing name and lon": {
			body:        `{"utc_dt":"1990-03-15 14:30","lat":40.7}`,
			wantError:   "missing required fields",
			wantMessage: "name, lon",
		},
		"empty name": {
			body:        `{"name":"","utc_dt":"1990-03-15 14:30","lat":1,"lon":1}`,
			wantError:   "missing required fields",
			wantMessage: "name",
		},
		"null lon": {
			body:        `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":1,"lon":null}`,
			wantError:   "missing required fields",
			wantMessage: "lon",
		},
		"impossible timestamp": {
			body:        `{"name":"Ana","utc_dt":"2024-13-40 99:99","lat":1,"lon":1}`,
			wantError:   "invalid timestamp format",
			wantMessage: "month out of range",
		},
		"latitude out of range": {
			body:        `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":91,"lon":1}`,
			wantError:   "invalid request",
			wantMessage: "lat must be <= 90",
		},
		"longitude out of range": {
			body:        `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":1,"lon":-181}`,
			wantError:   "invalid request",
			wantMessage: "lon must be >= -180",
		},
		"negative width": {
			body:        `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":1,"lon":1,"width":-5}`,
			wantError:   "invalid request",
			wantMessage: "width must be > 0",
		},
		"width above limit": {
			body:        `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":1,"lon":1,"width":"100000"}`,
			wantError:   "invalid request",
			wantMessage: "width must be <= 4096",
		},
		"width not numeric": {
			body:      `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":1,"lon":1,"width":"wide"}`,
			wantError: "invalid request body",
		},
		"malformed json": {
			body:      `{"name":"Ana",`,
			wantError: "invalid request body",
		},
		"wrong type": {
			body:      `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":"north","lon":1}`,
			wantError: "invalid request body",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// No renderer expectations: bad input never reaches it.
			e, _ := newTestEcho(t)

			rec := postChart(e, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Contains(t, resp.Message, tt.wantMessage)
		})
	}
}

func TestChartHandler_UpstreamFailure(t *testing.T) {
	e, deps := newTestEcho(t)

	deps.renderer.EXPECT().
		Render(gomock.Any(), gomock.Any()).
		Return("", errors.New("connection refused"))

	rec := postChart(e, `{"name":"Ana","utc_dt":"1990-03-15 14:30","lat":40.7128,"lon":-74.006}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "could not generate natal chart", resp.Error)
	assert.Empty(t, resp.Message)
}
