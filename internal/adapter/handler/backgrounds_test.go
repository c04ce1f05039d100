package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"natal-chart/internal/domain"
	"natal-chart/internal/mocks"
	"natal-chart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestBackgroundsHandler(t *testing.T) {
	tests := map[string]struct {
		raw      []byte
		err      error
		wantBody string
	}{
		"catalog available": {
			raw:      []byte(`{"backgrounds":[{"id":"night","name":"Night","image":"night.png"}]}`),
			wantBody: `{"backgrounds":[{"id":"night","name":"Night","image":"night.png"}]}`,
		},
		"catalog unavailable": {
			err:      domain.ErrCatalogUnavailable,
			wantBody: `{"backgrounds":[]}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockBackgroundCatalog(ctrl)
			catalog.EXPECT().Raw(gomock.Any()).Return(tt.raw, tt.err)

			e := echo.New()
			e.GET("/api/backgrounds", NewBackgroundsHandler(usecase.NewListBackgrounds(catalog, testLogger())).Handle)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/backgrounds", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHealthHandler(t *testing.T) {
	tests := map[string]struct {
		err         error
		backgrounds string
	}{
		"catalog ok":          {backgrounds: "ok"},
		"catalog unavailable": {err: domain.ErrCatalogUnavailable, backgrounds: "unavailable"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockBackgroundCatalog(ctrl)
			catalog.EXPECT().Raw(gomock.Any()).Return([]byte(`{}`), tt.err)

			e := echo.New()
			e.GET("/health", NewHealthHandler(catalog).Handle)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"status":"healthy","backgrounds":"`+tt.backgrounds+`"}`, rec.Body.String())
		})
	}
}
