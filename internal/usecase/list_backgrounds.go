package usecase

import (
	"context"
	"log/slog"

	"natal-chart/internal/domain"
)

// emptyCatalog is served when the catalog file cannot be read.
var emptyCatalog = []byte(`{"backgrounds": []}`)

// ListBackgrounds returns the backgrounds catalog document.
type ListBackgrounds struct {
	catalog domain.BackgroundCatalog
	logger  *slog.Logger
}

// NewListBackgrounds creates a new ListBackgrounds usecase.
func NewListBackgrounds(c domain.BackgroundCatalog, l *slog.Logger) *ListBackgrounds {
	return &ListBackgrounds{catalog: c, logger: l}
}

// Execute returns the catalog JSON, or an empty catalog when it is unavailable.
func (uc *ListBackgrounds) Execute(ctx context.Context) []byte {
	raw, err := uc.catalog.Raw(ctx)
	if err != nil {
		uc.logger.WarnContext(ctx, "backgrounds catalog unavailable", "error", err)
		return emptyCatalog
	}
	return raw
}
