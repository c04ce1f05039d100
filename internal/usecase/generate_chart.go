package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"natal-chart/internal/domain"
	"natal-chart/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("natal-chart/usecase")

// ChartDefaults are the variant settings applied when a request leaves them out.
type ChartDefaults struct {
	Mode           domain.Mode
	Width          int
	BackgroundHref string
}

// GenerateChart renders a base chart for the requested birth data and
// decorates it.
type GenerateChart struct {
	renderer  domain.ChartRenderer
	decorator domain.ChartDecorator
	catalog   domain.BackgroundCatalog
	defaults  ChartDefaults
	logger    *slog.Logger
}

// NewGenerateChart creates a new GenerateChart usecase.
func NewGenerateChart(r domain.ChartRenderer, d domain.ChartDecorator, c domain.BackgroundCatalog, defaults ChartDefaults, l *slog.Logger) *GenerateChart {
	return &GenerateChart{renderer: r, decorator: d, catalog: c, defaults: defaults, logger: l}
}

// Execute returns the decorated chart SVG. Decoration problems never fail the
// call; only invalid input and renderer failures do.
func (uc *GenerateChart) Execute(ctx context.Context, req domain.ChartRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "GenerateChart")
	defer span.End()

	if req.RenderWidth <= 0 {
		req.RenderWidth = uc.defaults.Width
	}

	data, err := domain.ParseBirthData(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	dec := domain.Decoration{
		Name:            data.Name,
		DisplayDate:     data.DisplayDate(),
		DisplayLocation: data.DisplayLocation(),
		RenderWidth:     req.RenderWidth,
	}
	uc.resolveBackground(ctx, req.BackgroundID, &dec)

	span.SetAttributes(
		attribute.String("chart.mode", string(dec.Mode)),
		attribute.Int("chart.width", dec.RenderWidth),
	)

	base, err := uc.renderer.Render(ctx, data)
	if err != nil {
		metrics.RecordChart(string(dec.Mode), "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "chart renderer failed")
		uc.logger.ErrorContext(ctx, "failed to render base chart", "error", err)
		if !errors.Is(err, domain.ErrChartUpstream) {
			err = fmt.Errorf("%w: %w", domain.ErrChartUpstream, err)
		}
		return "", err
	}

	out := uc.decorator.Decorate(ctx, base, dec)
	metrics.RecordChart(string(dec.Mode), "success")
	return out, nil
}

func (uc *GenerateChart) resolveBackground(ctx context.Context, id string, dec *domain.Decoration) {
	dec.Mode = uc.defaults.Mode
	dec.BackgroundHref = uc.defaults.BackgroundHref

	switch id {
	case "":
		return
	case domain.TransparentBackgroundID:
		dec.Mode = domain.ModeTransparent
		dec.BackgroundHref = ""
		return
	}

	bg, err := uc.catalog.Lookup(ctx, id)
	if err != nil {
		uc.logger.WarnContext(ctx, "background not resolved, using default",
			"background_id", id,
			"error", err)
		return
	}
	dec.Mode = domain.ModeFramed
	if bg.Href != "" {
		dec.BackgroundHref = bg.Href
	}
}
