package svg

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"natal-chart/internal/domain"
	"natal-chart/metrics"

	svgo "github.com/ajstarks/svgo/float"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Layout holds the placement and typography constants of a decorated chart.
type Layout struct {
	TopMargin      float64 // room above the chart for the title
	BottomMargin   float64 // room below the chart for the footer
	TitleY         float64
	FooterInset    float64 // distance of the footer from the right edge
	DateOffset     float64 // distance of the date baseline from the bottom edge
	LocationOffset float64
	FontFamily     string
	Color          string
	TitleSize      float64
	FooterSize     float64
}

// FramedLayout is used when the chart is painted over a background image.
func FramedLayout() Layout {
	return Layout{
		TopMargin:      100,
		BottomMargin:   40,
		TitleY:         60,
		FooterInset:    30,
		DateOffset:     30,
		LocationOffset: 15,
		FontFamily:     "Cinzel, serif",
		Color:          "#d4af37",
		TitleSize:      40,
		FooterSize:     12,
	}
}

// TransparentLayout is used when the chart has no background.
func TransparentLayout() Layout {
	l := FramedLayout()
	l.TitleY = 64
	l.TitleSize = 32
	return l
}

// Decorator implements domain.ChartDecorator.
type Decorator struct {
	extractor         domain.MarkupExtractor
	layouts           map[domain.Mode]Layout
	defaultBackground string
	logger            *slog.Logger
}

// NewDecorator creates a decorator. defaultBackground is the image href used
// in framed mode when a decoration does not name one.
func NewDecorator(extractor domain.MarkupExtractor, defaultBackground string, logger *slog.Logger) *Decorator {
	return &Decorator{
		extractor: extractor,
		layouts: map[domain.Mode]Layout{
			domain.ModeFramed:      FramedLayout(),
			domain.ModeTransparent: TransparentLayout(),
		},
		defaultBackground: defaultBackground,
		logger:            logger,
	}
}

// Decorate wraps base in the styled envelope. On any failure the base chart
// is returned untouched and the failure is logged and counted.
func (d *Decorator) Decorate(ctx context.Context, base string, dec domain.Decoration) (out string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "svg decoration panicked, returning base chart", "panic", r)
			metrics.RecordDecorationFallback("panic")
			out = base
		}
	}()

	decorated, err := d.Apply(base, dec)
	if err != nil {
		d.logger.WarnContext(ctx, "svg decoration failed, returning base chart",
			"error", err,
			"mode", string(dec.Mode))
		metrics.RecordDecorationFallback(fallbackReason(err))
		return base
	}
	return decorated
}

// Apply builds the decorated chart and reports why it could not.
func (d *Decorator) Apply(base string, dec domain.Decoration) (string, error) {
	layout, ok := d.layouts[dec.Mode]
	if !ok {
		return "", fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidRequest, dec.Mode)
	}
	if dec.RenderWidth <= 0 {
		return "", fmt.Errorf("%w: render width %d", domain.ErrInvalidRequest, dec.RenderWidth)
	}

	markup, err := d.extractor.Extract(base)
	if err != nil {
		return "", err
	}

	vb := domain.DefaultViewBox
	if markup.HasViewBox {
		vb = markup.ViewBox
	}

	width := vb.Width
	height := vb.Height + layout.TopMargin + layout.BottomMargin
	deviceHeight := float64(dec.RenderWidth) * height / width

	var b strings.Builder
	b.Grow(len(markup.Inner) + 2048)
	canvas := svgo.New(&b)

	canvas.Startraw(rootAttrs(vb, height, dec.RenderWidth, deviceHeight, markup.Namespaces)...)

	switch dec.Mode {
	case domain.ModeFramed:
		href := dec.BackgroundHref
		if href == "" {
			href = d.defaultBackground
		}
		canvas.Def()
		canvas.Pattern("background-pattern", vb.MinX, vb.MinY, width, height, "user")
		canvas.Image(vb.MinX, vb.MinY, int(math.Ceil(width)), int(math.Ceil(height)), escape(href))
		canvas.PatternEnd()
		canvas.DefEnd()
		canvas.Rect(vb.MinX, vb.MinY, width, height, `fill="url(#background-pattern)"`)
	case domain.ModeTransparent:
		canvas.Rect(vb.MinX, vb.MinY, width, height, `fill="none"`)
	}

	canvas.Text(vb.MinX+width/2, vb.MinY+layout.TitleY, upper(dec.Name),
		append(textAttrs(layout, layout.TitleSize, "middle"), `font-weight="bold"`)...)

	canvas.Gtransform(fmt.Sprintf("translate(0, %s)", num(layout.TopMargin)))
	// Inner markup goes to the writer untouched.
	_, _ = io.WriteString(canvas.Writer, markup.Inner)
	canvas.Gend()

	footerX := vb.MinX + width - layout.FooterInset
	footer := textAttrs(layout, layout.FooterSize, "end")
	canvas.Text(footerX, vb.MinY+height-layout.DateOffset, dec.DisplayDate, footer...)
	if dec.DisplayLocation != "" {
		canvas.Text(footerX, vb.MinY+height-layout.LocationOffset, dec.DisplayLocation, footer...)
	}

	canvas.End()
	return b.String(), nil
}

func textAttrs(layout Layout, size float64, anchor string) []string {
	return []string{
		fmt.Sprintf(`font-family="%s"`, escape(layout.FontFamily)),
		fmt.Sprintf(`font-size="%s"`, num(size)),
		fmt.Sprintf(`fill="%s"`, escape(layout.Color)),
		fmt.Sprintf(`text-anchor="%s"`, anchor),
	}
}

// rootAttrs lists the attributes of the new root ahead of the svg and xlink
// namespaces the canvas always declares. Other prefixes declared on the base
// chart root are re-declared so prefixed names in the inner markup stay bound.
func rootAttrs(vb domain.ViewBox, height float64, renderWidth int, deviceHeight float64, ns map[string]string) []string {
	attrs := []string{
		fmt.Sprintf(`viewBox="%s %s %s %s"`, num(vb.MinX), num(vb.MinY), num(vb.Width), num(height)),
		fmt.Sprintf(`width="%d"`, renderWidth),
		fmt.Sprintf(`height="%s"`, num(deviceHeight)),
	}

	prefixes := lo.Without(lo.Keys(ns), "xlink")
	slices.Sort(prefixes)
	for _, p := range prefixes {
		attrs = append(attrs, fmt.Sprintf(`xmlns:%s="%s"`, p, escape(ns[p])))
	}
	return attrs
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMarkupNotFound):
		return "markup_not_found"
	case errors.Is(err, domain.ErrMalformedSVG):
		return "malformed_svg"
	case errors.Is(err, domain.ErrInvalidViewBox):
		return "invalid_viewbox"
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid_params"
	default:
		return "unknown"
	}
}

// upper is locale-neutral Unicode upper casing. A Caser is stateful, so one
// is built per call.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
