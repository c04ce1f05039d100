package svg

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"natal-chart/internal/domain"
	"natal-chart/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseInner = `<circle cx="300" cy="300" r="250" fill="#FFFFFF" stroke="#000"/><g id="houses"><path d="M 300 50 L 300 550"/><text x="10" y="20">&#9800;</text></g>`

const baseChart = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 600 600" width="600" height="600">` + baseInner + `</svg>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDecorator() *Decorator {
	return NewDecorator(NewXMLExtractor(), "/static/images/template-1.png", testLogger())
}

func framedDecoration() domain.Decoration {
	return domain.Decoration{
		Name:            "ana",
		DisplayDate:     "15.03.1990 14:30 hs",
		DisplayLocation: domain.FormatLocation(40.7128, -74.006),
		RenderWidth:     600,
		Mode:            domain.ModeFramed,
	}
}

func TestDecorator_Decorate_Framed(t *testing.T) {
	out := newTestDecorator().Decorate(context.Background(), baseChart, framedDecoration())

	assert.Equal(t, 1, strings.Count(out, "<svg"), "exactly one svg root")
	assert.Equal(t, 1, strings.Count(out, "</svg>"))
	assert.Contains(t, out, "<svg\n     viewBox=\"0 0 600 740\"\n     width=\"600\"\n     height=\"740\"")
	assert.Contains(t, out, `xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, out, "<g transform=\"translate(0, 100)\">\n"+baseInner+"</g>")
	assert.Contains(t, out, `<pattern id="background-pattern" x="0.00" y="0.00" width="600.00" height="740.00" patternUnits="userSpaceOnUse"`)
	assert.Contains(t, out, `<image x="0.00" y="0.00" width="600.00" height="740.00" xlink:href="/static/images/template-1.png"`)
	assert.Contains(t, out, `<rect x="0.00" y="0.00" width="600.00" height="740.00" fill="url(#background-pattern)"`)
	assert.Contains(t, out, `<text x="300.00" y="60.00" font-family="Cinzel, serif" font-size="40" fill="#d4af37" text-anchor="middle" font-weight="bold" >ANA</text>`)
	assert.Contains(t, out, `<text x="570.00" y="710.00" font-family="Cinzel, serif" font-size="12" fill="#d4af37" text-anchor="end" >15.03.1990 14:30 hs</text>`)
	assert.Contains(t, out, `<text x="570.00" y="725.00" font-family="Cinzel, serif" font-size="12" fill="#d4af37" text-anchor="end" >40.7128, -74.0060</text>`)
	assert.Equal(t, "</svg>", strings.TrimSpace(out[strings.LastIndex(out, "</text>")+len("</text>"):]))
}

func TestDecorator_Decorate_Transparent(t *testing.T) {
	dec := framedDecoration()
	dec.Mode = domain.ModeTransparent
	dec.RenderWidth = 300
	dec.BackgroundHref = "/static/images/backgrounds/ignored.png"

	out := newTestDecorator().Decorate(context.Background(), baseChart, dec)

	assert.Contains(t, out, "<svg\n     viewBox=\"0 0 600 740\"\n     width=\"300\"\n     height=\"370\"")
	assert.Contains(t, out, `<rect x="0.00" y="0.00" width="600.00" height="740.00" fill="none"`)
	assert.NotContains(t, out, "<image")
	assert.NotContains(t, out, "url(")
	assert.Contains(t, out, `font-size="32"`)
	assert.Contains(t, out, baseInner)
}

func TestDecorator_Decorate_CustomBackground(t *testing.T) {
	dec := framedDecoration()
	dec.BackgroundHref = "/static/images/backgrounds/night.png?v=1&x=2"

	out := newTestDecorator().Decorate(context.Background(), baseChart, dec)

	assert.Contains(t, out, `xlink:href="/static/images/backgrounds/night.png?v=1&amp;x=2"`)
	assert.NotContains(t, out, "template-1.png")
}

func TestDecorator_Decorate_SingleFooterLine(t *testing.T) {
	dec := framedDecoration()
	dec.DisplayLocation = ""

	out := newTestDecorator().Decorate(context.Background(), baseChart, dec)

	assert.Equal(t, 1, strings.Count(out, `text-anchor="end"`))
	assert.Contains(t, out, "15.03.1990 14:30 hs")
}

func TestDecorator_Decorate_EscapesText(t *testing.T) {
	dec := framedDecoration()
	dec.Name = `<script>"x"&</script>`

	out := newTestDecorator().Decorate(context.Background(), baseChart, dec)

	assert.NotContains(t, out, "<SCRIPT>")
	assert.Contains(t, out, "&lt;SCRIPT&gt;&#34;X&#34;&amp;&lt;/SCRIPT&gt;")
}

func TestDecorator_Decorate_UnicodeTitle(t *testing.T) {
	dec := framedDecoration()
	dec.Name = "josé straße"

	out := newTestDecorator().Decorate(context.Background(), baseChart, dec)

	assert.Contains(t, out, ">JOSÉ STRASSE</text>")
}

func TestDecorator_Decorate_DefaultViewBox(t *testing.T) {
	base := `<svg xmlns="http://www.w3.org/2000/svg"><rect width="10" height="10"/></svg>`

	out := newTestDecorator().Decorate(context.Background(), base, framedDecoration())

	assert.Contains(t, out, `viewBox="0 0 600 740"`)
	assert.Contains(t, out, "<g transform=\"translate(0, 100)\">\n<rect width=\"10\" height=\"10\"/></g>")
}

func TestDecorator_Decorate_OffsetViewBox(t *testing.T) {
	base := `<svg viewBox="-300 -300 600 600"><circle r="250"/></svg>`

	out := newTestDecorator().Decorate(context.Background(), base, framedDecoration())

	assert.Contains(t, out, `viewBox="-300 -300 600 740"`)
	assert.Contains(t, out, `<rect x="-300.00" y="-300.00" width="600.00" height="740.00"`)
	assert.Contains(t, out, `<text x="0.00" y="-240.00"`)
	assert.Contains(t, out, `<text x="270.00" y="410.00"`)
}

func TestDecorator_Decorate_KeepsNamespaces(t *testing.T) {
	base := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 600 600"><use xlink:href="#sun"/></svg>`

	out := newTestDecorator().Decorate(context.Background(), base, framedDecoration())

	assert.Equal(t, 1, strings.Count(out, `xmlns:xlink=`))
	assert.Contains(t, out, `<use xlink:href="#sun"/>`)
}

func TestDecorator_Decorate_RedeclaresOtherPrefixes(t *testing.T) {
	base := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" viewBox="0 0 600 600"><g inkscape:label="wheel" sodipodi:role="line"/></svg>`

	out := newTestDecorator().Decorate(context.Background(), base, framedDecoration())

	assert.Contains(t, out, "\n     xmlns:inkscape=\"http://www.inkscape.org/namespaces/inkscape\"\n     xmlns:sodipodi=")
	assert.Contains(t, out, `<g inkscape:label="wheel" sodipodi:role="line"/>`)

	_, err := NewXMLExtractor().Extract(out)
	assert.NoError(t, err, "decorated output is well-formed")
}

func TestDecorator_Decorate_InnerMarkupUntouched(t *testing.T) {
	inner := "\n  <g id=\"planets\">\n\t<text x=\"1.123456789\">&amp; &#x2609;</text><!-- keep --></g>\n"
	base := `<svg viewBox="0 0 600 600">` + inner + `</svg>`

	out := newTestDecorator().Decorate(context.Background(), base, framedDecoration())

	assert.Contains(t, out, "<g transform=\"translate(0, 100)\">\n"+inner+"</g>")
}

func TestDecorator_Decorate_DoctypeEntities(t *testing.T) {
	base := `<?xml version="1.0"?>
<!DOCTYPE svg [<!ENTITY ns_svg "http://www.w3.org/2000/svg"><!ENTITY ns_a "http://example.org/a">]>
<svg xmlns="&ns_svg;" viewBox="0 0 600 600"><g xmlns:a="&ns_a;" a:id="wheel"/></svg>`

	out := newTestDecorator().Decorate(context.Background(), base, framedDecoration())

	assert.NotEqual(t, base, out)
	assert.Contains(t, out, `<g xmlns:a="http://example.org/a" a:id="wheel"/>`)
	assert.NotContains(t, out, "&ns_")
}

func TestDecorator_Decorate_Deterministic(t *testing.T) {
	d := newTestDecorator()

	first := d.Decorate(context.Background(), baseChart, framedDecoration())
	second := d.Decorate(context.Background(), baseChart, framedDecoration())

	assert.Equal(t, first, second)
}

func TestDecorator_Decorate_FallsBackOnMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		reason string
	}{
		{"not svg", "chart unavailable", "markup_not_found"},
		{"self-closing root", `<svg viewBox="0 0 600 600"/>`, "markup_not_found"},
		{"unclosed root", `<svg viewBox="0 0 600 600"><g>`, "malformed_svg"},
		{"bad viewBox", `<svg viewBox="0 0 x 600"><g/></svg>`, "invalid_viewbox"},
	}

	d := newTestDecorator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.DecorationFallbackTotal.WithLabelValues(tt.reason)
			before := testutil.ToFloat64(counter)

			out := d.Decorate(context.Background(), tt.base, framedDecoration())

			assert.Equal(t, tt.base, out)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestDecorator_Decorate_FallsBackOnBadParams(t *testing.T) {
	d := newTestDecorator()

	dec := framedDecoration()
	dec.RenderWidth = 0
	assert.Equal(t, baseChart, d.Decorate(context.Background(), baseChart, dec))

	dec = framedDecoration()
	dec.Mode = "sepia"
	assert.Equal(t, baseChart, d.Decorate(context.Background(), baseChart, dec))
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(string) (domain.ChartMarkup, error) {
	panic("boom")
}

func TestDecorator_Decorate_RecoversPanic(t *testing.T) {
	d := NewDecorator(panickingExtractor{}, "", testLogger())

	assert.NotPanics(t, func() {
		out := d.Decorate(context.Background(), baseChart, framedDecoration())
		assert.Equal(t, baseChart, out)
	})
}

func TestDecorator_Apply_ReportsError(t *testing.T) {
	_, err := newTestDecorator().Apply("nope", framedDecoration())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMarkupNotFound))
}
