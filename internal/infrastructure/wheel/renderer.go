// Package wheel draws a plain zodiac wheel. It stands in for the external
// chart service when none is configured and draws no planetary positions.
package wheel

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"natal-chart/internal/domain"
	"natal-chart/metrics"

	svgo "github.com/ajstarks/svgo/float"
)

// HouseColors is the monochrome house palette: every house is white.
var HouseColors = [12]string{
	"#FFFFFF", "#FFFFFF", "#FFFFFF", "#FFFFFF", "#FFFFFF", "#FFFFFF",
	"#FFFFFF", "#FFFFFF", "#FFFFFF", "#FFFFFF", "#FFFFFF", "#FFFFFF",
}

var signGlyphs = [12]string{"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓"}

const defaultSize = 600

// Renderer implements domain.ChartRenderer.
type Renderer struct {
	houseColors [12]string
}

// NewRenderer creates a wheel renderer with the monochrome palette.
func NewRenderer() *Renderer {
	return &Renderer{houseColors: HouseColors}
}

// Render draws the wheel sized to data.Width.
func (r *Renderer) Render(ctx context.Context, data domain.BirthData) (string, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		metrics.RecordRender("wheel", "error", time.Since(start).Seconds())
		return "", err
	}

	size := float64(data.Width)
	if size <= 0 {
		size = defaultSize
	}
	c := size / 2
	outer := size * 0.48
	signInner := size * 0.40
	houseInner := size * 0.20

	var b strings.Builder
	canvas := svgo.New(&b)
	canvas.Startview(size, size, 0, 0, size, size)
	canvas.Title(data.Name)
	canvas.Circle(c, c, outer, `fill="#FFFFFF"`, `stroke="#000000"`, `stroke-width="1"`)

	glyphSize := fmt.Sprintf(`font-size="%.2f"`, size*0.035)

	// Houses are drawn counter-clockwise from the left horizon.
	for i := range 12 {
		a0 := 180 + float64(i)*30
		a1 := a0 + 30
		x0, y0 := polar(c, houseInner, a0)
		x1, y1 := polar(c, signInner, a0)
		x2, y2 := polar(c, signInner, a1)
		x3, y3 := polar(c, houseInner, a1)
		canvas.Path(
			fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 0 0 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 0 1 %.2f %.2f Z",
				x0, y0, x1, y1, signInner, signInner, x2, y2, x3, y3, houseInner, houseInner, x0, y0),
			fmt.Sprintf(`fill="%s"`, r.houseColors[i]), `stroke="#000000"`, `stroke-width="0.5"`)

		lx, ly := polar(c, outer, a0)
		canvas.Line(x1, y1, lx, ly, `stroke="#000000"`, `stroke-width="0.5"`)

		gx, gy := polar(c, (outer+signInner)/2, a0+15)
		canvas.Text(gx, gy, signGlyphs[i], glyphSize, `text-anchor="middle"`, `dominant-baseline="central"`)
	}

	canvas.Circle(c, c, houseInner, `fill="#FFFFFF"`, `stroke="#000000"`, `stroke-width="1"`)
	canvas.End()

	metrics.RecordRender("wheel", "success", time.Since(start).Seconds())
	return b.String(), nil
}

// polar converts a radius and an angle in degrees, measured counter-clockwise
// from the positive x axis, to SVG coordinates around the centre (c, c).
func polar(c, radius, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return c + radius*math.Cos(rad), c - radius*math.Sin(rad)
}
