package domain

import (
	"fmt"
	"math"
	"time"
)

// TimestampLayout is the only accepted layout for the utc_dt request field.
const TimestampLayout = "2006-01-02 15:04"

// DisplayDateLayout is how the birth timestamp is printed in the chart footer.
const DisplayDateLayout = "02.01.2006 15:04 hs"

// MaxRenderWidth is the largest render width a caller may ask for.
const MaxRenderWidth = 4096

// Mode selects how the decorated chart background is painted.
type Mode string

const (
	ModeFramed      Mode = "framed"
	ModeTransparent Mode = "transparent"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeFramed || m == ModeTransparent
}

// ChartRequest is the caller-supplied birth data after JSON binding.
type ChartRequest struct {
	Name         string
	Timestamp    string
	Latitude     float64
	Longitude    float64
	RenderWidth  int
	BackgroundID string
}

// BirthData is a ChartRequest whose timestamp has been parsed.
type BirthData struct {
	Name      string
	UTC       time.Time
	Latitude  float64
	Longitude float64
	Width     int
}

// ParseBirthData checks the request ranges, parses the timestamp and returns
// the renderer input. RenderWidth must already carry the default when the
// caller gave none.
func ParseBirthData(req ChartRequest) (BirthData, error) {
	if req.Name == "" || req.Timestamp == "" {
		return BirthData{}, ErrMissingField
	}
	if math.IsNaN(req.Latitude) || req.Latitude < -90 || req.Latitude > 90 {
		return BirthData{}, fmt.Errorf("%w: lat must be between -90 and 90", ErrInvalidRequest)
	}
	if math.IsNaN(req.Longitude) || req.Longitude < -180 || req.Longitude > 180 {
		return BirthData{}, fmt.Errorf("%w: lon must be between -180 and 180", ErrInvalidRequest)
	}
	if req.RenderWidth <= 0 || req.RenderWidth > MaxRenderWidth {
		return BirthData{}, fmt.Errorf("%w: width must be in (0, %d]", ErrInvalidRequest, MaxRenderWidth)
	}

	ts, err := time.Parse(TimestampLayout, req.Timestamp)
	if err != nil {
		return BirthData{}, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
	}

	return BirthData{
		Name:      req.Name,
		UTC:       ts,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Width:     req.RenderWidth,
	}, nil
}

// DisplayDate formats the birth timestamp for the chart footer.
func (b BirthData) DisplayDate() string {
	return b.UTC.Format(DisplayDateLayout)
}

// DisplayLocation formats the coordinates as "lat, lon" with 4 decimals.
func (b BirthData) DisplayLocation() string {
	return FormatLocation(b.Latitude, b.Longitude)
}

// FormatLocation formats a coordinate pair as "lat, lon" with 4 decimals.
func FormatLocation(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

// Decoration carries the display parameters applied on top of a base chart.
type Decoration struct {
	Name            string
	DisplayDate     string
	DisplayLocation string
	RenderWidth     int
	Mode            Mode
	BackgroundHref  string
}

// ViewBox is the four-number SVG viewBox geometry.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// DefaultViewBox is assumed when a base chart carries no viewBox attribute.
var DefaultViewBox = ViewBox{MinX: 0, MinY: 0, Width: 600, Height: 600}

// ChartMarkup is the result of splitting a base chart into its root geometry
// and the verbatim markup inside the root element.
type ChartMarkup struct {
	ViewBox    ViewBox
	HasViewBox bool
	Inner      string
	// Namespaces maps prefixes declared on the root (xmlns:prefix) to their URI.
	Namespaces map[string]string
}
