package chart

import "math"

// ScaleMode selects how balances map onto the vertical axis.
type ScaleMode string

const (
	ScaleLinear ScaleMode = "linear"
	ScaleLog    ScaleMode = "log"
)

// ParseScaleMode folds arbitrary client input onto a valid mode. Anything
// that is not exactly the log mode is treated as linear.
func ParseScaleMode(s string) ScaleMode {
	if s == string(ScaleLog) {
		return ScaleLog
	}
	return ScaleLinear
}

// Canvas and plot-area geometry, in CSS pixels. The plot rect insets leave
// room for the tick labels on the left and a little breathing space above
// the tallest series.
const (
	CanvasWidth  = 860.0
	CanvasHeight = 420.0
)

// PlotRect is the rectangle the series are drawn into, in canvas pixels
// with the origin at the top-left.
type PlotRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultPlotRect returns the plot area used by the standard 860x420 canvas.
func DefaultPlotRect() PlotRect {
	return PlotRect{Left: 48, Top: 16, Width: 796, Height: 376}
}

// Right returns the x coordinate of the plot area's right edge.
func (r PlotRect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the plot area's bottom edge.
func (r PlotRect) Bottom() float64 { return r.Top + r.Height }

// Point is a mapped pixel position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Mapper converts (sample index, value) pairs into canvas pixels for one
// recomputation cycle. YMax is the eased display maximum from the axis
// state, not the raw data maximum.
type Mapper struct {
	Rect PlotRect
	Mode ScaleMode
	YMax float64
}

// NewMapper builds a mapper over the default plot rect.
func NewMapper(mode ScaleMode, yMax float64) Mapper {
	return Mapper{Rect: DefaultPlotRect(), Mode: mode, YMax: yMax}
}

// X maps sample index i of an n-point series onto the horizontal axis.
// Points are spread evenly; a single-point series sits on the left edge.
func (m Mapper) X(i, n int) float64 {
	if n <= 1 {
		return m.Rect.Left
	}
	frac := float64(i) / float64(n-1)
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	return m.Rect.Left + frac*m.Rect.Width
}

// Y maps a balance onto the vertical axis. Larger values sit higher on the
// canvas, so the pixel coordinate decreases as the value grows. Values are
// clamped into the plot rect; a degenerate axis pins everything to the
// bottom edge.
func (m Mapper) Y(v float64) float64 {
	frac := m.yFraction(v)
	return m.Rect.Bottom() - frac*m.Rect.Height
}

// yFraction returns the 0..1 height fraction for a value under the current
// scale mode, clamped into range.
func (m Mapper) yFraction(v float64) float64 {
	if m.YMax <= 0 || math.IsNaN(v) {
		return 0
	}
	var frac float64
	switch m.Mode {
	case ScaleLog:
		frac = LogFraction(v, m.YMax)
	default:
		frac = v / m.YMax
	}
	if frac < 0 || math.IsNaN(frac) {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	return frac
}

// Map converts one sample of an n-point series into a canvas point.
func (m Mapper) Map(i, n int, v float64) Point {
	return Point{X: m.X(i, n), Y: m.Y(v)}
}

// MapSeries converts a whole series of values into canvas points.
func (m Mapper) MapSeries(values []float64) []Point {
	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = m.Map(i, len(values), v)
	}
	return pts
}
