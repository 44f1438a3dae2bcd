package chart

import "math"

// Tooltip placement tuning, in canvas pixels. The box trails the cursor
// slightly up and to the right, and flips when it would run off the canvas.
const (
	tooltipOffsetX   = 14.0
	tooltipOffsetY   = 18.0
	tooltipFlipRight = 96.0 // anchors this close to the right edge flip left
	tooltipFlipTop   = 56.0 // anchors this close to the top flip below
)

// HoverValue is one series' sample under the cursor.
type HoverValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// HoverResult identifies the sample nearest the cursor and the value of
// every series at that sample.
type HoverResult struct {
	Index  int          `json:"index"`
	X      float64      `json:"x"`
	Values []HoverValue `json:"values"`
}

// HoverSeries is a named series the hover resolver reads from.
type HoverSeries struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// ResolveHoverIndex maps a horizontal cursor fraction t (0 at the left edge
// of the plot, 1 at the right) onto the nearest sample index of an n-point
// series. Out-of-range and non-finite fractions clamp to the edges.
func ResolveHoverIndex(t float64, n int) int {
	if n <= 1 {
		return 0
	}
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	idx := int(math.Round(t * float64(n-1)))
	if idx < 0 {
		idx = 0
	} else if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// SampleAt reads a series at idx, clamping into range so that series of
// different lengths can share a hover index. An empty series reads as 0.
func SampleAt(values []float64, idx int) float64 {
	if len(values) == 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	} else if idx > len(values)-1 {
		idx = len(values) - 1
	}
	return values[idx]
}

// ResolveHover resolves a cursor fraction against a set of series. The
// index is chosen from the longest series; shorter series clamp to their
// own last sample. The returned X is the pixel anchor for the tooltip.
func ResolveHover(t float64, rect PlotRect, series []HoverSeries) HoverResult {
	n := 0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	idx := ResolveHoverIndex(t, n)

	m := Mapper{Rect: rect}
	res := HoverResult{Index: idx, X: m.X(idx, n)}
	for _, s := range series {
		res.Values = append(res.Values, HoverValue{
			Label: s.Label,
			Value: SampleAt(s.Values, idx),
		})
	}
	return res
}

// PlaceTooltip returns the top-left corner for a tooltip box of the given
// size anchored at a canvas point. The box sits above and to the right of
// the anchor, flipping to the other side near the canvas edges, and is
// finally clamped so it never leaves the canvas.
func PlaceTooltip(anchor Point, width, height float64) Point {
	x := anchor.X + tooltipOffsetX
	if anchor.X >= CanvasWidth-tooltipFlipRight {
		x = anchor.X - tooltipOffsetX - width
	}

	y := anchor.Y - tooltipOffsetY - height
	if anchor.Y < tooltipFlipTop {
		y = anchor.Y + tooltipOffsetY
	}

	if x < 0 {
		x = 0
	} else if x+width > CanvasWidth {
		x = CanvasWidth - width
	}
	if y < 0 {
		y = 0
	} else if y+height > CanvasHeight {
		y = CanvasHeight - height
	}
	return Point{X: x, Y: y}
}
