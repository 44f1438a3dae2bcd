package chart

import "math"

// Tick is a labeled horizontal gridline, carrying both the value and its
// vertical pixel position.
type Tick struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
}

// Series is one plotted line: the raw sampled values plus their mapped
// canvas points.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
	Points []Point   `json:"points"`
}

// Geometry is the complete render model for one recomputation cycle:
// everything a client needs to draw the chart without redoing any math.
type Geometry struct {
	Rect   PlotRect  `json:"rect"`
	Mode   ScaleMode `json:"mode"`
	Axis   AxisState `json:"axis"`
	Ticks  []Tick    `json:"ticks"`
	Series []Series  `json:"series"`
}

// defaultTickTarget is the tick count requested on the linear axis.
const defaultTickTarget = 5

// ComputedMax returns the largest finite value across all series. This is
// the raw data maximum the axis easing machine is fed.
func ComputedMax(series []HoverSeries) float64 {
	max := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v > max {
				max = v
			}
		}
	}
	return max
}

// BuildGeometry runs one full recomputation cycle over the given series:
//
//  1. Find the raw data maximum across every series.
//  2. Advance the axis easing machine to get the display maximum.
//  3. Generate value ticks for the chosen scale mode.
//  4. Map every series and every tick into canvas pixels.
//
// The returned geometry carries the advanced axis state; callers hold onto
// it and pass it back in on the next cycle.
func BuildGeometry(series []HoverSeries, mode ScaleMode, prev AxisState, resetToken int) Geometry {
	computedMax := ComputedMax(series)
	axis := NextAxisState(prev, computedMax, resetToken)

	m := Mapper{Rect: DefaultPlotRect(), Mode: mode, YMax: axis.DisplayMax}

	geo := Geometry{
		Rect: m.Rect,
		Mode: mode,
		Axis: axis,
	}

	// Ticks above the eased display maximum would pile up on the top edge,
	// so the linear list is cut at the display maximum.
	var values []float64
	if mode == ScaleLog {
		values = MakeLogTicks(axis.DisplayMax)
	} else {
		values = PickTicks(0, axis.DisplayMax, defaultTickTarget)
	}
	for _, v := range values {
		if v > axis.DisplayMax+floatEps {
			continue
		}
		geo.Ticks = append(geo.Ticks, Tick{Value: v, Y: m.Y(v)})
	}

	for _, s := range series {
		geo.Series = append(geo.Series, Series{
			Label:  s.Label,
			Values: s.Values,
			Points: m.MapSeries(s.Values),
		})
	}
	return geo
}
