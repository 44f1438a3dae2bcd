// Package chart turns a sampled projection series into renderable geometry:
// axis ticks (linear and log), the eased vertical extent, pixel-space
// coordinate mapping, and hover/tooltip resolution.
//
// Like the projection core, everything here is pure; the one piece of state
// that survives across recomputation cycles (the eased display maximum) is
// threaded explicitly through AxisState rather than hidden in the package.
package chart

import (
	"math"
	"sort"
)

// MaxLogTicks bounds the log axis so a horizon spanning many decades stays
// readable.
const MaxLogTicks = 7

// floatEps absorbs log10/pow rounding when snapping to decade boundaries.
const floatEps = 1e-9

// niceSteps are the permitted tick-step mantissas, in ascending order.
var niceSteps = [4]float64{1, 2, 5, 10}

// NiceCeil snaps v upward to the nearest {1,2,5,10} x 10^k value. Non-finite
// or non-positive input returns 1, so callers get a safe one-unit axis
// rather than propagated garbage.
func NiceCeil(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	k := math.Floor(math.Log10(v) + floatEps)
	pow := math.Pow(10, k)
	mantissa := v / pow
	if mantissa > 10 {
		mantissa /= 10
		pow *= 10
	}
	for _, s := range niceSteps {
		if s >= mantissa-floatEps {
			return s * pow
		}
	}
	return 10 * pow
}

// PickTicks generates linear-axis gridline values: the raw step span/target
// is snapped up to a nice step, then multiples of it run from 0 through at
// least NiceCeil(max). A degenerate span (non-finite, zero, or negative)
// yields no ticks; the caller draws nothing rather than NaN.
func PickTicks(min, max float64, targetCount int) []float64 {
	span := max - min
	if math.IsNaN(span) || math.IsInf(span, 0) || span <= 0 {
		return nil
	}
	if targetCount < 1 {
		targetCount = 5
	}

	step := NiceCeil(span / float64(targetCount))
	top := NiceCeil(max)

	ticks := make([]float64, 0, targetCount+2)
	for i := 0; ; i++ {
		v := float64(i) * step
		ticks = append(ticks, v)
		if v >= top-floatEps {
			break
		}
		if i > 1000 { // absolute guard; nice steps keep real inputs far below this
			break
		}
	}
	return ticks
}

// MakeLogTicks generates log-axis gridline values: 1/2/5 per decade up to
// max, plus 0 and max themselves, deduplicated and ascending. When more than
// MaxLogTicks survive, interior entries are alternately dropped (first and
// last always kept) until the count fits. Degenerate max returns {0}.
func MakeLogTicks(max float64) []float64 {
	if math.IsNaN(max) || math.IsInf(max, 0) || max <= 0 {
		return []float64{0}
	}

	ticks := []float64{0, max}
	decades := int(math.Floor(math.Log10(max) + floatEps))
	for p := 0; p <= decades; p++ {
		pow := math.Pow(10, float64(p))
		for _, b := range [3]float64{1, 2, 5} {
			if v := b * pow; v <= max+floatEps {
				ticks = append(ticks, v)
			}
		}
	}

	sort.Float64s(ticks)
	ticks = dedupeSorted(ticks)

	for len(ticks) > MaxLogTicks {
		thinned := make([]float64, 0, len(ticks)/2+2)
		thinned = append(thinned, ticks[0])
		for i := 1; i < len(ticks)-1; i += 2 {
			thinned = append(thinned, ticks[i])
		}
		thinned = append(thinned, ticks[len(ticks)-1])
		ticks = thinned
	}
	return ticks
}

// LogT is the display log transform: log10(y+1) with negatives floored to
// zero. Unlike plain log10 it has no singularity at zero, so an empty
// balance maps to the axis origin, and it stays strictly increasing for
// y >= 0.
func LogT(y float64) float64 {
	return math.Log10(math.Max(0, y) + 1)
}

// LogFraction returns the log-mode vertical position of y in [0,1] relative
// to yMax. A yMax at or below zero (or a zero denominator) is treated as a
// unit denominator so the result stays finite.
func LogFraction(y, yMax float64) float64 {
	denom := 1.0
	if t := LogT(yMax); yMax > 0 && t > 0 {
		denom = t
	}
	return LogT(y) / denom
}

func dedupeSorted(vs []float64) []float64 {
	out := vs[:0]
	for i, v := range vs {
		if i == 0 || math.Abs(v-out[len(out)-1]) > floatEps*math.Max(1, v) {
			out = append(out, v)
		}
	}
	return out
}
