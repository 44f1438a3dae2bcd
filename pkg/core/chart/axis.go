package chart

import "math"

// Downward easing tuning. When fresh data needs a smaller axis, the display
// maximum decays geometrically instead of snapping, so mid-edit rescales do
// not make the whole chart jump. The decay is faster once the target has
// fallen well below the current extent.
const (
	easeFarThreshold = 0.75 // computedMax below this fraction of displayMax counts as "far"
	easeFarFactor    = 0.90
	easeNearFactor   = 0.975
)

// AxisState is the only state in the core that survives across
// recomputation cycles. DisplayMax is the eased vertical extent used for
// mapping; zero means uninitialized. ResetToken echoes the last manual-refit
// request the state has absorbed.
type AxisState struct {
	DisplayMax float64 `json:"displayMax"`
	ResetToken int     `json:"resetToken"`
}

// NextAxisState advances the axis easing machine by one recomputation cycle.
//
// Transitions:
//   - resetToken changed     -> snap to computedMax immediately (manual refit)
//   - uninitialized state    -> snap to computedMax
//   - computedMax >= current -> snap up (data must never clip off-chart)
//   - computedMax <  current -> decay geometrically toward it, floored at it
func NextAxisState(prev AxisState, computedMax float64, resetToken int) AxisState {
	if math.IsNaN(computedMax) || math.IsInf(computedMax, 0) || computedMax < 0 {
		computedMax = 0
	}

	if resetToken != prev.ResetToken || prev.DisplayMax <= 0 || computedMax >= prev.DisplayMax {
		return AxisState{DisplayMax: computedMax, ResetToken: resetToken}
	}

	factor := easeNearFactor
	if computedMax < easeFarThreshold*prev.DisplayMax {
		factor = easeFarFactor
	}
	next := prev.DisplayMax * factor
	if next < computedMax {
		next = computedMax
	}
	return AxisState{DisplayMax: next, ResetToken: resetToken}
}
