package projection

import "math"

// WindfallTiming identifies how the user anchored the one-time deposit.
type WindfallTiming string

const (
	WindfallNone       WindfallTiming = "none"
	WindfallNextPayday WindfallTiming = "next_payday"
	WindfallAtYear     WindfallTiming = "at_year"
	WindfallAtAge      WindfallTiming = "at_age"
	WindfallAtPayday   WindfallTiming = "at_payday"
)

// WindfallPolicy is the user's timing choice for the one-time deposit. Value
// is the year count, target age, or payday index depending on Timing; it is
// ignored for None and NextPayday.
type WindfallPolicy struct {
	Timing WindfallTiming `json:"timing"`
	Value  float64        `json:"value,omitempty"`
}

// Bounds for the windfall anchor fields. A windfall can be scheduled at most
// 80 years out regardless of how the form was filled in.
const (
	minWindfallYear    = 1.0
	maxWindfallYear    = 80.0
	maxWindfallAgeSpan = 80.0
)

// ResolveWindfallPeriod converts a windfall policy into the absolute period
// index the deposit lands on. The second return is false when there is no
// windfall to schedule: zero or negative amount, a None policy, or an empty
// simulation. Every resolved index is clamped into [1, totalPeriods].
func ResolveWindfallPeriod(policy WindfallPolicy, amount, currentAge float64, periodsPerYear, totalPeriods int) (int, bool) {
	if amount <= 0 || totalPeriods == 0 || policy.Timing == WindfallNone || policy.Timing == "" {
		return 0, false
	}

	switch policy.Timing {
	case WindfallNextPayday:
		return 1, true

	case WindfallAtYear:
		year := math.Round(Clamp(policy.Value, minWindfallYear, maxWindfallYear))
		return clampPeriod(year*float64(periodsPerYear), totalPeriods), true

	case WindfallAtAge:
		age := Clamp(math.Round(policy.Value), currentAge, currentAge+maxWindfallAgeSpan)
		yearsFromNow := math.Max(0, age-currentAge)
		return clampPeriod(yearsFromNow*float64(periodsPerYear), totalPeriods), true

	case WindfallAtPayday:
		return clampPeriod(math.Round(policy.Value), totalPeriods), true
	}

	return 0, false
}

// clampPeriod rounds a fractional period position to a whole index inside
// [1, totalPeriods].
func clampPeriod(p float64, totalPeriods int) int {
	idx := int(math.Round(Clamp(p, 1, float64(totalPeriods))))
	if idx < 1 {
		idx = 1
	}
	if idx > totalPeriods {
		idx = totalPeriods
	}
	return idx
}
