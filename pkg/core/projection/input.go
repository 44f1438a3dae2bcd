// Package projection implements the deterministic savings projection core:
// input sanitization, windfall scheduling, the period-by-period compounding
// simulator, point sampling, and the three-rate comparison mode.
//
// Everything in this package is a pure function of its inputs. Malformed
// values are coerced or clamped at the boundary (Sanitize) so the simulator
// itself never needs to reject anything.
package projection

import (
	"math"
	"strconv"
	"strings"
)

// PayFrequencies maps the UI frequency keys to pay periods per year.
// The set is fixed; an unrecognized key falls back to monthly.
var PayFrequencies = map[string]int{
	"daily":    365,
	"weekly":   52,
	"biweekly": 26,
	"monthly":  12,
}

const (
	// DefaultPeriodsPerYear is used when the frequency key is unknown.
	DefaultPeriodsPerYear = 12

	// DefaultMaxPoints bounds the sampled series for rendering. 0 disables
	// sampling (keep-all mode).
	DefaultMaxPoints = 240

	// MinAnnualRatePct / MaxAnnualRatePct bound the user-facing growth rate.
	// The simulator itself accepts any rate; these apply at the form boundary
	// and to the comparison variants.
	MinAnnualRatePct = 1.0
	MaxAnnualRatePct = 15.0

	// MinAge / MaxAge bound the age fields at the form boundary.
	MinAge = 0.0
	MaxAge = 120.0
)

// FormValues carries the loosely-typed form fields exactly as the UI submits
// them. Every numeric field is a string and may contain currency symbols,
// thousands separators, or garbage; Sanitize is the only consumer.
type FormValues struct {
	CurrentAge            string `json:"currentAge"`
	RetirementAge         string `json:"retirementAge"`
	StartingAmount        string `json:"startingAmount"`
	ContributionPerPayday string `json:"contributionPerPayday"`
	AnnualRatePct         string `json:"annualRatePct"`
	Frequency             string `json:"frequency"`

	WindfallAmount string `json:"windfallAmount"`
	WindfallTiming string `json:"windfallTiming"` // none, now, year, age, payday
	WindfallYear   string `json:"windfallYear"`
	WindfallAge    string `json:"windfallAge"`
	WindfallPayday string `json:"windfallPayday"`
}

// ProjectionInput is the sanitized input consumed by the simulator. All
// fields are finite; WindfallPeriod is the already-resolved absolute period
// index (0 = no windfall).
type ProjectionInput struct {
	CurrentAge            float64 `json:"currentAge"`
	RetirementAge         float64 `json:"retirementAge"`
	StartingAmount        float64 `json:"startingAmount"`
	ContributionPerPayday float64 `json:"contributionPerPayday"`
	WindfallAmount        float64 `json:"windfallAmount"`
	AnnualRatePct         float64 `json:"annualRatePct"`
	PayPeriodsPerYear     int     `json:"payPeriodsPerYear"`
	WindfallPeriod        int     `json:"windfallPeriod,omitempty"`
	MaxPoints             int     `json:"maxPoints"`
}

// ParseNumeric is the permissive numeric parser for form fields: it strips
// every character that cannot appear in a decimal number and parses the
// remainder. Total failures and non-finite results yield 0 rather than an
// error, per the core's no-rejection policy.
func ParseNumeric(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Clamp bounds v into [lo, hi]. Non-finite v collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PeriodsPerYear resolves a frequency key to its period count, defaulting to
// monthly for anything unrecognized.
func PeriodsPerYear(frequency string) int {
	if n, ok := PayFrequencies[strings.ToLower(strings.TrimSpace(frequency))]; ok {
		return n
	}
	return DefaultPeriodsPerYear
}

// Sanitize converts raw form values into a simulator-ready ProjectionInput:
// parse every numeric permissively, clamp range-bound fields, resolve the
// frequency key, and resolve the windfall policy to an absolute period.
func (f FormValues) Sanitize() ProjectionInput {
	in := ProjectionInput{
		CurrentAge:            Clamp(ParseNumeric(f.CurrentAge), MinAge, MaxAge),
		RetirementAge:         Clamp(ParseNumeric(f.RetirementAge), MinAge, MaxAge),
		StartingAmount:        ParseNumeric(f.StartingAmount),
		ContributionPerPayday: ParseNumeric(f.ContributionPerPayday),
		AnnualRatePct:         Clamp(ParseNumeric(f.AnnualRatePct), MinAnnualRatePct, MaxAnnualRatePct),
		PayPeriodsPerYear:     PeriodsPerYear(f.Frequency),
		MaxPoints:             DefaultMaxPoints,
	}

	// Windfall deposits are never negative; a negative entry means "none".
	if w := ParseNumeric(f.WindfallAmount); w > 0 {
		in.WindfallAmount = w
	}

	totalPeriods := TotalPeriods(in.CurrentAge, in.RetirementAge, in.PayPeriodsPerYear)
	policy := f.windfallPolicy()
	if period, ok := ResolveWindfallPeriod(policy, in.WindfallAmount, in.CurrentAge, in.PayPeriodsPerYear, totalPeriods); ok {
		in.WindfallPeriod = period
	}

	return in
}

// windfallPolicy decodes the timing selector plus its value field into a
// WindfallPolicy. Unknown timing keys mean no windfall.
func (f FormValues) windfallPolicy() WindfallPolicy {
	switch strings.ToLower(strings.TrimSpace(f.WindfallTiming)) {
	case "now", "next", "next_payday":
		return WindfallPolicy{Timing: WindfallNextPayday}
	case "year", "at_year":
		return WindfallPolicy{Timing: WindfallAtYear, Value: ParseNumeric(f.WindfallYear)}
	case "age", "at_age":
		return WindfallPolicy{Timing: WindfallAtAge, Value: ParseNumeric(f.WindfallAge)}
	case "payday", "at_payday":
		return WindfallPolicy{Timing: WindfallAtPayday, Value: ParseNumeric(f.WindfallPayday)}
	default:
		return WindfallPolicy{Timing: WindfallNone}
	}
}

// TotalPeriods computes the simulation length shared by the scheduler and the
// simulator: years to retirement (floored at zero) times periods per year,
// rounded to the nearest whole period. Never negative.
func TotalPeriods(currentAge, retirementAge float64, periodsPerYear int) int {
	years := math.Max(0, retirementAge-currentAge)
	n := int(math.Round(years * float64(periodsPerYear)))
	if n < 0 {
		return 0
	}
	return n
}
