package projection

import "math"

// ProjectionPoint is one sampled step of the balance recurrence.
// InterestThisPeriod is nil on the seed point (period 0) since no growth has
// been applied yet; for every later point it holds the growth earned in that
// point's own period, not a sum across the stride.
type ProjectionPoint struct {
	PeriodIndex        int      `json:"periodIndex"`
	YearIndex          float64  `json:"yearIndex"`
	Balance            float64  `json:"balance"`
	TotalContrib       float64  `json:"totalContrib"`
	InterestEarned     float64  `json:"interestEarned"`
	InterestThisPeriod *float64 `json:"interestThisPeriod,omitempty"`
}

// ProjectionResult is the full simulator output: sampled points in time
// order plus final aggregates taken from the unsampled terminal state.
type ProjectionResult struct {
	Years         float64           `json:"years"`
	TotalPeriods  int               `json:"totalPeriods"`
	FinalBalance  float64           `json:"finalBalance"`
	FinalContrib  float64           `json:"finalContrib"`
	FinalInterest float64           `json:"finalInterest"`
	Points        []ProjectionPoint `json:"points"`
}

// PerPeriodRate converts the nominal annual growth rate (as a percentage)
// into the per-period rate that preserves annual-compounding equivalence:
//
//	rPerPeriod = (1 + annual)^(1/periodsPerYear) - 1
//
// This is the definition of "annual rate" in this system: contributing at a
// 7% annual rate grows an untouched balance by exactly 7% over one year
// regardless of the pay frequency. Naive division by the period count would
// overstate growth. periodsPerYear <= 0 degrades to a zero rate.
func PerPeriodRate(annualRatePct float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return 0
	}
	return math.Pow(1+annualRatePct/100, 1/float64(periodsPerYear)) - 1
}

// Run executes the period recurrence and returns the projection. It is a
// pure function: no I/O, no panics, deterministic for a given input. The
// caller is responsible for sanitization (see FormValues.Sanitize); Run
// trusts its input.
//
// Per-period ordering is fixed policy: windfall deposit (if this is the
// resolved period), then the regular contribution, then growth. Deposits
// made in a period therefore earn that period's growth.
func Run(in ProjectionInput) ProjectionResult {
	years := math.Max(0, in.RetirementAge-in.CurrentAge)
	totalPeriods := TotalPeriods(in.CurrentAge, in.RetirementAge, in.PayPeriodsPerYear)
	rate := PerPeriodRate(in.AnnualRatePct, in.PayPeriodsPerYear)
	stride := SampleStride(totalPeriods, in.MaxPoints)

	balance := in.StartingAmount
	contrib := 0.0

	points := make([]ProjectionPoint, 0, totalPeriods/stride+2)
	points = append(points, ProjectionPoint{
		PeriodIndex: 0,
		Balance:     balance,
	})

	for i := 1; i <= totalPeriods; i++ {
		if i == in.WindfallPeriod && in.WindfallAmount != 0 {
			// Windfall is a deposit, not growth: it raises contributions too.
			balance += in.WindfallAmount
			contrib += in.WindfallAmount
		}

		balance += in.ContributionPerPayday
		contrib += in.ContributionPerPayday

		beforeGrowth := balance
		balance *= 1 + rate
		interest := balance - beforeGrowth

		if KeepPoint(i, totalPeriods, stride) {
			points = append(points, ProjectionPoint{
				PeriodIndex:        i,
				YearIndex:          yearIndex(i, in.PayPeriodsPerYear),
				Balance:            balance,
				TotalContrib:       contrib,
				InterestEarned:     balance - in.StartingAmount - contrib,
				InterestThisPeriod: &interest,
			})
		}
	}

	return ProjectionResult{
		Years:         years,
		TotalPeriods:  totalPeriods,
		FinalBalance:  balance,
		FinalContrib:  contrib,
		FinalInterest: balance - contrib - in.StartingAmount,
		Points:        points,
	}
}

func yearIndex(period, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return 0
	}
	return float64(period) / float64(periodsPerYear)
}
