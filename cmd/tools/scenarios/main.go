package main

import (
	"fmt"
	"math"

	"github.com/calgal7-del/1040-paydays/pkg/core/chart"
	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

// Standalone sanity walkthrough for the projection and chart math. Runs the
// canonical 35-year plan end to end and prints every checked quantity next
// to its closed-form expectation so a regression is visible at a glance.

var failures int

func main() {
	in := projection.FormValues{
		CurrentAge:            "30",
		RetirementAge:         "65",
		StartingAmount:        "10000",
		ContributionPerPayday: "500",
		AnnualRatePct:         "7",
		Frequency:             "monthly",
	}.Sanitize()

	banner("BASELINE PROJECTION  (35y, monthly, 7%)")
	res := projection.Run(in)
	rate := projection.PerPeriodRate(7, 12)

	check("total periods", float64(res.TotalPeriods), 420, 0)
	check("per-period rate", rate, math.Pow(1.07, 1.0/12)-1, 1e-12)

	// One short unsampled year keeps every period, so the deposit-then-grow
	// ordering is visible in the very first point: the contribution earns
	// its own period's interest.
	short := in
	short.RetirementAge = 31
	shortRes := projection.Run(short)
	check("first period balance", shortRes.Points[1].Balance, (10000+500)*(1+rate), 1e-9)
	check("untouched-balance growth", projection.Run(projection.ProjectionInput{
		CurrentAge:        30,
		RetirementAge:     31,
		StartingAmount:    10000,
		AnnualRatePct:     7,
		PayPeriodsPerYear: 12,
	}).FinalBalance, 10700, 1e-9)

	banner("SAMPLING  (421 raw points -> stride 2)")
	check("sampled point count", float64(len(res.Points)), 211, 0)
	check("last point period", float64(res.Points[len(res.Points)-1].PeriodIndex), 420, 0)
	check("contributions", res.FinalContrib, 420*500, 1e-6)
	check("identity B = S + C + I", res.FinalBalance, 10000+res.FinalContrib+res.FinalInterest, 1e-6)

	banner("WINDFALL  (20k at age 40, deposit before growth)")
	wf := in
	wf.WindfallAmount = 20000
	wf.WindfallPeriod = 120
	wfRes := projection.Run(wf)

	// The windfall lands at the start of period 120 and compounds through
	// every remaining period including its own: 301 growth applications.
	wantDelta := 20000 * math.Pow(1+rate, 301)
	check("windfall period", float64(wf.WindfallPeriod), 120, 0)
	check("final balance lift", wfRes.FinalBalance-res.FinalBalance, wantDelta, 1e-4)
	check("contribution lift", wfRes.FinalContrib-res.FinalContrib, 20000, 1e-9)

	banner("LOG TICKS  (decade ladder, thinned)")
	ticks := chart.MakeLogTicks(wfRes.FinalBalance)
	fmt.Printf("%-38s : %v\n", "tick values", ticks)
	checkBool("tick count capped", len(ticks) <= chart.MaxLogTicks)
	checkBool("ladder starts at zero", len(ticks) > 0 && ticks[0] == 0)
	checkBool("ladder ends at the maximum", len(ticks) > 0 && ticks[len(ticks)-1] == wfRes.FinalBalance)

	banner("AXIS EASING  (1000 -> 400 shrink)")
	axis := chart.NextAxisState(chart.AxisState{}, 1000, 0)
	check("initial snap", axis.DisplayMax, 1000, 0)

	axis = chart.NextAxisState(axis, 400, 0)
	check("first eased step", axis.DisplayMax, 900, 1e-9)

	for i := 0; i < 200; i++ {
		axis = chart.NextAxisState(axis, 400, 0)
	}
	check("converged floor", axis.DisplayMax, 400, 0)

	axis = chart.NextAxisState(chart.AxisState{DisplayMax: 1000}, 400, 7)
	check("reset token snap", axis.DisplayMax, 400, 0)

	fmt.Println("====================================================================")
	if failures > 0 {
		fmt.Printf("FAILED: %d check(s) diverged\n", failures)
		return
	}
	fmt.Println("All checks passed.")
}

func banner(title string) {
	fmt.Println("====================================================================")
	fmt.Printf("  %s\n", title)
	fmt.Println("====================================================================")
}

func check(label string, got, want, tolerance float64) {
	status := "PASS"
	if math.Abs(got-want) > tolerance {
		status = "FAIL"
		failures++
	}
	fmt.Printf("%-38s : %18.6f | want %18.6f | %s\n", label, got, want, status)
}

func checkBool(label string, ok bool) {
	status := "PASS"
	if !ok {
		status = "FAIL"
		failures++
	}
	fmt.Printf("%-38s : %s\n", label, status)
}
