package projection

// CompareRateDelta is the spread used by comparison mode: the projection is
// rerun at base-2, base, and base+2 percent.
const CompareRateDelta = 2.0

// ComparisonRates returns the three rates a comparison run uses, ordered
// low, base, high. Each variant rate is clamped into the user-facing range
// on its own, so a 1% base yields 1/1/3 and a 15% base yields 13/15/15.
func ComparisonRates(base float64) []float64 {
	deltas := [3]float64{-CompareRateDelta, 0, CompareRateDelta}

	rates := make([]float64, 0, len(deltas))
	for _, d := range deltas {
		rates = append(rates, Clamp(base+d, MinAnnualRatePct, MaxAnnualRatePct))
	}
	return rates
}

// RunComparison reruns the simulator at the three comparison rates.
// Everything except the rate is held fixed; the contribution series is
// therefore identical across all three results.
func RunComparison(in ProjectionInput) []ProjectionResult {
	rates := ComparisonRates(in.AnnualRatePct)

	results := make([]ProjectionResult, 0, len(rates))
	for _, r := range rates {
		variant := in
		variant.AnnualRatePct = r
		results = append(results, Run(variant))
	}
	return results
}
