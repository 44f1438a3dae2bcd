package projection

// SampleStride computes the retention stride that bounds the rendered series
// to roughly maxPoints entries. maxPoints <= 0 means keep-all mode. A daily
// schedule over 40 years produces 14,600 raw periods; a stride keeps the
// chart payload flat without touching the reported totals, which always come
// from the unsampled terminal state.
func SampleStride(totalPeriods, maxPoints int) int {
	if maxPoints <= 0 {
		return 1
	}
	stride := (totalPeriods + maxPoints - 1) / maxPoints // ceil
	if stride < 1 {
		stride = 1
	}
	return stride
}

// KeepPoint reports whether period index i survives sampling. The first and
// last points are always retained, even off-stride, so the rendered series
// spans the full horizon. Retained count is at most totalPeriods/stride + 2.
func KeepPoint(i, totalPeriods, stride int) bool {
	return i == 0 || i == totalPeriods || i%stride == 0
}
