package report

import (
	"math"
	"sort"
)

// SegmentLabels are the spending segments, poorest quartile first.
var SegmentLabels = [4]string{"Low", "Medium", "High", "Premium"}

// SpendingSegments bins spend values into four equal-frequency segments
// (quartile binning). The returned slice maps each input position to a
// segment index 0..3. Assignment is by ascending rank, ties resolved by
// input order, so segment sizes differ by at most one.
func SpendingSegments(spend []float64) []int {
	n := len(spend)
	segments := make([]int, n)
	if n == 0 {
		return segments
	}

	ranks := make([]int, n)
	for i := range ranks {
		ranks[i] = i
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return spend[ranks[i]] < spend[ranks[j]]
	})

	for rank, idx := range ranks {
		seg := rank * 4 / n
		if seg > 3 {
			seg = 3
		}
		segments[idx] = seg
	}
	return segments
}

// SegmentSummary aggregates customers within one spending segment.
type SegmentSummary struct {
	Label         string
	CustomerCount int64
	TotalRevenue  float64
	AvgSpend      float64
}

// SummarizeSegments bins spend values and aggregates each segment.
// All four segments are always returned, in label order; empty segments
// have a zero count and NaN average.
func SummarizeSegments(spend []float64) []SegmentSummary {
	segments := SpendingSegments(spend)

	out := make([]SegmentSummary, 4)
	for i := range out {
		out[i].Label = SegmentLabels[i]
	}

	for i, seg := range segments {
		out[seg].CustomerCount++
		out[seg].TotalRevenue += spend[i]
	}
	for i := range out {
		if out[i].CustomerCount == 0 {
			out[i].AvgSpend = math.NaN()
			continue
		}
		out[i].AvgSpend = out[i].TotalRevenue / float64(out[i].CustomerCount)
	}
	return out
}
