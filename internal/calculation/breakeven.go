package calculation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SeriesPoint is one period of a cumulative series
type SeriesPoint struct {
	Period int
	Value  decimal.Decimal
}

// Series is a cumulative series ordered by period
type Series []SeriesPoint

// AlignSeries puts two series on the union of their periods. Each series is
// forward-filled from its last known value and reads zero before its first.
func AlignSeries(a, b Series) (periods []int, alignedA, alignedB []decimal.Decimal) {
	seen := make(map[int]struct{}, len(a)+len(b))
	for _, p := range a {
		seen[p.Period] = struct{}{}
	}
	for _, p := range b {
		seen[p.Period] = struct{}{}
	}
	periods = make([]int, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Ints(periods)

	return periods, fill(a, periods), fill(b, periods)
}

func fill(s Series, periods []int) []decimal.Decimal {
	sorted := make(Series, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Period < sorted[j].Period })

	out := make([]decimal.Decimal, len(periods))
	current := decimal.Zero
	next := 0
	for i, period := range periods {
		for next < len(sorted) && sorted[next].Period <= period {
			current = sorted[next].Value
			next++
		}
		out[i] = current
	}
	return out
}

// FindBreakeven returns the first aligned period at which a and b are equal,
// or the later period of the first strict sign change of a-b. ok is false
// when the series never meet or either is empty.
func FindBreakeven(a, b Series) (period int, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	periods, av, bv := AlignSeries(a, b)

	prevSign := 0
	for i := range periods {
		sign := av[i].Sub(bv[i]).Sign()
		if sign == 0 {
			return periods[i], true
		}
		if i > 0 && sign != prevSign {
			return periods[i], true
		}
		prevSign = sign
	}
	return 0, false
}
