package reporting

import "math"

// roundHalfUp rounds x to the given number of decimals with halves going up,
// matching how the SQL side presents aggregates.
func roundHalfUp(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Floor(x*pow+0.5) / pow
}

func round2(x float64) float64 { return roundHalfUp(x, 2) }
func round1(x float64) float64 { return roundHalfUp(x, 1) }

// pct returns 100*part/total rounded to two decimals, zero for an empty total.
func pct(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(100 * float64(part) / float64(total))
}

// meanPtr returns the rounded mean of a sum over n values, nil when n is zero.
func meanPtr(sum float64, n int64, decimals int) *float64 {
	if n == 0 {
		return nil
	}
	v := roundHalfUp(sum/float64(n), decimals)
	return &v
}

func roundPtr(x float64, decimals int) *float64 {
	v := roundHalfUp(x, decimals)
	return &v
}

// percentileLinear returns the p-th percentile (p in [0,1]) of an ascending
// sorted, non-empty slice using linear interpolation between closest ranks:
// the value at fractional position p*(n-1).
func percentileLinear(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// denseRanks assigns dense ranks to values already sorted in rank order:
// equal neighbours share a rank, the next distinct value takes the
// immediately following one.
func denseRanks(values []float64) []int {
	ranks := make([]int, len(values))
	rank := 0
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			rank++
		}
		ranks[i] = rank
	}
	return ranks
}
