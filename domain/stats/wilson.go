// Package stats implements the pure estimators of the validation engine:
// Wilson confidence intervals, the one-sided binomial test, rank-based
// predictive power, conditional win rates, Kelly sizing, and walk-forward
// splitting. Every function is a pure computation over its inputs.
package stats

import (
	"math"

	"edgegate/domain/core"
	"edgegate/domain/sample"
)

// Z95 is the two-sided normal critical value for a 95% confidence level.
const Z95 = 1.96

// WilsonInterval computes the Wilson score confidence interval for the true
// success probability behind a binary sample.
//
// The Wilson interval is used instead of the naive normal approximation
// because it stays well-behaved at 0 and total wins and for small samples.
// Both bounds are clamped into [0, 1]; the interval is symmetric around the
// Wilson center, not around the raw proportion.
func WilsonInterval(s sample.BinarySample, z float64) (lower, upper float64, err error) {
	if s.Total == 0 {
		return 0, 0, core.NewInvalidSampleError("wilson interval over zero-total sample")
	}
	if s.Wins < 0 || s.Wins > s.Total {
		return 0, 0, core.NewInvalidSampleError("wins outside [0, total]")
	}
	if z <= 0 {
		return 0, 0, core.NewInvalidSampleError("non-positive critical value")
	}

	n := float64(s.Total)
	p := float64(s.Wins) / n
	zSq := z * z

	denom := 1.0 + zSq/n
	center := p + zSq/(2.0*n)

	// Under the square root: p(1-p)/n + z^2/(4n^2)
	spread := z * math.Sqrt(p*(1.0-p)/n+zSq/(4.0*n*n))

	lower = (center - spread) / denom
	upper = (center + spread) / denom

	return math.Max(lower, 0.0), math.Min(upper, 1.0), nil
}
