// Package formulas provides the statistical helpers used when aggregating
// Monte Carlo trials.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// WilsonInterval calculates the Wilson score confidence interval for a
// binomial proportion. It behaves sensibly at the extremes (0 or all
// successes) where the normal approximation collapses, which matters here
// because p=0 sweeps succeed on every trial.
//
// Args:
//   - successes: number of successful trials
//   - trials: total number of trials
//   - confidence: confidence level (e.g. 0.95 for 95%)
//
// Returns:
//   - Lower and upper bounds, both NaN when trials is zero.
func WilsonInterval(successes, trials int, confidence float64) (float64, float64) {
	if trials <= 0 {
		return math.NaN(), math.NaN()
	}

	z := distuv.UnitNormal.Quantile(0.5 + confidence/2)
	n := float64(trials)
	phat := float64(successes) / n

	denom := 1 + z*z/n
	center := (phat + z*z/(2*n)) / denom
	margin := z * math.Sqrt(phat*(1-phat)/n+z*z/(4*n*n)) / denom

	low := center - margin
	high := center + margin
	if low < 0 {
		low = 0
	}
	if high > 1 {
		high = 1
	}
	return low, high
}

// Proportion returns successes/trials, or NaN when no trials were run so an
// empty sweep row is explicit rather than a fake zero.
func Proportion(successes, trials int) float64 {
	if trials <= 0 {
		return math.NaN()
	}
	return float64(successes) / float64(trials)
}
