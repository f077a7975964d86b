package stats

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"edgegate/domain/core"
	"edgegate/domain/sample"
)

// ICResult is the outcome of an information-coefficient computation. When
// Undefined is true the correlation could not be computed because an input
// had zero variance; Rho is 0 in that case and the caller must not read it
// as a genuine zero correlation.
type ICResult struct {
	Rho        float64 `json:"rho"`
	Undefined  bool    `json:"undefined"`
	SampleSize int     `json:"sample_size"`
}

// InformationCoefficient computes the Spearman rank correlation between
// signal values and realized outcomes: both sequences are converted to
// ranks (ties resolved by the average-rank method) and the Pearson
// correlation of the rank sequences is returned.
//
// Outcomes use the continuous Magnitude when any point carries one,
// otherwise the boolean coerced to 0/1. Fewer than 2 points fail with
// ErrInsufficientData. A zero-variance input yields a tagged Undefined
// result rather than an error.
func InformationCoefficient(points []sample.SignalOutcomePoint) (ICResult, error) {
	if len(points) < 2 {
		return ICResult{}, core.NewInsufficientDataError(2, len(points))
	}

	signals := make([]float64, len(points))
	outcomes := make([]float64, len(points))
	useMagnitude := false
	for _, pt := range points {
		if pt.Magnitude != 0 {
			useMagnitude = true
			break
		}
	}
	for i, pt := range points {
		signals[i] = pt.SignalValue
		if useMagnitude {
			outcomes[i] = pt.Magnitude
		} else if pt.OutcomeIsWin {
			outcomes[i] = 1.0
		}
	}

	if isConstant(signals) || isConstant(outcomes) {
		return ICResult{Rho: 0, Undefined: true, SampleSize: len(points)}, nil
	}

	rho, err := stats.Correlation(averageRanks(signals), averageRanks(outcomes))
	if err != nil {
		return ICResult{}, core.NewInvalidSampleError("rank correlation: " + err.Error())
	}

	// Clamp against floating point drift at the extremes.
	if rho > 1.0 {
		rho = 1.0
	} else if rho < -1.0 {
		rho = -1.0
	}

	return ICResult{Rho: rho, SampleSize: len(points)}, nil
}

// averageRanks converts values to 1-based ranks, assigning tied values the
// average of the ranks they span.
func averageRanks(data []float64) []float64 {
	n := len(data)
	type pair struct {
		value float64
		index int
	}

	pairs := make([]pair, n)
	for i, val := range data {
		pairs[i] = pair{value: val, index: i}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}
		avgRank := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}
		i = j
	}
	return ranks
}

func isConstant(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] && !(math.IsNaN(v) && math.IsNaN(data[0])) {
			return false
		}
	}
	return true
}
