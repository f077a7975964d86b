package stats

import (
	"edgegate/domain/sample"
)

// ConditionalWinRate measures the win rate over points whose signal value
// strictly exceeds threshold, returning the rate and the matched count.
//
// An empty filter result returns (0, 0) and no error: "no matching history"
// is a valid, meaningful answer, distinct from a computation failure.
func ConditionalWinRate(points []sample.SignalOutcomePoint, threshold float64) (rate float64, matched int) {
	wins := 0
	for _, pt := range points {
		if pt.SignalValue > threshold {
			matched++
			if pt.OutcomeIsWin {
				wins++
			}
		}
	}
	if matched == 0 {
		return 0.0, 0
	}
	return float64(wins) / float64(matched), matched
}
