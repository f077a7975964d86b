// Package sample defines the immutable input value objects the validation
// engine consumes: binary win/loss counts, signal/outcome pairs, and
// time-ordered trade sequences.
package sample

import (
	"fmt"

	"edgegate/domain/core"
)

// BinarySample holds win/loss counts for a binary outcome series.
// Immutable once constructed; Wins <= Total always holds.
type BinarySample struct {
	Wins  int `json:"wins"`
	Total int `json:"total"`
}

// NewBinarySample constructs a BinarySample, rejecting negative counts and
// Wins > Total. Total == 0 is a valid construction; operations that cannot
// work on an empty sample reject it themselves.
func NewBinarySample(wins, total int) (BinarySample, error) {
	if wins < 0 {
		return BinarySample{}, core.NewInvalidSampleError(fmt.Sprintf("negative wins %d", wins))
	}
	if total < 0 {
		return BinarySample{}, core.NewInvalidSampleError(fmt.Sprintf("negative total %d", total))
	}
	if wins > total {
		return BinarySample{}, core.NewInvalidSampleError(fmt.Sprintf("wins %d exceeds total %d", wins, total))
	}
	return BinarySample{Wins: wins, Total: total}, nil
}

// IsEmpty reports whether the sample holds no observations.
func (s BinarySample) IsEmpty() bool {
	return s.Total == 0
}

// WinRate returns Wins/Total. Fails on an empty sample rather than
// fabricating a rate.
func (s BinarySample) WinRate() (float64, error) {
	if s.Total == 0 {
		return 0, core.NewZeroDenominatorError("win rate over zero-total sample")
	}
	return float64(s.Wins) / float64(s.Total), nil
}

// SignalOutcomePoint pairs a continuous signal reading with its realized
// outcome. Magnitude optionally carries the continuous outcome (e.g. signed
// forward return); a zero Magnitude everywhere means only the boolean is
// available.
type SignalOutcomePoint struct {
	SignalValue  float64 `json:"signal_value"`
	OutcomeIsWin bool    `json:"outcome_is_win"`
	Magnitude    float64 `json:"magnitude,omitempty"`
}

// Outcome is a single entry of a time-ordered trade sequence.
type Outcome struct {
	IsWin bool `json:"is_win"`
}

// TimeOrderedOutcome is a sequence of outcomes where position encodes
// temporal order, earliest first. The ordering is load-bearing for
// walk-forward splitting; callers must not shuffle it.
type TimeOrderedOutcome []Outcome

// Wins counts winning entries.
func (o TimeOrderedOutcome) Wins() int {
	wins := 0
	for _, e := range o {
		if e.IsWin {
			wins++
		}
	}
	return wins
}

// AsBinarySample collapses the sequence into win/loss counts.
func (o TimeOrderedOutcome) AsBinarySample() BinarySample {
	return BinarySample{Wins: o.Wins(), Total: len(o)}
}

// OutcomesFromBools builds a TimeOrderedOutcome from raw booleans,
// preserving order.
func OutcomesFromBools(wins []bool) TimeOrderedOutcome {
	out := make(TimeOrderedOutcome, len(wins))
	for i, w := range wins {
		out[i] = Outcome{IsWin: w}
	}
	return out
}
