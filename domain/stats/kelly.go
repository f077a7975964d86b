package stats

import (
	"fmt"

	"edgegate/domain/core"
)

// SizingReason explains the sign of a Kelly sizing decision.
type SizingReason string

const (
	ReasonPositiveEdge SizingReason = "POSITIVE_EDGE"
	ReasonNoEdge       SizingReason = "NO_EDGE"
	ReasonNegativeEdge SizingReason = "NEGATIVE_EDGE"
)

// SizingDecision carries the raw Kelly fraction together with a reason for
// surfaces (CLI, reports) that present it. The fraction is never altered.
type SizingDecision struct {
	Fraction float64      `json:"fraction"`
	Reason   SizingReason `json:"reason"`
}

// KellyFraction computes the raw Kelly criterion fraction
//
//	f = p - (1-p)/b
//
// for win probability p in (0,1) and net payoff odds b > 0. The result may
// be negative (below break-even: sizing recommends no position) and is
// returned unmodified; clamping to a practical range like [0, 0.25] is a
// caller-side risk-management decision.
func KellyFraction(winProbability, payoffOdds float64) (float64, error) {
	if winProbability <= 0 || winProbability >= 1 {
		return 0, core.NewInvalidSampleError(fmt.Sprintf("win probability %v outside (0,1)", winProbability))
	}
	if payoffOdds <= 0 {
		return 0, core.NewInvalidSampleError(fmt.Sprintf("non-positive payoff odds %v", payoffOdds))
	}
	return winProbability - (1.0-winProbability)/payoffOdds, nil
}

// SizePosition evaluates the Kelly fraction and labels it for presentation.
func SizePosition(winProbability, payoffOdds float64) (SizingDecision, error) {
	f, err := KellyFraction(winProbability, payoffOdds)
	if err != nil {
		return SizingDecision{}, err
	}

	reason := ReasonPositiveEdge
	switch {
	case f == 0:
		reason = ReasonNoEdge
	case f < 0:
		reason = ReasonNegativeEdge
	}
	return SizingDecision{Fraction: f, Reason: reason}, nil
}
