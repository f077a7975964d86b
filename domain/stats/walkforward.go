package stats

import (
	"math"

	"edgegate/domain/core"
	"edgegate/domain/sample"
)

// OverfitRetention is the fraction of in-sample performance the
// out-of-sample segment must retain; dropping below it flags overfitting.
const OverfitRetention = 0.8

// OverfitRisk classifies how much out-of-sample performance degraded
// relative to in-sample.
type OverfitRisk string

const (
	RiskLow      OverfitRisk = "LOW"      // degradation <= 5%
	RiskModerate OverfitRisk = "MODERATE" // 5% < degradation <= 10%
	RiskHigh     OverfitRisk = "HIGH"     // 10% < degradation <= 20%
	RiskSevere   OverfitRisk = "SEVERE"   // degradation > 20%
)

// WalkForwardResult compares in-sample and out-of-sample win rates for a
// chronological split. Stateless; recomputed on each call.
type WalkForwardResult struct {
	InSampleWinRate    float64     `json:"in_sample_win_rate"`
	OutOfSampleWinRate float64     `json:"out_of_sample_win_rate"`
	IsOverfit          bool        `json:"is_overfit"`
	DegradationRatio   float64     `json:"degradation_ratio"`
	Risk               OverfitRisk `json:"risk"`
	TrainSize          int         `json:"train_size"`
	TestSize           int         `json:"test_size"`
}

// WalkForward splits a time-ordered outcome sequence at
// floor(len * trainRatio): the first part trains, the remainder tests. No
// shuffling; the supplied order is temporal and preserved exactly. Win
// rates are computed independently per segment, and the overfit flag trips
// when the out-of-sample rate falls below OverfitRetention times the
// in-sample rate.
func WalkForward(outcomes sample.TimeOrderedOutcome, trainRatio float64) (WalkForwardResult, error) {
	if trainRatio <= 0 || trainRatio >= 1 {
		return WalkForwardResult{}, core.ErrInvalidTrainRatio
	}

	split := int(math.Floor(float64(len(outcomes)) * trainRatio))
	if split == 0 || split == len(outcomes) {
		return WalkForwardResult{}, core.NewInsufficientDataError(2, len(outcomes))
	}

	train := outcomes[:split]
	test := outcomes[split:]

	inRate := float64(train.Wins()) / float64(len(train))
	outRate := float64(test.Wins()) / float64(len(test))

	// A zero in-sample rate has no performance to degrade from; the
	// degradation ratio is pinned to 0 instead of dividing by zero.
	degradation := 0.0
	if inRate > 0 {
		degradation = 1.0 - outRate/inRate
	}

	return WalkForwardResult{
		InSampleWinRate:    inRate,
		OutOfSampleWinRate: outRate,
		IsOverfit:          outRate < inRate*OverfitRetention,
		DegradationRatio:   degradation,
		Risk:               classifyOverfitRisk(degradation),
		TrainSize:          len(train),
		TestSize:           len(test),
	}, nil
}

func classifyOverfitRisk(degradation float64) OverfitRisk {
	switch {
	case degradation <= 0.05:
		return RiskLow
	case degradation <= 0.10:
		return RiskModerate
	case degradation <= 0.20:
		return RiskHigh
	default:
		return RiskSevere
	}
}
