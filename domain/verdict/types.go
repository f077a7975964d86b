// Package verdict holds the aggregate validation record and the promotion
// policy applied to it. Policy thresholds are named, overridable decimal
// values rather than literals buried in logic, since development and
// production gating legitimately run different cutoffs.
package verdict

import (
	"github.com/shopspring/decimal"

	"edgegate/domain/core"
	"edgegate/domain/stats"
)

// ValidationRecord is the aggregate result of validating one signal. It is
// derived entirely from the inputs, never mutated after construction, and
// replaced wholesale on recomputation.
type ValidationRecord struct {
	SampleSize             int     `json:"sample_size"`
	Wins                   int     `json:"wins"`
	WinRate                float64 `json:"win_rate"`
	CILower                float64 `json:"ci_lower"`
	CIUpper                float64 `json:"ci_upper"`
	PValue                 float64 `json:"p_value"`
	InformationCoefficient float64 `json:"information_coefficient"`
	ICUndefined            bool    `json:"ic_undefined"`
	ConditionalWinRate     float64 `json:"conditional_win_rate"`
	ConditionalSampleSize  int     `json:"conditional_sample_size"`
}

// HasPositiveEdge reports whether the confidence interval's lower bound
// clears the 50% no-edge baseline.
func (r ValidationRecord) HasPositiveEdge() bool {
	return r.CILower > 0.5
}

// PromotionThresholds is the gating policy applied to a ValidationRecord.
// Ratios are decimals so that threshold comparisons at the gating boundary
// are exact; the statistical internals stay float64.
type PromotionThresholds struct {
	ProductionMinSamples int             `json:"production_min_samples"`
	ProductionMaxP       decimal.Decimal `json:"production_max_p"`
	ProductionMinWinRate decimal.Decimal `json:"production_min_win_rate"`

	DevelopmentMinSamples int             `json:"development_min_samples"`
	DevelopmentMaxP       decimal.Decimal `json:"development_max_p"`
}

// DefaultThresholds returns the standing policy: production promotion needs
// 100 samples, p < 0.05 and a win rate above 52%; development promotion
// needs 50 samples and p < 0.10.
func DefaultThresholds() PromotionThresholds {
	return PromotionThresholds{
		ProductionMinSamples:  100,
		ProductionMaxP:        decimal.NewFromFloat(0.05),
		ProductionMinWinRate:  decimal.NewFromFloat(0.52),
		DevelopmentMinSamples: 50,
		DevelopmentMaxP:       decimal.NewFromFloat(0.10),
	}
}

// Validate rejects thresholds that cannot gate anything sensibly.
func (t PromotionThresholds) Validate() error {
	one := decimal.NewFromInt(1)
	if t.ProductionMinSamples <= 0 || t.DevelopmentMinSamples <= 0 {
		return core.ErrInvalidThreshold
	}
	if t.ProductionMaxP.LessThanOrEqual(decimal.Zero) || t.ProductionMaxP.GreaterThan(one) {
		return core.ErrInvalidThreshold
	}
	if t.DevelopmentMaxP.LessThanOrEqual(decimal.Zero) || t.DevelopmentMaxP.GreaterThan(one) {
		return core.ErrInvalidThreshold
	}
	if t.ProductionMinWinRate.LessThan(decimal.Zero) || t.ProductionMinWinRate.GreaterThanOrEqual(one) {
		return core.ErrInvalidThreshold
	}
	return nil
}

// ProductionReady reports whether the record clears the production gate:
// enough samples, significance at the production alpha, and a win rate
// above the production floor.
func (t PromotionThresholds) ProductionReady(r ValidationRecord) bool {
	return r.SampleSize >= t.ProductionMinSamples &&
		decimal.NewFromFloat(r.PValue).LessThan(t.ProductionMaxP) &&
		decimal.NewFromFloat(r.WinRate).GreaterThan(t.ProductionMinWinRate)
}

// DevelopmentReady reports whether the record clears the looser
// development gate.
func (t PromotionThresholds) DevelopmentReady(r ValidationRecord) bool {
	return r.SampleSize >= t.DevelopmentMinSamples &&
		decimal.NewFromFloat(r.PValue).LessThan(t.DevelopmentMaxP)
}

// Recommendation is the promotion decision derived from a record.
type Recommendation string

const (
	RecommendationApproved    Recommendation = "APPROVED"
	RecommendationConditional Recommendation = "CONDITIONAL_APPROVAL"
	RecommendationNeedsData   Recommendation = "NEEDS_MORE_DATA"
	RecommendationRejected    Recommendation = "REJECTED"
)

// Recommend maps a record onto a promotion recommendation: production-ready
// records are approved, development-ready ones conditionally approved,
// undersized samples ask for more data, and the rest are rejected.
func (t PromotionThresholds) Recommend(r ValidationRecord) Recommendation {
	switch {
	case t.ProductionReady(r):
		return RecommendationApproved
	case t.DevelopmentReady(r):
		return RecommendationConditional
	case r.SampleSize < t.DevelopmentMinSamples:
		return RecommendationNeedsData
	default:
		return RecommendationRejected
	}
}

// RunArtifact wraps a record with identity and provenance for surfaces that
// store or transmit validation outcomes. The engine itself never retains it.
type RunArtifact struct {
	ID          core.RunID               `json:"id"`
	SignalName  string                   `json:"signal_name"`
	Record      ValidationRecord         `json:"record"`
	WalkForward *stats.WalkForwardResult `json:"walk_forward,omitempty"`
	Sizing      *stats.SizingDecision    `json:"sizing,omitempty"`
	Decision    Recommendation           `json:"decision"`
	CreatedAt   core.Timestamp           `json:"created_at"`
}
