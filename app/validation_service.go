package app

import (
	"context"
	"fmt"
	"time"

	"edgegate/domain/core"
	"edgegate/domain/sample"
	"edgegate/domain/stats"
	"edgegate/domain/verdict"
	"edgegate/ports"
)

// ValidationService aggregates the per-metric estimators into a single
// decision record. It holds only policy (thresholds, z value); every call
// is a pure function of its inputs.
type ValidationService struct {
	thresholds verdict.PromotionThresholds
	z          float64
}

// ValidationRequest bundles the inputs for one aggregate validation.
type ValidationRequest struct {
	Sample            sample.BinarySample
	Points            []sample.SignalOutcomePoint
	StrengthThreshold float64
}

// NewValidationService creates a validation service with the supplied
// promotion policy and a 95% confidence level.
func NewValidationService(thresholds verdict.PromotionThresholds) (*ValidationService, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("validation service: %w", err)
	}
	return &ValidationService{thresholds: thresholds, z: stats.Z95}, nil
}

// Thresholds returns the active promotion policy.
func (s *ValidationService) Thresholds() verdict.PromotionThresholds {
	return s.thresholds
}

// Validate runs the interval, significance, predictive-power, and
// conditional-probability estimators and packages their results. The first
// sub-computation failure aborts the whole call; a partially filled record
// is never returned.
func (s *ValidationService) Validate(req ValidationRequest) (verdict.ValidationRecord, error) {
	winRate, err := req.Sample.WinRate()
	if err != nil {
		return verdict.ValidationRecord{}, fmt.Errorf("win rate: %w", err)
	}

	lower, upper, err := stats.WilsonInterval(req.Sample, s.z)
	if err != nil {
		return verdict.ValidationRecord{}, fmt.Errorf("confidence interval: %w", err)
	}

	pValue, err := stats.OneSidedBinomialP(req.Sample)
	if err != nil {
		return verdict.ValidationRecord{}, fmt.Errorf("significance test: %w", err)
	}

	ic, err := stats.InformationCoefficient(req.Points)
	if err != nil {
		return verdict.ValidationRecord{}, fmt.Errorf("information coefficient: %w", err)
	}

	condRate, condN := stats.ConditionalWinRate(req.Points, req.StrengthThreshold)

	return verdict.ValidationRecord{
		SampleSize:             req.Sample.Total,
		Wins:                   req.Sample.Wins,
		WinRate:                winRate,
		CILower:                lower,
		CIUpper:                upper,
		PValue:                 pValue,
		InformationCoefficient: ic.Rho,
		ICUndefined:            ic.Undefined,
		ConditionalWinRate:     condRate,
		ConditionalSampleSize:  condN,
	}, nil
}

// ValidateSignal pulls a signal's history through the outcome source and
// validates it end to end, returning a run artifact with the promotion
// decision and walk-forward check attached.
func (s *ValidationService) ValidateSignal(ctx context.Context, src ports.OutcomeSourcePort, signalName string, strengthThreshold, trainRatio float64) (*verdict.RunArtifact, error) {
	outcomes, err := src.Outcomes(ctx, signalName)
	if err != nil {
		return nil, fmt.Errorf("load outcomes for %s: %w", signalName, err)
	}
	points, err := src.SignalPoints(ctx, signalName)
	if err != nil {
		return nil, fmt.Errorf("load signal points for %s: %w", signalName, err)
	}

	record, err := s.Validate(ValidationRequest{
		Sample:            outcomes.AsBinarySample(),
		Points:            points,
		StrengthThreshold: strengthThreshold,
	})
	if err != nil {
		return nil, err
	}

	artifact := &verdict.RunArtifact{
		ID:         core.RunID(core.NewID()),
		SignalName: signalName,
		Record:     record,
		Decision:   s.thresholds.Recommend(record),
		CreatedAt:  core.NewTimestamp(time.Now()),
	}

	// Walk-forward needs both segments populated; short histories skip it
	// rather than failing the whole validation.
	if wf, wfErr := stats.WalkForward(outcomes, trainRatio); wfErr == nil {
		artifact.WalkForward = &wf
	}

	// Even-odds Kelly sizing; degenerate win rates of exactly 0 or 1 do not
	// produce a sizing decision.
	if sizing, szErr := stats.SizePosition(record.WinRate, 1.0); szErr == nil {
		artifact.Sizing = &sizing
	}

	return artifact, nil
}
