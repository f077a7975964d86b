package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"edgegate/domain/core"
	"edgegate/domain/sample"
	"edgegate/domain/verdict"
)

// SweepService fans out many independent validations across a grid of
// signal-strength thresholds. Each cell is a self-contained engine call
// with no shared mutable state, so the fan-out needs no locking beyond the
// result slice indices.
type SweepService struct {
	validator *ValidationService
	workers   int
}

// SweepRequest defines a threshold sweep over one signal's history.
type SweepRequest struct {
	SignalName string
	Sample     sample.BinarySample
	Points     []sample.SignalOutcomePoint
	Thresholds []float64
}

// SweepCell is the outcome of one threshold in the grid. Err carries the
// blocking validation failure for that cell; it is never coerced into a
// "no edge" record.
type SweepCell struct {
	Threshold float64                  `json:"threshold"`
	Record    verdict.ValidationRecord `json:"record"`
	Decision  verdict.Recommendation   `json:"decision"`
	Err       error                    `json:"-"`
}

// SweepResult aggregates the grid with pass/fail counts.
type SweepResult struct {
	SweepID       core.SweepID `json:"sweep_id"`
	SignalName    string       `json:"signal_name"`
	Cells         []SweepCell  `json:"cells"`
	ApprovedCount int          `json:"approved_count"`
	FailedCount   int          `json:"failed_count"`
	RuntimeMs     int64        `json:"runtime_ms"`
}

// NewSweepService creates a sweep service; workers <= 0 means one worker
// per CPU.
func NewSweepService(validator *ValidationService, workers int) *SweepService {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &SweepService{validator: validator, workers: workers}
}

// Run validates every threshold in the request concurrently and collects
// the grid in request order. Individual cell failures are recorded, not
// swallowed; the sweep itself only fails on context cancellation.
func (s *SweepService) Run(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	if len(req.Thresholds) == 0 {
		return nil, fmt.Errorf("sweep %s: %w", req.SignalName, core.NewInsufficientDataError(1, 0))
	}

	start := time.Now()
	cells := make([]SweepCell, len(req.Thresholds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, threshold := range req.Thresholds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cell := SweepCell{Threshold: threshold}
			record, err := s.validator.Validate(ValidationRequest{
				Sample:            req.Sample,
				Points:            req.Points,
				StrengthThreshold: threshold,
			})
			if err != nil {
				cell.Err = err
			} else {
				cell.Record = record
				cell.Decision = s.validator.Thresholds().Recommend(record)
			}
			cells[i] = cell
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep %s: %w", req.SignalName, err)
	}

	result := &SweepResult{
		SweepID:    core.SweepID(core.NewID()),
		SignalName: req.SignalName,
		Cells:      cells,
		RuntimeMs:  time.Since(start).Milliseconds(),
	}
	for _, cell := range cells {
		switch {
		case cell.Err != nil:
			result.FailedCount++
		case cell.Decision == verdict.RecommendationApproved:
			result.ApprovedCount++
		}
	}
	return result, nil
}
