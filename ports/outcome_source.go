// Package ports defines the boundary interfaces the engine's callers
// implement. The engine itself depends on nothing here; adapters feed data
// in through these ports.
package ports

import (
	"context"

	"edgegate/domain/sample"
)

// OutcomeSourcePort reads settled trade history for a signal. Implementations
// are read-only: the validation engine never writes history.
type OutcomeSourcePort interface {
	// Outcomes returns the settled outcomes for a signal in strict
	// chronological order, earliest first. Ordering is load-bearing for
	// walk-forward validation.
	Outcomes(ctx context.Context, signalName string) (sample.TimeOrderedOutcome, error)

	// SignalPoints returns signal-strength/outcome pairs for a signal.
	// Order is not significant for the consumers of this method.
	SignalPoints(ctx context.Context, signalName string) ([]sample.SignalOutcomePoint, error)
}
