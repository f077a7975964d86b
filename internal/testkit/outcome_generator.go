package testkit

import (
	"context"
	"math/rand"

	"edgegate/domain/sample"
	"edgegate/ports"
)

// OutcomeGeneratorConfig configures the synthetic trade-history generator.
// TrueEdge is the probability that a high-strength reading resolves to a
// win; BaseRate applies below the strength split. Setting both to 0.5
// produces a signal with no edge at all.
type OutcomeGeneratorConfig struct {
	SampleSize    int     `json:"sample_size"`
	TrueEdge      float64 `json:"true_edge"`
	BaseRate      float64 `json:"base_rate"`
	StrengthSplit float64 `json:"strength_split"`
	Seed          int64   `json:"seed"`
}

// DefaultOutcomeConfig returns a mildly predictive signal: 60% wins above
// the strength split, coin-flip below it.
func DefaultOutcomeConfig() OutcomeGeneratorConfig {
	return OutcomeGeneratorConfig{
		SampleSize:    200,
		TrueEdge:      0.60,
		BaseRate:      0.50,
		StrengthSplit: 0.5,
		Seed:          42,
	}
}

// OutcomeGenerator produces deterministic synthetic signal histories. It
// implements ports.OutcomeSourcePort so the whole pipeline, sources through
// promotion decision, runs end to end without a live database.
type OutcomeGenerator struct {
	config OutcomeGeneratorConfig
	points []sample.SignalOutcomePoint
}

// NewOutcomeGenerator creates a generator and materializes its history up
// front. The same seed always yields the same history.
func NewOutcomeGenerator(config OutcomeGeneratorConfig) *OutcomeGenerator {
	g := &OutcomeGenerator{config: config}
	g.points = g.generate()
	return g
}

func (g *OutcomeGenerator) generate() []sample.SignalOutcomePoint {
	rng := rand.New(rand.NewSource(g.config.Seed))
	points := make([]sample.SignalOutcomePoint, g.config.SampleSize)
	for i := range points {
		strength := rng.Float64()
		winProb := g.config.BaseRate
		if strength > g.config.StrengthSplit {
			winProb = g.config.TrueEdge
		}
		isWin := rng.Float64() < winProb

		magnitude := rng.NormFloat64() * 0.004
		if isWin && magnitude < 0 {
			magnitude = -magnitude
		}
		if !isWin && magnitude > 0 {
			magnitude = -magnitude
		}

		points[i] = sample.SignalOutcomePoint{
			SignalValue:  strength,
			OutcomeIsWin: isWin,
			Magnitude:    magnitude,
		}
	}
	return points
}

// Outcomes returns the generated history in generation order.
func (g *OutcomeGenerator) Outcomes(_ context.Context, _ string) (sample.TimeOrderedOutcome, error) {
	outcomes := make(sample.TimeOrderedOutcome, len(g.points))
	for i, p := range g.points {
		outcomes[i] = sample.Outcome{IsWin: p.OutcomeIsWin}
	}
	return outcomes, nil
}

// SignalPoints returns the generated strength/outcome pairs.
func (g *OutcomeGenerator) SignalPoints(_ context.Context, _ string) ([]sample.SignalOutcomePoint, error) {
	points := make([]sample.SignalOutcomePoint, len(g.points))
	copy(points, g.points)
	return points, nil
}

var _ ports.OutcomeSourcePort = (*OutcomeGenerator)(nil)
