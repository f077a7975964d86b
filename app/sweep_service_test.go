package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgegate/domain/sample"
)

func sweepFixture() ([]sample.SignalOutcomePoint, sample.BinarySample) {
	points := make([]sample.SignalOutcomePoint, 0, 200)
	wins := 0
	for i := 0; i < 200; i++ {
		strength := float64(i) / 200.0
		isWin := i%3 != 0 // about 67% winners
		if isWin {
			wins++
		}
		points = append(points, sample.SignalOutcomePoint{SignalValue: strength, OutcomeIsWin: isWin})
	}
	return points, sample.BinarySample{Wins: wins, Total: 200}
}

// TestSweepRunsEveryThreshold tests grid completeness and request order
func TestSweepRunsEveryThreshold(t *testing.T) {
	points, bin := sweepFixture()
	sweeper := NewSweepService(newValidator(t), 4)

	thresholds := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	result, err := sweeper.Run(context.Background(), SweepRequest{
		SignalName: "grid_signal",
		Sample:     bin,
		Points:     points,
		Thresholds: thresholds,
	})
	require.NoError(t, err)

	require.Len(t, result.Cells, len(thresholds))
	for i, cell := range result.Cells {
		assert.Equal(t, thresholds[i], cell.Threshold, "cells must come back in request order")
		assert.NoError(t, cell.Err)
		assert.Equal(t, 200, cell.Record.SampleSize)
	}
	assert.NotEmpty(t, result.SweepID)
	assert.Equal(t, "grid_signal", result.SignalName)
	assert.Zero(t, result.FailedCount)
}

// TestSweepMatchesSequentialValidation tests that concurrency does not
// change any cell's result.
func TestSweepMatchesSequentialValidation(t *testing.T) {
	points, bin := sweepFixture()
	validator := newValidator(t)
	sweeper := NewSweepService(validator, 8)

	thresholds := []float64{0.2, 0.4, 0.6, 0.8}
	result, err := sweeper.Run(context.Background(), SweepRequest{
		SignalName: "determinism",
		Sample:     bin,
		Points:     points,
		Thresholds: thresholds,
	})
	require.NoError(t, err)

	for i, threshold := range thresholds {
		want, err := validator.Validate(ValidationRequest{
			Sample:            bin,
			Points:            points,
			StrengthThreshold: threshold,
		})
		require.NoError(t, err)
		assert.Equal(t, want, result.Cells[i].Record)
	}
}

// TestSweepRecordsCellFailures tests that a failing cell is reported, not
// converted into a no-edge record.
func TestSweepRecordsCellFailures(t *testing.T) {
	sweeper := NewSweepService(newValidator(t), 2)

	// An empty sample fails every cell.
	result, err := sweeper.Run(context.Background(), SweepRequest{
		SignalName: "broken",
		Sample:     sample.BinarySample{},
		Points:     nil,
		Thresholds: []float64{0.5, 0.6},
	})
	require.NoError(t, err, "cell failures must not fail the sweep")

	assert.Equal(t, 2, result.FailedCount)
	for _, cell := range result.Cells {
		assert.Error(t, cell.Err)
	}
}

// TestSweepRejectsEmptyGrid tests the empty-threshold guard
func TestSweepRejectsEmptyGrid(t *testing.T) {
	sweeper := NewSweepService(newValidator(t), 2)

	_, err := sweeper.Run(context.Background(), SweepRequest{SignalName: "empty"})
	assert.Error(t, err)
}

// TestSweepHonorsCancellation tests that a canceled context aborts the run
func TestSweepHonorsCancellation(t *testing.T) {
	points, bin := sweepFixture()
	sweeper := NewSweepService(newValidator(t), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sweeper.Run(ctx, SweepRequest{
		SignalName: "canceled",
		Sample:     bin,
		Points:     points,
		Thresholds: []float64{0.1, 0.2, 0.3},
	})
	assert.Error(t, err)
}
