package stats

import (
	"errors"
	"math"
	"testing"

	"edgegate/domain/core"
	"edgegate/domain/sample"
)

// TestWilsonIntervalKnownValue tests the interval against a hand-computed
// reference: 550 wins over 1000 at z=1.96 gives roughly [0.519, 0.581].
func TestWilsonIntervalKnownValue(t *testing.T) {
	lower, upper, err := WilsonInterval(sample.BinarySample{Wins: 550, Total: 1000}, Z95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(lower-0.5190) > 0.002 {
		t.Errorf("lower bound %v not near 0.519", lower)
	}
	if math.Abs(upper-0.5805) > 0.002 {
		t.Errorf("upper bound %v not near 0.580", upper)
	}
	if lower > upper {
		t.Errorf("lower %v exceeds upper %v", lower, upper)
	}
}

// TestWilsonIntervalExtremes tests behavior at zero and total wins
func TestWilsonIntervalExtremes(t *testing.T) {
	lower, upper, err := WilsonInterval(sample.BinarySample{Wins: 0, Total: 20}, Z95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower != 0 {
		t.Errorf("zero wins should pin the lower bound to 0, got %v", lower)
	}
	if upper <= 0 || upper >= 0.5 {
		t.Errorf("upper bound %v implausible for 0/20", upper)
	}

	lower, upper, err = WilsonInterval(sample.BinarySample{Wins: 20, Total: 20}, Z95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upper != 1 {
		t.Errorf("all wins should pin the upper bound to 1, got %v", upper)
	}
	if lower <= 0.5 {
		t.Errorf("lower bound %v implausible for 20/20", lower)
	}
}

// TestWilsonIntervalNarrowsWithSampleSize tests that more data at the same
// proportion tightens the interval.
func TestWilsonIntervalNarrowsWithSampleSize(t *testing.T) {
	l1, u1, err := WilsonInterval(sample.BinarySample{Wins: 55, Total: 100}, Z95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l2, u2, err := WilsonInterval(sample.BinarySample{Wins: 550, Total: 1000}, Z95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if (u2 - l2) >= (u1 - l1) {
		t.Errorf("interval did not narrow: n=100 width %v, n=1000 width %v", u1-l1, u2-l2)
	}
}

// TestWilsonIntervalRejectsDegenerateInput tests the guard clauses
func TestWilsonIntervalRejectsDegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		s    sample.BinarySample
		z    float64
	}{
		{"empty sample", sample.BinarySample{}, Z95},
		{"wins above total", sample.BinarySample{Wins: 5, Total: 3}, Z95},
		{"zero critical value", sample.BinarySample{Wins: 5, Total: 10}, 0},
		{"negative critical value", sample.BinarySample{Wins: 5, Total: 10}, -1.96},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := WilsonInterval(test.s, test.z)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, core.ErrInvalidSample) {
				t.Errorf("expected ErrInvalidSample, got %v", err)
			}
		})
	}
}
