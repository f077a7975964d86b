package sample

import (
	"errors"
	"testing"

	"edgegate/domain/core"
)

// TestNewBinarySampleValidation tests constructor input checks
func TestNewBinarySampleValidation(t *testing.T) {
	tests := []struct {
		name     string
		wins     int
		total    int
		hasError bool
	}{
		{"valid sample", 55, 100, false},
		{"empty sample is constructible", 0, 0, false},
		{"all wins", 100, 100, false},
		{"negative wins", -1, 100, true},
		{"negative total", 0, -5, true},
		{"wins exceed total", 101, 100, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := NewBinarySample(test.wins, test.total)
			if test.hasError {
				if err == nil {
					t.Fatalf("expected error for wins=%d total=%d", test.wins, test.total)
				}
				if !errors.Is(err, core.ErrInvalidSample) {
					t.Errorf("expected ErrInvalidSample, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Wins != test.wins || s.Total != test.total {
				t.Errorf("constructed sample %+v does not match inputs", s)
			}
		})
	}
}

// TestWinRateEmptySample tests that an empty sample has no win rate
func TestWinRateEmptySample(t *testing.T) {
	s := BinarySample{}
	if !s.IsEmpty() {
		t.Fatal("zero-total sample should report empty")
	}

	_, err := s.WinRate()
	if err == nil {
		t.Fatal("expected error computing win rate over empty sample")
	}
	if !errors.Is(err, core.ErrZeroDenominator) {
		t.Errorf("expected ErrZeroDenominator, got %v", err)
	}
}

// TestWinRate tests the win rate over a populated sample
func TestWinRate(t *testing.T) {
	s := BinarySample{Wins: 55, Total: 100}
	rate, err := s.WinRate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.55 {
		t.Errorf("expected 0.55, got %v", rate)
	}
}

// TestTimeOrderedOutcome tests win counting and collapsing to counts
func TestTimeOrderedOutcome(t *testing.T) {
	outcomes := OutcomesFromBools([]bool{true, false, true, true, false})

	if got := outcomes.Wins(); got != 3 {
		t.Errorf("expected 3 wins, got %d", got)
	}

	bin := outcomes.AsBinarySample()
	if bin.Wins != 3 || bin.Total != 5 {
		t.Errorf("expected {3 5}, got %+v", bin)
	}
}

// TestOutcomesFromBoolsPreservesOrder tests that sequence order survives
func TestOutcomesFromBoolsPreservesOrder(t *testing.T) {
	in := []bool{true, false, false, true}
	outcomes := OutcomesFromBools(in)

	if len(outcomes) != len(in) {
		t.Fatalf("expected %d outcomes, got %d", len(in), len(outcomes))
	}
	for i, want := range in {
		if outcomes[i].IsWin != want {
			t.Errorf("position %d: expected %v, got %v", i, want, outcomes[i].IsWin)
		}
	}
}
