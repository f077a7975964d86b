package excel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outcomes.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// TestCSVOutcomes tests filtering by signal name and preserving file order
func TestCSVOutcomes(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"signal_name,is_win,signal_strength,forward_return",
		"momentum,true,0.8,0.012",
		"momentum,false,0.3,-0.004",
		"reversal,true,0.9,0.020",
		"momentum,true,0.7,0.008",
	}, "\n"))

	reader := NewOutcomeReader(path)
	outcomes, err := reader.Outcomes(context.Background(), "momentum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 momentum rows, got %d", len(outcomes))
	}
	want := []bool{true, false, true}
	for i, w := range want {
		if outcomes[i].IsWin != w {
			t.Errorf("row %d: expected IsWin=%v, got %v", i, w, outcomes[i].IsWin)
		}
	}
}

// TestCSVSignalPoints tests strength and forward-return parsing
func TestCSVSignalPoints(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"signal_name,is_win,signal_strength,forward_return",
		"momentum,true,0.8,0.012",
		"momentum,false,0.3,",
	}, "\n"))

	reader := NewOutcomeReader(path)
	points, err := reader.SignalPoints(context.Background(), "momentum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].SignalValue != 0.8 || points[0].Magnitude != 0.012 || !points[0].OutcomeIsWin {
		t.Errorf("first point parsed wrong: %+v", points[0])
	}
	if points[1].Magnitude != 0 {
		t.Errorf("blank forward_return must parse as 0, got %v", points[1].Magnitude)
	}
}

// TestCSVHeaderShuffleAndCase tests header lookup by name, not position
func TestCSVHeaderShuffleAndCase(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"Forward_Return,SIGNAL_NAME,Signal_Strength,Is_Win",
		"0.01,momentum,0.9,TRUE",
	}, "\n"))

	reader := NewOutcomeReader(path)
	points, err := reader.SignalPoints(context.Background(), "momentum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].SignalValue != 0.9 || !points[0].OutcomeIsWin {
		t.Errorf("shuffled headers parsed wrong: %+v", points)
	}
}

// TestCSVMissingColumn tests the required-column check
func TestCSVMissingColumn(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"signal_name,signal_strength",
		"momentum,0.9",
	}, "\n"))

	reader := NewOutcomeReader(path)
	_, err := reader.Outcomes(context.Background(), "momentum")
	if err == nil || !strings.Contains(err.Error(), "is_win") {
		t.Errorf("expected a missing-column error naming is_win, got %v", err)
	}
}

// TestCSVBadCellFailsWithRowContext tests per-row error reporting
func TestCSVBadCellFailsWithRowContext(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"signal_name,is_win,signal_strength",
		"momentum,true,0.8",
		"momentum,notabool,0.5",
	}, "\n"))

	reader := NewOutcomeReader(path)
	_, err := reader.Outcomes(context.Background(), "momentum")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should name the failing row, got %v", err)
	}
}

// TestMissingFile tests the not-found path
func TestMissingFile(t *testing.T) {
	reader := NewOutcomeReader(filepath.Join(t.TempDir(), "absent.csv"))
	_, err := reader.Outcomes(context.Background(), "momentum")
	if err == nil {
		t.Fatal("expected error for a missing file")
	}
}

// TestUnknownSignalReturnsEmpty tests that an unmatched signal name is not
// an error.
func TestUnknownSignalReturnsEmpty(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"signal_name,is_win,signal_strength",
		"momentum,true,0.8",
	}, "\n"))

	reader := NewOutcomeReader(path)
	outcomes, err := reader.Outcomes(context.Background(), "no_such_signal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("expected empty history, got %d rows", len(outcomes))
	}
}
