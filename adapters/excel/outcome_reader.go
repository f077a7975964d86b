// Package excel reads trade history out of spreadsheet or CSV exports, for
// validating signals whose outcomes live in analyst-maintained files rather
// than the trade database.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"edgegate/domain/sample"
	"edgegate/ports"
)

// Expected columns, by header name (case-insensitive):
// signal_name, is_win, signal_strength, forward_return. Rows must appear in
// chronological order; the reader preserves file order exactly.
type outcomeFileRow struct {
	signalName     string
	isWin          bool
	signalStrength float64
	forwardReturn  float64
}

// OutcomeReader implements ports.OutcomeSourcePort over an .xlsx or .csv
// file.
type OutcomeReader struct {
	filePath string
	sheet    string
}

// NewOutcomeReader creates a reader for the given file. Excel files are
// read from Sheet1.
func NewOutcomeReader(filePath string) ports.OutcomeSourcePort {
	return &OutcomeReader{filePath: filePath, sheet: "Sheet1"}
}

// Outcomes returns the file's settled outcomes for a signal in file order.
func (r *OutcomeReader) Outcomes(_ context.Context, signalName string) (sample.TimeOrderedOutcome, error) {
	rows, err := r.load(signalName)
	if err != nil {
		return nil, err
	}
	outcomes := make(sample.TimeOrderedOutcome, len(rows))
	for i, row := range rows {
		outcomes[i] = sample.Outcome{IsWin: row.isWin}
	}
	return outcomes, nil
}

// SignalPoints returns the file's signal-strength/outcome pairs for a signal.
func (r *OutcomeReader) SignalPoints(_ context.Context, signalName string) ([]sample.SignalOutcomePoint, error) {
	rows, err := r.load(signalName)
	if err != nil {
		return nil, err
	}
	points := make([]sample.SignalOutcomePoint, len(rows))
	for i, row := range rows {
		points[i] = sample.SignalOutcomePoint{
			SignalValue:  row.signalStrength,
			OutcomeIsWin: row.isWin,
			Magnitude:    row.forwardReturn,
		}
	}
	return points, nil
}

func (r *OutcomeReader) load(signalName string) ([]outcomeFileRow, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("outcome file not found: %s", r.filePath)
	}

	var raw [][]string
	var err error
	if strings.ToLower(filepath.Ext(r.filePath)) == ".csv" {
		raw, err = r.readCSV()
	} else {
		raw, err = r.readExcel()
	}
	if err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("outcome file %s needs a header row and at least one data row", r.filePath)
	}

	cols, err := headerIndex(raw[0])
	if err != nil {
		return nil, fmt.Errorf("outcome file %s: %w", r.filePath, err)
	}

	var rows []outcomeFileRow
	for i, rec := range raw[1:] {
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("outcome file %s row %d: %w", r.filePath, i+2, err)
		}
		if row.signalName == signalName {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *OutcomeReader) readExcel() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.sheet, err)
	}
	return rows, nil
}

func (r *OutcomeReader) readCSV() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"signal_name", "is_win", "signal_strength"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (outcomeFileRow, error) {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	isWin, err := strconv.ParseBool(strings.ToLower(cell("is_win")))
	if err != nil {
		return outcomeFileRow{}, fmt.Errorf("is_win %q: %w", cell("is_win"), err)
	}
	strength, err := strconv.ParseFloat(cell("signal_strength"), 64)
	if err != nil {
		return outcomeFileRow{}, fmt.Errorf("signal_strength %q: %w", cell("signal_strength"), err)
	}

	// forward_return is optional; blank means boolean-only history.
	fwd := 0.0
	if raw := cell("forward_return"); raw != "" {
		fwd, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return outcomeFileRow{}, fmt.Errorf("forward_return %q: %w", raw, err)
		}
	}

	return outcomeFileRow{
		signalName:     cell("signal_name"),
		isWin:          isWin,
		signalStrength: strength,
		forwardReturn:  fwd,
	}, nil
}
