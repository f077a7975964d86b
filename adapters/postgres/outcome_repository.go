// Package postgres reads settled trade history out of PostgreSQL. It is a
// read-only adapter: the validation engine consumes what it returns and
// nothing here ever writes.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"edgegate/domain/sample"
	"edgegate/ports"
)

// OutcomeRepository implements ports.OutcomeSourcePort over a trade_outcomes
// table maintained by the execution system.
type OutcomeRepository struct {
	db *sqlx.DB
}

// NewOutcomeRepository creates a PostgreSQL outcome repository.
func NewOutcomeRepository(db *sqlx.DB) ports.OutcomeSourcePort {
	return &OutcomeRepository{db: db}
}

// Connect opens and pings a PostgreSQL connection.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

type outcomeRow struct {
	IsWin          bool    `db:"is_win"`
	SignalStrength float64 `db:"signal_strength"`
	ForwardReturn  float64 `db:"forward_return"`
}

// Outcomes returns settled outcomes for a signal ordered by settlement
// time, earliest first. The ORDER BY is the walk-forward ordering
// guarantee; do not relax it.
func (r *OutcomeRepository) Outcomes(ctx context.Context, signalName string) (sample.TimeOrderedOutcome, error) {
	var rows []outcomeRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT is_win, signal_strength, forward_return
		FROM trade_outcomes
		WHERE signal_name = $1 AND settled_at IS NOT NULL
		ORDER BY settled_at ASC`, signalName)
	if err != nil {
		return nil, fmt.Errorf("query outcomes for %s: %w", signalName, err)
	}

	outcomes := make(sample.TimeOrderedOutcome, len(rows))
	for i, row := range rows {
		outcomes[i] = sample.Outcome{IsWin: row.IsWin}
	}
	return outcomes, nil
}

// SignalPoints returns signal-strength/outcome pairs for a signal.
func (r *OutcomeRepository) SignalPoints(ctx context.Context, signalName string) ([]sample.SignalOutcomePoint, error) {
	var rows []outcomeRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT is_win, signal_strength, forward_return
		FROM trade_outcomes
		WHERE signal_name = $1 AND settled_at IS NOT NULL
		ORDER BY settled_at ASC`, signalName)
	if err != nil {
		return nil, fmt.Errorf("query signal points for %s: %w", signalName, err)
	}

	points := make([]sample.SignalOutcomePoint, len(rows))
	for i, row := range rows {
		points[i] = sample.SignalOutcomePoint{
			SignalValue:  row.SignalStrength,
			OutcomeIsWin: row.IsWin,
			Magnitude:    row.ForwardReturn,
		}
	}
	return points, nil
}
