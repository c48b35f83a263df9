// Package reconcile applies candidate record batches against warehouse
// tables with update-or-insert semantics keyed on the batch's surrogate
// numbers.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Record is one candidate row destined for a warehouse table.
type Record interface {
	// Key returns the surrogate key value of the row.
	Key() int64
	// Columns returns the table's column names; Values returns the
	// matching values in the same order, key included.
	Columns() []string
	Values() []any
}

// Engine reconciles candidate batches against warehouse tables. It must
// stay the single writer per table per pass: the partition below is only
// valid against the key snapshot read in the same transaction.
type Engine struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewEngine creates a new reconciliation engine.
func NewEngine(db *sqlx.DB, logger *zap.Logger) *Engine {
	return &Engine{
		db:     db,
		logger: logger,
	}
}

// Reconcile partitions records into updates (key already in table) and
// inserts (key absent) and applies update-then-insert, in that order,
// inside one transaction. After a successful run the table's key set is
// the union of the previous key set and the candidates' keys, and every
// overlapping key holds the candidate's values.
func (e *Engine) Reconcile(ctx context.Context, table, keyColumn string, records []Record) (err error) {
	if len(records) == 0 {
		e.logger.Debug("nothing to reconcile", zap.String("table", table))
		return nil
	}

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reconciliation of %s: %w", table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	existing, err := keySet(ctx, tx, table, keyColumn)
	if err != nil {
		return err
	}

	var toUpdate, toInsert []Record
	for _, rec := range records {
		if _, ok := existing[rec.Key()]; ok {
			toUpdate = append(toUpdate, rec)
		} else {
			toInsert = append(toInsert, rec)
		}
	}

	for _, rec := range toUpdate {
		if err = e.update(ctx, tx, table, keyColumn, rec); err != nil {
			return err
		}
	}
	for _, rec := range toInsert {
		if err = e.insert(ctx, tx, table, rec); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reconciliation of %s: %w", table, err)
	}

	e.logger.Info("table reconciled",
		zap.String("table", table),
		zap.Int("updated", len(toUpdate)),
		zap.Int("inserted", len(toInsert)),
	)
	return nil
}

// keySet reads the current key membership of the table inside the
// reconciliation transaction.
func keySet(ctx context.Context, tx *sqlx.Tx, table, keyColumn string) (map[int64]struct{}, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s", keyColumn, table))
	if err != nil {
		return nil, fmt.Errorf("failed to read key set of %s: %w", table, err)
	}
	defer rows.Close()

	keys := make(map[int64]struct{})
	for rows.Next() {
		var key int64
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key of %s: %w", table, err)
		}
		keys[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys of %s: %w", table, err)
	}
	return keys, nil
}

// update rewrites all non-key columns of the row addressed by key
// equality.
func (e *Engine) update(ctx context.Context, tx *sqlx.Tx, table, keyColumn string, rec Record) error {
	columns := rec.Columns()
	values := rec.Values()

	assignments := make([]string, 0, len(columns)-1)
	args := make([]any, 0, len(columns))
	for i, col := range columns {
		if col == keyColumn {
			continue
		}
		assignments = append(assignments, col+" = ?")
		args = append(args, values[i])
	}
	args = append(args, rec.Key())

	query := e.db.Rebind(fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = ?",
		table, strings.Join(assignments, ", "), keyColumn,
	))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update %s key %d: %w", table, rec.Key(), err)
	}
	return nil
}

// insert appends the row as-is.
func (e *Engine) insert(ctx context.Context, tx *sqlx.Tx, table string, rec Record) error {
	columns := rec.Columns()

	query := e.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	))
	if _, err := tx.ExecContext(ctx, query, rec.Values()...); err != nil {
		return fmt.Errorf("failed to insert %s key %d: %w", table, rec.Key(), err)
	}
	return nil
}
