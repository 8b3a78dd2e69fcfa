package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builders and the global
// sequence counter. Every event table starts with the columns declared by
// eventTable, so append and query share the helpers below.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// insert appends one row to table, stamping sequence and timestamp.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals ...any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seqNum, time.Now().UTC().UnixMilli()}, vals...)...).
		Query()
	if _, err := r.drv.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first query over table honoring opts.
func selectEvents(table string, opts QueryOpts, cols ...string) *entsql.Selector {
	sel := builder().
		Select(append([]string{"sequence", "timestamp"}, cols...)...).
		From(entsql.Table(table)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UTC().UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE("timestamp", opts.To.UTC().UnixMilli()))
	}
	return sel
}

// queryRows runs sel and calls scan once per row.
func (r *eventRepo) queryRows(ctx context.Context, sel *entsql.Selector, scan func(rows *sql.Rows) error) error {
	q, args := sel.Query()
	rows, err := r.drv.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// nullable maps a nil pointer to SQL NULL.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Each event type lives in its own table, so per-table
// auto-increment IDs can't establish cross-type ordering. This shared
// counter assigns a single increasing sequence to every event regardless of
// type, enabling:
//
//   - Cross-type ordering (did the badge come before or after the quiz?)
//   - Snapshot consistency (query all tables for sequence > snapshot.sequence)
//   - Append-only guarantees (events are never reordered)
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Latest returns the last sequence number handed out, or 0.
func (sc *sequenceCounter) Latest(ctx context.Context) (int64, error) {
	var next int64
	if err := sc.db.QueryRowContext(ctx, `SELECT next_val FROM global_sequence WHERE id = 1`).Scan(&next); err != nil {
		return 0, fmt.Errorf("latest sequence: %w", err)
	}
	return next - 1, nil
}
