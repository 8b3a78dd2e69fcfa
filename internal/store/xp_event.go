package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (r *eventRepo) AppendXPEvent(ctx context.Context, data XPEventData) error {
	err := r.insert(ctx, XPEventsTable.Name,
		[]string{"source", "algorithm_id", "amount", "total_xp", "level"},
		data.Source, nullable(data.AlgorithmID), data.Amount, data.TotalXP, data.Level,
	)
	if err != nil {
		return fmt.Errorf("save xp event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryXPEvents(ctx context.Context, opts QueryOpts) ([]XPEventRecord, error) {
	sel := selectEvents(XPEventsTable.Name, opts, "source", "algorithm_id", "amount", "total_xp", "level")

	var records []XPEventRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var (
			rec  XPEventRecord
			ts   int64
			algo sql.NullString
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.Source, &algo, &rec.Amount, &rec.TotalXP, &rec.Level); err != nil {
			return err
		}
		rec.Timestamp = fromMillis(ts)
		if algo.Valid {
			rec.AlgorithmID = &algo.String
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}
	return records, nil
}
