package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (r *eventRepo) AppendFlagEvent(ctx context.Context, data FlagEventData) error {
	err := r.insert(ctx, FlagEventsTable.Name,
		[]string{"rule", "severity", "reason", "delta", "total_xp", "level"},
		data.Rule, data.Severity, data.Reason, data.Delta, data.TotalXP, data.Level,
	)
	if err != nil {
		return fmt.Errorf("save flag event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryFlagEvents(ctx context.Context, opts QueryOpts) ([]FlagEventRecord, error) {
	sel := selectEvents(FlagEventsTable.Name, opts, "rule", "severity", "reason", "delta", "total_xp", "level")

	var records []FlagEventRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var (
			rec FlagEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.Rule, &rec.Severity, &rec.Reason, &rec.Delta, &rec.TotalXP, &rec.Level); err != nil {
			return err
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query flag events: %w", err)
	}
	return records, nil
}
