package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendBadgeEvent(ctx context.Context, data BadgeEventData) error {
	err := r.insert(ctx, BadgeEventsTable.Name,
		[]string{"badge_type", "rarity", "algorithm_id", "reason"},
		data.BadgeType, data.Rarity, nullable(data.AlgorithmID), data.Reason,
	)
	if err != nil {
		return fmt.Errorf("save badge event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryBadgeEvents(ctx context.Context, opts QueryOpts) ([]BadgeEventRecord, error) {
	sel := selectEvents(BadgeEventsTable.Name, opts, "badge_type", "rarity", "algorithm_id", "reason")

	var records []BadgeEventRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var (
			rec  BadgeEventRecord
			ts   int64
			algo sql.NullString
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.BadgeType, &rec.Rarity, &algo, &rec.Reason); err != nil {
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
		return nil, fmt.Errorf("query badge events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) BadgeCounts(ctx context.Context) (map[string]int, int, error) {
	sel := builder().
		Select("badge_type", entsql.Count("*")).
		From(entsql.Table(BadgeEventsTable.Name)).
		GroupBy("badge_type")

	byType := make(map[string]int)
	total := 0
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return err
		}
		byType[typ] = n
		total += n
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query badge counts: %w", err)
	}
	return byType, total, nil
}
