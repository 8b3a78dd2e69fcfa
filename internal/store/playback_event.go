package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendPlaybackEvent(ctx context.Context, data PlaybackEventData) error {
	err := r.insert(ctx, PlaybackEventsTable.Name,
		[]string{"traversal_id", "algorithm_id", "action", "steps", "speed"},
		data.TraversalID, data.AlgorithmID, data.Action, data.Steps, data.Speed,
	)
	if err != nil {
		return fmt.Errorf("save playback event: %w", err)
	}
	return nil
}

func (r *eventRepo) CompletionCounts(ctx context.Context) (map[string]int, error) {
	sel := builder().
		Select("algorithm_id", entsql.Count("*")).
		From(entsql.Table(PlaybackEventsTable.Name)).
		Where(entsql.EQ("action", "complete")).
		GroupBy("algorithm_id")

	counts := make(map[string]int)
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return err
		}
		counts[id] = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query completion counts: %w", err)
	}
	return counts, nil
}
