package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo with ent's SQL builders.
type snapshotRepo struct {
	drv *entsql.Driver
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	q, args := builder().Insert(SnapshotsTable.Name).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, snap.Timestamp.UTC().UnixMilli(), string(data)).
		Query()
	if _, err := r.drv.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	q, args := builder().
		Select("id", "sequence", "timestamp", "data").
		From(entsql.Table(SnapshotsTable.Name)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		snap Snapshot
		ts   int64
		raw  string
	)
	err := r.drv.DB().QueryRowContext(ctx, q, args...).Scan(&snap.ID, &snap.Sequence, &ts, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	snap.Timestamp = fromMillis(ts)
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the ID threshold: the first snapshot beyond the newest keep.
	q, args := builder().
		Select("id").
		From(entsql.Table(SnapshotsTable.Name)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Offset(keep).
		Query()

	var threshold int
	err := r.drv.DB().QueryRowContext(ctx, q, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	q, args = builder().Delete(SnapshotsTable.Name).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.drv.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
