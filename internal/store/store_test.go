package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: 1,
			Progress: &ProgressData{
				TotalXP:   550,
				Level:     2,
				Completed: []string{"bubble-sort"},
				Mastery: map[string]*MasteryData{
					"bubble-sort": {QuizScores: []float64{80, 100}},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	p := snap.Data.Progress
	if p == nil || p.TotalXP != 550 || p.Level != 2 {
		t.Fatalf("progress = %+v, want xp 550 level 2", p)
	}
	if got := p.Mastery["bubble-sort"].QuizScores; len(got) != 2 || got[1] != 100 {
		t.Errorf("quiz scores = %v", got)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune to keep 5.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if count := countRows(t, s, "snapshots"); count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}

	// Fewer than keep is a no-op.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if count := countRows(t, s, "snapshots"); count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendXPEvent(ctx, XPEventData{Source: "completion", AlgorithmID: strPtr("bubble-sort"), Amount: 100, TotalXP: 100, Level: 1}); err != nil {
		t.Fatalf("append xp: %v", err)
	}
	if err := repo.AppendBadgeEvent(ctx, BadgeEventData{BadgeType: "completion", Rarity: "common", Reason: "first"}); err != nil {
		t.Fatalf("append badge: %v", err)
	}
	if err := repo.AppendXPEvent(ctx, XPEventData{Source: "quiz", Amount: 50, TotalXP: 150, Level: 1}); err != nil {
		t.Fatalf("append xp: %v", err)
	}

	xp, err := repo.QueryXPEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query xp: %v", err)
	}
	if len(xp) != 2 {
		t.Fatalf("xp events = %d, want 2", len(xp))
	}
	// Newest first; the badge took sequence 2.
	if xp[0].Sequence != 3 || xp[1].Sequence != 1 {
		t.Errorf("sequences = %d, %d, want 3, 1", xp[0].Sequence, xp[1].Sequence)
	}
	if xp[0].AlgorithmID != nil {
		t.Errorf("quiz xp algorithm = %v, want nil", *xp[0].AlgorithmID)
	}
	if xp[1].AlgorithmID == nil || *xp[1].AlgorithmID != "bubble-sort" {
		t.Errorf("completion xp algorithm = %v", xp[1].AlgorithmID)
	}

	latest, err := s.LatestSequence(ctx)
	if err != nil {
		t.Fatalf("latest sequence: %v", err)
	}
	if latest != 3 {
		t.Errorf("latest sequence = %d, want 3", latest)
	}

	after, err := repo.QueryXPEvents(ctx, QueryOpts{After: 1, Limit: 5})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].Amount != 50 {
		t.Errorf("after 1 = %+v", after)
	}
}

func TestCompletionCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []PlaybackEventData{
		{TraversalID: "a", AlgorithmID: "bfs", Action: "start", Steps: 10, Speed: "fast"},
		{TraversalID: "a", AlgorithmID: "bfs", Action: "complete", Steps: 10, Speed: "fast"},
		{TraversalID: "b", AlgorithmID: "bfs", Action: "complete", Steps: 10, Speed: "slow"},
		{TraversalID: "c", AlgorithmID: "dfs", Action: "complete", Steps: 8, Speed: "slow"},
	}
	for _, e := range events {
		if err := repo.AppendPlaybackEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	counts, err := repo.CompletionCounts(ctx)
	if err != nil {
		t.Fatalf("completion counts: %v", err)
	}
	if counts["bfs"] != 2 || counts["dfs"] != 1 || len(counts) != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestBadgeCountsAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, typ := range []string{"streak", "mastery", "streak"} {
		if err := repo.AppendBadgeEvent(ctx, BadgeEventData{BadgeType: typ, Rarity: "rare", Reason: typ}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	byType, total, err := repo.BadgeCounts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 3 || byType["streak"] != 2 || byType["mastery"] != 1 {
		t.Errorf("counts = %v total %d", byType, total)
	}

	recs, err := repo.QueryBadgeEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 1 || recs[0].BadgeType != "streak" {
		t.Errorf("latest badge = %+v", recs)
	}
}

func TestFlagAndLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendFlagEvent(ctx, FlagEventData{Rule: "xp-spike", Severity: "critical", Reason: "too much", Delta: 5000, TotalXP: 5000, Level: 11}); err != nil {
		t.Fatalf("append flag: %v", err)
	}
	flags, err := repo.QueryFlagEvents(ctx, QueryOpts{From: time.Now().Add(-time.Minute)})
	if err != nil {
		t.Fatalf("query flags: %v", err)
	}
	if len(flags) != 1 || flags[0].Rule != "xp-spike" || flags[0].Delta != 5000 {
		t.Errorf("flags = %+v", flags)
	}

	for _, ok := range []bool{true, false, true} {
		data := LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "quiz", InputTokens: 10, OutputTokens: 5, Success: ok}
		if !ok {
			data.ErrorMessage = "boom"
		}
		if err := repo.AppendLLMRequest(ctx, data); err != nil {
			t.Fatalf("append llm: %v", err)
		}
	}
	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("usage rows = %d, want 1", len(usage))
	}
	u := usage[0]
	if u.Requests != 3 || u.InputTokens != 30 || u.OutputTokens != 15 || u.Failures != 1 {
		t.Errorf("usage = %+v", u)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Model != "m" || byModel[0].Requests != 3 || byModel[0].InputTokens != 30 {
		t.Errorf("usage by model = %+v", byModel)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	if err := repo.AppendQuizEvent(ctx, QuizEventData{QuizID: "q", AlgorithmID: "bfs", Questions: 3, Correct: 2, Score: 66.7, Source: "bank"}); err != nil {
		t.Fatalf("append quiz: %v", err)
	}
	if err := s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 1, Timestamp: time.Now(), Data: SnapshotData{Version: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, table := range []string{"quiz_events", "snapshots"} {
		if n := countRows(t, s, table); n != 0 {
			t.Errorf("%s rows = %d, want 0", table, n)
		}
	}

	// Sequence keeps counting after a reset.
	if err := repo.AppendQuizEvent(ctx, QuizEventData{QuizID: "r", AlgorithmID: "bfs", Source: "bank"}); err != nil {
		t.Fatalf("append quiz: %v", err)
	}
	latest, _ := s.LatestSequence(ctx)
	if latest != 2 {
		t.Errorf("latest sequence = %d, want 2", latest)
	}
}
