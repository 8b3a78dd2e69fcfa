package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/store"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "algolab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func openSession(t *testing.T, st *store.Store) *Session {
	t.Helper()
	s, err := Open(context.Background(), Options{
		EventRepo:    st.EventRepo(),
		SnapshotRepo: st.SnapshotRepo(),
		Sequence:     st.LatestSequence,
		Now:          func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return s
}

// replay autoplays id to completion on a manual clock.
func replay(t *testing.T, s *Session, id algorithms.ID, in algorithms.Input) {
	t.Helper()
	ctx := context.Background()
	clk := playback.NewManualClock()
	done := 0
	c := playback.New(id, in, playback.Options{
		Scheduler: clk,
		Speed:     playback.SpeedFast,
		OnComplete: func(comp playback.Completion) {
			done++
			_, err := s.TraversalCompleted(ctx, comp, playback.SpeedFast)
			assert.NoError(t, err)
		},
	})
	defer c.Close()

	c.Play()
	s.TraversalStarted(ctx, c.Snapshot())
	s.TraversalStarted(ctx, c.Snapshot())
	clk.Advance(time.Hour)
	require.Equal(t, 1, done)
}

func TestTraversalCompletedAwardsXPAndPersists(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	s := openSession(t, st)

	replay(t, s, algorithms.BubbleSort, algorithms.Input{Array: []int{5, 3, 1}})

	bubble, _ := algorithms.Lookup(algorithms.BubbleSort)
	p := s.Ledger.Progress()
	assert.Equal(t, bubble.XP, p.TotalXP)
	assert.True(t, p.Completed["bubble-sort"])
	assert.Equal(t, 1, p.CurrentStreak)

	counts, err := st.EventRepo().CompletionCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["bubble-sort"])

	xp, err := st.EventRepo().QueryXPEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, xp, 1)
	assert.Equal(t, "completion", xp[0].Source)
	assert.Equal(t, bubble.XP, xp[0].Amount)

	assert.True(t, s.Badges.Has("completion:bubble-sort:first"))

	sum := s.Summary()
	assert.Equal(t, 1, sum.Traversals)
	assert.Equal(t, 1, sum.Completions)
	assert.Equal(t, bubble.XP, sum.XPEarned)
	assert.NotEmpty(t, sum.Badges)

	require.NoError(t, s.Close(ctx))

	again := openSession(t, st)
	assert.Equal(t, bubble.XP, again.Ledger.Progress().TotalXP)
	assert.True(t, again.Badges.Has("completion:bubble-sort:first"))
	assert.Zero(t, again.Summary().XPEarned)
}

func TestFinishQuizJournalsXP(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	s := openSession(t, st)

	a := s.StartQuiz(ctx, algorithms.BFS)
	require.Len(t, a.Questions, 4)
	for _, q := range a.Questions {
		_, err := a.Answer(q.Answer)
		require.NoError(t, err)
	}
	res, err := s.FinishQuiz(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Correct)

	xp, err := st.EventRepo().QueryXPEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, xp, 1)
	assert.Equal(t, "quiz", xp[0].Source)
	require.NotNil(t, xp[0].AlgorithmID)
	assert.Equal(t, "bfs", *xp[0].AlgorithmID)

	assert.True(t, s.Badges.Has("mastery:bfs:gold"))
	assert.Equal(t, 1, s.Summary().Quizzes)
}

func TestTamperedSnapshotIsFlagged(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	err := st.SnapshotRepo().Save(ctx, &store.Snapshot{
		Timestamp: testNow.Add(-time.Hour),
		Data: store.SnapshotData{
			Version:  SnapshotVersion,
			Progress: &store.ProgressData{TotalXP: 100, Level: 9},
		},
	})
	require.NoError(t, err)

	s := openSession(t, st)
	assert.Equal(t, 1, s.Ledger.Progress().Level(), "level is recomputed from XP")
	assert.Equal(t, 1, s.Summary().Flags)

	flags, err := st.EventRepo().QueryFlagEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "level-mismatch", flags[0].Rule)
}

func TestXPSpikeIsRecorded(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	s := openSession(t, st)

	_, err := s.Ledger.AddXP(5000)
	require.NoError(t, err)

	flags, err := st.EventRepo().QueryFlagEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	var rules []string
	for _, f := range flags {
		rules = append(rules, f.Rule)
	}
	assert.Contains(t, rules, "xp-spike")
	assert.Contains(t, rules, "xp-rate")
}

func TestWithoutStore(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{})
	require.NoError(t, err)

	replay(t, s, algorithms.LinearSearch, algorithms.Input{Array: []int{4, 8, 15}, Target: 8})
	assert.Positive(t, s.Ledger.Progress().TotalXP)
	assert.NoError(t, s.Close(ctx))
}
