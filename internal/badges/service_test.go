package badges

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/store"
)

// mockEventRepo implements store.EventRepo for badge tests.
type mockEventRepo struct {
	badgeEvents []store.BadgeEventData
	counts      map[string]int
	total       int
	countsErr   error
}

func (m *mockEventRepo) AppendPlaybackEvent(_ context.Context, _ store.PlaybackEventData) error {
	return nil
}
func (m *mockEventRepo) CompletionCounts(_ context.Context) (map[string]int, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendXPEvent(_ context.Context, _ store.XPEventData) error { return nil }
func (m *mockEventRepo) QueryXPEvents(_ context.Context, _ store.QueryOpts) ([]store.XPEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendQuizEvent(_ context.Context, _ store.QuizEventData) error { return nil }
func (m *mockEventRepo) AppendBadgeEvent(_ context.Context, data store.BadgeEventData) error {
	m.badgeEvents = append(m.badgeEvents, data)
	return nil
}
func (m *mockEventRepo) QueryBadgeEvents(_ context.Context, _ store.QueryOpts) ([]store.BadgeEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) BadgeCounts(_ context.Context) (map[string]int, int, error) {
	return m.counts, m.total, m.countsErr
}
func (m *mockEventRepo) AppendFlagEvent(_ context.Context, _ store.FlagEventData) error { return nil }
func (m *mockEventRepo) QueryFlagEvents(_ context.Context, _ store.QueryOpts) ([]store.FlagEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.LLMUsageStats, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(_ context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

func newTestService() (*Service, *mockEventRepo, *progress.Ledger) {
	repo := &mockEventRepo{}
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC) }
	l := progress.NewLedger(nil)
	svc.Attach(l)
	return svc, repo, l
}

func TestFirstCompletionAwardsOnce(t *testing.T) {
	svc, repo, l := newTestService()

	if _, err := l.CompleteAlgorithm("dijkstra", 200); err != nil {
		t.Fatal(err)
	}
	if _, err := l.CompleteAlgorithm("dijkstra", 200); err != nil {
		t.Fatal(err)
	}

	var completions []Badge
	for _, b := range svc.SessionBadges() {
		if b.Type == BadgeCompletion {
			completions = append(completions, b)
		}
	}
	if len(completions) != 1 {
		t.Fatalf("completion badges = %d, want 1", len(completions))
	}
	b := completions[0]
	if b.AlgorithmName == "" || b.AlgorithmName == "dijkstra" {
		t.Errorf("AlgorithmName = %q, want catalog name", b.AlgorithmName)
	}
	if b.Rarity != RarityLegendary {
		t.Errorf("Rarity = %q, want %q", b.Rarity, RarityLegendary)
	}
	if !svc.Has("completion:dijkstra:first") {
		t.Error("Has(completion:dijkstra:first) = false")
	}

	var persisted int
	for _, ev := range repo.badgeEvents {
		if ev.BadgeType == "completion" {
			persisted++
			if ev.AlgorithmID == nil || *ev.AlgorithmID != "dijkstra" {
				t.Error("persisted completion badge missing algorithm_id")
			}
		}
	}
	if persisted != 1 {
		t.Errorf("persisted completion events = %d, want 1", persisted)
	}
}

func TestLevelBadgesForEveryLevelCrossed(t *testing.T) {
	svc, repo, l := newTestService()

	if _, err := l.AddXP(1600); err != nil { // level 1 -> 4
		t.Fatal(err)
	}

	got := svc.SessionBadges()
	if len(got) != 3 {
		t.Fatalf("badges = %d, want 3 (levels 2, 3, 4)", len(got))
	}
	for i, want := range []string{"level:2", "level:3", "level:4"} {
		if got[i].Key() != want {
			t.Errorf("badge[%d] = %q, want %q", i, got[i].Key(), want)
		}
	}
	if repo.badgeEvents[0].AlgorithmID != nil {
		t.Error("level badge should have nil algorithm_id")
	}
}

func TestMasteryBadgeOnTierUp(t *testing.T) {
	svc, _, l := newTestService()

	l.RecordQuizScore("bfs", 70)
	l.RecordQuizScore("bfs", 100) // avg 85, silver
	l.RecordQuizScore("bfs", 0)   // avg 56.7, falls to none

	got := svc.SessionBadges()
	if len(got) != 2 {
		t.Fatalf("badges = %d, want 2", len(got))
	}
	if got[0].Key() != "mastery:bfs:bronze" || got[1].Key() != "mastery:bfs:silver" {
		t.Errorf("keys = %q, %q", got[0].Key(), got[1].Key())
	}
	if got[1].Rarity != RarityEpic {
		t.Errorf("silver rarity = %q, want %q", got[1].Rarity, RarityEpic)
	}
}

func TestStreakMilestones(t *testing.T) {
	svc, _, l := newTestService()
	day := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)

	for i := range 7 {
		l.RecordActivity(day.AddDate(0, 0, i))
	}

	got := svc.SessionBadges()
	if len(got) != 2 {
		t.Fatalf("badges = %d, want 2", len(got))
	}
	if got[0].Key() != "streak:3" || got[1].Key() != "streak:7" {
		t.Errorf("keys = %q, %q", got[0].Key(), got[1].Key())
	}
	if got[1].Rarity != RarityRare {
		t.Errorf("7-day rarity = %q, want %q", got[1].Rarity, RarityRare)
	}
}

func TestRestoredBadgesAreNotReawarded(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewService(repo, &store.BadgesData{
		Earned: map[string]string{"level:2": "2026-01-01T00:00:00Z"},
	})
	l := progress.NewLedger(nil)
	svc.Attach(l)

	_, _ = l.AddXP(500)
	if len(repo.badgeEvents) != 0 {
		t.Errorf("persisted %d events, want 0", len(repo.badgeEvents))
	}
}

func TestResetSession(t *testing.T) {
	svc, _, l := newTestService()
	_, _ = l.AddXP(500)
	if len(svc.SessionBadges()) != 1 {
		t.Fatalf("SessionBadges = %d, want 1", len(svc.SessionBadges()))
	}
	svc.ResetSession()
	if len(svc.SessionBadges()) != 0 {
		t.Error("SessionBadges not cleared")
	}
	if !svc.Has("level:2") {
		t.Error("reset must not forget earned badges")
	}
}

func TestSnapshotData(t *testing.T) {
	svc, repo, l := newTestService()
	repo.counts = map[string]int{"level": 1}
	repo.total = 1
	_, _ = l.AddXP(500)

	snap := svc.SnapshotData(context.Background())
	if snap.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", snap.TotalCount)
	}
	if snap.CountByType["level"] != 1 {
		t.Errorf("CountByType[level] = %d, want 1", snap.CountByType["level"])
	}
	if snap.Earned["level:2"] != "2026-04-01T10:00:00Z" {
		t.Errorf("Earned[level:2] = %q", snap.Earned["level:2"])
	}

	restored := NewService(nil, snap)
	if !restored.Has("level:2") {
		t.Error("restored service lost level:2")
	}
}

func TestSnapshotData_CountsError(t *testing.T) {
	svc, repo, l := newTestService()
	repo.countsErr = errors.New("db closed")
	_, _ = l.AddXP(500)

	snap := svc.SnapshotData(context.Background())
	if snap.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", snap.TotalCount)
	}
}

func TestRarities(t *testing.T) {
	tests := []struct {
		got, want Rarity
	}{
		{StreakRarity(3), RarityCommon},
		{StreakRarity(14), RarityEpic},
		{StreakRarity(30), RarityLegendary},
		{MasteryRarity(progress.MasteryGold), RarityLegendary},
		{CompletionRarity(50), RarityCommon},
		{CompletionRarity(150), RarityEpic},
		{LevelRarity(5), RarityRare},
		{LevelRarity(20), RarityLegendary},
	}
	for i, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("case %d: got %q, want %q", i, tt.got, tt.want)
		}
	}
}
