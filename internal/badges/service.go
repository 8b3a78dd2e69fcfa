// Package badges awards badges for progress milestones: first completions,
// mastery tiers, day streaks, and levels.
package badges

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/store"
)

// Service derives badges from ledger changes and tracks which have been
// earned. It is safe for concurrent use.
type Service struct {
	mu        sync.Mutex
	eventRepo store.EventRepo
	earned    map[string]time.Time
	session   []Badge
	now       func() time.Time
}

// NewService creates a badge service. data restores previously earned
// badges; it may be nil.
func NewService(eventRepo store.EventRepo, data *store.BadgesData) *Service {
	s := &Service{
		eventRepo: eventRepo,
		earned:    make(map[string]time.Time),
		now:       time.Now,
	}
	if data != nil {
		for key, at := range data.Earned {
			t, err := time.Parse(time.RFC3339, at)
			if err != nil {
				slog.Warn("bad badge timestamp in snapshot", "key", key, "error", err)
			}
			s.earned[key] = t
		}
	}
	return s
}

// Attach evaluates every change of l until the returned function is called.
func (s *Service) Attach(l *progress.Ledger) (detach func()) {
	return l.Subscribe(func(c progress.Change) {
		s.Evaluate(context.Background(), c)
	})
}

// Evaluate awards every badge c newly qualifies for and returns them.
func (s *Service) Evaluate(ctx context.Context, c progress.Change) []Badge {
	var candidates []Badge

	if c.Reason == progress.ReasonCompletion && c.FirstCompletion {
		name, xp := describe(c.AlgorithmID)
		candidates = append(candidates, Badge{
			Type:          BadgeCompletion,
			Rarity:        CompletionRarity(xp),
			AlgorithmID:   c.AlgorithmID,
			AlgorithmName: name,
			Tier:          "first",
			Reason:        fmt.Sprintf("Completed %s", name),
		})
	}

	if before, after := c.Before.MasteryOf(c.AlgorithmID), c.After.MasteryOf(c.AlgorithmID); c.AlgorithmID != "" && after > before {
		name, _ := describe(c.AlgorithmID)
		candidates = append(candidates, Badge{
			Type:          BadgeMastery,
			Rarity:        MasteryRarity(after),
			AlgorithmID:   c.AlgorithmID,
			AlgorithmName: name,
			Tier:          after.String(),
			Reason:        fmt.Sprintf("Mastered %s (%s)", name, after.DisplayName()),
		})
	}

	for _, m := range StreakMilestones {
		if c.Before.CurrentStreak < m && c.After.CurrentStreak >= m {
			candidates = append(candidates, Badge{
				Type:   BadgeStreak,
				Rarity: StreakRarity(m),
				Tier:   strconv.Itoa(m),
				Reason: fmt.Sprintf("%d-day streak", m),
			})
		}
	}

	for lvl := c.Before.Level() + 1; lvl <= c.After.Level(); lvl++ {
		candidates = append(candidates, Badge{
			Type:   BadgeLevel,
			Rarity: LevelRarity(lvl),
			Tier:   strconv.Itoa(lvl),
			Reason: fmt.Sprintf("Reached level %d", lvl),
		})
	}

	var awarded []Badge
	s.mu.Lock()
	for _, b := range candidates {
		key := b.Key()
		if _, done := s.earned[key]; done {
			continue
		}
		b.AwardedAt = s.now()
		s.earned[key] = b.AwardedAt
		s.session = append(s.session, b)
		awarded = append(awarded, b)
	}
	s.mu.Unlock()

	for _, b := range awarded {
		s.persist(ctx, b)
	}
	return awarded
}

// Has reports whether the badge with key has been earned.
func (s *Service) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.earned[key]
	return ok
}

// SessionBadges returns badges awarded since the last ResetSession.
func (s *Service) SessionBadges() []Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Badge, len(s.session))
	copy(out, s.session)
	return out
}

// ResetSession clears the session accumulator.
func (s *Service) ResetSession() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// SnapshotData builds the badge state for snapshot persistence.
func (s *Service) SnapshotData(ctx context.Context) *store.BadgesData {
	s.mu.Lock()
	earned := make(map[string]string, len(s.earned))
	for key, at := range s.earned {
		earned[key] = at.UTC().Format(time.RFC3339)
	}
	s.mu.Unlock()

	data := &store.BadgesData{Earned: earned, TotalCount: len(earned)}
	if s.eventRepo != nil {
		counts, total, err := s.eventRepo.BadgeCounts(ctx)
		if err != nil {
			slog.Warn("badge counts unavailable", "error", err)
		} else {
			data.CountByType = maps.Clone(counts)
			data.TotalCount = max(total, len(earned))
		}
	}
	return data
}

func describe(id string) (name string, xp int) {
	if a, ok := algorithms.Lookup(algorithms.ID(id)); ok {
		return a.Name, a.XP
	}
	return id, 0
}

func (s *Service) persist(ctx context.Context, b Badge) {
	if s.eventRepo == nil {
		return
	}
	data := store.BadgeEventData{
		BadgeType: string(b.Type),
		Rarity:    string(b.Rarity),
		Reason:    b.Reason,
	}
	if b.AlgorithmID != "" {
		id := b.AlgorithmID
		data.AlgorithmID = &id
	}
	if err := s.eventRepo.AppendBadgeEvent(ctx, data); err != nil {
		slog.Warn("failed to persist badge", "key", b.Key(), "error", err)
	}
}
