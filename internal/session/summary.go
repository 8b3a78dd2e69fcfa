package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/algolab/internal/badges"
	"github.com/abhisek/algolab/internal/progress"
)

type stats struct {
	started     map[uuid.UUID]bool
	completions int
	quizzes     int
	xp          int
	flags       int
}

// Summary describes what happened in a session so far.
type Summary struct {
	Duration    time.Duration
	Traversals  int
	Completions int
	Quizzes     int
	XPEarned    int
	Flags       int
	Badges      []badges.Badge
	Progress    progress.Progress
}

// Summary returns the session totals.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	sum := Summary{
		Duration:    s.now().Sub(s.StartedAt),
		Traversals:  len(s.stats.started),
		Completions: s.stats.completions,
		Quizzes:     s.stats.quizzes,
		XPEarned:    s.stats.xp,
		Flags:       s.stats.flags,
	}
	s.mu.Unlock()

	sum.Badges = s.Badges.SessionBadges()
	sum.Progress = s.Ledger.Progress()
	return sum
}
