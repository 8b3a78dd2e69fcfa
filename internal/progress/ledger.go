// Package progress owns the learner's XP, level, streak, completions, and
// quiz history.
//
// A Ledger is the single state owner: its update methods are the only way
// to change progress, and each one hands subscribers a Change describing
// the before and after state. Level is always derived from total XP.
package progress

import (
	"errors"
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/algolab/internal/store"
)

// XPPerLevel is the XP needed to advance one level.
const XPPerLevel = 500

// ErrNegativeXP is returned when an award would decrease total XP.
var ErrNegativeXP = errors.New("progress: xp amount must not be negative")

// LevelFor returns the level for a total XP: floor(xp/500)+1.
func LevelFor(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return totalXP/XPPerLevel + 1
}

const dayLayout = "2006-01-02"

// Progress is a read-only copy of the learner's state.
type Progress struct {
	TotalXP       int
	CurrentStreak int
	LongestStreak int
	LastActiveDay string // YYYY-MM-DD, local calendar
	Completed     map[string]bool
	Mastery       map[string]*AlgorithmMastery
}

// Level is derived from TotalXP.
func (p Progress) Level() int { return LevelFor(p.TotalXP) }

// XPIntoLevel returns XP earned within the current level.
func (p Progress) XPIntoLevel() int { return p.TotalXP % XPPerLevel }

// CompletedIDs returns completed algorithm ids in sorted order.
func (p Progress) CompletedIDs() []string {
	return slices.Sorted(maps.Keys(p.Completed))
}

// MasteryOf returns the derived mastery level for an algorithm.
func (p Progress) MasteryOf(id string) MasteryLevel {
	return p.Mastery[id].Level()
}

func (p Progress) clone() Progress {
	out := p
	out.Completed = maps.Clone(p.Completed)
	if out.Completed == nil {
		out.Completed = make(map[string]bool)
	}
	out.Mastery = make(map[string]*AlgorithmMastery, len(p.Mastery))
	for id, m := range p.Mastery {
		out.Mastery[id] = &AlgorithmMastery{QuizScores: slices.Clone(m.QuizScores)}
	}
	return out
}

// Reason names the mutation that produced a Change.
type Reason string

const (
	ReasonXP         Reason = "xp"
	ReasonCompletion Reason = "completion"
	ReasonQuiz       Reason = "quiz"
	ReasonActivity   Reason = "activity"
)

// Change describes one ledger mutation.
type Change struct {
	Reason      Reason
	AlgorithmID string
	XPDelta     int
	Before      Progress
	After       Progress

	// FirstCompletion is set when CompleteAlgorithm added a new id.
	FirstCompletion bool
}

// LevelUp reports whether the change crossed a level boundary.
func (c Change) LevelUp() bool { return c.After.Level() > c.Before.Level() }

// MasteryChanged reports whether the algorithm's mastery level moved.
func (c Change) MasteryChanged() bool {
	return c.AlgorithmID != "" && c.Before.MasteryOf(c.AlgorithmID) != c.After.MasteryOf(c.AlgorithmID)
}

// StreakExtended reports whether the current streak grew.
func (c Change) StreakExtended() bool { return c.After.CurrentStreak > c.Before.CurrentStreak }

type subscriber struct {
	id int
	fn func(Change)
}

// Ledger owns Progress. It is safe for concurrent use; subscribers run
// outside the lock, in registration order.
type Ledger struct {
	mu     sync.Mutex
	p      Progress
	subs   []subscriber
	nextID int
}

// NewLedger restores a ledger from snapshot data. A nil snapshot starts
// fresh. A stored level is ignored; it is always recomputed from XP.
func NewLedger(data *store.ProgressData) *Ledger {
	l := &Ledger{p: Progress{
		Completed: make(map[string]bool),
		Mastery:   make(map[string]*AlgorithmMastery),
	}}
	if data == nil {
		return l
	}
	l.p.TotalXP = max(data.TotalXP, 0)
	l.p.CurrentStreak = data.CurrentStreak
	l.p.LongestStreak = max(data.LongestStreak, data.CurrentStreak)
	l.p.LastActiveDay = data.LastActiveDay
	for _, id := range data.Completed {
		l.p.Completed[id] = true
	}
	for id, m := range data.Mastery {
		if m == nil {
			continue
		}
		l.p.Mastery[id] = &AlgorithmMastery{QuizScores: slices.Clone(m.QuizScores)}
	}
	return l
}

// Progress returns a copy of the current state.
func (l *Ledger) Progress() Progress {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.clone()
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes it.
func (l *Ledger) Subscribe(fn func(Change)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscriber{id: id, fn: fn})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.subs = slices.DeleteFunc(l.subs, func(s subscriber) bool { return s.id == id })
	}
}

// AddXP adds a non-negative amount of XP.
func (l *Ledger) AddXP(amount int) (Change, error) {
	return l.Award(ReasonXP, "", amount)
}

// Award adds XP attributed to reason and, optionally, an algorithm.
func (l *Ledger) Award(reason Reason, algorithmID string, amount int) (Change, error) {
	if amount < 0 {
		return Change{}, ErrNegativeXP
	}
	return l.apply(reason, algorithmID, func(p *Progress) {
		p.TotalXP = addXP(p.TotalXP, amount)
	}), nil
}

// CompleteAlgorithm marks id completed and adds xp. Completing an id again
// keeps the set unchanged but still adds the XP.
func (l *Ledger) CompleteAlgorithm(id string, xp int) (Change, error) {
	if xp < 0 {
		return Change{}, ErrNegativeXP
	}
	return l.apply(ReasonCompletion, id, func(p *Progress) {
		p.Completed[id] = true
		p.TotalXP = addXP(p.TotalXP, xp)
	}), nil
}

// addXP saturates at math.MaxInt so total XP never wraps.
func addXP(total, amount int) int {
	if amount > math.MaxInt-total {
		return math.MaxInt
	}
	return total + amount
}

// RecordQuizScore appends a score (clamped to 0-100, NaN counts as 0) to
// id's history.
func (l *Ledger) RecordQuizScore(id string, score float64) Change {
	if math.IsNaN(score) {
		score = 0
	}
	score = max(0, min(score, 100))
	return l.apply(ReasonQuiz, id, func(p *Progress) {
		m := p.Mastery[id]
		if m == nil {
			m = &AlgorithmMastery{}
			p.Mastery[id] = m
		}
		m.QuizScores = append(m.QuizScores, score)
	})
}

// RecordActivity counts day toward the streak. The same calendar day twice
// is a no-op; the day after the last active day extends the streak; any
// other day restarts it at 1.
func (l *Ledger) RecordActivity(day time.Time) Change {
	today := day.Format(dayLayout)
	return l.apply(ReasonActivity, "", func(p *Progress) {
		switch p.LastActiveDay {
		case today:
			return
		case day.AddDate(0, 0, -1).Format(dayLayout):
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
		p.LastActiveDay = today
		p.LongestStreak = max(p.LongestStreak, p.CurrentStreak)
	})
}

// SnapshotData builds the persisted form of the ledger.
func (l *Ledger) SnapshotData() *store.ProgressData {
	l.mu.Lock()
	defer l.mu.Unlock()
	data := &store.ProgressData{
		TotalXP:       l.p.TotalXP,
		Level:         l.p.Level(),
		CurrentStreak: l.p.CurrentStreak,
		LongestStreak: l.p.LongestStreak,
		LastActiveDay: l.p.LastActiveDay,
		Completed:     l.p.CompletedIDs(),
		Mastery:       make(map[string]*store.MasteryData, len(l.p.Mastery)),
	}
	for id, m := range l.p.Mastery {
		data.Mastery[id] = &store.MasteryData{QuizScores: slices.Clone(m.QuizScores)}
	}
	return data
}

func (l *Ledger) apply(reason Reason, algorithmID string, mutate func(p *Progress)) Change {
	l.mu.Lock()
	before := l.p.clone()
	mutate(&l.p)
	change := Change{
		Reason:      reason,
		AlgorithmID: algorithmID,
		XPDelta:     l.p.TotalXP - before.TotalXP,
		Before:      before,
		After:       l.p.clone(),
	}
	if reason == ReasonCompletion {
		change.FirstCompletion = !before.Completed[algorithmID]
	}
	subs := slices.Clone(l.subs)
	l.mu.Unlock()

	for _, s := range subs {
		s.fn(change)
	}
	return change
}
