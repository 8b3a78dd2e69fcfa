// Package session wires one learner session together: the progress ledger,
// the anomaly monitor and badge service subscribed to it, the quiz service,
// the event log, and snapshot persistence.
//
// Every ledger change with XP is journaled as an xp event. Monitor flags are
// appended as flag events. Closing the session saves a snapshot of the ledger
// and earned badges.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/badges"
	"github.com/abhisek/algolab/internal/llm"
	"github.com/abhisek/algolab/internal/monitor"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/quiz"
	"github.com/abhisek/algolab/internal/store"
)

// SnapshotVersion is written into every saved snapshot.
const SnapshotVersion = 1

// DefaultKeepSnapshots is how many snapshots survive a prune.
const DefaultKeepSnapshots = 10

// Options configures Open. EventRepo and SnapshotRepo may be nil, in which
// case nothing is persisted.
type Options struct {
	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo
	// Sequence returns the latest event sequence; it stamps saved snapshots.
	Sequence func(ctx context.Context) (int64, error)

	// Provider enables LLM quiz questions. Nil uses the bank only.
	Provider    llm.Provider
	QuizTimeout time.Duration

	Limits        monitor.Limits
	KeepSnapshots int
	Now           func() time.Time
}

// Session is safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	Ledger  *progress.Ledger
	Monitor *monitor.Monitor
	Badges  *badges.Service
	Quiz    *quiz.Service

	events    store.EventRepo
	snapshots store.SnapshotRepo
	sequence  func(ctx context.Context) (int64, error)
	keep      int
	now       func() time.Time
	detach    []func()

	mu    sync.Mutex
	stats stats
}

// Open restores learner state from the latest snapshot and starts a session.
// A snapshot that fails the monitor's checks is still loaded; the flags are
// logged and recorded.
func Open(ctx context.Context, opts Options) (*Session, error) {
	s := &Session{
		ID:        uuid.New(),
		events:    opts.EventRepo,
		snapshots: opts.SnapshotRepo,
		sequence:  opts.Sequence,
		keep:      opts.KeepSnapshots,
		now:       opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.keep <= 0 {
		s.keep = DefaultKeepSnapshots
	}
	s.StartedAt = s.now()

	var data store.SnapshotData
	if s.snapshots != nil {
		snap, err := s.snapshots.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if snap != nil {
			data = snap.Data
		}
	}

	monOpts := []monitor.Option{monitor.WithClock(s.now), monitor.WithSink(s.recordFlag)}
	if opts.Limits != (monitor.Limits{}) {
		monOpts = append(monOpts, monitor.WithLimits(opts.Limits))
	}
	s.Monitor = monitor.New(monOpts...)
	s.Monitor.CheckSnapshot(data.Progress)

	s.Ledger = progress.NewLedger(data.Progress)
	s.Badges = badges.NewService(s.events, data.Badges)

	var gen quiz.Generator
	if opts.Provider != nil {
		gen = quiz.NewLLMGenerator(opts.Provider, quiz.DefaultGeneratorConfig())
	}
	s.Quiz = quiz.NewService(quiz.ServiceConfig{
		Generator: gen,
		Ledger:    s.Ledger,
		Events:    s.events,
		Timeout:   opts.QuizTimeout,
	})

	s.detach = []func(){
		s.Ledger.Subscribe(s.journal),
		s.Monitor.Attach(s.Ledger),
		s.Badges.Attach(s.Ledger),
	}
	return s, nil
}

// journal appends every XP-bearing change to the event log and tallies it.
func (s *Session) journal(c progress.Change) {
	if c.XPDelta <= 0 {
		return
	}
	s.mu.Lock()
	s.stats.xp += c.XPDelta
	s.mu.Unlock()

	if s.events == nil {
		return
	}
	data := store.XPEventData{
		Source:  string(c.Reason),
		Amount:  c.XPDelta,
		TotalXP: c.After.TotalXP,
		Level:   c.After.Level(),
	}
	if c.AlgorithmID != "" {
		id := c.AlgorithmID
		data.AlgorithmID = &id
	}
	if err := s.events.AppendXPEvent(context.Background(), data); err != nil {
		slog.Warn("failed to record xp event", "source", data.Source, "error", err)
	}
}

func (s *Session) recordFlag(f monitor.Flag) {
	s.mu.Lock()
	s.stats.flags++
	s.mu.Unlock()

	if s.events == nil {
		return
	}
	if err := s.events.AppendFlagEvent(context.Background(), monitor.FlagEvent(f)); err != nil {
		slog.Warn("failed to record flag", "rule", f.Rule, "error", err)
	}
}

// TraversalStarted records the start of an autoplay traversal. Repeated
// calls for the same traversal are ignored.
func (s *Session) TraversalStarted(ctx context.Context, v playback.View) {
	s.mu.Lock()
	if s.stats.started == nil {
		s.stats.started = make(map[uuid.UUID]bool)
	}
	if s.stats.started[v.Traversal] {
		s.mu.Unlock()
		return
	}
	s.stats.started[v.Traversal] = true
	s.mu.Unlock()

	s.appendPlayback(ctx, store.PlaybackEventData{
		TraversalID: v.Traversal.String(),
		AlgorithmID: string(v.Algorithm.ID),
		Action:      "start",
		Steps:       v.Total(),
		Speed:       v.Speed.String(),
	})
}

// TraversalCompleted credits a finished traversal: it is logged, the
// algorithm is marked complete with its catalog XP, and today counts toward
// the streak.
func (s *Session) TraversalCompleted(ctx context.Context, c playback.Completion, speed playback.Speed) (progress.Change, error) {
	a := algorithms.Resolve(c.Algorithm)
	s.appendPlayback(ctx, store.PlaybackEventData{
		TraversalID: c.Traversal.String(),
		AlgorithmID: string(a.ID),
		Action:      "complete",
		Steps:       c.Steps,
		Speed:       speed.String(),
	})

	change, err := s.Ledger.CompleteAlgorithm(string(a.ID), a.XP)
	if err != nil {
		return change, fmt.Errorf("complete %s: %w", a.ID, err)
	}
	s.Ledger.RecordActivity(s.now())

	s.mu.Lock()
	s.stats.completions++
	s.mu.Unlock()
	return change, nil
}

func (s *Session) appendPlayback(ctx context.Context, data store.PlaybackEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendPlaybackEvent(ctx, data); err != nil {
		slog.Warn("failed to record playback event", "action", data.Action, "algorithm", data.AlgorithmID, "error", err)
	}
}

// StartQuiz builds a quiz for id.
func (s *Session) StartQuiz(ctx context.Context, id algorithms.ID) *quiz.Attempt {
	return s.Quiz.Start(ctx, id, quiz.DefaultLength)
}

// FinishQuiz records a finished attempt and counts today toward the streak.
func (s *Session) FinishQuiz(ctx context.Context, a *quiz.Attempt) (quiz.Result, error) {
	res, err := s.Quiz.Finish(ctx, a)
	if err != nil {
		return res, err
	}
	if res.Total > 0 {
		s.Ledger.RecordActivity(s.now())
		s.mu.Lock()
		s.stats.quizzes++
		s.mu.Unlock()
	}
	return res, nil
}

// Save writes a snapshot of the ledger and earned badges, then prunes old
// snapshots.
func (s *Session) Save(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	var seq int64
	if s.sequence != nil {
		var err error
		if seq, err = s.sequence(ctx); err != nil {
			return fmt.Errorf("read sequence: %w", err)
		}
	}
	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: s.now(),
		Data: store.SnapshotData{
			Version:  SnapshotVersion,
			Progress: s.Ledger.SnapshotData(),
			Badges:   s.Badges.SnapshotData(ctx),
		},
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := s.snapshots.Prune(ctx, s.keep); err != nil {
		slog.Warn("failed to prune snapshots", "keep", s.keep, "error", err)
	}
	return nil
}

// Close detaches the subscribers and saves a final snapshot.
func (s *Session) Close(ctx context.Context) error {
	for _, d := range s.detach {
		d()
	}
	s.detach = nil
	return s.Save(ctx)
}
