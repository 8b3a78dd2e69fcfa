// Package monitor heuristically flags anomalous XP and level changes.
//
// The monitor only reports. It never blocks or reverts a change; flags are
// logged and handed to an optional sink, which the app uses to append them
// to the event log.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/store"
)

// Severity ranks a flag.
type Severity string

const (
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

// Flag is one anomaly raised by a rule.
type Flag struct {
	Rule        string
	Severity    Severity
	Reason      string
	Observation Observation
}

// Monitor keeps a sliding window of recent XP awards and runs the rules on
// every observation. It is safe for concurrent use.
type Monitor struct {
	mu     sync.Mutex
	rules  []Rule
	limits Limits
	recent []Observation
	now    func() time.Time
	sink   func(Flag)
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLimits overrides DefaultLimits.
func WithLimits(l Limits) Option { return func(m *Monitor) { m.limits = l } }

// WithRules overrides DefaultRules.
func WithRules(rules ...Rule) Option { return func(m *Monitor) { m.rules = rules } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(m *Monitor) { m.now = now } }

// WithSink receives every flag after it is logged.
func WithSink(fn func(Flag)) Option { return func(m *Monitor) { m.sink = fn } }

// New creates a monitor.
func New(opts ...Option) *Monitor {
	m := &Monitor{
		rules:  DefaultRules(),
		limits: DefaultLimits(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Observe runs the rules on obs and returns the flags it raised.
func (m *Monitor) Observe(obs Observation) []Flag {
	if obs.At.IsZero() {
		obs.At = m.now()
	}

	m.mu.Lock()
	cutoff := obs.At.Add(-m.limits.Window)
	kept := m.recent[:0]
	for _, o := range m.recent {
		if o.At.After(cutoff) {
			kept = append(kept, o)
		}
	}
	m.recent = append(kept, obs)
	windowXP := 0
	for _, o := range m.recent {
		if d := o.Delta(); d > 0 {
			windowXP += d
		}
	}
	in := &CheckInput{Obs: obs, WindowXP: windowXP, Limits: m.limits}
	flags := RunRules(m.rules, in)
	sink := m.sink
	m.mu.Unlock()

	for _, f := range flags {
		level := slog.LevelWarn
		if f.Severity == SeverityCritical {
			level = slog.LevelError
		}
		slog.Log(context.Background(), level, "progress anomaly",
			"rule", f.Rule,
			"severity", string(f.Severity),
			"reason", f.Reason,
			"source", obs.Source,
			"delta", obs.Delta(),
		)
		if sink != nil {
			sink(f)
		}
	}
	return flags
}

// ObserveChange observes a ledger change.
func (m *Monitor) ObserveChange(c progress.Change) []Flag {
	return m.Observe(Observation{
		Source:      string(c.Reason),
		BeforeXP:    c.Before.TotalXP,
		AfterXP:     c.After.TotalXP,
		BeforeLevel: c.Before.Level(),
		AfterLevel:  c.After.Level(),
	})
}

// Attach observes every change of l until the returned function is called.
func (m *Monitor) Attach(l *progress.Ledger) (detach func()) {
	return l.Subscribe(func(c progress.Change) {
		if c.XPDelta != 0 {
			m.ObserveChange(c)
		}
	})
}

// CheckSnapshot inspects persisted progress before it is loaded. A stored
// level that disagrees with its XP, or negative totals, indicate tampering.
func (m *Monitor) CheckSnapshot(data *store.ProgressData) []Flag {
	if data == nil {
		return nil
	}
	return m.Observe(Observation{
		Source:      "snapshot",
		BeforeXP:    max(data.TotalXP, 0),
		AfterXP:     data.TotalXP,
		BeforeLevel: data.Level,
		AfterLevel:  data.Level,
	})
}

// FlagEvent converts a flag into its persisted form.
func FlagEvent(f Flag) store.FlagEventData {
	return store.FlagEventData{
		Rule:     f.Rule,
		Severity: string(f.Severity),
		Reason:   f.Reason,
		Delta:    f.Observation.Delta(),
		TotalXP:  f.Observation.AfterXP,
		Level:    f.Observation.AfterLevel,
	}
}
