package monitor

import (
	"fmt"
	"time"

	"github.com/abhisek/algolab/internal/progress"
)

// Limits tune the heuristics.
type Limits struct {
	// MaxXPPerEvent is the largest single award considered normal.
	MaxXPPerEvent int
	// MaxXPPerWindow caps XP earned inside any sliding Window.
	MaxXPPerWindow int
	Window         time.Duration
}

// DefaultLimits returns the limits used by the app.
func DefaultLimits() Limits {
	return Limits{
		MaxXPPerEvent:  1000,
		MaxXPPerWindow: 3000,
		Window:         10 * time.Minute,
	}
}

// Observation is one state transition as the monitor sees it.
type Observation struct {
	At          time.Time
	Source      string
	BeforeXP    int
	AfterXP     int
	BeforeLevel int
	// AfterLevel is the level as reported alongside AfterXP; it is compared
	// against the level derived from AfterXP.
	AfterLevel int
}

// Delta returns the XP change.
func (o Observation) Delta() int { return o.AfterXP - o.BeforeXP }

// CheckInput is what a rule inspects: the observation plus the XP earned
// within the window before it (the observation included).
type CheckInput struct {
	Obs      Observation
	WindowXP int
	Limits   Limits
}

// Rule is a heuristic anomaly check. It returns nil when the input looks
// normal.
type Rule interface {
	Name() string
	Check(in *CheckInput) *Flag
}

// DefaultRules returns rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		&XPRegressionRule{},
		&XPSpikeRule{},
		&LevelMismatchRule{},
		&LevelJumpRule{},
		&XPRateRule{},
	}
}

// RunRules runs every rule and collects the flags in rule order.
func RunRules(rules []Rule, in *CheckInput) []Flag {
	var flags []Flag
	for _, r := range rules {
		if f := r.Check(in); f != nil {
			f.Rule = r.Name()
			f.Observation = in.Obs
			flags = append(flags, *f)
		}
	}
	return flags
}

// XPSpikeRule flags a single award above MaxXPPerEvent.
type XPSpikeRule struct{}

func (r *XPSpikeRule) Name() string { return "xp-spike" }

func (r *XPSpikeRule) Check(in *CheckInput) *Flag {
	if d := in.Obs.Delta(); d > in.Limits.MaxXPPerEvent {
		return &Flag{
			Severity: SeverityCritical,
			Reason:   fmt.Sprintf("single award of %d XP exceeds %d", d, in.Limits.MaxXPPerEvent),
		}
	}
	return nil
}

// LevelJumpRule flags a level increase of more than one in one change.
type LevelJumpRule struct{}

func (r *LevelJumpRule) Name() string { return "level-jump" }

func (r *LevelJumpRule) Check(in *CheckInput) *Flag {
	before := progress.LevelFor(in.Obs.BeforeXP)
	after := progress.LevelFor(in.Obs.AfterXP)
	if after-before > 1 {
		return &Flag{
			Severity: SeverityWarn,
			Reason:   fmt.Sprintf("level jumped from %d to %d in one change", before, after),
		}
	}
	return nil
}

// LevelMismatchRule flags a reported level that disagrees with the level
// derived from XP.
type LevelMismatchRule struct{}

func (r *LevelMismatchRule) Name() string { return "level-mismatch" }

func (r *LevelMismatchRule) Check(in *CheckInput) *Flag {
	if in.Obs.AfterLevel == 0 {
		return nil
	}
	if want := progress.LevelFor(in.Obs.AfterXP); in.Obs.AfterLevel != want {
		return &Flag{
			Severity: SeverityCritical,
			Reason:   fmt.Sprintf("level %d does not match %d XP (expected level %d)", in.Obs.AfterLevel, in.Obs.AfterXP, want),
		}
	}
	return nil
}

// XPRateRule flags more than MaxXPPerWindow XP inside the sliding window.
type XPRateRule struct{}

func (r *XPRateRule) Name() string { return "xp-rate" }

func (r *XPRateRule) Check(in *CheckInput) *Flag {
	if in.WindowXP > in.Limits.MaxXPPerWindow {
		return &Flag{
			Severity: SeverityWarn,
			Reason:   fmt.Sprintf("%d XP earned within %s exceeds %d", in.WindowXP, in.Limits.Window, in.Limits.MaxXPPerWindow),
		}
	}
	return nil
}

// XPRegressionRule flags total XP going down.
type XPRegressionRule struct{}

func (r *XPRegressionRule) Name() string { return "xp-regression" }

func (r *XPRegressionRule) Check(in *CheckInput) *Flag {
	if in.Obs.AfterXP < in.Obs.BeforeXP {
		return &Flag{
			Severity: SeverityCritical,
			Reason:   fmt.Sprintf("total XP decreased from %d to %d", in.Obs.BeforeXP, in.Obs.AfterXP),
		}
	}
	return nil
}
