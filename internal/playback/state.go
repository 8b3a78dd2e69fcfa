package playback

import (
	"fmt"
	"strings"
	"time"
)

// State is the autoplay state of a controller.
type State int

const (
	StateIdle      State = iota // Fresh sequence, cursor at 0
	StatePlaying                // Timer armed, advancing
	StatePaused                 // Timer stopped, cursor retained
	StateCompleted              // Autoplay reached the final step
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Speed is a replay speed tier.
type Speed int

const (
	SpeedSlow Speed = iota
	SpeedNormal
	SpeedFast
	SpeedTurbo
)

var speedDelays = [...]time.Duration{
	SpeedSlow:   1200 * time.Millisecond,
	SpeedNormal: 600 * time.Millisecond,
	SpeedFast:   250 * time.Millisecond,
	SpeedTurbo:  80 * time.Millisecond,
}

var speedNames = [...]string{
	SpeedSlow:   "slow",
	SpeedNormal: "normal",
	SpeedFast:   "fast",
	SpeedTurbo:  "turbo",
}

// Speeds returns every tier from slowest to fastest.
func Speeds() []Speed {
	return []Speed{SpeedSlow, SpeedNormal, SpeedFast, SpeedTurbo}
}

// Delay returns the time between two autoplay steps.
func (s Speed) Delay() time.Duration {
	if s < SpeedSlow || s > SpeedTurbo {
		return speedDelays[SpeedNormal]
	}
	return speedDelays[s]
}

func (s Speed) String() string {
	if s < SpeedSlow || s > SpeedTurbo {
		return fmt.Sprintf("Speed(%d)", int(s))
	}
	return speedNames[s]
}

// Faster returns the next faster tier, saturating at turbo.
func (s Speed) Faster() Speed { return min(s+1, SpeedTurbo) }

// Slower returns the next slower tier, saturating at slow.
func (s Speed) Slower() Speed { return max(s-1, SpeedSlow) }

// ParseSpeed parses a tier name such as "fast".
func ParseSpeed(name string) (Speed, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range speedNames {
		if n == name {
			return Speed(i), nil
		}
	}
	return SpeedNormal, fmt.Errorf("playback: unknown speed %q (want slow, normal, fast or turbo)", name)
}
