package badges

import (
	"fmt"
	"time"
)

// Badge represents a single badge earned.
type Badge struct {
	Type          BadgeType
	Rarity        Rarity
	AlgorithmID   string // empty for streak/level badges
	AlgorithmName string
	Tier          string // mastery tier, streak days, or level
	Reason        string // e.g. "Mastered Merge Sort (Gold)"
	AwardedAt     time.Time
}

// Key identifies a badge uniquely; a key is awarded at most once.
func (b Badge) Key() string {
	if b.AlgorithmID != "" {
		return fmt.Sprintf("%s:%s:%s", b.Type, b.AlgorithmID, b.Tier)
	}
	return fmt.Sprintf("%s:%s", b.Type, b.Tier)
}
