package badges

import "github.com/abhisek/algolab/internal/progress"

// Rarity represents the difficulty tier of a badge.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// StreakMilestones are the day-streak lengths that award a badge.
var StreakMilestones = []int{3, 7, 14, 30}

// StreakRarity returns the rarity for a day-streak milestone.
func StreakRarity(days int) Rarity {
	switch {
	case days >= 30:
		return RarityLegendary
	case days >= 14:
		return RarityEpic
	case days >= 7:
		return RarityRare
	default:
		return RarityCommon
	}
}

// MasteryRarity returns the rarity for reaching a mastery tier.
func MasteryRarity(level progress.MasteryLevel) Rarity {
	switch level {
	case progress.MasteryGold:
		return RarityLegendary
	case progress.MasterySilver:
		return RarityEpic
	case progress.MasteryBronze:
		return RarityRare
	default:
		return RarityCommon
	}
}

// CompletionRarity scales with the XP an algorithm is worth, which tracks
// its difficulty.
func CompletionRarity(xp int) Rarity {
	switch {
	case xp >= 200:
		return RarityLegendary
	case xp >= 150:
		return RarityEpic
	case xp >= 100:
		return RarityRare
	default:
		return RarityCommon
	}
}

// LevelRarity returns the rarity for reaching a level.
func LevelRarity(level int) Rarity {
	switch {
	case level >= 20:
		return RarityLegendary
	case level >= 10:
		return RarityEpic
	case level >= 5:
		return RarityRare
	default:
		return RarityCommon
	}
}
