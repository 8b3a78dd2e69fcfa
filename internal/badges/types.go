package badges

// BadgeType identifies the category of achievement.
type BadgeType string

const (
	BadgeMastery    BadgeType = "mastery"
	BadgeCompletion BadgeType = "completion"
	BadgeStreak     BadgeType = "streak"
	BadgeLevel      BadgeType = "level"
)

// AllBadgeTypes returns all badge types in display order.
func AllBadgeTypes() []BadgeType {
	return []BadgeType{BadgeMastery, BadgeCompletion, BadgeStreak, BadgeLevel}
}

// DisplayName returns a human-readable label for the badge type.
func (t BadgeType) DisplayName() string {
	switch t {
	case BadgeMastery:
		return "Mastery"
	case BadgeCompletion:
		return "Completion"
	case BadgeStreak:
		return "Streak"
	case BadgeLevel:
		return "Level"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the badge type.
func (t BadgeType) Icon() string {
	switch t {
	case BadgeMastery:
		return "💎"
	case BadgeCompletion:
		return "✔"
	case BadgeStreak:
		return "🔥"
	case BadgeLevel:
		return "⬆"
	default:
		return "✦"
	}
}
