package components

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/badges"
	"github.com/abhisek/algolab/internal/ui/theme"
)

// RarityColor returns the theme color for a badge rarity.
func RarityColor(r badges.Rarity) color.Color {
	switch r {
	case badges.RarityCommon:
		return theme.Text
	case badges.RarityRare:
		return theme.Secondary
	case badges.RarityEpic:
		return theme.Primary
	case badges.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}

// BadgeLine renders one earned badge, e.g. "🔥 Rare Streak: 7-day streak".
func BadgeLine(b badges.Badge) string {
	return lipgloss.NewStyle().Foreground(RarityColor(b.Rarity)).Render(
		fmt.Sprintf("%s %s %s: %s", b.Type.Icon(), b.Rarity.DisplayName(), b.Type.DisplayName(), b.Reason))
}
