package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/screens/welcome"
	"github.com/abhisek/algolab/internal/ui/components"
	"github.com/abhisek/algolab/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	title := welcome.RenderBanner(cw)
	if compact {
		title = welcome.RenderBanner(0)
	}
	tagline := theme.Hint.Render("watch algorithms think, one step at a time")
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(title + "\n" + tagline)
}

// renderStatsBar renders level progress and streak in a bordered box.
func renderStatsBar(p progress.Progress, cw int) string {
	inner := cw - 4
	bar := components.NewProgressBar(fmt.Sprintf("Lv %d", p.Level()),
		float64(p.XPIntoLevel())/float64(progress.XPPerLevel), false, inner)
	bar.Caption = fmt.Sprintf("%s XP", components.Number(p.TotalXP))

	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("★ %d day streak", p.CurrentStreak))
	done := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("● %d completed", len(p.Completed)))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Padding(0, 1).
		Render(bar.View() + "\n" + lipgloss.PlaceHorizontal(inner, lipgloss.Center, streak+"   "+done))
}

func renderMenu(m components.Menu, cw int) string {
	return theme.Card.Width(cw).Render(m.View())
}

// renderFrame centers content in the available area.
func renderFrame(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
