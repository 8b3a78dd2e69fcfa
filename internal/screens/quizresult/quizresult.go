// Package quizresult shows the outcome of a finished quiz.
package quizresult

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/badges"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/quiz"
	"github.com/abhisek/algolab/internal/router"
	"github.com/abhisek/algolab/internal/screen"
	"github.com/abhisek/algolab/internal/ui/components"
	"github.com/abhisek/algolab/internal/ui/layout"
	"github.com/abhisek/algolab/internal/ui/theme"
)

// ResultScreen displays a quiz result.
type ResultScreen struct {
	algorithm *algorithms.Algorithm
	result    quiz.Result
	badges    []badges.Badge
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen.
func New(a *algorithms.Algorithm, res quiz.Result, earned []badges.Badge) *ResultScreen {
	return &ResultScreen{algorithm: a, result: res, badges: earned}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Quiz Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Pop
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	res := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(headline(res.Score)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(s.algorithm.Name))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d/%d        Score: %s        XP: +%s",
		res.Correct, res.Total, components.Percent(res.Score), components.Number(res.XP))
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	mastery := fmt.Sprintf("Mastery: %s", res.Mastery.DisplayName())
	style := center.Foreground(theme.Text)
	if res.Promoted {
		mastery += "  ▲ promoted!"
		style = style.Foreground(theme.Success).Bold(true)
	}
	b.WriteString(style.Render(mastery))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render(nextTierHint(res.Mastery)))
	b.WriteString("\n")

	if len(s.badges) > 0 {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Badges"))
		b.WriteString("\n")
		b.WriteString(layout.Divider(width))
		b.WriteString("\n\n")
		for _, badge := range s.badges {
			b.WriteString(layout.Center(components.BadgeLine(badge), width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func headline(score float64) string {
	switch {
	case score >= progress.GoldThreshold:
		return "Outstanding!"
	case score >= progress.BronzeThreshold:
		return "Quiz complete!"
	default:
		return "Keep practicing!"
	}
}

func nextTierHint(m progress.MasteryLevel) string {
	switch m {
	case progress.MasteryNone:
		return fmt.Sprintf("Average %.0f%% to reach Bronze", progress.BronzeThreshold)
	case progress.MasteryBronze:
		return fmt.Sprintf("Average %.0f%% to reach Silver", progress.SilverThreshold)
	case progress.MasterySilver:
		return fmt.Sprintf("Average %.0f%% to reach Gold", progress.GoldThreshold)
	default:
		return "Top tier reached"
	}
}
