// Package progress shows the learner's level, streak and per-algorithm
// mastery, plus the totals of the running session.
package progress

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	ledger "github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/screen"
	"github.com/abhisek/algolab/internal/session"
	"github.com/abhisek/algolab/internal/ui/components"
	"github.com/abhisek/algolab/internal/ui/layout"
	"github.com/abhisek/algolab/internal/ui/theme"
)

// ProgressScreen displays the ledger and the session summary.
type ProgressScreen struct {
	sess    *session.Session
	summary session.Summary
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(sess *session.Session) *ProgressScreen {
	return &ProgressScreen{sess: sess, summary: sess.Summary()}
}

func (s *ProgressScreen) Init() tea.Cmd { return nil }

func (s *ProgressScreen) Title() string { return "Progress" }

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "r" {
		s.summary = s.sess.Summary()
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	p := s.summary.Progress
	cw := min(width-8, 72)
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")

	level := components.NewProgressBar(fmt.Sprintf("Level %d", p.Level()),
		float64(p.XPIntoLevel())/float64(ledger.XPPerLevel), false, cw)
	level.Caption = fmt.Sprintf("%s / %s XP", components.Number(p.XPIntoLevel()), components.Number(ledger.XPPerLevel))
	b.WriteString(layout.Center(level.View(), width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Total XP: %s      Streak: %d days (best %d)      Completed: %d/%d",
		components.Number(p.TotalXP), p.CurrentStreak, p.LongestStreak, len(p.Completed), len(algorithms.All()))
	b.WriteString(layout.Center(theme.Body.Render(stats), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(heading.Render("Mastery"), width))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n")
	b.WriteString(layout.Center(renderMasteryTable(p, cw), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(heading.Render("This session"), width))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n")
	sum := s.summary
	line := fmt.Sprintf("%s elapsed · %d replays started · %d completed · %d quizzes · +%s XP",
		formatDuration(sum.Duration), sum.Traversals, sum.Completions, sum.Quizzes, components.Number(sum.XPEarned))
	b.WriteString(layout.Center(dim.Render(line), width))
	b.WriteString("\n")
	for _, badge := range sum.Badges {
		b.WriteString(layout.Center(components.BadgeLine(badge), width))
		b.WriteString("\n")
	}
	if sum.Flags > 0 {
		b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.Warning).
			Render(fmt.Sprintf("%d progress anomalies flagged", sum.Flags)), width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMasteryTable lists every algorithm with a quiz history.
func renderMasteryTable(p ledger.Progress, width int) string {
	var rows []string
	for _, a := range algorithms.All() {
		m := p.Mastery[string(a.ID)]
		if m == nil || len(m.QuizScores) == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("%-22s %-9s %6s  %d quizzes",
			a.Name, m.Level().DisplayName(), components.Percent(m.Average()), len(m.QuizScores)))
	}
	if len(rows) == 0 {
		return theme.Hint.Render("Take a quiz to start earning mastery")
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(strings.Join(rows, "\n"))
}

func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
