package catalog

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/router"
	"github.com/abhisek/algolab/internal/screen"
	quizscreen "github.com/abhisek/algolab/internal/screens/quiz"
	"github.com/abhisek/algolab/internal/screens/visualizer"
	"github.com/abhisek/algolab/internal/session"
	"github.com/abhisek/algolab/internal/ui/layout"
	"github.com/abhisek/algolab/internal/ui/theme"
)

// DetailScreen shows one algorithm: description, pseudocode, input limits
// and the learner's record with it.
type DetailScreen struct {
	sess      *session.Session
	algorithm *algorithms.Algorithm
	progress  progress.Progress
	speed     playback.Speed
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)
var _ screen.Resumer = (*DetailScreen)(nil)

func newDetail(sess *session.Session, a *algorithms.Algorithm, p progress.Progress, speed playback.Speed) *DetailScreen {
	return &DetailScreen{sess: sess, algorithm: a, progress: p, speed: speed}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.algorithm.Name }

func (d *DetailScreen) Resume() tea.Cmd {
	if d.sess != nil {
		d.progress = d.sess.Ledger.Progress()
	}
	return nil
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "v":
			return d, router.Push(visualizer.New(d.sess, d.algorithm.ID, visualizer.Options{Speed: d.speed}))
		case "q":
			return d, router.Push(quizscreen.New(d.sess, d.algorithm.ID))
		}
	}
	return d, nil
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Visualize"},
		{Key: "Q", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) View(width, height int) string {
	a := d.algorithm
	contentWidth := min(width-8, 70)

	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder

	state := "Not completed yet"
	if d.progress.Completed[string(a.ID)] {
		state = "Completed"
	}
	b.WriteString(theme.Selected.Render("  " + a.Name))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + state))
	b.WriteString("\n\n")

	if a.Description != "" {
		b.WriteString(valStyle.Width(contentWidth).PaddingLeft(2).Render(a.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render("  Family:      ") + valStyle.Render(a.Family.DisplayName()) + "\n")
	b.WriteString(dimStyle.Render("  Complexity:  ") + valStyle.Render(a.Complexity) + "\n")
	b.WriteString(dimStyle.Render("  Reward:      ") + valStyle.Render(fmt.Sprintf("%d XP per replay", a.XP)) + "\n")
	b.WriteString(dimStyle.Render("  Input:       ") + valStyle.Render(describeLimits(a.Limits)) + "\n\n")

	m := d.progress.Mastery[string(a.ID)]
	b.WriteString(heading.Render("  Mastery"))
	b.WriteString("\n")
	if m == nil || len(m.QuizScores) == 0 {
		b.WriteString(dimStyle.Render("  No quizzes taken"))
	} else {
		b.WriteString(valStyle.Render(fmt.Sprintf("  %s · average %.0f%% over %d quizzes",
			m.Level().DisplayName(), m.Average(), len(m.QuizScores))))
	}
	b.WriteString("\n\n")

	if len(a.Pseudocode) > 0 {
		b.WriteString(heading.Render("  Pseudocode"))
		b.WriteString("\n")
		for _, line := range a.Pseudocode {
			b.WriteString(theme.Code.Render("    " + line))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

func describeLimits(l algorithms.Limits) string {
	s := fmt.Sprintf("%d-%d values in %d..%d", l.MinLen, l.MaxLen, l.MinValue, l.MaxValue)
	if l.MaxTarget > 0 {
		s += fmt.Sprintf(", target %d..%d", l.MinTarget, l.MaxTarget)
	}
	return s
}
