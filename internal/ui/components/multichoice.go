package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/quiz"
	"github.com/abhisek/algolab/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector for one quiz question. Choices
// are picked with the arrow keys and enter, or directly with a-d / 1-4.
type MultiChoice struct {
	Question    quiz.Question
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q quiz.Question) MultiChoice {
	return MultiChoice{Question: q, ChosenIndex: -1}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = max(m.Selected-1, 0)
	case "down", "j":
		m.Selected = min(m.Selected+1, len(m.Question.Choices)-1)
	case "enter":
		m.submit(m.Selected)
	default:
		if i, ok := shortcut(key); ok && i < len(m.Question.Choices) {
			m.submit(i)
		}
	}
	return m, nil
}

func shortcut(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch c := key[0]; {
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	}
	return 0, false
}

func (m *MultiChoice) submit(i int) {
	m.Selected = i
	m.Submitted = true
	m.ChosenIndex = i
}

// View renders the question, its choices and, once submitted, the
// explanation.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(m.Question.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Question.Choices {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, choiceLabels[i], opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.Question.Answer:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}

	if m.Submitted {
		b.WriteByte('\n')
		if m.IsCorrect() {
			b.WriteString(theme.Correct.Render("✓ Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ Not quite."))
		}
		b.WriteByte('\n')
		b.WriteString(theme.Hint.Width(width).Render(m.Question.Explanation))
	}
	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Question.Correct(m.ChosenIndex)
}
