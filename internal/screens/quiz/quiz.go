// Package quiz is the quiz screen: it assembles an attempt for one
// algorithm, asks the questions one at a time and records the result.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/quiz"
	"github.com/abhisek/algolab/internal/router"
	"github.com/abhisek/algolab/internal/screen"
	"github.com/abhisek/algolab/internal/screens/quizresult"
	"github.com/abhisek/algolab/internal/session"
	"github.com/abhisek/algolab/internal/ui/components"
	"github.com/abhisek/algolab/internal/ui/layout"
	"github.com/abhisek/algolab/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// QuizScreen implements screen.Screen for one quiz attempt. Leaving before
// the last answer discards the attempt.
type QuizScreen struct {
	sess      *session.Session
	algorithm *algorithms.Algorithm
	attempt   *quiz.Attempt
	choice    components.MultiChoice
	frame     int
	finishing bool
	errMsg    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for id.
func New(sess *session.Session, id algorithms.ID) *QuizScreen {
	return &QuizScreen{sess: sess, algorithm: algorithms.Resolve(id)}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.start(), spinnerTick())
}

func (s *QuizScreen) Title() string {
	return "Quiz · " + s.algorithm.Name
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.attempt == nil || s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.choice.Submitted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-D", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *QuizScreen) start() tea.Cmd {
	id := s.algorithm.ID
	return func() tea.Msg {
		return attemptReadyMsg{Attempt: s.sess.StartQuiz(context.Background(), id)}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if s.attempt != nil && !s.finishing {
			return s, nil
		}
		s.frame++
		return s, spinnerTick()

	case attemptReadyMsg:
		s.attempt = msg.Attempt
		q, ok := s.attempt.Current()
		if !ok {
			s.errMsg = "No questions available for " + s.algorithm.Name
			return s, nil
		}
		s.choice = components.NewMultiChoice(q)
		return s, nil

	case finishedMsg:
		s.finishing = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, router.Replace(quizresult.New(s.algorithm, msg.Result, msg.Badges))

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.attempt == nil || s.errMsg != "" || s.finishing {
		return s, nil
	}

	if s.choice.Submitted {
		switch msg.String() {
		case "enter", "space", " ":
			return s.next()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted {
		if _, err := s.attempt.Answer(s.choice.ChosenIndex); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s, cmd
}

// next moves to the following question, or records the attempt after the
// last one.
func (s *QuizScreen) next() (screen.Screen, tea.Cmd) {
	if q, ok := s.attempt.Current(); ok {
		s.choice = components.NewMultiChoice(q)
		return s, nil
	}
	s.finishing = true
	return s, tea.Batch(s.finish(), spinnerTick())
}

func (s *QuizScreen) finish() tea.Cmd {
	attempt := s.attempt
	return func() tea.Msg {
		before := len(s.sess.Badges.SessionBadges())
		res, err := s.sess.FinishQuiz(context.Background(), attempt)
		return finishedMsg{Result: res, Badges: s.sess.Badges.SessionBadges()[before:], Err: err}
	}
}

func (s *QuizScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case s.attempt == nil:
		return center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\n  %s Preparing questions...", spinnerFrames[s.frame%len(spinnerFrames)]))
	case s.finishing:
		return center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\n  %s Saving results...", spinnerFrames[s.frame%len(spinnerFrames)]))
	}

	var b strings.Builder
	total := len(s.attempt.Questions)
	num := s.attempt.Index()
	if !s.choice.Submitted {
		num++
	}

	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render("  " + s.algorithm.Name)
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d", num, total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), s.attempt.Correct()))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.choice.Question.Source == quiz.SourceLLM {
		b.WriteString(theme.Hint.Render("  generated question"))
		b.WriteString("\n\n")
	}

	cw := min(width-8, 72)
	body := s.choice.View(cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(body)))
	return b.String()
}
