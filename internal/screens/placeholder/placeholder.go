// Package placeholder renders the notice shown in place of a screen whose
// data lives in the SQLite event store when the session runs without one.
package placeholder

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/screen"
	"github.com/abhisek/algolab/internal/ui/layout"
	"github.com/abhisek/algolab/internal/ui/theme"
)

// NoStoreScreen explains that a view needs the event store and how to open it.
type NoStoreScreen struct {
	title string
	needs string
}

var (
	_ screen.Screen          = (*NoStoreScreen)(nil)
	_ screen.KeyHintProvider = (*NoStoreScreen)(nil)
)

// New returns the notice for the view named title. needs says what the
// view would have read from the store, e.g. "earned badges".
func New(title, needs string) *NoStoreScreen {
	return &NoStoreScreen{title: title, needs: needs}
}

func (s *NoStoreScreen) Init() tea.Cmd { return nil }

// Update ignores input; the router handles Esc.
func (s *NoStoreScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *NoStoreScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(strings.ToUpper(s.title)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("No event store is open, so " + s.needs + " cannot be shown."))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Restart with --db <path> or set ALGOLAB_DB."))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *NoStoreScreen) Title() string {
	return s.title
}

func (s *NoStoreScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}
