// Package history shows the event log: XP awards and the anomaly flags the
// monitor raised.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/screen"
	"github.com/abhisek/algolab/internal/store"
	"github.com/abhisek/algolab/internal/ui/components"
	"github.com/abhisek/algolab/internal/ui/layout"
	"github.com/abhisek/algolab/internal/ui/theme"
)

// QueryLimit bounds how many events of each kind are loaded.
const QueryLimit = 100

type tab int

const (
	tabXP tab = iota
	tabFlags
)

type historyLoadedMsg struct {
	XP    []store.XPEventRecord
	Flags []store.FlagEventRecord
	Err   error
}

// HistoryScreen displays recent XP awards and flags, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	xp        []store.XPEventRecord
	flags     []store.FlagEventRecord
	tab       tab
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		xp, err := s.eventRepo.QueryXPEvents(ctx, store.QueryOpts{Limit: QueryLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		flags, err := s.eventRepo.QueryFlagEvents(ctx, store.QueryOpts{Limit: QueryLimit})
		if err != nil {
			return historyLoadedMsg{XP: xp}
		}
		return historyLoadedMsg{XP: xp, Flags: flags}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "XP / Flags"},
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) rowCount() int {
	if s.tab == tabFlags {
		return len(s.flags)
	}
	return len(s.xp)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.xp = msg.XP
			s.flags = msg.Flags
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			s.tab = 1 - s.tab
			s.selected = 0
			s.expanded = make(map[int]bool)
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rowCount()-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center(s.renderTabs(), width))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	var lines []string
	switch s.tab {
	case tabXP:
		if len(s.xp) == 0 {
			return b.String() + center.Foreground(theme.TextDim).Italic(true).
				Render("No XP yet. Watch an algorithm to the end!")
		}
		for i, ev := range s.xp {
			lines = append(lines, s.renderXPRow(i, ev)...)
		}
	case tabFlags:
		if len(s.flags) == 0 {
			return b.String() + center.Foreground(theme.TextDim).Italic(true).
				Render("No anomalies flagged")
		}
		for i, ev := range s.flags {
			lines = append(lines, s.renderFlagRow(i, ev)...)
		}
	}

	// Keep the selected row visible.
	maxVisible := max(height-6, 3)
	start := max(0, s.selected-maxVisible+1)
	end := min(len(lines), start+maxVisible)
	for _, line := range lines[start:end] {
		b.WriteString(layout.Center(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs() string {
	labels := []string{fmt.Sprintf("XP (%d)", len(s.xp)), fmt.Sprintf("Flags (%d)", len(s.flags))}
	for i, l := range labels {
		if tab(i) == s.tab {
			labels[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(l)
		} else {
			labels[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(l)
		}
	}
	return strings.Join(labels, "     ")
}

func (s *HistoryScreen) rowStyle(i int) (string, lipgloss.Style) {
	if i == s.selected {
		return "> ", lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return "  ", lipgloss.NewStyle().Foreground(theme.Text)
}

func (s *HistoryScreen) renderXPRow(i int, ev store.XPEventRecord) []string {
	prefix, style := s.rowStyle(i)
	subject := "-"
	if ev.AlgorithmID != nil {
		subject = algorithms.Resolve(algorithms.ID(*ev.AlgorithmID)).Name
	}
	lines := []string{style.Render(fmt.Sprintf("%s%s  %-10s %-24s +%s XP",
		prefix, ev.Timestamp.Format("Jan 02 15:04"), ev.Source, subject, components.Number(ev.Amount)))}
	if s.expanded[i] {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("    total %s XP, level %d, event #%d",
			components.Number(ev.TotalXP), ev.Level, ev.Sequence)))
	}
	return lines
}

func (s *HistoryScreen) renderFlagRow(i int, ev store.FlagEventRecord) []string {
	prefix, style := s.rowStyle(i)
	sev := lipgloss.NewStyle().Foreground(theme.Warning)
	if ev.Severity == "critical" {
		sev = lipgloss.NewStyle().Foreground(theme.Error)
	}
	lines := []string{style.Render(fmt.Sprintf("%s%s  ", prefix, ev.Timestamp.Format("Jan 02 15:04"))) +
		sev.Render(fmt.Sprintf("%-8s", ev.Severity)) + style.Render(" "+ev.Rule)}
	if s.expanded[i] {
		lines = append(lines, theme.Hint.Render("    "+ev.Reason))
	}
	return lines
}
