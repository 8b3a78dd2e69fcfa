// Package badges is the badge collection screen, built from the persisted
// badge events.
package badges

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/badges"
	"github.com/abhisek/algolab/internal/screen"
	"github.com/abhisek/algolab/internal/store"
	"github.com/abhisek/algolab/internal/ui/components"
	"github.com/abhisek/algolab/internal/ui/layout"
	"github.com/abhisek/algolab/internal/ui/theme"
)

type badgesLoadedMsg struct {
	Records []store.BadgeEventRecord
	Err     error
}

// BadgeScreen displays earned badges by type.
type BadgeScreen struct {
	eventRepo    store.EventRepo
	all          []store.BadgeEventRecord
	selectedType int // index into badges.AllBadgeTypes
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*BadgeScreen)(nil)
var _ screen.KeyHintProvider = (*BadgeScreen)(nil)

// New creates a BadgeScreen.
func New(eventRepo store.EventRepo) *BadgeScreen {
	return &BadgeScreen{eventRepo: eventRepo}
}

func (s *BadgeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.eventRepo.QueryBadgeEvents(context.Background(), store.QueryOpts{})
		return badgesLoadedMsg{Records: records, Err: err}
	}
}

func (s *BadgeScreen) Title() string {
	return "Badges"
}

func (s *BadgeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.all = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		types := badges.AllBadgeTypes()
		switch msg.String() {
		case "tab":
			s.selectedType = (s.selectedType + 1) % len(types)
			s.scrollOffset = 0
		case "shift+tab":
			s.selectedType = (s.selectedType - 1 + len(types)) % len(types)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *BadgeScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading badges...")
	}

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf("\nTotal: %d badges\n", len(s.all))))
	b.WriteString("\n")

	types := badges.AllBadgeTypes()
	tabs := make([]string, len(types))
	for i, t := range types {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t.DisplayName(), s.countByType(t))
		if i == s.selectedType {
			tabs[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label)
		} else {
			tabs[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		}
	}
	b.WriteString(layout.Center(strings.Join(tabs, "     "), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No badges of this type yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, rec := range filtered[start:end] {
		rarity := badges.Rarity(rec.Rarity)
		subject := rec.Reason
		if rec.AlgorithmID != nil {
			subject = algorithms.Resolve(algorithms.ID(*rec.AlgorithmID)).Name
		}
		line := fmt.Sprintf("  %-10s %-30s %s", rarity.DisplayName(), subject, rec.Timestamp.Format("Jan 02, 2006"))
		b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(components.RarityColor(rarity)).Render(line), width))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}
	return b.String()
}

func (s *BadgeScreen) filtered() []store.BadgeEventRecord {
	selected := string(badges.AllBadgeTypes()[s.selectedType])
	var out []store.BadgeEventRecord
	for _, rec := range s.all {
		if rec.BadgeType == selected {
			out = append(out, rec)
		}
	}
	return out
}

func (s *BadgeScreen) countByType(t badges.BadgeType) int {
	n := 0
	for _, rec := range s.all {
		if rec.BadgeType == string(t) {
			n++
		}
	}
	return n
}
