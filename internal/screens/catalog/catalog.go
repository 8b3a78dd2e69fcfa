// Package catalog lists the algorithms by family with the learner's
// completion and mastery state.
package catalog

import (
	"fmt"
	"image/color"
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

type rowKind int

const (
	rowFamilyHeader rowKind = iota
	rowAlgorithm
)

type row struct {
	kind      rowKind
	family    algorithms.Family
	algorithm *algorithms.Algorithm
}

// CatalogScreen displays the algorithm catalog organized by family.
type CatalogScreen struct {
	sess         *session.Session
	speed        playback.Speed
	rows         []row
	cursor       int
	scrollOffset int
	progress     progress.Progress
}

var _ screen.Screen = (*CatalogScreen)(nil)
var _ screen.KeyHintProvider = (*CatalogScreen)(nil)
var _ screen.Resumer = (*CatalogScreen)(nil)

// New creates a CatalogScreen. Visualizers opened from it start at speed.
func New(sess *session.Session, speed playback.Speed) *CatalogScreen {
	var rows []row
	for _, f := range algorithms.AllFamilies() {
		rows = append(rows, row{kind: rowFamilyHeader, family: f})
		for _, a := range algorithms.ByFamily(f) {
			rows = append(rows, row{kind: rowAlgorithm, family: f, algorithm: a})
		}
	}

	s := &CatalogScreen{sess: sess, speed: speed, rows: rows}
	s.refresh()

	for i, r := range s.rows {
		if r.kind == rowAlgorithm {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *CatalogScreen) refresh() {
	if s.sess != nil {
		s.progress = s.sess.Ledger.Progress()
	}
}

func (s *CatalogScreen) Init() tea.Cmd {
	return nil
}

// Resume picks up progress earned on the screens above.
func (s *CatalogScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *CatalogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.jumpFamily(1)
		case "shift+tab":
			s.jumpFamily(-1)
		case "enter":
			if a := s.Selected(); a != nil {
				return s, router.Push(newDetail(s.sess, a, s.progress, s.speed))
			}
		case "v":
			if a := s.Selected(); a != nil {
				return s, router.Push(visualizer.New(s.sess, a.ID, visualizer.Options{Speed: s.speed}))
			}
		case "q":
			if a := s.Selected(); a != nil {
				return s, router.Push(quizscreen.New(s.sess, a.ID))
			}
		}
	}
	return s, nil
}

// Selected returns the algorithm under the cursor.
func (s *CatalogScreen) Selected() *algorithms.Algorithm {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	return s.rows[s.cursor].algorithm
}

func (s *CatalogScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowFamilyHeader:
			lines = append(lines, renderFamilyHeader(r.family, width))
		case rowAlgorithm:
			lines = append(lines, s.renderAlgorithmRow(r.algorithm, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *CatalogScreen) Title() string {
	return "Algorithms"
}

func (s *CatalogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Family"},
		{Key: "Enter", Description: "Details"},
		{Key: "V", Description: "Visualize"},
		{Key: "Q", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping family headers.
func (s *CatalogScreen) moveCursor(delta int) {
	for next := s.cursor + delta; next >= 0 && next < len(s.rows); next += delta {
		if s.rows[next].kind == rowAlgorithm {
			s.cursor = next
			return
		}
	}
}

// jumpFamily moves the cursor to the first algorithm of the next or
// previous family, wrapping around.
func (s *CatalogScreen) jumpFamily(dir int) {
	families := algorithms.AllFamilies()
	cur := 0
	for i, f := range families {
		if f == s.rows[s.cursor].family {
			cur = i
		}
	}
	target := families[(cur+dir+len(families))%len(families)]
	for i, r := range s.rows {
		if r.kind == rowAlgorithm && r.family == target {
			s.cursor = i
			return
		}
	}
}

// adjustScroll keeps the cursor and its family header visible.
func (s *CatalogScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowFamilyHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func renderFamilyHeader(f algorithms.Family, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(f.DisplayName()))
}

func (s *CatalogScreen) renderAlgorithmRow(a *algorithms.Algorithm, selected bool, width int) string {
	done := s.progress.Completed[string(a.ID)]
	mastery := s.progress.MasteryOf(string(a.ID))

	icon := "○"
	if done {
		icon = "●"
	}

	const complexityWidth = 14
	const masteryWidth = 9
	nameWidth := max(width-4-3-complexityWidth-masteryWidth-6, 10)
	name := a.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	masteryStyle := lipgloss.NewStyle().Foreground(masteryColor(mastery))
	switch {
	case selected:
		nameStyle = theme.Selected
		dimStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case done:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		icon,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		dimStyle.Render(fmt.Sprintf("%-*s", complexityWidth, a.Complexity)),
		masteryStyle.Render(fmt.Sprintf("%*s", masteryWidth, mastery.DisplayName())),
	)
}

func masteryColor(m progress.MasteryLevel) color.Color {
	switch m {
	case progress.MasteryGold:
		return theme.Accent
	case progress.MasterySilver:
		return theme.Text
	case progress.MasteryBronze:
		return theme.Warning
	default:
		return theme.TextDim
	}
}
