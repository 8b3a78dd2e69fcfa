package components

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/step"
	"github.com/abhisek/algolab/internal/ui/theme"
)

// Role is how a bar is highlighted in a step.
type Role int

const (
	RoleNone Role = iota
	RoleVisited
	RoleSorted
	RoleCurrent
	RoleComparing
	RoleSwapping
)

// RoleOf returns the strongest role index i plays in s.
func RoleOf(s step.Step, i int) Role {
	switch {
	case s.Swapping.Has(i):
		return RoleSwapping
	case s.Comparing.Has(i):
		return RoleComparing
	case s.CurrentIndex != nil && *s.CurrentIndex == i:
		return RoleCurrent
	case s.Sorted.Has(i):
		return RoleSorted
	case s.Visited.Has(i):
		return RoleVisited
	default:
		return RoleNone
	}
}

func (r Role) color() color.Color {
	switch r {
	case RoleSwapping:
		return theme.BarSwapping
	case RoleComparing:
		return theme.BarComparing
	case RoleCurrent:
		return theme.BarCurrent
	case RoleSorted:
		return theme.BarSorted
	case RoleVisited:
		return theme.BarVisited
	default:
		return theme.BarDefault
	}
}

// barBlocks are eighth-height partial blocks, index = eighths filled.
var barBlocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Bars renders s.Array as a vertical bar chart with a value row and an
// index row underneath. Heights scale to the largest value; every non-zero
// value gets at least a sliver.
func Bars(s step.Step, width, height int) string {
	n := len(s.Array)
	if n == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("(empty)")
	}

	colWidth := max(min((width+1)/n-1, 4), 2)
	chartHeight := max(height-2, 1)

	peak := 1
	for _, v := range s.Array {
		peak = max(peak, v)
	}

	// Heights in eighths of a row.
	eighths := make([]int, n)
	for i, v := range s.Array {
		e := v * chartHeight * 8 / peak
		if v > 0 && e == 0 {
			e = 1
		}
		eighths[i] = max(e, 0)
	}

	styles := make([]lipgloss.Style, n)
	for i := range s.Array {
		styles[i] = lipgloss.NewStyle().Foreground(RoleOf(s, i).color())
	}

	var b strings.Builder
	for row := chartHeight - 1; row >= 0; row-- {
		for i := range s.Array {
			fill := min(max(eighths[i]-row*8, 0), 8)
			b.WriteString(styles[i].Render(strings.Repeat(barBlocks[fill], colWidth)))
			if i < n-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(labelRow(s.Array, colWidth, styles))
	b.WriteByte('\n')
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	dims := make([]lipgloss.Style, n)
	for i := range dims {
		dims[i] = dim
	}
	b.WriteString(labelRow(idx, colWidth, dims))
	return b.String()
}

func labelRow(vals []int, colWidth int, styles []lipgloss.Style) string {
	cells := make([]string, len(vals))
	for i, v := range vals {
		label := strconv.Itoa(v)
		if len(label) > colWidth {
			label = label[len(label)-colWidth:]
		}
		cells[i] = styles[i].Render(lipgloss.PlaceHorizontal(colWidth, lipgloss.Center, label))
	}
	return strings.Join(cells, " ")
}

// Legend renders the color key for Bars.
func Legend() string {
	entries := []struct {
		role  Role
		label string
	}{
		{RoleComparing, "comparing"},
		{RoleSwapping, "swapping"},
		{RoleCurrent, "current"},
		{RoleSorted, "sorted"},
		{RoleVisited, "visited"},
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = lipgloss.NewStyle().Foreground(e.role.color()).Render("█ " + e.label)
	}
	return strings.Join(parts, "  ")
}
