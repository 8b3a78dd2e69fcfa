package visualizer

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/step"
	"github.com/abhisek/algolab/internal/ui/components"
	"github.com/abhisek/algolab/internal/ui/layout"
	"github.com/abhisek/algolab/internal/ui/theme"
)

const codePanelWidth = 44

func (s *VisualizerScreen) View(width, height int) string {
	v := s.view
	st := v.Step()
	compact := layout.IsCompactWidth(width)

	var sections []string
	sections = append(sections, renderHeading(v.Algorithm, width))

	chartWidth := width - 4
	if !compact {
		chartWidth -= codePanelWidth + 2
	}
	chartHeight := max(height-16, 6)

	chart := theme.Card.Width(chartWidth).Render(
		components.Bars(st, chartWidth-4, chartHeight) + "\n\n" + renderOperation(st, chartWidth-4))
	if compact {
		sections = append(sections, chart)
	} else {
		code := theme.Card.Width(codePanelWidth).Height(lipgloss.Height(chart) - 2).
			Render(renderPseudocode(v.Algorithm.Pseudocode, st.Line, codePanelWidth-4))
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, chart, " ", code))
	}

	sections = append(sections, renderProgress(v, width-4))

	if s.editing {
		sections = append(sections, theme.Body.Render("Input: ")+s.editor.View())
	} else {
		sections = append(sections, renderControls(v))
	}
	// The legend is the first thing dropped on short terminals.
	if !layout.IsCompactHeight(height) {
		sections = append(sections, components.Legend())
	}

	if s.banner.text != "" {
		style := theme.Incorrect
		if s.banner.ok {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		}
		sections = append(sections, style.Render(s.banner.text))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(sections, "\n"))
}

func renderHeading(a *algorithms.Algorithm, width int) string {
	name := theme.Selected.Render(a.Name)
	meta := theme.Hint.Render(fmt.Sprintf("  %s · %s · %d XP", a.Family.DisplayName(), a.Complexity, a.XP))
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Width(max(width-4, 10)).Render(a.Description)
	return name + meta + "\n" + desc
}

func renderOperation(st step.Step, width int) string {
	op := st.Operation
	if st.Result != nil {
		op += "  " + lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render("= "+strconv.FormatFloat(*st.Result, 'f', -1, 64))
	}
	return theme.Body.Width(max(width, 10)).Render(op)
}

func renderPseudocode(lines []string, active *int, width int) string {
	var b strings.Builder
	for i, line := range lines {
		text := fmt.Sprintf("%2d  %s", i+1, line)
		if len(text) > width {
			text = text[:width]
		}
		if active != nil && *active == i {
			b.WriteString(theme.CodeActive.Width(width).Render(text))
		} else {
			b.WriteString(theme.Code.Render(text))
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderProgress(v playback.View, width int) string {
	total := v.Total()
	pct := 0.0
	if total > 1 {
		pct = float64(v.Cursor) / float64(total-1)
	}
	bar := components.NewProgressBar(fmt.Sprintf("Step %d/%d", v.Cursor+1, total), pct, false, width)
	mode := v.State.String()
	if v.Manual {
		mode += ", manual"
	}
	bar.Caption = fmt.Sprintf("%s · %s", mode, v.Speed)
	return bar.View()
}

func renderControls(v playback.View) string {
	playLabel := "Play"
	if v.State == playback.StatePlaying {
		playLabel = "Pause"
	}
	return components.ControlStrip(
		components.KeyButton{Key: "space", Label: playLabel, Active: !v.Manual},
		components.KeyButton{Key: "←", Label: "Back", Active: v.Cursor > 0},
		components.KeyButton{Key: "→", Label: "Next", Active: !v.AtEnd()},
		components.KeyButton{Key: "r", Label: "Reset", Active: true},
		components.KeyButton{Key: "n", Label: "New input", Active: true},
		components.KeyButton{Key: "e", Label: "Edit", Active: true},
		components.KeyButton{Key: "m", Label: "Manual", Active: v.Manual},
	)
}
