package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Visualizer", Stats{Level: 3, XP: 1250, Streak: 4}, 100)
	assert.Contains(t, h, "algolab")
	assert.Contains(t, h, "Visualizer")
	assert.Contains(t, h, "Lv 3 · 1250 XP")
	assert.Contains(t, h, "★ 4 day")
	assert.Equal(t, 3, lipgloss.Height(h))
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Space", Description: "Play"}, {Key: "Esc", Description: "Back"}}, 80)
	assert.Contains(t, f, "Space")
	assert.Contains(t, f, "Back")
}

func TestRenderFrame_ClipsContent(t *testing.T) {
	content := strings.Repeat("x\n", 50)
	frame := RenderFrame("H", content, "F", 20, 10)
	assert.Equal(t, 10, lipgloss.Height(frame))
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 30))
	assert.True(t, IsTooSmall(100, 23))
	assert.False(t, IsTooSmall(80, 24))
}
