package components

import (
	"strings"

	"github.com/abhisek/algolab/internal/ui/theme"
)

// KeyButton is a key and label shown in a control strip, such as
// "[space] Play".
type KeyButton struct {
	Key    string
	Label  string
	Active bool
}

// View renders the button.
func (b KeyButton) View() string {
	label := "[" + b.Key + "] " + b.Label
	if b.Active {
		return theme.KeyActive.Render(label)
	}
	return theme.KeyInactive.Render(label)
}

// ControlStrip renders buttons on one line.
func ControlStrip(buttons ...KeyButton) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.View()
	}
	return strings.Join(parts, " ")
}
