package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/ui/theme"
)

// MaxArrayLen bounds how many numbers ArrayInput accepts.
const MaxArrayLen = 20

// ErrEmptyArray is returned by ParseArray for blank input.
var ErrEmptyArray = errors.New("enter at least one number")

// ArrayInput wraps bubbles/textinput for entering a list of integers such
// as "5, 3, 1". Only digits, separators and minus signs are accepted.
type ArrayInput struct {
	Model textinput.Model
	err   error
}

// NewArrayInput creates a focused input prefilled with initial.
func NewArrayInput(initial []int) ArrayInput {
	ti := textinput.New()
	ti.Placeholder = "5, 3, 8, 1"
	ti.Prompt = "› "
	ti.CharLimit = MaxArrayLen * 4
	ti.SetValue(FormatArray(initial))
	ti.Focus()
	return ArrayInput{Model: ti}
}

// Update handles messages.
func (t ArrayInput) Update(msg tea.Msg) (ArrayInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if key := kmsg.String(); len(key) == 1 && !allowed(key[0]) {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	t.err = nil
	return t, cmd
}

func allowed(c byte) bool {
	return (c >= '0' && c <= '9') || c == ',' || c == ' ' || c == '-'
}

// Submit parses the current value. The parse error, if any, is shown under
// the input until the next edit.
func (t *ArrayInput) Submit() ([]int, error) {
	vals, err := ParseArray(t.Model.Value())
	t.err = err
	return vals, err
}

// View renders the input and the last parse error.
func (t ArrayInput) View() string {
	view := t.Model.View()
	if t.err != nil {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(t.err.Error())
	}
	return view
}

// ParseArray parses comma or space separated integers. At most MaxArrayLen
// numbers are allowed.
func ParseArray(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, ErrEmptyArray
	}
	if len(fields) > MaxArrayLen {
		return nil, fmt.Errorf("at most %d numbers", MaxArrayLen)
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		out[i] = v
	}
	return out, nil
}

// FormatArray renders vals the way ParseArray reads them.
func FormatArray(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
