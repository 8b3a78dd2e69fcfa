package placeholder

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestNoStoreScreen_ViewNamesViewAndRemedy(t *testing.T) {
	s := New("Badges", "earned badges")

	out := s.View(100, 20)
	for _, want := range []string{"BADGES", "earned badges", "--db <path>", "ALGOLAB_DB"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if s.Title() != "Badges" {
		t.Errorf("Title() = %q", s.Title())
	}
}

func TestNoStoreScreen_IgnoresInput(t *testing.T) {
	s := New("History", "the XP and anomaly history")
	next, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if next != s || cmd != nil {
		t.Errorf("Update returned (%T, %v), want unchanged screen and nil cmd", next, cmd)
	}
	if hints := s.KeyHints(); len(hints) != 1 || hints[0].Key != "Esc" {
		t.Errorf("KeyHints() = %v", hints)
	}
}
