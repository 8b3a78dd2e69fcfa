package visualizer

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/router"
	quizscreen "github.com/abhisek/algolab/internal/screens/quiz"
	"github.com/abhisek/algolab/internal/session"
)

func newTestScreen(t *testing.T, id algorithms.ID) (*VisualizerScreen, *playback.ManualClock) {
	t.Helper()
	sess, err := session.Open(context.Background(), session.Options{})
	if err != nil {
		t.Fatal(err)
	}
	clock := playback.NewManualClock()
	s := New(sess, id, Options{
		Scheduler: clock,
		Speed:     playback.SpeedTurbo,
		Rand:      rand.New(rand.NewPCG(7, 11)),
	})
	t.Cleanup(s.Close)
	return s, clock
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// nextCredit drains listener messages until a completion is credited.
func nextCredit(t *testing.T, s *VisualizerScreen) creditedMsg {
	t.Helper()
	for range 4 {
		msg := s.listen()()
		if c, ok := msg.(creditedMsg); ok {
			return c
		}
		s.Update(msg)
	}
	t.Fatal("no completion credited")
	return creditedMsg{}
}

func TestAutoplayCompletionIsCredited(t *testing.T) {
	s, clock := newTestScreen(t, algorithms.BubbleSort)

	s.Update(key("space"))
	if s.view.State != playback.StatePlaying {
		t.Fatalf("state = %v, want playing", s.view.State)
	}

	clock.Advance(time.Hour)

	credited := nextCredit(t, s)
	if credited.Err != nil {
		t.Fatalf("credit error: %v", credited.Err)
	}
	s.Update(credited)

	want := algorithms.Resolve(algorithms.BubbleSort).XP
	if credited.Change.XPDelta != want {
		t.Errorf("XPDelta = %d, want %d", credited.Change.XPDelta, want)
	}
	if !strings.Contains(s.banner.text, "first completion") {
		t.Errorf("banner = %q", s.banner.text)
	}
	if got := s.sess.Ledger.Progress().TotalXP; got != want {
		t.Errorf("TotalXP = %d, want %d", got, want)
	}
	if s.view.State != playback.StateCompleted {
		t.Errorf("state = %v, want completed", s.view.State)
	}
}

func TestManualStepping(t *testing.T) {
	s, clock := newTestScreen(t, algorithms.InsertionSort)

	s.Update(key("m"))
	if !s.view.Manual {
		t.Fatal("manual mode not enabled")
	}
	s.Update(key("space"))
	if clock.Pending() != 0 {
		t.Error("play must be ignored in manual mode")
	}

	s.Update(key("right"))
	s.Update(key("right"))
	if s.view.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", s.view.Cursor)
	}
	s.Update(key("left"))
	if s.view.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.view.Cursor)
	}
}

func TestSpeedKeys(t *testing.T) {
	s, _ := newTestScreen(t, algorithms.BubbleSort)
	s.Update(key("-"))
	if s.view.Speed != playback.SpeedFast {
		t.Errorf("speed = %v, want fast", s.view.Speed)
	}
	s.Update(key("+"))
	s.Update(key("+"))
	if s.view.Speed != playback.SpeedTurbo {
		t.Errorf("speed = %v, want turbo", s.view.Speed)
	}
}

func TestEditInput(t *testing.T) {
	s, _ := newTestScreen(t, algorithms.BubbleSort)

	s.Update(key("e"))
	if !s.CapturesEsc() {
		t.Fatal("editor should capture esc")
	}
	s.editor.Model.SetValue("3, 2, 1")
	s.Update(key("enter"))

	if s.editing {
		t.Fatal("editor still open after a valid submit")
	}
	if got := s.view.Sequence.Input; len(got) != 3 || got[0] != 3 {
		t.Errorf("input = %v, want [3 2 1]", got)
	}
}

func TestEditInput_InvalidKeepsEditor(t *testing.T) {
	s, _ := newTestScreen(t, algorithms.BubbleSort)
	s.Update(key("e"))
	s.editor.Model.SetValue("")
	s.Update(key("enter"))
	if !s.editing {
		t.Error("editor closed on empty input")
	}
	s.Update(key("esc"))
	if s.editing {
		t.Error("esc should cancel editing")
	}
}

func TestTabSwitchesWithinFamily(t *testing.T) {
	s, _ := newTestScreen(t, algorithms.BFS)
	s.Update(key("tab"))
	if s.view.Algorithm.Family != algorithms.FamilyGraph || s.view.Algorithm.ID == algorithms.BFS {
		t.Errorf("switched to %s", s.view.Algorithm.ID)
	}
}

func TestCloseStopsPlayback(t *testing.T) {
	s, clock := newTestScreen(t, algorithms.MergeSort)
	s.Update(key("space"))
	s.Close()
	if clock.Pending() != 0 {
		t.Errorf("pending timers = %d after close", clock.Pending())
	}
	if msg := s.listen()(); msg != nil {
		if _, ok := msg.(changedMsg); !ok {
			t.Errorf("listen after close returned %T", msg)
		}
	}
}

func TestView(t *testing.T) {
	s, _ := newTestScreen(t, algorithms.QuickSort)
	for _, w := range []int{80, 120} {
		view := s.View(w, 30)
		if !strings.Contains(view, "Step 1/") {
			t.Errorf("width %d: view missing step counter", w)
		}
	}
}

// openQuiz presses q on the router and applies the resulting push.
func openQuiz(t *testing.T, r *router.Router) {
	t.Helper()
	cmd := r.Update(key("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("q did not push a screen")
	}
	r.Update(push)
	if _, ok := r.Active().(*quizscreen.QuizScreen); !ok {
		t.Fatalf("active = %T, want quiz", r.Active())
	}
}

func TestQuizPausesPlaybackAndResumeCredits(t *testing.T) {
	s, clock := newTestScreen(t, algorithms.BubbleSort)
	r := router.New(s)

	r.Update(key("space"))
	openQuiz(t, r)

	if s.view.State != playback.StatePaused {
		t.Errorf("state = %v, want paused", s.view.State)
	}
	if clock.Pending() != 0 {
		t.Errorf("pending timers = %d while covered", clock.Pending())
	}
	cursor := s.ctrl.Snapshot().Cursor
	clock.Advance(time.Hour)
	if got := s.ctrl.Snapshot().Cursor; got != cursor {
		t.Errorf("cursor moved from %d to %d while covered", cursor, got)
	}

	if cmd := r.Pop(); cmd == nil {
		t.Error("resume did not re-arm the listener")
	}
	if r.Active() != s {
		t.Fatalf("active = %T after pop", r.Active())
	}

	r.Update(key("space"))
	clock.Advance(time.Hour)
	credited := nextCredit(t, s)
	r.Update(credited)

	want := algorithms.Resolve(algorithms.BubbleSort).XP
	if got := s.sess.Ledger.Progress().TotalXP; got != want {
		t.Errorf("TotalXP = %d, want %d", got, want)
	}
	if !s.sess.Ledger.Progress().Completed[string(algorithms.BubbleSort)] {
		t.Error("completion not recorded")
	}
}

func TestCompletionCreditedWhileCovered(t *testing.T) {
	s, clock := newTestScreen(t, algorithms.BubbleSort)
	r := router.New(s)

	r.Update(key("space"))
	clock.Advance(time.Hour)
	openQuiz(t, r)

	// The covering screen receives and drops the listener's messages.
	for range 4 {
		msg := s.listen()()
		r.Update(msg)
		if _, ok := msg.(creditedMsg); ok {
			break
		}
	}

	want := algorithms.Resolve(algorithms.BubbleSort).XP
	if got := s.sess.Ledger.Progress().TotalXP; got != want {
		t.Errorf("TotalXP = %d, want %d", got, want)
	}

	r.Pop()
	if s.view.State != playback.StateCompleted {
		t.Errorf("state after resume = %v, want completed", s.view.State)
	}
}
