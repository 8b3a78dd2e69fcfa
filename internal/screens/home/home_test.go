package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/router"
	"github.com/abhisek/algolab/internal/screens/catalog"
	"github.com/abhisek/algolab/internal/screens/placeholder"
	"github.com/abhisek/algolab/internal/session"
)

func newTestHome(t *testing.T) (*HomeScreen, *session.Session) {
	t.Helper()
	sess, err := session.Open(context.Background(), session.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return New(sess, nil, playback.SpeedNormal), sess
}

func TestHome_EnterOpensCatalog(t *testing.T) {
	h, _ := newTestHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*catalog.CatalogScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}

func TestHome_HistoryWithoutStore(t *testing.T) {
	h, _ := newTestHome(t)
	for range 5 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if h.menu.Items[h.menu.Selected].Label != "HISTORY" {
		t.Fatalf("selected %q", h.menu.Items[h.menu.Selected].Label)
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push := cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*placeholder.NoStoreScreen); !ok {
		t.Errorf("pushed %T, want placeholder", push.Screen)
	}
}

func TestHome_ResumeRefreshesStats(t *testing.T) {
	h, sess := newTestHome(t)
	if _, err := sess.Ledger.AddXP(600); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(h.View(120, 40), "Lv 2") {
		t.Fatal("stats refreshed before Resume")
	}
	h.Resume()
	if !strings.Contains(h.View(120, 40), "Lv 2") {
		t.Error("Resume did not refresh the level")
	}
}

func TestSuggestQuiz(t *testing.T) {
	first := algorithms.All()[0].ID
	if got := SuggestQuiz(progress.Progress{}); got != first {
		t.Errorf("fresh learner: got %s, want %s", got, first)
	}

	p := progress.Progress{
		Completed: map[string]bool{"bfs": true, "dfs": true, "dijkstra": true},
		Mastery: map[string]*progress.AlgorithmMastery{
			"bfs":      {QuizScores: []float64{100}},
			"dfs":      {QuizScores: []float64{70}},
			"dijkstra": {QuizScores: []float64{40}},
		},
	}
	if got := SuggestQuiz(p); got != algorithms.Dijkstra {
		t.Errorf("got %s, want dijkstra", got)
	}
}
