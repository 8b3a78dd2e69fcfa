package quizresult

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/badges"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/quiz"
	"github.com/abhisek/algolab/internal/router"
)

func testResult() quiz.Result {
	return quiz.Result{Correct: 4, Total: 4, Score: 100, XP: 80, Mastery: progress.MasteryGold, Promoted: true}
}

func TestResultScreen_Display(t *testing.T) {
	earned := []badges.Badge{{
		Type: badges.BadgeMastery, Rarity: badges.RarityLegendary,
		AlgorithmID: "bfs", Tier: "gold", Reason: "Mastered BFS (Gold)",
	}}
	s := New(algorithms.Resolve(algorithms.BFS), testResult(), earned)
	view := s.View(100, 30)
	for _, want := range []string{"Outstanding!", "4/4", "+80", "promoted", "Mastered BFS"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultScreen_NoBadgesSection(t *testing.T) {
	res := quiz.Result{Correct: 1, Total: 4, Score: 25, XP: 20}
	s := New(algorithms.Resolve(algorithms.BFS), res, nil)
	view := s.View(100, 30)
	if strings.Contains(view, "Badges") {
		t.Error("badges section shown without badges")
	}
	if !strings.Contains(view, "Keep practicing") {
		t.Error("low score headline missing")
	}
}

func TestResultScreen_Enter(t *testing.T) {
	s := New(algorithms.Resolve(algorithms.BFS), testResult(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
