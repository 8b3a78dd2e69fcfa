package quiz

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/router"
	"github.com/abhisek/algolab/internal/screens/quizresult"
	"github.com/abhisek/algolab/internal/session"
)

func newTestQuiz(t *testing.T) *QuizScreen {
	t.Helper()
	sess, err := session.Open(context.Background(), session.Options{})
	if err != nil {
		t.Fatal(err)
	}
	s := New(sess, algorithms.BinarySearch)
	s.Update(s.start()())
	if s.attempt == nil || len(s.attempt.Questions) == 0 {
		t.Fatal("attempt has no questions")
	}
	return s
}

func letter(i int) tea.KeyPressMsg {
	r := rune('a' + i)
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestQuizScreen_Title(t *testing.T) {
	s := New(nil, algorithms.BinarySearch)
	if !strings.Contains(s.Title(), "Binary Search") {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestQuizScreen_LoadingView(t *testing.T) {
	s := New(nil, algorithms.BinarySearch)
	if !strings.Contains(s.View(80, 24), "Preparing questions") {
		t.Error("expected loading view before the attempt is ready")
	}
}

func TestQuizScreen_AnswerAllCorrect(t *testing.T) {
	s := newTestQuiz(t)
	total := len(s.attempt.Questions)

	for i := range total {
		s.Update(letter(s.choice.Question.Answer))
		if !s.choice.IsCorrect() {
			t.Fatalf("question %d not marked correct", i)
		}
		_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if i < total-1 && cmd != nil {
			t.Fatalf("question %d: unexpected command before the last answer", i)
		}
	}
	if !s.finishing {
		t.Fatal("quiz not finishing after the last answer")
	}

	msg := s.finish()()
	fin, ok := msg.(finishedMsg)
	if !ok {
		t.Fatalf("finish returned %T", msg)
	}
	if fin.Err != nil {
		t.Fatal(fin.Err)
	}
	if fin.Result.Correct != total || fin.Result.Score != 100 {
		t.Errorf("result = %+v", fin.Result)
	}
	if len(fin.Badges) == 0 {
		t.Error("a perfect first quiz should award a mastery badge")
	}

	_, cmd := s.Update(fin)
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	repl, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := repl.Screen.(*quizresult.ResultScreen); !ok {
		t.Errorf("replaced with %T", repl.Screen)
	}
}

func TestQuizScreen_WrongAnswerShowsFeedback(t *testing.T) {
	s := newTestQuiz(t)
	wrong := (s.choice.Question.Answer + 1) % len(s.choice.Question.Choices)
	s.Update(letter(wrong))
	if s.attempt.Correct() != 0 {
		t.Errorf("Correct = %d, want 0", s.attempt.Correct())
	}
	if !strings.Contains(s.View(100, 30), "Not quite") {
		t.Error("feedback missing from view")
	}
}
