package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/store"
)

// XPPerCorrect is awarded for each correct answer in a finished attempt.
const XPPerCorrect = 20

// DefaultLength is the number of questions in a quiz.
const DefaultLength = 4

// Service assembles quizzes and records their results.
type Service struct {
	bank    *Bank
	gen     Generator
	ledger  *progress.Ledger
	events  store.EventRepo
	timeout time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// ServiceConfig wires a Service. Only Bank and Ledger are required.
type ServiceConfig struct {
	Bank      *Bank
	Generator Generator
	Ledger    *progress.Ledger
	Events    store.EventRepo
	// Timeout bounds LLM generation for a whole quiz.
	Timeout time.Duration
	Rand    *rand.Rand
}

// NewService creates a quiz service.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		bank:    cfg.Bank,
		gen:     cfg.Generator,
		ledger:  cfg.Ledger,
		events:  cfg.Events,
		timeout: cfg.Timeout,
		rng:     cfg.Rand,
	}
	if s.bank == nil {
		s.bank = DefaultBank()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return s
}

// Start builds an attempt of up to n questions for id. Generated questions
// come first; whatever generation cannot supply is filled from the bank.
func (s *Service) Start(ctx context.Context, id algorithms.ID, n int) *Attempt {
	a := algorithms.Resolve(id)
	var qs []Question
	if s.gen != nil {
		qs = s.generate(ctx, a, n)
	}
	if len(qs) < n {
		qs = s.fill(qs, a.ID, n)
	}
	return NewAttempt(a.ID, qs)
}

func (s *Service) generate(ctx context.Context, a *algorithms.Algorithm, n int) []Question {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	var qs []Question
	for len(qs) < n {
		q, err := s.gen.Generate(ctx, GenerateInput{Algorithm: a, PriorQuestions: prompts(qs)})
		if err != nil {
			slog.Warn("question generation failed, using bank", "algorithm", a.ID, "have", len(qs), "error", err)
			break
		}
		qs = append(qs, *q)
	}
	return qs
}

func (s *Service) fill(qs []Question, id algorithms.ID, n int) []Question {
	s.mu.Lock()
	pool := s.bank.ForAlgorithm(id, s.bank.Count(id), s.rng)
	s.mu.Unlock()

	dup := &DuplicateValidator{}
	for _, q := range pool {
		if len(qs) >= n {
			break
		}
		if dup.Validate(&q, GenerateInput{PriorQuestions: prompts(qs)}) != nil {
			continue
		}
		qs = append(qs, q)
	}
	return qs
}

func prompts(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Prompt
	}
	return out
}

// Result summarizes a recorded attempt.
type Result struct {
	Correct  int
	Total    int
	Score    float64
	XP       int
	Mastery  progress.MasteryLevel
	Promoted bool // mastery level went up
}

// Finish records a finished attempt: the score goes to the ledger's quiz
// history, correct answers earn XP, and the attempt is appended to the
// event log. An empty attempt is not recorded.
func (s *Service) Finish(ctx context.Context, a *Attempt) (Result, error) {
	res := Result{Correct: a.Correct(), Total: len(a.Questions), Score: a.Score()}
	if res.Total == 0 {
		return res, nil
	}

	id := string(a.AlgorithmID)
	change := s.ledger.RecordQuizScore(id, res.Score)
	res.Mastery = change.After.MasteryOf(id)
	res.Promoted = res.Mastery > change.Before.MasteryOf(id)

	if res.Correct > 0 {
		res.XP = res.Correct * XPPerCorrect
		if _, err := s.ledger.Award(progress.ReasonQuiz, id, res.XP); err != nil {
			return res, fmt.Errorf("award quiz xp: %w", err)
		}
	}

	if s.events != nil {
		err := s.events.AppendQuizEvent(ctx, store.QuizEventData{
			QuizID:      a.ID.String(),
			AlgorithmID: id,
			Questions:   res.Total,
			Correct:     res.Correct,
			Score:       res.Score,
			Source:      string(a.Source()),
		})
		if err != nil {
			slog.Warn("failed to record quiz", "quiz", a.ID, "error", err)
		}
	}
	return res, nil
}
