package quiz

import (
	"errors"

	"github.com/google/uuid"

	"github.com/abhisek/algolab/internal/algorithms"
)

var (
	// ErrAttemptFinished is returned when answering past the last question.
	ErrAttemptFinished = errors.New("quiz: attempt already finished")
	// ErrInvalidChoice is returned for a choice outside 0..NumChoices-1.
	ErrInvalidChoice = errors.New("quiz: invalid choice")
)

// Attempt is one pass through a list of questions, answered in order.
type Attempt struct {
	ID          uuid.UUID
	AlgorithmID algorithms.ID
	Questions   []Question

	answers []int
}

// NewAttempt starts an attempt over qs.
func NewAttempt(id algorithms.ID, qs []Question) *Attempt {
	return &Attempt{ID: uuid.New(), AlgorithmID: id, Questions: qs}
}

// Current returns the next unanswered question.
func (a *Attempt) Current() (Question, bool) {
	if a.Done() {
		return Question{}, false
	}
	return a.Questions[len(a.answers)], true
}

// Index is the 0-based position of the current question.
func (a *Attempt) Index() int { return len(a.answers) }

// Answer records choice for the current question and advances.
func (a *Attempt) Answer(choice int) (correct bool, err error) {
	q, ok := a.Current()
	if !ok {
		return false, ErrAttemptFinished
	}
	if choice < 0 || choice >= len(q.Choices) {
		return false, ErrInvalidChoice
	}
	a.answers = append(a.answers, choice)
	return q.Correct(choice), nil
}

// Done reports whether every question has been answered.
func (a *Attempt) Done() bool { return len(a.answers) >= len(a.Questions) }

// Correct counts right answers so far.
func (a *Attempt) Correct() int {
	n := 0
	for i, c := range a.answers {
		if a.Questions[i].Correct(c) {
			n++
		}
	}
	return n
}

// Score is the percentage of all questions answered correctly, 0..100.
// Unanswered questions count as wrong.
func (a *Attempt) Score() float64 {
	if len(a.Questions) == 0 {
		return 0
	}
	return float64(a.Correct()) * 100 / float64(len(a.Questions))
}

// Source is SourceLLM when any question was generated.
func (a *Attempt) Source() Source {
	for _, q := range a.Questions {
		if q.Source == SourceLLM {
			return SourceLLM
		}
	}
	return SourceBank
}

// Answers returns the recorded choices in order.
func (a *Attempt) Answers() []int {
	out := make([]int, len(a.answers))
	copy(out, a.answers)
	return out
}
