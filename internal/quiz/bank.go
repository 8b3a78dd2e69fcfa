package quiz

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/algolab/internal/algorithms"
)

//go:embed questions.yaml
var builtinQuestions []byte

// Bank is a fixed set of questions per algorithm.
type Bank struct {
	questions map[algorithms.ID][]Question
}

// LoadBank parses a YAML document mapping algorithm ids to question lists.
// Every question must pass the structural and choice validators; unknown
// algorithm ids are rejected.
func LoadBank(data []byte) (*Bank, error) {
	var raw map[string][]Question
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	checks := []Validator{&StructuralValidator{}, &ChoicesValidator{}}
	b := &Bank{questions: make(map[algorithms.ID][]Question, len(raw))}
	for key, qs := range raw {
		id := algorithms.ID(key)
		if _, ok := algorithms.Lookup(id); !ok {
			return nil, fmt.Errorf("question bank: unknown algorithm %q", key)
		}
		for i := range qs {
			qs[i].AlgorithmID = id
			qs[i].Source = SourceBank
			if verr := RunValidators(checks, &qs[i], GenerateInput{}); verr != nil {
				return nil, fmt.Errorf("question bank: %s #%d: %w", key, i+1, verr)
			}
		}
		b.questions[id] = qs
	}
	return b, nil
}

var defaultBank = sync.OnceValue(func() *Bank {
	b, err := LoadBank(builtinQuestions)
	if err != nil {
		panic(err)
	}
	return b
})

// DefaultBank returns the built-in bank.
func DefaultBank() *Bank { return defaultBank() }

// Count returns the number of questions for id.
func (b *Bank) Count(id algorithms.ID) int { return len(b.questions[id]) }

// ForAlgorithm returns up to n distinct questions for id in random order.
func (b *Bank) ForAlgorithm(id algorithms.ID, n int, rng *rand.Rand) []Question {
	pool := b.questions[id]
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	n = min(n, len(pool))
	out := make([]Question, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		q := pool[i]
		q.Choices = slices.Clone(q.Choices)
		out = append(out, q)
	}
	return out
}
