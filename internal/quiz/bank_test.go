package quiz

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/algolab/internal/algorithms"
)

func testRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestDefaultBank_CoversCatalog(t *testing.T) {
	b := DefaultBank()
	for _, a := range algorithms.All() {
		assert.GreaterOrEqual(t, b.Count(a.ID), DefaultLength, "algorithm %s", a.ID)
	}
}

func TestForAlgorithm_NoRepeats(t *testing.T) {
	b := DefaultBank()
	qs := b.ForAlgorithm("bfs", 10, testRand())
	require.Len(t, qs, b.Count("bfs"))

	seen := map[string]bool{}
	for _, q := range qs {
		assert.False(t, seen[q.Prompt], "repeated %q", q.Prompt)
		seen[q.Prompt] = true
		assert.Equal(t, SourceBank, q.Source)
		assert.Equal(t, algorithms.ID("bfs"), q.AlgorithmID)
	}
}

func TestForAlgorithm_ClonesChoices(t *testing.T) {
	b := DefaultBank()
	qs := b.ForAlgorithm("dfs", 1, testRand())
	require.Len(t, qs, 1)
	qs[0].Choices[0] = "mutated"

	for _, q := range b.ForAlgorithm("dfs", b.Count("dfs"), testRand()) {
		assert.NotContains(t, q.Choices, "mutated")
	}
}

func TestForAlgorithm_Unknown(t *testing.T) {
	assert.Empty(t, DefaultBank().ForAlgorithm("nope", 3, testRand()))
	assert.Empty(t, DefaultBank().ForAlgorithm("bfs", 0, testRand()))
}

func TestLoadBank_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "bfs: [::"},
		{"unknown algorithm", `
teleport-sort:
  - prompt: "q"
    choices: [a, b, c, d]
    answer: 0
    explanation: "e"
`},
		{"three choices", `
bfs:
  - prompt: "q"
    choices: [a, b, c]
    answer: 0
    explanation: "e"
`},
		{"answer out of range", `
bfs:
  - prompt: "q"
    choices: [a, b, c, d]
    answer: 4
    explanation: "e"
`},
		{"missing explanation", `
bfs:
  - prompt: "q"
    choices: [a, b, c, d]
    answer: 1
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBank([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidators(t *testing.T) {
	valid := func() *Question {
		return &Question{
			Prompt:      "Which structure does BFS use?",
			Choices:     []string{"Queue", "Stack", "Heap", "Trie"},
			Answer:      0,
			Explanation: "BFS visits nodes in FIFO order.",
		}
	}

	tests := []struct {
		name   string
		mutate func(q *Question)
		prior  []string
		want   string
	}{
		{"valid", func(*Question) {}, nil, ""},
		{"empty prompt", func(q *Question) { q.Prompt = "  " }, nil, "structural"},
		{"duplicate choice", func(q *Question) { q.Choices[1] = " queue " }, nil, "choices"},
		{"empty choice", func(q *Question) { q.Choices[2] = "" }, nil, "choices"},
		{"negative answer", func(q *Question) { q.Answer = -1 }, nil, "choices"},
		{"already asked", func(*Question) {}, []string{"which structure  does bfs use?"}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid()
			tt.mutate(q)
			err := RunValidators(DefaultValidators(), q, GenerateInput{PriorQuestions: tt.prior})
			if tt.want == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.want, err.Validator)
		})
	}
}
