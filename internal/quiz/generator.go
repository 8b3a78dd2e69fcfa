package quiz

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/algolab/internal/llm"
)

// Generator produces one validated question.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// GeneratorConfig tunes LLMGenerator.
type GeneratorConfig struct {
	Validators        []Validator
	MaxTokens         int
	Temperature       float64
	MaxPriorQuestions int
}

// DefaultGeneratorConfig returns the standard validator chain and limits.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Validators:        DefaultValidators(),
		MaxTokens:         600,
		Temperature:       0.7,
		MaxPriorQuestions: 10,
	}
}

// LLMGenerator asks an llm.Provider for questions.
type LLMGenerator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// NewLLMGenerator creates a generator backed by provider.
func NewLLMGenerator(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type questionOutput struct {
	Prompt      string   `json:"prompt"`
	Choices     []string `json:"choices"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	req := llm.UserPrompt(systemPrompt, buildUserMessage(input, g.config.MaxPriorQuestions), QuestionSchema)
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	var out questionOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse question: %w", err)
	}
	q := &Question{
		AlgorithmID: input.Algorithm.ID,
		Prompt:      out.Prompt,
		Choices:     out.Choices,
		Answer:      out.Answer,
		Explanation: out.Explanation,
		Source:      SourceLLM,
	}
	if verr := RunValidators(g.config.Validators, q, input); verr != nil {
		return nil, verr
	}
	return q, nil
}
