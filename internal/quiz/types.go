// Package quiz serves multiple choice questions about the algorithms,
// grades attempts, and reports scores to the progress ledger.
//
// Questions come from a built-in bank or, when a provider is configured,
// an LLM. Generated questions pass the same validators as bank questions;
// any generation failure falls back to the bank.
package quiz

import "github.com/abhisek/algolab/internal/algorithms"

// NumChoices is the number of options every question has.
const NumChoices = 4

// Source tells where a question came from.
type Source string

const (
	SourceBank Source = "bank"
	SourceLLM  Source = "llm"
)

// Question is one multiple choice question.
type Question struct {
	AlgorithmID algorithms.ID `yaml:"-"`
	Prompt      string        `yaml:"prompt"`
	Choices     []string      `yaml:"choices"`
	// Answer is the index into Choices of the correct option.
	Answer      int    `yaml:"answer"`
	Explanation string `yaml:"explanation"`
	Source      Source `yaml:"-"`
}

// Correct reports whether choice is the right answer.
func (q Question) Correct(choice int) bool { return choice == q.Answer }

// CorrectChoice returns the text of the right answer.
func (q Question) CorrectChoice() string {
	if q.Answer < 0 || q.Answer >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.Answer]
}

// GenerateInput is the context for generating one question.
type GenerateInput struct {
	Algorithm *algorithms.Algorithm
	// PriorQuestions holds prompts already asked in this quiz.
	PriorQuestions []string
}
