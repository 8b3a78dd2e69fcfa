package quiz

import "github.com/abhisek/algolab/internal/llm"

// QuestionSchema is the JSON shape requested from the LLM.
var QuestionSchema = &llm.Schema{
	Name:        "algorithm-quiz-question",
	Description: "One multiple choice question about an algorithm",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "The question, one or two sentences of plain text",
			},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    NumChoices,
				"maxItems":    NumChoices,
				"description": "Exactly four distinct options",
			},
			"answer": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     NumChoices - 1,
				"description": "0-based index of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct option is right, two sentences at most",
			},
		},
		"required":             []any{"prompt", "choices", "answer", "explanation"},
		"additionalProperties": false,
	},
}
