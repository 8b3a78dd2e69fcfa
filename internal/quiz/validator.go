package quiz

import (
	"fmt"
	"strings"
)

// Validator checks a question before it is shown. Implementations must be
// stateless.
type Validator interface {
	Name() string
	Validate(q *Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the validator chain in order.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}, &ChoicesValidator{}, &DuplicateValidator{}}
}

// RunValidators returns the first failure, or nil.
func RunValidators(vs []Validator, q *Question, input GenerateInput) *ValidationError {
	for _, v := range vs {
		if err := v.Validate(q, input); err != nil {
			return err
		}
	}
	return nil
}

const (
	maxPromptLen      = 300
	maxChoiceLen      = 120
	maxExplanationLen = 600
)

// StructuralValidator checks required fields and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError { return &ValidationError{Validator: v.Name(), Message: msg} }
	switch {
	case strings.TrimSpace(q.Prompt) == "":
		return fail("prompt is empty")
	case len(q.Prompt) > maxPromptLen:
		return fail(fmt.Sprintf("prompt exceeds %d characters", maxPromptLen))
	case strings.TrimSpace(q.Explanation) == "":
		return fail("explanation is empty")
	case len(q.Explanation) > maxExplanationLen:
		return fail(fmt.Sprintf("explanation exceeds %d characters", maxExplanationLen))
	}
	return nil
}

// ChoicesValidator checks there are exactly four distinct, non-empty
// options and the answer indexes one of them.
type ChoicesValidator struct{}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}
	if len(q.Choices) != NumChoices {
		return fail("want %d choices, got %d", NumChoices, len(q.Choices))
	}
	if q.Answer < 0 || q.Answer >= NumChoices {
		return fail("answer index %d out of range", q.Answer)
	}
	seen := make(map[string]bool, NumChoices)
	for i, c := range q.Choices {
		norm := normalize(c)
		if norm == "" {
			return fail("choice %d is empty", i)
		}
		if len(c) > maxChoiceLen {
			return fail("choice %d exceeds %d characters", i, maxChoiceLen)
		}
		if seen[norm] {
			return fail("duplicate choice %q", c)
		}
		seen[norm] = true
	}
	return nil
}

// DuplicateValidator rejects a prompt already asked in the same quiz.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	p := normalize(q.Prompt)
	for _, prior := range input.PriorQuestions {
		if normalize(prior) == p {
			return &ValidationError{Validator: v.Name(), Message: "question was already asked"}
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
