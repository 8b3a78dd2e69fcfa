package quiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple choice questions that check understanding of a classic algorithm.

Rules:
- Ask about behaviour, invariants, complexity, or a small worked example of the given algorithm.
- Give exactly 4 options with exactly one correct. Distractors should be plausible misconceptions.
- Keep the question under 300 characters and each option short.
- Use plain ASCII. Write complexities like O(n log n) and powers like n^2.
- The explanation says why the correct option is right in at most two sentences.
- Do not repeat any question from the "already asked" list.`

func buildUserMessage(input GenerateInput, maxPrior int) string {
	a := input.Algorithm
	var b strings.Builder
	fmt.Fprintf(&b, "Algorithm: %s\n", a.Name)
	fmt.Fprintf(&b, "Family: %s\n", a.Family.DisplayName())
	fmt.Fprintf(&b, "Description: %s\n", a.Description)
	fmt.Fprintf(&b, "Complexity: %s\n", a.Complexity)
	if len(a.Pseudocode) > 0 {
		b.WriteString("Pseudocode:\n")
		for _, line := range a.Pseudocode {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	b.WriteString("\nAlready asked:\n")
	prior := input.PriorQuestions
	if maxPrior > 0 && len(prior) > maxPrior {
		prior = prior[len(prior)-maxPrior:]
	}
	if len(prior) == 0 {
		b.WriteString("None")
	}
	for i, q := range prior {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, q)
	}
	return b.String()
}
