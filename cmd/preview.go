package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/config"
	"github.com/abhisek/algolab/internal/llm"
	"github.com/abhisek/algolab/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview <algorithm>",
	Short: "Answer quiz questions for an algorithm in the terminal (no database)",
	Long: `Generate and interactively answer quiz questions for one algorithm.

This is a stateless tool: no database, no XP, no mastery. With an LLM
provider configured the questions are generated; otherwise they come from
the built-in bank. Useful for checking question quality.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 5, "Number of questions")
	previewCmd.Flags().Bool("bank", false, "Use the built-in bank even when an LLM is configured")
}

func runPreview(cmd *cobra.Command, args []string) error {
	a, ok := algorithms.Lookup(algorithms.ID(args[0]))
	if !ok {
		return fmt.Errorf("unknown algorithm %q (see algolab list)", args[0])
	}
	count, _ := cmd.Flags().GetInt("count")
	bankOnly, _ := cmd.Flags().GetBool("bank")
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// No EventRepo: requests are not recorded.
	var gen quiz.Generator
	if !bankOnly {
		provider, err := llm.NewProvider(ctx, cfg.LLM, nil)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		if provider != nil {
			gen = quiz.NewLLMGenerator(provider, quiz.DefaultGeneratorConfig())
		}
	}
	svc := quiz.NewService(quiz.ServiceConfig{Generator: gen})

	fmt.Fprintf(out, "%s (%s)\n", a.Name, a.Family.DisplayName())
	fmt.Fprintf(out, "Preparing %d questions...\n\n", count)

	attempt := svc.Start(ctx, a.ID, count)
	if len(attempt.Questions) == 0 {
		fmt.Fprintln(out, "No questions available for this algorithm.")
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		q, ok := attempt.Current()
		if !ok {
			break
		}

		fmt.Fprintf(out, "── Question %d/%d (%s) ──\n", attempt.Index()+1, len(attempt.Questions), q.Source)
		fmt.Fprintln(out, q.Prompt)
		for j, c := range q.Choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 1 || n > len(q.Choices) {
			fmt.Fprintf(out, "(enter a number from 1 to %d)\n\n", len(q.Choices))
			continue
		}

		correct, err := attempt.Answer(n - 1)
		if err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectChoice())
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", attempt.Correct(), len(attempt.Questions))
	return nil
}
