package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/step"
	"github.com/abhisek/algolab/internal/ui/components"
)

var stepsCmd = &cobra.Command{
	Use:   "steps <algorithm>",
	Short: "Print the step sequence for an algorithm",
	Long: `Generate the full step sequence for one algorithm and print it.

Without --input a random input is generated; --seed makes it reproducible.
Inputs outside the algorithm's limits are clamped, exactly as in the TUI.`,
	Args: cobra.ExactArgs(1),
	RunE: runSteps,
}

func init() {
	stepsCmd.Flags().String("input", "", "Comma separated input array, e.g. 5,3,1")
	stepsCmd.Flags().String("values", "", "Item values for knapsack")
	stepsCmd.Flags().Int("target", 0, "Search target, fibonacci n, knapsack capacity or coin amount")
	stepsCmd.Flags().Uint64("seed", 0, "Seed for the random input (0 uses the clock)")
	stepsCmd.Flags().Int("size", 8, "Length of the random input")
	stepsCmd.Flags().Bool("json", false, "Print the sequence as JSON")
}

func runSteps(cmd *cobra.Command, args []string) error {
	a, ok := algorithms.Lookup(algorithms.ID(args[0]))
	if !ok {
		return fmt.Errorf("unknown algorithm %q (see algolab list)", args[0])
	}

	in, err := stepsInput(cmd, a)
	if err != nil {
		return err
	}
	seq := algorithms.GenerateContext(cmd.Context(), a.ID, in)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(seq)
	}
	printSteps(cmd.OutOrStdout(), a, seq)
	return nil
}

func stepsInput(cmd *cobra.Command, a *algorithms.Algorithm) (algorithms.Input, error) {
	raw, _ := cmd.Flags().GetString("input")
	if raw == "" {
		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		size, _ := cmd.Flags().GetInt("size")
		in := algorithms.RandomInput(a.ID, size, rand.New(rand.NewPCG(seed, 0)))
		if cmd.Flags().Changed("target") {
			in.Target, _ = cmd.Flags().GetInt("target")
		}
		return in, nil
	}

	arr, err := components.ParseArray(raw)
	if err != nil {
		return algorithms.Input{}, fmt.Errorf("--input: %w", err)
	}
	in := algorithms.Input{Array: arr}
	in.Target, _ = cmd.Flags().GetInt("target")
	if v, _ := cmd.Flags().GetString("values"); v != "" {
		if in.Values, err = components.ParseArray(v); err != nil {
			return algorithms.Input{}, fmt.Errorf("--values: %w", err)
		}
	}
	return in, nil
}

func printSteps(w io.Writer, a *algorithms.Algorithm, seq *step.Sequence) {
	fmt.Fprintf(w, "%s (%s)  input %v  %d steps\n", a.Name, a.Complexity, seq.Input, seq.Len())
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for i, s := range seq.Steps {
		line := ""
		if s.Line != nil {
			line = fmt.Sprintf("L%d", *s.Line+1)
		}
		fmt.Fprintf(w, "%4d  %-4s  %-28s  %s\n", i, line, fmt.Sprint(s.Array), s.Operation)
	}
	if r := seq.Last().Result; r != nil {
		fmt.Fprintf(w, "\nresult: %g\n", *r)
	}
}
