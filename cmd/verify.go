package cmd

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/algolab/internal/algorithms"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check every generator against a reference implementation",
	Long: `Run each algorithm on random inputs and compare the final step with an
independent reference computation. Exits non-zero on any mismatch.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Int("runs", 200, "Random inputs per algorithm")
	verifyCmd.Flags().Uint64("seed", 1, "Base seed for the random inputs")
	verifyCmd.Flags().Int("workers", 4, "Algorithms verified concurrently")
}

func runVerify(cmd *cobra.Command, args []string) error {
	runs, _ := cmd.Flags().GetInt("runs")
	seed, _ := cmd.Flags().GetUint64("seed")
	workers, _ := cmd.Flags().GetInt("workers")
	w := cmd.OutOrStdout()

	var (
		mu       sync.Mutex
		failures []error
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(workers, 1))
	for i, a := range algorithms.All() {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(seed, uint64(i)))
			for r := range runs {
				if err := ctx.Err(); err != nil {
					return err
				}
				in := algorithms.RandomInput(a.ID, 2+rng.IntN(a.Limits.MaxLen), rng)
				if err := algorithms.Verify(a, in); err != nil {
					mu.Lock()
					failures = append(failures, fmt.Errorf("run %d input %v: %w", r, in.Array, err))
					mu.Unlock()
					return nil
				}
			}
			mu.Lock()
			fmt.Fprintf(w, "ok    %-16s %d runs\n", a.ID, runs)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range failures {
		fmt.Fprintf(w, "FAIL  %v\n", f)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d algorithms failed verification", len(failures))
	}
	return nil
}
