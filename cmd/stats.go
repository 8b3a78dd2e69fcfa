package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/badges"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, XP, streak, mastery and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, _, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		snap, err := st.SnapshotRepo().Latest(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No progress recorded yet. Run algolab to get started.")
			return nil
		}
		p := progress.NewLedger(snap.Data.Progress).Progress()

		completions, err := st.EventRepo().CompletionCounts(ctx)
		if err != nil {
			return fmt.Errorf("query completions: %w", err)
		}
		byType, total, err := st.EventRepo().BadgeCounts(ctx)
		if err != nil {
			return fmt.Errorf("query badges: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Level %d  ·  %s XP  ·  %d/%d XP into level\n",
			p.Level(), components.Number(p.TotalXP), p.XPIntoLevel(), progress.XPPerLevel)
		fmt.Fprintf(w, "Streak %d days (best %d)  ·  last active %s\n",
			p.CurrentStreak, p.LongestStreak, orDash(p.LastActiveDay))
		fmt.Fprintf(w, "Saved %s\n\n", snap.Timestamp.Local().Format("2006-01-02 15:04:05"))

		printAlgorithmTable(w, p, completions)

		fmt.Fprintf(w, "\nBadges: %d", total)
		var parts []string
		for _, t := range badges.AllBadgeTypes() {
			if n := byType[string(t)]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", t.DisplayName(), n))
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(parts, ", "))
		}
		fmt.Fprintln(w)
		return nil
	},
}

func printAlgorithmTable(w io.Writer, p progress.Progress, completions map[string]int) {
	fmt.Fprintf(w, "%-16s  %-9s  %6s  %7s  %-8s\n", "Algorithm", "Completed", "Replays", "Quiz", "Mastery")
	fmt.Fprintln(w, strings.Repeat("─", 56))
	for _, a := range algorithms.All() {
		id := string(a.ID)
		done := "·"
		if p.Completed[id] {
			done = "✓"
		}
		avg := "-"
		if m := p.Mastery[id]; m != nil && len(m.QuizScores) > 0 {
			avg = components.Percent(m.Average())
		}
		fmt.Fprintf(w, "%-16s  %-9s  %6d  %7s  %-8s\n",
			id, done, completions[id], avg, p.MasteryOf(id).DisplayName())
	}
	fmt.Fprintf(w, "\n%d/%d completed\n", len(p.Completed), len(algorithms.All()))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
