package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/algolab/internal/algorithms"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the algorithm catalog by family",
	RunE: func(cmd *cobra.Command, args []string) error {
		family, _ := cmd.Flags().GetString("family")
		w := cmd.OutOrStdout()

		fmt.Fprintf(w, "%-16s  %-20s  %-18s  %4s\n", "ID", "Name", "Complexity", "XP")
		fmt.Fprintln(w, strings.Repeat("─", 64))

		count := 0
		for _, f := range algorithms.AllFamilies() {
			if family != "" && string(f) != family {
				continue
			}
			fmt.Fprintf(w, "%s\n", f.DisplayName())
			for _, a := range algorithms.ByFamily(f) {
				fmt.Fprintf(w, "  %-14s  %-20s  %-18s  %4d\n", a.ID, a.Name, a.Complexity, a.XP)
				count++
			}
		}
		if count == 0 {
			return fmt.Errorf("no algorithms in family %q", family)
		}

		fmt.Fprintf(w, "\n%d algorithms\n", count)
		return nil
	},
}

func init() {
	listCmd.Flags().String("family", "", "Filter by family (sorting, searching, graph, dynamic-programming)")
}
