package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/algolab/internal/config"
	"github.com/abhisek/algolab/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "algolab",
	Short: "Watch algorithms run, step by step",
	Long: "algolab replays sorting, searching, graph and dynamic programming algorithms\n" +
		"one step at a time in the terminal, with XP, quizzes and badges along the way.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ALGOLAB_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides ALGOLAB_LOG_LEVEL)")

	rootCmd.Flags().String("speed", "", "Initial replay speed: slow, normal, fast or turbo")
	rootCmd.Flags().Bool("skip-intro", false, "Start on the home screen")

	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore resolves the database path (--db flag, then ALGOLAB_DB, then the
// default XDG path) and opens it.
func openStore(cfg config.Config) (*store.Store, string, error) {
	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, "", fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open store: %w", err)
	}
	return st, dbPath, nil
}
