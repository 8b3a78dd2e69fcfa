package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/algolab/internal/app"
	"github.com/abhisek/algolab/internal/llm"
	"github.com/abhisek/algolab/internal/logging"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/session"
	"github.com/abhisek/algolab/internal/telemetry"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	speed := cfg.PlaybackSpeed()
	if s, _ := cmd.Flags().GetString("speed"); s != "" {
		if speed, err = playback.ParseSpeed(s); err != nil {
			return err
		}
	}

	st, dbPath, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go to a file.
	closeLog, err := logging.Configure(cfg.LogLevel, cfg.ResolveLogFile(dbPath))
	if err != nil {
		return err
	}
	defer closeLog()

	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.OTelEnabled, version)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer shutdown(context.Background())
	}

	eventRepo := st.EventRepo()
	opts := session.Options{
		EventRepo:    eventRepo,
		SnapshotRepo: st.SnapshotRepo(),
		Sequence:     st.LatestSequence,
	}

	// LLM questions are optional; quizzes fall back to the built-in bank.
	provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo)
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quizzes will use built-in questions only.")
	case provider != nil:
		slog.Info("llm provider enabled", "provider", provider.Name(), "model", provider.ModelID())
		opts.Provider = provider
	}

	sess, err := session.Open(ctx, opts)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	slog.Info("session started", "session", sess.ID, "db", dbPath)

	skipIntro, _ := cmd.Flags().GetBool("skip-intro")
	runErr := app.Run(app.Options{
		Session:     sess,
		EventRepo:   eventRepo,
		Speed:       speed,
		SkipWelcome: skipIntro,
	})

	if err := sess.Close(context.Background()); err != nil {
		slog.Error("failed to save session", "error", err)
		if runErr == nil {
			runErr = err
		}
	}
	sum := sess.Summary()
	slog.Info("session ended", "session", sess.ID, "xp", sum.XPEarned, "completions", sum.Completions, "quizzes", sum.Quizzes)
	return runErr
}
