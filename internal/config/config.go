// Package config loads application settings from ALGOLAB_* environment
// variables. Command-line flags override what is loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/algolab/internal/llm"
	"github.com/abhisek/algolab/internal/logging"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/store"
)

// Config holds every setting the app reads from the environment.
type Config struct {
	// DBPath is the SQLite file. Empty resolves to store.DefaultDBPath.
	DBPath string `env:"DB"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFile receives logs while the TUI owns the terminal. Empty means
	// algolab.log next to the database.
	LogFile string `env:"LOG_FILE"`

	// Speed is the initial replay speed tier.
	Speed string `env:"SPEED" envDefault:"normal"`

	// OTelEndpoint enables OTLP trace export when set.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`

	LLM llm.Config
}

// Load reads the process environment.
func Load() (Config, error) {
	return load(nil, os.Getenv)
}

func load(environment map[string]string, getenv func(string) string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: llm.EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Discover(getenv)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed vocabulary. LLM settings are
// validated when the provider is built so a bad key only disables quizzes.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := playback.ParseSpeed(c.Speed); err != nil {
		return err
	}
	return nil
}

// PlaybackSpeed returns the parsed Speed.
func (c Config) PlaybackSpeed() playback.Speed {
	s, _ := playback.ParseSpeed(c.Speed)
	return s
}

// ResolveDBPath returns DBPath, or the default path when it is empty, and
// makes sure the parent directory exists.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	return store.DefaultDBPath()
}

// ResolveLogFile returns LogFile, or algolab.log beside dbPath.
func (c Config) ResolveLogFile(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dbPath), "algolab.log")
}
