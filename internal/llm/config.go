package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every variable Config reads.
const EnvPrefix = "ALGOLAB_"

// Config selects and configures the quiz generation provider. An empty
// Provider disables LLM generation.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter",
	// "mock", or empty.
	Provider string `env:"LLM_PROVIDER"`

	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"LLM_RETRY_"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
}

type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.0-flash-001"`
	BaseURL string `env:"BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns the configuration with no environment applied.
func DefaultConfig() Config {
	cfg, err := parse(map[string]string{})
	if err != nil {
		panic(fmt.Sprintf("llm: invalid config defaults: %v", err))
	}
	return cfg
}

// ConfigFromEnv reads ALGOLAB_* variables. When no provider is named, the
// conventional vendor key variables are probed (see Discover).
func ConfigFromEnv() (Config, error) {
	cfg, err := parse(nil)
	if err != nil {
		return Config{}, fmt.Errorf("parse llm config: %w", err)
	}
	if cfg.Provider == "" {
		cfg.Discover(os.Getenv)
	}
	return cfg, nil
}

func parse(environment map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	err := env.ParseWithOptions(&cfg, opts)
	return cfg, err
}

// Discover picks the first provider whose vendor API key variable is set,
// in the order Gemini, OpenAI, Anthropic, OpenRouter. It reports whether
// one was found.
func (c *Config) Discover(getenv func(string) string) bool {
	switch {
	case getenv("GEMINI_API_KEY") != "":
		c.Provider, c.Gemini.APIKey = "gemini", getenv("GEMINI_API_KEY")
	case getenv("OPENAI_API_KEY") != "":
		c.Provider, c.OpenAI.APIKey = "openai", getenv("OPENAI_API_KEY")
	case getenv("ANTHROPIC_API_KEY") != "":
		c.Provider, c.Anthropic.APIKey = "anthropic", getenv("ANTHROPIC_API_KEY")
	case getenv("OPENROUTER_API_KEY") != "":
		c.Provider, c.OpenRouter.APIKey = "openrouter", getenv("OPENROUTER_API_KEY")
	default:
		return false
	}
	return true
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool { return c.Provider != "" }

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	missing := func(name string) error {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", EnvPrefix, name, c.Provider)
	}
	switch c.Provider {
	case "", "mock":
		return nil
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return missing("ANTHROPIC")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return missing("OPENAI")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return missing("GEMINI")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return missing("OPENROUTER")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	return nil
}
