// Package config handles loading and validating the analyzer configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no config path is given on the command line
// or via the CONFIG_PATH environment variable.
const DefaultConfigPath = "reviewlens.yml"

// ConfigError indicates the configuration is missing or invalid. Configuration
// problems are fatal at startup: the run must not proceed to fetch or analyze.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration (%s): %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// GitHubConfig configures the GitHub fetch layer.
type GitHubConfig struct {
	// Token is a personal access token. Overridden by GITHUB_TOKEN.
	Token string `yaml:"token"`
	// APIBaseURL points at an enterprise API root when not using github.com.
	APIBaseURL string `yaml:"api_base_url"`
}

// AnthropicConfig configures the Claude client.
type AnthropicConfig struct {
	// APIKey is the Anthropic API key. Overridden by ANTHROPIC_API_KEY.
	APIKey string `yaml:"api_key"`
	// Model is the Claude model ID used for analysis.
	Model string `yaml:"model"`
	// MaxTokens caps the response size per call.
	MaxTokens int64 `yaml:"max_tokens"`
}

// AnalysisConfig tunes comment preparation and the retry executor.
type AnalysisConfig struct {
	// ExcludeBots drops bot-authored comments before analysis.
	ExcludeBots *bool `yaml:"exclude_bots,omitempty"`
	// MinCommentLength is the minimum trimmed content length to keep.
	MinCommentLength int `yaml:"min_comment_length"`
	// MaxAttempts is the retry budget per LLM call.
	MaxAttempts int `yaml:"max_attempts"`
}

// OutputConfig configures the report sink.
type OutputConfig struct {
	// Dir is the directory auto-generated report filenames are placed in.
	Dir string `yaml:"dir"`
}

// Config is the full analyzer configuration.
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Output    OutputConfig    `yaml:"output"`
	LogLevel  string          `yaml:"log_level"`
}

// DefaultConfig returns the configuration defaults. Credentials have no
// defaults and must come from the file or the environment.
func DefaultConfig() *Config {
	excludeBots := true
	return &Config{
		Anthropic: AnthropicConfig{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 4096,
		},
		Analysis: AnalysisConfig{
			ExcludeBots:      &excludeBots,
			MinCommentLength: 10,
			MaxAttempts:      3,
		},
		Output:   OutputConfig{Dir: "output"},
		LogLevel: "info",
	}
}

// ShouldExcludeBots returns the ExcludeBots setting, defaulting to true.
func (c *Config) ShouldExcludeBots() bool {
	if c.Analysis.ExcludeBots == nil {
		return true
	}
	return *c.Analysis.ExcludeBots
}

// Load reads the config file at path (falling back to defaults when the file
// does not exist) and applies environment overrides. Callers that need a
// complete configuration run Validate on the result; the check command
// deliberately skips it to report what is missing.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(content)
		if err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// No file is fine; credentials can come from the environment.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Parse parses a config from YAML content on top of the defaults.
func Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("failed to parse config: %w", err)}
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.Anthropic.APIKey = key
	}
	if model := os.Getenv("ANTHROPIC_MODEL"); model != "" {
		cfg.Anthropic.Model = model
	}
}

// Validate checks required settings. Missing credentials are configuration
// errors, surfaced before any network call happens.
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return &ConfigError{Field: "github.token", Err: fmt.Errorf("GitHub token is required (set github.token or GITHUB_TOKEN)")}
	}
	if c.Anthropic.APIKey == "" {
		return &ConfigError{Field: "anthropic.api_key", Err: fmt.Errorf("Anthropic API key is required (set anthropic.api_key or ANTHROPIC_API_KEY)")}
	}
	if c.Analysis.MinCommentLength < 0 {
		return &ConfigError{Field: "analysis.min_comment_length", Err: fmt.Errorf("must not be negative")}
	}
	if c.Analysis.MaxAttempts < 1 {
		return &ConfigError{Field: "analysis.max_attempts", Err: fmt.Errorf("must be at least 1")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "log_level", Err: fmt.Errorf("invalid level %q (must be debug, info, warn, or error)", c.LogLevel)}
	}
	return nil
}
