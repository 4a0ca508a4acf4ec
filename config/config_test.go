package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.GitHub.Token = "ghp_test"
	cfg.Anthropic.APIKey = "sk-ant-test"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Anthropic.Model)
	assert.Equal(t, int64(4096), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 10, cfg.Analysis.MinCommentLength)
	assert.Equal(t, 3, cfg.Analysis.MaxAttempts)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.ShouldExcludeBots())
}

func TestParse(t *testing.T) {
	content := []byte(`
github:
  token: ghp_from_file
anthropic:
  api_key: sk-from-file
  model: claude-3-5-haiku-latest
analysis:
  exclude_bots: false
  min_comment_length: 25
log_level: debug
`)
	cfg, err := Parse(content)
	require.NoError(t, err)

	assert.Equal(t, "ghp_from_file", cfg.GitHub.Token)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Anthropic.Model)
	assert.Equal(t, 25, cfg.Analysis.MinCommentLength)
	assert.False(t, cfg.ShouldExcludeBots())
	// Unset fields keep their defaults.
	assert.Equal(t, 3, cfg.Analysis.MaxAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("github: [not a mapping"))
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_MODEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Anthropic.Model)
	assert.Empty(t, cfg.GitHub.Token)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviewlens.yml")
	require.NoError(t, os.WriteFile(path, []byte("github:\n  token: from_file\n"), 0o644))

	t.Setenv("GITHUB_TOKEN", "from_env")
	t.Setenv("ANTHROPIC_API_KEY", "key_from_env")
	t.Setenv("ANTHROPIC_MODEL", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.GitHub.Token)
	assert.Equal(t, "key_from_env", cfg.Anthropic.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing token", func(c *Config) { c.GitHub.Token = "" }, "github.token"},
		{"missing api key", func(c *Config) { c.Anthropic.APIKey = "" }, "anthropic.api_key"},
		{"negative min length", func(c *Config) { c.Analysis.MinCommentLength = -1 }, "analysis.min_comment_length"},
		{"zero attempts", func(c *Config) { c.Analysis.MaxAttempts = 0 }, "analysis.max_attempts"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	assert.NoError(t, validConfig().Validate())
}
