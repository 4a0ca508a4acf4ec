// Package llm provides the Claude client used for review analysis.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// DefaultModel is the Claude model used when none is configured.
	DefaultModel = "claude-sonnet-4-20250514"

	// APITimeout is the maximum time to wait for a single Claude API response.
	APITimeout = 3 * time.Minute
)

// Client is the single LLM boundary: prompt text in, raw response text out.
// Implementations may fail or return malformed text; retry and parsing are
// the caller's responsibility.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Claude calls the Anthropic Messages API.
type Claude struct {
	apiKey    string
	model     string
	maxTokens int64
	logger    *slog.Logger
}

// NewClaude creates a Claude client. An empty model or non-positive maxTokens
// falls back to the defaults.
func NewClaude(apiKey, model string, maxTokens int64, logger *slog.Logger) *Claude {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Claude{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Complete sends one system+user turn to Claude and returns the first text
// block of the response.
func (c *Claude) Complete(ctx context.Context, system, prompt string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(c.apiKey))

	timeoutCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	message, err := client.Messages.New(timeoutCtx, anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(c.model)),
		MaxTokens: anthropic.F(c.maxTokens),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(system),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		}),
	})
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	c.logger.Debug("Claude API usage",
		"model", c.model,
		"input_tokens", message.Usage.InputTokens,
		"output_tokens", message.Usage.OutputTokens,
	)

	for _, block := range message.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("no text content in Claude response")
}

// ValidateAPIKey validates an Anthropic API key by making a minimal API call.
// Returns nil if the key is valid, or an error describing the problem.
func ValidateAPIKey(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is empty")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	// Haiku with max 1 token to minimize cost.
	_, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.ModelClaude3_5HaikuLatest),
		MaxTokens: anthropic.F(int64(1)),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("hi")),
		}),
	})
	if err != nil {
		return fmt.Errorf("API key validation failed: %w", err)
	}

	return nil
}
