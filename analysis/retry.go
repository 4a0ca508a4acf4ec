package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DefaultMaxAttempts is the total number of LLM calls made for a single
// prompt before giving up.
const DefaultMaxAttempts = 3

// LLMAnalysisError reports an LLM call that failed after exhausting its
// retry budget.
type LLMAnalysisError struct {
	Operation string
	Attempts  int
	Err       error
}

func (e *LLMAnalysisError) Error() string {
	return fmt.Sprintf("LLM analysis failed: %s failed after %d attempts: %v", e.Operation, e.Attempts, e.Err)
}

func (e *LLMAnalysisError) Unwrap() error {
	return e.Err
}

// Executor runs LLM prompts with retry and exponential backoff.
type Executor struct {
	client      LLMClient
	maxAttempts int
	logger      *slog.Logger

	// sleep is swapped out in tests.
	sleep func(context.Context, time.Duration) error
}

// LLMClient is the black-box completion surface the analyzer depends on.
type LLMClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// NewExecutor returns an Executor making at most maxAttempts calls per
// prompt. Values below 1 fall back to DefaultMaxAttempts.
func NewExecutor(client LLMClient, maxAttempts int, logger *slog.Logger) *Executor {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Executor{
		client:      client,
		maxAttempts: maxAttempts,
		logger:      logger,
		sleep:       sleepContext,
	}
}

// Execute calls the LLM with exponential backoff: after attempt n (zero
// based) it waits 2^n seconds before the next try. An empty response is a
// success; it is logged but never retried. When every attempt fails the
// returned error is an *LLMAnalysisError wrapping the last failure.
func (e *Executor) Execute(ctx context.Context, operation, system, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		e.logger.Info("executing LLM call",
			"operation", operation,
			"attempt", attempt+1,
			"max_attempts", e.maxAttempts,
		)

		result, err := e.client.Complete(ctx, system, prompt)
		if err == nil {
			if strings.TrimSpace(result) == "" {
				e.logger.Warn("LLM returned empty result", "operation", operation)
			}
			return result, nil
		}
		lastErr = err

		e.logger.Warn("LLM call failed",
			"operation", operation,
			"attempt", attempt+1,
			"error", err,
		)

		if attempt < e.maxAttempts-1 {
			delay := time.Duration(1<<attempt) * time.Second
			e.logger.Info("retrying LLM call", "operation", operation, "delay", delay)
			if err := e.sleep(ctx, delay); err != nil {
				return "", err
			}
		}
	}

	e.logger.Error("all LLM attempts failed", "operation", operation, "attempts", e.maxAttempts)
	return "", &LLMAnalysisError{Operation: operation, Attempts: e.maxAttempts, Err: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
