// Command reviewlens analyzes GitHub pull request review comments with
// Claude and writes a Markdown learning report.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reviewlens/reviewlens/analysis"
	"github.com/reviewlens/reviewlens/config"
	"github.com/reviewlens/reviewlens/github"
	"github.com/reviewlens/reviewlens/llm"
	"github.com/reviewlens/reviewlens/report"
)

const version = "0.1.0"

var (
	flagConfig  string
	flagOutput  string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "reviewlens",
		Short:         "Analyze GitHub PR review comments with an LLM to extract insights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <pr-url>",
		Short: "Analyze PR review comments and generate a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0])
		},
	}
	analyzeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the report to this path instead of the auto-generated one")
	analyzeCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check configuration and API connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("reviewlens %s\n", version)
		},
	}

	root.AddCommand(analyzeCmd, checkCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runAnalyze(prURL string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel, flagVerbose)
	ctx := contextWithSignals()

	repo, prNumber, baseURL, err := parsePRURL(prURL)
	if err != nil {
		return err
	}
	if baseURL == "" {
		baseURL = cfg.GitHub.APIBaseURL
	}
	logger.Info("starting analysis", "repository", repo, "pr", prNumber, "base_url", baseURL)

	client, err := github.NewClient(cfg.GitHub.Token, baseURL, logger)
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		return fmt.Errorf("invalid repository %q, expected owner/repo", repo)
	}
	data, err := client.FetchPRReviews(ctx, owner, name, prNumber)
	if err != nil {
		return fmt.Errorf("fetching PR reviews: %w", err)
	}
	fmt.Printf("Found %d review comments from %d reviewers\n", data.TotalComments, data.UniqueReviewers)

	prepared := analysis.PrepareComments(data, analysis.FilterOptions{
		ExcludeBots: cfg.ShouldExcludeBots(),
		MinLength:   cfg.Analysis.MinCommentLength,
	}, logger)

	claude := llm.NewClaude(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, logger)
	executor := analysis.NewExecutor(claude, cfg.Analysis.MaxAttempts, logger)
	analyzer := analysis.NewAnalyzer(executor, logger)

	result, err := analyzer.Analyze(ctx, prepared)
	if err != nil {
		return fmt.Errorf("analyzing comments: %w", err)
	}

	var path string
	if flagOutput != "" {
		path = flagOutput
		if err := os.WriteFile(path, []byte(report.Render(result)), 0o644); err != nil {
			return fmt.Errorf("writing report to %s: %w", path, err)
		}
	} else {
		path, err = report.Save(result, cfg.Output.Dir, logger)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Analysis completed. Report saved to %s\n", path)
	return nil
}

func runCheck() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel, false)
	ctx := contextWithSignals()

	fmt.Println("Configuration:")
	fmt.Printf("  GitHub token:      %s\n", maskSecret(cfg.GitHub.Token))
	fmt.Printf("  Anthropic API key: %s\n", maskSecret(cfg.Anthropic.APIKey))
	fmt.Printf("  Model:             %s\n", cfg.Anthropic.Model)
	fmt.Printf("  Log level:         %s\n", cfg.LogLevel)

	if cfg.GitHub.Token != "" {
		client, err := github.NewClient(cfg.GitHub.Token, cfg.GitHub.APIBaseURL, logger)
		if err != nil {
			return fmt.Errorf("creating GitHub client: %w", err)
		}
		remaining, limit, err := client.CheckRateLimit(ctx)
		if err != nil {
			fmt.Printf("  GitHub API:        error: %v\n", err)
		} else {
			fmt.Printf("  GitHub API:        %d/%d requests remaining\n", remaining, limit)
		}
	}

	if cfg.Anthropic.APIKey != "" {
		if err := llm.ValidateAPIKey(ctx, cfg.Anthropic.APIKey); err != nil {
			fmt.Printf("  Anthropic API:     error: %v\n", err)
		} else {
			fmt.Println("  Anthropic API:     ok")
		}
	}
	return nil
}

var prURLPatterns = []*regexp.Regexp{
	// Enterprise GitHub hosts like code.github.example.com.
	regexp.MustCompile(`([^/]+\.github\.[^/]+)/([^/]+/[^/]+)/pull/(\d+)`),
	regexp.MustCompile(`github\.com/([^/]+/[^/]+)/pull/(\d+)`),
	regexp.MustCompile(`github\.com/([^/]+/[^/]+)/pulls/(\d+)`),
}

// parsePRURL extracts "owner/repo", the PR number, and, for enterprise
// hosts, the API base URL.
func parsePRURL(prURL string) (repo string, prNumber int, baseURL string, err error) {
	for _, pattern := range prURLPatterns {
		m := pattern.FindStringSubmatch(prURL)
		if m == nil {
			continue
		}
		if len(m) == 4 {
			n, convErr := strconv.Atoi(m[3])
			if convErr != nil {
				continue
			}
			return m[2], n, "https://" + m[1] + "/api/v3", nil
		}
		n, convErr := strconv.Atoi(m[2])
		if convErr != nil {
			continue
		}
		return m[1], n, "", nil
	}
	return "", 0, "", fmt.Errorf("invalid GitHub PR URL format: %s", prURL)
}

func contextWithSignals() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

func newLogger(level string, verbose bool) *slog.Logger {
	slogLevel := slog.LevelInfo
	if verbose {
		slogLevel = slog.LevelDebug
	} else {
		switch level {
		case "debug":
			slogLevel = slog.LevelDebug
		case "warn":
			slogLevel = slog.LevelWarn
		case "error":
			slogLevel = slog.LevelError
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}

func maskSecret(s string) string {
	if s == "" {
		return "not set"
	}
	if len(s) <= 4 {
		return "********"
	}
	return "********..." + s[len(s)-4:]
}
