package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/reviewlens/reviewlens/analysis"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Filename builds the report path for a result: the repository name (owner
// prefix stripped, unsafe characters replaced with underscores), the PR
// number, and the given date.
func Filename(outputDir string, result *analysis.AnalysisResult, date time.Time) string {
	repoName := result.Repository
	if i := strings.LastIndex(repoName, "/"); i >= 0 {
		repoName = repoName[i+1:]
	}
	repoName = unsafeFilenameChars.ReplaceAllString(repoName, "_")

	name := fmt.Sprintf("%s_pr%d_%s_review_analysis.md", repoName, result.PRNumber, date.Format("20060102"))
	return filepath.Join(outputDir, name)
}

// Save renders the result and writes it under outputDir, creating the
// directory if needed. It returns the path written. A write failure is the
// one hard error in the output stage; the caller aborts on it.
func Save(result *analysis.AnalysisResult, outputDir string, logger *slog.Logger) (string, error) {
	path := Filename(outputDir, result, time.Now())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	content := Render(result)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report to %s: %w", path, err)
	}

	logger.Info("analysis report saved", "path", path, "bytes", len(content))
	return path, nil
}
