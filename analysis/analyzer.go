package analysis

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/reviewlens/reviewlens/github"
)

// PreparedData is the output of the preparation stage: filtered comments,
// their groupings, and summary statistics.
type PreparedData struct {
	Comments []github.Comment
	Grouped  *GroupedComments
	Stats    *Statistics
}

// PrepareComments filters the raw review data and groups what survives.
func PrepareComments(data *github.ReviewData, opts FilterOptions, logger *slog.Logger) *PreparedData {
	filtered := FilterComments(data.Comments, opts)
	logger.Info("prepared comments",
		"total", len(data.Comments),
		"after_filter", len(filtered),
	)
	return &PreparedData{
		Comments: filtered,
		Grouped:  GroupComments(filtered),
		Stats:    BuildStatistics(filtered, data.PRInfo),
	}
}

// Analyzer runs the per-category and overall LLM analysis over prepared
// comment data and assembles the final result.
type Analyzer struct {
	executor *Executor
	logger   *slog.Logger
	now      func() time.Time
}

// NewAnalyzer returns an Analyzer using the given executor for LLM calls.
func NewAnalyzer(executor *Executor, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		executor: executor,
		logger:   logger,
		now:      time.Now,
	}
}

// Analyze runs one LLM call per populated category in canonical category
// order, then one aggregate call over all reviewers, and merges insights,
// profiles, and extractor output into an AnalysisResult. A failed category
// yields no insight for that category but never aborts the run.
func (a *Analyzer) Analyze(ctx context.Context, prepared *PreparedData) (*AnalysisResult, error) {
	prCreator := prepared.Stats.PRInfo.Author
	reviewerComments := SeparateReviewerComments(prepared.Grouped.ByReviewer, prCreator)
	reviewerCategories := CategorizeReviewerComments(prepared.Grouped.ByCategory, prCreator)

	a.logger.Info("starting LLM analysis",
		"reviewers", len(reviewerComments),
		"categories", len(reviewerCategories),
	)

	var insights []*ReviewInsight
	for _, category := range Categories {
		comments := reviewerCategories[category]
		if len(comments) == 0 {
			continue
		}
		insight := a.analyzeCategory(ctx, category, comments, prepared.Stats)
		if insight != nil {
			insights = append(insights, insight)
		}
	}

	if overall := a.analyzeOverall(ctx, prepared, reviewerComments); overall != nil {
		insights = append(insights, overall)
	}

	result := &AnalysisResult{
		PRNumber:          prepared.Stats.PRInfo.Number,
		Repository:        prepared.Stats.PRInfo.Repository,
		AnalysisTimestamp: a.now(),
		Insights:          insights,
		ReviewerProfiles:  BuildReviewerProfiles(reviewerComments),
		KnowledgeInsights: ExtractKnowledgeInsights(insights),
		Learning:          ExtractLearningOpportunities(insights),
		MentoringInsights: ExtractMentoringInsights(insights),
		Valuable:          ExtractValuableInsights(insights),
	}

	a.logger.Info("analysis completed",
		"insights", len(result.Insights),
		"reviewers", len(reviewerComments),
	)
	return result, nil
}

// analyzeCategory produces the insight for one category, or nil when the
// LLM call fails or returns something unusable.
func (a *Analyzer) analyzeCategory(ctx context.Context, category Category, comments []github.Comment, stats *Statistics) *ReviewInsight {
	prompt := RenderCategoryPrompt(pullRequestInfo(stats), category, comments)

	raw, err := a.executor.Execute(ctx, "category "+string(category), SystemPrompt, prompt)
	if err != nil {
		a.logger.Warn("category analysis failed", "category", category, "error", err)
		return nil
	}

	payload, ok := ParseLLMResponse(a.logger, raw).(map[string]any)
	if !ok {
		a.logger.Warn("unexpected LLM response shape", "category", category)
		return nil
	}

	payload["category"] = string(category)
	payload["frequency"] = float64(len(comments))

	if isRichPayload(payload) {
		insight, err := InsightFromLLMResponse(payload)
		if err != nil {
			a.logger.Warn("failed to build insight", "category", category, "error", err)
			return nil
		}
		return insight
	}

	severity, err := ParseSeverity(strings.ToLower(getString(payload, "severity", "medium")))
	if err != nil {
		a.logger.Warn("failed to build insight", "category", category, "error", err)
		return nil
	}
	return &ReviewInsight{
		Category:           category,
		Description:        getString(payload, "description", ""),
		Frequency:          len(comments),
		Severity:           severity,
		Examples:           commentExamples(comments, 2),
		ReviewersMentioned: commentAuthors(comments),
	}
}

// analyzeOverall runs the single aggregate call covering every reviewer.
func (a *Analyzer) analyzeOverall(ctx context.Context, prepared *PreparedData, reviewerComments map[string][]github.Comment) *ReviewInsight {
	categories := make([]Category, 0, len(prepared.Grouped.ByCategory))
	for _, cat := range Categories {
		if len(prepared.Grouped.ByCategory[cat]) > 0 {
			categories = append(categories, cat)
		}
	}

	prompt := RenderOverallPrompt(pullRequestInfo(prepared.Stats), reviewerComments, categories)

	raw, err := a.executor.Execute(ctx, "overall patterns", SystemPrompt, prompt)
	if err != nil {
		a.logger.Warn("overall analysis failed", "error", err)
		return nil
	}

	payload, ok := ParseLLMResponse(a.logger, raw).(map[string]any)
	if !ok {
		a.logger.Warn("unexpected LLM response shape for overall analysis")
		return nil
	}

	payload["category"] = string(CategoryOther)
	payload["frequency"] = float64(prepared.Stats.TotalComments)

	if isRichPayload(payload) {
		insight, err := InsightFromLLMResponse(payload)
		if err != nil {
			a.logger.Warn("failed to build overall insight", "error", err)
			return nil
		}
		return insight
	}

	severity, err := ParseSeverity(strings.ToLower(getString(payload, "severity", "low")))
	if err != nil {
		a.logger.Warn("failed to build overall insight", "error", err)
		return nil
	}
	total := 0
	for _, comments := range reviewerComments {
		total += len(comments)
	}
	return &ReviewInsight{
		Category:           CategoryOther,
		Description:        getString(payload, "description", ""),
		Frequency:          total,
		Severity:           severity,
		ReviewersMentioned: sortedKeys(reviewerComments),
	}
}

// isRichPayload reports whether the payload carries the structured fields
// of the full response format, as opposed to a bare description/severity
// pair.
func isRichPayload(payload map[string]any) bool {
	for _, key := range []string{"reviewer_insights", "learning_opportunities", "actionable_guidance"} {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}

func pullRequestInfo(stats *Statistics) github.PullRequestInfo {
	return github.PullRequestInfo{
		Number:     stats.PRInfo.Number,
		Title:      stats.PRInfo.Title,
		Author:     stats.PRInfo.Author,
		Repository: stats.PRInfo.Repository,
	}
}

func commentExamples(comments []github.Comment, limit int) []string {
	if limit > len(comments) {
		limit = len(comments)
	}
	examples := make([]string, 0, limit)
	for _, c := range comments[:limit] {
		examples = append(examples, truncateWithEllipsis(c.Content, 100))
	}
	return examples
}

func commentAuthors(comments []github.Comment) []string {
	authors := make([]string, 0, len(comments))
	for _, c := range comments {
		authors = append(authors, c.Author)
	}
	return authors
}
