// Package analysis implements the review-comment analysis pipeline: filtering,
// grouping, statistics, LLM prompting with retry, response parsing, and
// insight extraction.
package analysis

import (
	"fmt"
	"strings"
)

// Category is a closed enumeration of review topics.
type Category string

const (
	CategoryArchitecture    Category = "architecture"
	CategoryCodeStyle       Category = "code_style"
	CategoryPerformance     Category = "performance"
	CategorySecurity        Category = "security"
	CategoryTesting         Category = "testing"
	CategoryDocumentation   Category = "documentation"
	CategoryNaming          Category = "naming"
	CategoryErrorHandling   Category = "error_handling"
	CategoryMaintainability Category = "maintainability"
	CategoryBusinessLogic   Category = "business_logic"
	CategoryAPIDesign       Category = "api_design"
	CategoryDataHandling    Category = "data_handling"
	CategoryUserExperience  Category = "user_experience"
	CategoryOther           Category = "other"
)

// Categories lists every category in canonical order. The analyzer iterates
// this order, which makes the sequence of LLM calls deterministic.
var Categories = []Category{
	CategoryArchitecture,
	CategoryCodeStyle,
	CategoryPerformance,
	CategorySecurity,
	CategoryTesting,
	CategoryDocumentation,
	CategoryNaming,
	CategoryErrorHandling,
	CategoryMaintainability,
	CategoryBusinessLogic,
	CategoryAPIDesign,
	CategoryDataHandling,
	CategoryUserExperience,
	CategoryOther,
}

// ParseCategory coerces a string to a known Category. Unknown values are a
// hard error: the caller decides whether to fail the whole category analysis.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Title renders the category for display ("error_handling" -> "Error Handling").
func (c Category) Title() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Severity is the closed {high, medium, low} enumeration.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ParseSeverity coerces a string to a known Severity. Unknown values are a
// hard error surfaced to the per-category boundary.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(s)) {
	case SeverityHigh:
		return SeverityHigh, nil
	case SeverityMedium:
		return SeverityMedium, nil
	case SeverityLow:
		return SeverityLow, nil
	}
	return "", fmt.Errorf("unknown severity: %q", s)
}

// weight is the severity's contribution to the learning-value score.
func (s Severity) weight() float64 {
	switch s {
	case SeverityHigh:
		return 5
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 1
	}
	return 0
}

// ReviewerKnowledgeInsight captures the deep knowledge a reviewer shared.
// Every field is optional; absent fields stay empty.
type ReviewerKnowledgeInsight struct {
	TechnicalKnowledge string   `json:"technical_knowledge"`
	ExperienceLessons  string   `json:"experience_lessons"`
	DesignPhilosophy   string   `json:"design_philosophy"`
	BestPractices      []string `json:"best_practices"`
	CommonPitfalls     []string `json:"common_pitfalls"`
}

// IsZero reports whether nothing was populated.
func (r ReviewerKnowledgeInsight) IsZero() bool {
	return r.TechnicalKnowledge == "" && r.ExperienceLessons == "" &&
		r.DesignPhilosophy == "" && len(r.BestPractices) == 0 && len(r.CommonPitfalls) == 0
}

// ReviewerResponse is one suggested reply to one reviewer, plus the agent
// instruction implementing their suggestion. CommitGroup clusters responses
// whose changes could land as a single commit.
type ReviewerResponse struct {
	Reviewer               string `json:"reviewer"`
	Response               string `json:"response"`
	CopilotInstruction     string `json:"copilot_instruction"`
	CommitGroup            string `json:"commit_group,omitempty"`
	SuggestedCommitMessage string `json:"suggested_commit_message,omitempty"`
	OriginalComment        string `json:"original_comment,omitempty"`
	FilePath               string `json:"file_path,omitempty"`
	LineNumber             int    `json:"line_number,omitempty"`
	CommentURL             string `json:"comment_url,omitempty"`
}

// ReviewInsight is one synthesized insight: per category, or the single
// aggregate insight covering the whole PR (category "other").
type ReviewInsight struct {
	Category           Category                  `json:"category"`
	Description        string                    `json:"description"`
	Frequency          int                       `json:"frequency"`
	Severity           Severity                  `json:"severity"`
	Examples           []string                  `json:"examples,omitempty"`
	ReviewersMentioned []string                  `json:"reviewers_mentioned,omitempty"`
	ReviewerInsights   *ReviewerKnowledgeInsight `json:"reviewer_insights,omitempty"`
	ImmediateActions   []string                  `json:"immediate_actions,omitempty"`
	ValuableComments   []string                  `json:"valuable_comments,omitempty"`
	ReviewerResponses  []ReviewerResponse        `json:"reviewer_responses,omitempty"`
}

// InsightFromLLMResponse builds a ReviewInsight from a parsed LLM payload.
// Decoding is lenient: missing fields default, but unknown category or
// severity strings are surfaced as errors for the per-category boundary to
// catch. A payload that is not a JSON object at all yields a minimal
// fallback insight so malformed output cannot leak structural chaos into the
// aggregate.
func InsightFromLLMResponse(data any) (*ReviewInsight, error) {
	payload, ok := data.(map[string]any)
	if !ok {
		return &ReviewInsight{
			Category:          CategoryOther,
			Description:       "Failed to parse LLM response - received non-dict data",
			Frequency:         1,
			Severity:          SeverityLow,
			ImmediateActions:  []string{"Review the raw LLM output manually"},
			ReviewerResponses: []ReviewerResponse{},
		}, nil
	}

	category, err := ParseCategory(getString(payload, "category", string(CategoryOther)))
	if err != nil {
		return nil, err
	}
	severity, err := ParseSeverity(getString(payload, "severity", string(SeverityMedium)))
	if err != nil {
		return nil, err
	}

	insight := &ReviewInsight{
		Category:           category,
		Description:        getString(payload, "description", ""),
		Frequency:          getInt(payload, "frequency", 1),
		Severity:           severity,
		Examples:           getStringSlice(payload, "examples"),
		ReviewersMentioned: getStringSlice(payload, "reviewers_mentioned"),
	}

	if ri, ok := payload["reviewer_insights"].(map[string]any); ok {
		insight.ReviewerInsights = &ReviewerKnowledgeInsight{
			TechnicalKnowledge: getString(ri, "technical_knowledge", ""),
			ExperienceLessons:  getString(ri, "experience_lessons", ""),
			DesignPhilosophy:   getString(ri, "design_philosophy", ""),
			BestPractices:      getStringSlice(ri, "best_practices"),
			CommonPitfalls:     getStringSlice(ri, "common_pitfalls"),
		}
	}

	// Immediate actions come from both payload shapes, concatenated; the
	// extractor deduplicates later.
	if lo, ok := payload["learning_opportunities"].(map[string]any); ok {
		insight.ImmediateActions = append(insight.ImmediateActions, getStringSlice(lo, "immediate_actions")...)
	}
	if ag, ok := payload["actionable_guidance"].(map[string]any); ok {
		insight.ImmediateActions = append(insight.ImmediateActions, getStringSlice(ag, "immediate_actions")...)
		insight.ValuableComments = getStringSlice(ag, "valuable_comments")
	}

	if responses, ok := payload["reviewer_responses"].([]any); ok {
		for _, raw := range responses {
			rr, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			insight.ReviewerResponses = append(insight.ReviewerResponses, ReviewerResponse{
				Reviewer:               getString(rr, "reviewer", ""),
				Response:               getString(rr, "response", ""),
				CopilotInstruction:     getString(rr, "copilot_instruction", ""),
				CommitGroup:            getString(rr, "commit_group", ""),
				SuggestedCommitMessage: getString(rr, "suggested_commit_message", ""),
				OriginalComment:        getString(rr, "original_comment", ""),
			})
		}
	}

	return insight, nil
}

func getString(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func getInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func getStringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var result []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
