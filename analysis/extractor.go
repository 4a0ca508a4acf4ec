package analysis

import (
	"fmt"
	"sort"
	"strings"
)

const (
	maxExtractedItems     = 10
	knowledgeSnippetLimit = 150
	mentoringSnippetLimit = 180
	fallbackSnippetLimit  = 200
	substanceThreshold    = 20
)

// LearningOpportunities groups the concrete follow-up actions pulled from
// every insight.
type LearningOpportunities struct {
	ImmediateActions []string `json:"immediate_actions"`
}

// ValuableInsights holds the style-formation material extracted from the
// per-category insights.
type ValuableInsights struct {
	StyleFormingComments  []string `json:"style_forming_comments"`
	DevelopmentPhilosophy []string `json:"development_philosophy"`
	ProfessionalHabits    []string `json:"professional_habits"`
}

// ExtractKnowledgeInsights ranks insights by learning value and formats the
// top ten as readable knowledge points. The sort is stable so insights with
// equal scores keep their input order.
func ExtractKnowledgeInsights(insights []*ReviewInsight) []string {
	ranked := make([]*ReviewInsight, len(insights))
	copy(ranked, insights)
	sort.SliceStable(ranked, func(i, j int) bool {
		return learningValue(ranked[i]) > learningValue(ranked[j])
	})

	if len(ranked) > maxExtractedItems {
		ranked = ranked[:maxExtractedItems]
	}

	points := make([]string, 0, len(ranked))
	for _, insight := range ranked {
		points = append(points, formatKnowledgeInsight(insight))
	}
	return points
}

// ExtractLearningOpportunities collects every insight's immediate actions,
// deduplicated in first-seen order and capped at ten.
func ExtractLearningOpportunities(insights []*ReviewInsight) LearningOpportunities {
	var actions []string
	for _, insight := range insights {
		actions = append(actions, insight.ImmediateActions...)
	}
	return LearningOpportunities{ImmediateActions: dedupeCapped(actions, maxExtractedItems)}
}

// ExtractMentoringInsights formats mentor-level guidance from the reviewer
// knowledge fields, preferring technical knowledge over experience lessons
// over design philosophy. At most ten entries are returned.
func ExtractMentoringInsights(insights []*ReviewInsight) []string {
	var mentoring []string
	for _, insight := range insights {
		if insight.ReviewerInsights == nil {
			continue
		}
		formatted := formatMentoringInsight(insight.Category, insight.ReviewerInsights)
		if formatted != "" {
			mentoring = append(mentoring, formatted)
		}
	}
	if len(mentoring) > maxExtractedItems {
		mentoring = mentoring[:maxExtractedItems]
	}
	return mentoring
}

// ExtractValuableInsights pulls style-formation material out of the
// insights. Design philosophy longer than ten trimmed runes feeds the
// philosophy bucket; when every bucket comes up empty, substantial
// technical knowledge is reformatted into style-forming comments instead.
func ExtractValuableInsights(insights []*ReviewInsight) ValuableInsights {
	var styleForming, philosophy, habits []string
	for _, insight := range insights {
		styleForming = append(styleForming, insight.ValuableComments...)
		if insight.ReviewerInsights == nil {
			continue
		}
		p := insight.ReviewerInsights.DesignPhilosophy
		if len([]rune(strings.TrimSpace(p))) > 10 {
			philosophy = append(philosophy, p)
		}
		habits = append(habits, insight.ReviewerInsights.BestPractices...)
	}

	if len(styleForming) == 0 && len(philosophy) == 0 && len(habits) == 0 {
		for _, insight := range insights {
			if insight.ReviewerInsights == nil {
				continue
			}
			tech := insight.ReviewerInsights.TechnicalKnowledge
			if len([]rune(strings.TrimSpace(tech))) > substanceThreshold {
				area := strings.ReplaceAll(string(insight.Category), "_", " ")
				styleForming = append(styleForming,
					fmt.Sprintf("reviewer 展現%s的深入理解，%s", area, truncateWithEllipsis(tech, fallbackSnippetLimit)))
			}
		}
	}

	return ValuableInsights{
		StyleFormingComments:  dedupeCapped(styleForming, maxExtractedItems),
		DevelopmentPhilosophy: dedupeCapped(philosophy, maxExtractedItems),
		ProfessionalHabits:    dedupeCapped(habits, maxExtractedItems),
	}
}

// learningValue scores an insight for ranking: frequency and reviewer
// diversity dominate, with bumps for severity and long descriptions.
func learningValue(insight *ReviewInsight) float64 {
	score := float64(insight.Frequency) * 2
	score += float64(insight.Severity.weight())
	if len([]rune(insight.Description)) > 200 {
		score += 2
	}
	score += float64(len(insight.ReviewersMentioned)) * 1.5
	return score
}

func formatKnowledgeInsight(insight *ReviewInsight) string {
	area := insight.Category.Title()
	if ri := insight.ReviewerInsights; ri != nil {
		if len([]rune(strings.TrimSpace(ri.TechnicalKnowledge))) > substanceThreshold {
			return fmt.Sprintf("%s: %s", area, truncateWithEllipsis(ri.TechnicalKnowledge, knowledgeSnippetLimit))
		}
		if len([]rune(strings.TrimSpace(ri.ExperienceLessons))) > substanceThreshold {
			return fmt.Sprintf("%s: %s", area, truncateWithEllipsis(ri.ExperienceLessons, knowledgeSnippetLimit))
		}
	}
	return fmt.Sprintf("%s: %s", area, truncateWithEllipsis(insight.Description, knowledgeSnippetLimit))
}

func formatMentoringInsight(category Category, ri *ReviewerKnowledgeInsight) string {
	name := category.Title()
	if len([]rune(strings.TrimSpace(ri.TechnicalKnowledge))) > substanceThreshold {
		return fmt.Sprintf("[%s Technical Guidance] %s", name, truncateWithEllipsis(ri.TechnicalKnowledge, mentoringSnippetLimit))
	}
	if len([]rune(strings.TrimSpace(ri.ExperienceLessons))) > substanceThreshold {
		return fmt.Sprintf("[%s Experience Sharing] %s", name, truncateWithEllipsis(ri.ExperienceLessons, mentoringSnippetLimit))
	}
	if len([]rune(strings.TrimSpace(ri.DesignPhilosophy))) > substanceThreshold {
		return fmt.Sprintf("[%s Design Thinking] %s", name, truncateWithEllipsis(ri.DesignPhilosophy, mentoringSnippetLimit))
	}
	return ""
}

func truncateWithEllipsis(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// dedupeCapped removes duplicates keeping the first occurrence of each
// value, then caps the result length.
func dedupeCapped(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
