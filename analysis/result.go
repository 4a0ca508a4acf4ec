package analysis

import "time"

// CommitGroupGeneral is the bucket for reviewer responses without a
// commit_group label.
const CommitGroupGeneral = "general"

// AnalysisResult is the root aggregate produced by one analysis run. It is
// built once and never mutated; the grouped views below are computed on
// demand.
type AnalysisResult struct {
	PRNumber          int                   `json:"pr_number"`
	Repository        string                `json:"repository"`
	AnalysisTimestamp time.Time             `json:"analysis_timestamp"`
	Insights          []*ReviewInsight      `json:"insights"`
	ReviewerProfiles  []ReviewerProfile     `json:"reviewer_profiles"`
	KnowledgeInsights []string              `json:"key_knowledge_insights"`
	Learning          LearningOpportunities `json:"learning_opportunities"`
	MentoringInsights []string              `json:"mentoring_insights"`
	Valuable          ValuableInsights      `json:"valuable_insights"`
}

// GroupedResponse is one reviewer response paired with the insight it came
// from, so rendering can show the insight's category and description.
type GroupedResponse struct {
	Response ReviewerResponse
	Insight  *ReviewInsight
}

// CommitGroup is the commit-sized bucket of reviewer responses used by the
// report's suggestion section.
type CommitGroup struct {
	Name string
	// SuggestedCommitMessage is the first non-empty suggestion seen for
	// the group, in insight-then-response order.
	SuggestedCommitMessage string
	Responses              []GroupedResponse
}

// InsightsByCategory groups insights by category, preserving insight order
// within each category.
func (r *AnalysisResult) InsightsByCategory() map[Category][]*ReviewInsight {
	grouped := make(map[Category][]*ReviewInsight)
	for _, insight := range r.Insights {
		grouped[insight.Category] = append(grouped[insight.Category], insight)
	}
	return grouped
}

// HighPriorityInsights returns only the high-severity insights.
func (r *AnalysisResult) HighPriorityInsights() []*ReviewInsight {
	var high []*ReviewInsight
	for _, insight := range r.Insights {
		if insight.Severity == SeverityHigh {
			high = append(high, insight)
		}
	}
	return high
}

// CommitGroups collects every reviewer response across all insights into
// commit-group buckets in first-seen order. Responses sharing the same
// (reviewer, original comment, commit group) triple are collapsed to the
// first occurrence. A missing commit_group label maps to the general
// bucket.
func (r *AnalysisResult) CommitGroups() []CommitGroup {
	type triple struct {
		reviewer        string
		originalComment string
		commitGroup     string
	}
	seen := make(map[triple]struct{})
	index := make(map[string]int)
	var groups []CommitGroup

	for _, insight := range r.Insights {
		for _, resp := range insight.ReviewerResponses {
			name := resp.CommitGroup
			if name == "" {
				name = CommitGroupGeneral
			}

			key := triple{resp.Reviewer, resp.OriginalComment, name}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			i, ok := index[name]
			if !ok {
				i = len(groups)
				index[name] = i
				groups = append(groups, CommitGroup{Name: name})
			}
			groups[i].Responses = append(groups[i].Responses, GroupedResponse{
				Response: resp,
				Insight:  insight,
			})
			if groups[i].SuggestedCommitMessage == "" && resp.SuggestedCommitMessage != "" {
				groups[i].SuggestedCommitMessage = resp.SuggestedCommitMessage
			}
		}
	}
	return groups
}
