package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse(reviewer, commitGroup, commitMessage string) ReviewerResponse {
	return ReviewerResponse{
		Reviewer:               reviewer,
		Response:               "Thanks for the feedback!",
		CopilotInstruction:     "Implement the reviewer's suggestion in the affected file.",
		CommitGroup:            commitGroup,
		SuggestedCommitMessage: commitMessage,
		OriginalComment:        "This needs improvement",
	}
}

func sampleResult(insights ...*ReviewInsight) *AnalysisResult {
	return &AnalysisResult{
		PRNumber:          123,
		Repository:        "test/repo",
		AnalysisTimestamp: time.Now(),
		Insights:          insights,
	}
}

func TestCommitGroups_Buckets(t *testing.T) {
	result := sampleResult(
		&ReviewInsight{
			Category: CategoryErrorHandling,
			Severity: SeverityHigh,
			ReviewerResponses: []ReviewerResponse{
				sampleResponse("alice", "error-handling", "feat: improve error handling in user service"),
				sampleResponse("bob", "error-handling", "feat: add try-catch blocks for database operations"),
			},
		},
		&ReviewInsight{
			Category: CategoryCodeStyle,
			Severity: SeverityMedium,
			ReviewerResponses: []ReviewerResponse{
				sampleResponse("charlie", "code-style", "style: apply consistent formatting and naming"),
			},
		},
		&ReviewInsight{
			Category: CategoryDocumentation,
			Severity: SeverityLow,
			ReviewerResponses: []ReviewerResponse{
				sampleResponse("eve", "", ""),
			},
		},
	)

	groups := result.CommitGroups()
	require.Len(t, groups, 3)

	assert.Equal(t, "error-handling", groups[0].Name)
	require.Len(t, groups[0].Responses, 2)
	assert.Equal(t, "alice", groups[0].Responses[0].Response.Reviewer)
	assert.Equal(t, "bob", groups[0].Responses[1].Response.Reviewer)
	assert.Equal(t, "feat: improve error handling in user service", groups[0].SuggestedCommitMessage)

	assert.Equal(t, "code-style", groups[1].Name)
	require.Len(t, groups[1].Responses, 1)

	// The response without a commit group lands in the general bucket with
	// no suggested message.
	assert.Equal(t, CommitGroupGeneral, groups[2].Name)
	assert.Empty(t, groups[2].SuggestedCommitMessage)
	assert.Equal(t, "eve", groups[2].Responses[0].Response.Reviewer)
}

func TestCommitGroups_DeduplicatesAcrossInsights(t *testing.T) {
	duplicate := sampleResponse("alice", "error-handling", "feat: improve error handling")

	result := sampleResult(
		&ReviewInsight{Category: CategoryErrorHandling, ReviewerResponses: []ReviewerResponse{duplicate}},
		&ReviewInsight{Category: CategoryTesting, ReviewerResponses: []ReviewerResponse{duplicate}},
	)

	groups := result.CommitGroups()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Responses, 1)
	// First occurrence wins, so the kept response belongs to the first insight.
	assert.Equal(t, CategoryErrorHandling, groups[0].Responses[0].Insight.Category)
}

func TestCommitGroups_FirstCommitMessageWins(t *testing.T) {
	result := sampleResult(&ReviewInsight{
		Category: CategoryErrorHandling,
		ReviewerResponses: []ReviewerResponse{
			sampleResponse("alice", "error-handling", "feat: improve error handling in user service"),
			sampleResponse("bob", "error-handling", "feat: add comprehensive error handling"),
		},
	})

	groups := result.CommitGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, "feat: improve error handling in user service", groups[0].SuggestedCommitMessage)
}

func TestInsightsByCategory(t *testing.T) {
	result := sampleResult(
		&ReviewInsight{Category: CategoryTesting},
		&ReviewInsight{Category: CategoryTesting},
		&ReviewInsight{Category: CategoryOther},
	)

	grouped := result.InsightsByCategory()
	assert.Len(t, grouped[CategoryTesting], 2)
	assert.Len(t, grouped[CategoryOther], 1)
}

func TestHighPriorityInsights(t *testing.T) {
	result := sampleResult(
		&ReviewInsight{Category: CategoryTesting, Severity: SeverityHigh},
		&ReviewInsight{Category: CategoryOther, Severity: SeverityLow},
	)

	high := result.HighPriorityInsights()
	require.Len(t, high, 1)
	assert.Equal(t, CategoryTesting, high[0].Category)
}
