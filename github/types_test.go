package github

import (
	"testing"
	"time"
)

func TestNewComment_BotDetection(t *testing.T) {
	tests := []struct {
		author string
		isBot  bool
	}{
		{"dependabot[bot]", true},
		{"renovate[bot]", true},
		{"ci-bot", true},
		{"alice", false},
		{"botanist", false},
		{"robot99", false},
	}

	for _, tt := range tests {
		t.Run(tt.author, func(t *testing.T) {
			c := NewComment(1, tt.author, "body", time.Now())
			if c.IsBot != tt.isBot {
				t.Errorf("IsBot(%s) = %v, want %v", tt.author, c.IsBot, tt.isBot)
			}
		})
	}
}

func TestNewReviewData_Counts(t *testing.T) {
	now := time.Now()
	comments := []Comment{
		NewComment(1, "alice", "first", now),
		NewComment(2, "alice", "second", now),
		NewComment(3, "bob", "third", now),
		NewComment(4, "dependabot[bot]", "bump", now),
	}

	data := NewReviewData(PullRequestInfo{Number: 1}, comments, nil)

	if data.TotalComments != 4 {
		t.Errorf("TotalComments = %d, want 4", data.TotalComments)
	}
	if data.UniqueReviewers != 2 {
		t.Errorf("UniqueReviewers = %d, want 2 (bots excluded)", data.UniqueReviewers)
	}
	if data.ReviewStates == nil {
		t.Error("ReviewStates should never be nil")
	}
}

func TestMapReviewState(t *testing.T) {
	tests := []struct {
		raw  string
		want ReviewState
	}{
		{"APPROVED", ReviewStateApproved},
		{"CHANGES_REQUESTED", ReviewStateChangesRequested},
		{"COMMENTED", ReviewStateCommented},
		{"DISMISSED", ReviewStatePending},
		{"", ReviewStatePending},
	}

	for _, tt := range tests {
		if got := mapReviewState(tt.raw); got != tt.want {
			t.Errorf("mapReviewState(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
