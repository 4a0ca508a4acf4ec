// Package github fetches pull request review data for analysis.
package github

import (
	"strings"
	"time"
)

// ReviewState is the state of a submitted pull request review.
type ReviewState string

const (
	ReviewStatePending          ReviewState = "PENDING"
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewStateCommented        ReviewState = "COMMENTED"
)

// Comment is a single remark on a pull request: an inline review comment,
// a general PR comment, or a review summary body.
type Comment struct {
	ID         int64     `json:"id"`
	Author     string    `json:"author"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	FilePath   string    `json:"file_path,omitempty"`
	LineNumber int       `json:"line_number,omitempty"`
	CommitSHA  string    `json:"commit_sha,omitempty"`
	ReviewID   int64     `json:"review_id,omitempty"`
	IsBot      bool      `json:"is_bot"`
}

// NewComment builds a Comment and derives IsBot from the author name.
// IsBot is fixed at construction time and must not change afterwards.
func NewComment(id int64, author, content string, timestamp time.Time) Comment {
	return Comment{
		ID:        id,
		Author:    author,
		Content:   content,
		Timestamp: timestamp,
		IsBot:     isBotAuthor(author),
	}
}

// isBotAuthor reports whether an author name follows bot naming conventions.
func isBotAuthor(author string) bool {
	return strings.HasSuffix(author, "[bot]") || strings.HasSuffix(author, "-bot")
}

// PullRequestInfo identifies the pull request under analysis.
// Created once per run and never mutated.
type PullRequestInfo struct {
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	State      string    `json:"state"` // open, closed, merged
	BaseBranch string    `json:"base_branch"`
	HeadBranch string    `json:"head_branch"`
	Repository string    `json:"repository"` // owner/repo
	URL        string    `json:"url"`
}

// ReviewData is the complete review payload for one pull request.
type ReviewData struct {
	PRInfo          PullRequestInfo        `json:"pr_info"`
	Comments        []Comment              `json:"comments"`
	ReviewStates    map[string]ReviewState `json:"review_states"`
	TotalComments   int                    `json:"total_comments"`
	UniqueReviewers int                    `json:"unique_reviewers"`
}

// NewReviewData assembles a ReviewData and computes the derived counts.
// UniqueReviewers counts distinct non-bot authors.
func NewReviewData(info PullRequestInfo, comments []Comment, states map[string]ReviewState) *ReviewData {
	reviewers := make(map[string]struct{})
	for _, c := range comments {
		if !c.IsBot {
			reviewers[c.Author] = struct{}{}
		}
	}
	if states == nil {
		states = make(map[string]ReviewState)
	}
	return &ReviewData{
		PRInfo:          info,
		Comments:        comments,
		ReviewStates:    states,
		TotalComments:   len(comments),
		UniqueReviewers: len(reviewers),
	}
}
