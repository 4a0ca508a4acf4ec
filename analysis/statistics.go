package analysis

import (
	"math"
	"unicode/utf8"

	"github.com/reviewlens/reviewlens/github"
)

// PRStats carries the PR identity fields copied into the statistics.
type PRStats struct {
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Repository string `json:"repository"`
	Author     string `json:"author"`
}

// Statistics summarizes a filtered comment list. It is a pure function of
// the comments and the PR info; nothing here touches external state.
type Statistics struct {
	TotalComments        int            `json:"total_comments"`
	UniqueReviewers      int            `json:"unique_reviewers"`
	CommentsPerReviewer  map[string]int `json:"comments_per_reviewer"`
	CommentsPerFile      map[string]int `json:"comments_per_file"`
	AverageCommentLength float64        `json:"average_comment_length"`
	PRInfo               PRStats        `json:"pr_info"`
}

// BuildStatistics computes summary counts over the filtered list. The mean
// comment length is rounded to two decimal places and is zero for an empty
// list. Unique reviewers counts distinct non-bot authors.
func BuildStatistics(comments []github.Comment, info github.PullRequestInfo) *Statistics {
	perReviewer := make(map[string]int)
	perFile := make(map[string]int)
	reviewers := make(map[string]struct{})
	totalLength := 0

	for _, c := range comments {
		perReviewer[c.Author]++
		file := c.FilePath
		if file == "" {
			file = GeneralBucket
		}
		perFile[file]++
		if !c.IsBot {
			reviewers[c.Author] = struct{}{}
		}
		totalLength += utf8.RuneCountInString(c.Content)
	}

	avg := 0.0
	if len(comments) > 0 {
		avg = math.Round(float64(totalLength)/float64(len(comments))*100) / 100
	}

	return &Statistics{
		TotalComments:        len(comments),
		UniqueReviewers:      len(reviewers),
		CommentsPerReviewer:  perReviewer,
		CommentsPerFile:      perFile,
		AverageCommentLength: avg,
		PRInfo: PRStats{
			Number:     info.Number,
			Title:      info.Title,
			Repository: info.Repository,
			Author:     info.Author,
		},
	}
}
