package analysis

import (
	"github.com/reviewlens/reviewlens/github"
)

// GeneralBucket is the file-grouping key for comments not anchored to a file,
// and the commit-group bucket for responses without a group label.
const GeneralBucket = "general"

// GroupedComments holds the three independent groupings over a filtered
// comment list. Every bucket preserves the relative input order.
type GroupedComments struct {
	ByReviewer map[string][]github.Comment
	ByFile     map[string][]github.Comment
	ByCategory map[Category][]github.Comment
}

// GroupComments partitions comments by reviewer, by file, and by category.
// A comment lands in exactly one reviewer bucket and one file bucket
// (GeneralBucket when it has no file path), but may land in several category
// buckets: every category whose keyword table hits contributes it. Comments
// matching no category go to CategoryOther alone.
func GroupComments(comments []github.Comment) *GroupedComments {
	grouped := &GroupedComments{
		ByReviewer: make(map[string][]github.Comment),
		ByFile:     make(map[string][]github.Comment),
		ByCategory: make(map[Category][]github.Comment),
	}

	for _, c := range comments {
		grouped.ByReviewer[c.Author] = append(grouped.ByReviewer[c.Author], c)

		file := c.FilePath
		if file == "" {
			file = GeneralBucket
		}
		grouped.ByFile[file] = append(grouped.ByFile[file], c)

		categories := commentCategoryTable.MatchAll(c.Content)
		if len(categories) == 0 {
			categories = []Category{CategoryOther}
		}
		for _, cat := range categories {
			grouped.ByCategory[cat] = append(grouped.ByCategory[cat], c)
		}
	}

	return grouped
}

// SeparateReviewerComments drops the PR creator's own buckets from a
// by-reviewer grouping, leaving only actual reviewers.
func SeparateReviewerComments(byReviewer map[string][]github.Comment, prCreator string) map[string][]github.Comment {
	reviewers := make(map[string][]github.Comment, len(byReviewer))
	for author, comments := range byReviewer {
		if author != prCreator {
			reviewers[author] = comments
		}
	}
	return reviewers
}

// CategorizeReviewerComments removes the PR creator's comments from every
// category bucket; categories left empty disappear from the result.
func CategorizeReviewerComments(byCategory map[Category][]github.Comment, prCreator string) map[Category][]github.Comment {
	result := make(map[Category][]github.Comment, len(byCategory))
	for category, comments := range byCategory {
		var kept []github.Comment
		for _, c := range comments {
			if c.Author != prCreator {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			result[category] = kept
		}
	}
	return result
}
