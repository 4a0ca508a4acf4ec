package analysis

import (
	"math"
	"sort"

	"github.com/reviewlens/reviewlens/github"
)

// ReviewerProfile summarizes one reviewer's activity on the pull request.
type ReviewerProfile struct {
	ReviewerName         string           `json:"reviewer_name"`
	TotalComments        int              `json:"total_comments"`
	TopCategories        []Category       `json:"top_categories"`
	AverageCommentLength float64          `json:"average_comment_length"`
	FocusAreas           map[Category]int `json:"focus_areas"`
}

// BuildReviewerProfiles creates a profile per reviewer, in alphabetical
// reviewer order. Reviewers with no comments are skipped.
func BuildReviewerProfiles(byReviewer map[string][]github.Comment) []ReviewerProfile {
	profiles := make([]ReviewerProfile, 0, len(byReviewer))
	for _, reviewer := range sortedKeys(byReviewer) {
		comments := byReviewer[reviewer]
		if len(comments) == 0 {
			continue
		}
		profiles = append(profiles, buildProfile(reviewer, comments))
	}
	return profiles
}

func buildProfile(reviewer string, comments []github.Comment) ReviewerProfile {
	totalLength := 0
	for _, c := range comments {
		totalLength += len([]rune(c.Content))
	}
	avg := math.Round(float64(totalLength)/float64(len(comments))*10) / 10

	focusAreas := countFocusAreas(comments)

	top := rankCategories(focusAreas)
	if len(top) > 3 {
		top = top[:3]
	}
	if len(top) == 0 {
		top = []Category{CategoryOther}
	}

	return ReviewerProfile{
		ReviewerName:         reviewer,
		TotalComments:        len(comments),
		TopCategories:        top,
		AverageCommentLength: avg,
		FocusAreas:           focusAreas,
	}
}

// countFocusAreas assigns each comment to the first category whose keyword
// list matches, falling back to other. Unlike the multi-membership grouping
// used for analysis, a comment here counts toward exactly one area.
func countFocusAreas(comments []github.Comment) map[Category]int {
	counts := make(map[Category]int)
	for _, c := range comments {
		counts[profileCategoryTable.MatchFirst(c.Content)]++
	}
	return counts
}

// rankCategories orders categories by count descending, breaking ties in
// canonical category order.
func rankCategories(counts map[Category]int) []Category {
	ranked := make([]Category, 0, len(counts))
	for _, cat := range Categories {
		if counts[cat] > 0 {
			ranked = append(ranked, cat)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}
