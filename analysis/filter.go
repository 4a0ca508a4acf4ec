package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/reviewlens/reviewlens/github"
)

// nonSubstantivePatterns match whole comments that carry no reviewable
// content, matched case-insensitively against the trimmed body.
var nonSubstantivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^lgtm\.?$`),
	regexp.MustCompile(`^looks good to me\.?$`),
	regexp.MustCompile(`^approved\.?$`),
	regexp.MustCompile(`^👍+$`),
	regexp.MustCompile(`^✅+$`),
	regexp.MustCompile(`^:\+1:+$`),
	regexp.MustCompile(`^good\.?$`),
	regexp.MustCompile(`^nice\.?$`),
	regexp.MustCompile(`^\+1\.?$`),
}

// FilterOptions control comment filtering.
type FilterOptions struct {
	// ExcludeBots drops comments whose author matched bot naming conventions.
	ExcludeBots bool
	// MinLength is the minimum trimmed content length to keep a comment.
	MinLength int
}

// FilterComments returns the sublist of comments worth analyzing: non-bot
// (when ExcludeBots is set), at least MinLength characters after trimming,
// and not a non-substantive stock phrase. Input order is preserved, the
// input is never modified, and an empty input yields an empty output.
// Filtering is idempotent: filtering an already-filtered list is a no-op.
func FilterComments(comments []github.Comment, opts FilterOptions) []github.Comment {
	filtered := make([]github.Comment, 0, len(comments))
	for _, c := range comments {
		if opts.ExcludeBots && c.IsBot {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(c.Content)) < opts.MinLength {
			continue
		}
		if isNonSubstantive(c.Content) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// isNonSubstantive reports whether the comment is a stock approval phrase
// ("LGTM", "+1", a thumbs-up, ...) rather than actual feedback.
func isNonSubstantive(content string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	for _, pattern := range nonSubstantivePatterns {
		if pattern.MatchString(trimmed) {
			return true
		}
	}
	return false
}
