package analysis

import (
	"strings"
	"testing"

	"github.com/reviewlens/reviewlens/github"
)

func TestRenderCategoryPrompt(t *testing.T) {
	info := github.PullRequestInfo{
		Number:     7,
		Title:      "Refactor fetch layer",
		Author:     "creator",
		Repository: "acme/widgets",
	}
	comments := []github.Comment{
		makeComment("alice", "consider wrapping this error with context", "fetch.go"),
	}

	prompt := RenderCategoryPrompt(info, CategoryErrorHandling, comments)

	for _, want := range []string{"acme/widgets", "#7", "Refactor fetch layer", "creator", "error_handling", "alice", "fetch.go"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "%s") || strings.Contains(prompt, "%d") {
		t.Error("prompt contains unresolved placeholders")
	}
}

func TestRenderOverallPrompt(t *testing.T) {
	info := github.PullRequestInfo{Number: 7, Title: "T", Author: "creator", Repository: "acme/widgets"}
	byReviewer := map[string][]github.Comment{
		"alice": {makeComment("alice", "first", "a.go"), makeComment("alice", "second", "b.go")},
		"bob":   {makeComment("bob", "third", "")},
	}

	prompt := RenderOverallPrompt(info, byReviewer, []Category{CategoryTesting, CategoryOther})

	for _, want := range []string{"acme/widgets", "alice: 2 comments", "bob: 1 comments", "testing, other"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestFormatCommentSamples_TruncatesAndCaps(t *testing.T) {
	long := makeComment("alice", strings.Repeat("x", 400), "big.go")
	var comments []github.Comment
	for i := 0; i < 7; i++ {
		comments = append(comments, long)
	}

	got := FormatCommentSamples(comments, 5)

	if n := strings.Count(got, "Reviewer: alice"); n != 5 {
		t.Errorf("sample count = %d, want 5", n)
	}
	if !strings.Contains(got, strings.Repeat("x", 300)+"...") {
		t.Error("long comment body not truncated to 300 with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("x", 301)) {
		t.Error("comment body exceeds the 300 rune cap")
	}
}

func TestFormatCommentSamples_FileAnnotation(t *testing.T) {
	with := FormatCommentSamples([]github.Comment{makeComment("a", "body", "f.go")}, 5)
	if !strings.Contains(with, "(File: f.go)") {
		t.Errorf("missing file annotation: %q", with)
	}
	without := FormatCommentSamples([]github.Comment{makeComment("a", "body", "")}, 5)
	if strings.Contains(without, "File:") {
		t.Errorf("unexpected file annotation: %q", without)
	}
}

func TestFormatReviewerSummary_LimitsFiles(t *testing.T) {
	comments := []github.Comment{
		makeComment("alice", "aa", "1.go"),
		makeComment("alice", "bb", "2.go"),
		makeComment("alice", "cc", "3.go"),
		makeComment("alice", "dd", "4.go"),
	}

	got := FormatReviewerSummary(map[string][]github.Comment{"alice": comments})

	if !strings.Contains(got, "alice: 4 comments, avg 2 chars") {
		t.Errorf("summary line wrong: %q", got)
	}
	if strings.Contains(got, "4.go") {
		t.Errorf("more than 3 files listed: %q", got)
	}
}
