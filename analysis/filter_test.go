package analysis

import (
	"testing"
	"time"

	"github.com/reviewlens/reviewlens/github"
)

func makeComment(author, content, filePath string) github.Comment {
	c := github.NewComment(0, author, content, time.Now())
	c.FilePath = filePath
	return c
}

func TestFilterComments_ExcludesBots(t *testing.T) {
	comments := []github.Comment{
		makeComment("alice", "This error handling needs a retry path", "main.go"),
		makeComment("dependabot[bot]", "Bump library from 1.0 to 1.1 for security fixes", ""),
		makeComment("ci-bot", "Build passed with all checks green today", ""),
	}

	filtered := FilterComments(comments, FilterOptions{ExcludeBots: true, MinLength: 10})
	if len(filtered) != 1 {
		t.Fatalf("expected 1 comment after bot exclusion, got %d", len(filtered))
	}
	if filtered[0].Author != "alice" {
		t.Errorf("expected alice to survive, got %s", filtered[0].Author)
	}

	kept := FilterComments(comments, FilterOptions{ExcludeBots: false, MinLength: 10})
	if len(kept) != 3 {
		t.Fatalf("expected 3 comments with bots included, got %d", len(kept))
	}

	// Counts are complementary: bots removed plus survivors equals input.
	if len(kept)-len(filtered) != 2 {
		t.Errorf("expected 2 bot comments removed, got %d", len(kept)-len(filtered))
	}
}

func TestFilterComments_NonSubstantive(t *testing.T) {
	nonSubstantive := []string{
		"LGTM well done everyone",
		"lgtm. thanks for this",
		"Looks good to me, ship it",
		"approved. merging now ok",
		"+1 totally agree here",
	}
	// Only whole-string matches are dropped; these all exceed the pattern.
	for _, content := range nonSubstantive {
		got := FilterComments([]github.Comment{makeComment("bob", content, "")},
			FilterOptions{ExcludeBots: true, MinLength: 5})
		if len(got) != 1 {
			t.Errorf("content %q with extra text should survive, got %d", content, len(got))
		}
	}

	dropped := []string{"LGTM", "lgtm.", "Looks good to me", "approved", "+1", "👍", "✅", ":+1:", "good.", "Nice"}
	for _, content := range dropped {
		got := FilterComments([]github.Comment{makeComment("bob", content, "")},
			FilterOptions{ExcludeBots: true, MinLength: 1})
		if len(got) != 0 {
			t.Errorf("content %q should be filtered as non-substantive", content)
		}
	}

	technical := []string{
		"there is an error in the loop bound",
		"this variable shadows the outer one",
		"possible race condition on the counter",
	}
	for _, content := range technical {
		got := FilterComments([]github.Comment{makeComment("bob", content, "")},
			FilterOptions{ExcludeBots: true, MinLength: 10})
		if len(got) != 1 {
			t.Errorf("technical content %q should survive", content)
		}
	}
}

func TestFilterComments_MinLength(t *testing.T) {
	comments := []github.Comment{
		makeComment("alice", "short", ""),
		makeComment("alice", "   padded but still short   ", ""),
		makeComment("alice", "this one is comfortably over the threshold", ""),
	}

	filtered := FilterComments(comments, FilterOptions{ExcludeBots: true, MinLength: 30})
	if len(filtered) != 1 {
		t.Fatalf("expected 1 comment over length threshold, got %d", len(filtered))
	}
}

func TestFilterComments_Idempotent(t *testing.T) {
	comments := []github.Comment{
		makeComment("alice", "this comment raises a naming convention question", "a.go"),
		makeComment("bot-bot", "automated message from the build system", ""),
		makeComment("bob", "LGTM", ""),
		makeComment("carol", "consider extracting this into a helper function", "b.go"),
	}
	opts := FilterOptions{ExcludeBots: true, MinLength: 10}

	once := FilterComments(comments, opts)
	twice := FilterComments(once, opts)

	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Author != twice[i].Author || once[i].Content != twice[i].Content {
			t.Errorf("comment %d changed on second pass", i)
		}
	}
}

func TestFilterComments_EmptyInput(t *testing.T) {
	got := FilterComments(nil, FilterOptions{ExcludeBots: true, MinLength: 10})
	if len(got) != 0 {
		t.Fatalf("expected empty output for empty input, got %d", len(got))
	}
}

func TestFilterComments_PreservesOrder(t *testing.T) {
	comments := []github.Comment{
		makeComment("a", "first comment about error handling patterns", ""),
		makeComment("b", "second comment about naming the interface", ""),
		makeComment("c", "third comment about test coverage gaps here", ""),
	}
	filtered := FilterComments(comments, FilterOptions{ExcludeBots: true, MinLength: 10})
	if len(filtered) != 3 {
		t.Fatalf("expected all 3 comments, got %d", len(filtered))
	}
	for i, want := range []string{"a", "b", "c"} {
		if filtered[i].Author != want {
			t.Errorf("position %d: got %s, want %s", i, filtered[i].Author, want)
		}
	}
}
