package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v58/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

const perPage = 100

// APIError wraps a GitHub API failure with its HTTP status code so callers
// can distinguish not-found from rate limiting and other failures.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error %d: %s", e.StatusCode, e.Message)
}

// wrapAPIError converts a go-github error into an *APIError when a response
// is available, otherwise returns the original error wrapped.
func wrapAPIError(op string, resp *gh.Response, err error) error {
	if resp != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("%s: %v", op, err)}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Client fetches pull request review data from the GitHub API.
type Client struct {
	client *gh.Client
	logger *slog.Logger
}

// NewClient creates a client authenticated with a personal access token.
// baseURL is empty for github.com, or the API root of an enterprise instance
// (e.g. "https://github.example.com/api/v3").
func NewClient(token, baseURL string, logger *slog.Logger) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second

	client := gh.NewClient(tc)
	if baseURL != "" && baseURL != "https://api.github.com" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid enterprise base URL %q: %w", baseURL, err)
		}
	}

	return &Client{client: client, logger: logger}, nil
}

// CheckRateLimit returns the remaining core API quota, for connectivity checks.
func (c *Client) CheckRateLimit(ctx context.Context) (remaining, limit int, err error) {
	limits, resp, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return 0, 0, wrapAPIError("failed to fetch rate limit", resp, err)
	}
	core := limits.GetCore()
	return core.Remaining, core.Limit, nil
}

// FetchPRReviews fetches the pull request plus every comment attached to it:
// inline review comments, general PR comments, and non-empty review bodies.
// The three comment streams are fetched concurrently; their relative stream
// order in the result is fixed (review comments, then issue comments, then
// review summaries) so output is deterministic for identical input.
func (c *Client) FetchPRReviews(ctx context.Context, owner, repo string, number int) (*ReviewData, error) {
	c.logger.Info("fetching PR reviews", "owner", owner, "repo", repo, "pr", number)

	pr, resp, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, &APIError{StatusCode: http.StatusNotFound,
				Message: fmt.Sprintf("pull request #%d not found in %s/%s", number, owner, repo)}
		}
		return nil, wrapAPIError("failed to fetch pull request", resp, err)
	}

	info := extractPRInfo(pr, owner, repo)

	var (
		reviewComments []Comment
		issueComments  []Comment
		reviewBodies   []Comment
		states         map[string]ReviewState
		mu             sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := c.fetchReviewComments(gctx, owner, repo, number)
		if err != nil {
			return err
		}
		reviewComments = comments
		return nil
	})
	g.Go(func() error {
		comments, err := c.fetchIssueComments(gctx, owner, repo, number)
		if err != nil {
			return err
		}
		issueComments = comments
		return nil
	})
	g.Go(func() error {
		comments, reviewStates, err := c.fetchReviews(gctx, owner, repo, number)
		if err != nil {
			return err
		}
		mu.Lock()
		reviewBodies = comments
		states = reviewStates
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]Comment, 0, len(reviewComments)+len(issueComments)+len(reviewBodies))
	all = append(all, reviewComments...)
	all = append(all, issueComments...)
	all = append(all, reviewBodies...)

	c.logger.Info("fetched comments",
		"review_comments", len(reviewComments),
		"issue_comments", len(issueComments),
		"review_summaries", len(reviewBodies),
	)

	return NewReviewData(info, all, states), nil
}

func extractPRInfo(pr *gh.PullRequest, owner, repo string) PullRequestInfo {
	author := "unknown"
	if pr.GetUser() != nil {
		author = pr.GetUser().GetLogin()
	}
	return PullRequestInfo{
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		Author:     author,
		CreatedAt:  pr.GetCreatedAt().Time,
		UpdatedAt:  pr.GetUpdatedAt().Time,
		State:      pr.GetState(),
		BaseBranch: pr.GetBase().GetRef(),
		HeadBranch: pr.GetHead().GetRef(),
		Repository: owner + "/" + repo,
		URL:        pr.GetHTMLURL(),
	}
}

// fetchReviewComments pages through inline review comments.
func (c *Client) fetchReviewComments(ctx context.Context, owner, repo string, number int) ([]Comment, error) {
	var result []Comment
	opts := &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	for {
		comments, resp, err := c.client.PullRequests.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, wrapAPIError("failed to fetch review comments", resp, err)
		}
		for _, rc := range comments {
			comment := NewComment(rc.GetID(), userLogin(rc.GetUser()), rc.GetBody(), rc.GetCreatedAt().Time)
			comment.FilePath = rc.GetPath()
			comment.LineNumber = rc.GetLine()
			comment.CommitSHA = rc.GetCommitID()
			comment.ReviewID = rc.GetPullRequestReviewID()
			result = append(result, comment)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// fetchIssueComments pages through general PR conversation comments.
func (c *Client) fetchIssueComments(ctx context.Context, owner, repo string, number int) ([]Comment, error) {
	var result []Comment
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, wrapAPIError("failed to fetch issue comments", resp, err)
		}
		for _, ic := range comments {
			result = append(result, NewComment(ic.GetID(), userLogin(ic.GetUser()), ic.GetBody(), ic.GetCreatedAt().Time))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// fetchReviews pages through submitted reviews, collecting non-empty review
// bodies as comments and the latest review state per reviewer.
func (c *Client) fetchReviews(ctx context.Context, owner, repo string, number int) ([]Comment, map[string]ReviewState, error) {
	var result []Comment
	states := make(map[string]ReviewState)
	opts := &gh.ListOptions{PerPage: perPage}
	for {
		reviews, resp, err := c.client.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, nil, wrapAPIError("failed to fetch reviews", resp, err)
		}
		for _, rv := range reviews {
			if body := rv.GetBody(); strings.TrimSpace(body) != "" {
				comment := NewComment(rv.GetID(), userLogin(rv.GetUser()), body, rv.GetSubmittedAt().Time)
				comment.ReviewID = rv.GetID()
				result = append(result, comment)
			}
			if rv.GetUser() != nil {
				states[rv.GetUser().GetLogin()] = mapReviewState(rv.GetState())
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, states, nil
}

func mapReviewState(state string) ReviewState {
	switch state {
	case "APPROVED":
		return ReviewStateApproved
	case "CHANGES_REQUESTED":
		return ReviewStateChangesRequested
	case "COMMENTED":
		return ReviewStateCommented
	default:
		return ReviewStatePending
	}
}

func userLogin(u *gh.User) string {
	if u == nil {
		return "unknown"
	}
	return u.GetLogin()
}

