package gitcommits

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// RetryConfig bounds the retry behavior for platform API calls.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	BackoffFactor  float64
}

// Client implements Lookup against the GitHub API.
type Client struct {
	gh    *github.Client
	retry RetryConfig
}

var _ Lookup = (*Client)(nil)

// NewClient creates a commit lookup client. An empty token falls back to
// unauthenticated access (rate limited by the platform).
func NewClient(token, baseURL string) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
	}

	gh := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise base URL: %w", err)
		}
	}

	return &Client{
		gh: gh,
		retry: RetryConfig{
			MaxRetries:     3,
			InitialBackoff: 100 * time.Millisecond,
			BackoffFactor:  2.0,
		},
	}, nil
}

// FirstCommitTime resolves the earliest commit timestamp in the change
// identified by revision. For a merge commit the pull request's commits are
// inspected; otherwise the revision's own author date is returned.
func (c *Client) FirstCommitTime(ctx context.Context, repository, revision string) (time.Time, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return time.Time{}, err
	}

	var commit *github.RepositoryCommit
	err = c.executeWithRetry(ctx, func() error {
		var resp *github.Response
		commit, resp, err = c.gh.Repositories.GetCommit(ctx, owner, repo, revision, nil)
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return ErrRevisionNotFound
		}
		return err
	})
	if err != nil {
		if err == ErrRevisionNotFound {
			return time.Time{}, ErrRevisionNotFound
		}
		return time.Time{}, fmt.Errorf("failed to get commit %s: %w", revision, err)
	}

	// Merge commits: the first commit of the merged change is the earliest
	// commit on the pull request, not the merge itself.
	if len(commit.Parents) > 1 {
		if t, ok := c.earliestPullRequestCommit(ctx, owner, repo, revision); ok {
			return t, nil
		}
	}

	t := commitDate(commit)
	if t.IsZero() {
		return time.Time{}, ErrEmptyHistory
	}
	return t, nil
}

// earliestPullRequestCommit finds the pull request merged as revision and
// returns its oldest commit date. Best effort: (false) means fall back to the
// merge commit's own date.
func (c *Client) earliestPullRequestCommit(ctx context.Context, owner, repo, revision string) (time.Time, bool) {
	prs, _, err := c.gh.PullRequests.ListPullRequestsWithCommit(ctx, owner, repo, revision, nil)
	if err != nil || len(prs) == 0 {
		return time.Time{}, false
	}

	opts := &github.ListOptions{PerPage: 100}
	var earliest time.Time
	for {
		commits, resp, err := c.gh.PullRequests.ListCommits(ctx, owner, repo, prs[0].GetNumber(), opts)
		if err != nil {
			return time.Time{}, false
		}
		for _, commit := range commits {
			if t := commitDate(commit); !t.IsZero() && (earliest.IsZero() || t.Before(earliest)) {
				earliest = t
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return earliest, !earliest.IsZero()
}

// executeWithRetry retries transient platform failures with exponential
// backoff. Not-found is terminal.
func (c *Client) executeWithRetry(ctx context.Context, fn func() error) error {
	backoff := c.retry.InitialBackoff
	var err error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if err = fn(); err == nil || err == ErrRevisionNotFound {
			return err
		}
		if !isTransient(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * c.retry.BackoffFactor)
	}
	return err
}

func isTransient(err error) bool {
	if _, ok := err.(*github.RateLimitError); ok {
		return true
	}
	if _, ok := err.(*github.AbuseRateLimitError); ok {
		return true
	}
	if errResp, ok := err.(*github.ErrorResponse); ok {
		return errResp.Response != nil && errResp.Response.StatusCode >= 500
	}
	return false
}

func commitDate(commit *github.RepositoryCommit) time.Time {
	if commit == nil || commit.Commit == nil {
		return time.Time{}
	}
	if author := commit.Commit.Author; author != nil && author.Date != nil {
		return author.Date.Time
	}
	if committer := commit.Commit.Committer; committer != nil && committer.Date != nil {
		return committer.Date.Time
	}
	return time.Time{}
}

func splitRepository(repository string) (owner, repo string, err error) {
	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: want owner/name", repository)
	}
	return parts[0], parts[1], nil
}
