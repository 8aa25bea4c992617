package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/docbridge/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Ensure Client implements the interface.
var _ driven.Repository = (*Client)(nil)

// Client implements the Repository port for one GitHub repository.
type Client struct {
	gh          *gh.Client
	owner       string
	repo        string
	rateLimiter *RateLimiter
}

// NewClient creates a repository client with a static access token.
// Works for both PAT and OAuth access tokens.
func NewClient(ctx context.Context, token, owner, repo string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(tc),
		owner:       owner,
		repo:        repo,
		rateLimiter: NewRateLimiter(),
	}
}

// DefaultBranch returns the repository's default branch name.
func (c *Client) DefaultBranch(ctx context.Context) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, c.owner, c.repo)
	if err != nil {
		return "", c.wrapError(err, "get repo")
	}
	c.updateRateLimitFromResponse(resp)

	branch := repository.GetDefaultBranch()
	if branch == "" {
		return "", ErrBranchNotFound
	}
	return branch, nil
}

// CreateBranch creates a branch pointing at the head of from.
// The from branch is resolved through the API, so the state of the
// local checkout (detached head included) does not matter.
func (c *Client) CreateBranch(ctx context.Context, name, from string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	base, resp, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, "refs/heads/"+from)
	if err != nil {
		return c.wrapError(err, "get base ref")
	}
	c.updateRateLimitFromResponse(resp)

	ref := gh.CreateRef{
		Ref: "refs/heads/" + name,
		SHA: base.Object.GetSHA(),
	}
	_, resp, err = c.gh.Git.CreateRef(ctx, c.owner, c.repo, ref)
	if err != nil {
		return c.wrapError(err, "create ref")
	}
	c.updateRateLimitFromResponse(resp)
	return nil
}

// CommitFiles commits the file set onto the branch through the Git Data
// API: one blob per file, a tree on top of the branch head, a commit,
// and a ref update.
func (c *Client) CommitFiles(
	ctx context.Context, branch, message string, files []driven.CommitFile,
) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	head, resp, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, "refs/heads/"+branch)
	if err != nil {
		return "", c.wrapError(err, "get branch ref")
	}
	c.updateRateLimitFromResponse(resp)

	entries := make([]*gh.TreeEntry, 0, len(files))
	for _, file := range files {
		entries = append(entries, &gh.TreeEntry{
			Path:    gh.Ptr(file.Path),
			Mode:    gh.Ptr("100644"),
			Type:    gh.Ptr("blob"),
			Content: gh.Ptr(file.Content),
		})
	}

	tree, resp, err := c.gh.Git.CreateTree(ctx, c.owner, c.repo, head.Object.GetSHA(), entries)
	if err != nil {
		return "", c.wrapError(err, "create tree")
	}
	c.updateRateLimitFromResponse(resp)

	commit := gh.Commit{
		Message: gh.Ptr(message),
		Tree:    tree,
		Parents: []*gh.Commit{{SHA: head.Object.SHA}},
	}
	created, resp, err := c.gh.Git.CreateCommit(ctx, c.owner, c.repo, commit, nil)
	if err != nil {
		return "", c.wrapError(err, "create commit")
	}
	c.updateRateLimitFromResponse(resp)

	_, resp, err = c.gh.Git.UpdateRef(ctx, c.owner, c.repo, "refs/heads/"+branch, gh.UpdateRef{
		SHA:   created.GetSHA(),
		Force: gh.Ptr(false),
	})
	if err != nil {
		return "", c.wrapError(err, "update ref")
	}
	c.updateRateLimitFromResponse(resp)

	return created.GetSHA(), nil
}

// OpenPullRequest opens a pull request from head into base.
func (c *Client) OpenPullRequest(
	ctx context.Context, head, base, title, body string,
) (*driven.PullRequest, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	pr, resp, err := c.gh.PullRequests.Create(ctx, c.owner, c.repo, &gh.NewPullRequest{
		Title: gh.Ptr(title),
		Head:  gh.Ptr(head),
		Base:  gh.Ptr(base),
		Body:  gh.Ptr(body),
	})
	if err != nil {
		return nil, c.wrapError(err, "create pull request")
	}
	c.updateRateLimitFromResponse(resp)

	return &driven.PullRequest{
		URL:    pr.GetHTMLURL(),
		Number: pr.GetNumber(),
	}, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
