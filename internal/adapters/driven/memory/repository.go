package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/core/ports/driven"
)

// Ensure Repository implements the interface.
var _ driven.Repository = (*Repository)(nil)

// Repository is an in-memory version control host recording the
// branches, commits and pull requests the migrator stages.
type Repository struct {
	mu            sync.Mutex
	defaultBranch string
	branches      map[string]bool
	commits       map[string][]driven.CommitFile
	pulls         []driven.PullRequest
}

// NewRepository creates an in-memory repository with the given default branch.
func NewRepository(defaultBranch string) *Repository {
	return &Repository{
		defaultBranch: defaultBranch,
		branches:      map[string]bool{defaultBranch: true},
		commits:       make(map[string][]driven.CommitFile),
	}
}

// DefaultBranch returns the configured default branch.
func (r *Repository) DefaultBranch(_ context.Context) (string, error) {
	return r.defaultBranch, nil
}

// CreateBranch records a new branch.
func (r *Repository) CreateBranch(_ context.Context, name, from string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.branches[from] {
		return fmt.Errorf("%w: branch %s", domain.ErrNotFound, from)
	}
	if r.branches[name] {
		return fmt.Errorf("%w: branch %s", domain.ErrAlreadyExists, name)
	}
	r.branches[name] = true
	return nil
}

// CommitFiles records the file set committed to a branch.
func (r *Repository) CommitFiles(
	_ context.Context, branch, _ string, files []driven.CommitFile,
) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.branches[branch] {
		return "", fmt.Errorf("%w: branch %s", domain.ErrNotFound, branch)
	}
	r.commits[branch] = append(r.commits[branch], files...)
	return fmt.Sprintf("commit-%d", len(r.commits[branch])), nil
}

// OpenPullRequest records an opened pull request.
func (r *Repository) OpenPullRequest(
	_ context.Context, head, base, _, _ string,
) (*driven.PullRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.branches[head] || !r.branches[base] {
		return nil, fmt.Errorf("%w: branch %s or %s", domain.ErrNotFound, head, base)
	}
	pr := driven.PullRequest{
		URL:    fmt.Sprintf("https://example.com/pulls/%d", len(r.pulls)+1),
		Number: len(r.pulls) + 1,
	}
	r.pulls = append(r.pulls, pr)
	return &pr, nil
}

// Committed returns the files committed to a branch.
func (r *Repository) Committed(branch string) []driven.CommitFile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]driven.CommitFile(nil), r.commits[branch]...)
}

// PullRequests returns all opened pull requests.
func (r *Repository) PullRequests() []driven.PullRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]driven.PullRequest(nil), r.pulls...)
}

// Branches returns the recorded branch names.
func (r *Repository) Branches() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.branches))
	for name := range r.branches {
		names = append(names, name)
	}
	return names
}
