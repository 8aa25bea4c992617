package driven

import "context"

// CommitFile is one file write staged for a commit.
type CommitFile struct {
	// Path is the repository-relative file path.
	Path string

	// Content is the full file content.
	Content string
}

// PullRequest describes an opened pull request.
type PullRequest struct {
	// URL is the pull request's web address.
	URL string

	// Number is the pull request number.
	Number int
}

// Repository is the version control host used by the migration flow.
// All operations work against the hosting API rather than the local
// checkout, so they remain correct under a detached-head workspace.
type Repository interface {
	// DefaultBranch returns the repository's default branch name.
	// Branches are always created from the default branch, never from
	// the currently checked-out ref.
	DefaultBranch(ctx context.Context) (string, error)

	// CreateBranch creates a new branch pointing at the head of from.
	CreateBranch(ctx context.Context, name, from string) error

	// CommitFiles commits the file set onto the branch and returns the
	// new commit SHA.
	CommitFiles(ctx context.Context, branch, message string, files []CommitFile) (string, error)

	// OpenPullRequest opens a pull request from head into base.
	OpenPullRequest(ctx context.Context, head, base, title, body string) (*PullRequest, error)
}
