package driving

import (
	"context"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

// Migrator drives the reverse flow: when remote documentation exists but
// no local tree does, build the local tree from remote state and propose
// it as a pull request for review.
type Migrator interface {
	// Migrate materialises the remote tree as local files on a new
	// branch and opens a pull request into the default branch.
	// The report maps the pull request URL to its outcome.
	Migrate(ctx context.Context, inputs domain.RunInputs) (Report, error)
}
