package driving

import (
	"context"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

// Report maps each acted-upon remote address to its outcome.
// It is returned in full even when some actions failed, so operators can
// audit exactly what changed and re-run safely.
type Report map[string]domain.Outcome

// Reconciler drives one synchronisation run: build both trees, diff them
// into an action plan, apply the plan.
type Reconciler interface {
	// Reconcile pushes the local documentation tree to the remote server
	// and returns the outcome report. The returned plan carries the
	// execution outcome per action (unannotated in dry-run mode only for
	// actions that were not simulated).
	Reconcile(ctx context.Context, inputs domain.RunInputs) (Report, []domain.Action, error)
}
