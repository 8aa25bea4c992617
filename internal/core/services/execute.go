package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/core/ports/driven"
	"github.com/custodia-labs/docbridge/internal/core/ports/driving"
	"github.com/custodia-labs/docbridge/internal/logger"
	"github.com/custodia-labs/docbridge/internal/navtable"
)

// Executor applies an action plan against the documentation server, or
// simulates it in dry-run mode.
type Executor struct {
	server driven.DocServer
}

// NewExecutor creates an executor backed by the given server.
func NewExecutor(server driven.DocServer) *Executor {
	return &Executor{server: server}
}

// Apply runs the plan to completion. One action's failure does not abort
// the plan: each outcome is independent and all outcomes are returned
// together so the caller can see exactly which documents are now
// inconsistent. Cancellation stops issuing further actions; actions
// already dispatched are not rolled back.
//
// Successful page creates record the returned topic URL back onto the
// local tree, and the index topic body is recomposed with the
// regenerated navigation table after any structural change.
func (e *Executor) Apply(
	ctx context.Context,
	plan []domain.Action,
	local *domain.Tree,
	inputs domain.RunInputs,
) (driving.Report, []domain.Action) {
	report := make(driving.Report)
	structural := false

	for i := range plan {
		action := &plan[i]
		if ctx.Err() != nil {
			// Stop issuing further actions; the rest stay unannotated.
			break
		}

		switch {
		case action.Outcome == domain.OutcomeSkip:
			// Pre-annotated by delete suppression. Reported, not applied.
			report[e.reportKey(action)] = domain.OutcomeSkip
			continue
		case action.Path == IndexPath:
			e.applyIndex(ctx, action, local, inputs, structural)
		case action.Kind == domain.ActionCreate:
			if e.applyCreate(ctx, action, local, inputs) {
				structural = true
			}
		case action.Kind == domain.ActionUpdate:
			e.applyUpdate(ctx, action, local, inputs)
		case action.Kind == domain.ActionDelete:
			if e.applyDelete(ctx, action, inputs) {
				structural = true
			}
		default:
			action.Outcome = domain.OutcomeSuccess
		}

		report[e.reportKey(action)] = action.Outcome
	}

	return report, plan
}

// reportKey is the identifier an action is reported under: the remote
// address once one exists, the logical path otherwise.
func (e *Executor) reportKey(action *domain.Action) string {
	if action.RemoteID != "" {
		return action.RemoteID
	}
	return action.Path
}

func (e *Executor) applyCreate(
	ctx context.Context,
	action *domain.Action,
	local *domain.Tree,
	inputs domain.RunInputs,
) bool {
	node := local.Lookup(action.Path)
	if node == nil {
		action.Outcome = domain.OutcomeFail
		return false
	}

	// Groups exist only as navigation rows; creating one is a table
	// change, not a server call.
	if !node.IsPage() {
		action.Outcome = domain.OutcomeSuccess
		return true
	}

	if inputs.DryRun {
		action.Outcome = domain.OutcomeSuccess
		return false
	}

	url, err := e.server.Create(ctx, inputs.Category, node.Title, node.Content)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Idempotent create on a retried run.
			action.Outcome = domain.OutcomeSuccess
			return true
		}
		logger.Warn("Create %s failed: %v", action.Path, err)
		action.Outcome = domain.OutcomeFail
		return false
	}

	node.RemoteID = url
	action.RemoteID = url
	action.Outcome = domain.OutcomeSuccess
	return true
}

func (e *Executor) applyUpdate(
	ctx context.Context,
	action *domain.Action,
	local *domain.Tree,
	inputs domain.RunInputs,
) {
	if inputs.DryRun {
		// Existence was already established while building the remote
		// tree; no further pre-flight is needed.
		action.Outcome = domain.OutcomeSuccess
		return
	}

	node := local.Lookup(action.Path)
	if node == nil {
		action.Outcome = domain.OutcomeFail
		return
	}
	if err := e.server.Update(ctx, action.RemoteID, node.Content); err != nil {
		logger.Warn("Update %s failed: %v", action.Path, err)
		action.Outcome = domain.OutcomeFail
		return
	}
	action.Outcome = domain.OutcomeSuccess
}

func (e *Executor) applyDelete(
	ctx context.Context,
	action *domain.Action,
	inputs domain.RunInputs,
) bool {
	// Group rows disappear with the regenerated table.
	if action.RemoteID == "" {
		action.Outcome = domain.OutcomeSuccess
		return true
	}

	if inputs.DryRun {
		action.Outcome = domain.OutcomeSuccess
		return false
	}

	if err := e.server.Delete(ctx, action.RemoteID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Already absent; deletes are idempotent.
			action.Outcome = domain.OutcomeSuccess
			return true
		}
		logger.Warn("Delete %s failed: %v", action.Path, err)
		action.Outcome = domain.OutcomeFail
		return false
	}
	action.Outcome = domain.OutcomeSuccess
	return true
}

// applyIndex rewrites the index topic. The plan places it last: by now
// all creates recorded their topic URLs on the local tree, so the
// regenerated navigation table references every surviving page. A
// structural change forces the rewrite even when the index body itself
// is unchanged, because it invalidates the published table.
func (e *Executor) applyIndex(
	ctx context.Context,
	action *domain.Action,
	local *domain.Tree,
	inputs domain.RunInputs,
	structural bool,
) {
	if action.Kind == domain.ActionNoop {
		if !structural {
			action.Outcome = domain.OutcomeSuccess
			return
		}
		action.Kind = domain.ActionUpdate
	}
	if inputs.DryRun {
		action.Outcome = domain.OutcomeSuccess
		return
	}

	body := navtable.Compose(local.Index.Content, local)
	if err := e.server.Update(ctx, action.RemoteID, body); err != nil {
		logger.Warn("Index rewrite failed: %v", err)
		action.Outcome = domain.OutcomeFail
		return
	}
	action.Outcome = domain.OutcomeSuccess
}
