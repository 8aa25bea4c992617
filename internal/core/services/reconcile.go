package services

import (
	"strings"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

// IndexPath is the logical path of the paired index document.
const IndexPath = "index"

// Plan diffs the remote tree against the local tree into the minimal
// ordered action plan transforming remote state into local state.
//
// Ordering guarantees: creates run top-down (a group is created before
// its children reference it), deletes run last and bottom-up (a group
// is not removed while children still reference it). The index document
// action is always the final entry so the executor can regenerate the
// navigation table after all structural changes have been applied.
//
// Paths are the sole identity key: a move or rename is planned as an
// independent delete plus create, never an update.
//
// When keepDeleted is set, deletes are pre-annotated as skip; they stay
// in the plan so operators see what was intentionally left behind.
func Plan(local, remote *domain.Tree, keepDeleted bool) []domain.Action {
	remoteByPath := make(map[string]*domain.DocumentNode)
	for _, node := range remote.Flatten() {
		remoteByPath[domain.NormalizePath(node.Path)] = node
	}

	var creates, updates []domain.Action
	localPaths := make(map[string]bool)
	kindChanged := make(map[string]bool)

	for _, node := range local.Flatten() {
		key := domain.NormalizePath(node.Path)
		localPaths[key] = true

		remoteNode, ok := remoteByPath[key]
		if ok && remoteNode.Kind != node.Kind {
			// A path that changed kind is replaced, not updated.
			kindChanged[key] = true
			ok = false
		}

		if !ok {
			creates = append(creates, domain.Action{Kind: domain.ActionCreate, Path: node.Path})
			continue
		}

		// Carry the remote identity onto the local snapshot so the
		// executor and table regeneration can reference it.
		node.RemoteID = remoteNode.RemoteID

		// The published table can reference a page whose topic was never
		// created (its create failed mid-run). Retry the create; an
		// update against a non-existent topic can never converge.
		if node.IsPage() && remoteNode.RemoteID == "" {
			creates = append(creates, domain.Action{Kind: domain.ActionCreate, Path: node.Path})
			continue
		}

		if !node.IsPage() || (remoteNode.Fingerprint != "" && remoteNode.Fingerprint == node.Fingerprint) {
			updates = append(updates, domain.Action{
				Kind:     domain.ActionNoop,
				Path:     node.Path,
				RemoteID: node.RemoteID,
			})
			continue
		}
		updates = append(updates, domain.Action{
			Kind:     domain.ActionUpdate,
			Path:     node.Path,
			RemoteID: node.RemoteID,
		})
	}

	// Remote-only paths (and kind changes) are deleted children-first.
	var deletes []domain.Action
	remoteNodes := remote.Flatten()
	for i := len(remoteNodes) - 1; i >= 0; i-- {
		node := remoteNodes[i]
		key := domain.NormalizePath(node.Path)
		if localPaths[key] && !kindChanged[key] {
			continue
		}
		action := domain.Action{
			Kind:     domain.ActionDelete,
			Path:     node.Path,
			RemoteID: node.RemoteID,
		}
		if keepDeleted && !kindChanged[key] {
			action.Outcome = domain.OutcomeSkip
		}
		deletes = append(deletes, action)
	}

	if keepDeleted {
		graftKept(local, remoteNodes, localPaths, kindChanged)
	}

	local.Index.RemoteID = remote.Index.RemoteID
	indexAction := domain.Action{
		Kind:     domain.ActionNoop,
		Path:     IndexPath,
		RemoteID: remote.Index.RemoteID,
	}
	if local.Index.Fingerprint != remote.Index.Fingerprint {
		indexAction.Kind = domain.ActionUpdate
	}

	plan := make([]domain.Action, 0, len(creates)+len(updates)+len(deletes)+1)
	plan = append(plan, creates...)
	plan = append(plan, updates...)
	plan = append(plan, deletes...)
	plan = append(plan, indexAction)
	return plan
}

// graftKept reattaches suppressed remote-only nodes to the local
// snapshot. The regenerated table must keep their rows: a row that
// drops out of the table leaves its topic alive but untracked, and a
// later run without suppression could no longer delete it.
func graftKept(local *domain.Tree, remoteNodes []*domain.DocumentNode, localPaths, kindChanged map[string]bool) {
	// Forward order grafts a kept group before its kept children.
	for _, node := range remoteNodes {
		key := domain.NormalizePath(node.Path)
		if localPaths[key] || kindChanged[key] {
			continue
		}
		kept := &domain.DocumentNode{
			Path:     node.Path,
			Title:    node.Title,
			Kind:     node.Kind,
			RemoteID: node.RemoteID,
		}
		parent := local.Root
		if i := strings.LastIndex(node.Path, "/"); i >= 0 {
			if p := local.Lookup(node.Path[:i]); p != nil {
				parent = p
			}
		}
		parent.AddChild(kept)
	}
}
