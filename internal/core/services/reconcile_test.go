package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

func page(path, title, content string) *domain.DocumentNode {
	return &domain.DocumentNode{
		Path:        path,
		Title:       title,
		Kind:        domain.KindPage,
		Content:     content,
		Fingerprint: domain.Fingerprint(content),
	}
}

func group(path, title string) *domain.DocumentNode {
	return &domain.DocumentNode{Path: path, Title: title, Kind: domain.KindGroup}
}

// actionsOf filters the plan to the given kind, preserving order.
func actionsOf(plan []domain.Action, kind domain.ActionKind) []string {
	var paths []string
	for _, action := range plan {
		if action.Kind == kind {
			paths = append(paths, action.Path)
		}
	}
	return paths
}

func TestPlan(t *testing.T) {
	t.Run("local-only entries are created top-down", func(t *testing.T) {
		local := domain.NewTree()
		guide := group("guide", "Guide")
		local.Root.AddChild(guide)
		guide.AddChild(page("guide/install", "Install", "# Install\n"))

		plan := Plan(local, domain.NewTree(), false)

		assert.Equal(t, []string{"guide", "guide/install"}, actionsOf(plan, domain.ActionCreate))
	})

	t.Run("matching fingerprints resolve to no-ops", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(page("guide", "Guide", "# Guide\n"))

		remote := domain.NewTree()
		remotePage := page("guide", "Guide", "# Guide\n")
		remotePage.RemoteID = "/t/guide/7"
		remote.Root.AddChild(remotePage)

		plan := Plan(local, remote, false)

		assert.Equal(t, []string{"guide"}, actionsOf(plan, domain.ActionNoop)[:1])
		// The remote identity is carried onto the local snapshot.
		assert.Equal(t, "/t/guide/7", local.Lookup("guide").RemoteID)
	})

	t.Run("changed fingerprints resolve to updates", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(page("guide", "Guide", "# Guide\n\nRevised.\n"))

		remote := domain.NewTree()
		remotePage := page("guide", "Guide", "# Guide\n")
		remotePage.RemoteID = "/t/guide/7"
		remote.Root.AddChild(remotePage)

		plan := Plan(local, remote, false)

		assert.Equal(t, []string{"guide"}, actionsOf(plan, domain.ActionUpdate))
	})

	t.Run("an empty remote fingerprint counts as changed", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(page("guide", "Guide", "# Guide\n"))

		remote := domain.NewTree()
		remotePage := &domain.DocumentNode{Path: "guide", Kind: domain.KindPage, RemoteID: "/t/guide/7"}
		remote.Root.AddChild(remotePage)

		plan := Plan(local, remote, false)

		assert.Equal(t, []string{"guide"}, actionsOf(plan, domain.ActionUpdate))
	})

	t.Run("a page whose topic was never created is planned as a create", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(page("guide", "Guide", "# Guide\n"))

		// The published table referenced the page with a placeholder, so
		// the remote node carries no topic address.
		remote := domain.NewTree()
		remote.Root.AddChild(&domain.DocumentNode{Path: "guide", Kind: domain.KindPage})

		plan := Plan(local, remote, false)

		assert.Equal(t, []string{"guide"}, actionsOf(plan, domain.ActionCreate))
		assert.Empty(t, actionsOf(plan, domain.ActionUpdate))
		assert.Empty(t, actionsOf(plan, domain.ActionDelete))
	})

	t.Run("remote-only entries are deleted bottom-up", func(t *testing.T) {
		remote := domain.NewTree()
		guide := group("guide", "Guide")
		remote.Root.AddChild(guide)
		child := page("guide/install", "Install", "# Install\n")
		child.RemoteID = "/t/install/9"
		guide.AddChild(child)

		plan := Plan(domain.NewTree(), remote, false)

		assert.Equal(t, []string{"guide/install", "guide"}, actionsOf(plan, domain.ActionDelete))
	})

	t.Run("delete suppression pre-annotates skip outcomes", func(t *testing.T) {
		remote := domain.NewTree()
		remotePage := page("guide", "Guide", "# Guide\n")
		remotePage.RemoteID = "/t/guide/7"
		remote.Root.AddChild(remotePage)

		plan := Plan(domain.NewTree(), remote, true)

		deletes := actionsOf(plan, domain.ActionDelete)
		require.Equal(t, []string{"guide"}, deletes)
		assert.Equal(t, domain.OutcomeSkip, plan[0].Outcome)
	})

	t.Run("suppressed deletes keep their nodes in the local snapshot", func(t *testing.T) {
		local := domain.NewTree()

		remote := domain.NewTree()
		legacy := group("legacy", "Legacy")
		remote.Root.AddChild(legacy)
		child := page("legacy/notes", "Notes", "# Notes\n")
		child.RemoteID = "/t/notes/8"
		legacy.AddChild(child)

		Plan(local, remote, true)

		kept := local.Lookup("legacy/notes")
		require.NotNil(t, kept)
		assert.Equal(t, "/t/notes/8", kept.RemoteID)
		assert.Equal(t, 2, kept.Level)
		require.NotNil(t, local.Lookup("legacy"))
	})

	t.Run("a kind change is replaced even under delete suppression", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(group("guide", "Guide"))

		remote := domain.NewTree()
		remotePage := page("guide", "Guide", "# Guide\n")
		remotePage.RemoteID = "/t/guide/7"
		remote.Root.AddChild(remotePage)

		plan := Plan(local, remote, true)

		assert.Equal(t, []string{"guide"}, actionsOf(plan, domain.ActionCreate))
		require.Equal(t, []string{"guide"}, actionsOf(plan, domain.ActionDelete))
		for _, action := range plan {
			if action.Kind == domain.ActionDelete {
				// Replacement, not removal: suppression does not apply.
				assert.Equal(t, domain.Outcome(""), action.Outcome)
			}
		}
	})

	t.Run("a rename is a delete plus a create", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(page("quickstart", "Quickstart", "# Quickstart\n"))

		remote := domain.NewTree()
		remotePage := page("getting-started", "Quickstart", "# Quickstart\n")
		remotePage.RemoteID = "/t/getting-started/5"
		remote.Root.AddChild(remotePage)

		plan := Plan(local, remote, false)

		assert.Equal(t, []string{"quickstart"}, actionsOf(plan, domain.ActionCreate))
		assert.Equal(t, []string{"getting-started"}, actionsOf(plan, domain.ActionDelete))
		assert.Empty(t, actionsOf(plan, domain.ActionUpdate))
	})

	t.Run("paths match case-insensitively", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(page("Guide", "Guide", "# Guide\n"))

		remote := domain.NewTree()
		remotePage := page("guide", "Guide", "# Guide\n")
		remotePage.RemoteID = "/t/guide/7"
		remote.Root.AddChild(remotePage)

		plan := Plan(local, remote, false)

		assert.Empty(t, actionsOf(plan, domain.ActionCreate))
		assert.Empty(t, actionsOf(plan, domain.ActionDelete))
	})

	t.Run("the index action is always last", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(page("guide", "Guide", "# Guide\n"))
		local.Index.Content = "# Docs\n"
		local.Index.Fingerprint = domain.Fingerprint(local.Index.Content)

		remote := domain.NewTree()
		remote.Index.Content = "# Old Docs\n"
		remote.Index.Fingerprint = domain.Fingerprint(remote.Index.Content)
		remote.Index.RemoteID = "/t/index/1"

		plan := Plan(local, remote, false)

		require.NotEmpty(t, plan)
		last := plan[len(plan)-1]
		assert.Equal(t, IndexPath, last.Path)
		assert.Equal(t, domain.ActionUpdate, last.Kind)
		assert.Equal(t, "/t/index/1", last.RemoteID)
	})

	t.Run("an unchanged index resolves to a no-op", func(t *testing.T) {
		local := domain.NewTree()
		local.Index.Fingerprint = domain.Fingerprint("# Docs\n")
		remote := domain.NewTree()
		remote.Index.Fingerprint = domain.Fingerprint("# Docs\n")

		plan := Plan(local, remote, false)

		require.Len(t, plan, 1)
		assert.Equal(t, domain.ActionNoop, plan[0].Kind)
	})

	t.Run("creates come before updates, deletes before the index", func(t *testing.T) {
		local := domain.NewTree()
		local.Root.AddChild(page("new", "New", "# New\n"))
		local.Root.AddChild(page("changed", "Changed", "# Changed v2\n"))

		remote := domain.NewTree()
		changed := page("changed", "Changed", "# Changed\n")
		changed.RemoteID = "/t/changed/2"
		remote.Root.AddChild(changed)
		gone := page("gone", "Gone", "# Gone\n")
		gone.RemoteID = "/t/gone/3"
		remote.Root.AddChild(gone)

		plan := Plan(local, remote, false)

		kinds := make([]domain.ActionKind, 0, len(plan))
		for _, action := range plan {
			kinds = append(kinds, action.Kind)
		}
		assert.Equal(t, []domain.ActionKind{
			domain.ActionCreate,
			domain.ActionUpdate,
			domain.ActionDelete,
			domain.ActionNoop,
		}, kinds)
	})
}
