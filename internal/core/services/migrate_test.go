package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docbridge/internal/adapters/driven/memory"
	"github.com/custodia-labs/docbridge/internal/connectors/localfs"
	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/core/ports/driven"
)

func seedRemote(server *memory.DocServer) {
	server.SetTopic(indexURL, "# Docs\n\nWelcome.\n\n# Navigation\n\n"+
		"| Level | Path | Navlink |\n| -- | -- | -- |\n"+
		"| 1 | guide | [Guide]() |\n"+
		"| 2 | guide/install | [Install](/t/install/2) |\n"+
		"| 1 | reference | [Reference](/t/reference/3) |\n")
	server.SetTopic("/t/install/2", "# Install\n")
	server.SetTopic("/t/reference/3", "# Reference\n")
}

func fileByPath(files []driven.CommitFile, path string) (driven.CommitFile, bool) {
	for _, file := range files {
		if file.Path == path {
			return file, true
		}
	}
	return driven.CommitFile{}, false
}

func TestMigrationService_Migrate(t *testing.T) {
	t.Run("opens a pull request with the rendered tree", func(t *testing.T) {
		server := memory.NewDocServer()
		seedRemote(server)
		repo := memory.NewRepository("main")

		service := NewMigrationService(NewRemoteTreeBuilder(server), repo)

		report, err := service.Migrate(
			context.Background(), domain.RunInputs{IndexURL: indexURL, DocsPath: "docs"},
		)
		require.NoError(t, err)

		pulls := repo.PullRequests()
		require.Len(t, pulls, 1)
		assert.Equal(t, domain.OutcomeSuccess, report[pulls[0].URL])

		branches := repo.Branches()
		require.Len(t, branches, 2)
		var branch string
		for _, name := range branches {
			if name != "main" {
				branch = name
			}
		}
		require.NotEmpty(t, branch)

		files := repo.Committed(branch)
		require.Len(t, files, 3)

		install, ok := fileByPath(files, "docs/guide/install.md")
		require.True(t, ok)
		assert.Equal(t, "# Install\n", install.Content)

		_, ok = fileByPath(files, "docs/reference.md")
		assert.True(t, ok)

		index, ok := fileByPath(files, "docs/index.md")
		require.True(t, ok)
		assert.Contains(t, index.Content, "# Docs\n\nWelcome.")
		// A reconcile run right after merging must resolve to no-ops, so
		// the index carries the tree's ordering as a contents listing.
		assert.Contains(t, index.Content, "# Contents")
		assert.Contains(t, index.Content, "- [Guide](guide)")
		assert.Contains(t, index.Content, "  - [Install](guide/install.md)")
		assert.NotContains(t, index.Content, "# Navigation")
	})

	t.Run("a reconcile run after migrating converges", func(t *testing.T) {
		server := memory.NewDocServer()
		seedRemote(server)
		repo := memory.NewRepository("main")

		service := NewMigrationService(NewRemoteTreeBuilder(server), repo)

		_, err := service.Migrate(
			context.Background(), domain.RunInputs{IndexURL: indexURL, DocsPath: "docs"},
		)
		require.NoError(t, err)

		var branch string
		for _, name := range repo.Branches() {
			if name != "main" {
				branch = name
			}
		}
		require.NotEmpty(t, branch)

		// Materialise the committed files as a merged checkout.
		checkout := t.TempDir()
		for _, file := range repo.Committed(branch) {
			target := filepath.Join(checkout, filepath.FromSlash(file.Path))
			require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
			require.NoError(t, os.WriteFile(target, []byte(file.Content), 0o644))
		}

		sync := NewSyncService(
			localfs.New(filepath.Join(checkout, "docs")),
			NewRemoteTreeBuilder(server),
			NewExecutor(server),
		)

		// First run: every page and group is a no-op; only the index is
		// rewritten, because the migrated index file gained the contents
		// listing the remote body does not carry yet.
		_, plan, err := sync.Reconcile(context.Background(), domain.RunInputs{IndexURL: indexURL})
		require.NoError(t, err)
		for _, action := range plan {
			if action.Path == IndexPath {
				continue
			}
			assert.Equal(t, domain.ActionNoop, action.Kind, action.Path)
		}

		// Second run: fully converged.
		_, plan, err = sync.Reconcile(context.Background(), domain.RunInputs{IndexURL: indexURL})
		require.NoError(t, err)
		for _, action := range plan {
			assert.Equal(t, domain.ActionNoop, action.Kind, action.Path)
			assert.Equal(t, domain.OutcomeSuccess, action.Outcome, action.Path)
		}
	})

	t.Run("an empty remote yields an empty report", func(t *testing.T) {
		server := memory.NewDocServer()
		server.SetTopic(indexURL, "")
		repo := memory.NewRepository("main")

		service := NewMigrationService(NewRemoteTreeBuilder(server), repo)

		report, err := service.Migrate(
			context.Background(), domain.RunInputs{IndexURL: indexURL, DocsPath: "docs"},
		)
		require.NoError(t, err)

		assert.Empty(t, report)
		assert.Empty(t, repo.PullRequests())
	})

	t.Run("dry run stages without touching the repository", func(t *testing.T) {
		server := memory.NewDocServer()
		seedRemote(server)
		repo := memory.NewRepository("main")

		service := NewMigrationService(NewRemoteTreeBuilder(server), repo)

		report, err := service.Migrate(
			context.Background(),
			domain.RunInputs{IndexURL: indexURL, DocsPath: "docs", DryRun: true},
		)
		require.NoError(t, err)

		require.Len(t, report, 1)
		for _, outcome := range report {
			assert.Equal(t, domain.OutcomeSuccess, outcome)
		}
		assert.Empty(t, repo.PullRequests())
		assert.Len(t, repo.Branches(), 1)
	})

	t.Run("an unreachable index topic is fatal", func(t *testing.T) {
		server := memory.NewDocServer()
		repo := memory.NewRepository("main")

		service := NewMigrationService(NewRemoteTreeBuilder(server), repo)

		_, err := service.Migrate(
			context.Background(), domain.RunInputs{IndexURL: indexURL, DocsPath: "docs"},
		)

		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})
}
