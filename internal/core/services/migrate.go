package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/core/ports/driven"
	"github.com/custodia-labs/docbridge/internal/core/ports/driving"
	"github.com/custodia-labs/docbridge/internal/logger"
	"github.com/custodia-labs/docbridge/internal/navtable"
)

// Ensure MigrationService implements the interface.
var _ driving.Migrator = (*MigrationService)(nil)

// MigrationService bootstraps the reverse direction: given remote
// documentation and no local tree, it materialises the remote tree as
// local files on a new branch and opens a pull request for review
// rather than silently adopting remote state.
type MigrationService struct {
	remote *RemoteTreeBuilder
	repo   driven.Repository
}

// NewMigrationService creates a migration service.
func NewMigrationService(remote *RemoteTreeBuilder, repo driven.Repository) *MigrationService {
	return &MigrationService{remote: remote, repo: repo}
}

// Migrate converts the remote tree into a file set, stages it in an
// isolated temporary workspace copy, commits it on a branch created
// from the default branch and opens a pull request. Branching happens
// through the hosting API, so a detached-head checkout is irrelevant,
// and the isolated copy means a repository entry colliding with the
// branch name cannot be confused with checked-out content.
func (m *MigrationService) Migrate(ctx context.Context, inputs domain.RunInputs) (driving.Report, error) {
	logger.Section("Migrate")
	tree, err := m.remote.Build(ctx, inputs.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("build remote tree: %w", err)
	}
	if len(tree.Root.Children) == 0 && tree.Index.Content == "" {
		logger.Info("Remote documentation is empty, nothing to migrate")
		return driving.Report{}, nil
	}

	files := renderFiles(tree, inputs.DocsPath)

	stage, err := os.MkdirTemp("", "docbridge-migrate-*")
	if err != nil {
		return nil, fmt.Errorf("create staging copy: %w", err)
	}
	defer os.RemoveAll(stage)

	if err := materialize(stage, tree, files); err != nil {
		return nil, fmt.Errorf("materialize staging copy: %w", err)
	}
	logger.Info("Staged %d files in %s", len(files), stage)

	branch := "docbridge-migrate-" + uuid.New().String()[:8]
	if inputs.DryRun {
		logger.Info("Dry run: would open a pull request from branch %s", branch)
		return driving.Report{branch: domain.OutcomeSuccess}, nil
	}

	base, err := m.repo.DefaultBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve default branch: %w", err)
	}
	if err := m.repo.CreateBranch(ctx, branch, base); err != nil {
		return nil, fmt.Errorf("create branch %s: %w", branch, err)
	}
	if _, err := m.repo.CommitFiles(ctx, branch, "Migrate documentation from server", files); err != nil {
		return nil, fmt.Errorf("commit migrated files: %w", err)
	}

	pr, err := m.repo.OpenPullRequest(
		ctx, branch, base,
		"Migrate server documentation",
		"Imports the existing server documentation into the repository for review.",
	)
	if err != nil {
		return nil, fmt.Errorf("open pull request: %w", err)
	}

	logger.Info("Opened pull request %s", pr.URL)
	return driving.Report{pr.URL: domain.OutcomeSuccess}, nil
}

// renderFiles converts the tree into commit files under docsPath:
// every page becomes a markdown file at its logical path, and the index
// file carries the preserved index body plus the regenerated contents
// listing so a later reconcile run resolves to all no-ops.
func renderFiles(tree *domain.Tree, docsPath string) []driven.CommitFile {
	indexContent := strings.TrimRight(tree.Index.Content, "\n")
	if len(tree.Root.Children) > 0 {
		indexContent += "\n\n" + navtable.GenerateContents(tree)
	} else {
		indexContent += "\n"
	}

	files := []driven.CommitFile{{
		Path:    path.Join(docsPath, "index.md"),
		Content: indexContent,
	}}
	_ = tree.Root.Walk(func(n *domain.DocumentNode) error {
		if n.IsPage() {
			files = append(files, driven.CommitFile{
				Path:    path.Join(docsPath, n.Path+".md"),
				Content: n.Content,
			})
		}
		return nil
	})
	return files
}

// materialize writes the file set (and every group directory) into the
// isolated staging copy.
func materialize(stage string, tree *domain.Tree, files []driven.CommitFile) error {
	err := tree.Root.Walk(func(n *domain.DocumentNode) error {
		if n.IsPage() {
			return nil
		}
		return os.MkdirAll(filepath.Join(stage, filepath.FromSlash(n.Path)), 0o755)
	})
	if err != nil {
		return err
	}

	for _, file := range files {
		target := filepath.Join(stage, filepath.FromSlash(file.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(file.Content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
