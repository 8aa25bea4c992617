package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/core/ports/driving"
	"github.com/custodia-labs/docbridge/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.Reconciler = (*SyncService)(nil)

// LocalSource builds the local tree snapshot. The localfs builder
// implements it; tests substitute fixtures.
type LocalSource interface {
	// Exists reports whether the documentation directory is present.
	Exists() bool

	// Build walks the documentation directory into a tree.
	Build() (*domain.Tree, error)
}

// SyncService coordinates one reconciliation run: both tree snapshots
// are taken, diffed into a plan, and the plan is applied. Trees are
// built fresh each run and discarded; no state survives across runs, so
// repeated or partially-failed runs are always safe to retry.
type SyncService struct {
	local    LocalSource
	remote   *RemoteTreeBuilder
	executor *Executor
}

// NewSyncService creates a sync service.
func NewSyncService(local LocalSource, remote *RemoteTreeBuilder, executor *Executor) *SyncService {
	return &SyncService{
		local:    local,
		remote:   remote,
		executor: executor,
	}
}

// Reconcile pushes the local documentation tree to the remote server.
// Structure errors abort before any action executes; per-action network
// failures are recorded in the report and the plan continues.
func (s *SyncService) Reconcile(
	ctx context.Context,
	inputs domain.RunInputs,
) (driving.Report, []domain.Action, error) {
	logger.Section("Reconcile")
	if !s.local.Exists() {
		return nil, nil, fmt.Errorf(
			"%w: documentation directory %s does not exist (run migrate to bootstrap it)",
			domain.ErrInvalidStructure, inputs.DocsPath,
		)
	}

	localTree, err := s.local.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build local tree: %w", err)
	}
	logger.Info("Local tree: %d entries", len(localTree.Flatten()))

	remoteTree, err := s.remote.Build(ctx, inputs.IndexURL)
	if err != nil {
		return nil, nil, fmt.Errorf("build remote tree: %w", err)
	}
	logger.Info("Remote tree: %d entries", len(remoteTree.Flatten()))

	plan := Plan(localTree, remoteTree, inputs.KeepDeleted)
	if inputs.DryRun {
		logger.Info("Dry run: %d planned actions will not be applied", len(plan))
	}

	report, executed := s.executor.Apply(ctx, plan, localTree, inputs)
	return report, executed, nil
}
