package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

var (
	dryRunFlag      bool
	keepDeletedFlag bool
	docsFlag        string
	indexFlag       string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Push the local documentation tree to the documentation server",
	Long: `Builds the local and remote documentation trees, diffs them into an
action plan (create / update / delete / no-op) and applies the plan.
Re-running after a partial failure is safe: unchanged documents resolve
to no-ops and deletes are idempotent.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "plan without applying any action")
	reconcileCmd.Flags().BoolVar(&keepDeletedFlag, "keep-deleted", false, "report remote-only topics as skipped instead of deleting them")
	reconcileCmd.Flags().StringVar(&docsFlag, "docs", "", "documentation root directory (overrides config)")
	reconcileCmd.Flags().StringVar(&indexFlag, "index", "", "remote index topic URL (overrides config)")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	if reconciler == nil {
		return fmt.Errorf("%w: reconcile service", domain.ErrNotConfigured)
	}

	inputs := resolveInputs(cmd)
	report, plan, err := reconciler.Reconcile(context.Background(), inputs)
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	if inputs.DryRun {
		cmd.Println("Dry run, no actions were applied.")
	}
	for _, action := range plan {
		if action.Kind != domain.ActionNoop {
			cmd.Printf("%s %s\n", action.Kind, action.Path)
		}
	}
	printReport(cmd, report)
	return nil
}

// resolveInputs merges config file defaults with command-line flags.
// Flags win when set.
func resolveInputs(cmd *cobra.Command) domain.RunInputs {
	inputs := baseInputs()
	if cmd.Flags().Changed("dry-run") {
		inputs.DryRun = dryRunFlag
	}
	if cmd.Flags().Changed("keep-deleted") {
		inputs.KeepDeleted = keepDeletedFlag
	}
	if docsFlag != "" {
		inputs.DocsPath = docsFlag
	}
	if indexFlag != "" {
		inputs.IndexURL = indexFlag
	}
	return inputs
}

// baseInputs is replaced by cmd/docbridge with the config file values.
var baseInputs = func() domain.RunInputs {
	return domain.RunInputs{DocsPath: "docs"}
}

// SetBaseInputs installs the configured default run inputs.
func SetBaseInputs(inputs domain.RunInputs) {
	baseInputs = func() domain.RunInputs { return inputs }
}
