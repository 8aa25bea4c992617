package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Propose a local documentation tree built from the server",
	Long: `Builds the documentation tree from the server's navigation table,
materialises it as markdown files on a new branch created from the
default branch, and opens a pull request for review. Used when the
repository has remote documentation but no docs directory yet.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "stage the migration without branching or opening a pull request")
	migrateCmd.Flags().StringVar(&indexFlag, "index", "", "remote index topic URL (overrides config)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migrator == nil {
		return fmt.Errorf("%w: migrate service (set the [github] configuration)", domain.ErrNotConfigured)
	}

	inputs := resolveInputs(cmd)
	report, err := migrator.Migrate(context.Background(), inputs)
	if err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}

	if len(report) == 0 {
		cmd.Println("Remote documentation is empty, nothing to migrate.")
		return nil
	}
	printReport(cmd, report)
	return nil
}
