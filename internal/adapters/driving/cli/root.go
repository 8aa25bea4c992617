// Package cli is the cobra command-line adapter for docbridge.
//
// Commands drive the core services through the driving ports; service
// wiring happens in cmd/docbridge before Execute runs.
package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docbridge/internal/core/ports/driving"
	"github.com/custodia-labs/docbridge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired by cmd/docbridge. Commands error when their service
// is not configured.
var (
	reconciler driving.Reconciler
	migrator   driving.Migrator
)

var (
	verboseFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "docbridge",
	Short: "Synchronise repository documentation with a documentation server",
	Long: `docbridge keeps a tree of markdown documentation in a repository
synchronised with the flat topic structure of a documentation server,
and can bootstrap the local tree from existing server documentation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return wire(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to the configuration file")
}

// SetServices wires the core services into the commands.
func SetServices(r driving.Reconciler, m driving.Migrator) {
	reconciler = r
	migrator = m
}

// ConfigPath returns the --config flag value.
func ConfigPath() string {
	return configFlag
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// printReport writes the outcome report as stable "address: outcome"
// lines so CI logs are diffable between runs.
func printReport(cmd *cobra.Command, report driving.Report) {
	keys := make([]string, 0, len(report))
	for key := range report {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cmd.Printf("%s: %s\n", key, report[key])
	}
}
