package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docbridge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docbridge/internal/connectors/discourse"
	"github.com/custodia-labs/docbridge/internal/connectors/github"
	"github.com/custodia-labs/docbridge/internal/connectors/localfs"
	"github.com/custodia-labs/docbridge/internal/core/services"
	"github.com/custodia-labs/docbridge/internal/logger"
)

// wire loads the configuration and builds the service graph. Runs after
// flag parsing so --config and --docs are known. A no-op when services
// were injected up front (tests use SetServices).
func wire(cmd *cobra.Command) error {
	if reconciler != nil || migrator != nil {
		return nil
	}
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := file.Load(configFlag)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	SetBaseInputs(cfg.Inputs())

	if cfg.Server.BaseURL == "" {
		logger.Debug("No server configured, commands requiring one will fail")
		return nil
	}

	server, err := discourse.New(cfg.Server.BaseURL, cfg.Server.APIKey, cfg.Server.Username)
	if err != nil {
		return fmt.Errorf("configure server connector: %w", err)
	}
	remote := services.NewRemoteTreeBuilder(server)

	docsPath := cfg.Docs.Path
	if docsFlag != "" {
		docsPath = docsFlag
	}
	local := localfs.New(docsPath)
	reconciler = services.NewSyncService(local, remote, services.NewExecutor(server))

	if cfg.GitHub.Token != "" && cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		repo := github.NewClient(context.Background(), cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo)
		migrator = services.NewMigrationService(remote, repo)
	} else {
		logger.Debug("GitHub not configured, migrate is unavailable")
	}
	return nil
}
