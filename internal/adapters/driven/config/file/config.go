package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

// DefaultFilename is the config file name looked up in the working
// directory when no explicit path is given.
const DefaultFilename = "docbridge.toml"

// Config is the full TOML configuration surface.
type Config struct {
	// Docs configures the documentation tree on both sides.
	Docs struct {
		// Path is the documentation root directory.
		Path string `toml:"path"`

		// IndexURL is the remote index topic URL.
		IndexURL string `toml:"index_url"`

		// Category is the server category topics are created under.
		Category int `toml:"category"`
	} `toml:"docs"`

	// Server configures the Discourse connector.
	Server struct {
		BaseURL  string `toml:"base_url"`
		APIKey   string `toml:"api_key"`
		Username string `toml:"username"`
	} `toml:"server"`

	// GitHub configures the version control connector for migration.
	GitHub struct {
		Token string `toml:"token"`
		Owner string `toml:"owner"`
		Repo  string `toml:"repo"`
	} `toml:"github"`

	// Run holds the default run flags; command-line flags override them.
	Run struct {
		DryRun      bool `toml:"dry_run"`
		KeepDeleted bool `toml:"keep_deleted"`
	} `toml:"run"`
}

// Load reads the configuration. An empty path falls back to
// docbridge.toml in the working directory; a missing file yields the
// zero config so credentials can come from the environment instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFilename
	}

	cfg := &Config{}
	cfg.Docs.Path = "docs"

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Docs.Path == "" {
		cfg.Docs.Path = "docs"
	}
	applyEnv(cfg)
	return cfg, nil
}

// applyEnv fills credentials from the environment when the file leaves
// them empty, so secrets can stay out of the repository.
func applyEnv(cfg *Config) {
	if cfg.Server.APIKey == "" {
		cfg.Server.APIKey = os.Getenv("DOCBRIDGE_API_KEY")
	}
	if cfg.Server.Username == "" {
		cfg.Server.Username = os.Getenv("DOCBRIDGE_API_USERNAME")
	}
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("DOCBRIDGE_GITHUB_TOKEN")
	}
}

// Inputs converts the configuration into run inputs.
func (c *Config) Inputs() domain.RunInputs {
	return domain.RunInputs{
		DocsPath:    c.Docs.Path,
		IndexURL:    c.Docs.IndexURL,
		Category:    c.Docs.Category,
		DryRun:      c.Run.DryRun,
		KeepDeleted: c.Run.KeepDeleted,
	}
}
