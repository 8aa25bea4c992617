package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docbridge.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses a full configuration file", func(t *testing.T) {
		path := writeConfig(t, `
[docs]
path = "documentation"
index_url = "https://forum.example.com/t/docs-index/100"
category = 7

[server]
base_url = "https://forum.example.com"
api_key = "secret"
username = "docbot"

[github]
token = "ghp_token"
owner = "example"
repo = "product"

[run]
dry_run = true
keep_deleted = true
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "documentation", cfg.Docs.Path)
		assert.Equal(t, "https://forum.example.com/t/docs-index/100", cfg.Docs.IndexURL)
		assert.Equal(t, 7, cfg.Docs.Category)
		assert.Equal(t, "https://forum.example.com", cfg.Server.BaseURL)
		assert.Equal(t, "secret", cfg.Server.APIKey)
		assert.Equal(t, "example", cfg.GitHub.Owner)
		assert.True(t, cfg.Run.DryRun)
		assert.True(t, cfg.Run.KeepDeleted)
	})

	t.Run("a missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

		require.NoError(t, err)
		assert.Equal(t, "docs", cfg.Docs.Path)
		assert.Empty(t, cfg.Server.BaseURL)
	})

	t.Run("defaults the docs path when omitted", func(t *testing.T) {
		path := writeConfig(t, "[server]\nbase_url = \"https://forum.example.com\"\n")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "docs", cfg.Docs.Path)
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		path := writeConfig(t, "not [valid toml\n")

		_, err := Load(path)

		assert.Error(t, err)
	})

	t.Run("fills credentials from the environment", func(t *testing.T) {
		t.Setenv("DOCBRIDGE_API_KEY", "env-key")
		t.Setenv("DOCBRIDGE_API_USERNAME", "env-user")
		t.Setenv("DOCBRIDGE_GITHUB_TOKEN", "env-token")

		path := writeConfig(t, "[server]\nbase_url = \"https://forum.example.com\"\n")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "env-key", cfg.Server.APIKey)
		assert.Equal(t, "env-user", cfg.Server.Username)
		assert.Equal(t, "env-token", cfg.GitHub.Token)
	})

	t.Run("the file takes precedence over the environment", func(t *testing.T) {
		t.Setenv("DOCBRIDGE_API_KEY", "env-key")

		path := writeConfig(t, "[server]\napi_key = \"file-key\"\n")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "file-key", cfg.Server.APIKey)
	})
}

func TestConfig_Inputs(t *testing.T) {
	t.Run("maps configuration onto run inputs", func(t *testing.T) {
		cfg := &Config{}
		cfg.Docs.Path = "documentation"
		cfg.Docs.IndexURL = "/t/index/1"
		cfg.Docs.Category = 3
		cfg.Run.DryRun = true

		inputs := cfg.Inputs()

		assert.Equal(t, "documentation", inputs.DocsPath)
		assert.Equal(t, "/t/index/1", inputs.IndexURL)
		assert.Equal(t, 3, inputs.Category)
		assert.True(t, inputs.DryRun)
		assert.False(t, inputs.KeepDeleted)
	})
}
