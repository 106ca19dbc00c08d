package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/tipbox"
	"github.com/yacobolo/tipbox/internal/aicss"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".tipbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	path := writeConfig(t, `
verbose: true
state:
  dir: /tmp/tipbox-state
  compress: true
revisions:
  max: 3
templates:
  dir: themes
  include:
    - "*.css"
ai:
  enabled: false
  model: some/model
  timeout: 30s
serve:
  addr: ":9090"
  cache-mb: 4
`)
	require.NoError(t, loadConfigFromPath(path))

	config := buildAppConfig()
	assert.True(t, config.Verbose)
	assert.Equal(t, "/tmp/tipbox-state", config.StateDir)
	assert.True(t, config.Compress)
	assert.Equal(t, 3, config.MaxRevisions)
	assert.Equal(t, "themes", config.TemplatesDir)
	assert.Equal(t, []string{"*.css"}, config.TemplateGlobs)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "some/model", config.AI.Model)
	assert.Equal(t, 30*time.Second, config.AI.Timeout)
	assert.Equal(t, ":9090", config.Serve.Addr)
	assert.Equal(t, 4, config.Serve.CacheMB)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()
	require.NoError(t, loadConfigFromPath("/nonexistent/.tipbox.yaml"))

	config := buildAppConfig()
	assert.Equal(t, defaultStateDir(), config.StateDir)
	assert.Equal(t, tipbox.DefaultMaxRevisions, config.MaxRevisions)
	assert.Equal(t, tipbox.DefaultTemplateIncludes, config.TemplateGlobs)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, aicss.DefaultBaseURL, config.AI.BaseURL)
	assert.Equal(t, aicss.DefaultModel, config.AI.Model)
	assert.Equal(t, aicss.DefaultTimeout, config.AI.Timeout)
	assert.Equal(t, ":8080", config.Serve.Addr)
	assert.True(t, config.Serve.Metrics)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	path := writeConfig(t, `
ai:
  api-key: from-file
  model: from-file
revisions:
  max: 5
`)
	t.Setenv("TIPBOX_AI_API_KEY", "from-env")
	t.Setenv("TIPBOX_REVISIONS_MAX", "0")
	t.Setenv("TIPBOX_SERVE_CACHE_MB", "32")

	require.NoError(t, loadConfigFromPath(path))

	config := buildAppConfig()
	assert.Equal(t, "from-env", config.AI.APIKey)
	assert.Equal(t, "from-file", config.AI.Model)
	assert.Equal(t, 0, config.MaxRevisions)
	assert.Equal(t, 32, config.Serve.CacheMB)
}

func TestOpenAIEnvFallback(t *testing.T) {
	resetKoanf()
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("OPENAI_API_BASE", "https://example.test/v1")
	t.Setenv("OPENAI_ORGANIZATION", "ignored")

	require.NoError(t, loadConfigFromPath("/nonexistent/.tipbox.yaml"))
	config := buildAppConfig()
	assert.Equal(t, "sk-openai", config.AI.APIKey)
	assert.Equal(t, "https://example.test/v1", config.AI.BaseURL)
	assert.False(t, k.Exists("organization"))

	resetKoanf()
	t.Setenv("TIPBOX_AI_API_KEY", "sk-tipbox")
	require.NoError(t, loadConfigFromPath("/nonexistent/.tipbox.yaml"))
	assert.Equal(t, "sk-tipbox", buildAppConfig().AI.APIKey)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"TIPBOX_VERBOSE":                    "verbose",
		"TIPBOX_STATE_DIR":                  "state.dir",
		"TIPBOX_AI_API_KEY":                 "ai.api-key",
		"TIPBOX_SERVE_CACHE_MB":             "serve.cache-mb",
		"TIPBOX_LINT_MAX_ISSUES_PER_LINTER": "lint.max-issues-per-linter",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestBuildLintConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildLintConfig()
	assert.True(t, config.RequireOverflowFix)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.False(t, config.UseColors)
}

func TestBuildLintConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	path := writeConfig(t, `
lint:
  require-overflow-fix: false
  max-issues-per-linter: 10
  print-lines: false
`)
	require.NoError(t, loadConfigFromPath(path))

	config := buildLintConfig()
	assert.False(t, config.RequireOverflowFix)
	assert.Equal(t, 10, config.MaxIssuesPerLinter)
	assert.False(t, config.PrintIssuedLines)
}

func TestGetWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return defaults
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
	assert.Equal(t, time.Minute, getDurationWithFallback("flag-key", "config.key", time.Minute))
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tipbox.yaml")

	out, err := runCLI(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "revisions:")
	assert.Contains(t, string(data), "ai:")

	// The generated file must load
	resetKoanf()
	require.NoError(t, loadConfigFromPath(path))
	config := buildAppConfig()
	assert.Equal(t, 10, config.MaxRevisions)
	assert.Equal(t, 2*time.Minute, config.AI.Timeout)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	path := writeConfig(t, "existing")

	_, err := runCLI(t, "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCLI(t, "init", "--config", path, "--force")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# tipbox configuration")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tipbox dev\n", out)
}
