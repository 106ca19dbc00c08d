package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/tipbox"
	"github.com/yacobolo/tipbox/internal/aicss"
	"github.com/yacobolo/tipbox/internal/lint"
	"github.com/yacobolo/tipbox/internal/server"
)

const defaultConfigFile = ".tipbox.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set. Flag defaults would otherwise
	// shadow config keys, since flag and config keys differ.
	flags := cmd.Flags()
	changed := func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, changed), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// OPENAI_* names are honored for compatibility, below TIPBOX_*
	if err := k.Load(env.Provider("OPENAI_", ".", openAIEnvKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}
	if err := k.Load(env.Provider("TIPBOX_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}
	return nil
}

// envKey maps TIPBOX_SECTION_SOME_KEY to section.some-key and TIPBOX_VERBOSE
// to verbose.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "TIPBOX_"))
	section, rest, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + strings.ReplaceAll(rest, "_", "-")
}

func openAIEnvKey(s string) string {
	switch s {
	case "OPENAI_API_KEY":
		return "ai.api-key"
	case "OPENAI_API_BASE":
		return "ai.base-url"
	case "OPENAI_MODEL":
		return "ai.model"
	}
	// Dropped by koanf
	return ""
}

// appConfig is the resolved configuration shared by all commands.
type appConfig struct {
	StateDir      string
	Compress      bool
	QuotaBytes    int
	MaxRevisions  int
	TemplatesDir  string
	TemplateGlobs []string
	LogLevel      string
	Verbose       bool
	Quiet         bool
	Color         bool
	Yes           bool

	AI    aiConfig
	Serve serveConfig
}

type aiConfig struct {
	Enabled  bool
	Endpoint string
	BaseURL  string
	APIKey   string
	Model    string
	SiteURL  string
	Timeout  time.Duration
}

type serveConfig struct {
	Addr    string
	CacheMB int
	Metrics bool
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tipbox")
	}
	return ".tipbox"
}

// buildAppConfig constructs the resolved configuration from koanf state.
func buildAppConfig() appConfig {
	config := appConfig{
		StateDir:     getStringWithFallback("state-dir", "state.dir", defaultStateDir()),
		Compress:     getBoolWithFallback("compress", "state.compress", false),
		QuotaBytes:   getIntWithFallback("quota", "state.quota", 0),
		MaxRevisions: getIntWithFallback("max-revisions", "revisions.max", tipbox.DefaultMaxRevisions),
		TemplatesDir: getStringWithFallback("templates-dir", "templates.dir", ""),
		LogLevel:     getStringWithFallback("log-level", "log.level", "warn"),
		Verbose:      getBoolWithFallback("verbose", "verbose", false),
		Quiet:        getBoolWithFallback("quiet", "quiet", false),
		Color:        getBoolWithFallback("color", "color", false),
		Yes:          getBoolWithFallback("yes", "yes", false),
		AI: aiConfig{
			Enabled:  getBoolWithFallback("ai-enabled", "ai.enabled", true),
			Endpoint: getStringWithFallback("endpoint", "ai.endpoint", ""),
			BaseURL:  getStringWithFallback("base-url", "ai.base-url", aicss.DefaultBaseURL),
			APIKey:   getStringWithFallback("api-key", "ai.api-key", ""),
			Model:    getStringWithFallback("model", "ai.model", aicss.DefaultModel),
			SiteURL:  getStringWithFallback("site-url", "ai.site-url", aicss.DefaultSiteURL),
			Timeout:  getDurationWithFallback("timeout", "ai.timeout", aicss.DefaultTimeout),
		},
		Serve: serveConfig{
			Addr:    getStringWithFallback("addr", "serve.addr", server.DefaultAddr),
			CacheMB: getIntWithFallback("cache-mb", "serve.cache-mb", server.DefaultCacheMB),
			Metrics: getBoolWithFallback("metrics", "serve.metrics", true),
		},
	}

	if globs := k.Strings("include"); len(globs) > 0 {
		config.TemplateGlobs = globs
	} else if globs := k.Strings("templates.include"); len(globs) > 0 {
		config.TemplateGlobs = globs
	} else {
		config.TemplateGlobs = tipbox.DefaultTemplateIncludes
	}

	return config
}

// buildLintConfig constructs the lint package's Config from koanf state.
func buildLintConfig() lint.Config {
	defaults := lint.DefaultConfig()
	return lint.Config{
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", defaults.MaxIssuesPerLinter),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", defaults.MaxSameIssues),
		RequireOverflowFix: getBoolWithFallback("require-overflow-fix", "lint.require-overflow-fix", defaults.RequireOverflowFix),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", defaults.PrintIssuedLines),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", defaults.PrintLinterName),
		UseColors:          getBoolWithFallback("color", "color", false),
		NoColor:            defaults.NoColor,
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getDurationWithFallback accepts Go duration strings such as "90s".
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}
