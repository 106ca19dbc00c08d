package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yacobolo/tipbox"
	"github.com/yacobolo/tipbox/internal/filestore"
)

// app bundles the persisted editor state opened for one command.
type app struct {
	config    appConfig
	logger    zerolog.Logger
	store     *filestore.Store
	session   *tipbox.Session
	revisions *tipbox.RevisionStore
	prefs     *tipbox.Preferences
	out       io.Writer
}

// newLogger writes human-readable logs to w. Quiet wins over verbose.
func newLogger(w io.Writer, config appConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil || config.LogLevel == "" {
		level = zerolog.WarnLevel
	}
	if config.Verbose {
		level = zerolog.DebugLevel
	}
	if config.Quiet {
		level = zerolog.Disabled
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !config.Color && os.Getenv("NO_COLOR") != ""}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// openApp resolves configuration and opens the state directory.
func openApp(cmd *cobra.Command) (*app, error) {
	config := buildAppConfig()
	logger := newLogger(cmd.ErrOrStderr(), config)

	store, err := filestore.OpenDir(config.StateDir,
		filestore.WithCompression(config.Compress),
		filestore.WithQuota(config.QuotaBytes),
		filestore.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	logger.Debug().Str("path", store.Path()).Msg("state opened")

	session, err := tipbox.OpenSession(store, tipbox.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	revisions, err := tipbox.OpenRevisionStore(store,
		tipbox.WithMaxRevisions(config.MaxRevisions),
		tipbox.WithRevisionLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		config:    config,
		logger:    logger,
		store:     store,
		session:   session,
		revisions: revisions,
		prefs:     tipbox.NewPreferences(store),
		out:       cmd.OutOrStdout(),
	}, nil
}

// gallery returns the built-in templates merged with the user's.
func (a *app) gallery() []tipbox.Template {
	if a.config.TemplatesDir == "" {
		return tipbox.BuiltinTemplates()
	}
	user, warnings, err := tipbox.LoadTemplates(a.config.TemplatesDir, a.config.TemplateGlobs)
	if err != nil {
		a.logger.Warn().Err(err).Str("dir", a.config.TemplatesDir).Msg("load templates")
		return tipbox.BuiltinTemplates()
	}
	for _, w := range warnings {
		a.logger.Warn().Msg(w)
	}
	return tipbox.Gallery(user)
}

func (a *app) printf(format string, args ...any) {
	if a.config.Quiet {
		return
	}
	fmt.Fprintf(a.out, format, args...)
}

// printTransition shows the mode switch warning when edits were discarded.
func (a *app) printTransition(t tipbox.Transition) {
	if t.Warning != "" && !a.config.Quiet {
		fmt.Fprintln(a.out, renderBanner(t.Warning, a.useColors()))
	}
	if t.From != t.To {
		a.printf("Mode: %s → %s\n", t.From, t.To)
	}
}

func (a *app) useColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return a.config.Color
}

func (a *app) Close() error {
	return a.store.Close()
}
