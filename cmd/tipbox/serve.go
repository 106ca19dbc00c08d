package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/yacobolo/tipbox"
	"github.com/yacobolo/tipbox/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service (AI proxy, templates, previews)",
	RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
		cfg := a.config

		opts := []server.Option{
			server.WithAIEnabled(cfg.AI.Enabled),
			server.WithTemplates(a.gallery()),
			server.WithCacheSize(cfg.Serve.CacheMB),
			server.WithLogger(a.logger),
		}
		if cfg.Serve.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			opts = append(opts, server.WithRegistry(reg))
		}

		var assistant tipbox.Assistant
		if cfg.AI.APIKey != "" {
			assistant = newProvider(a)
		} else if cfg.AI.Enabled {
			a.logger.Warn().Msg("no AI API key configured, /api/ai-css will answer 500")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a.logger.Info().
			Str("addr", cfg.Serve.Addr).
			Bool("ai", cfg.AI.Enabled && assistant != nil).
			Bool("metrics", cfg.Serve.Metrics).
			Msg("starting tipbox server")
		return server.New(assistant, opts...).Run(ctx, cfg.Serve.Addr)
	}),
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", server.DefaultAddr, "Listen address")
	f.Int("cache-mb", server.DefaultCacheMB, "Preview cache size in MB (0 disables)")
	f.Bool("metrics", true, "Serve Prometheus metrics on /metrics")
	f.Bool("ai-enabled", true, "Enable the AI endpoint")
	f.String("model", "", "Model id sent to the provider")
	f.String("base-url", "", "OpenAI-compatible API base URL")
	f.String("templates-dir", "", "Directory with extra template .css files")
}
