package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/tipbox"
	"github.com/yacobolo/tipbox/internal/aicss"
)

// keyAISession holds the token of the last AI conversation.
const keyAISession = "aiSessionId"

var aiCmd = &cobra.Command{
	Use:   "ai INSTRUCTION...",
	Short: "Rewrite the CSS with the AI assistant",
	Long: `Ask the AI assistant to rewrite the current CSS, e.g.

  tipbox ai "make the bar pink with a soft glow"

The answer streams into the editor, which switches to advanced mode. With
--endpoint the request goes through a tipbox server; otherwise the
configured provider is called directly and needs an API key.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		assistant, err := newAssistant(a)
		if err != nil {
			return err
		}

		fresh, _ := cmd.Flags().GetBool("new")
		token := ""
		if !fresh {
			token, _, _ = a.store.Get(keyAISession)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		progress := &progressAssistant{inner: assistant, w: cmd.ErrOrStderr(), quiet: a.config.Quiet}
		res, err := a.session.ApplyEdit(ctx, progress, strings.Join(args, " "), token)
		progress.done()
		if errors.Is(err, context.Canceled) {
			a.printf("Cancelled; kept %s\n", pluralize(res.Chunks, "update", "updates"))
			return nil
		}
		if err != nil {
			return err
		}

		if res.SessionToken != "" {
			if err := a.store.Set(keyAISession, res.SessionToken); err != nil {
				a.logger.Warn().Err(err).Msg("persist AI session")
			}
		}
		a.printf("%s\n", renderOK(fmt.Sprintf("CSS rewritten (%d bytes)", len(res.CSSText)), a.useColors()))
		return nil
	}),
}

// newAssistant picks the HTTP client when an endpoint is configured and
// the provider otherwise.
func newAssistant(a *app) (tipbox.Assistant, error) {
	ai := a.config.AI
	if ai.Endpoint != "" {
		return aicss.NewClient(ai.Endpoint, aicss.WithClientHTTPClient(aicss.NewHTTPClient(ai.Timeout))), nil
	}
	if !ai.Enabled {
		return nil, errors.New("AI features are disabled (ai.enabled is false)")
	}
	if ai.APIKey == "" {
		return nil, fmt.Errorf("%w: set TIPBOX_AI_API_KEY or ai.api-key, or use --endpoint", aicss.ErrNotConfigured)
	}
	return newProvider(a), nil
}

func newProvider(a *app) *aicss.Provider {
	ai := a.config.AI
	return aicss.NewProvider(ai.APIKey,
		aicss.WithBaseURL(ai.BaseURL),
		aicss.WithModel(ai.Model),
		aicss.WithSiteURL(ai.SiteURL),
		aicss.WithHTTPClient(aicss.NewHTTPClient(ai.Timeout)),
		aicss.WithProviderLogger(a.logger),
	)
}

// progressAssistant reports the size of the streamed CSS on one line.
type progressAssistant struct {
	inner   tipbox.Assistant
	w       io.Writer
	quiet   bool
	printed bool
}

func (p *progressAssistant) Edit(ctx context.Context, req tipbox.EditRequest) (tipbox.ChunkReader, error) {
	r, err := p.inner.Edit(ctx, req)
	if err != nil {
		return nil, err
	}
	return &progressReader{ChunkReader: r, p: p}, nil
}

func (p *progressAssistant) done() {
	if p.printed {
		fmt.Fprintln(p.w)
	}
}

type progressReader struct {
	tipbox.ChunkReader
	p *progressAssistant
}

func (r *progressReader) Next() (tipbox.EditChunk, error) {
	chunk, err := r.ChunkReader.Next()
	if err == nil && chunk.Type == tipbox.ChunkContent && !r.p.quiet {
		fmt.Fprintf(r.p.w, "\rreceiving… %d bytes", len(chunk.CSS))
		r.p.printed = true
	}
	return chunk, err
}

func init() {
	f := aiCmd.Flags()
	f.String("endpoint", "", "tipbox server AI endpoint (e.g. http://localhost:8080/api/ai-css)")
	f.String("model", "", "Model id sent to the provider")
	f.String("base-url", "", "OpenAI-compatible API base URL")
	f.Duration("timeout", aicss.DefaultTimeout, "Request timeout")
	f.Bool("new", false, "Start a new AI conversation")
}
