package aicss

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/yacobolo/tipbox"
)

// Provider defaults.
const (
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "qwen/qwen-2.5-coder-32b-instruct:free"
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 4000
	DefaultTimeout     = 2 * time.Minute
	DefaultSiteURL     = "http://localhost:3000"
	AppTitle           = "Kawaii Tipbox - Tipme donation box CSS Editor"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("AI API key not configured")

// Provider calls an OpenAI-compatible chat completions endpoint and turns
// the streamed answer into edit chunks.
type Provider struct {
	baseURL    string
	apiKey     string
	model      string
	siteURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithBaseURL points the provider at another compatible endpoint.
func WithBaseURL(u string) ProviderOption {
	return func(p *Provider) {
		if u != "" {
			p.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithModel sets the default model id.
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithSiteURL sets the HTTP-Referer sent to the provider.
func WithSiteURL(u string) ProviderOption {
	return func(p *Provider) { p.siteURL = u }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) ProviderOption {
	return func(p *Provider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithProviderLogger sets the logger.
func WithProviderLogger(l zerolog.Logger) ProviderOption {
	return func(p *Provider) { p.logger = l }
}

// NewProvider creates a provider using apiKey.
func NewProvider(apiKey string, opts ...ProviderOption) *Provider {
	p := &Provider{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		model:      DefaultModel,
		siteURL:    DefaultSiteURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configured reports whether the provider has credentials.
func (p *Provider) Configured() bool {
	return strings.TrimSpace(p.apiKey) != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
	User        string        `json:"user,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Edit starts a streamed completion. The returned reader yields a content
// chunk per received delta, carrying the accumulated CSS, then a complete
// chunk.
func (p *Provider) Edit(ctx context.Context, req tipbox.EditRequest) (tipbox.ChunkReader, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	model := req.ModelID
	if model == "" {
		model = p.model
	}
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: BuildSystemPrompt(req.CurrentCSS)},
			{Role: "user", Content: req.Instruction},
		},
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Stream:      true,
		User:        req.SessionToken,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("HTTP-Referer", p.siteURL)
	httpReq.Header.Set("X-Title", AppTitle)

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &tipbox.RemoteError{Message: "AI provider unreachable", Err: err}
	}
	p.logger.Debug().
		Str("model", model).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("ai provider responded")

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, providerError(resp)
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		// Provider ignored stream:true
		defer resp.Body.Close()
		return p.readWhole(resp.Body, req)
	}
	return newSSEReader(resp.Body, req), nil
}

func (p *Provider) readWhole(body io.Reader, req tipbox.EditRequest) (tipbox.ChunkReader, error) {
	var cr chatResponse
	if err := json.NewDecoder(io.LimitReader(body, maxLine)).Decode(&cr); err != nil {
		return nil, &tipbox.RemoteError{Message: "invalid response from AI provider", Err: err}
	}
	if cr.Error != nil {
		return nil, &tipbox.RemoteError{Message: sanitize(cr.Error.Message)}
	}
	var content string
	if len(cr.Choices) > 0 {
		content = cr.Choices[0].Message.Content
	}
	return &sliceReader{chunks: []tipbox.EditChunk{
		{Type: tipbox.ChunkContent, CSS: finalCSS(content, req.CurrentCSS)},
		{Type: tipbox.ChunkComplete, SessionToken: req.SessionToken},
	}}, nil
}

// finalCSS falls back to the input when the model returned nothing.
func finalCSS(content, current string) string {
	if css := cleanCompletion(content); css != "" {
		return css
	}
	return current
}

// providerError turns a non-200 response into a RemoteError without
// leaking provider internals.
func providerError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var cr chatResponse
	msg := ""
	if json.Unmarshal(data, &cr) == nil && cr.Error != nil {
		msg = sanitize(cr.Error.Message)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		msg = "AI provider rejected the API key"
	case resp.StatusCode == http.StatusTooManyRequests:
		msg = "AI provider rate limit reached, try again later"
	case msg == "":
		msg = fmt.Sprintf("AI provider returned status %d", resp.StatusCode)
	}
	return &tipbox.RemoteError{Message: msg}
}

// sanitize keeps provider messages short and on one line.
func sanitize(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	const limit = 200
	if len(msg) <= limit {
		return msg
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + "..."
}

// sseReader converts a chat completion event stream into edit chunks.
type sseReader struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	req     tipbox.EditRequest
	acc     strings.Builder
	emitted string
	pending []tipbox.EditChunk
	done    bool
}

func newSSEReader(body io.ReadCloser, req tipbox.EditRequest) *sseReader {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &sseReader{body: body, scanner: sc, req: req}
}

func (r *sseReader) Next() (tipbox.EditChunk, error) {
	for {
		if len(r.pending) > 0 {
			c := r.pending[0]
			r.pending = r.pending[1:]
			return c, nil
		}
		if r.done {
			return tipbox.EditChunk{}, io.EOF
		}
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				r.done = true
				return tipbox.EditChunk{}, &tipbox.RemoteError{Message: "AI stream interrupted", Err: err}
			}
			r.finish()
			continue
		}

		line := strings.TrimSpace(r.scanner.Text())
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			// Comments, event names and blank separators
			continue
		}
		data = strings.TrimSpace(data)
		if data == "[DONE]" {
			r.finish()
			continue
		}

		var cr chatResponse
		if err := json.Unmarshal([]byte(data), &cr); err != nil {
			r.done = true
			return tipbox.EditChunk{}, &tipbox.RemoteError{Message: "malformed stream chunk", Err: err}
		}
		if cr.Error != nil {
			r.done = true
			return tipbox.EditChunk{Type: tipbox.ChunkError, Message: sanitize(cr.Error.Message)}, nil
		}
		if len(cr.Choices) == 0 || cr.Choices[0].Delta.Content == "" {
			continue
		}
		r.acc.WriteString(cr.Choices[0].Delta.Content)
		r.emitted = r.acc.String()
		return tipbox.EditChunk{Type: tipbox.ChunkContent, CSS: r.emitted}, nil
	}
}

// finish queues the cleaned final text, if it differs from the last chunk,
// and the complete chunk.
func (r *sseReader) finish() {
	if r.done {
		return
	}
	r.done = true
	if css := finalCSS(r.acc.String(), r.req.CurrentCSS); css != r.emitted {
		r.pending = append(r.pending, tipbox.EditChunk{Type: tipbox.ChunkContent, CSS: css})
	}
	r.pending = append(r.pending, tipbox.EditChunk{Type: tipbox.ChunkComplete, SessionToken: r.req.SessionToken})
}

func (r *sseReader) Close() error {
	r.done = true
	r.pending = nil
	return r.body.Close()
}
