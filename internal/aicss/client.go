package aicss

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/yacobolo/tipbox"
)

// Client calls a tipbox server's /api/ai-css endpoint. It understands both
// the streamed NDJSON answer and the single JSON document older servers
// return.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientHTTPClient replaces the HTTP client.
func WithClientHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// NewClient creates a client for endpoint, e.g. http://localhost:8080/api/ai-css.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// legacyResponse is the non-streamed response shape.
type legacyResponse struct {
	Success bool `json:"success"`
	Data    struct {
		OriginalCSS string `json:"originalCss"`
		ModifiedCSS string `json:"modifiedCss"`
		Prompt      string `json:"prompt"`
	} `json:"data"`
	SessionID string `json:"sessionId"`
	Error     string `json:"error"`
}

// Edit posts req and returns a reader over the answer.
func (c *Client) Edit(ctx context.Context, req tipbox.EditRequest) (tipbox.ChunkReader, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", ContentTypeNDJSON+", application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &tipbox.RemoteError{Message: "AI service unreachable", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, remoteStatusError(resp)
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), ContentTypeNDJSON) {
		return newChunkDecoder(resp.Body), nil
	}

	defer resp.Body.Close()
	var lr legacyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxLine)).Decode(&lr); err != nil {
		return nil, &tipbox.RemoteError{Message: "invalid response from AI service", Err: err}
	}
	if !lr.Success {
		return nil, &tipbox.RemoteError{Message: lr.Error}
	}
	return &sliceReader{chunks: []tipbox.EditChunk{
		{Type: tipbox.ChunkContent, CSS: lr.Data.ModifiedCSS},
		{Type: tipbox.ChunkComplete, SessionToken: lr.SessionID},
	}}, nil
}

func remoteStatusError(resp *http.Response) error {
	var e struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return &tipbox.RemoteError{Message: e.Error}
	}
	return &tipbox.RemoteError{Message: fmt.Sprintf("AI service returned status %d", resp.StatusCode)}
}

// NewHTTPClient returns an HTTP client with the given timeout, or
// DefaultTimeout when d is not positive.
func NewHTTPClient(d time.Duration) *http.Client {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &http.Client{Timeout: d}
}
