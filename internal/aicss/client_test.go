package aicss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/tipbox"
)

func TestClientReadsNDJSONStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tipbox.EditRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "make it pink", req.Instruction)
		assert.Equal(t, ".goal {}", req.CurrentCSS)

		w.Header().Set("Content-Type", ContentTypeNDJSON)
		cw := NewChunkWriter(w)
		require.NoError(t, cw.Write(tipbox.EditChunk{Type: tipbox.ChunkContent, CSS: ".goal {"}))
		require.NoError(t, cw.Write(tipbox.EditChunk{Type: tipbox.ChunkContent, CSS: ".goal { color: pink; }"}))
		require.NoError(t, cw.Write(tipbox.EditChunk{Type: tipbox.ChunkComplete, SessionToken: "s-9"}))
		// Anything after a terminal chunk is ignored
		require.NoError(t, cw.Write(tipbox.EditChunk{Type: tipbox.ChunkContent, CSS: "ignored"}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithClientHTTPClient(srv.Client()))
	r, err := c.Edit(context.Background(), tipbox.EditRequest{Instruction: "make it pink", CurrentCSS: ".goal {}"})
	require.NoError(t, err)

	chunks := drain(t, r)
	require.Len(t, chunks, 3)
	assert.Equal(t, ".goal { color: pink; }", chunks[1].CSS)
	assert.Equal(t, "s-9", chunks[2].SessionToken)
}

func TestClientReadsSingleDocumentAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":{"originalCss":".a {}","modifiedCss":".a { color: red; }","prompt":"red"},"sessionId":"abc"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithClientHTTPClient(srv.Client()))
	r, err := c.Edit(context.Background(), tipbox.EditRequest{Instruction: "red", CurrentCSS: ".a {}"})
	require.NoError(t, err)

	chunks := drain(t, r)
	require.Len(t, chunks, 2)
	assert.Equal(t, tipbox.EditChunk{Type: tipbox.ChunkContent, CSS: ".a { color: red; }"}, chunks[0])
	assert.Equal(t, tipbox.EditChunk{Type: tipbox.ChunkComplete, SessionToken: "abc"}, chunks[1])
}

func TestClientErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"disabled", http.StatusForbidden, `{"error":"AI features are disabled"}`, "AI features are disabled"},
		{"validation", http.StatusBadRequest, `{"error":"Prompt is required"}`, "Prompt is required"},
		{"plain text", http.StatusInternalServerError, "boom", "AI service returned status 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, WithClientHTTPClient(srv.Client()))
			_, err := c.Edit(context.Background(), tipbox.EditRequest{Instruction: "x", CurrentCSS: "y"})
			var re *tipbox.RemoteError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.wantMsg, re.Error())
		})
	}
}

func TestClientAppliesThroughSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", ContentTypeNDJSON)
		cw := NewChunkWriter(w)
		_ = cw.Write(tipbox.EditChunk{Type: tipbox.ChunkContent, CSS: ".goal { color: #123456; }"})
		_ = cw.Write(tipbox.EditChunk{Type: tipbox.ChunkComplete, SessionToken: "t"})
	}))
	defer srv.Close()

	s, err := tipbox.OpenSession(tipbox.NewMemoryStorage())
	require.NoError(t, err)

	res, err := s.ApplyEdit(context.Background(), NewClient(srv.URL), "navy", "")
	require.NoError(t, err)
	assert.Equal(t, "t", res.SessionToken)
	assert.Equal(t, tipbox.ModeAdvanced, s.Mode())
	assert.Equal(t, ".DonateGoal_style__goal { color: #123456; }", s.CSSText())
}

func TestClientStreamErrorChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", ContentTypeNDJSON)
		cw := NewChunkWriter(w)
		_ = cw.Write(tipbox.EditChunk{Type: tipbox.ChunkContent, CSS: ".goal { color: red; }"})
		_ = cw.Write(tipbox.EditChunk{Type: tipbox.ChunkError, Message: "quota exceeded"})
	}))
	defer srv.Close()

	s, err := tipbox.OpenSession(tipbox.NewMemoryStorage())
	require.NoError(t, err)

	_, err = s.ApplyEdit(context.Background(), NewClient(srv.URL), "red", "")
	var re *tipbox.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "quota exceeded", re.Message)
	// The chunk before the error stays applied
	assert.Equal(t, ".DonateGoal_style__goal { color: red; }", s.CSSText())
}
