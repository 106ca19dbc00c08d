package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"github.com/yacobolo/tipbox"
	"github.com/yacobolo/tipbox/internal/aicss"
)

const maxRequestBodySize = 1 << 20

// Error messages returned by the AI endpoint.
const (
	msgAIDisabled      = "AI features are disabled"
	msgInvalidBody     = "Invalid request body"
	msgPromptRequired  = "Prompt is required"
	msgCSSRequired     = "Current CSS is required"
	msgNotConfigured   = "AI API key not configured"
	msgInternalFailure = "Internal Server Error"
)

type errorResponse struct {
	Error string `json:"error"`
}

// editResponse is the single-document answer of a non-streamed edit.
type editResponse struct {
	Success   bool         `json:"success"`
	Data      editDocument `json:"data"`
	SessionID string       `json:"sessionId"`
}

type editDocument struct {
	OriginalCSS string `json:"originalCss"`
	ModifiedCSS string `json:"modifiedCss"`
	Prompt      string `json:"prompt"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, msgInternalFailure, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleAIEdit proxies an edit to the assistant. The answer streams as
// NDJSON unless the query has stream=false.
func (s *Server) handleAIEdit(w http.ResponseWriter, r *http.Request) {
	if !s.aiEnabled {
		s.metrics.IncAIEdits(OutcomeRejected)
		writeError(w, http.StatusForbidden, msgAIDisabled)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req tipbox.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.IncAIEdits(OutcomeRejected)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	switch {
	case strings.TrimSpace(req.Instruction) == "":
		s.metrics.IncAIEdits(OutcomeRejected)
		writeError(w, http.StatusBadRequest, msgPromptRequired)
		return
	case strings.TrimSpace(req.CurrentCSS) == "":
		s.metrics.IncAIEdits(OutcomeRejected)
		writeError(w, http.StatusBadRequest, msgCSSRequired)
		return
	}
	if s.assistant == nil {
		s.metrics.IncAIEdits(OutcomeFailed)
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
		return
	}
	if req.SessionToken == "" {
		req.SessionToken = s.newID()
	}

	start := time.Now()
	stream, err := s.assistant.Edit(r.Context(), req)
	if err != nil {
		s.failEdit(w, err)
		return
	}
	defer stream.Close()

	if r.URL.Query().Get("stream") == "false" {
		s.writeDocument(w, req, stream)
	} else {
		s.writeStream(w, req, stream)
	}
	s.metrics.ObserveAIStreamDuration(time.Since(start))
}

func (s *Server) failEdit(w http.ResponseWriter, err error) {
	var ve *tipbox.ValidationError
	var re *tipbox.RemoteError
	switch {
	case errors.As(err, &ve):
		s.metrics.IncAIEdits(OutcomeRejected)
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, aicss.ErrNotConfigured):
		s.metrics.IncAIEdits(OutcomeFailed)
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
	case errors.As(err, &re):
		s.metrics.IncAIEdits(OutcomeFailed)
		s.logger.Warn().Err(err).Msg("ai edit failed")
		writeError(w, http.StatusBadGateway, re.Error())
	default:
		s.metrics.IncAIEdits(OutcomeFailed)
		s.logger.Error().Err(err).Msg("ai edit failed")
		writeError(w, http.StatusInternalServerError, tipbox.DefaultRemoteErrorMessage)
	}
}

// writeStream relays chunks as they arrive. Once the header is sent,
// failures become an error chunk.
func (s *Server) writeStream(w http.ResponseWriter, req tipbox.EditRequest, stream tipbox.ChunkReader) {
	w.Header().Set("Content-Type", aicss.ContentTypeNDJSON)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	cw := aicss.NewChunkWriter(w)

	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			// Upstream ended without a terminal chunk
			_ = cw.Write(tipbox.EditChunk{Type: tipbox.ChunkComplete, SessionToken: req.SessionToken})
			s.metrics.IncAIEdits(OutcomeOK)
			return
		}
		if err != nil {
			if s.aborted(err) {
				return
			}
			s.metrics.IncAIEdits(OutcomeFailed)
			s.logger.Warn().Err(err).Str("session", req.SessionToken).Msg("ai stream failed")
			_ = cw.Write(tipbox.EditChunk{Type: tipbox.ChunkError, Message: remoteMessage(err)})
			return
		}

		if chunk.Type == tipbox.ChunkComplete && chunk.SessionToken == "" {
			chunk.SessionToken = req.SessionToken
		}
		if err := cw.Write(chunk); err != nil {
			// Client went away
			s.metrics.IncAIEdits(OutcomeAborted)
			return
		}

		switch chunk.Type {
		case tipbox.ChunkComplete:
			s.metrics.IncAIEdits(OutcomeOK)
			return
		case tipbox.ChunkError:
			s.metrics.IncAIEdits(OutcomeFailed)
			return
		}
	}
}

// writeDocument drains the stream and answers with the final CSS.
func (s *Server) writeDocument(w http.ResponseWriter, req tipbox.EditRequest, stream tipbox.ChunkReader) {
	doc := editResponse{
		Success:   true,
		Data:      editDocument{OriginalCSS: req.CurrentCSS, ModifiedCSS: req.CurrentCSS, Prompt: req.Instruction},
		SessionID: req.SessionToken,
	}

	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if s.aborted(err) {
				return
			}
			s.metrics.IncAIEdits(OutcomeFailed)
			writeError(w, http.StatusBadGateway, remoteMessage(err))
			return
		}
		if chunk.Type == tipbox.ChunkError {
			s.metrics.IncAIEdits(OutcomeFailed)
			writeError(w, http.StatusBadGateway, remoteMessage(&tipbox.RemoteError{Message: chunk.Message}))
			return
		}
		if chunk.Type == tipbox.ChunkContent {
			doc.Data.ModifiedCSS = chunk.CSS
		}
		if chunk.Type == tipbox.ChunkComplete {
			if chunk.SessionToken != "" {
				doc.SessionID = chunk.SessionToken
			}
			break
		}
	}

	s.metrics.IncAIEdits(OutcomeOK)
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) aborted(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.metrics.IncAIEdits(OutcomeAborted)
		return true
	}
	return false
}

func remoteMessage(err error) string {
	var re *tipbox.RemoteError
	if errors.As(err, &re) {
		return re.Error()
	}
	return tipbox.DefaultRemoteErrorMessage
}

// templateSummary is a gallery entry without its CSS.
type templateSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Featured   bool   `json:"featured"`
	Background string `json:"background"`
	PreviewURL string `json:"previewUrl"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("full") == "true" {
		writeJSON(w, http.StatusOK, s.templates)
		return
	}
	out := make([]templateSummary, len(s.templates))
	for i, t := range s.templates {
		out[i] = templateSummary{
			ID:         t.ID,
			Name:       t.Name,
			Featured:   t.Featured,
			Background: t.Background,
			PreviewURL: "/api/templates/" + t.ID + "/preview",
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTemplatePreview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tpl, ok := tipbox.FindTemplate(s.templates, id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("template %q not found", id))
		return
	}
	dark := r.URL.Query().Get("dark") == "true"
	key := fmt.Sprintf("tpl:%s:%t", tpl.ID, dark)
	s.serveFromCacheOrRender(w, key, func() (string, error) {
		return tipbox.PreviewHTML(tpl.CSS, tipbox.PreviewOptions{Title: tpl.Name, DarkMode: dark})
	})
}

type previewRequest struct {
	CSS      string `json:"css"`
	DarkMode bool   `json:"darkMode"`
	Title    string `json:"title"`
}

// handlePreview renders posted CSS. Friendly class names are accepted and
// rewritten before rendering.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	css := tipbox.ToCanonical(req.CSS)
	// freecache rejects keys over 64 KiB
	key := fmt.Sprintf("css:%t:%016x", req.DarkMode, xxhash.Sum64String(req.Title+"\x00"+css))
	s.serveFromCacheOrRender(w, key, func() (string, error) {
		return tipbox.PreviewHTML(css, tipbox.PreviewOptions{Title: req.Title, DarkMode: req.DarkMode})
	})
}

func (s *Server) serveFromCacheOrRender(w http.ResponseWriter, key string, render func() (string, error)) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data, ok := s.cache.Get(key); ok {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	page, err := render()
	if err != nil {
		s.logger.Error().Err(err).Msg("render preview")
		w.Header().Del("Content-Type")
		http.Error(w, msgInternalFailure, http.StatusInternalServerError)
		return
	}
	data := []byte(page)
	s.cache.Set(key, data)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	AIEnabled     bool    `json:"ai_enabled"`
	Templates     int     `json:"templates"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	uptime := time.Since(s.started)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		AIEnabled:     s.aiEnabled && s.assistant != nil,
		Templates:     len(s.templates),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
