package tipbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/validate"
)

// Chunk types of a streamed AI edit.
const (
	ChunkContent  = "content"
	ChunkComplete = "complete"
	ChunkError    = "error"
)

// DefaultRemoteErrorMessage is used when the remote side gives no reason.
const DefaultRemoteErrorMessage = "AI request failed"

// EditRequest asks the assistant to rewrite CSS according to an instruction.
type EditRequest struct {
	Instruction  string `json:"prompt" validate:"required"`
	CurrentCSS   string `json:"currentCss" validate:"required"`
	SessionToken string `json:"sessionId,omitempty"`
	ModelID      string `json:"model,omitempty"`
}

// Messages customizes validation messages.
func (r EditRequest) Messages() map[string]string {
	return validate.MS{
		"Instruction.required": "instruction is required",
		"CurrentCSS.required":  "current CSS is required",
	}
}

// Validate checks the request before any network call.
func (r EditRequest) Validate() error {
	r.Instruction = strings.TrimSpace(r.Instruction)
	r.CurrentCSS = strings.TrimSpace(r.CurrentCSS)
	v := validate.Struct(&r)
	if !v.Validate() {
		return &ValidationError{Message: v.Errors.One()}
	}
	return nil
}

// EditChunk is one message of a streamed edit. Content chunks carry the
// whole CSS produced so far, not a delta.
type EditChunk struct {
	Type         string `json:"type"`
	CSS          string `json:"css,omitempty"`
	SessionToken string `json:"sessionId,omitempty"`
	Message      string `json:"message,omitempty"`
}

// ChunkReader yields chunks in order. Next returns io.EOF after the last
// chunk. Close abandons the stream and releases the underlying call.
type ChunkReader interface {
	Next() (EditChunk, error)
	Close() error
}

// Assistant is the remote CSS-rewriting collaborator. Cancelling ctx or
// closing the reader aborts the call.
type Assistant interface {
	Edit(ctx context.Context, req EditRequest) (ChunkReader, error)
}

// ErrInvalidInput marks requests rejected before any network call.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError describes a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// RemoteError is a failure reported by, or while talking to, the assistant.
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return DefaultRemoteErrorMessage
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error { return e.Err }

// EditResult summarizes an applied edit.
type EditResult struct {
	SessionToken string
	Chunks       int // content chunks applied
	CSSText      string
}

// ApplyEdit runs an AI edit against the session's CSS. The CSS is sent with
// friendly class names and every content chunk is converted back and applied
// as a full replacement of the CSS text.
//
// The session moves to advanced mode before the first chunk. On failure the
// chunks already applied stay applied; nothing is rolled back.
func (s *Session) ApplyEdit(ctx context.Context, a Assistant, instruction, token string) (EditResult, error) {
	req := EditRequest{
		Instruction:  instruction,
		CurrentCSS:   ToFriendly(s.CSSText()),
		SessionToken: token,
	}
	if err := req.Validate(); err != nil {
		return EditResult{}, err
	}

	stream, err := a.Edit(ctx, req)
	if err != nil {
		return EditResult{}, asRemoteError(err)
	}
	defer stream.Close()

	res := EditResult{SessionToken: token}
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			// Stream ended without a terminal chunk
			res.CSSText = s.CSSText()
			return res, nil
		}
		if err != nil {
			return res, asRemoteError(err)
		}

		switch chunk.Type {
		case ChunkContent:
			if s.Mode() != ModeAdvanced {
				if _, err := s.SwitchMode(ModeAdvanced); err != nil {
					return res, err
				}
			}
			if err := s.SetCSSTextDirect(ToCanonical(chunk.CSS)); err != nil {
				return res, err
			}
			res.Chunks++
		case ChunkComplete:
			if chunk.SessionToken != "" {
				res.SessionToken = chunk.SessionToken
			}
			res.CSSText = s.CSSText()
			return res, nil
		case ChunkError:
			return res, &RemoteError{Message: chunk.Message}
		default:
			return res, &RemoteError{Message: fmt.Sprintf("unexpected chunk type %q", chunk.Type)}
		}
	}
}

func asRemoteError(err error) error {
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &RemoteError{Err: err}
}
