package tipbox

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedReader struct {
	chunks []EditChunk
	err    error
	closed bool
}

func (r *scriptedReader) Next() (EditChunk, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return EditChunk{}, r.err
		}
		return EditChunk{}, io.EOF
	}
	c := r.chunks[0]
	r.chunks = r.chunks[1:]
	return c, nil
}

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

type fakeAssistant struct {
	reader  *scriptedReader
	err     error
	calls   int
	lastReq EditRequest
}

func (f *fakeAssistant) Edit(_ context.Context, req EditRequest) (ChunkReader, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.reader, nil
}

func TestApplyEditStreamsFullReplacements(t *testing.T) {
	s, err := OpenSession(NewMemoryStorage())
	require.NoError(t, err)

	fake := &fakeAssistant{reader: &scriptedReader{chunks: []EditChunk{
		{Type: ChunkContent, CSS: ".goal {"},
		{Type: ChunkContent, CSS: ".goal { color: pink; }"},
		{Type: ChunkComplete, SessionToken: "sess-42"},
	}}}

	res, err := s.ApplyEdit(context.Background(), fake, "make it pink", "")
	require.NoError(t, err)

	assert.Equal(t, "sess-42", res.SessionToken)
	assert.Equal(t, 2, res.Chunks)
	assert.Equal(t, ModeAdvanced, s.Mode())
	assert.Equal(t, ".DonateGoal_style__goal { color: pink; }", s.CSSText())
	assert.Equal(t, s.CSSText(), res.CSSText)
	assert.True(t, fake.reader.closed)

	// The request carries friendly class names
	assert.Contains(t, fake.lastReq.CurrentCSS, ".progress {")
	assert.NotContains(t, fake.lastReq.CurrentCSS, "DonateGoal_")
}

func TestApplyEditValidation(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		css         string
		wantMsg     string
	}{
		{name: "empty instruction", instruction: "   ", css: ".a {}", wantMsg: "instruction is required"},
		{name: "empty css", instruction: "pink", css: " \n", wantMsg: "current CSS is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := OpenSession(NewMemoryStorage())
			require.NoError(t, err)
			_, err = s.SwitchMode(ModeAdvanced)
			require.NoError(t, err)
			require.NoError(t, s.SetCSSTextDirect(tt.css))

			fake := &fakeAssistant{}
			_, err = s.ApplyEdit(context.Background(), fake, tt.instruction, "")

			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Zero(t, fake.calls)
			assert.Equal(t, tt.css, s.CSSText())
		})
	}
}

func TestApplyEditRemoteFailures(t *testing.T) {
	tests := []struct {
		name      string
		fake      *fakeAssistant
		wantMsg   string
		wantCSS   string
		wantChunk int
	}{
		{
			name:    "call fails",
			fake:    &fakeAssistant{err: errors.New("connection refused")},
			wantMsg: DefaultRemoteErrorMessage,
		},
		{
			name: "error chunk after content",
			fake: &fakeAssistant{reader: &scriptedReader{chunks: []EditChunk{
				{Type: ChunkContent, CSS: ".goal { color: red; }"},
				{Type: ChunkError, Message: "quota exceeded"},
			}}},
			wantMsg:   "quota exceeded",
			wantCSS:   ".DonateGoal_style__goal { color: red; }",
			wantChunk: 1,
		},
		{
			name: "error chunk without message",
			fake: &fakeAssistant{reader: &scriptedReader{chunks: []EditChunk{
				{Type: ChunkError},
			}}},
			wantMsg: DefaultRemoteErrorMessage,
		},
		{
			name:    "broken stream",
			fake:    &fakeAssistant{reader: &scriptedReader{err: errors.New("unexpected EOF")}},
			wantMsg: DefaultRemoteErrorMessage,
		},
		{
			name: "unknown chunk type",
			fake: &fakeAssistant{reader: &scriptedReader{chunks: []EditChunk{
				{Type: "delta"},
			}}},
			wantMsg: `unexpected chunk type "delta"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := OpenSession(NewMemoryStorage())
			require.NoError(t, err)
			before := s.CSSText()

			res, err := s.ApplyEdit(context.Background(), tt.fake, "red", "")
			var re *RemoteError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.wantMsg, re.Error())
			assert.Equal(t, tt.wantChunk, res.Chunks)

			if tt.wantCSS == "" {
				assert.Equal(t, before, s.CSSText())
				assert.Equal(t, ModeBasic, s.Mode())
			} else {
				assert.Equal(t, tt.wantCSS, s.CSSText())
			}
		})
	}
}

func TestApplyEditCancellation(t *testing.T) {
	s, err := OpenSession(NewMemoryStorage())
	require.NoError(t, err)

	fake := &fakeAssistant{err: context.Canceled}
	_, err = s.ApplyEdit(context.Background(), fake, "pink", "")
	assert.ErrorIs(t, err, context.Canceled)

	var re *RemoteError
	assert.False(t, errors.As(err, &re))
}

func TestApplyEditKeepsTokenWithoutCompleteChunk(t *testing.T) {
	s, err := OpenSession(NewMemoryStorage())
	require.NoError(t, err)

	fake := &fakeAssistant{reader: &scriptedReader{chunks: []EditChunk{
		{Type: ChunkContent, CSS: "/* done */"},
	}}}
	res, err := s.ApplyEdit(context.Background(), fake, "x", "prior")
	require.NoError(t, err)
	assert.Equal(t, "prior", res.SessionToken)
	assert.Equal(t, "prior", fake.lastReq.SessionToken)
	assert.Equal(t, "/* done */", res.CSSText)
}
