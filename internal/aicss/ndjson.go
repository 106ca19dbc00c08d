package aicss

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/yacobolo/tipbox"
)

// ContentTypeNDJSON is the media type of streamed edit responses.
const ContentTypeNDJSON = "application/x-ndjson"

// maxLine bounds a single NDJSON line; a chunk carries the whole CSS so far.
const maxLine = 4 << 20

// ChunkWriter writes edit chunks as newline-delimited JSON and flushes
// after each one so clients see progress.
type ChunkWriter struct {
	w  io.Writer
	rc *http.ResponseController
}

// NewChunkWriter wraps w. When w is an http.ResponseWriter every chunk is
// flushed to the client.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	cw := &ChunkWriter{w: w}
	if rw, ok := w.(http.ResponseWriter); ok {
		cw.rc = http.NewResponseController(rw)
	}
	return cw
}

// Write encodes one chunk.
func (c *ChunkWriter) Write(chunk tipbox.EditChunk) error {
	data, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("encode chunk: %w", err)
	}
	data = append(data, '\n')
	if _, err := c.w.Write(data); err != nil {
		return err
	}
	if c.rc != nil {
		// Not every writer supports flushing
		_ = c.rc.Flush()
	}
	return nil
}

// chunkDecoder reads NDJSON chunks from a body.
type chunkDecoder struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

func newChunkDecoder(body io.ReadCloser) *chunkDecoder {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &chunkDecoder{body: body, scanner: sc}
}

// Next returns the next chunk, or io.EOF after a terminal chunk or the end
// of the body.
func (d *chunkDecoder) Next() (tipbox.EditChunk, error) {
	if d.done {
		return tipbox.EditChunk{}, io.EOF
	}
	for d.scanner.Scan() {
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk tipbox.EditChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			d.done = true
			return tipbox.EditChunk{}, &tipbox.RemoteError{Message: "malformed stream chunk", Err: err}
		}
		if chunk.Type == tipbox.ChunkComplete || chunk.Type == tipbox.ChunkError {
			d.done = true
		}
		return chunk, nil
	}
	d.done = true
	if err := d.scanner.Err(); err != nil {
		return tipbox.EditChunk{}, err
	}
	return tipbox.EditChunk{}, io.EOF
}

func (d *chunkDecoder) Close() error {
	d.done = true
	return d.body.Close()
}

// sliceReader replays a fixed list of chunks.
type sliceReader struct {
	chunks []tipbox.EditChunk
}

func (s *sliceReader) Next() (tipbox.EditChunk, error) {
	if len(s.chunks) == 0 {
		return tipbox.EditChunk{}, io.EOF
	}
	c := s.chunks[0]
	s.chunks = s.chunks[1:]
	return c, nil
}

func (s *sliceReader) Close() error {
	s.chunks = nil
	return nil
}
