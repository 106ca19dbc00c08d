// Package filestore persists editor state in a single JSON document on disk.
package filestore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/yacobolo/tipbox"
)

// DefaultFileName is the state file name inside a state directory.
const DefaultFileName = "state.json"

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Store is a tipbox.Storage backed by one file. Every write rewrites the
// whole document through a temp file and a rename, so readers never see a
// partial file. It is safe for concurrent use within one process.
type Store struct {
	mu       sync.Mutex
	path     string
	items    map[string]string
	quota    int
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	logger   zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithQuota limits the encoded size of all keys and values. Writes beyond
// it fail with tipbox.ErrStorageFull.
func WithQuota(bytes int) Option {
	return func(s *Store) { s.quota = bytes }
}

// WithCompression writes the document zstd-compressed. Compressed and
// plain files are both read regardless of this setting.
func WithCompression(on bool) Option {
	return func(s *Store) { s.compress = on }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open loads the document at path, creating its directory if needed. A
// missing file yields an empty store.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		items:  make(map[string]string),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.encoder, err = zstd.NewWriter(nil); err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	if s.decoder, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0)); err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenDir opens DefaultFileName inside dir.
func OpenDir(dir string, opts ...Option) (*Store, error) {
	return Open(filepath.Join(dir, DefaultFileName), opts...)
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) load() error {
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read state: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if bytes.HasPrefix(data, zstdMagic) {
		if data, err = s.decoder.DecodeAll(data, nil); err != nil {
			return fmt.Errorf("decompress state: %w", err)
		}
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return fmt.Errorf("decode state %s: %w", s.path, err)
	}
	if s.items == nil {
		s.items = make(map[string]string)
	}
	return nil
}

// Get implements tipbox.Storage.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// Set implements tipbox.Storage. On failure the in-memory value is left as
// it was.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, had := s.items[key]
	s.items[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.items[key] = old
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

// Remove implements tipbox.Storage.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, had := s.items[key]
	if !had {
		return nil
	}
	delete(s.items, key)
	if err := s.flush(); err != nil {
		s.items[key] = old
		return err
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close releases the codec resources.
func (s *Store) Close() error {
	s.decoder.Close()
	return s.encoder.Close()
}

func (s *Store) flush() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if s.quota > 0 && len(data) > s.quota {
		return tipbox.ErrStorageFull
	}
	if s.compress {
		data = s.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		s.logger.Debug().Err(err).Str("path", s.path).Msg("state write failed")
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".state-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

var _ tipbox.Storage = (*Store)(nil)
