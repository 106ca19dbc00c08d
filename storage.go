package tipbox

import (
	"errors"
	"sort"
)

// Keys of the persisted local state. The names match what the browser
// editor wrote to localStorage so exported state stays interchangeable.
const (
	KeyStyles    = "donationStyles"
	KeyCSSText   = "donationCssText"
	KeyMode      = "mode"
	KeyRevisions = "css-revisions"
	KeyDarkMode  = "darkMode"
)

// ErrStorageFull is returned by storages that enforce a size quota.
var ErrStorageFull = errors.New("storage quota exceeded")

// Storage is a string key/value store with local-storage semantics.
// Get reports ok=false for a missing key.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStorage is an in-memory Storage. A positive Quota limits the total
// number of bytes across keys and values, like a browser storage quota.
type MemoryStorage struct {
	items map[string]string
	Quota int
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool, error) {
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(key, value string) error {
	if s.Quota > 0 {
		size := len(key) + len(value)
		for k, v := range s.items {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > s.Quota {
			return ErrStorageFull
		}
	}
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) Remove(key string) error {
	delete(s.items, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *MemoryStorage) Keys() []string {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
