package tipbox

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultMaxRevisions is the history cap used when none is configured.
const DefaultMaxRevisions = 10

// Revision is a named snapshot of the editor output.
type Revision struct {
	ID        string      `json:"id"`
	Number    int         `json:"number"` // 1 = most recent; reassigned on every change
	Name      string      `json:"name"`
	Timestamp time.Time   `json:"timestamp"`
	CSSText   string      `json:"cssText"`
	Styles    *StyleModel `json:"styles,omitempty"`
}

// RevisionStore keeps a bounded, newest-first list of revisions and writes
// the whole list to storage after every structural change.
// It is not safe for concurrent use.
type RevisionStore struct {
	storage   Storage
	logger    zerolog.Logger
	max       int
	now       func() time.Time
	newID     func() string
	revisions []Revision
}

// RevisionOption configures a RevisionStore.
type RevisionOption func(*RevisionStore)

// WithMaxRevisions sets the cap. Zero or a negative value keeps every revision.
func WithMaxRevisions(n int) RevisionOption {
	return func(r *RevisionStore) {
		r.max = n
	}
}

// WithRevisionLogger sets the logger used for persistence failures.
func WithRevisionLogger(l zerolog.Logger) RevisionOption {
	return func(r *RevisionStore) {
		r.logger = l
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) RevisionOption {
	return func(r *RevisionStore) {
		r.now = now
	}
}

// WithIDGenerator overrides revision id generation.
func WithIDGenerator(gen func() string) RevisionOption {
	return func(r *RevisionStore) {
		r.newID = gen
	}
}

// OpenRevisionStore loads the persisted revision list. An unreadable list
// is logged and treated as empty.
func OpenRevisionStore(storage Storage, opts ...RevisionOption) (*RevisionStore, error) {
	r := &RevisionStore{
		storage: storage,
		logger:  zerolog.Nop(),
		max:     DefaultMaxRevisions,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}

	raw, ok, err := storage.Get(KeyRevisions)
	if err != nil {
		return nil, fmt.Errorf("load revisions: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &r.revisions); err != nil {
			r.logger.Warn().Err(err).Msg("stored revisions are unreadable, starting empty")
			r.revisions = nil
		}
	}

	// A lowered cap applies to what is already stored
	if r.max > 0 && len(r.revisions) > r.max {
		r.revisions = r.revisions[:r.max]
		r.save()
	}
	r.renumber()
	return r, nil
}

// MaxRevisions returns the configured cap (<= 0 means unbounded).
func (r *RevisionStore) MaxRevisions() int { return r.max }

// Len returns the number of stored revisions.
func (r *RevisionStore) Len() int { return len(r.revisions) }

// List returns the revisions, newest first.
func (r *RevisionStore) List() []Revision {
	out := make([]Revision, len(r.revisions))
	copy(out, r.revisions)
	return out
}

// Create inserts a snapshot at the head, evicts the oldest entries beyond
// the cap and renumbers the rest. An empty name gets a generated default.
func (r *RevisionStore) Create(cssText string, styles *StyleModel, name string) Revision {
	now := r.now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Snapshot %d - %s", len(r.revisions)+1, now.Format("2006-01-02 15:04:05"))
	}

	var snapshot *StyleModel
	if styles != nil {
		m := styles.Complete()
		snapshot = &m
	}

	rev := Revision{
		ID:        r.newID(),
		Name:      name,
		Timestamp: now,
		CSSText:   cssText,
		Styles:    snapshot,
	}

	r.revisions = append([]Revision{rev}, r.revisions...)
	if r.max > 0 && len(r.revisions) > r.max {
		r.revisions = r.revisions[:r.max]
	}
	r.renumber()
	r.save()
	return r.revisions[0]
}

// Rename changes a revision's name. Blank names and unknown ids are ignored.
func (r *RevisionStore) Rename(id, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	i := r.index(id)
	if i < 0 {
		return
	}
	r.revisions[i].Name = name
	r.save()
}

// Delete removes a revision and renumbers the rest. Unknown ids are ignored.
func (r *RevisionStore) Delete(id string) {
	i := r.index(id)
	if i < 0 {
		return
	}
	r.revisions = append(r.revisions[:i], r.revisions[i+1:]...)
	r.renumber()
	r.save()
}

// ClearAll removes every revision.
func (r *RevisionStore) ClearAll() {
	r.revisions = nil
	if err := r.storage.Remove(KeyRevisions); err != nil {
		r.logger.Warn().Err(err).Msg("clear revisions")
	}
}

// Restore looks up a revision. Applying it is the caller's job.
func (r *RevisionStore) Restore(id string) (Revision, bool) {
	i := r.index(id)
	if i < 0 {
		return Revision{}, false
	}
	return r.revisions[i], true
}

func (r *RevisionStore) index(id string) int {
	for i := range r.revisions {
		if r.revisions[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *RevisionStore) renumber() {
	for i := range r.revisions {
		r.revisions[i].Number = i + 1
	}
}

func (r *RevisionStore) save() {
	data, err := json.Marshal(r.revisions)
	if err != nil {
		r.logger.Warn().Err(err).Msg("encode revisions")
		return
	}
	if err := r.storage.Set(KeyRevisions, string(data)); err != nil {
		r.logger.Warn().Err(err).Msg("persist revisions")
	}
}
