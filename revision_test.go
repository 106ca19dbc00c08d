package tipbox

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRevisionStore(t *testing.T, storage Storage, opts ...RevisionOption) *RevisionStore {
	t.Helper()
	clock := time.Date(2024, 10, 31, 18, 0, 0, 0, time.UTC)
	seq := 0
	base := []RevisionOption{
		WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("rev-%d", seq)
		}),
	}
	r, err := OpenRevisionStore(storage, append(base, opts...)...)
	require.NoError(t, err)
	return r
}

func assertContiguous(t *testing.T, revs []Revision) {
	t.Helper()
	for i, r := range revs {
		assert.Equal(t, i+1, r.Number, "revision %s", r.ID)
	}
}

func TestRevisionCapKeepsNewest(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		created int
		wantLen int
	}{
		{name: "default cap", max: DefaultMaxRevisions, created: 13, wantLen: 10},
		{name: "small cap", max: 3, created: 5, wantLen: 3},
		{name: "under cap", max: 3, created: 2, wantLen: 2},
		{name: "unbounded", max: 0, created: 25, wantLen: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRevisionStore(t, NewMemoryStorage(), WithMaxRevisions(tt.max))
			for i := 1; i <= tt.created; i++ {
				r.Create(fmt.Sprintf("css %d", i), nil, fmt.Sprintf("n%d", i))
			}

			revs := r.List()
			require.Len(t, revs, tt.wantLen)
			for i, rev := range revs {
				assert.Equal(t, fmt.Sprintf("rev-%d", tt.created-i), rev.ID)
			}
			assertContiguous(t, revs)
		})
	}
}

func TestRevisionDeleteRenumbers(t *testing.T) {
	r := newTestRevisionStore(t, NewMemoryStorage())
	for i := 0; i < 5; i++ {
		r.Create("css", nil, "")
	}

	for _, id := range []string{"rev-3", "rev-5", "rev-1", "missing"} {
		r.Delete(id)
		assertContiguous(t, r.List())
	}

	revs := r.List()
	require.Len(t, revs, 2)
	assert.Equal(t, "rev-4", revs[0].ID)
	assert.Equal(t, "rev-2", revs[1].ID)
}

func TestRevisionDefaultName(t *testing.T) {
	r := newTestRevisionStore(t, NewMemoryStorage())

	first := r.Create("a", nil, "   ")
	second := r.Create("b", nil, "")
	named := r.Create("c", nil, "  Spooky  ")

	assert.Equal(t, "Snapshot 1 - 2024-10-31 18:01:00", first.Name)
	assert.Equal(t, "Snapshot 2 - 2024-10-31 18:02:00", second.Name)
	assert.Equal(t, "Spooky", named.Name)
	assert.Equal(t, 1, named.Number)
}

func TestRevisionRename(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		newName string
		want    string
	}{
		{name: "renames", id: "rev-1", newName: "  Pumpkin ", want: "Pumpkin"},
		{name: "whitespace only is ignored", id: "rev-1", newName: "   ", want: "original"},
		{name: "empty is ignored", id: "rev-1", newName: "", want: "original"},
		{name: "unknown id is ignored", id: "rev-9", newName: "x", want: "original"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRevisionStore(t, NewMemoryStorage())
			r.Create("css", nil, "original")

			r.Rename(tt.id, tt.newName)
			rev, ok := r.Restore("rev-1")
			require.True(t, ok)
			assert.Equal(t, tt.want, rev.Name)
		})
	}
}

func TestRevisionPersistence(t *testing.T) {
	store := NewMemoryStorage()
	r := newTestRevisionStore(t, store)
	m := DefaultStyleModel()
	m.Emoji = "🎃"
	r.Create(Generate(m), &m, "with styles")
	r.Create("/* free text */", nil, "text only")

	reloaded, err := OpenRevisionStore(store)
	require.NoError(t, err)
	assert.Equal(t, r.Len(), reloaded.Len())

	revs := reloaded.List()
	assert.Nil(t, revs[0].Styles)
	require.NotNil(t, revs[1].Styles)
	assert.Equal(t, "🎃", revs[1].Styles.Emoji)
	assert.True(t, revs[1].Timestamp.Equal(r.List()[1].Timestamp))
}

func TestRevisionLoweredCapAppliesOnLoad(t *testing.T) {
	store := NewMemoryStorage()
	r := newTestRevisionStore(t, store, WithMaxRevisions(5))
	for i := 1; i <= 5; i++ {
		r.Create(fmt.Sprintf("css %d", i), nil, fmt.Sprintf("n%d", i))
	}

	reloaded, err := OpenRevisionStore(store, WithMaxRevisions(2))
	require.NoError(t, err)
	revs := reloaded.List()
	require.Len(t, revs, 2)
	assert.Equal(t, "n5", revs[0].Name)
	assert.Equal(t, "n4", revs[1].Name)
	assertContiguous(t, revs)

	// The trimmed list is what stays persisted
	again, err := OpenRevisionStore(store)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Len())
}

func TestRevisionClearAllAndCorruptStorage(t *testing.T) {
	store := NewMemoryStorage()
	r := newTestRevisionStore(t, store)
	r.Create("css", nil, "")
	r.ClearAll()
	assert.Zero(t, r.Len())
	_, ok, _ := store.Get(KeyRevisions)
	assert.False(t, ok)

	require.NoError(t, store.Set(KeyRevisions, "{not json"))
	reloaded, err := OpenRevisionStore(store)
	require.NoError(t, err)
	assert.Zero(t, reloaded.Len())
}

func TestRevisionSnapshotIsolation(t *testing.T) {
	r := newTestRevisionStore(t, NewMemoryStorage())
	m := DefaultStyleModel()
	r.Create("css", &m, "")
	m.Emoji = "changed"

	rev, ok := r.Restore("rev-1")
	require.True(t, ok)
	assert.Empty(t, rev.Styles.Emoji)

	_, ok = r.Restore("missing")
	assert.False(t, ok)
}
