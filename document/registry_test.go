package document

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cqlls/cqlls/errors"
)

func TestRegistry_OpenAndSnapshot(t *testing.T) {
	r := NewRegistry(10)

	r.Open("file:///a.cql", `USE "dev";`)

	text, err := r.Snapshot("file:///a.cql")
	require.NoError(t, err)
	assert.Equal(t, `USE "dev";`, text)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SnapshotUnknownURI(t *testing.T) {
	r := NewRegistry(10)

	_, err := r.Snapshot("file:///missing.cql")
	require.Error(t, err)
	assert.True(t, errors.IsDocumentNotFoundError(err))
}

func TestRegistry_ChangeReplacesWholesale(t *testing.T) {
	r := NewRegistry(10)

	r.Open("file:///a.cql", "SELECT 1;")
	r.Change("file:///a.cql", "SELECT 2;")

	text, err := r.Snapshot("file:///a.cql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2;", text)
	assert.Equal(t, 1, r.Len(), "change must not duplicate the document")
}

func TestRegistry_ChangeForUntrackedURIUpserts(t *testing.T) {
	r := NewRegistry(10)

	r.Change("file:///late.cql", "SELECT 1;")

	text, err := r.Snapshot("file:///late.cql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", text)
}

func TestRegistry_ActiveFollowsTouches(t *testing.T) {
	r := NewRegistry(10)

	_, ok := r.ActiveURI()
	assert.False(t, ok, "empty registry has no active document")

	r.Open("file:///a.cql", "a")
	r.Open("file:///b.cql", "b")

	uri, ok := r.ActiveURI()
	require.True(t, ok)
	assert.Equal(t, "file:///b.cql", uri)

	r.Change("file:///a.cql", "a2")

	uri, text, err := r.ActiveSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "file:///a.cql", uri)
	assert.Equal(t, "a2", text)
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry(10)

	r.Open("file:///a.cql", "a")
	r.Open("file:///b.cql", "b")
	r.Close("file:///b.cql")

	assert.Equal(t, 1, r.Len())

	_, err := r.Snapshot("file:///b.cql")
	assert.True(t, errors.IsDocumentNotFoundError(err))

	_, ok := r.ActiveURI()
	assert.False(t, ok, "closing the active document clears the active URI")

	_, _, err = r.ActiveSnapshot()
	assert.ErrorIs(t, err, errors.ErrNoActiveDocument)

	// Closing an unknown URI is a no-op.
	r.Close("file:///missing.cql")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_EvictsLeastRecentlyTouched(t *testing.T) {
	r := NewRegistry(2)

	r.Open("file:///a.cql", "a")
	r.Open("file:///b.cql", "b")
	r.Open("file:///c.cql", "c")

	assert.Equal(t, 2, r.Len())

	_, err := r.Snapshot("file:///a.cql")
	assert.True(t, errors.IsDocumentNotFoundError(err), "oldest document is evicted")

	for _, uri := range []string{"file:///b.cql", "file:///c.cql"} {
		_, err := r.Snapshot(uri)
		assert.NoError(t, err)
	}
}

func TestRegistry_TouchProtectsFromEviction(t *testing.T) {
	r := NewRegistry(2)

	r.Open("file:///a.cql", "a")
	r.Open("file:///b.cql", "b")
	r.Change("file:///a.cql", "a2")
	r.Open("file:///c.cql", "c")

	_, err := r.Snapshot("file:///a.cql")
	assert.NoError(t, err, "recently changed document survives")

	_, err = r.Snapshot("file:///b.cql")
	assert.True(t, errors.IsDocumentNotFoundError(err))
}

func TestRegistry_NonPositiveCapFallsBack(t *testing.T) {
	r := NewRegistry(0)

	for i := 0; i < DefaultMaxOpen; i++ {
		r.Open(fmt.Sprintf("file:///%d.cql", i), "x")
	}
	assert.Equal(t, DefaultMaxOpen, r.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry(50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			uri := fmt.Sprintf("file:///%d.cql", n)
			for j := 0; j < 100; j++ {
				r.Open(uri, "SELECT 1;")
				r.Change(uri, "SELECT 2;")
				if _, err := r.Snapshot(uri); err != nil {
					t.Errorf("snapshot %s: %v", uri, err)
					return
				}
				r.ActiveURI()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, r.Len())
}
