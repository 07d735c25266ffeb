package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterdesk/counterdesk/internal/shared"
)

type fakeFetcher struct {
	entries []Entry
	err     error
	calls   atomic.Int64
	block   chan struct{}
}

func (f *fakeFetcher) FetchCatalog(ctx context.Context) ([]Entry, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func testEntries() []Entry {
	return []Entry{
		{ID: 1, Name: "Widget", UnitAmount: 10.00, AvailableQuantity: 25},
		{ID: 2, Name: "Gadget", UnitAmount: 5.00, AvailableQuantity: 4},
		{ID: 7, Name: "Sprocket", UnitAmount: 2.50, AvailableQuantity: 100},
	}
}

func TestLoadReturnsSnapshot(t *testing.T) {
	svc := NewService(&fakeFetcher{entries: testEntries()}, nil)

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, 3, snap.Len())

	entry, ok := snap.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "Sprocket", entry.Name)
	assert.Equal(t, 2.50, entry.UnitAmount)

	_, ok = snap.Lookup(99)
	assert.False(t, ok)
}

func TestLoadWrapsFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewService(&fakeFetcher{err: cause}, nil)

	snap, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)

	var fetchErr *shared.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.True(t, errors.Is(err, cause))
}

func TestLoadIsIdempotentAfterFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}
	svc := NewService(fetcher, nil)

	_, err := svc.Load(context.Background())
	require.Error(t, err)

	fetcher.err = nil
	fetcher.entries = testEntries()

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())
}

func TestConcurrentLoadsShareOneFetch(t *testing.T) {
	fetcher := &fakeFetcher{entries: testEntries(), block: make(chan struct{})}
	svc := NewService(fetcher, nil)

	const loaders = 5
	var wg, ready sync.WaitGroup
	results := make([]*Snapshot, loaders)
	errs := make([]error, loaders)

	ready.Add(loaders)
	for i := 0; i < loaders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ready.Done()
			results[i], errs[i] = svc.Load(context.Background())
		}(i)
	}

	ready.Wait()
	time.Sleep(20 * time.Millisecond) // let every loader join the in-flight fetch
	close(fetcher.block)
	wg.Wait()

	assert.Equal(t, int64(1), fetcher.calls.Load())
	for i := range results {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, 3, results[i].Len())
	}
}

func TestSnapshotIsolatedFromSource(t *testing.T) {
	entries := testEntries()
	snap := NewSnapshot(entries)

	entries[0].Name = "mutated"
	got, ok := snap.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "Widget", got.Name)
}
