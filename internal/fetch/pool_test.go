package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how many fetches run at once.
type countingSource struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
	delay    time.Duration

	mu     sync.Mutex
	absent map[string]bool
	fail   map[string]error
}

func (s *countingSource) Fetch(ctx context.Context, h asset.Header) (*asset.Body, error) {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(s.delay)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[h.ID]; err != nil {
		return nil, err
	}
	if s.absent[h.ID] {
		return nil, nil
	}
	return &asset.Body{ID: h.ID, Name: h.Name}, nil
}

func headers(ids ...string) []asset.Header {
	hs := make([]asset.Header, len(ids))
	for i, id := range ids {
		hs[i] = asset.Header{ID: id, Name: id}
	}
	return hs
}

func TestFetch_PreservesOrder(t *testing.T) {
	src := &countingSource{delay: time.Millisecond}
	pool := New(catalog.Sources{Public: src})

	bodies, err := pool.Fetch(context.Background(), headers("a", "b", "c", "d"))
	require.NoError(t, err)
	require.Len(t, bodies, 4)
	for i, id := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, id, bodies[i].ID)
	}
}

func TestFetch_BoundedConcurrency(t *testing.T) {
	src := &countingSource{delay: 20 * time.Millisecond}
	pool := New(catalog.Sources{Public: src}, WithConcurrency(50))

	ids := make([]string, 20)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	_, err := pool.Fetch(context.Background(), headers(ids...))
	require.NoError(t, err)

	assert.LessOrEqual(t, src.peak.Load(), int32(MaxConcurrency))
	assert.Equal(t, int32(20), src.calls.Load())
}

func TestFetch_AbsentBodyFailsWholeBatch(t *testing.T) {
	src := &countingSource{absent: map[string]bool{"b": true}}
	pool := New(catalog.Sources{Public: src})

	bodies, err := pool.Fetch(context.Background(), headers("a", "b", "c"))
	require.Error(t, err)
	assert.Nil(t, bodies)
	assert.ErrorIs(t, err, ErrAssetNotFetched)
	assert.Equal(t,
		"error(s) while installing assets. The first error is: Unable to install the asset because it could not be fetched.",
		err.Error())
	assert.Equal(t, int32(3), src.calls.Load(), "every retrieval should run to completion")
}

func TestFetch_FirstFailureInInputOrder(t *testing.T) {
	errC := errors.New("c exploded")
	errE := errors.New("e exploded")
	src := &countingSource{fail: map[string]error{"c": errC, "e": errE}}
	pool := New(catalog.Sources{Public: src})

	_, err := pool.Fetch(context.Background(), headers("a", "b", "c", "d", "e"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errC)
	assert.NotErrorIs(t, err, errE)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
}

func TestFetch_SelectsSourcePerHeader(t *testing.T) {
	public := &countingSource{}
	private := &countingSource{}
	pool := New(catalog.Sources{Public: public, Private: private})

	hs := []asset.Header{{ID: "a"}, {ID: "b", IsPrivate: true}, {ID: "c"}}
	_, err := pool.Fetch(context.Background(), hs)
	require.NoError(t, err)
	assert.Equal(t, int32(2), public.calls.Load())
	assert.Equal(t, int32(1), private.calls.Load())
}

func TestFetch_Empty(t *testing.T) {
	pool := New(catalog.Sources{Public: &countingSource{}})
	bodies, err := pool.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, bodies)
}

func TestWithConcurrency(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 6}, {-3, 6}, {1, 1}, {4, 4}, {6, 6}, {12, 6},
	}
	for _, tt := range tests {
		pool := New(catalog.Sources{}, WithConcurrency(tt.in))
		assert.Equal(t, tt.want, pool.Concurrency(), "WithConcurrency(%d)", tt.in)
	}
}
