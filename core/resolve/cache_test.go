package resolve

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"id-reconciler/core/classify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_WriteOnce(t *testing.T) {
	c := NewCache()

	first := c.commit("X1", Classification{Identifier: "X1", Namespace: classify.GenBank})
	second := c.commit("X1", Classification{Identifier: "X1", Namespace: classify.EMBL})

	assert.Equal(t, classify.GenBank, first.Namespace)
	assert.Equal(t, classify.GenBank, second.Namespace)

	got, ok := c.Get("X1")
	require.True(t, ok)
	assert.Equal(t, classify.GenBank, got.Namespace)
}

func TestCache_SeedKeepsExisting(t *testing.T) {
	c := NewCache()
	c.commit("A", Classification{Identifier: "A", Namespace: classify.RefSeq, Source: SourceLookup})

	added := c.Seed([]Classification{
		{Identifier: "A", Namespace: classify.Unknown},
		{Identifier: "B", Namespace: classify.UniProt, Source: SourceLookup},
	})

	assert.Equal(t, 1, added)
	a, _ := c.Get("A")
	assert.Equal(t, classify.RefSeq, a.Namespace)
	b, _ := c.Get("B")
	assert.Equal(t, SourceSeed, b.Source)
	assert.Len(t, c.Snapshot(), 2)
}

func TestCache_GetOrResolve_SingleFlight(t *testing.T) {
	c := NewCache()
	var calls int32

	fn := func() (Classification, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return Classification{Identifier: "K", Namespace: classify.Unknown, Outcome: NotFound}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cls, _, err := c.GetOrResolve(context.Background(), "K", fn)
			assert.NoError(t, err)
			assert.Equal(t, NotFound, cls.Outcome)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, hit, err := c.GetOrResolve(context.Background(), "K", fn)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCache_GetOrResolve_ErrorNotCommitted(t *testing.T) {
	c := NewCache()
	boom := errors.New("boom")

	_, _, err := c.GetOrResolve(context.Background(), "K", func() (Classification, error) {
		return Classification{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestCache_GetOrResolve_LeaderCancelled(t *testing.T) {
	c := NewCache()
	var calls int32

	fn := func() (Classification, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return Classification{}, context.Canceled
		}
		return Classification{Identifier: "K", Outcome: Found}, nil
	}

	// The caller's own context is alive, so a cancelled flight is retried.
	cls, _, err := c.GetOrResolve(context.Background(), "K", fn)
	require.NoError(t, err)
	assert.Equal(t, Found, cls.Outcome)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
