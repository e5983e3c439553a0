package feed

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store/memory"
)

func seedDiscoverEvents(t *testing.T, s *memory.Store, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		seed(t, s, "events", id, upcomingEvent("event "+id,
			time.Duration(i+1)*time.Hour,
			time.Duration(i+2)*time.Hour,
			map[string]interface{}{"categories": []string{"Music"}}))
		ids = append(ids, id)
	}
	return ids
}

func TestAccumulator_LoadMoreAccumulatesWithoutRepeats(t *testing.T) {
	s := memory.New()
	ids := seedDiscoverEvents(t, s, 5)

	acc := NewAccumulator(newTestAssembler(s), "jdoe2", []string{"Music"}, nil, nil, 2)

	first, err := acc.Refresh(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, ids[:2], idsOf(first.Discover))
	assert.True(t, acc.HasMore())

	second, err := acc.LoadMore(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, ids[:4], idsOf(second.Discover))
	assert.True(t, acc.HasMore())

	third, err := acc.LoadMore(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, ids, idsOf(third.Discover))
	assert.False(t, acc.HasMore(), "short final page exhausts the partition")
}

func TestAccumulator_LoadMoreAfterExhaustionSkipsStore(t *testing.T) {
	s := memory.New()
	seedDiscoverEvents(t, s, 1)

	acc := NewAccumulator(newTestAssembler(s), "jdoe2", []string{"Music"}, nil, nil, 2)

	_, err := acc.Refresh(context.Background())
	assert.NoError(t, err)
	assert.False(t, acc.HasMore())

	before := len(s.QueryLog())
	result, err := acc.LoadMore(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result.Discover, 1)
	assert.Equal(t, before, len(s.QueryLog()), "exhausted accumulator must not re-query")
}

func TestAccumulator_RefreshResetsExhaustion(t *testing.T) {
	s := memory.New()
	ids := seedDiscoverEvents(t, s, 3)

	acc := NewAccumulator(newTestAssembler(s), "jdoe2", []string{"Music"}, nil, nil, 2)

	_, err := acc.Refresh(context.Background())
	assert.NoError(t, err)
	_, err = acc.LoadMore(context.Background())
	assert.NoError(t, err)
	assert.False(t, acc.HasMore())

	refreshed, err := acc.Refresh(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, ids[:2], idsOf(refreshed.Discover), "refresh replaces accumulated state")
	assert.True(t, acc.HasMore(), "refresh resets partitions to HAS_MORE")
}

// hookStore runs a callback once before delegating the first page query. It
// lets a test interleave a refresh into an in-flight load more.
type hookStore struct {
	store.Client
	armed atomic.Bool
	hook  func()
}

func (h *hookStore) QueryPage(ctx context.Context, q store.Query) (store.Page, error) {
	if h.armed.CompareAndSwap(true, false) {
		h.hook()
	}
	return h.Client.QueryPage(ctx, q)
}

func TestAccumulator_StaleLoadMoreIsDiscarded(t *testing.T) {
	s := memory.New()
	ids := seedDiscoverEvents(t, s, 5)

	hooked := &hookStore{Client: s}
	acc := NewAccumulator(newTestAssembler(hooked), "jdoe2", []string{"Music"}, nil, nil, 2)

	_, err := acc.Refresh(context.Background())
	assert.NoError(t, err)

	// A refresh lands while the load more is mid-flight.
	hooked.hook = func() {
		_, err := acc.Refresh(context.Background())
		assert.NoError(t, err)
	}
	hooked.armed.Store(true)

	_, err = acc.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)

	// The accumulator holds the refreshed first page, not the stale merge.
	snapshot, err := acc.LoadMore(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, ids[:4], idsOf(snapshot.Discover))
}
