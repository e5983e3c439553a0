package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store/memory"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// MockStore is a mock implementation of store.Client
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetDocument(ctx context.Context, collection, id string) (store.Document, error) {
	args := m.Called(ctx, collection, id)
	return args.Get(0).(store.Document), args.Error(1)
}

func (m *MockStore) QueryPage(ctx context.Context, query store.Query) (store.Page, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(store.Page), args.Error(1)
}

func (m *MockStore) CreateDocument(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	args := m.Called(ctx, collection, data)
	return args.String(0), args.Error(1)
}

func (m *MockStore) SetDocument(ctx context.Context, collection, id string, data map[string]interface{}) error {
	args := m.Called(ctx, collection, id, data)
	return args.Error(0)
}

func (m *MockStore) UpdateDocument(ctx context.Context, collection, id string, updates []store.Update) error {
	args := m.Called(ctx, collection, id, updates)
	return args.Error(0)
}

func (m *MockStore) DeleteDocument(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func newTestAssembler(storeClient store.Client) *Assembler {
	assembler := NewAssembler(storeClient, zap.NewNop())
	assembler.now = func() time.Time { return testNow }
	return assembler
}

// upcomingEvent builds an event document relative to the fixed test clock.
func upcomingEvent(name string, startOffset, endOffset time.Duration, extra map[string]interface{}) map[string]interface{} {
	doc := map[string]interface{}{
		"name":            name,
		"startTime":       testNow.Add(startOffset).Format(time.RFC3339),
		"endTime":         testNow.Add(endOffset).Format(time.RFC3339),
		"discovery":       "public",
		"pendingApproval": false,
	}
	for k, v := range extra {
		doc[k] = v
	}
	return doc
}

func seed(t *testing.T, s *memory.Store, collection, id string, data map[string]interface{}) {
	t.Helper()
	assert.NoError(t, s.SetDocument(context.Background(), collection, id, data))
}

func TestFetchFeed_AssemblesAllPartitions(t *testing.T) {
	s := memory.New()
	seed(t, s, "users", "jdoe2", map[string]interface{}{
		"netID":      "jdoe2",
		"yourEvents": []string{"own1"},
	})
	seed(t, s, "events", "own1", upcomingEvent("my event", time.Hour, 2*time.Hour, nil))
	seed(t, s, "events", "disc1", upcomingEvent("tech talk", time.Hour, 3*time.Hour, map[string]interface{}{
		"categories": []string{"Technology"},
	}))
	seed(t, s, "events", "org1", upcomingEvent("acm meeting", time.Hour, 4*time.Hour, map[string]interface{}{
		"hostedByOrg": "acm",
	}))
	seed(t, s, "events", "fc1", upcomingEvent("friend's picnic", time.Hour, 5*time.Hour, map[string]interface{}{
		"createdBy":  "friend1",
		"categories": []string{"Food"},
	}))
	seed(t, s, "events", "fa1", upcomingEvent("friend attends", time.Hour, 6*time.Hour, map[string]interface{}{
		"attendees":  []string{"friend1"},
		"categories": []string{"Food"},
	}))

	assembler := newTestAssembler(s)

	result, err := assembler.FetchFeed(context.Background(), Request{
		UserID:              "jdoe2",
		Interests:           []string{"Technology"},
		JoinedOrganizations: []string{"acm"},
		Friends:             []string{"friend1"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"own1"}, idsOf(result.YourEvents))
	assert.Equal(t, []string{"disc1"}, idsOf(result.Discover))
	assert.Equal(t, []string{"org1"}, idsOf(result.Organizations))
	assert.ElementsMatch(t, []string{"fc1", "fa1"}, idsOf(result.Friends))

	// All pages came back shorter than the page size, so every cursored
	// partition reports exhaustion.
	for _, partition := range CursoredPartitions {
		assert.Nil(t, result.Cursors[partition], "partition %s should be exhausted", partition)
	}
}

func TestFetchFeed_EmptyInputsSkipStoreQueries(t *testing.T) {
	s := memory.New()
	assembler := newTestAssembler(s)

	result, err := assembler.FetchFeed(context.Background(), Request{UserID: "ghost"})

	assert.NoError(t, err)
	assert.Empty(t, result.Discover)
	assert.Empty(t, result.Organizations)
	assert.Empty(t, result.Friends)

	// Only the popular query may touch the store; the four personalized
	// partitions short-circuit on empty inputs.
	queries := s.QueryLog()
	assert.Len(t, queries, 1)
	assert.Equal(t, "attendeesCount", queries[0].OrderBy.Field)
}

func TestFetchFeed_ExhaustedPartitionIsNotRequeried(t *testing.T) {
	s := memory.New()
	seed(t, s, "events", "disc1", upcomingEvent("tech talk", time.Hour, 3*time.Hour, map[string]interface{}{
		"categories": []string{"Technology"},
	}))

	assembler := newTestAssembler(s)

	result, err := assembler.FetchFeed(context.Background(), Request{
		UserID:    "jdoe2",
		Interests: []string{"Technology"},
		Exhausted: map[Partition]bool{PartitionDiscover: true},
	})

	assert.NoError(t, err)
	assert.Empty(t, result.Discover)
	assert.Nil(t, result.Cursors[PartitionDiscover])

	queries := s.QueryLog()
	assert.Len(t, queries, 1, "only popular should reach the store")
}

func TestFetchFeed_PaginatesWithoutRepeats(t *testing.T) {
	s := memory.New()
	seed(t, s, "events", "d1", upcomingEvent("first", time.Hour, 2*time.Hour, map[string]interface{}{
		"categories": []string{"Music"},
	}))
	seed(t, s, "events", "d2", upcomingEvent("second", time.Hour, 3*time.Hour, map[string]interface{}{
		"categories": []string{"Music"},
	}))
	seed(t, s, "events", "d3", upcomingEvent("third", time.Hour, 4*time.Hour, map[string]interface{}{
		"categories": []string{"Music"},
	}))

	assembler := newTestAssembler(s)
	req := Request{
		UserID:    "jdoe2",
		Interests: []string{"Music"},
		PageSize:  2,
	}

	first, err := assembler.FetchFeed(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, idsOf(first.Discover))
	assert.NotNil(t, first.Cursors[PartitionDiscover])

	req.Cursors = map[Partition]string{PartitionDiscover: *first.Cursors[PartitionDiscover]}
	second, err := assembler.FetchFeed(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, []string{"d3"}, idsOf(second.Discover))
	assert.Nil(t, second.Cursors[PartitionDiscover], "short page must report exhaustion")
}

func TestFetchFeed_InvalidCursorFailsRequest(t *testing.T) {
	s := memory.New()
	seed(t, s, "events", "d1", upcomingEvent("first", time.Hour, 2*time.Hour, map[string]interface{}{
		"categories": []string{"Music"},
	}))

	assembler := newTestAssembler(s)

	_, err := assembler.FetchFeed(context.Background(), Request{
		UserID:    "jdoe2",
		Interests: []string{"Music"},
		Cursors:   map[Partition]string{PartitionDiscover: "not-a-cursor"},
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidCursor)
}

func TestFetchFeed_CursorFromOtherPartitionRejected(t *testing.T) {
	s := memory.New()
	seed(t, s, "events", "d1", upcomingEvent("first", time.Hour, 2*time.Hour, map[string]interface{}{
		"categories": []string{"Music"},
	}))

	// A token minted for the friends-created query replayed against discover.
	foreign := store.EncodeCursor(
		friendsCreatedQuery([]string{"friend1"}, 2, "", testNow),
		testNow.Add(2*time.Hour).Format(time.RFC3339), "d1")

	assembler := newTestAssembler(s)

	_, err := assembler.FetchFeed(context.Background(), Request{
		UserID:    "jdoe2",
		Interests: []string{"Music"},
		Cursors:   map[Partition]string{PartitionDiscover: foreign},
	})

	assert.ErrorIs(t, err, store.ErrInvalidCursor)
}

func TestFetchFeed_PartitionOutageDegradesToEmpty(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("GetDocument", mock.Anything, "users", "jdoe2").
		Return(store.Document{}, store.ErrNotFound)
	mockStore.On("QueryPage", mock.Anything, mock.Anything).
		Return(store.Page{}, errors.New("store unreachable"))

	assembler := newTestAssembler(mockStore)

	result, err := assembler.FetchFeed(context.Background(), Request{
		UserID:              "jdoe2",
		Interests:           []string{"Technology"},
		JoinedOrganizations: []string{"acm"},
		Friends:             []string{"friend1"},
	})

	assert.NoError(t, err, "partition outages must degrade, not abort")
	assert.Empty(t, result.Discover)
	assert.Empty(t, result.Organizations)
	assert.Empty(t, result.Friends)
	assert.Empty(t, result.Popular)
	assert.Empty(t, result.YourEvents)
}

func TestFetchFeed_PopularWindowAndOrdering(t *testing.T) {
	s := memory.New()
	seed(t, s, "events", "pop-small", upcomingEvent("small", time.Hour, 2*24*time.Hour, map[string]interface{}{
		"attendeesCount": 5,
	}))
	seed(t, s, "events", "pop-big", upcomingEvent("big", time.Hour, 3*24*time.Hour, map[string]interface{}{
		"attendeesCount": 50,
	}))
	// Ends beyond the one-week window; ignored no matter how popular.
	seed(t, s, "events", "pop-late", upcomingEvent("late", time.Hour, 8*24*time.Hour, map[string]interface{}{
		"attendeesCount": 500,
	}))

	assembler := newTestAssembler(s)

	result, err := assembler.FetchFeed(context.Background(), Request{UserID: "jdoe2"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"pop-big", "pop-small"}, idsOf(result.Popular),
		"popular keeps attendee-count order and the one-week window")
}

func TestFetchFeed_SkipsMissingAndMalformedOwnEvents(t *testing.T) {
	s := memory.New()
	seed(t, s, "users", "jdoe2", map[string]interface{}{
		"netID":      "jdoe2",
		"yourEvents": []string{"gone", "broken", "good", "ended"},
	})
	// "gone" is never seeded. "broken" is missing its end time.
	seed(t, s, "events", "broken", map[string]interface{}{"name": "no end time"})
	seed(t, s, "events", "good", upcomingEvent("good", time.Hour, 2*time.Hour, nil))
	seed(t, s, "events", "ended", upcomingEvent("ended", -3*time.Hour, -time.Hour, nil))

	assembler := newTestAssembler(s)

	result, err := assembler.FetchFeed(context.Background(), Request{UserID: "jdoe2"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"good"}, idsOf(result.YourEvents))
}

func TestFetchFeed_ResortsByStartTime(t *testing.T) {
	s := memory.New()
	// Store order is by end time: d1 before d2. Start-time order is d2, d1.
	seed(t, s, "events", "d1", upcomingEvent("later start", 150*time.Minute, 3*time.Hour, map[string]interface{}{
		"categories": []string{"Art"},
	}))
	seed(t, s, "events", "d2", upcomingEvent("earlier start", time.Hour, 4*time.Hour, map[string]interface{}{
		"categories": []string{"Art"},
	}))

	assembler := newTestAssembler(s)

	result, err := assembler.FetchFeed(context.Background(), Request{
		UserID:    "jdoe2",
		Interests: []string{"Art"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"d2", "d1"}, idsOf(result.Discover))
}

func TestFetchFeed_DedupesAcrossPartitions(t *testing.T) {
	s := memory.New()
	seed(t, s, "users", "jdoe2", map[string]interface{}{
		"netID":      "jdoe2",
		"yourEvents": []string{"mine"},
	})
	// The user's own event also matches discover.
	seed(t, s, "events", "mine", upcomingEvent("mine", time.Hour, 2*time.Hour, map[string]interface{}{
		"categories": []string{"Gaming"},
	}))
	// acm hosts an event on the organizations page and another one that only
	// matches discover; both must be attributed to the organization.
	seed(t, s, "events", "acm-main", upcomingEvent("acm main", time.Hour, 3*time.Hour, map[string]interface{}{
		"hostedByOrg": "acm",
	}))
	seed(t, s, "events", "acm-side", upcomingEvent("acm side", time.Hour, 4*time.Hour, map[string]interface{}{
		"hostedByOrg": "acm",
		"categories":  []string{"Gaming"},
	}))
	seed(t, s, "events", "plain", upcomingEvent("plain", time.Hour, 5*time.Hour, map[string]interface{}{
		"categories": []string{"Gaming"},
	}))

	assembler := newTestAssembler(s)

	result, err := assembler.FetchFeed(context.Background(), Request{
		UserID:              "jdoe2",
		Interests:           []string{"Gaming"},
		JoinedOrganizations: []string{"acm"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"mine"}, idsOf(result.YourEvents))
	assert.ElementsMatch(t, []string{"acm-main", "acm-side"}, idsOf(result.Organizations))
	assert.Equal(t, []string{"plain"}, idsOf(result.Discover))
}
