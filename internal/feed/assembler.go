package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

// Request carries everything one feed fetch needs. The caller passes the
// user's feed context explicitly; the assembler holds no ambient user state.
type Request struct {
	UserID              string
	Interests           []string
	JoinedOrganizations []string
	Friends             []string
	Cursors             map[Partition]string
	PageSize            int

	// Exhausted marks partitions the caller already drained. They are
	// skipped entirely and reported as exhausted again; only a full refresh
	// (a request without this set) resets them.
	Exhausted map[Partition]bool
}

// Result is one assembled feed: the five display lists plus a continuation
// cursor per cursored partition. A nil cursor means the partition is
// exhausted and the caller should stop requesting further pages.
type Result struct {
	YourEvents    []domain.Event
	Discover      []domain.Event
	Organizations []domain.Event
	Friends       []domain.Event
	Popular       []domain.Event
	Cursors       map[Partition]*string
}

// Assembler orchestrates the per-request feed pipeline: concurrent partition
// queries, cross-partition deduplication, defensive re-sort, and cursor
// bookkeeping. It is stateless per call.
type Assembler struct {
	store store.Client
	log   *zap.Logger
	now   func() time.Time
}

// NewAssembler creates a new feed assembler
func NewAssembler(storeClient store.Client, log *zap.Logger) *Assembler {
	return &Assembler{
		store: storeClient,
		log:   log,
		now:   time.Now,
	}
}

// fetchedPage is one partition's raw fetch outcome. fetched counts store
// records before malformed-record skipping, which is what exhaustion
// detection compares against the page size.
type fetchedPage struct {
	events  []domain.Event
	next    string
	fetched int
}

// FetchFeed assembles the five display lists for one request. Partition
// outages degrade to empty pages with a logged warning; only an invalid
// continuation cursor fails the whole call, since that indicates caller
// misuse rather than a transient store problem.
func (a *Assembler) FetchFeed(ctx context.Context, req Request) (*Result, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	now := a.now().UTC()

	g, gctx := errgroup.WithContext(ctx)

	var (
		ownEvents                                                 []domain.Event
		ownIDs                                                    map[string]struct{}
		discover, organizations, friendsCreated, friendsAttending fetchedPage
		popular                                                   []domain.Event
	)

	g.Go(func() error {
		ownEvents, ownIDs = a.resolveOwnEvents(gctx, req.UserID)
		return nil
	})

	g.Go(func() error {
		var err error
		discover, err = a.fetchPartition(gctx, PartitionDiscover,
			discoverQuery(req.Interests, pageSize, req.Cursors[PartitionDiscover], now),
			len(req.Interests) > 0 && !req.Exhausted[PartitionDiscover])
		return err
	})

	g.Go(func() error {
		var err error
		organizations, err = a.fetchPartition(gctx, PartitionOrganizations,
			organizationsQuery(req.JoinedOrganizations, pageSize, req.Cursors[PartitionOrganizations], now),
			len(req.JoinedOrganizations) > 0 && !req.Exhausted[PartitionOrganizations])
		return err
	})

	g.Go(func() error {
		var err error
		friendsCreated, err = a.fetchPartition(gctx, PartitionFriendsCreated,
			friendsCreatedQuery(req.Friends, pageSize, req.Cursors[PartitionFriendsCreated], now),
			len(req.Friends) > 0 && !req.Exhausted[PartitionFriendsCreated])
		return err
	})

	g.Go(func() error {
		var err error
		friendsAttending, err = a.fetchPartition(gctx, PartitionFriendsAttending,
			friendsAttendingQuery(req.Friends, pageSize, req.Cursors[PartitionFriendsAttending], now),
			len(req.Friends) > 0 && !req.Exhausted[PartitionFriendsAttending])
		return err
	})

	g.Go(func() error {
		page, err := a.store.QueryPage(gctx, popularQuery(now))
		if err != nil {
			a.log.Warn("Popular query failed, serving empty list", zap.Error(err))
			return nil
		}
		popular = a.decodeEvents(page.Documents)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	friends := Merge(friendsCreated.events, friendsAttending.events)
	discoverEvents, friendsEvents := dedupeAcross(discover.events, friends, organizations.events, ownIDs)

	return &Result{
		YourEvents:    sortUpcoming(ownEvents, now),
		Discover:      sortUpcoming(discoverEvents, now),
		Organizations: sortUpcoming(organizations.events, now),
		Friends:       sortUpcoming(friendsEvents, now),
		Popular:       popular,
		Cursors: map[Partition]*string{
			PartitionDiscover:         nextCursor(discover, pageSize),
			PartitionOrganizations:    nextCursor(organizations, pageSize),
			PartitionFriendsCreated:   nextCursor(friendsCreated, pageSize),
			PartitionFriendsAttending: nextCursor(friendsAttending, pageSize),
		},
	}, nil
}

// fetchPartition runs one cursored partition query. A partition whose
// driving input is empty short-circuits without touching the store.
func (a *Assembler) fetchPartition(ctx context.Context, partition Partition, query store.Query, active bool) (fetchedPage, error) {
	if !active {
		return fetchedPage{}, nil
	}

	page, err := a.store.QueryPage(ctx, query)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCursor) {
			return fetchedPage{}, fmt.Errorf("partition %s: %w", partition, err)
		}
		a.log.Warn("Partition query failed, degrading to empty page",
			zap.String("partition", string(partition)),
			zap.Error(err))
		return fetchedPage{}, nil
	}

	return fetchedPage{
		events:  a.decodeEvents(page.Documents),
		next:    page.NextCursor,
		fetched: len(page.Documents),
	}, nil
}

// resolveOwnEvents loads the user's own-events identifier set and fetches
// each referenced event. Missing or malformed records are skipped; a store
// outage degrades the whole partition to empty.
func (a *Assembler) resolveOwnEvents(ctx context.Context, userID string) ([]domain.Event, map[string]struct{}) {
	ownIDs := make(map[string]struct{})

	userDoc, err := a.store.GetDocument(ctx, usersCollection, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.log.Warn("User document not found", zap.String("user_id", userID))
		} else {
			a.log.Warn("Failed to load user document, degrading own events",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return nil, ownIDs
	}

	profile := domain.UserFromDocument(userDoc.ID, userDoc.Data)

	var events []domain.Event
	for _, eventID := range profile.YourEvents {
		if eventID == "" {
			continue
		}
		ownIDs[eventID] = struct{}{}

		doc, err := a.store.GetDocument(ctx, eventsCollection, eventID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				a.log.Warn("Failed to fetch own event",
					zap.String("event_id", eventID),
					zap.Error(err))
			}
			continue
		}

		event, err := domain.EventFromDocument(doc.ID, doc.Data)
		if err != nil {
			a.log.Warn("Skipping malformed own event", zap.String("event_id", eventID))
			continue
		}
		events = append(events, event)
	}
	return events, ownIDs
}

// decodeEvents maps raw documents, dropping malformed records.
func (a *Assembler) decodeEvents(docs []store.Document) []domain.Event {
	events := make([]domain.Event, 0, len(docs))
	for _, doc := range docs {
		event, err := domain.EventFromDocument(doc.ID, doc.Data)
		if err != nil {
			a.log.Warn("Skipping malformed event document", zap.String("event_id", doc.ID))
			continue
		}
		events = append(events, event)
	}
	return events
}

// sortUpcoming drops events that already ended and re-sorts ascending by
// start time. The store orders pages by end time, which does not guarantee
// start-time order when end times tie.
func sortUpcoming(events []domain.Event, now time.Time) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if event.EndTime.Before(now) {
			continue
		}
		out = append(out, event)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// nextCursor reports the partition's continuation token, or nil when the
// fresh page came back shorter than the requested page size.
func nextCursor(page fetchedPage, pageSize int) *string {
	if page.fetched < pageSize {
		return nil
	}
	cursor := page.next
	return &cursor
}
