package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
)

// ErrSuperseded is returned when a fetch finishes after a newer refresh has
// already started; its results were discarded.
var ErrSuperseded = errors.New("feed: request superseded by a newer refresh")

// Accumulator tracks one caller's pagination state across refresh and
// load-more requests: accumulated lists, per-partition cursors, and the
// HAS_MORE/EXHAUSTED flags. A refresh bumps the request generation so that
// an in-flight load more completing afterwards is discarded.
type Accumulator struct {
	assembler *Assembler

	userID    string
	interests []string
	orgs      []string
	friendIDs []string
	pageSize  int

	mu            sync.Mutex
	generation    uint64
	yourEvents    []domain.Event
	discover      []domain.Event
	organizations []domain.Event
	friends       []domain.Event
	popular       []domain.Event
	cursors       map[Partition]string
	exhausted     map[Partition]bool
}

// NewAccumulator creates pagination state for one user's feed.
func NewAccumulator(assembler *Assembler, userID string, interests, orgs, friends []string, pageSize int) *Accumulator {
	return &Accumulator{
		assembler: assembler,
		userID:    userID,
		interests: interests,
		orgs:      orgs,
		friendIDs: friends,
		pageSize:  pageSize,
		cursors:   make(map[Partition]string),
		exhausted: make(map[Partition]bool),
	}
}

// Refresh fetches first pages for every partition and replaces all
// accumulated state. It supersedes any in-flight request.
func (c *Accumulator) Refresh(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	result, err := c.assembler.FetchFeed(ctx, Request{
		UserID:              c.userID,
		Interests:           c.interests,
		JoinedOrganizations: c.orgs,
		Friends:             c.friendIDs,
		PageSize:            c.pageSize,
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return nil, ErrSuperseded
	}

	c.yourEvents = result.YourEvents
	c.discover = result.Discover
	c.organizations = result.Organizations
	c.friends = result.Friends
	c.popular = result.Popular
	c.cursors = make(map[Partition]string)
	c.exhausted = make(map[Partition]bool)
	c.applyCursors(result.Cursors)

	return c.snapshotLocked(), nil
}

// LoadMore fetches the next page for every partition still reporting more
// data and merges it into the accumulated lists. YourEvents and Popular are
// recomputed in full each call.
func (c *Accumulator) LoadMore(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	gen := c.generation
	if c.allExhaustedLocked() {
		defer c.mu.Unlock()
		return c.snapshotLocked(), nil
	}
	cursors := make(map[Partition]string, len(c.cursors))
	for partition, cursor := range c.cursors {
		cursors[partition] = cursor
	}
	exhausted := make(map[Partition]bool, len(c.exhausted))
	for partition, done := range c.exhausted {
		exhausted[partition] = done
	}
	c.mu.Unlock()

	result, err := c.assembler.FetchFeed(ctx, Request{
		UserID:              c.userID,
		Interests:           c.interests,
		JoinedOrganizations: c.orgs,
		Friends:             c.friendIDs,
		Cursors:             cursors,
		PageSize:            c.pageSize,
		Exhausted:           exhausted,
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return nil, ErrSuperseded
	}

	c.yourEvents = result.YourEvents
	c.popular = result.Popular
	c.discover = Merge(c.discover, result.Discover)
	c.organizations = Merge(c.organizations, result.Organizations)
	c.friends = Merge(c.friends, result.Friends)
	c.applyCursors(result.Cursors)

	return c.snapshotLocked(), nil
}

// HasMore reports whether any partition still has pages to fetch.
func (c *Accumulator) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.allExhaustedLocked()
}

func (c *Accumulator) applyCursors(cursors map[Partition]*string) {
	for _, partition := range CursoredPartitions {
		token, ok := cursors[partition]
		if !ok {
			continue
		}
		if token == nil {
			c.exhausted[partition] = true
			delete(c.cursors, partition)
			continue
		}
		c.cursors[partition] = *token
	}
}

func (c *Accumulator) allExhaustedLocked() bool {
	for _, partition := range CursoredPartitions {
		if !c.exhausted[partition] {
			return false
		}
	}
	return true
}

// snapshotLocked copies the accumulated state into a Result.
func (c *Accumulator) snapshotLocked() *Result {
	cursors := make(map[Partition]*string, len(CursoredPartitions))
	for _, partition := range CursoredPartitions {
		if c.exhausted[partition] {
			cursors[partition] = nil
			continue
		}
		cursor := c.cursors[partition]
		cursors[partition] = &cursor
	}

	return &Result{
		YourEvents:    append([]domain.Event(nil), c.yourEvents...),
		Discover:      append([]domain.Event(nil), c.discover...),
		Organizations: append([]domain.Event(nil), c.organizations...),
		Friends:       append([]domain.Event(nil), c.friends...),
		Popular:       append([]domain.Event(nil), c.popular...),
		Cursors:       cursors,
	}
}
