package feed

import (
	"time"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

const (
	eventsCollection = "events"
	usersCollection  = "users"

	// DefaultPageSize is used when a request does not specify one.
	DefaultPageSize = 10

	popularLimit  = 10
	popularWindow = 7 * 24 * time.Hour
)

func endTimeUpcoming(now time.Time) store.Filter {
	return store.Filter{Field: "endTime", Op: store.OpGreaterOrEqual, Value: now.UTC().Format(time.RFC3339)}
}

var orderByEndTime = store.OrderBy{Field: "endTime", Direction: store.Ascending}

// discoverQuery matches public, approved, upcoming events sharing at least
// one category with the user's interests.
func discoverQuery(interests []string, pageSize int, cursor string, now time.Time) store.Query {
	return store.Query{
		Collection: eventsCollection,
		Filters: []store.Filter{
			{Field: "categories", Op: store.OpArrayContainsAny, Value: interests},
			{Field: "discovery", Op: store.OpEqual, Value: "public"},
			{Field: "pendingApproval", Op: store.OpEqual, Value: false},
			endTimeUpcoming(now),
		},
		OrderBy: orderByEndTime,
		Limit:   pageSize,
		Cursor:  cursor,
	}
}

// organizationsQuery matches approved upcoming events hosted by any of the
// user's joined organizations. No visibility filter: members see their org's
// private events.
func organizationsQuery(orgs []string, pageSize int, cursor string, now time.Time) store.Query {
	return store.Query{
		Collection: eventsCollection,
		Filters: []store.Filter{
			{Field: "hostedByOrg", Op: store.OpIn, Value: orgs},
			{Field: "pendingApproval", Op: store.OpEqual, Value: false},
			endTimeUpcoming(now),
		},
		OrderBy: orderByEndTime,
		Limit:   pageSize,
		Cursor:  cursor,
	}
}

// friendsCreatedQuery matches public, approved, upcoming events created by a
// friend. createdBy is a scalar field, so membership uses the "in" operator.
func friendsCreatedQuery(friends []string, pageSize int, cursor string, now time.Time) store.Query {
	return store.Query{
		Collection: eventsCollection,
		Filters: []store.Filter{
			{Field: "createdBy", Op: store.OpIn, Value: friends},
			{Field: "discovery", Op: store.OpEqual, Value: "public"},
			{Field: "pendingApproval", Op: store.OpEqual, Value: false},
			endTimeUpcoming(now),
		},
		OrderBy: orderByEndTime,
		Limit:   pageSize,
		Cursor:  cursor,
	}
}

// friendsAttendingQuery matches public, approved, upcoming events with a
// friend in the attendee set.
func friendsAttendingQuery(friends []string, pageSize int, cursor string, now time.Time) store.Query {
	return store.Query{
		Collection: eventsCollection,
		Filters: []store.Filter{
			{Field: "attendees", Op: store.OpArrayContainsAny, Value: friends},
			{Field: "discovery", Op: store.OpEqual, Value: "public"},
			{Field: "pendingApproval", Op: store.OpEqual, Value: false},
			endTimeUpcoming(now),
		},
		OrderBy: orderByEndTime,
		Limit:   pageSize,
		Cursor:  cursor,
	}
}

// popularQuery matches the most-attended public events ending within the
// next week. Recomputed in full on every request, never paginated.
func popularQuery(now time.Time) store.Query {
	return store.Query{
		Collection: eventsCollection,
		Filters: []store.Filter{
			{Field: "discovery", Op: store.OpEqual, Value: "public"},
			{Field: "pendingApproval", Op: store.OpEqual, Value: false},
			endTimeUpcoming(now),
			{Field: "endTime", Op: store.OpLessOrEqual, Value: now.UTC().Add(popularWindow).Format(time.RFC3339)},
		},
		OrderBy: store.OrderBy{Field: "attendeesCount", Direction: store.Descending},
		Limit:   popularLimit,
	}
}
