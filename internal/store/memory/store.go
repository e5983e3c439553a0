// Package memory provides an in-memory implementation of the store client
// contract with the same filter, ordering, and cursor semantics as the
// Firestore-backed store. It backs tests and the seed tool's dry-run mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

// Store is a thread-safe in-memory document store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
	queryLog    []store.Query
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]interface{}),
	}
}

// QueryLog returns every query issued so far, in order. Tests use it to
// assert that short-circuited partitions never touch the store.
func (s *Store) QueryLog() []store.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Query, len(s.queryLog))
	copy(out, s.queryLog)
	return out
}

// GetDocument returns a copy of the stored document.
func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return store.Document{}, fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
	}
	return store.Document{ID: id, Data: copyData(data)}, nil
}

// CreateDocument stores the data under a fresh random identifier.
func (s *Store) CreateDocument(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	id := uuid.NewString()
	if err := s.SetDocument(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// SetDocument overwrites the document at the given identifier.
func (s *Store) SetDocument(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}
	s.collections[collection][id] = copyData(data)
	return nil
}

// UpdateDocument applies field mutations to an existing document.
func (s *Store) UpdateDocument(ctx context.Context, collection, id string, updates []store.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
	}

	for _, u := range updates {
		switch u.Op {
		case store.FieldSet:
			data[u.Field] = u.Value
		case store.FieldArrayUnion:
			data[u.Field] = arrayUnion(toStringSlice(data[u.Field]), u.Value)
		case store.FieldArrayRemove:
			data[u.Field] = arrayRemove(toStringSlice(data[u.Field]), u.Value)
		default:
			return fmt.Errorf("unsupported field op %q", u.Op)
		}
	}
	return nil
}

// DeleteDocument removes a document; deleting a missing document is a no-op.
func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

// QueryPage runs a filtered, ordered, limited page query over a collection.
// Documents missing the order-by field are excluded, matching the behavior
// of server-side single-field ordering.
func (s *Store) QueryPage(ctx context.Context, q store.Query) (store.Page, error) {
	s.mu.Lock()
	s.queryLog = append(s.queryLog, q)
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var resumeSort interface{}
	var resumeID string
	if q.Cursor != "" {
		var err error
		resumeSort, resumeID, err = store.DecodeCursor(q, q.Cursor)
		if err != nil {
			return store.Page{}, err
		}
	}

	type sortable struct {
		doc store.Document
		key interface{}
	}

	var matched []sortable
	for id, data := range s.collections[q.Collection] {
		key, ok := data[q.OrderBy.Field]
		if !ok {
			continue
		}
		if !matchesAll(data, q.Filters) {
			continue
		}
		matched = append(matched, sortable{
			doc: store.Document{ID: id, Data: copyData(data)},
			key: key,
		})
	}

	desc := q.OrderBy.Direction == store.Descending
	sort.Slice(matched, func(i, j int) bool {
		cmp, ok := compareValues(matched[i].key, matched[j].key)
		if ok && cmp != 0 {
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return matched[i].doc.ID < matched[j].doc.ID
	})

	start := 0
	if q.Cursor != "" {
		start = len(matched)
		for i, m := range matched {
			cmp, ok := compareValues(m.key, resumeSort)
			if !ok {
				continue
			}
			past := cmp > 0
			if desc {
				past = cmp < 0
			}
			if past || (cmp == 0 && m.doc.ID > resumeID) {
				start = i
				break
			}
		}
	}

	end := len(matched)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	page := store.Page{}
	for _, m := range matched[start:end] {
		page.Documents = append(page.Documents, m.doc)
	}
	if n := len(page.Documents); n > 0 {
		last := matched[start+n-1]
		page.NextCursor = store.EncodeCursor(q, last.key, last.doc.ID)
	}
	return page, nil
}

func matchesAll(data map[string]interface{}, filters []store.Filter) bool {
	for _, f := range filters {
		if !matches(data, f) {
			return false
		}
	}
	return true
}

func matches(data map[string]interface{}, f store.Filter) bool {
	val, ok := data[f.Field]

	switch f.Op {
	case store.OpEqual:
		if !ok {
			return false
		}
		cmp, comparable := compareValues(val, f.Value)
		return comparable && cmp == 0
	case store.OpGreaterOrEqual:
		if !ok {
			return false
		}
		cmp, comparable := compareValues(val, f.Value)
		return comparable && cmp >= 0
	case store.OpLessOrEqual:
		if !ok {
			return false
		}
		cmp, comparable := compareValues(val, f.Value)
		return comparable && cmp <= 0
	case store.OpArrayContains:
		return containsValue(toStringSlice(val), f.Value)
	case store.OpArrayContainsAny:
		members := toStringSlice(val)
		for _, want := range toStringSlice(f.Value) {
			if containsValue(members, want) {
				return true
			}
		}
		return false
	case store.OpIn:
		if !ok {
			return false
		}
		return containsValue(toStringSlice(f.Value), val)
	}
	return false
}

// compareValues orders two document values. Numbers are normalized to
// float64 (JSON cursor round-trips turn ints into floats); strings compare
// lexically, which matches chronological order for RFC 3339 timestamps.
func compareValues(a, b interface{}) (int, bool) {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toStringSlice(v interface{}) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vals}
	}
	return nil
}

func containsValue(members []string, v interface{}) bool {
	want, ok := v.(string)
	if !ok {
		return false
	}
	for _, m := range members {
		if m == want {
			return true
		}
	}
	return false
}

func arrayUnion(members []string, v interface{}) []string {
	val, ok := v.(string)
	if !ok {
		return members
	}
	for _, m := range members {
		if m == val {
			return members
		}
	}
	return append(members, val)
}

func arrayRemove(members []string, v interface{}) []string {
	val, ok := v.(string)
	if !ok {
		return members
	}
	out := members[:0]
	for _, m := range members {
		if m != val {
			out = append(out, m)
		}
	}
	return out
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if slice, ok := v.([]string); ok {
			copied := make([]string, len(slice))
			copy(copied, slice)
			out[k] = copied
			continue
		}
		out[k] = v
	}
	return out
}
