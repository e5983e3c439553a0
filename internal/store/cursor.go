package store

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// cursorToken is the decoded form of an opaque continuation token. Scope
// fingerprints the query the token belongs to; SortValue and DocID locate
// the last record of the previous page.
type cursorToken struct {
	Scope     string      `json:"scope"`
	SortValue interface{} `json:"sort_value"`
	DocID     string      `json:"doc_id"`
}

// QueryScope fingerprints the collection, filter shape, and ordering of a
// query. Values of range filters on the sort field are excluded: the lower
// bound of an end-time window moves with the clock between pages, and the
// cursor position supersedes it anyway. Everything else (interests, org
// sets, visibility) changing invalidates outstanding cursors.
func QueryScope(q Query) string {
	parts := make([]string, 0, len(q.Filters)+2)
	parts = append(parts, q.Collection)

	filters := make([]string, 0, len(q.Filters))
	for _, f := range q.Filters {
		rangeOnSortField := (f.Op == OpGreaterOrEqual || f.Op == OpLessOrEqual) && f.Field == q.OrderBy.Field
		if rangeOnSortField {
			filters = append(filters, fmt.Sprintf("%s %s", f.Field, f.Op))
			continue
		}
		filters = append(filters, fmt.Sprintf("%s %s %v", f.Field, f.Op, f.Value))
	}
	sort.Strings(filters)
	parts = append(parts, filters...)
	parts = append(parts, fmt.Sprintf("order %s %s", q.OrderBy.Field, q.OrderBy.Direction))

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:8])
}

// EncodeCursor builds the opaque continuation token for a page whose last
// record had the given sort value and document ID.
func EncodeCursor(q Query, sortValue interface{}, docID string) string {
	token := cursorToken{
		Scope:     QueryScope(q),
		SortValue: sortValue,
		DocID:     docID,
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor validates a token against the query it is being replayed on
// and returns the resume position. A token that fails to decode or was
// issued for a different query yields ErrInvalidCursor.
func DecodeCursor(q Query, cursor string) (sortValue interface{}, docID string, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var token cursorToken
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	if token.Scope != QueryScope(q) {
		return nil, "", fmt.Errorf("%w: token issued for a different query", ErrInvalidCursor)
	}

	return token.SortValue, token.DocID, nil
}
