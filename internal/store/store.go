package store

import (
	"context"
	"errors"
)

// Operator enumerates the filter operators the document store supports.
type Operator string

const (
	OpEqual            Operator = "=="
	OpGreaterOrEqual   Operator = ">="
	OpLessOrEqual      Operator = "<="
	OpArrayContains    Operator = "array-contains"
	OpArrayContainsAny Operator = "array-contains-any"
	OpIn               Operator = "in"
)

// Direction of an ordered query.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Filter is one (field, operator, value) predicate.
type Filter struct {
	Field string
	Op    Operator
	Value interface{}
}

// OrderBy names the sort field for a paginated query. The document ID is
// always the implicit tiebreaker.
type OrderBy struct {
	Field     string
	Direction Direction
}

// Query describes one filtered, ordered, limited page request. Cursor is an
// opaque continuation token from a previous page of the same query; empty
// means first page.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    OrderBy
	Limit      int
	Cursor     string
}

// Document is a raw store record: identifier plus loosely-typed fields.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Page is one query result page. NextCursor resumes after the last record;
// it is empty when the page itself is empty.
type Page struct {
	Documents  []Document
	NextCursor string
}

// FieldOp enumerates single-document mutation operations.
type FieldOp string

const (
	FieldSet         FieldOp = "set"
	FieldArrayUnion  FieldOp = "array-union"
	FieldArrayRemove FieldOp = "array-remove"
)

// Update is one field mutation within a document update.
type Update struct {
	Field string
	Op    FieldOp
	Value interface{}
}

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("store: document not found")

	// ErrInvalidCursor is returned when a continuation token is replayed
	// against a different collection, filter set, or ordering than the one
	// that produced it.
	ErrInvalidCursor = errors.New("store: invalid cursor")
)

// Client is the document store contract. Reads power the feed engine; the
// write operations are single-document mutations assumed atomic at the
// store layer.
type Client interface {
	GetDocument(ctx context.Context, collection, id string) (Document, error)
	QueryPage(ctx context.Context, query Query) (Page, error)
	CreateDocument(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	SetDocument(ctx context.Context, collection, id string, data map[string]interface{}) error
	UpdateDocument(ctx context.Context, collection, id string, updates []Update) error
	DeleteDocument(ctx context.Context, collection, id string) error
}
