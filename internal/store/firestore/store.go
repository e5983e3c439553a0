package firestore

import (
	"context"
	"fmt"

	cloudfirestore "cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

// Store implements the store.Client contract on Firestore
type Store struct {
	client *Client
	log    *zap.Logger
}

// NewStore creates a new Firestore-backed store
func NewStore(client *Client, log *zap.Logger) *Store {
	return &Store{
		client: client,
		log:    log,
	}
}

// GetDocument fetches a single document by identifier.
func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, error) {
	snap, err := s.client.Conn().Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return store.Document{}, fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
		}
		return store.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return store.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// QueryPage runs one filtered, ordered, limited page query. The opaque
// cursor is validated against the query shape before it is translated into
// a StartAfter position.
func (s *Store) QueryPage(ctx context.Context, q store.Query) (store.Page, error) {
	fq := s.client.Conn().Collection(q.Collection).Query

	for _, f := range q.Filters {
		fq = fq.Where(f.Field, string(f.Op), f.Value)
	}

	dir := cloudfirestore.Asc
	if q.OrderBy.Direction == store.Descending {
		dir = cloudfirestore.Desc
	}
	fq = fq.OrderBy(q.OrderBy.Field, dir).OrderBy(cloudfirestore.DocumentID, cloudfirestore.Asc)

	if q.Cursor != "" {
		sortValue, docID, err := store.DecodeCursor(q, q.Cursor)
		if err != nil {
			return store.Page{}, err
		}
		fq = fq.StartAfter(sortValue, docID)
	}

	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	var page store.Page
	var lastSortValue interface{}
	var lastID string

	iter := fq.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return store.Page{}, fmt.Errorf("failed to query %s: %w", q.Collection, err)
		}
		data := snap.Data()
		page.Documents = append(page.Documents, store.Document{ID: snap.Ref.ID, Data: data})
		lastSortValue = data[q.OrderBy.Field]
		lastID = snap.Ref.ID
	}

	if len(page.Documents) > 0 {
		page.NextCursor = store.EncodeCursor(q, lastSortValue, lastID)
	}
	return page, nil
}

// CreateDocument adds a document under a store-generated identifier.
func (s *Store) CreateDocument(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := s.client.Conn().Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to create document in %s: %w", collection, err)
	}
	return ref.ID, nil
}

// SetDocument overwrites a document at a caller-chosen identifier.
func (s *Store) SetDocument(ctx context.Context, collection, id string, data map[string]interface{}) error {
	if _, err := s.client.Conn().Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

// UpdateDocument applies field mutations to an existing document.
func (s *Store) UpdateDocument(ctx context.Context, collection, id string, updates []store.Update) error {
	fsUpdates := make([]cloudfirestore.Update, 0, len(updates))
	for _, u := range updates {
		switch u.Op {
		case store.FieldSet:
			fsUpdates = append(fsUpdates, cloudfirestore.Update{Path: u.Field, Value: u.Value})
		case store.FieldArrayUnion:
			fsUpdates = append(fsUpdates, cloudfirestore.Update{Path: u.Field, Value: cloudfirestore.ArrayUnion(u.Value)})
		case store.FieldArrayRemove:
			fsUpdates = append(fsUpdates, cloudfirestore.Update{Path: u.Field, Value: cloudfirestore.ArrayRemove(u.Value)})
		default:
			return fmt.Errorf("unsupported field op %q", u.Op)
		}
	}

	if _, err := s.client.Conn().Collection(collection).Doc(id).Update(ctx, fsUpdates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
		}
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}

// DeleteDocument removes a document.
func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	if _, err := s.client.Conn().Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}
