package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

const searchLimit = 20

// FriendService represents the friend graph service
type FriendService struct {
	store store.Client
	log   *zap.Logger
}

// NewFriendService creates a new friend service
func NewFriendService(storeClient store.Client, log *zap.Logger) *FriendService {
	return &FriendService{
		store: storeClient,
		log:   log,
	}
}

func (s *FriendService) profile(ctx context.Context, netID string) (domain.UserProfile, error) {
	doc, err := s.store.GetDocument(ctx, usersCollection, netID)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to fetch user %s: %w", netID, err)
	}
	return domain.UserFromDocument(doc.ID, doc.Data), nil
}

// SendFriendRequest records a pending friend request on the recipient's
// profile. Self-requests and requests between existing friends are rejected;
// re-sending an already pending request is a no-op at the store level.
func (s *FriendService) SendFriendRequest(ctx context.Context, senderNetID, recipientNetID string) error {
	if senderNetID == recipientNetID {
		return fmt.Errorf("%w: cannot befriend yourself", ErrInvalidInput)
	}

	if _, err := s.profile(ctx, senderNetID); err != nil {
		return err
	}
	recipient, err := s.profile(ctx, recipientNetID)
	if err != nil {
		return err
	}
	if contains(recipient.Friends, senderNetID) {
		return fmt.Errorf("%w: %s and %s are already friends", ErrConflict, senderNetID, recipientNetID)
	}

	err = s.store.UpdateDocument(ctx, usersCollection, recipientNetID, []store.Update{
		{Field: "pendingFriendRequests", Op: store.FieldArrayUnion, Value: senderNetID},
	})
	if err != nil {
		return fmt.Errorf("failed to record friend request: %w", err)
	}
	return nil
}

// AcceptFriendRequest turns a pending request into a mutual friendship
func (s *FriendService) AcceptFriendRequest(ctx context.Context, recipientNetID, senderNetID string) error {
	recipient, err := s.profile(ctx, recipientNetID)
	if err != nil {
		return err
	}
	if !contains(recipient.PendingFriendRequests, senderNetID) {
		return fmt.Errorf("%w: no pending request from %s", ErrInvalidInput, senderNetID)
	}

	err = s.store.UpdateDocument(ctx, usersCollection, recipientNetID, []store.Update{
		{Field: "pendingFriendRequests", Op: store.FieldArrayRemove, Value: senderNetID},
		{Field: "friends", Op: store.FieldArrayUnion, Value: senderNetID},
	})
	if err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	err = s.store.UpdateDocument(ctx, usersCollection, senderNetID, []store.Update{
		{Field: "friends", Op: store.FieldArrayUnion, Value: recipientNetID},
	})
	if err != nil {
		return fmt.Errorf("failed to mirror friendship to sender: %w", err)
	}

	s.log.Info("Friend request accepted",
		zap.String("recipient", recipientNetID),
		zap.String("sender", senderNetID))
	return nil
}

// DeclineFriendRequest drops a pending friend request
func (s *FriendService) DeclineFriendRequest(ctx context.Context, recipientNetID, senderNetID string) error {
	err := s.store.UpdateDocument(ctx, usersCollection, recipientNetID, []store.Update{
		{Field: "pendingFriendRequests", Op: store.FieldArrayRemove, Value: senderNetID},
	})
	if err != nil {
		return fmt.Errorf("failed to decline friend request: %w", err)
	}
	return nil
}

// SearchUsers runs a prefix search over user profiles. by selects the field:
// "name" searches full names, anything else searches netIDs. The 
// upper bound sits above every other printable character, so the range
// [query, query+] captures exactly the prefix matches.
func (s *FriendService) SearchUsers(ctx context.Context, query, by string) ([]dto.UserSummary, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}

	field := "netID"
	if by == "name" {
		field = "fullName"
	}

	page, err := s.store.QueryPage(ctx, store.Query{
		Collection: usersCollection,
		Filters: []store.Filter{
			{Field: field, Op: store.OpGreaterOrEqual, Value: query},
			{Field: field, Op: store.OpLessOrEqual, Value: query + ""},
		},
		OrderBy: store.OrderBy{Field: field, Direction: store.Ascending},
		Limit:   searchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	results := make([]dto.UserSummary, 0, len(page.Documents))
	for _, doc := range page.Documents {
		profile := domain.UserFromDocument(doc.ID, doc.Data)
		results = append(results, dto.UserSummary{
			NetID:        profile.NetID,
			FullName:     profile.FullName,
			ProfileImage: profile.ProfileImage,
		})
	}
	return results, nil
}
