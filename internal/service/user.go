package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

// UserService represents the user profile service
type UserService struct {
	store store.Client
	log   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(storeClient store.Client, log *zap.Logger) *UserService {
	return &UserService{
		store: storeClient,
		log:   log,
	}
}

// GetProfile fetches a user profile by netID
func (s *UserService) GetProfile(ctx context.Context, netID string) (domain.UserProfile, error) {
	doc, err := s.store.GetDocument(ctx, usersCollection, netID)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	return domain.UserFromDocument(doc.ID, doc.Data), nil
}

// UpdateInterests replaces the user's interest set. Interests drive the
// discover feed partition, so every tag must come from the known category
// list.
func (s *UserService) UpdateInterests(ctx context.Context, netID string, interests []string) error {
	known := make(map[string]struct{}, len(domain.InterestCategories))
	for _, category := range domain.InterestCategories {
		known[category] = struct{}{}
	}
	for _, interest := range interests {
		if _, ok := known[interest]; !ok {
			return fmt.Errorf("%w: unknown interest %q", ErrInvalidInput, interest)
		}
	}

	err := s.store.UpdateDocument(ctx, usersCollection, netID, []store.Update{
		{Field: "interests", Op: store.FieldSet, Value: interests},
	})
	if err != nil {
		return fmt.Errorf("failed to update interests: %w", err)
	}

	s.log.Info("Interests updated",
		zap.String("net_id", netID),
		zap.Int("interest_count", len(interests)))
	return nil
}
