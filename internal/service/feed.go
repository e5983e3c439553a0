package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/feed"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

// FeedService resolves a user's feed context and delegates page assembly to
// the feed engine
type FeedService struct {
	store     store.Client
	assembler *feed.Assembler
	log       *zap.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(storeClient store.Client, assembler *feed.Assembler, log *zap.Logger) *FeedService {
	return &FeedService{
		store:     storeClient,
		assembler: assembler,
		log:       log,
	}
}

// GetFeed loads the requesting user's profile, assembles one feed page, and
// maps it to the transport shape. An unknown user still gets a feed; their
// personalized partitions simply come back empty.
func (s *FeedService) GetFeed(ctx context.Context, req *dto.FeedRequest) (*dto.FeedResponse, error) {
	var profile domain.UserProfile

	userDoc, err := s.store.GetDocument(ctx, usersCollection, req.UserID)
	switch {
	case err == nil:
		profile = domain.UserFromDocument(userDoc.ID, userDoc.Data)
	case errors.Is(err, store.ErrNotFound):
		s.log.Warn("Feed requested for unknown user", zap.String("user_id", req.UserID))
	default:
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	result, err := s.assembler.FetchFeed(ctx, feed.Request{
		UserID:              req.UserID,
		Interests:           profile.Interests,
		JoinedOrganizations: profile.JoinedOrganizations,
		Friends:             profile.Friends,
		PageSize:            req.PageSize,
		Cursors: map[feed.Partition]string{
			feed.PartitionDiscover:         req.DiscoverCursor,
			feed.PartitionOrganizations:    req.OrganizationsCursor,
			feed.PartitionFriendsCreated:   req.FriendsCreatedCursor,
			feed.PartitionFriendsAttending: req.FriendsAttendingCursor,
		},
	})
	if err != nil {
		return nil, err
	}

	return &dto.FeedResponse{
		YourEvents:    result.YourEvents,
		Discover:      result.Discover,
		Organizations: result.Organizations,
		Friends:       result.Friends,
		Popular:       result.Popular,
		Cursors: dto.FeedCursors{
			Discover:         result.Cursors[feed.PartitionDiscover],
			Organizations:    result.Cursors[feed.PartitionOrganizations],
			FriendsCreated:   result.Cursors[feed.PartitionFriendsCreated],
			FriendsAttending: result.Cursors[feed.PartitionFriendsAttending],
		},
	}, nil
}
