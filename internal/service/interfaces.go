package service

import (
	"context"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
)

// FeedServicer defines the interface for feed assembly operations
type FeedServicer interface {
	GetFeed(ctx context.Context, req *dto.FeedRequest) (*dto.FeedResponse, error)
}

// EventServicer defines the interface for event lifecycle operations
type EventServicer interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (string, error)
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	EditEvent(ctx context.Context, eventID string, req *dto.UpdateEventRequest) error
	DeleteEvent(ctx context.Context, eventID string) error
	RSVP(ctx context.Context, eventID, userID string) error
	CancelRSVP(ctx context.Context, eventID, userID string) error
	GetAttendees(ctx context.Context, eventID string) ([]string, error)
	IsUserAttending(ctx context.Context, eventID, userID string) (bool, error)
}

// OrganizationServicer defines the interface for organization operations
type OrganizationServicer interface {
	CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (string, error)
	GetOrganization(ctx context.Context, orgID string) (domain.Organization, error)
	RequestToJoin(ctx context.Context, orgID, netID string) error
	CancelJoinRequest(ctx context.Context, orgID, netID string) error
	ApproveMember(ctx context.Context, orgID, netID string) error
	DeclineMember(ctx context.Context, orgID, netID string) error
	LeaveOrganization(ctx context.Context, orgID, netID string) error
	PromoteToAdmin(ctx context.Context, orgID, netID string) error
	DemoteAdmin(ctx context.Context, orgID, netID string) error
	TransferSuperAdmin(ctx context.Context, orgID, oldSuperAdmin, newSuperAdmin string) error
	ApproveEvent(ctx context.Context, orgID, eventID string) error
	DeclineEvent(ctx context.Context, orgID, eventID string) error
}

// FriendServicer defines the interface for friend graph operations
type FriendServicer interface {
	SendFriendRequest(ctx context.Context, senderNetID, recipientNetID string) error
	AcceptFriendRequest(ctx context.Context, recipientNetID, senderNetID string) error
	DeclineFriendRequest(ctx context.Context, recipientNetID, senderNetID string) error
	SearchUsers(ctx context.Context, query, by string) ([]dto.UserSummary, error)
}

// UserServicer defines the interface for user profile operations
type UserServicer interface {
	GetProfile(ctx context.Context, netID string) (domain.UserProfile, error)
	UpdateInterests(ctx context.Context, netID string, interests []string) error
}
