package dto

import (
	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
)

// FeedCursors carries one continuation token per cursored partition. A null
// token means that partition is exhausted; the client should stop asking for
// more pages until the next full refresh.
type FeedCursors struct {
	Discover         *string `json:"discover"`
	Organizations    *string `json:"organizations"`
	FriendsCreated   *string `json:"friendsCreated"`
	FriendsAttending *string `json:"friendsAttending"`
}

// FeedResponse is one assembled feed page
type FeedResponse struct {
	YourEvents    []domain.Event `json:"yourEvents"`
	Discover      []domain.Event `json:"discover"`
	Organizations []domain.Event `json:"organizations"`
	Friends       []domain.Event `json:"friends"`
	Popular       []domain.Event `json:"popular"`
	Cursors       FeedCursors    `json:"cursors"`
}

// CreateEventResponse returns the identifier of a newly created event
type CreateEventResponse struct {
	EventID string `json:"event_id" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Status  string `json:"status" example:"created"`
}

// CreateOrganizationResponse returns the identifier of a new organization
type CreateOrganizationResponse struct {
	OrganizationID string `json:"organization_id" example:"acm-at-uiuc"`
	Status         string `json:"status" example:"created"`
}

// AttendeesResponse lists the users attending an event
type AttendeesResponse struct {
	Attendees []string `json:"attendees"`
	Count     int      `json:"count" example:"42"`
}

// RSVPStatusResponse reports whether a user is attending an event
type RSVPStatusResponse struct {
	Attending bool `json:"attending" example:"true"`
}

// UserSummary is the public slice of a profile returned by search
type UserSummary struct {
	NetID        string `json:"netID" example:"jdoe2"`
	FullName     string `json:"fullName,omitempty" example:"Jane Doe"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// SearchUsersResponse holds user search results
type SearchUsersResponse struct {
	Users []UserSummary `json:"users"`
}

// StatusResponse is a generic acknowledgement
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Bad Request"`
	Message string `json:"message" example:"invalid request parameters"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}
