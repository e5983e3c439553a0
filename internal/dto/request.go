package dto

// FeedRequest represents a feed fetch request. Cursors are the opaque
// per-partition tokens from a previous response; omitting one means first
// page for that partition.
type FeedRequest struct {
	UserID                 string `form:"user_id" binding:"required" example:"jdoe2"`
	PageSize               int    `form:"page_size" example:"10"`
	DiscoverCursor         string `form:"discover_cursor"`
	OrganizationsCursor    string `form:"organizations_cursor"`
	FriendsCreatedCursor   string `form:"friends_created_cursor"`
	FriendsAttendingCursor string `form:"friends_attending_cursor"`
}

// CreateEventRequest represents an event creation request. Events submitted
// under an organization stay pending until an org admin approves them.
type CreateEventRequest struct {
	Name                 string   `json:"name" binding:"required" example:"Intro to Go Workshop"`
	Description          string   `json:"description" example:"Hands-on workshop for beginners"`
	Date                 string   `json:"date" example:"2025-04-12"`
	StartTime            string   `json:"startTime" binding:"required" example:"2025-04-12T18:00:00Z"`
	EndTime              string   `json:"endTime" binding:"required" example:"2025-04-12T20:00:00Z"`
	Location             string   `json:"location" example:"Siebel Center 1404"`
	Categories           []string `json:"categories" example:"Technology,Computing"`
	CreatedBy            string   `json:"createdBy" binding:"required" example:"jdoe2"`
	HostedByOrg          string   `json:"hostedByOrg" example:"acm"`
	Discovery            string   `json:"discovery" example:"public"`
	IntegrationPlatforms []string `json:"integrationPlatforms" example:"discord"`
}

// UpdateEventRequest represents a partial event edit; nil fields are left
// untouched.
type UpdateEventRequest struct {
	Name                 *string   `json:"name,omitempty"`
	Description          *string   `json:"description,omitempty"`
	Date                 *string   `json:"date,omitempty"`
	StartTime            *string   `json:"startTime,omitempty"`
	EndTime              *string   `json:"endTime,omitempty"`
	Location             *string   `json:"location,omitempty"`
	Categories           *[]string `json:"categories,omitempty"`
	Discovery            *string   `json:"discovery,omitempty"`
	IntegrationPlatforms *[]string `json:"integrationPlatforms,omitempty"`
}

// RSVPRequest identifies the user RSVPing to an event
type RSVPRequest struct {
	UserID string `json:"user_id" binding:"required" example:"jdoe2"`
}

// CreateOrganizationRequest represents an organization creation request
type CreateOrganizationRequest struct {
	Name      string `json:"name" binding:"required" example:"ACM at UIUC"`
	Bio       string `json:"bio" example:"Computing interest group"`
	CreatedBy string `json:"createdBy" binding:"required" example:"jdoe2"`
}

// MembershipRequest identifies the member a membership action applies to
type MembershipRequest struct {
	NetID string `json:"netID" binding:"required" example:"jdoe2"`
}

// TransferSuperAdminRequest transfers the super-admin role
type TransferSuperAdminRequest struct {
	NewSuperAdmin string `json:"newSuperAdmin" binding:"required" example:"asmith3"`
	OldSuperAdmin string `json:"oldSuperAdmin" binding:"required" example:"jdoe2"`
}

// FriendRequestAction represents sending, accepting, or declining a friend
// request between two users
type FriendRequestAction struct {
	RecipientNetID string `json:"recipientNetID" binding:"required" example:"asmith3"`
	SenderNetID    string `json:"senderNetID" binding:"required" example:"jdoe2"`
}

// SearchUsersRequest represents a user search query
type SearchUsersRequest struct {
	Query string `form:"q" binding:"required" example:"ali"`
	By    string `form:"by" example:"name"`
}

// UpdateInterestsRequest replaces a user's interest set
type UpdateInterestsRequest struct {
	Interests []string `json:"interests" binding:"required" example:"Technology,Music"`
}
