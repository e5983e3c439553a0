package domain

import "time"

// Announcement actions.
const (
	AnnouncementActionCreated  = "created"
	AnnouncementActionApproved = "approved"
)

// Announcement is the message published when an event goes live and has
// integration platforms configured. A worker fans it out into per-platform
// announcement documents.
type Announcement struct {
	EventID     string    `json:"event_id"`
	EventName   string    `json:"event_name"`
	HostedByOrg string    `json:"hosted_by_org,omitempty"`
	Action      string    `json:"action"`
	Platforms   []string  `json:"platforms"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
}
