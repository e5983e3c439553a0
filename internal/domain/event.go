package domain

import (
	"errors"
	"strings"
	"time"
)

// Visibility controls whether an event shows up in discovery feeds.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ErrMalformedEvent marks a stored document that cannot be used as an event
// (missing identifier or end time). Callers treat these like missing records.
var ErrMalformedEvent = errors.New("domain: malformed event document")

// Event represents a campus event stored in the events collection
type Event struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description,omitempty"`
	Date                 string     `json:"date,omitempty"`
	StartTime            time.Time  `json:"startTime"`
	EndTime              time.Time  `json:"endTime"`
	Location             string     `json:"location,omitempty"`
	Categories           []string   `json:"categories,omitempty"`
	CreatedBy            string     `json:"createdBy,omitempty"`
	HostedByOrg          string     `json:"hostedByOrg,omitempty"`
	Attendees            []string   `json:"attendees,omitempty"`
	AttendeesCount       int        `json:"attendeesCount"`
	Discovery            Visibility `json:"discovery"`
	PendingApproval      bool       `json:"pendingApproval"`
	IntegrationPlatforms []string   `json:"integrationPlatforms,omitempty"`
}

// EventFromDocument maps a loosely-typed store document into a validated
// Event. Optional fields fall back to defaults; a document without an end
// time is unusable for feed filtering and is rejected as malformed.
func EventFromDocument(id string, data map[string]interface{}) (Event, error) {
	if id == "" {
		return Event{}, ErrMalformedEvent
	}

	endTime, ok := timeField(data, "endTime")
	if !ok {
		return Event{}, ErrMalformedEvent
	}

	startTime, _ := timeField(data, "startTime")

	discovery := VisibilityPrivate
	if raw := stringField(data, "discovery"); raw != "" {
		discovery = Visibility(strings.ToLower(raw))
	}

	name := stringField(data, "name")
	if name == "" {
		name = "Untitled Event"
	}

	attendees := stringSliceField(data, "attendees")

	return Event{
		ID:                   id,
		Name:                 name,
		Description:          stringField(data, "description"),
		Date:                 stringField(data, "date"),
		StartTime:            startTime,
		EndTime:              endTime,
		Location:             stringField(data, "location"),
		Categories:           stringSliceField(data, "categories"),
		CreatedBy:            stringField(data, "createdBy"),
		HostedByOrg:          stringField(data, "hostedByOrg"),
		Attendees:            attendees,
		AttendeesCount:       intField(data, "attendeesCount", len(attendees)),
		Discovery:            discovery,
		PendingApproval:      boolField(data, "pendingApproval"),
		IntegrationPlatforms: stringSliceField(data, "integrationPlatforms"),
	}, nil
}

// Document renders the event back into the store representation. Timestamps
// are stored as RFC 3339 UTC strings so that the store's lexical ordering on
// endTime matches chronological ordering. The denormalized attendee count is
// recomputed from the attendee set.
func (e Event) Document() map[string]interface{} {
	return map[string]interface{}{
		"name":                 e.Name,
		"description":          e.Description,
		"date":                 e.Date,
		"startTime":            e.StartTime.UTC().Format(time.RFC3339),
		"endTime":              e.EndTime.UTC().Format(time.RFC3339),
		"location":             e.Location,
		"categories":           e.Categories,
		"createdBy":            e.CreatedBy,
		"hostedByOrg":          e.HostedByOrg,
		"attendees":            e.Attendees,
		"attendeesCount":       len(e.Attendees),
		"discovery":            string(e.Discovery),
		"pendingApproval":      e.PendingApproval,
		"integrationPlatforms": e.IntegrationPlatforms,
	}
}

func stringField(data map[string]interface{}, key string) string {
	if val, ok := data[key].(string); ok {
		return val
	}
	return ""
}

func boolField(data map[string]interface{}, key string) bool {
	if val, ok := data[key].(bool); ok {
		return val
	}
	return false
}

func intField(data map[string]interface{}, key string, fallback int) int {
	switch val := data[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	}
	return fallback
}

func stringSliceField(data map[string]interface{}, key string) []string {
	switch val := data[key].(type) {
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// timeField accepts both native timestamps and RFC 3339 strings; documents
// written by older clients store times as ISO strings.
func timeField(data map[string]interface{}, key string) (time.Time, bool) {
	switch val := data[key].(type) {
	case time.Time:
		return val, true
	case string:
		if val == "" {
			return time.Time{}, false
		}
		parsed, err := time.Parse(time.RFC3339, val)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}
