package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/queue"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

const (
	eventsCollection        = "events"
	usersCollection         = "users"
	organizationsCollection = "organizations"
)

// EventService represents event lifecycle service
type EventService struct {
	store     store.Client
	publisher queue.AnnouncementPublisher
	log       *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(storeClient store.Client, publisher queue.AnnouncementPublisher, log *zap.Logger) *EventService {
	return &EventService{
		store:     storeClient,
		publisher: publisher,
		log:       log,
	}
}

// CreateEvent stores a new event. Personal events go live immediately and
// land in the creator's own-events list; events submitted under an
// organization sit in the organization's pending queue until an admin
// approves them.
func (s *EventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (string, error) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return "", fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if endTime.Before(startTime) {
		return "", fmt.Errorf("%w: endTime precedes startTime", ErrInvalidInput)
	}

	discovery := domain.VisibilityPublic
	if req.Discovery != "" {
		switch v := domain.Visibility(strings.ToLower(req.Discovery)); v {
		case domain.VisibilityPublic, domain.VisibilityPrivate:
			discovery = v
		default:
			return "", fmt.Errorf("%w: unknown discovery value %q", ErrInvalidInput, req.Discovery)
		}
	}

	event := domain.Event{
		Name:                 req.Name,
		Description:          req.Description,
		Date:                 req.Date,
		StartTime:            startTime,
		EndTime:              endTime,
		Location:             req.Location,
		Categories:           req.Categories,
		CreatedBy:            req.CreatedBy,
		HostedByOrg:          req.HostedByOrg,
		Discovery:            discovery,
		PendingApproval:      req.HostedByOrg != "",
		IntegrationPlatforms: req.IntegrationPlatforms,
	}

	eventID, err := s.store.CreateDocument(ctx, eventsCollection, event.Document())
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	event.ID = eventID

	if event.PendingApproval {
		err = s.store.UpdateDocument(ctx, organizationsCollection, req.HostedByOrg, []store.Update{
			{Field: "pendingEvents", Op: store.FieldArrayUnion, Value: eventID},
		})
		if err != nil {
			return "", fmt.Errorf("failed to queue event for organization approval: %w", err)
		}
		s.log.Info("Event created pending organization approval",
			zap.String("event_id", eventID),
			zap.String("organization", req.HostedByOrg))
		return eventID, nil
	}

	err = s.store.UpdateDocument(ctx, usersCollection, req.CreatedBy, []store.Update{
		{Field: "yourEvents", Op: store.FieldArrayUnion, Value: eventID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach event to creator: %w", err)
	}

	s.announce(ctx, event, domain.AnnouncementActionCreated)

	s.log.Info("Event created",
		zap.String("event_id", eventID),
		zap.String("created_by", req.CreatedBy))
	return eventID, nil
}

// GetEvent fetches a single event by identifier
func (s *EventService) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	doc, err := s.store.GetDocument(ctx, eventsCollection, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to fetch event: %w", err)
	}
	event, err := domain.EventFromDocument(doc.ID, doc.Data)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %s: %w", eventID, store.ErrNotFound)
	}
	return event, nil
}

// EditEvent applies a partial update; nil request fields are left untouched.
func (s *EventService) EditEvent(ctx context.Context, eventID string, req *dto.UpdateEventRequest) error {
	var updates []store.Update

	set := func(field string, value interface{}) {
		updates = append(updates, store.Update{Field: field, Op: store.FieldSet, Value: value})
	}

	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Date != nil {
		set("date", *req.Date)
	}
	if req.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		set("startTime", startTime.UTC().Format(time.RFC3339))
	}
	if req.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
		set("endTime", endTime.UTC().Format(time.RFC3339))
	}
	if req.Location != nil {
		set("location", *req.Location)
	}
	if req.Categories != nil {
		set("categories", *req.Categories)
	}
	if req.Discovery != nil {
		switch v := domain.Visibility(strings.ToLower(*req.Discovery)); v {
		case domain.VisibilityPublic, domain.VisibilityPrivate:
			set("discovery", string(v))
		default:
			return fmt.Errorf("%w: unknown discovery value %q", ErrInvalidInput, *req.Discovery)
		}
	}
	if req.IntegrationPlatforms != nil {
		set("integrationPlatforms", *req.IntegrationPlatforms)
	}

	if len(updates) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if err := s.store.UpdateDocument(ctx, eventsCollection, eventID, updates); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// DeleteEvent removes an event and unlinks it from its organization and its
// creator's own-events list. Attendee profiles are left alone; a dangling
// own-events reference is skipped at read time.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteDocument(ctx, eventsCollection, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if event.HostedByOrg != "" {
		err = s.store.UpdateDocument(ctx, organizationsCollection, event.HostedByOrg, []store.Update{
			{Field: "events", Op: store.FieldArrayRemove, Value: eventID},
			{Field: "pendingEvents", Op: store.FieldArrayRemove, Value: eventID},
		})
		if err != nil {
			s.log.Warn("Failed to unlink deleted event from organization",
				zap.String("event_id", eventID),
				zap.String("organization", event.HostedByOrg),
				zap.Error(err))
		}
	}

	if event.CreatedBy != "" {
		err = s.store.UpdateDocument(ctx, usersCollection, event.CreatedBy, []store.Update{
			{Field: "yourEvents", Op: store.FieldArrayRemove, Value: eventID},
		})
		if err != nil {
			s.log.Warn("Failed to unlink deleted event from creator",
				zap.String("event_id", eventID),
				zap.String("created_by", event.CreatedBy),
				zap.Error(err))
		}
	}

	s.log.Info("Event deleted", zap.String("event_id", eventID))
	return nil
}

// RSVP adds a user to an event's attendee set and mirrors the event into the
// user's own-events list. RSVPing twice is a no-op.
func (s *EventService) RSVP(ctx context.Context, eventID, userID string) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	for _, attendee := range event.Attendees {
		if attendee == userID {
			return nil
		}
	}

	err = s.store.UpdateDocument(ctx, eventsCollection, eventID, []store.Update{
		{Field: "attendees", Op: store.FieldArrayUnion, Value: userID},
		{Field: "attendeesCount", Op: store.FieldSet, Value: len(event.Attendees) + 1},
	})
	if err != nil {
		return fmt.Errorf("failed to record RSVP: %w", err)
	}

	err = s.store.UpdateDocument(ctx, usersCollection, userID, []store.Update{
		{Field: "yourEvents", Op: store.FieldArrayUnion, Value: eventID},
	})
	if err != nil {
		return fmt.Errorf("failed to mirror RSVP to user profile: %w", err)
	}
	return nil
}

// CancelRSVP removes a user from an event's attendee set. Cancelling an RSVP
// that was never made is a no-op.
func (s *EventService) CancelRSVP(ctx context.Context, eventID, userID string) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	attending := false
	for _, attendee := range event.Attendees {
		if attendee == userID {
			attending = true
			break
		}
	}
	if !attending {
		return nil
	}

	err = s.store.UpdateDocument(ctx, eventsCollection, eventID, []store.Update{
		{Field: "attendees", Op: store.FieldArrayRemove, Value: userID},
		{Field: "attendeesCount", Op: store.FieldSet, Value: len(event.Attendees) - 1},
	})
	if err != nil {
		return fmt.Errorf("failed to cancel RSVP: %w", err)
	}

	err = s.store.UpdateDocument(ctx, usersCollection, userID, []store.Update{
		{Field: "yourEvents", Op: store.FieldArrayRemove, Value: eventID},
	})
	if err != nil {
		return fmt.Errorf("failed to unmirror RSVP from user profile: %w", err)
	}
	return nil
}

// GetAttendees returns the attendee identifiers for an event
func (s *EventService) GetAttendees(ctx context.Context, eventID string) ([]string, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.Attendees, nil
}

// IsUserAttending reports whether a user has RSVPd to an event
func (s *EventService) IsUserAttending(ctx context.Context, eventID, userID string) (bool, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	for _, attendee := range event.Attendees {
		if attendee == userID {
			return true, nil
		}
	}
	return false, nil
}

// announce publishes an integration announcement for a live event. Publishing
// is best-effort: the event write already succeeded, so a queue outage only
// costs the downstream notification.
func (s *EventService) announce(ctx context.Context, event domain.Event, action string) {
	if s.publisher == nil || len(event.IntegrationPlatforms) == 0 {
		return
	}

	announcement := &domain.Announcement{
		EventID:     event.ID,
		EventName:   event.Name,
		HostedByOrg: event.HostedByOrg,
		Action:      action,
		Platforms:   event.IntegrationPlatforms,
		Location:    event.Location,
		StartTime:   event.StartTime,
	}

	if err := s.publisher.PublishAnnouncement(ctx, announcement); err != nil {
		s.log.Warn("Failed to publish event announcement",
			zap.String("event_id", event.ID),
			zap.String("action", action),
			zap.Error(err))
	}
}
