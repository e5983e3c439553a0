package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store/memory"
)

// MockPublisher is a mock implementation of queue.AnnouncementPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAnnouncement(ctx context.Context, announcement *domain.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func seedUser(t *testing.T, s *memory.Store, netID string) {
	t.Helper()
	assert.NoError(t, s.SetDocument(context.Background(), "users", netID, map[string]interface{}{
		"netID":      netID,
		"yourEvents": []string{},
	}))
}

func createRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Name:      "Hack Night",
		StartTime: "2024-01-05T18:00:00Z",
		EndTime:   "2024-01-05T21:00:00Z",
		CreatedBy: "jdoe2",
	}
}

func TestEventService_CreateEvent_PersonalGoesLive(t *testing.T) {
	s := memory.New()
	seedUser(t, s, "jdoe2")
	mockPublisher := new(MockPublisher)
	mockPublisher.On("PublishAnnouncement", mock.Anything, mock.Anything).Return(nil)

	service := NewEventService(s, mockPublisher, zap.NewNop())

	req := createRequest()
	req.IntegrationPlatforms = []string{"discord"}

	eventID, err := service.CreateEvent(context.Background(), req)

	assert.NoError(t, err)
	assert.NotEmpty(t, eventID)

	doc, err := s.GetDocument(context.Background(), "events", eventID)
	assert.NoError(t, err)
	assert.Equal(t, false, doc.Data["pendingApproval"])
	assert.Equal(t, "public", doc.Data["discovery"])

	user, _ := s.GetDocument(context.Background(), "users", "jdoe2")
	assert.Contains(t, user.Data["yourEvents"], eventID)

	mockPublisher.AssertCalled(t, "PublishAnnouncement", mock.Anything,
		mock.MatchedBy(func(a *domain.Announcement) bool {
			return a.Action == domain.AnnouncementActionCreated && a.EventID == eventID
		}))
}

func TestEventService_CreateEvent_OrgHostedStaysPending(t *testing.T) {
	s := memory.New()
	seedUser(t, s, "jdoe2")
	assert.NoError(t, s.SetDocument(context.Background(), "organizations", "acm", map[string]interface{}{
		"name": "ACM",
	}))
	mockPublisher := new(MockPublisher)

	service := NewEventService(s, mockPublisher, zap.NewNop())

	req := createRequest()
	req.HostedByOrg = "acm"
	req.IntegrationPlatforms = []string{"discord"}

	eventID, err := service.CreateEvent(context.Background(), req)

	assert.NoError(t, err)

	doc, _ := s.GetDocument(context.Background(), "events", eventID)
	assert.Equal(t, true, doc.Data["pendingApproval"])

	org, _ := s.GetDocument(context.Background(), "organizations", "acm")
	assert.Contains(t, org.Data["pendingEvents"], eventID)

	user, _ := s.GetDocument(context.Background(), "users", "jdoe2")
	assert.NotContains(t, user.Data["yourEvents"], eventID)

	mockPublisher.AssertNotCalled(t, "PublishAnnouncement")
}

func TestEventService_CreateEvent_ValidatesTimes(t *testing.T) {
	s := memory.New()
	service := NewEventService(s, new(MockPublisher), zap.NewNop())

	req := createRequest()
	req.StartTime = "tomorrow-ish"
	_, err := service.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest()
	req.StartTime = "2024-01-05T21:00:00Z"
	req.EndTime = "2024-01-05T18:00:00Z"
	_, err = service.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest()
	req.Discovery = "friends-only"
	_, err = service.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEventService_CreateEvent_PublishFailureDoesNotFailCreate(t *testing.T) {
	s := memory.New()
	seedUser(t, s, "jdoe2")
	mockPublisher := new(MockPublisher)
	mockPublisher.On("PublishAnnouncement", mock.Anything, mock.Anything).
		Return(errors.New("queue down"))

	service := NewEventService(s, mockPublisher, zap.NewNop())

	req := createRequest()
	req.IntegrationPlatforms = []string{"discord"}

	eventID, err := service.CreateEvent(context.Background(), req)

	assert.NoError(t, err, "the event write already succeeded")
	assert.NotEmpty(t, eventID)
}

func TestEventService_RSVP_AddsAttendeeAndMirrors(t *testing.T) {
	s := memory.New()
	seedUser(t, s, "asmith3")
	assert.NoError(t, s.SetDocument(context.Background(), "events", "e1", map[string]interface{}{
		"name":      "Hack Night",
		"endTime":   "2024-01-05T21:00:00Z",
		"attendees": []string{"jdoe2"},
	}))

	service := NewEventService(s, new(MockPublisher), zap.NewNop())

	assert.NoError(t, service.RSVP(context.Background(), "e1", "asmith3"))

	doc, _ := s.GetDocument(context.Background(), "events", "e1")
	assert.Equal(t, []string{"jdoe2", "asmith3"}, doc.Data["attendees"])
	assert.Equal(t, 2, doc.Data["attendeesCount"])

	user, _ := s.GetDocument(context.Background(), "users", "asmith3")
	assert.Contains(t, user.Data["yourEvents"], "e1")

	// Second RSVP is a no-op.
	assert.NoError(t, service.RSVP(context.Background(), "e1", "asmith3"))
	doc, _ = s.GetDocument(context.Background(), "events", "e1")
	assert.Equal(t, 2, doc.Data["attendeesCount"])
}

func TestEventService_CancelRSVP(t *testing.T) {
	s := memory.New()
	assert.NoError(t, s.SetDocument(context.Background(), "users", "jdoe2", map[string]interface{}{
		"netID":      "jdoe2",
		"yourEvents": []string{"e1"},
	}))
	assert.NoError(t, s.SetDocument(context.Background(), "events", "e1", map[string]interface{}{
		"name":      "Hack Night",
		"endTime":   "2024-01-05T21:00:00Z",
		"attendees": []string{"jdoe2"},
	}))

	service := NewEventService(s, new(MockPublisher), zap.NewNop())

	assert.NoError(t, service.CancelRSVP(context.Background(), "e1", "jdoe2"))

	doc, _ := s.GetDocument(context.Background(), "events", "e1")
	assert.Empty(t, doc.Data["attendees"])
	assert.Equal(t, 0, doc.Data["attendeesCount"])

	user, _ := s.GetDocument(context.Background(), "users", "jdoe2")
	assert.NotContains(t, user.Data["yourEvents"], "e1")

	// Cancelling again is a no-op.
	assert.NoError(t, service.CancelRSVP(context.Background(), "e1", "jdoe2"))
}

func TestEventService_DeleteEvent_UnlinksReferences(t *testing.T) {
	s := memory.New()
	assert.NoError(t, s.SetDocument(context.Background(), "users", "jdoe2", map[string]interface{}{
		"netID":      "jdoe2",
		"yourEvents": []string{"e1"},
	}))
	assert.NoError(t, s.SetDocument(context.Background(), "organizations", "acm", map[string]interface{}{
		"name":   "ACM",
		"events": []string{"e1"},
	}))
	assert.NoError(t, s.SetDocument(context.Background(), "events", "e1", map[string]interface{}{
		"name":        "Hack Night",
		"endTime":     "2024-01-05T21:00:00Z",
		"createdBy":   "jdoe2",
		"hostedByOrg": "acm",
	}))

	service := NewEventService(s, new(MockPublisher), zap.NewNop())

	assert.NoError(t, service.DeleteEvent(context.Background(), "e1"))

	_, err := s.GetDocument(context.Background(), "events", "e1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	org, _ := s.GetDocument(context.Background(), "organizations", "acm")
	assert.NotContains(t, org.Data["events"], "e1")

	user, _ := s.GetDocument(context.Background(), "users", "jdoe2")
	assert.NotContains(t, user.Data["yourEvents"], "e1")
}

func TestEventService_EditEvent(t *testing.T) {
	s := memory.New()
	assert.NoError(t, s.SetDocument(context.Background(), "events", "e1", map[string]interface{}{
		"name":    "Hack Night",
		"endTime": "2024-01-05T21:00:00Z",
	}))

	service := NewEventService(s, new(MockPublisher), zap.NewNop())

	name := "Hack Night v2"
	location := "CIF 3039"
	err := service.EditEvent(context.Background(), "e1", &dto.UpdateEventRequest{
		Name:     &name,
		Location: &location,
	})
	assert.NoError(t, err)

	doc, _ := s.GetDocument(context.Background(), "events", "e1")
	assert.Equal(t, "Hack Night v2", doc.Data["name"])
	assert.Equal(t, "CIF 3039", doc.Data["location"])

	// Empty update is caller error.
	err = service.EditEvent(context.Background(), "e1", &dto.UpdateEventRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := "not a timestamp"
	err = service.EditEvent(context.Background(), "e1", &dto.UpdateEventRequest{EndTime: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEventService_GetEvent_MalformedTreatedAsNotFound(t *testing.T) {
	s := memory.New()
	assert.NoError(t, s.SetDocument(context.Background(), "events", "bad", map[string]interface{}{
		"name": "no end time",
	}))

	service := NewEventService(s, new(MockPublisher), zap.NewNop())

	_, err := service.GetEvent(context.Background(), "bad")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEventService_IsUserAttending(t *testing.T) {
	s := memory.New()
	assert.NoError(t, s.SetDocument(context.Background(), "events", "e1", map[string]interface{}{
		"name":      "Hack Night",
		"endTime":   "2024-01-05T21:00:00Z",
		"attendees": []string{"jdoe2"},
	}))

	service := NewEventService(s, new(MockPublisher), zap.NewNop())

	attending, err := service.IsUserAttending(context.Background(), "e1", "jdoe2")
	assert.NoError(t, err)
	assert.True(t, attending)

	attending, err = service.IsUserAttending(context.Background(), "e1", "ghost")
	assert.NoError(t, err)
	assert.False(t, attending)
}
