package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/service"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockFeedService is a mock implementation of service.FeedServicer
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) GetFeed(ctx context.Context, req *dto.FeedRequest) (*dto.FeedResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeedResponse), args.Error(1)
}

// MockEventService is a mock implementation of service.EventServicer
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *MockEventService) EditEvent(ctx context.Context, eventID string, req *dto.UpdateEventRequest) error {
	args := m.Called(ctx, eventID, req)
	return args.Error(0)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventService) RSVP(ctx context.Context, eventID, userID string) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockEventService) CancelRSVP(ctx context.Context, eventID, userID string) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockEventService) GetAttendees(ctx context.Context, eventID string) ([]string, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEventService) IsUserAttending(ctx context.Context, eventID, userID string) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

// MockOrganizationService is a mock implementation of service.OrganizationServicer
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockOrganizationService) GetOrganization(ctx context.Context, orgID string) (domain.Organization, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) RequestToJoin(ctx context.Context, orgID, netID string) error {
	args := m.Called(ctx, orgID, netID)
	return args.Error(0)
}

func (m *MockOrganizationService) CancelJoinRequest(ctx context.Context, orgID, netID string) error {
	args := m.Called(ctx, orgID, netID)
	return args.Error(0)
}

func (m *MockOrganizationService) ApproveMember(ctx context.Context, orgID, netID string) error {
	args := m.Called(ctx, orgID, netID)
	return args.Error(0)
}

func (m *MockOrganizationService) DeclineMember(ctx context.Context, orgID, netID string) error {
	args := m.Called(ctx, orgID, netID)
	return args.Error(0)
}

func (m *MockOrganizationService) LeaveOrganization(ctx context.Context, orgID, netID string) error {
	args := m.Called(ctx, orgID, netID)
	return args.Error(0)
}

func (m *MockOrganizationService) PromoteToAdmin(ctx context.Context, orgID, netID string) error {
	args := m.Called(ctx, orgID, netID)
	return args.Error(0)
}

func (m *MockOrganizationService) DemoteAdmin(ctx context.Context, orgID, netID string) error {
	args := m.Called(ctx, orgID, netID)
	return args.Error(0)
}

func (m *MockOrganizationService) TransferSuperAdmin(ctx context.Context, orgID, oldSuperAdmin, newSuperAdmin string) error {
	args := m.Called(ctx, orgID, oldSuperAdmin, newSuperAdmin)
	return args.Error(0)
}

func (m *MockOrganizationService) ApproveEvent(ctx context.Context, orgID, eventID string) error {
	args := m.Called(ctx, orgID, eventID)
	return args.Error(0)
}

func (m *MockOrganizationService) DeclineEvent(ctx context.Context, orgID, eventID string) error {
	args := m.Called(ctx, orgID, eventID)
	return args.Error(0)
}

// MockFriendService is a mock implementation of service.FriendServicer
type MockFriendService struct {
	mock.Mock
}

func (m *MockFriendService) SendFriendRequest(ctx context.Context, senderNetID, recipientNetID string) error {
	args := m.Called(ctx, senderNetID, recipientNetID)
	return args.Error(0)
}

func (m *MockFriendService) AcceptFriendRequest(ctx context.Context, recipientNetID, senderNetID string) error {
	args := m.Called(ctx, recipientNetID, senderNetID)
	return args.Error(0)
}

func (m *MockFriendService) DeclineFriendRequest(ctx context.Context, recipientNetID, senderNetID string) error {
	args := m.Called(ctx, recipientNetID, senderNetID)
	return args.Error(0)
}

func (m *MockFriendService) SearchUsers(ctx context.Context, query, by string) ([]dto.UserSummary, error) {
	args := m.Called(ctx, query, by)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.UserSummary), args.Error(1)
}

// MockUserService is a mock implementation of service.UserServicer
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, netID string) (domain.UserProfile, error) {
	args := m.Called(ctx, netID)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *MockUserService) UpdateInterests(ctx context.Context, netID string, interests []string) error {
	args := m.Called(ctx, netID, interests)
	return args.Error(0)
}

type testMocks struct {
	feed    *MockFeedService
	events  *MockEventService
	orgs    *MockOrganizationService
	friends *MockFriendService
	users   *MockUserService
}

func newTestHandler() (*Handler, *testMocks) {
	m := &testMocks{
		feed:    new(MockFeedService),
		events:  new(MockEventService),
		orgs:    new(MockOrganizationService),
		friends: new(MockFriendService),
		users:   new(MockUserService),
	}
	h := NewHandler(m.feed, m.events, m.orgs, m.friends, m.users, zap.NewNop())
	return h, m
}

func TestHandler_HealthCheck(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandler_GetFeed_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	token := "opaque-token"
	mocks.feed.On("GetFeed", mock.Anything, &dto.FeedRequest{
		UserID:   "jdoe2",
		PageSize: 5,
	}).Return(&dto.FeedResponse{
		Discover: []domain.Event{{ID: "e1", Name: "Open Mic"}},
		Popular:  []domain.Event{{ID: "e2", Name: "Career Fair"}},
		Cursors:  dto.FeedCursors{Discover: &token},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/feed?user_id=jdoe2&page_size=5", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.FeedResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Discover, 1)
	assert.Equal(t, "e1", response.Discover[0].ID)
	assert.NotNil(t, response.Cursors.Discover)
	assert.Equal(t, "opaque-token", *response.Cursors.Discover)
	assert.Nil(t, response.Cursors.Organizations)
	mocks.feed.AssertExpectations(t)
}

func TestHandler_GetFeed_MissingUserID(t *testing.T) {
	handler, mocks := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mocks.feed.AssertNotCalled(t, "GetFeed")
}

func TestHandler_GetFeed_InvalidCursor(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.feed.On("GetFeed", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("discover partition: %w", store.ErrInvalidCursor))

	req := httptest.NewRequest(http.MethodGet, "/feed?user_id=jdoe2&discover_cursor=stale", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
}

func TestHandler_CreateEvent_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	eventReq := dto.CreateEventRequest{
		Name:      "Hack Night",
		StartTime: "2025-04-12T18:00:00Z",
		EndTime:   "2025-04-12T20:00:00Z",
		CreatedBy: "jdoe2",
	}

	mocks.events.On("CreateEvent", mock.Anything, &eventReq).Return("event-id-123", nil)

	body, _ := json.Marshal(eventReq)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.CreateEventResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "event-id-123", response.EventID)
	assert.Equal(t, "created", response.Status)
	mocks.events.AssertExpectations(t)
}

func TestHandler_CreateEvent_MissingRequiredFields(t *testing.T) {
	handler, mocks := newTestHandler()

	body, _ := json.Marshal(dto.CreateEventRequest{
		Name: "no times, no creator",
	})
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mocks.events.AssertNotCalled(t, "CreateEvent")
}

func TestHandler_CreateEvent_ServiceValidationError(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.events.On("CreateEvent", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: endTime before startTime", service.ErrInvalidInput))

	body, _ := json.Marshal(dto.CreateEventRequest{
		Name:      "Hack Night",
		StartTime: "2025-04-12T20:00:00Z",
		EndTime:   "2025-04-12T18:00:00Z",
		CreatedBy: "jdoe2",
	})
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetEvent_NotFound(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.events.On("GetEvent", mock.Anything, "missing").
		Return(domain.Event{}, fmt.Errorf("failed to fetch event: %w", store.ErrNotFound))

	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "not_found", response.Error)
}

func TestHandler_RSVP_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.events.On("RSVP", mock.Anything, "e1", "jdoe2").Return(nil)

	body, _ := json.Marshal(dto.RSVPRequest{UserID: "jdoe2"})
	req := httptest.NewRequest(http.MethodPost, "/events/e1/rsvp", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.StatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "attending", response.Status)
	mocks.events.AssertExpectations(t)
}

func TestHandler_RSVPStatus_MissingUserID(t *testing.T) {
	handler, mocks := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/events/e1/rsvp", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.events.AssertNotCalled(t, "IsUserAttending")
}

func TestHandler_GetAttendees_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.events.On("GetAttendees", mock.Anything, "e1").
		Return([]string{"jdoe2", "asmith3"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/events/e1/attendees", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.AttendeesResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, []string{"jdoe2", "asmith3"}, response.Attendees)
}

func TestHandler_CreateOrganization_Conflict(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.orgs.On("CreateOrganization", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: organization acm already exists", service.ErrConflict))

	body, _ := json.Marshal(dto.CreateOrganizationRequest{
		Name:      "ACM",
		CreatedBy: "jdoe2",
	})
	req := httptest.NewRequest(http.MethodPost, "/organizations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "conflict", response.Error)
}

func TestHandler_LeaveOrganization_SuperAdminForbidden(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.orgs.On("LeaveOrganization", mock.Anything, "acm", "owner1").
		Return(fmt.Errorf("%w: super admin must transfer the role before leaving", service.ErrPermissionDenied))

	body, _ := json.Marshal(dto.MembershipRequest{NetID: "owner1"})
	req := httptest.NewRequest(http.MethodPost, "/organizations/acm/members/leave", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "permission_denied", response.Error)
}

func TestHandler_ApproveMember_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.orgs.On("ApproveMember", mock.Anything, "acm", "newbie3").Return(nil)

	body, _ := json.Marshal(dto.MembershipRequest{NetID: "newbie3"})
	req := httptest.NewRequest(http.MethodPost, "/organizations/acm/members/approve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.StatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "approved", response.Status)
	mocks.orgs.AssertExpectations(t)
}

func TestHandler_TransferSuperAdmin_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.orgs.On("TransferSuperAdmin", mock.Anything, "acm", "owner1", "member2").Return(nil)

	body, _ := json.Marshal(dto.TransferSuperAdminRequest{
		OldSuperAdmin: "owner1",
		NewSuperAdmin: "member2",
	})
	req := httptest.NewRequest(http.MethodPost, "/organizations/acm/transfer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mocks.orgs.AssertExpectations(t)
}

func TestHandler_ApproveEvent_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.orgs.On("ApproveEvent", mock.Anything, "acm", "e1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/organizations/acm/events/e1/approve", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.StatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "approved", response.Status)
	mocks.orgs.AssertExpectations(t)
}

func TestHandler_SendFriendRequest_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.friends.On("SendFriendRequest", mock.Anything, "jdoe2", "asmith3").Return(nil)

	body, _ := json.Marshal(dto.FriendRequestAction{
		SenderNetID:    "jdoe2",
		RecipientNetID: "asmith3",
	})
	req := httptest.NewRequest(http.MethodPost, "/friends/request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mocks.friends.AssertExpectations(t)
}

func TestHandler_SendFriendRequest_MissingFields(t *testing.T) {
	handler, mocks := newTestHandler()

	body := []byte(`{"senderNetID": "jdoe2"}`)
	req := httptest.NewRequest(http.MethodPost, "/friends/request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.friends.AssertNotCalled(t, "SendFriendRequest")
}

func TestHandler_SearchUsers_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.friends.On("SearchUsers", mock.Anything, "ali", "name").
		Return([]dto.UserSummary{
			{NetID: "alee4", FullName: "Alice Lee"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/search?q=ali&by=name", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SearchUsersResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Users, 1)
	assert.Equal(t, "alee4", response.Users[0].NetID)
}

func TestHandler_SearchUsers_MissingQuery(t *testing.T) {
	handler, mocks := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/users/search", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.friends.AssertNotCalled(t, "SearchUsers")
}

func TestHandler_GetProfile_Success(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.users.On("GetProfile", mock.Anything, "jdoe2").
		Return(domain.UserProfile{NetID: "jdoe2", FullName: "Jane Doe"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/jdoe2", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response domain.UserProfile
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", response.FullName)
}

func TestHandler_UpdateInterests_UnknownTag(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.users.On("UpdateInterests", mock.Anything, "jdoe2", []string{"Skydiving"}).
		Return(fmt.Errorf("%w: unknown interest %q", service.ErrInvalidInput, "Skydiving"))

	body, _ := json.Marshal(dto.UpdateInterestsRequest{Interests: []string{"Skydiving"}})
	req := httptest.NewRequest(http.MethodPut, "/users/jdoe2/interests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
}

func TestHandler_ServiceError_MapsToInternalError(t *testing.T) {
	handler, mocks := newTestHandler()

	mocks.events.On("DeleteEvent", mock.Anything, "e1").
		Return(errors.New("store unavailable"))

	req := httptest.NewRequest(http.MethodDelete, "/events/e1", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "internal_error", response.Error)
	assert.Contains(t, response.Message, "store unavailable")
}
