package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/domain"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/queue"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

// OrganizationService represents organization membership and event approval
// service
type OrganizationService struct {
	store     store.Client
	publisher queue.AnnouncementPublisher
	log       *zap.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(storeClient store.Client, publisher queue.AnnouncementPublisher, log *zap.Logger) *OrganizationService {
	return &OrganizationService{
		store:     storeClient,
		publisher: publisher,
		log:       log,
	}
}

// slugify derives a stable document identifier from an organization name.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// CreateOrganization creates an organization keyed by a slug of its name.
// The creator becomes super admin, admin, and first member.
func (s *OrganizationService) CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (string, error) {
	orgID := slugify(req.Name)
	if orgID == "" {
		return "", fmt.Errorf("%w: organization name has no usable characters", ErrInvalidInput)
	}

	_, err := s.store.GetDocument(ctx, organizationsCollection, orgID)
	switch {
	case err == nil:
		return "", fmt.Errorf("%w: organization %s already exists", ErrConflict, orgID)
	case !errors.Is(err, store.ErrNotFound):
		return "", fmt.Errorf("failed to check organization: %w", err)
	}

	doc := map[string]interface{}{
		"name":           req.Name,
		"bio":            req.Bio,
		"superAdmin":     req.CreatedBy,
		"admins":         []string{req.CreatedBy},
		"members":        []string{req.CreatedBy},
		"events":         []string{},
		"pendingMembers": []string{},
		"pendingEvents":  []string{},
	}
	if err := s.store.SetDocument(ctx, organizationsCollection, orgID, doc); err != nil {
		return "", fmt.Errorf("failed to create organization: %w", err)
	}

	err = s.store.UpdateDocument(ctx, usersCollection, req.CreatedBy, []store.Update{
		{Field: "joinedOrganizations", Op: store.FieldArrayUnion, Value: orgID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach organization to creator: %w", err)
	}

	s.log.Info("Organization created",
		zap.String("organization", orgID),
		zap.String("super_admin", req.CreatedBy))
	return orgID, nil
}

// GetOrganization fetches a single organization by identifier
func (s *OrganizationService) GetOrganization(ctx context.Context, orgID string) (domain.Organization, error) {
	doc, err := s.store.GetDocument(ctx, organizationsCollection, orgID)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("failed to fetch organization: %w", err)
	}
	return domain.OrganizationFromDocument(doc.ID, doc.Data), nil
}

// RequestToJoin queues a user for membership approval. Existing members are
// rejected; a duplicate pending request is a no-op at the store level.
func (s *OrganizationService) RequestToJoin(ctx context.Context, orgID, netID string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if contains(org.Members, netID) {
		return fmt.Errorf("%w: %s is already a member of %s", ErrConflict, netID, orgID)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "pendingMembers", Op: store.FieldArrayUnion, Value: netID},
	})
	if err != nil {
		return fmt.Errorf("failed to request membership: %w", err)
	}
	return nil
}

// CancelJoinRequest withdraws a user's own pending membership request.
func (s *OrganizationService) CancelJoinRequest(ctx context.Context, orgID, netID string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if !contains(org.PendingMembers, netID) {
		return fmt.Errorf("%w: %s has no pending request for %s", ErrInvalidInput, netID, orgID)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "pendingMembers", Op: store.FieldArrayRemove, Value: netID},
	})
	if err != nil {
		return fmt.Errorf("failed to cancel join request: %w", err)
	}
	return nil
}

// ApproveMember moves a user from the pending queue into the member list and
// mirrors the organization into their profile.
func (s *OrganizationService) ApproveMember(ctx context.Context, orgID, netID string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if !contains(org.PendingMembers, netID) {
		return fmt.Errorf("%w: %s has no pending request for %s", ErrInvalidInput, netID, orgID)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "pendingMembers", Op: store.FieldArrayRemove, Value: netID},
		{Field: "members", Op: store.FieldArrayUnion, Value: netID},
	})
	if err != nil {
		return fmt.Errorf("failed to approve member: %w", err)
	}

	err = s.store.UpdateDocument(ctx, usersCollection, netID, []store.Update{
		{Field: "joinedOrganizations", Op: store.FieldArrayUnion, Value: orgID},
	})
	if err != nil {
		return fmt.Errorf("failed to mirror membership to user profile: %w", err)
	}
	return nil
}

// DeclineMember drops a pending membership request
func (s *OrganizationService) DeclineMember(ctx context.Context, orgID, netID string) error {
	err := s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "pendingMembers", Op: store.FieldArrayRemove, Value: netID},
	})
	if err != nil {
		return fmt.Errorf("failed to decline member: %w", err)
	}
	return nil
}

// LeaveOrganization removes a member. The super admin must transfer the role
// before leaving.
func (s *OrganizationService) LeaveOrganization(ctx context.Context, orgID, netID string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if org.SuperAdmin == netID {
		return fmt.Errorf("%w: super admin must transfer the role before leaving", ErrPermissionDenied)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "members", Op: store.FieldArrayRemove, Value: netID},
		{Field: "admins", Op: store.FieldArrayRemove, Value: netID},
	})
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	err = s.store.UpdateDocument(ctx, usersCollection, netID, []store.Update{
		{Field: "joinedOrganizations", Op: store.FieldArrayRemove, Value: orgID},
	})
	if err != nil {
		return fmt.Errorf("failed to unmirror membership from user profile: %w", err)
	}
	return nil
}

// PromoteToAdmin grants a member admin rights
func (s *OrganizationService) PromoteToAdmin(ctx context.Context, orgID, netID string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if !contains(org.Members, netID) {
		return fmt.Errorf("%w: %s is not a member of %s", ErrInvalidInput, netID, orgID)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "admins", Op: store.FieldArrayUnion, Value: netID},
	})
	if err != nil {
		return fmt.Errorf("failed to promote member: %w", err)
	}
	return nil
}

// DemoteAdmin revokes admin rights. The super admin cannot be demoted.
func (s *OrganizationService) DemoteAdmin(ctx context.Context, orgID, netID string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if org.SuperAdmin == netID {
		return fmt.Errorf("%w: cannot demote the super admin", ErrPermissionDenied)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "admins", Op: store.FieldArrayRemove, Value: netID},
	})
	if err != nil {
		return fmt.Errorf("failed to demote admin: %w", err)
	}
	return nil
}

// TransferSuperAdmin hands the super-admin role to another member. The old
// super admin keeps admin rights.
func (s *OrganizationService) TransferSuperAdmin(ctx context.Context, orgID, oldSuperAdmin, newSuperAdmin string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if org.SuperAdmin != oldSuperAdmin {
		return fmt.Errorf("%w: %s is not the super admin of %s", ErrPermissionDenied, oldSuperAdmin, orgID)
	}
	if !contains(org.Members, newSuperAdmin) {
		return fmt.Errorf("%w: %s is not a member of %s", ErrInvalidInput, newSuperAdmin, orgID)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "superAdmin", Op: store.FieldSet, Value: newSuperAdmin},
		{Field: "admins", Op: store.FieldArrayUnion, Value: newSuperAdmin},
	})
	if err != nil {
		return fmt.Errorf("failed to transfer super admin: %w", err)
	}

	s.log.Info("Super admin transferred",
		zap.String("organization", orgID),
		zap.String("from", oldSuperAdmin),
		zap.String("to", newSuperAdmin))
	return nil
}

// ApproveEvent takes a pending event live: it joins the organization's event
// list, loses its pending flag, lands in the creator's own-events list, and
// is announced to any configured integration platforms.
func (s *OrganizationService) ApproveEvent(ctx context.Context, orgID, eventID string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if !contains(org.PendingEvents, eventID) {
		return fmt.Errorf("%w: event %s is not pending for %s", ErrInvalidInput, eventID, orgID)
	}

	doc, err := s.store.GetDocument(ctx, eventsCollection, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch pending event: %w", err)
	}
	event, err := domain.EventFromDocument(doc.ID, doc.Data)
	if err != nil {
		return fmt.Errorf("pending event %s: %w", eventID, store.ErrNotFound)
	}

	err = s.store.UpdateDocument(ctx, eventsCollection, eventID, []store.Update{
		{Field: "pendingApproval", Op: store.FieldSet, Value: false},
	})
	if err != nil {
		return fmt.Errorf("failed to clear pending flag: %w", err)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "pendingEvents", Op: store.FieldArrayRemove, Value: eventID},
		{Field: "events", Op: store.FieldArrayUnion, Value: eventID},
	})
	if err != nil {
		return fmt.Errorf("failed to move event out of pending queue: %w", err)
	}

	if event.CreatedBy != "" {
		err = s.store.UpdateDocument(ctx, usersCollection, event.CreatedBy, []store.Update{
			{Field: "yourEvents", Op: store.FieldArrayUnion, Value: eventID},
		})
		if err != nil {
			return fmt.Errorf("failed to attach event to creator: %w", err)
		}
	}

	if s.publisher != nil && len(event.IntegrationPlatforms) > 0 {
		announcement := &domain.Announcement{
			EventID:     event.ID,
			EventName:   event.Name,
			HostedByOrg: orgID,
			Action:      domain.AnnouncementActionApproved,
			Platforms:   event.IntegrationPlatforms,
			Location:    event.Location,
			StartTime:   event.StartTime,
		}
		if err := s.publisher.PublishAnnouncement(ctx, announcement); err != nil {
			s.log.Warn("Failed to publish approval announcement",
				zap.String("event_id", eventID),
				zap.Error(err))
		}
	}

	s.log.Info("Event approved",
		zap.String("organization", orgID),
		zap.String("event_id", eventID))
	return nil
}

// DeclineEvent drops a pending event and deletes its document
func (s *OrganizationService) DeclineEvent(ctx context.Context, orgID, eventID string) error {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if !contains(org.PendingEvents, eventID) {
		return fmt.Errorf("%w: event %s is not pending for %s", ErrInvalidInput, eventID, orgID)
	}

	err = s.store.UpdateDocument(ctx, organizationsCollection, orgID, []store.Update{
		{Field: "pendingEvents", Op: store.FieldArrayRemove, Value: eventID},
	})
	if err != nil {
		return fmt.Errorf("failed to drop pending event: %w", err)
	}

	if err := s.store.DeleteDocument(ctx, eventsCollection, eventID); err != nil {
		return fmt.Errorf("failed to delete declined event: %w", err)
	}

	s.log.Info("Event declined",
		zap.String("organization", orgID),
		zap.String("event_id", eventID))
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
