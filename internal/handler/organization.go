package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
)

// createOrganization handles POST /organizations
// @Summary Create an organization
// @Description Create a new organization. The creator becomes its super admin and first member.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} dto.CreateOrganizationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /organizations [post]
func (h *Handler) createOrganization(c *gin.Context) {
	var req dto.CreateOrganizationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	orgID, err := h.orgService.CreateOrganization(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create organization",
			zap.Error(err),
			zap.String("name", req.Name))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrganizationResponse{
		OrganizationID: orgID,
		Status:         "created",
	})
}

// getOrganization handles GET /organizations/:id
// @Summary Get organization details
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} domain.Organization
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id} [get]
func (h *Handler) getOrganization(c *gin.Context) {
	org, err := h.orgService.GetOrganization(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// membershipAction binds a MembershipRequest and runs one membership
// operation, collapsing the shared boilerplate across the member routes.
func (h *Handler) membershipAction(c *gin.Context, status string, action func(orgID, netID string) error) {
	var req dto.MembershipRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if err := action(c.Param("id"), req.NetID); err != nil {
		h.log.Error("Membership action failed",
			zap.Error(err),
			zap.String("organization", c.Param("id")),
			zap.String("net_id", req.NetID))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: status})
}

// requestToJoin handles POST /organizations/:id/join
// @Summary Request to join an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body dto.MembershipRequest true "Joining user"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /organizations/{id}/join [post]
func (h *Handler) requestToJoin(c *gin.Context) {
	h.membershipAction(c, "pending", func(orgID, netID string) error {
		return h.orgService.RequestToJoin(c.Request.Context(), orgID, netID)
	})
}

// cancelJoinRequest handles POST /organizations/:id/join/cancel
// @Summary Withdraw a pending join request
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body dto.MembershipRequest true "Requesting user"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/join/cancel [post]
func (h *Handler) cancelJoinRequest(c *gin.Context) {
	h.membershipAction(c, "cancelled", func(orgID, netID string) error {
		return h.orgService.CancelJoinRequest(c.Request.Context(), orgID, netID)
	})
}

// approveMember handles POST /organizations/:id/members/approve
// @Summary Approve a pending member
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body dto.MembershipRequest true "Member to approve"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/members/approve [post]
func (h *Handler) approveMember(c *gin.Context) {
	h.membershipAction(c, "approved", func(orgID, netID string) error {
		return h.orgService.ApproveMember(c.Request.Context(), orgID, netID)
	})
}

// declineMember handles POST /organizations/:id/members/decline
// @Summary Decline a pending member
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body dto.MembershipRequest true "Member to decline"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/members/decline [post]
func (h *Handler) declineMember(c *gin.Context) {
	h.membershipAction(c, "declined", func(orgID, netID string) error {
		return h.orgService.DeclineMember(c.Request.Context(), orgID, netID)
	})
}

// leaveOrganization handles POST /organizations/:id/members/leave
// @Summary Leave an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body dto.MembershipRequest true "Leaving member"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/members/leave [post]
func (h *Handler) leaveOrganization(c *gin.Context) {
	h.membershipAction(c, "left", func(orgID, netID string) error {
		return h.orgService.LeaveOrganization(c.Request.Context(), orgID, netID)
	})
}

// promoteToAdmin handles POST /organizations/:id/members/promote
// @Summary Promote a member to admin
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body dto.MembershipRequest true "Member to promote"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/members/promote [post]
func (h *Handler) promoteToAdmin(c *gin.Context) {
	h.membershipAction(c, "promoted", func(orgID, netID string) error {
		return h.orgService.PromoteToAdmin(c.Request.Context(), orgID, netID)
	})
}

// demoteAdmin handles POST /organizations/:id/members/demote
// @Summary Demote an admin
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body dto.MembershipRequest true "Admin to demote"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/members/demote [post]
func (h *Handler) demoteAdmin(c *gin.Context) {
	h.membershipAction(c, "demoted", func(orgID, netID string) error {
		return h.orgService.DemoteAdmin(c.Request.Context(), orgID, netID)
	})
}

// transferSuperAdmin handles POST /organizations/:id/transfer
// @Summary Transfer the super-admin role
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param transfer body dto.TransferSuperAdminRequest true "Transfer details"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/transfer [post]
func (h *Handler) transferSuperAdmin(c *gin.Context) {
	var req dto.TransferSuperAdminRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	err := h.orgService.TransferSuperAdmin(c.Request.Context(), c.Param("id"), req.OldSuperAdmin, req.NewSuperAdmin)
	if err != nil {
		h.log.Error("Failed to transfer super admin",
			zap.Error(err),
			zap.String("organization", c.Param("id")))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "transferred"})
}

// approveEvent handles POST /organizations/:id/events/:eventID/approve
// @Summary Approve a pending organization event
// @Description Take a pending event live. The event joins the organization's event list and is announced to configured integration platforms.
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Param eventID path string true "Event ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/events/{eventID}/approve [post]
func (h *Handler) approveEvent(c *gin.Context) {
	err := h.orgService.ApproveEvent(c.Request.Context(), c.Param("id"), c.Param("eventID"))
	if err != nil {
		h.log.Error("Failed to approve event",
			zap.Error(err),
			zap.String("organization", c.Param("id")),
			zap.String("event_id", c.Param("eventID")))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "approved"})
}

// declineEvent handles POST /organizations/:id/events/:eventID/decline
// @Summary Decline a pending organization event
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Param eventID path string true "Event ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /organizations/{id}/events/{eventID}/decline [post]
func (h *Handler) declineEvent(c *gin.Context) {
	err := h.orgService.DeclineEvent(c.Request.Context(), c.Param("id"), c.Param("eventID"))
	if err != nil {
		h.log.Error("Failed to decline event",
			zap.Error(err),
			zap.String("organization", c.Param("id")),
			zap.String("event_id", c.Param("eventID")))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "declined"})
}
