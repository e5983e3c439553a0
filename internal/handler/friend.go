package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
)

// friendAction binds a FriendRequestAction and runs one friend graph
// operation.
func (h *Handler) friendAction(c *gin.Context, status string, action func(req dto.FriendRequestAction) error) {
	var req dto.FriendRequestAction

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if err := action(req); err != nil {
		h.log.Error("Friend action failed",
			zap.Error(err),
			zap.String("sender", req.SenderNetID),
			zap.String("recipient", req.RecipientNetID))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: status})
}

// sendFriendRequest handles POST /friends/request
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body dto.FriendRequestAction true "Request details"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /friends/request [post]
func (h *Handler) sendFriendRequest(c *gin.Context) {
	h.friendAction(c, "requested", func(req dto.FriendRequestAction) error {
		return h.friendsSvc.SendFriendRequest(c.Request.Context(), req.SenderNetID, req.RecipientNetID)
	})
}

// acceptFriendRequest handles POST /friends/accept
// @Summary Accept a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body dto.FriendRequestAction true "Request details"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /friends/accept [post]
func (h *Handler) acceptFriendRequest(c *gin.Context) {
	h.friendAction(c, "accepted", func(req dto.FriendRequestAction) error {
		return h.friendsSvc.AcceptFriendRequest(c.Request.Context(), req.RecipientNetID, req.SenderNetID)
	})
}

// declineFriendRequest handles POST /friends/decline
// @Summary Decline a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body dto.FriendRequestAction true "Request details"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /friends/decline [post]
func (h *Handler) declineFriendRequest(c *gin.Context) {
	h.friendAction(c, "declined", func(req dto.FriendRequestAction) error {
		return h.friendsSvc.DeclineFriendRequest(c.Request.Context(), req.RecipientNetID, req.SenderNetID)
	})
}

// searchUsers handles GET /users/search
// @Summary Search users
// @Description Prefix search over user profiles by netID or full name.
// @Tags users
// @Produce json
// @Param q query string true "Search prefix" example:"ali"
// @Param by query string false "Search field: netid (default) or name" Enums(netid, name)
// @Success 200 {object} dto.SearchUsersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/search [get]
func (h *Handler) searchUsers(c *gin.Context) {
	var req dto.SearchUsersRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	users, err := h.friendsSvc.SearchUsers(c.Request.Context(), req.Query, req.By)
	if err != nil {
		h.log.Error("User search failed",
			zap.Error(err),
			zap.String("query", req.Query))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchUsersResponse{Users: users})
}
