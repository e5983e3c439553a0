package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
)

// getProfile handles GET /users/:netID
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param netID path string true "User netID"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{netID} [get]
func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("netID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// updateInterests handles PUT /users/:netID/interests
// @Summary Replace a user's interests
// @Description Replace the interest set that drives the discover feed partition. Changing interests invalidates outstanding discover cursors.
// @Tags users
// @Accept json
// @Produce json
// @Param netID path string true "User netID"
// @Param interests body dto.UpdateInterestsRequest true "New interest set"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{netID}/interests [put]
func (h *Handler) updateInterests(c *gin.Context) {
	var req dto.UpdateInterestsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	err := h.userService.UpdateInterests(c.Request.Context(), c.Param("netID"), req.Interests)
	if err != nil {
		h.log.Error("Failed to update interests",
			zap.Error(err),
			zap.String("net_id", c.Param("netID")))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "updated"})
}
