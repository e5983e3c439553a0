package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
)

// getFeed handles GET /feed
// @Summary Fetch a personalized feed page
// @Description Assemble the five feed partitions for a user. Pass the cursors from a previous response to fetch the next page of each partition; a null cursor in the response means that partition is exhausted.
// @Tags feed
// @Produce json
// @Param user_id query string true "Requesting user's netID" example:"jdoe2"
// @Param page_size query int false "Events per partition page (default 10)" example:"10"
// @Param discover_cursor query string false "Continuation token for the discover partition"
// @Param organizations_cursor query string false "Continuation token for the organizations partition"
// @Param friends_created_cursor query string false "Continuation token for friend-created events"
// @Param friends_attending_cursor query string false "Continuation token for friend-attended events"
// @Success 200 {object} dto.FeedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /feed [get]
func (h *Handler) getFeed(c *gin.Context) {
	var req dto.FeedRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	response, err := h.feedService.GetFeed(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to assemble feed",
			zap.Error(err),
			zap.String("user_id", req.UserID))
		h.respondError(c, err)
		return
	}

	h.log.Info("Feed assembled",
		zap.String("user_id", req.UserID),
		zap.Int("your_events", len(response.YourEvents)),
		zap.Int("discover", len(response.Discover)),
		zap.Int("organizations", len(response.Organizations)),
		zap.Int("friends", len(response.Friends)),
		zap.Int("popular", len(response.Popular)))

	c.JSON(http.StatusOK, response)
}
