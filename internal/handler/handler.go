package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Jish22/ActivityFinderAPpReboot/docs"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/service"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store"
)

type Handler struct {
	feedService  service.FeedServicer
	eventService service.EventServicer
	orgService   service.OrganizationServicer
	friendsSvc   service.FriendServicer
	userService  service.UserServicer
	router       *gin.Engine
	log          *zap.Logger
}

func NewHandler(
	feedService service.FeedServicer,
	eventService service.EventServicer,
	orgService service.OrganizationServicer,
	friendsSvc service.FriendServicer,
	userService service.UserServicer,
	log *zap.Logger,
) *Handler {
	h := &Handler{
		feedService:  feedService,
		eventService: eventService,
		orgService:   orgService,
		friendsSvc:   friendsSvc,
		userService:  userService,
		router:       gin.Default(),
		log:          log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/feed", h.getFeed)

	h.router.POST("/events", h.createEvent)
	h.router.GET("/events/:id", h.getEvent)
	h.router.PATCH("/events/:id", h.editEvent)
	h.router.DELETE("/events/:id", h.deleteEvent)
	h.router.POST("/events/:id/rsvp", h.rsvp)
	h.router.DELETE("/events/:id/rsvp", h.cancelRSVP)
	h.router.GET("/events/:id/rsvp", h.rsvpStatus)
	h.router.GET("/events/:id/attendees", h.getAttendees)

	h.router.POST("/organizations", h.createOrganization)
	h.router.GET("/organizations/:id", h.getOrganization)
	h.router.POST("/organizations/:id/join", h.requestToJoin)
	h.router.POST("/organizations/:id/join/cancel", h.cancelJoinRequest)
	h.router.POST("/organizations/:id/members/approve", h.approveMember)
	h.router.POST("/organizations/:id/members/decline", h.declineMember)
	h.router.POST("/organizations/:id/members/leave", h.leaveOrganization)
	h.router.POST("/organizations/:id/members/promote", h.promoteToAdmin)
	h.router.POST("/organizations/:id/members/demote", h.demoteAdmin)
	h.router.POST("/organizations/:id/transfer", h.transferSuperAdmin)
	h.router.POST("/organizations/:id/events/:eventID/approve", h.approveEvent)
	h.router.POST("/organizations/:id/events/:eventID/decline", h.declineEvent)

	h.router.POST("/friends/request", h.sendFriendRequest)
	h.router.POST("/friends/accept", h.acceptFriendRequest)
	h.router.POST("/friends/decline", h.declineFriendRequest)

	h.router.GET("/users/search", h.searchUsers)
	h.router.GET("/users/:netID", h.getProfile)
	h.router.PUT("/users/:netID/interests", h.updateInterests)

	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
	})
}

// respondError maps service errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, store.ErrInvalidCursor), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "permission_denied",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

// respondBindError handles request binding failures
func (h *Handler) respondBindError(c *gin.Context, err error) {
	h.log.Warn("Invalid request", zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
