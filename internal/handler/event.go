package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/dto"
)

// createEvent handles POST /events
// @Summary Create an event
// @Description Create a new event. Events hosted by an organization stay pending until an org admin approves them.
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.CreateEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [post]
func (h *Handler) createEvent(c *gin.Context) {
	var req dto.CreateEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	eventID, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", req.Name),
			zap.String("created_by", req.CreatedBy))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateEventResponse{
		EventID: eventID,
		Status:  "created",
	})
}

// getEvent handles GET /events/:id
// @Summary Get event details
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id} [get]
func (h *Handler) getEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// editEvent handles PATCH /events/:id
// @Summary Edit an event
// @Description Apply a partial update; omitted fields are left untouched.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id} [patch]
func (h *Handler) editEvent(c *gin.Context) {
	var req dto.UpdateEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if err := h.eventService.EditEvent(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.log.Error("Failed to edit event",
			zap.Error(err),
			zap.String("event_id", c.Param("id")))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "updated"})
}

// deleteEvent handles DELETE /events/:id
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id} [delete]
func (h *Handler) deleteEvent(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", c.Param("id")))
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

// rsvp handles POST /events/:id/rsvp
// @Summary RSVP to an event
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param rsvp body dto.RSVPRequest true "RSVPing user"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id}/rsvp [post]
func (h *Handler) rsvp(c *gin.Context) {
	var req dto.RSVPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if err := h.eventService.RSVP(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		h.log.Error("Failed to record RSVP",
			zap.Error(err),
			zap.String("event_id", c.Param("id")),
			zap.String("user_id", req.UserID))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "attending"})
}

// cancelRSVP handles DELETE /events/:id/rsvp
// @Summary Cancel an RSVP
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param rsvp body dto.RSVPRequest true "User cancelling"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id}/rsvp [delete]
func (h *Handler) cancelRSVP(c *gin.Context) {
	var req dto.RSVPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if err := h.eventService.CancelRSVP(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		h.log.Error("Failed to cancel RSVP",
			zap.Error(err),
			zap.String("event_id", c.Param("id")),
			zap.String("user_id", req.UserID))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "not_attending"})
}

// rsvpStatus handles GET /events/:id/rsvp
// @Summary Check RSVP status
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Param user_id query string true "User netID" example:"jdoe2"
// @Success 200 {object} dto.RSVPStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{id}/rsvp [get]
func (h *Handler) rsvpStatus(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: "user_id query parameter is required",
		})
		return
	}

	attending, err := h.eventService.IsUserAttending(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RSVPStatusResponse{Attending: attending})
}

// getAttendees handles GET /events/:id/attendees
// @Summary List event attendees
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.AttendeesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{id}/attendees [get]
func (h *Handler) getAttendees(c *gin.Context) {
	attendees, err := h.eventService.GetAttendees(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AttendeesResponse{
		Attendees: attendees,
		Count:     len(attendees),
	})
}
