package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

const dayLayout = "2006-01-02"

// eventHandler handles HTTP requests related to calendar events.
type eventHandler struct {
	controller portssvc.ContextControllerFacade
	analytics  *utils.PosthogClientWrapper
	now        func() time.Time
}

// registerEventRoutes registers routes related to calendar events.
func registerEventRoutes(rg *gin.RouterGroup, controller portssvc.ContextControllerFacade, analytics *utils.PosthogClientWrapper) {
	h := &eventHandler{controller: controller, analytics: analytics, now: time.Now}

	events := rg.Group("/events")
	{
		events.GET("", h.listEvents)
		events.GET("/upcoming", h.listUpcoming)
		events.GET("/day/:day", h.listOnDay)
		events.POST("", h.createEvent)
		events.DELETE("/:eventID", h.deleteEvent)
	}
}

// listEvents godoc
// @Summary List events
// @Description Lists visible events ordered by event date
// @Tags events
// @Produce  json
// @Success 200 {object} dto.ListEventsResponse
// @Security BearerAuth
// @Router /events [get]
func (h *eventHandler) listEvents(c *gin.Context) {
	data := h.controller.FilteredData(c.Request.Context())
	c.JSON(http.StatusOK, dto.ListEventsResponse{Events: data.Events})
}

// listUpcoming godoc
// @Summary List upcoming events
// @Tags events
// @Produce  json
// @Success 200 {object} dto.ListEventsResponse
// @Security BearerAuth
// @Router /events/upcoming [get]
func (h *eventHandler) listUpcoming(c *gin.Context) {
	events := h.controller.UpcomingEvents(c.Request.Context(), h.now())
	c.JSON(http.StatusOK, dto.ListEventsResponse{Events: events})
}

// listOnDay godoc
// @Summary List events of a day
// @Description Lists visible events on a UTC calendar day
// @Tags events
// @Produce  json
// @Param   day path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid day"
// @Security BearerAuth
// @Router /events/day/{day} [get]
func (h *eventHandler) listOnDay(c *gin.Context) {
	day, err := time.Parse(dayLayout, c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid day, expected YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, dto.ListEventsResponse{Events: h.controller.EventsOn(c.Request.Context(), day)})
}

// createEvent godoc
// @Summary Schedule an event
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.CreateEventRequest true "Event details"
// @Success 201 {object} domain.CalendarEvent
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "No acting user"
// @Security BearerAuth
// @Router /events [post]
func (h *eventHandler) createEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if !bindJSON(c, &req, "CreateEvent") {
		return
	}
	event, err := h.controller.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create event")
		return
	}
	middleware.PosthogEvent(c, h.analytics, "event_created", nil)
	c.JSON(http.StatusCreated, event)
}

// deleteEvent godoc
// @Summary Delete an event
// @Description Managers may delete their own events, the owner any visible event
// @Tags events
// @Param   eventID path string true "Event ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Security BearerAuth
// @Router /events/{eventID} [delete]
func (h *eventHandler) deleteEvent(c *gin.Context) {
	if err := h.controller.DeleteEvent(c.Request.Context(), c.Param("eventID")); err != nil {
		respondError(c, err, "Failed to delete event")
		return
	}
	c.Status(http.StatusNoContent)
}
