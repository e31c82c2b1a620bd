package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// EventHandler handles HTTP requests for community event operations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Create handles POST /api/events.
//
// @Summary      Host a community event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  domain.CommunityEvent
// @Failure      400   {object}  map[string]string
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// List handles GET /api/events. Cancelled events are hidden.
//
// @Summary      List community events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CommunityEvent
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	if _, _, err := ctxUser(c); err != nil {
		return err
	}

	events, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /api/events/:id.
//
// @Summary      Get one community event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Event ID"
// @Success      200  {object}  domain.CommunityEvent
// @Failure      404  {object}  map[string]string
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	if _, _, err := ctxUser(c); err != nil {
		return err
	}

	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Update handles PUT /api/events/:id. Host or admin only.
//
// @Summary      Update a community event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event ID"
// @Param        body  body      eventRequest  true  "Event details"
// @Success      200   {object}  domain.CommunityEvent
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	userID, role, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, role, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/events/:id. Host or admin only.
//
// @Summary      Delete a community event
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	userID, role, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Join handles POST /api/events/:id/join.
//
// @Summary      Join an open community event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Event ID"
// @Success      200  {object}  joinEventResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/events/{id}/join [post]
func (h *EventHandler) Join(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Join(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, joinEventResponse{Status: "joined"})
}

// Complete handles POST /api/events/:id/complete. Awards the event's
// points and the Community Hero badge to the requesting user.
//
// @Summary      Complete an open community event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Event ID"
// @Success      200  {object}  completeEventResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/events/{id}/complete [post]
func (h *EventHandler) Complete(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	result, err := h.service.Complete(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, completeEventResponse{
		Status:   result.Status,
		EcoScore: result.EcoScore,
		Badges:   result.Badges,
	})
}

// Cancel handles POST /api/events/:id/cancel. Host or admin only.
//
// @Summary      Cancel an open community event
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/events/{id}/cancel [post]
func (h *EventHandler) Cancel(c echo.Context) error {
	userID, role, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Cancel(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
