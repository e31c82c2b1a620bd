package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// ReminderHandler handles HTTP requests for reminder operations.
type ReminderHandler struct {
	service ports.ReminderService
}

func NewReminderHandler(service ports.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

type reminderRequest struct {
	ActionID string    `json:"action_id" validate:"required"`
	Message  string    `json:"message"   validate:"required"`
	DueDate  time.Time `json:"due_date"  validate:"required"`
	Severity string    `json:"severity"  validate:"omitempty,oneof=low medium high"`
}

func (r reminderRequest) toInput() ports.ReminderInput {
	return ports.ReminderInput{
		ActionID: r.ActionID,
		Message:  r.Message,
		DueDate:  r.DueDate,
		Severity: r.Severity,
	}
}

// Create handles POST /api/reminders.
//
// @Summary      Create a reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reminderRequest  true  "Reminder details"
// @Success      201   {object}  domain.Reminder
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/reminders [post]
func (h *ReminderHandler) Create(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reminder, err := h.service.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reminder)
}

// List handles GET /api/reminders.
//
// @Summary      List own reminders
// @Tags         reminders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Reminder
// @Router       /api/reminders [get]
func (h *ReminderHandler) List(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	reminders, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminders)
}

// Get handles GET /api/reminders/:id.
//
// @Summary      Get one reminder
// @Tags         reminders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Reminder ID"
// @Success      200  {object}  domain.Reminder
// @Failure      404  {object}  map[string]string
// @Router       /api/reminders/{id} [get]
func (h *ReminderHandler) Get(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	reminder, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminder)
}

// Update handles PUT /api/reminders/:id.
//
// @Summary      Update a reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Reminder ID"
// @Param        body  body      reminderRequest  true  "Reminder details"
// @Success      200   {object}  domain.Reminder
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/reminders/{id} [put]
func (h *ReminderHandler) Update(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reminder, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminder)
}

// Delete handles DELETE /api/reminders/:id.
//
// @Summary      Delete a reminder
// @Tags         reminders
// @Security     BearerAuth
// @Param        id  path  string  true  "Reminder ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/reminders/{id} [delete]
func (h *ReminderHandler) Delete(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
