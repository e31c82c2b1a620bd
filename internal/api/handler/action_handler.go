package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// ActionHandler handles HTTP requests for eco action operations.
type ActionHandler struct {
	service ports.ActionService
}

func NewActionHandler(service ports.ActionService) *ActionHandler {
	return &ActionHandler{service: service}
}

// actionResponse augments the stored action with its display impact tier.
type actionResponse struct {
	domain.EcoAction
	Impact string `json:"impact_label"`
}

func toActionResponse(a domain.EcoAction) actionResponse {
	return actionResponse{EcoAction: a, Impact: a.ImpactLabel()}
}

// Create handles POST /api/actions.
//
// @Summary      Log a new eco action
// @Tags         actions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      actionRequest  true  "Action details"
// @Success      201   {object}  actionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/actions [post]
func (h *ActionHandler) Create(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req actionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	action, err := h.service.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toActionResponse(*action))
}

// List handles GET /api/actions.
//
// @Summary      List own eco actions
// @Tags         actions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   actionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/actions [get]
func (h *ActionHandler) List(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	actions, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := make([]actionResponse, len(actions))
	for i, a := range actions {
		resp[i] = toActionResponse(a)
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/actions/:id.
//
// @Summary      Get one eco action
// @Tags         actions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Action ID"
// @Success      200  {object}  actionResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/actions/{id} [get]
func (h *ActionHandler) Get(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	action, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActionResponse(*action))
}

// Update handles PUT /api/actions/:id.
//
// @Summary      Update an eco action
// @Tags         actions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Action ID"
// @Param        body  body      actionRequest  true  "Action details"
// @Success      200   {object}  actionResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/actions/{id} [put]
func (h *ActionHandler) Update(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req actionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	action, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActionResponse(*action))
}

// Delete handles DELETE /api/actions/:id.
//
// @Summary      Delete an eco action
// @Tags         actions
// @Security     BearerAuth
// @Param        id  path  string  true  "Action ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/actions/{id} [delete]
func (h *ActionHandler) Delete(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
