package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// AdminHandler exposes operational endpoints restricted to admins.
type AdminHandler struct {
	recompute ports.RecomputeService
}

func NewAdminHandler(recompute ports.RecomputeService) *AdminHandler {
	return &AdminHandler{recompute: recompute}
}

type recomputeResponse struct {
	Message string `json:"message"`
	Users   int    `json:"users"`
}

// Recompute handles POST /api/admin/recompute. It runs the same bulk
// score rebuild the periodic job performs, on demand.
//
// @Summary      Recompute all eco scores and badges
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  recomputeResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/recompute [post]
func (h *AdminHandler) Recompute(c echo.Context) error {
	n, err := h.recompute.Run(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recomputeResponse{
		Message: "recompute complete",
		Users:   n,
	})
}
