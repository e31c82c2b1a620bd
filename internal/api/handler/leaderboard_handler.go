package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// LeaderboardHandler serves the public leaderboard.
type LeaderboardHandler struct {
	service ports.LeaderboardService
}

type leaderboardResponse struct {
	Leaders []ports.LeaderboardEntry `json:"leaders"`
}

func NewLeaderboardHandler(service ports.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Top handles GET /api/leaderboard.
//
// @Summary      Get the top users by eco score
// @Tags         leaderboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  leaderboardResponse
// @Router       /api/leaderboard [get]
func (h *LeaderboardHandler) Top(c echo.Context) error {
	if _, _, err := ctxUser(c); err != nil {
		return err
	}

	entries, err := h.service.Top(c.Request().Context())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []ports.LeaderboardEntry{}
	}
	return c.JSON(http.StatusOK, leaderboardResponse{Leaders: entries})
}
