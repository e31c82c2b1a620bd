package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// ImpactHandler serves the per-user impact summary.
type ImpactHandler struct {
	service ports.ImpactService
}

func NewImpactHandler(service ports.ImpactService) *ImpactHandler {
	return &ImpactHandler{service: service}
}

type impactSummaryResponse struct {
	TotalCarbon  float64            `json:"total_carbon"`
	TotalSavings float64            `json:"total_savings"`
	Breakdown    map[string]float64 `json:"breakdown"`
	Severity     map[string]int     `json:"severity"`
	Badges       []string           `json:"badges"`
	Reminders    []domain.Reminder  `json:"reminders"`
}

// Summary handles GET /api/impact.
//
// @Summary      Get own impact summary
// @Tags         impact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  impactSummaryResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/impact [get]
func (h *ImpactHandler) Summary(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, impactSummaryResponse{
		TotalCarbon:  summary.TotalCarbon,
		TotalSavings: summary.TotalSavings,
		Breakdown:    summary.Breakdown,
		Severity:     summary.Severity,
		Badges:       summary.Badges,
		Reminders:    summary.Reminders,
	})
}
