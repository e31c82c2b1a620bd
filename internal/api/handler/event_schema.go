package handler

import (
	"time"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

type eventRequest struct {
	Name        string     `json:"name"        validate:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Points      uint       `json:"points"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	IsVirtual   bool       `json:"is_virtual"`
}

func (r eventRequest) toInput() ports.EventInput {
	return ports.EventInput{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Points:      r.Points,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		IsVirtual:   r.IsVirtual,
	}
}

type completeEventResponse struct {
	Status   string   `json:"status"`
	EcoScore float64  `json:"eco_score"`
	Badges   []string `json:"badges"`
}

type joinEventResponse struct {
	Status string `json:"status"`
}
