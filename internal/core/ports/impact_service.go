package ports

import (
	"context"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// ImpactSummary is the read-side rollup of one user's action history.
// Breakdown and Severity only contain keys with at least one action.
type ImpactSummary struct {
	TotalCarbon  float64
	TotalSavings float64
	Breakdown    map[string]float64
	Severity     map[string]int
	Badges       []string
	Reminders    []domain.Reminder
}

// ImpactService computes per-user impact summaries. Pure read side:
// calling it never mutates anything.
type ImpactService interface {
	Summary(ctx context.Context, userID string) (*ImpactSummary, error)
}
