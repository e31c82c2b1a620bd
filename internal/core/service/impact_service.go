package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// ImpactService computes the read-side rollup of one user's action
// history. No writes happen anywhere on this path.
type ImpactService struct {
	actions   ports.ActionRepository
	users     ports.UserRepository
	reminders ports.ReminderRepository
	logger    zerolog.Logger
}

func NewImpactService(actions ports.ActionRepository, users ports.UserRepository, reminders ports.ReminderRepository, logger zerolog.Logger) *ImpactService {
	return &ImpactService{actions: actions, users: users, reminders: reminders, logger: logger}
}

func (s *ImpactService) Summary(ctx context.Context, userID string) (*ports.ImpactSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	actions, err := s.actions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.reminders.ListPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &ports.ImpactSummary{
		Breakdown: map[string]float64{},
		Severity:  map[string]int{},
		Badges:    user.Badges,
		Reminders: pending,
	}
	for _, a := range actions {
		summary.TotalCarbon += a.CarbonKg
		summary.TotalSavings += a.EstimatedSavingsKg
		summary.Breakdown[string(a.Category)] += a.CarbonKg
		summary.Severity[string(a.Severity)]++
	}

	return summary, nil
}
