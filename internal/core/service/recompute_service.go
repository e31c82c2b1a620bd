package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecosphere/ecosphere-api/internal/api/metrics"
	"github.com/ecosphere/ecosphere-api/internal/core/domain"
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

// RecomputeService rebuilds every user's eco score and badge set from
// scratch. Unlike the incremental path, the bulk formula ignores the
// stored score and clamps at zero: max(0, sum(savings) - sum(carbon)).
// Idempotent for an unchanged action set, so overlapping or retried
// runs are harmless.
type RecomputeService struct {
	users   ports.UserRepository
	actions ports.ActionRepository
	logger  zerolog.Logger
}

func NewRecomputeService(users ports.UserRepository, actions ports.ActionRepository, logger zerolog.Logger) *RecomputeService {
	return &RecomputeService{users: users, actions: actions, logger: logger}
}

func (s *RecomputeService) Run(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	}()

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	processed := 0
	for _, user := range users {
		if err := s.recomputeUser(ctx, user); err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID).Msg("recompute failed for user")
			continue
		}
		processed++
		metrics.RecomputeUsersTotal.Inc()
	}

	s.logger.Info().Int("users", processed).Dur("took", time.Since(start)).Msg("scores and badges updated")
	return processed, nil
}

func (s *RecomputeService) recomputeUser(ctx context.Context, user *domain.User) error {
	// A user with zero actions is fine: aggregates are zero, not errors.
	actions, err := s.actions.ListByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load actions: %w", err)
	}

	score := domain.RecomputeScore(actions)
	badges := domain.DeriveBadges(user.Badges, actions)
	for _, b := range domain.NewlyAwarded(user.Badges, badges) {
		metrics.BadgesAwardedTotal.WithLabelValues(b).Inc()
	}

	return s.users.UpdateScoreAndBadges(ctx, user.ID, score, badges)
}
