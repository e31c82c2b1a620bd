package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

const leaderboardSize = 10

// LeaderboardCache abstracts the short-TTL cache (Redis) in front of the
// leaderboard aggregation. A nil entry or any error means cache miss.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]ports.LeaderboardEntry, error)
	Set(ctx context.Context, entries []ports.LeaderboardEntry) error
}

// LeaderboardService computes the top users by eco score, enriched with
// per-user action aggregates, behind a short-lived cache.
type LeaderboardService struct {
	users   ports.UserRepository
	actions ports.ActionRepository
	cache   LeaderboardCache
	logger  zerolog.Logger
}

func NewLeaderboardService(users ports.UserRepository, actions ports.ActionRepository, cache LeaderboardCache, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{users: users, actions: actions, cache: cache, logger: logger}
}

func (s *LeaderboardService) Top(ctx context.Context) ([]ports.LeaderboardEntry, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	top, err := s.users.TopByEcoScore(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(top))
	for i, u := range top {
		ids[i] = u.ID
	}

	stats, err := s.actions.StatsByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.LeaderboardEntry, len(top))
	for i, u := range top {
		st := stats[u.ID] // zero value for users with no actions
		entries[i] = ports.LeaderboardEntry{
			UserID:      u.ID,
			Username:    u.Username,
			EcoScore:    u.EcoScore,
			Badges:      u.Badges,
			ActionCount: st.ActionCount,
			TotalCarbon: st.TotalCarbon,
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.logger.Warn().Err(err).Msg("leaderboard cache write failed")
		}
	}

	return entries, nil
}
