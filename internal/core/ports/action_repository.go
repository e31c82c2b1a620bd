package ports

import (
	"context"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// UserActionStats is the per-user aggregate used by the leaderboard.
type UserActionStats struct {
	ActionCount int64
	TotalCarbon float64
}

// ActionRepository defines persistence operations for eco actions.
// Read/write methods taking a userID scope the query to that owner;
// an empty userID means no scoping (internal callers only).
type ActionRepository interface {
	Create(ctx context.Context, action *domain.EcoAction) (*domain.EcoAction, error)
	FindByID(ctx context.Context, id, userID string) (*domain.EcoAction, error)
	// ListByUser returns the user's full action history, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.EcoAction, error)
	Update(ctx context.Context, action *domain.EcoAction) error
	Delete(ctx context.Context, id, userID string) error
	// StatsByUsers aggregates action count and total carbon for each of
	// the given users. Users with no actions are absent from the map.
	StatsByUsers(ctx context.Context, userIDs []string) (map[string]UserActionStats, error)
}
