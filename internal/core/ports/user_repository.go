package ports

import (
	"context"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts and
// their gamification state.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists profile fields (email, streak, meta) for an existing user.
	Update(ctx context.Context, user *domain.User) error
	// UpdateScoreAndBadges writes only the gamification fields, used by
	// action creation, event completion, and the bulk recompute job.
	UpdateScoreAndBadges(ctx context.Context, id string, ecoScore float64, badges []string) error
	// ListAll returns every user. Used by the bulk recompute job.
	ListAll(ctx context.Context) ([]*domain.User, error)
	// TopByEcoScore returns up to limit users ordered by eco score descending.
	TopByEcoScore(ctx context.Context, limit int) ([]*domain.User, error)
}
