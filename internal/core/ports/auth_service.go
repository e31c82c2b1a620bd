package ports

import (
	"context"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// TokenPair is the access + refresh token pair issued at login.
type TokenPair struct {
	Access  string
	Refresh string
}

// UpdateProfileInput carries the writable profile fields. Nil pointers
// leave the corresponding field untouched; username and role are
// read-only by contract.
type UpdateProfileInput struct {
	Email       *string
	StreakDays  *uint
	ProfileMeta map[string]any
}

// AuthService covers registration, login, token refresh, and the
// current user's profile.
type AuthService interface {
	// Register creates an account. Username defaults to the email and
	// role defaults to "user" when empty.
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	// Login authenticates by email and returns a token pair.
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	// Refresh validates a refresh token and issues a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
}
