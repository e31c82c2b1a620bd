package ports

import (
	"context"
	"time"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// ActionInput carries the client-supplied fields of an eco action.
// The owner always comes from the authenticated caller, never the body.
type ActionInput struct {
	Category           string
	ActionType         string
	CarbonKg           float64
	PackagingType      string
	Origin             string
	DistanceKm         float64
	ExpiryDate         *time.Time
	DisposalMethod     string
	Severity           string
	EstimatedSavingsKg float64
	ReceiptURL         string
	Data               map[string]any
}

// ActionService covers the eco action collection plus the score/badge
// side effects of logging a new action.
type ActionService interface {
	// Create persists the action, applies the incremental score delta
	// (savings - carbon) to the owner, and re-derives the owner's badge
	// set from their full action history.
	Create(ctx context.Context, userID string, input ActionInput) (*domain.EcoAction, error)
	List(ctx context.Context, userID string) ([]domain.EcoAction, error)
	Get(ctx context.Context, id, userID string) (*domain.EcoAction, error)
	// Update replaces the mutable fields. The owner is immutable and no
	// score delta is applied on update.
	Update(ctx context.Context, id, userID string, input ActionInput) (*domain.EcoAction, error)
	Delete(ctx context.Context, id, userID string) error
}
