package ports

import (
	"context"
	"time"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// EventInput carries the client-supplied fields of a community event.
type EventInput struct {
	Name        string
	Description string
	Location    string
	Points      uint
	StartsAt    *time.Time
	EndsAt      *time.Time
	IsVirtual   bool
}

// CompleteEventResult reports the caller's state after completing an event.
type CompleteEventResult struct {
	Status   string
	EcoScore float64
	Badges   []string
}

// EventService covers the shared community event collection and its
// lifecycle transitions.
type EventService interface {
	Create(ctx context.Context, hostID string, input EventInput) (*domain.CommunityEvent, error)
	List(ctx context.Context) ([]domain.CommunityEvent, error)
	Get(ctx context.Context, id string) (*domain.CommunityEvent, error)
	// Update and Delete are restricted to the event host or an admin.
	Update(ctx context.Context, id, callerID, callerRole string, input EventInput) (*domain.CommunityEvent, error)
	Delete(ctx context.Context, id, callerID, callerRole string) error
	// Join adds the caller to the roster. Only open events can be joined.
	Join(ctx context.Context, id, userID string) error
	// Complete transitions open -> completed and awards the event's
	// points plus the Community Hero badge to the requesting user only.
	Complete(ctx context.Context, id, userID string) (*CompleteEventResult, error)
	// Cancel transitions open -> cancelled with no award.
	Cancel(ctx context.Context, id, callerID, callerRole string) error
}
