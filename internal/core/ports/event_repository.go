package ports

import (
	"context"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// EventRepository defines persistence operations for community events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.CommunityEvent) (*domain.CommunityEvent, error)
	FindByID(ctx context.Context, id string) (*domain.CommunityEvent, error)
	// List returns open and completed events (cancelled events are hidden),
	// ordered by start time.
	List(ctx context.Context) ([]domain.CommunityEvent, error)
	Update(ctx context.Context, event *domain.CommunityEvent) error
	Delete(ctx context.Context, id string) error
	// AddParticipant adds userID to the roster if not already present.
	AddParticipant(ctx context.Context, eventID, userID string) error
	SetStatus(ctx context.Context, eventID string, status domain.EventStatus) error
}
