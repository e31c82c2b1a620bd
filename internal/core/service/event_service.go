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

// EventService implements the shared community event collection and its
// lifecycle transitions.
type EventService struct {
	events ports.EventRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewEventService(events ports.EventRepository, users ports.UserRepository, logger zerolog.Logger) *EventService {
	return &EventService{events: events, users: users, logger: logger}
}

func (s *EventService) Create(ctx context.Context, hostID string, input ports.EventInput) (*domain.CommunityEvent, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	points := input.Points
	if points == 0 {
		points = 10
	}

	event := &domain.CommunityEvent{
		Name:           input.Name,
		Description:    input.Description,
		Location:       input.Location,
		Points:         points,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		Status:         domain.EventOpen,
		HostID:         hostID,
		ParticipantIDs: []string{},
		IsVirtual:      input.IsVirtual,
		CreatedAt:      time.Now().UTC(),
	}

	return s.events.Create(ctx, event)
}

func (s *EventService) List(ctx context.Context) ([]domain.CommunityEvent, error) {
	return s.events.List(ctx)
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.CommunityEvent, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) Update(ctx context.Context, id, callerID, callerRole string, input ports.EventInput) (*domain.CommunityEvent, error) {
	event, err := s.authorizedEvent(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		event.Name = input.Name
	}
	event.Description = input.Description
	event.Location = input.Location
	if input.Points > 0 {
		event.Points = input.Points
	}
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt
	event.IsVirtual = input.IsVirtual

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	if _, err := s.authorizedEvent(ctx, id, callerID, callerRole); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

// Join adds the caller to the roster. Only open events accept joins.
func (s *EventService) Join(ctx context.Context, id, userID string) error {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event.Status != domain.EventOpen {
		return domain.ErrEventNotOpen
	}
	if event.HasParticipant(userID) {
		return nil
	}
	return s.events.AddParticipant(ctx, id, userID)
}

// Complete transitions the event to completed and rewards the requesting
// user only: event points added to their eco score, plus the Community
// Hero badge. Other participants are untouched.
func (s *EventService) Complete(ctx context.Context, id, userID string) (*ports.CompleteEventResult, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.Status.CanTransitionTo(domain.EventCompleted) {
		return nil, domain.ErrEventNotOpen
	}

	if err := s.events.SetStatus(ctx, id, domain.EventCompleted); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newScore := user.EcoScore + float64(event.Points)
	newBadges := domain.AddBadge(user.Badges, domain.BadgeCommunityHero)
	if len(newBadges) > len(user.Badges) {
		metrics.BadgesAwardedTotal.WithLabelValues(domain.BadgeCommunityHero).Inc()
	}

	if err := s.users.UpdateScoreAndBadges(ctx, userID, newScore, newBadges); err != nil {
		return nil, err
	}

	s.logger.Info().Str("event_id", id).Str("user_id", userID).Uint("points", event.Points).Msg("event completed")

	return &ports.CompleteEventResult{
		Status:   string(domain.EventCompleted),
		EcoScore: newScore,
		Badges:   newBadges,
	}, nil
}

// Cancel transitions the event to cancelled. No award.
func (s *EventService) Cancel(ctx context.Context, id, callerID, callerRole string) error {
	event, err := s.authorizedEvent(ctx, id, callerID, callerRole)
	if err != nil {
		return err
	}
	if !event.Status.CanTransitionTo(domain.EventCancelled) {
		return domain.ErrEventNotOpen
	}
	return s.events.SetStatus(ctx, id, domain.EventCancelled)
}

// authorizedEvent loads the event and checks the caller is its host or
// an admin.
func (s *EventService) authorizedEvent(ctx context.Context, id, callerID, callerRole string) (*domain.CommunityEvent, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.HostID != callerID && callerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return event, nil
}
