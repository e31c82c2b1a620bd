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

// ActionService implements the eco action collection. Creation carries
// the gamification side effects: a running score delta plus a fresh
// badge derivation over the owner's entire history.
type ActionService struct {
	actions ports.ActionRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewActionService(actions ports.ActionRepository, users ports.UserRepository, logger zerolog.Logger) *ActionService {
	return &ActionService{actions: actions, users: users, logger: logger}
}

func (s *ActionService) Create(ctx context.Context, userID string, input ports.ActionInput) (*domain.EcoAction, error) {
	action, err := buildAction(userID, input)
	if err != nil {
		return nil, err
	}

	created, err := s.actions.Create(ctx, action)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create eco action")
		return nil, err
	}
	metrics.ActionsLoggedTotal.WithLabelValues(string(created.Category)).Inc()

	if err := s.applyCreationEffects(ctx, userID, created); err != nil {
		// The action itself is persisted; the user row will be repaired
		// by the next bulk recompute run.
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to apply score/badge update")
	}

	return created, nil
}

// applyCreationEffects adds the new action's score delta to the owner's
// running eco score (no clamping on this path) and re-derives the badge
// set from the full action history.
func (s *ActionService) applyCreationEffects(ctx context.Context, userID string, created *domain.EcoAction) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load owner: %w", err)
	}

	history, err := s.actions.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	newScore := user.EcoScore + domain.ScoreDelta(*created)
	newBadges := domain.DeriveBadges(user.Badges, history)
	for _, b := range domain.NewlyAwarded(user.Badges, newBadges) {
		metrics.BadgesAwardedTotal.WithLabelValues(b).Inc()
		s.logger.Info().Str("user_id", userID).Str("badge", b).Msg("badge awarded")
	}

	if err := s.users.UpdateScoreAndBadges(ctx, userID, newScore, newBadges); err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	return nil
}

func (s *ActionService) List(ctx context.Context, userID string) ([]domain.EcoAction, error) {
	return s.actions.ListByUser(ctx, userID)
}

func (s *ActionService) Get(ctx context.Context, id, userID string) (*domain.EcoAction, error) {
	return s.actions.FindByID(ctx, id, userID)
}

// Update replaces the mutable fields of an owned action. The owner never
// changes and no score delta is applied: only creation moves the score.
func (s *ActionService) Update(ctx context.Context, id, userID string, input ports.ActionInput) (*domain.EcoAction, error) {
	existing, err := s.actions.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := buildAction(userID, input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if err := s.actions.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ActionService) Delete(ctx context.Context, id, userID string) error {
	return s.actions.Delete(ctx, id, userID)
}

// buildAction validates enum fields and assembles a domain action with
// defaults applied (disposal n/a, severity medium).
func buildAction(userID string, input ports.ActionInput) (*domain.EcoAction, error) {
	category := domain.ActionCategory(input.Category)
	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, input.Category)
	}

	disposal := domain.DisposalMethod(input.DisposalMethod)
	if disposal == "" {
		disposal = domain.DisposalNA
	}
	if !domain.ValidDisposalMethod(disposal) {
		return nil, fmt.Errorf("%w: unknown disposal method %q", domain.ErrInvalidInput, input.DisposalMethod)
	}

	severity := domain.Severity(input.Severity)
	if severity == "" {
		severity = domain.SeverityMedium
	}
	if !domain.ValidSeverity(severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", domain.ErrInvalidInput, input.Severity)
	}

	now := time.Now().UTC()
	data := input.Data
	if data == nil {
		data = map[string]any{}
	}

	return &domain.EcoAction{
		UserID:             userID,
		Category:           category,
		ActionType:         input.ActionType,
		CarbonKg:           input.CarbonKg,
		PackagingType:      input.PackagingType,
		Origin:             input.Origin,
		DistanceKm:         input.DistanceKm,
		ExpiryDate:         input.ExpiryDate,
		DisposalMethod:     disposal,
		Severity:           severity,
		EstimatedSavingsKg: input.EstimatedSavingsKg,
		ReceiptURL:         input.ReceiptURL,
		Data:               data,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}
