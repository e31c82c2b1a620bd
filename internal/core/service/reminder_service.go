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

// Mailer sends plain-text notifications. Satisfied by the SMTP sender
// in internal/infrastructure/email.
type Mailer interface {
	Send(to, subject, body string) error
}

// ReminderService implements the reminder collection plus the periodic
// due-reminder dispatch.
type ReminderService struct {
	reminders ports.ReminderRepository
	actions   ports.ActionRepository
	users     ports.UserRepository
	mailer    Mailer
	logger    zerolog.Logger
}

func NewReminderService(reminders ports.ReminderRepository, actions ports.ActionRepository, users ports.UserRepository, mailer Mailer, logger zerolog.Logger) *ReminderService {
	return &ReminderService{reminders: reminders, actions: actions, users: users, mailer: mailer, logger: logger}
}

func (s *ReminderService) Create(ctx context.Context, userID string, input ports.ReminderInput) (*domain.Reminder, error) {
	reminder, err := s.buildReminder(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	return s.reminders.Create(ctx, reminder)
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return s.reminders.ListByUser(ctx, userID)
}

func (s *ReminderService) Get(ctx context.Context, id, userID string) (*domain.Reminder, error) {
	return s.reminders.FindByID(ctx, id, userID)
}

// Update replaces the mutable fields. Delivered is owned by the
// dispatcher and never reverts through this path.
func (s *ReminderService) Update(ctx context.Context, id, userID string, input ports.ReminderInput) (*domain.Reminder, error) {
	existing, err := s.reminders.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.buildReminder(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Delivered = existing.Delivered
	updated.CreatedAt = existing.CreatedAt

	if err := s.reminders.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReminderService) Delete(ctx context.Context, id, userID string) error {
	return s.reminders.Delete(ctx, id, userID)
}

// DispatchDue notifies and marks every undelivered reminder due at now.
// Each reminder is marked delivered individually, immediately after its
// notification attempt, so a failure partway through a batch neither
// re-notifies already-delivered reminders nor loses pending ones.
// Notification is fire-and-forget: a send failure is logged and the
// reminder is still marked delivered.
func (s *ReminderService) DispatchDue(ctx context.Context, now time.Time) (ports.DispatchResult, error) {
	var result ports.DispatchResult

	due, err := s.reminders.ListDue(ctx, now)
	if err != nil {
		return result, fmt.Errorf("list due reminders: %w", err)
	}

	for _, reminder := range due {
		if s.notify(ctx, reminder) {
			result.Notified++
		}

		if err := s.reminders.MarkDelivered(ctx, reminder.ID); err != nil {
			s.logger.Error().Err(err).Str("reminder_id", reminder.ID).Msg("failed to mark reminder delivered")
			continue
		}
		result.Delivered++
		metrics.RemindersDeliveredTotal.Inc()
	}

	s.logger.Info().Int("delivered", result.Delivered).Int("notified", result.Notified).Msg(result.Summary())
	return result, nil
}

// notify sends the reminder email and reports whether a mail went out.
// Owners without an email on file are skipped silently.
func (s *ReminderService) notify(ctx context.Context, reminder domain.Reminder) bool {
	owner, err := s.users.FindByID(ctx, reminder.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("reminder_id", reminder.ID).Msg("reminder owner lookup failed")
		metrics.ReminderNotificationsTotal.WithLabelValues("failed").Inc()
		return false
	}
	if owner.Email == "" {
		metrics.ReminderNotificationsTotal.WithLabelValues("skipped").Inc()
		return false
	}

	subject := "EcoSphere reminder"
	body := fmt.Sprintf("%s (due %s)", reminder.Message, reminder.DueDate.Format("2006-01-02"))
	if err := s.mailer.Send(owner.Email, subject, body); err != nil {
		s.logger.Warn().Err(err).Str("reminder_id", reminder.ID).Msg("reminder email failed")
		metrics.ReminderNotificationsTotal.WithLabelValues("failed").Inc()
		return false
	}

	metrics.ReminderNotificationsTotal.WithLabelValues("sent").Inc()
	return true
}

// buildReminder validates the linked action belongs to the caller and
// assembles a domain reminder with defaults applied.
func (s *ReminderService) buildReminder(ctx context.Context, userID string, input ports.ReminderInput) (*domain.Reminder, error) {
	if input.ActionID == "" || input.Message == "" || input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: action, message and due_date are required", domain.ErrInvalidInput)
	}

	// A reminder's user should equal its action's owner; scoping the
	// lookup by caller enforces that here.
	if _, err := s.actions.FindByID(ctx, input.ActionID, userID); err != nil {
		return nil, err
	}

	severity := domain.Severity(input.Severity)
	if severity == "" {
		severity = domain.SeverityMedium
	}
	if !domain.ValidSeverity(severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", domain.ErrInvalidInput, input.Severity)
	}

	return &domain.Reminder{
		UserID:    userID,
		ActionID:  input.ActionID,
		Message:   input.Message,
		DueDate:   input.DueDate,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}, nil
}
