package ports

import (
	"context"
	"time"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// ReminderRepository defines persistence operations for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reminder, error)
	// ListPendingByUser returns the user's undelivered reminders ordered
	// by due date ascending.
	ListPendingByUser(ctx context.Context, userID string) ([]domain.Reminder, error)
	Update(ctx context.Context, reminder *domain.Reminder) error
	Delete(ctx context.Context, id, userID string) error
	// ListDue returns all undelivered reminders with due_date <= now,
	// across all users.
	ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error)
	// MarkDelivered flips delivered to true for a single reminder.
	MarkDelivered(ctx context.Context, id string) error
}
