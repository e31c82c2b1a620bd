package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

// ReminderInput carries the client-supplied fields of a reminder.
type ReminderInput struct {
	ActionID string
	Message  string
	DueDate  time.Time
	Severity string
}

// DispatchResult summarises a reminder dispatch run.
type DispatchResult struct {
	// Delivered counts reminders marked delivered during this run.
	Delivered int
	// Notified counts reminders for which an email was actually sent
	// (owners without an email on file are skipped silently).
	Notified int
}

// Summary renders the human-readable run summary.
func (r DispatchResult) Summary() string {
	return fmt.Sprintf("Delivered %d reminders", r.Delivered)
}

// ReminderService covers the reminder collection plus the periodic
// due-reminder dispatch.
type ReminderService interface {
	Create(ctx context.Context, userID string, input ReminderInput) (*domain.Reminder, error)
	List(ctx context.Context, userID string) ([]domain.Reminder, error)
	Get(ctx context.Context, id, userID string) (*domain.Reminder, error)
	Update(ctx context.Context, id, userID string, input ReminderInput) (*domain.Reminder, error)
	Delete(ctx context.Context, id, userID string) error
	// DispatchDue notifies and marks every reminder due at now. Marking
	// happens per reminder, so a failure mid-batch never re-notifies
	// already-delivered reminders on retry.
	DispatchDue(ctx context.Context, now time.Time) (DispatchResult, error)
}
