package domain

import "time"

// Reminder is a due-dated follow-up tied to a user and one of their
// actions. Delivered transitions false to true exactly once, via the
// dispatcher, and never reverts.
type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ActionID  string    `json:"action_id"`
	Message   string    `json:"message"`
	DueDate   time.Time `json:"due_date"`
	Severity  Severity  `json:"severity"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}
