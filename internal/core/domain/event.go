package domain

import "time"

// EventStatus represents the lifecycle state of a community event.
type EventStatus string

const (
	EventOpen      EventStatus = "open"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// validEventTransitions defines the allowed state machine transitions.
// Completed and cancelled are both terminal.
var validEventTransitions = map[EventStatus][]EventStatus{
	EventOpen: {EventCompleted, EventCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range validEventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CommunityEvent is a hostable, joinable gathering. Completing an open
// event awards its points to the user who requested completion.
type CommunityEvent struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	Location       string      `json:"location,omitempty"`
	Points         uint        `json:"points"`
	StartsAt       *time.Time  `json:"starts_at,omitempty"`
	EndsAt         *time.Time  `json:"ends_at,omitempty"`
	Status         EventStatus `json:"status"`
	HostID         string      `json:"host_id"`
	ParticipantIDs []string    `json:"participant_ids"`
	IsVirtual      bool        `json:"is_virtual"`
	CreatedAt      time.Time   `json:"created_at"`
}

// HasParticipant reports whether userID is already on the roster.
func (e *CommunityEvent) HasParticipant(userID string) bool {
	for _, id := range e.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}
