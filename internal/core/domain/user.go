package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models a registered account, including the gamification state
// (eco score, badges, streak) mutated by action logging and the bulk
// recompute job.
type User struct {
	ID           string         `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email,omitempty"`
	PasswordHash string         `json:"-"`
	Role         string         `json:"role"`
	EcoScore     float64        `json:"eco_score"`
	Badges       []string       `json:"badges"`
	StreakDays   uint           `json:"streak_days"`
	ProfileMeta  map[string]any `json:"profile_meta"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ValidRole reports whether r is a recognised account role.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}
