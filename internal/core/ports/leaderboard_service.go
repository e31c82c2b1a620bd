package ports

import "context"

// LeaderboardEntry is one row of the public leaderboard.
type LeaderboardEntry struct {
	UserID      string   `json:"id"`
	Username    string   `json:"username"`
	EcoScore    float64  `json:"eco_score"`
	Badges      []string `json:"badges"`
	ActionCount int64    `json:"action_count"`
	TotalCarbon float64  `json:"total_carbon"`
}

// LeaderboardService returns the top users by eco score.
type LeaderboardService interface {
	Top(ctx context.Context) ([]LeaderboardEntry, error)
}
