// ABOUTME: Gamification models: user scores, leaderboard, achievements, simulations
// ABOUTME: Consumed by the scoreboard store; improvement percentage is opaque here

package models

// UserScore tracks a user's optimization activity and unlocked achievements.
type UserScore struct {
	UserID        string   `json:"user_id"`
	Username      string   `json:"username"`
	Score         int      `json:"score"`
	Optimizations int      `json:"optimizations"`
	Streak        int      `json:"streak"`
	Achievements  []string `json:"achievements"`
	LastActive    string   `json:"last_active"`
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Score         int    `json:"score"`
	Optimizations int    `json:"optimizations"`
	Streak        int    `json:"streak"`
}

// Achievement describes an unlockable badge.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
	Points      int    `json:"points"`
}

// SimulationResult records one optimization run for the history feed.
type SimulationResult struct {
	ID                  string  `json:"id"`
	UserID              string  `json:"user_id"`
	OriginalPathLength  float64 `json:"original_path_length"`
	OptimizedPathLength float64 `json:"optimized_path_length"`
	ImprovementPercent  float64 `json:"improvement_percent"`
	ShortcutsApplied    int     `json:"shortcuts_applied"`
	Timestamp           string  `json:"timestamp"`
	PointsEarned        int     `json:"points_earned"`
}

// ScoreUpdateRequest is the body of POST /api/v1/users/{id}/score.
type ScoreUpdateRequest struct {
	Points                int  `json:"points"`
	OptimizationCompleted bool `json:"optimization_completed"`
}

// RecordSimulationRequest is the body of POST /api/v1/simulations.
type RecordSimulationRequest struct {
	UserID              string  `json:"user_id"`
	OriginalPathLength  float64 `json:"original_path_length"`
	OptimizedPathLength float64 `json:"optimized_path_length"`
	ShortcutsApplied    int     `json:"shortcuts_applied"`
}
