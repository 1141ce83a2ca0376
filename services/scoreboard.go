// ABOUTME: In-memory scoreboard for optimization gamification
// ABOUTME: Tracks user scores, achievements, and simulation history behind a mutex

package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/topologylab/smallworld/models"
)

// pointsPerImprovementPercent converts improvement into score points.
const pointsPerImprovementPercent = 10

// Scoreboard is an injected store for scores, achievements, and
// simulation history. State lives only for the process lifetime.
type Scoreboard struct {
	mu           sync.Mutex
	users        map[string]*models.UserScore
	history      []models.SimulationResult
	achievements []models.Achievement
	now          func() time.Time
}

// NewScoreboard creates an empty scoreboard with the built-in
// achievement definitions.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{
		users: make(map[string]*models.UserScore),
		achievements: []models.Achievement{
			{ID: "first_optimization", Name: "First Steps", Description: "Complete your first topology optimization", Icon: "target", Rarity: "common", Points: 10},
			{ID: "streak_7", Name: "On Fire", Description: "Maintain a 7-day optimization streak", Icon: "flame", Rarity: "rare", Points: 50},
			{ID: "top_10", Name: "Rising Star", Description: "Reach the top 10 on the leaderboard", Icon: "star", Rarity: "epic", Points: 100},
			{ID: "hundred_optimizations", Name: "Century Club", Description: "Complete 100 topology optimizations", Icon: "award", Rarity: "legendary", Points: 500},
			{ID: "perfect_score", Name: "Perfectionist", Description: "Achieve 50%+ improvement in a single optimization", Icon: "gem", Rarity: "legendary", Points: 200},
		},
		now: time.Now,
	}
}

// Achievements returns all achievement definitions.
func (s *Scoreboard) Achievements() []models.Achievement {
	out := make([]models.Achievement, len(s.achievements))
	copy(out, s.achievements)
	return out
}

// User returns the user's score record, creating it on first access.
func (s *Scoreboard) User(userID string) models.UserScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getOrCreate(userID)
}

// getOrCreate must be called with the lock held.
func (s *Scoreboard) getOrCreate(userID string) *models.UserScore {
	if user, ok := s.users[userID]; ok {
		return user
	}
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	user := &models.UserScore{
		UserID:       userID,
		Username:     fmt.Sprintf("user_%s", short),
		Achievements: []string{},
		LastActive:   s.now().UTC().Format(time.RFC3339),
	}
	s.users[userID] = user
	return user
}

// UpdateScore adds points and optionally counts an optimization,
// unlocking any milestone achievements. It returns the updated record
// and the IDs of newly unlocked achievements.
func (s *Scoreboard) UpdateScore(userID string, points int, optimizationCompleted bool) (models.UserScore, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.getOrCreate(userID)
	user.Score += points
	if optimizationCompleted {
		user.Optimizations++
	}
	user.LastActive = s.now().UTC().Format(time.RFC3339)

	var unlocked []string
	if user.Optimizations == 1 {
		unlocked = append(unlocked, s.unlock(user, "first_optimization")...)
	}
	if user.Optimizations >= 100 {
		unlocked = append(unlocked, s.unlock(user, "hundred_optimizations")...)
	}
	return *user, unlocked
}

// unlock awards an achievement once, crediting its points. Must be
// called with the lock held.
func (s *Scoreboard) unlock(user *models.UserScore, id string) []string {
	for _, have := range user.Achievements {
		if have == id {
			return nil
		}
	}
	user.Achievements = append(user.Achievements, id)
	for _, a := range s.achievements {
		if a.ID == id {
			user.Score += a.Points
			break
		}
	}
	return []string{id}
}

// Leaderboard returns the top users ranked by score.
func (s *Scoreboard) Leaderboard(limit int) []models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*models.UserScore, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Score != users[j].Score {
			return users[i].Score > users[j].Score
		}
		return users[i].UserID < users[j].UserID
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	entries := make([]models.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = models.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        u.UserID,
			Username:      u.Username,
			Score:         u.Score,
			Optimizations: u.Optimizations,
			Streak:        u.Streak,
		}
	}
	return entries
}

// RecordSimulation stores an optimization run, awards points
// proportional to the improvement percentage, and unlocks achievements.
func (s *Scoreboard) RecordSimulation(req models.RecordSimulationRequest) (models.SimulationResult, []string) {
	improvement := 0.0
	if req.OriginalPathLength > 0 {
		improvement = (req.OriginalPathLength - req.OptimizedPathLength) / req.OriginalPathLength * 100
	}
	points := int(improvement * pointsPerImprovementPercent)

	result := models.SimulationResult{
		ID:                  uuid.NewString(),
		UserID:              req.UserID,
		OriginalPathLength:  models.Round(req.OriginalPathLength, 4),
		OptimizedPathLength: models.Round(req.OptimizedPathLength, 4),
		ImprovementPercent:  models.Round(improvement, 2),
		ShortcutsApplied:    req.ShortcutsApplied,
		Timestamp:           s.now().UTC().Format(time.RFC3339),
		PointsEarned:        points,
	}

	s.mu.Lock()
	s.history = append(s.history, result)
	s.mu.Unlock()

	_, unlocked := s.UpdateScore(req.UserID, points, true)

	if improvement >= 50 {
		s.mu.Lock()
		user := s.getOrCreate(req.UserID)
		unlocked = append(unlocked, s.unlock(user, "perfect_score")...)
		s.mu.Unlock()
	}

	return result, unlocked
}

// History returns recent simulation results, newest first, optionally
// filtered by user.
func (s *Scoreboard) History(userID string, limit int) []models.SimulationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.SimulationResult, 0, len(s.history))
	for _, r := range s.history {
		if userID == "" || r.UserID == userID {
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp > results[j].Timestamp
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
