// ABOUTME: Unit tests for the gamification scoreboard store
// ABOUTME: Covers scoring, achievements, leaderboard ranking, and history

package services

import (
	"testing"
	"time"

	"github.com/topologylab/smallworld/models"
)

func recordReq(userID string, original, optimized float64, shortcuts int) models.RecordSimulationRequest {
	return models.RecordSimulationRequest{
		UserID:              userID,
		OriginalPathLength:  original,
		OptimizedPathLength: optimized,
		ShortcutsApplied:    shortcuts,
	}
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func TestScoreboard_AutoCreatesUser(t *testing.T) {
	sb := NewScoreboard()

	user := sb.User("abcdefgh-1234")
	if user.UserID != "abcdefgh-1234" {
		t.Errorf("UserID = %q", user.UserID)
	}
	if user.Username != "user_abcdefgh" {
		t.Errorf("Username = %q, want user_abcdefgh", user.Username)
	}
	if user.Score != 0 || user.Optimizations != 0 {
		t.Error("New user should start at zero")
	}
}

func TestScoreboard_FirstOptimizationAchievement(t *testing.T) {
	sb := NewScoreboard()

	user, unlocked := sb.UpdateScore("u1", 25, true)
	if len(unlocked) != 1 || unlocked[0] != "first_optimization" {
		t.Fatalf("unlocked = %v, want [first_optimization]", unlocked)
	}
	// 25 base points plus the 10-point achievement bonus.
	if user.Score != 35 {
		t.Errorf("Score = %d, want 35", user.Score)
	}

	// Second optimization does not re-unlock.
	_, unlocked = sb.UpdateScore("u1", 0, true)
	if len(unlocked) != 0 {
		t.Errorf("unlocked = %v, want none", unlocked)
	}
}

func TestScoreboard_HundredOptimizations(t *testing.T) {
	sb := NewScoreboard()

	var last []string
	for i := 0; i < 100; i++ {
		_, last = sb.UpdateScore("grinder", 0, true)
	}
	if len(last) != 1 || last[0] != "hundred_optimizations" {
		t.Errorf("100th optimization unlocked %v, want [hundred_optimizations]", last)
	}
}

func TestScoreboard_LeaderboardRanking(t *testing.T) {
	sb := NewScoreboard()
	sb.UpdateScore("low", 10, false)
	sb.UpdateScore("high", 100, false)
	sb.UpdateScore("mid", 50, false)

	entries := sb.Leaderboard(2)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "high" || entries[0].Rank != 1 {
		t.Errorf("Rank 1 = %+v", entries[0])
	}
	if entries[1].UserID != "mid" || entries[1].Rank != 2 {
		t.Errorf("Rank 2 = %+v", entries[1])
	}
}

func TestScoreboard_RecordSimulation(t *testing.T) {
	sb := NewScoreboard()
	sb.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	result, unlocked := sb.RecordSimulation(recordReq("u1", 4.0, 3.0, 2))

	if result.ImprovementPercent != 25.0 {
		t.Errorf("ImprovementPercent = %v, want 25", result.ImprovementPercent)
	}
	if result.PointsEarned != 250 {
		t.Errorf("PointsEarned = %d, want 250", result.PointsEarned)
	}
	if result.ID == "" {
		t.Error("Expected a generated ID")
	}
	if result.Timestamp != "2025-06-01T12:00:00Z" {
		t.Errorf("Timestamp = %q", result.Timestamp)
	}
	if !containsString(unlocked, "first_optimization") {
		t.Errorf("unlocked = %v, want first_optimization", unlocked)
	}
}

func TestScoreboard_PerfectScore(t *testing.T) {
	sb := NewScoreboard()

	_, unlocked := sb.RecordSimulation(recordReq("u1", 10.0, 4.0, 1))
	if !containsString(unlocked, "perfect_score") {
		t.Errorf("60%% improvement should unlock perfect_score, got %v", unlocked)
	}
}

func TestScoreboard_ZeroOriginalPathLength(t *testing.T) {
	sb := NewScoreboard()

	result, _ := sb.RecordSimulation(recordReq("u1", 0, 0, 0))
	if result.ImprovementPercent != 0 || result.PointsEarned != 0 {
		t.Errorf("Zero baseline should award nothing, got %+v", result)
	}
}

func TestScoreboard_HistoryFilterAndLimit(t *testing.T) {
	sb := NewScoreboard()
	sb.RecordSimulation(recordReq("alice", 4, 3, 1))
	sb.RecordSimulation(recordReq("bob", 4, 2, 1))
	sb.RecordSimulation(recordReq("alice", 4, 1, 1))

	all := sb.History("", 0)
	if len(all) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(all))
	}

	alice := sb.History("alice", 0)
	if len(alice) != 2 {
		t.Errorf("Expected 2 alice results, got %d", len(alice))
	}

	limited := sb.History("", 1)
	if len(limited) != 1 {
		t.Errorf("Expected 1 limited result, got %d", len(limited))
	}
}
