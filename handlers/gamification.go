// ABOUTME: HTTP handlers for leaderboard, scores, achievements, and history
// ABOUTME: Backed by the injected scoreboard store; unlocks broadcast over /ws

package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/topologylab/smallworld/models"
)

// Leaderboard returns the top users ranked by score.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", h.cfg.LeaderboardLimit)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": h.scoreboard.Leaderboard(limit),
	})
}

// GetUserScore returns a user's score record, creating it on first access.
func (h *Handler) GetUserScore(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		h.writeError(w, "Missing user id", http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusOK, h.scoreboard.User(userID))
}

// UpdateUserScore adds points to a user and reports unlocked achievements.
func (h *Handler) UpdateUserScore(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		h.writeError(w, "Missing user id", http.StatusBadRequest)
		return
	}

	var req models.ScoreUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	user, unlocked := h.scoreboard.UpdateScore(userID, req.Points, req.OptimizationCompleted)
	h.broadcastUnlocks(userID, unlocked)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":                  user,
		"unlocked_achievements": unlocked,
	})
}

// Achievements lists all achievement definitions.
func (h *Handler) Achievements(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": h.scoreboard.Achievements(),
	})
}

// RecordSimulation stores an optimization run and awards points.
func (h *Handler) RecordSimulation(w http.ResponseWriter, r *http.Request) {
	var req models.RecordSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		h.writeError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	result, unlocked := h.scoreboard.RecordSimulation(req)
	if h.hub != nil {
		h.hub.Broadcast("simulation_completed", result)
	}
	h.broadcastUnlocks(req.UserID, unlocked)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"result":                result,
		"unlocked_achievements": unlocked,
	})
}

// ListSimulations returns recent simulation results, newest first.
func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	limit := queryInt(r, "limit", 20)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"simulations": h.scoreboard.History(userID, limit),
	})
}

// Export dumps the leaderboard and simulation history as JSON or CSV.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	leaderboard := h.scoreboard.Leaderboard(0)
	simulations := h.scoreboard.History("", 0)

	switch format {
	case "json":
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"leaderboard": leaderboard,
			"simulations": simulations,
		})
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.csv"`)
		cw := csv.NewWriter(w)
		cw.Write([]string{"rank", "user_id", "username", "score", "optimizations", "streak"})
		for _, e := range leaderboard {
			cw.Write([]string{
				strconv.Itoa(e.Rank),
				e.UserID,
				e.Username,
				strconv.Itoa(e.Score),
				strconv.Itoa(e.Optimizations),
				strconv.Itoa(e.Streak),
			})
		}
		cw.Flush()
	default:
		h.writeError(w, fmt.Sprintf("Unsupported export format %q, use json or csv", format), http.StatusBadRequest)
	}
}

// broadcastUnlocks pushes achievement_unlocked events for each new unlock.
func (h *Handler) broadcastUnlocks(userID string, unlocked []string) {
	if h.hub == nil {
		return
	}
	for _, id := range unlocked {
		h.hub.Broadcast("achievement_unlocked", map[string]string{
			"user_id":        userID,
			"achievement_id": id,
		})
	}
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
