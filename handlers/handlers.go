// ABOUTME: HTTP handlers for the topology analyzer API endpoints
// ABOUTME: Provides health check, analysis, simulation, and gamification endpoints

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/topologylab/smallworld/cache"
	"github.com/topologylab/smallworld/config"
	"github.com/topologylab/smallworld/models"
	"github.com/topologylab/smallworld/services"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// maxRequestBodySize caps analysis request bodies at 10MB.
const maxRequestBodySize = 10 << 20

// defaultShortcutK is the number of shortcuts proposed when a request
// does not set k.
const defaultShortcutK = 5

type Handler struct {
	cfg        *config.Config
	cache      *cache.Cache
	metrics    *services.MetricsEngine
	scoreboard *services.Scoreboard
	hub        *Hub
	startTime  time.Time
}

func NewHandler(cfg *config.Config, c *cache.Cache, scoreboard *services.Scoreboard, hub *Hub) *Handler {
	return &Handler{
		cfg:        cfg,
		cache:      c,
		metrics:    services.NewMetricsEngine(),
		scoreboard: scoreboard,
		hub:        hub,
		startTime:  time.Now(),
	}
}

// Health returns API health status including version and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:        "ok",
		Version:       Version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// newEngine builds a shortcut search engine configured from request
// options, falling back to the server's default goal.
func (h *Handler) newEngine(opts models.OptimizationOptions) *services.ShortcutSearchEngine {
	engine := services.NewShortcutSearchEngine(h.metrics)
	goalName := opts.Goal
	if goalName == "" {
		goalName = h.cfg.DefaultGoal
	}
	engine.SetGoal(models.OptimizationGoal(goalName))
	if opts.Alpha != nil {
		engine.Weights.Alpha = *opts.Alpha
	}
	if opts.Beta != nil {
		engine.Weights.Beta = *opts.Beta
	}
	if opts.Gamma != nil {
		engine.Weights.Gamma = *opts.Gamma
	}
	engine.Parallelism = h.cfg.EvalParallelism
	return engine
}
