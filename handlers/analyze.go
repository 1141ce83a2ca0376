// ABOUTME: HTTP handlers for topology analysis, simulation, and removal endpoints
// ABOUTME: Validates topologies, runs the engines, and caches analysis responses

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/topologylab/smallworld/cache"
	"github.com/topologylab/smallworld/graph"
	"github.com/topologylab/smallworld/models"
	"github.com/topologylab/smallworld/services"
)

// Analyze computes metrics and shortcut proposals for a topology.
// Identical request bodies are served from cache within the TTL.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	cacheKey := cache.Key("analyze", body)
	if cached, found := h.cache.Get(cacheKey); found {
		slog.Debug("Analysis cache hit")
		resp := cached.(models.AnalyzeResponse)
		resp.Metadata.Cached = true
		h.writeJSON(w, http.StatusOK, resp)
		return
	}

	var req models.AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	g, engine, ok := h.prepare(w, req.Topology(), req.Options)
	if !ok {
		return
	}

	k := req.Options.K
	if k == 0 {
		k = defaultShortcutK
	}
	policy := models.DefaultPolicy()
	if req.Policy != nil {
		policy = *req.Policy
	}

	start := time.Now()
	graphMetrics, nodeMetrics := h.metrics.CalculateAll(g)
	shortcuts, err := engine.FindShortcuts(r.Context(), g, k, policy)
	if err != nil {
		slog.Error("Shortcut search failed", "error", err)
		h.writeError(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	rounded := make([]models.ShortcutCandidate, len(shortcuts))
	for i, sc := range shortcuts {
		rounded[i] = sc.Rounded()
	}

	resp := models.AnalyzeResponse{
		Metrics:     graphMetrics.Rounded(),
		NodeMetrics: nodeMetricsList(nodeMetrics),
		Shortcuts:   rounded,
		Summary:     services.BuildSummary(graphMetrics, nodeMetrics, shortcuts),
		Metadata: models.AnalysisMetadata{
			ProcessingTimeMs: models.Round(float64(time.Since(start).Microseconds())/1000, 2),
			OptimizationGoal: string(engine.Goal),
		},
	}

	h.cache.Set(cacheKey, resp)
	h.writeJSON(w, http.StatusOK, resp)
}

// Simulate applies a batch of shortcuts to a topology copy and returns
// the recomputed metrics. An empty batch reproduces plain analysis.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	g, engine, ok := h.prepare(w, req.Topology(), models.OptimizationOptions{})
	if !ok {
		return
	}

	graphMetrics, nodeMetrics := engine.Simulate(g, req.Shortcuts)
	h.writeJSON(w, http.StatusOK, models.SimulateResponse{
		Metrics:     graphMetrics.Rounded(),
		NodeMetrics: nodeMetricsList(nodeMetrics),
	})
}

// Removals lists edges whose removal would barely affect the objective.
func (h *Handler) Removals(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	g, engine, ok := h.prepare(w, req.Topology(), req.Options)
	if !ok {
		return
	}

	k := req.Options.K
	if k == 0 {
		k = defaultShortcutK
	}

	removals := engine.RemovalCandidates(g, k)
	for i := range removals {
		removals[i].Impact = models.Round(removals[i].Impact, 4)
		removals[i].CallRate = models.Round(removals[i].CallRate, 2)
	}
	h.writeJSON(w, http.StatusOK, models.RemovalsResponse{Removals: removals})
}

// prepare validates the topology and options, builds the graph, and
// configures an engine. On failure it writes the error response and
// returns ok=false.
func (h *Handler) prepare(w http.ResponseWriter, topo models.Topology, opts models.OptimizationOptions) (*graph.Model, *services.ShortcutSearchEngine, bool) {
	if err := topo.Validate(); err != nil {
		h.writeValidationError(w, err)
		return nil, nil, false
	}
	if err := opts.Validate(h.cfg.MaxShortcuts); err != nil {
		h.writeValidationError(w, err)
		return nil, nil, false
	}
	g, err := graph.FromTopology(topo)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	return g, h.newEngine(opts), true
}

func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		h.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   "Validation failed",
			Details: verr.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}
	h.writeError(w, err.Error(), http.StatusBadRequest)
}

// nodeMetricsList flattens the node metrics map into a sorted, rounded
// slice for the wire.
func nodeMetricsList(nodeMetrics map[string]models.NodeMetrics) []models.NodeMetrics {
	names := make([]string, 0, len(nodeMetrics))
	for name := range nodeMetrics {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]models.NodeMetrics, len(names))
	for i, name := range names {
		list[i] = nodeMetrics[name].Rounded()
	}
	return list
}
