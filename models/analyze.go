// ABOUTME: Request and response contracts for the analysis API
// ABOUTME: Mirrors the topology wire format plus optimization options and summaries

package models

// OptimizationOptions tune a single analysis request.
type OptimizationOptions struct {
	Goal  string   `json:"goal,omitempty"`
	K     int      `json:"k,omitempty"`
	Alpha *float64 `json:"alpha,omitempty"`
	Beta  *float64 `json:"beta,omitempty"`
	Gamma *float64 `json:"gamma,omitempty"`
}

// Validate checks option ranges. Weight overrides are optional; when
// present they must be non-negative.
func (o *OptimizationOptions) Validate(maxK int) error {
	if o.Goal != "" {
		if _, _, err := ParseGoal(o.Goal); err != nil {
			return err
		}
	}
	if o.K < 0 || o.K > maxK {
		return &ValidationError{Field: "options.k", Message: "k out of range"}
	}
	for _, w := range []struct {
		name  string
		value *float64
	}{
		{"options.alpha", o.Alpha},
		{"options.beta", o.Beta},
		{"options.gamma", o.Gamma},
	} {
		if w.value != nil && *w.value < 0 {
			return &ValidationError{Field: w.name, Message: "objective weight cannot be negative"}
		}
	}
	return nil
}

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Services []ServiceNode       `json:"services"`
	Edges    []DependencyEdge    `json:"edges"`
	Options  OptimizationOptions `json:"options"`
	Policy   *PolicyConstraints  `json:"policy,omitempty"`
}

// Topology extracts the embedded topology.
func (r *AnalyzeRequest) Topology() Topology {
	return Topology{Services: r.Services, Edges: r.Edges}
}

// GraphSummary condenses an analysis into operator-facing highlights.
type GraphSummary struct {
	TotalServices        int      `json:"total_services"`
	TotalDependencies    int      `json:"total_dependencies"`
	HubServices          []string `json:"hub_services"`
	BottleneckServices   []string `json:"bottleneck_services"`
	MostConnectedService string   `json:"most_connected_service,omitempty"`
	HighestLoadService   string   `json:"highest_load_service,omitempty"`
	IsSmallWorld         bool     `json:"is_small_world"`
	Recommendations      []string `json:"recommendations"`
}

// AnalysisMetadata carries processing details alongside results.
type AnalysisMetadata struct {
	ProcessingTimeMs float64 `json:"processing_time_ms"`
	OptimizationGoal string  `json:"optimization_goal"`
	Cached           bool    `json:"cached"`
}

// AnalyzeResponse is the body returned by POST /api/v1/analyze.
type AnalyzeResponse struct {
	Metrics     GraphMetrics        `json:"metrics"`
	NodeMetrics []NodeMetrics       `json:"node_metrics"`
	Shortcuts   []ShortcutCandidate `json:"shortcuts"`
	Summary     GraphSummary        `json:"graph_summary"`
	Metadata    AnalysisMetadata    `json:"analysis_metadata"`
}

// SimulateRequest applies a batch of shortcuts to a topology copy.
type SimulateRequest struct {
	Services  []ServiceNode       `json:"services"`
	Edges     []DependencyEdge    `json:"edges"`
	Shortcuts []ShortcutCandidate `json:"shortcuts"`
}

// Topology extracts the embedded topology.
func (r *SimulateRequest) Topology() Topology {
	return Topology{Services: r.Services, Edges: r.Edges}
}

// SimulateResponse is the recomputed state after applying shortcuts.
type SimulateResponse struct {
	Metrics     GraphMetrics  `json:"metrics"`
	NodeMetrics []NodeMetrics `json:"node_metrics"`
}

// RemovalsResponse lists edges that could be removed with minimal impact.
type RemovalsResponse struct {
	Removals []RemovalCandidate `json:"removals"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
