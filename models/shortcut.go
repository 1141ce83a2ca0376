// ABOUTME: Shortcut optimization models: goals, candidates, and policy constraints
// ABOUTME: Goal presets map to fixed objective weights via data-driven lookup

package models

import "fmt"

// OptimizationGoal selects which objective weights the optimizer uses.
type OptimizationGoal string

const (
	GoalLatency  OptimizationGoal = "latency"  // minimize weighted path length
	GoalPaths    OptimizationGoal = "paths"    // minimize unweighted average path length
	GoalLoad     OptimizationGoal = "load"     // minimize max betweenness
	GoalBalanced OptimizationGoal = "balanced" // balance all objectives
)

// ObjectiveWeights are the (alpha, beta, gamma) coefficients of
// OBJ(G) = alpha*avg_path_length + beta*max_betweenness + gamma*total_cost.
type ObjectiveWeights struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// goalWeights is the closed preset table; setting a named goal
// overwrites the weights, which callers may then override.
var goalWeights = map[OptimizationGoal]ObjectiveWeights{
	GoalLatency:  {Alpha: 2.0, Beta: 0.5, Gamma: 0.1},
	GoalPaths:    {Alpha: 2.0, Beta: 0.3, Gamma: 0.0},
	GoalLoad:     {Alpha: 0.5, Beta: 2.0, Gamma: 0.1},
	GoalBalanced: {Alpha: 1.0, Beta: 1.0, Gamma: 0.1},
}

// ParseGoal validates a goal name and returns its preset weights.
func ParseGoal(name string) (OptimizationGoal, ObjectiveWeights, error) {
	goal := OptimizationGoal(name)
	weights, ok := goalWeights[goal]
	if !ok {
		return "", ObjectiveWeights{}, &ValidationError{
			Field:   "options.goal",
			Message: fmt.Sprintf("goal must be one of latency, paths, load, balanced, got %q", name),
		}
	}
	return goal, weights, nil
}

// ShortcutCandidate is a proposed new edge with its evaluated impact.
type ShortcutCandidate struct {
	Source                  string  `json:"from"`
	Target                  string  `json:"to"`
	DeltaObjective          float64 `json:"delta_objective"`
	DeltaPathLength         float64 `json:"delta_path_length"`
	DeltaMaxBetweenness     float64 `json:"delta_max_betweenness"`
	DeltaWeightedPathLength float64 `json:"delta_weighted_path_length"`
	RiskScore               float64 `json:"risk_score"`
	Confidence              float64 `json:"confidence"`
	Score                   float64 `json:"score"`
	Rationale               string  `json:"rationale"`
	EstimatedLatency        float64 `json:"estimated_latency"`
	EstimatedCallRate       float64 `json:"estimated_call_rate"`
}

// Improvement is the positive-is-better form of the objective delta.
func (c ShortcutCandidate) Improvement() float64 {
	return -c.DeltaObjective
}

// Rounded returns a copy with fields rounded to wire precision (4dp
// deltas and scores, 2dp latency).
func (c ShortcutCandidate) Rounded() ShortcutCandidate {
	c.DeltaObjective = Round(c.DeltaObjective, 4)
	c.DeltaPathLength = Round(c.DeltaPathLength, 4)
	c.DeltaMaxBetweenness = Round(c.DeltaMaxBetweenness, 4)
	c.DeltaWeightedPathLength = Round(c.DeltaWeightedPathLength, 4)
	c.RiskScore = Round(c.RiskScore, 4)
	c.Confidence = Round(c.Confidence, 4)
	c.Score = Round(c.Score, 4)
	c.EstimatedLatency = Round(c.EstimatedLatency, 2)
	c.EstimatedCallRate = Round(c.EstimatedCallRate, 2)
	return c
}

// RemovalCandidate is an existing edge whose removal has minimal impact.
type RemovalCandidate struct {
	Source    string  `json:"from"`
	Target    string  `json:"to"`
	Impact    float64 `json:"impact"`
	CallRate  float64 `json:"call_rate"`
	Rationale string  `json:"rationale"`
}

// PolicyConstraints restrict which shortcut candidates may be generated.
// Pure value object; consumed only by the shortcut search engine.
type PolicyConstraints struct {
	// ForbiddenPairs blocks both orders of each pair.
	ForbiddenPairs [][2]string `json:"forbidden_pairs,omitempty"`
	// AllowedZones maps a source zone to the target zones it may
	// reach; targets with an empty zone are always allowed.
	AllowedZones map[string][]string `json:"allowed_zones,omitempty"`
	// MaxNewEdgesPerService caps accepted candidates per source node.
	MaxNewEdgesPerService int `json:"max_new_edges_per_service"`
	// RequireSameZone restricts shortcuts to intra-zone pairs.
	RequireSameZone bool `json:"require_same_zone"`
	// MinPathLengthToShortcut is the minimum existing hop distance for
	// a pair to qualify; unreachable pairs always qualify.
	MinPathLengthToShortcut int `json:"min_path_length_to_shortcut"`
}

// DefaultPolicy returns the baseline constraints: no forbidden pairs, no
// zone restriction, at most 3 new edges per service, cross-zone allowed,
// minimum existing path length of 2.
func DefaultPolicy() PolicyConstraints {
	return PolicyConstraints{
		MaxNewEdgesPerService:   3,
		MinPathLengthToShortcut: 2,
	}
}
