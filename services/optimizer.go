// ABOUTME: Shortcut search engine proposing new edges that reduce the objective
// ABOUTME: Evaluates each candidate on a private graph copy, in parallel, then ranks

package services

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/topologylab/smallworld/graph"
	"github.com/topologylab/smallworld/models"
)

const (
	// scoreEpsilon keeps the improvement-per-risk ratio finite.
	scoreEpsilon = 0.01

	// directLatencyFactor estimates a direct connection as faster than
	// the mean of existing hops.
	directLatencyFactor = 0.8

	// removalImpactLimit is the maximum objective increase an edge
	// removal may cause and still be suggested.
	removalImpactLimit = 0.1
)

// ShortcutSearchEngine finds beneficial shortcut edges for a graph. A
// fresh engine should be configured per request; FindShortcuts itself
// shares no mutable state with the caller's graph.
type ShortcutSearchEngine struct {
	metrics *MetricsEngine

	// Goal and Weights drive the objective. Setting a goal overwrites
	// the weights; callers may override individual weights afterward.
	Goal    models.OptimizationGoal
	Weights models.ObjectiveWeights

	// Parallelism caps concurrent candidate evaluations (0 = GOMAXPROCS).
	Parallelism int
}

// NewShortcutSearchEngine creates an engine with balanced weights.
func NewShortcutSearchEngine(metrics *MetricsEngine) *ShortcutSearchEngine {
	e := &ShortcutSearchEngine{metrics: metrics}
	e.SetGoal(models.GoalBalanced)
	return e
}

// SetGoal switches the optimization goal and loads its preset weights.
func (e *ShortcutSearchEngine) SetGoal(goal models.OptimizationGoal) {
	if _, weights, err := models.ParseGoal(string(goal)); err == nil {
		e.Goal = goal
		e.Weights = weights
	}
}

// FindShortcuts proposes up to k new edges that most reduce the
// objective, subject to policy. The result is ranked by score descending
// with lexicographic (source, target) tie-breaks; it may be empty.
func (e *ShortcutSearchEngine) FindShortcuts(ctx context.Context, g *graph.Model, k int, policy models.PolicyConstraints) ([]models.ShortcutCandidate, error) {
	if g.NodeCount() < 2 || k <= 0 {
		return nil, nil
	}

	baseline, _ := e.metrics.CalculateAll(g)
	baselineObj := e.metrics.Objective(baseline, e.metrics.TotalCost(g), e.Weights)
	estimatedLatency := estimateShortcutLatency(g)

	pairs := e.generateCandidates(g, policy)
	results := make([]*models.ShortcutCandidate, len(pairs))

	eg, ctx := errgroup.WithContext(ctx)
	limit := e.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(limit)

	for i, pair := range pairs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.evaluateCandidate(g, pair[0], pair[1], baseline, baselineObj, estimatedLatency)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	accepted := make([]models.ShortcutCandidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			accepted = append(accepted, *c)
		}
	}
	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].Score != accepted[j].Score {
			return accepted[i].Score > accepted[j].Score
		}
		if accepted[i].Source != accepted[j].Source {
			return accepted[i].Source < accepted[j].Source
		}
		return accepted[i].Target < accepted[j].Target
	})
	if len(accepted) > k {
		accepted = accepted[:k]
	}
	return accepted, nil
}

// generateCandidates enumerates ordered pairs of existing nodes that pass
// every policy gate. The per-source counter increments as pairs are
// accepted, independent of whether evaluation later rejects them.
func (e *ShortcutSearchEngine) generateCandidates(g *graph.Model, policy models.PolicyConstraints) [][2]string {
	forbidden := make(map[[2]string]bool, len(policy.ForbiddenPairs)*2)
	for _, p := range policy.ForbiddenPairs {
		// Forbidden pairs block both orders.
		forbidden[[2]string{p[0], p[1]}] = true
		forbidden[[2]string{p[1], p[0]}] = true
	}

	nodes := g.Nodes()
	var candidates [][2]string
	perSource := make(map[string]int, len(nodes))

	for _, source := range nodes {
		for _, target := range nodes {
			if source == target {
				continue
			}
			if perSource[source] >= policy.MaxNewEdgesPerService {
				break
			}
			if g.HasEdge(source, target) {
				continue
			}
			if forbidden[[2]string{source, target}] {
				continue
			}

			sourceZone := g.Zone(source)
			targetZone := g.Zone(target)
			if policy.RequireSameZone {
				if sourceZone == "" || targetZone == "" || sourceZone != targetZone {
					continue
				}
			}
			if len(policy.AllowedZones) > 0 {
				if allowed, ok := policy.AllowedZones[sourceZone]; ok {
					// Targets with no zone assignment are always reachable.
					if targetZone != "" && !contains(allowed, targetZone) {
						continue
					}
				}
			}

			// Pairs already close together gain little from a direct
			// edge; pairs with no path at all are new connectivity and
			// always qualify.
			if hops, reachable := pathLength(g, source, target); reachable && hops < policy.MinPathLengthToShortcut {
				continue
			}

			perSource[source]++
			candidates = append(candidates, [2]string{source, target})
		}
	}
	return candidates
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// evaluateCandidate adds the edge to an isolated copy, recomputes
// metrics, and scores the change. Returns nil when the candidate does
// not improve the objective.
func (e *ShortcutSearchEngine) evaluateCandidate(
	g *graph.Model,
	source, target string,
	baseline models.GraphMetrics,
	baselineObj float64,
	estimatedLatency float64,
) *models.ShortcutCandidate {
	modified := g.Copy()
	if !modified.AddShortcut(source, target, 0, estimatedLatency, estimatedLatency*2, 0, 0) {
		return nil
	}

	modifiedMetrics, modifiedNodes := e.metrics.CalculateAll(modified)
	modifiedObj := e.metrics.Objective(modifiedMetrics, e.metrics.TotalCost(modified), e.Weights)

	deltaObj := modifiedObj - baselineObj
	if deltaObj >= 0 {
		return nil
	}

	deltaPath := modifiedMetrics.AveragePathLength - baseline.AveragePathLength
	deltaBetweenness := modifiedMetrics.MaxBetweenness - baseline.MaxBetweenness
	deltaWeighted := modifiedMetrics.WeightedAveragePathLength - baseline.WeightedAveragePathLength

	risk := riskScore(modifiedNodes[source], modifiedNodes[target])
	confidence := confidenceScore(deltaObj, baseline, modifiedMetrics)
	improvement := -deltaObj

	return &models.ShortcutCandidate{
		Source:                  source,
		Target:                  target,
		DeltaObjective:          deltaObj,
		DeltaPathLength:         deltaPath,
		DeltaMaxBetweenness:     deltaBetweenness,
		DeltaWeightedPathLength: deltaWeighted,
		RiskScore:               risk,
		Confidence:              confidence,
		Score:                   improvement / (risk + scoreEpsilon),
		Rationale:               rationale(source, target, deltaPath, deltaBetweenness, deltaWeighted),
		EstimatedLatency:        estimatedLatency,
		EstimatedCallRate:       0,
	}
}

// estimateShortcutLatency predicts a direct edge's median latency from
// the mean of existing positive latencies, or 1.0 when none exist.
func estimateShortcutLatency(g *graph.Model) float64 {
	total := 0.0
	count := 0
	for _, e := range g.Edges() {
		if e.P50Latency > 0 {
			total += e.P50Latency
			count++
		}
	}
	if count == 0 {
		return 1.0
	}
	return total / float64(count) * directLatencyFactor
}

// riskScore estimates the danger of concentrating more traffic through
// the endpoints, from the post-shortcut node metrics.
func riskScore(source, target models.NodeMetrics) float64 {
	risk := 0.1 // base risk for any new edge
	risk += 0.5 * target.BetweennessCentrality
	if target.IsBottleneck {
		risk += 0.3
	}
	if source.IsHub {
		risk += 0.2
	}
	return clamp01(risk)
}

// confidenceScore rates how believable the predicted improvement is.
func confidenceScore(deltaObj float64, baseline, modified models.GraphMetrics) float64 {
	if deltaObj >= 0 {
		return 0
	}
	improvement := -deltaObj

	confidence := math.Min(improvement*2, 0.5)
	if baseline.IsConnected {
		confidence += 0.2
	}
	if baseline.AveragePathLength-modified.AveragePathLength > 0.1 {
		confidence += 0.2
	}
	if modified.MaxBetweenness-baseline.MaxBetweenness > 0.1 {
		confidence -= 0.1
	}
	return clamp01(confidence)
}

// rationale lists which deltas were material enough to mention.
func rationale(source, target string, deltaPath, deltaBetweenness, deltaWeighted float64) string {
	var reasons []string
	if deltaPath < -0.05 {
		reasons = append(reasons, fmt.Sprintf("Reduces average path length by %.2f", -deltaPath))
	}
	if deltaBetweenness < -0.01 {
		reasons = append(reasons, fmt.Sprintf("Reduces max betweenness by %.3f", -deltaBetweenness))
	}
	if deltaWeighted < -1.0 {
		reasons = append(reasons, fmt.Sprintf("Reduces weighted path length by %.1fms", -deltaWeighted))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Minor optimization benefit")
	}
	return fmt.Sprintf("Shortcut %s -> %s: %s", source, target, strings.Join(reasons, "; "))
}

// RemovalCandidates finds up to k edges whose removal keeps the graph
// weakly connected and raises the objective by less than the impact
// limit, ordered by ascending impact.
func (e *ShortcutSearchEngine) RemovalCandidates(g *graph.Model, k int) []models.RemovalCandidate {
	if g.EdgeCount() < 2 || k <= 0 {
		return nil
	}

	baseline, _ := e.metrics.CalculateAll(g)
	baselineObj := e.metrics.Objective(baseline, e.metrics.TotalCost(g), e.Weights)

	var candidates []models.RemovalCandidate
	for _, edge := range g.Edges() {
		trial := g.Copy()
		trial.RemoveEdge(edge.Source, edge.Target)

		if weaklyConnectedComponents(trial) != 1 {
			continue // removal would disconnect the graph
		}

		trialMetrics, _ := e.metrics.CalculateAll(trial)
		trialObj := e.metrics.Objective(trialMetrics, e.metrics.TotalCost(trial), e.Weights)
		delta := trialObj - baselineObj
		if delta >= removalImpactLimit {
			continue
		}

		candidates = append(candidates, models.RemovalCandidate{
			Source:    edge.Source,
			Target:    edge.Target,
			Impact:    delta,
			CallRate:  edge.CallRate,
			Rationale: fmt.Sprintf("Edge has minimal impact on topology (delta: %.3f)", delta),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Impact != candidates[j].Impact {
			return candidates[i].Impact < candidates[j].Impact
		}
		if candidates[i].Source != candidates[j].Source {
			return candidates[i].Source < candidates[j].Source
		}
		return candidates[i].Target < candidates[j].Target
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// Simulate applies a batch of shortcuts to a fresh copy and recomputes
// all metrics. An empty batch reproduces CalculateAll on the unmodified
// graph exactly.
func (e *ShortcutSearchEngine) Simulate(g *graph.Model, shortcuts []models.ShortcutCandidate) (models.GraphMetrics, map[string]models.NodeMetrics) {
	simulated := g.Copy()
	for _, sc := range shortcuts {
		simulated.AddShortcut(sc.Source, sc.Target, sc.EstimatedCallRate, sc.EstimatedLatency, sc.EstimatedLatency*2, 0, 0)
	}
	return e.metrics.CalculateAll(simulated)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
