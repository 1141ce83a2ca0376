// ABOUTME: Metrics engine computing node and graph metrics from a snapshot
// ABOUTME: Pure functions of the graph; degenerate shapes yield documented fallbacks

package services

import (
	"math"
	"sort"

	"github.com/topologylab/smallworld/graph"
	"github.com/topologylab/smallworld/models"
)

const (
	// Top 30% by degree are hubs, top 20% by betweenness are bottlenecks.
	hubPercentile        = 70.0
	bottleneckPercentile = 80.0

	// Assumed maximum call load for vulnerability normalization.
	vulnerabilityMaxLoad = 10000.0
)

// MetricsEngine computes descriptive network metrics for service
// dependency graphs. All computation is read-only with respect to the
// input graph; callers may share an engine across goroutines.
type MetricsEngine struct{}

// NewMetricsEngine creates a metrics engine.
func NewMetricsEngine() *MetricsEngine {
	return &MetricsEngine{}
}

// CalculateAll computes every node and graph metric in one pass.
// An empty graph yields zero-valued GraphMetrics and an empty node map.
func (e *MetricsEngine) CalculateAll(g *graph.Model) (models.GraphMetrics, map[string]models.NodeMetrics) {
	if g.NodeCount() == 0 {
		return models.GraphMetrics{}, map[string]models.NodeMetrics{}
	}

	nodeMetrics := e.calculateNodeMetrics(g)
	graphMetrics := e.calculateGraphMetrics(g, nodeMetrics)
	e.identifyHubsAndBottlenecks(nodeMetrics, &graphMetrics)
	return graphMetrics, nodeMetrics
}

// Objective evaluates OBJ(G) = alpha*avg_path_length + beta*max_betweenness
// + gamma*total_cost. Lower is better.
func (e *MetricsEngine) Objective(gm models.GraphMetrics, totalCost float64, w models.ObjectiveWeights) float64 {
	return w.Alpha*gm.AveragePathLength + w.Beta*gm.MaxBetweenness + w.Gamma*totalCost
}

// TotalCost sums the cost attribute over all edges.
func (e *MetricsEngine) TotalCost(g *graph.Model) float64 {
	total := 0.0
	for _, edge := range g.Edges() {
		total += edge.Cost
	}
	return total
}

func (e *MetricsEngine) calculateNodeMetrics(g *graph.Model) map[string]models.NodeMetrics {
	betweenness := betweennessCentrality(g)
	closeness := closenessCentrality(g)
	clustering := clusteringCoefficients(g)
	ranks := pageRank(g)
	incoming, outgoing := callLoads(g)

	metrics := make(map[string]models.NodeMetrics, g.NodeCount())
	for _, node := range g.Nodes() {
		in := g.InDegree(node)
		out := g.OutDegree(node)
		metrics[node] = models.NodeMetrics{
			Name:                  node,
			InDegree:              in,
			OutDegree:             out,
			TotalDegree:           in + out,
			BetweennessCentrality: betweenness[node],
			ClosenessCentrality:   closeness[node],
			ClusteringCoefficient: clustering[node],
			PageRank:              ranks[node],
			IncomingLoad:          incoming[node],
			OutgoingLoad:          outgoing[node],
		}
	}
	return metrics
}

// callLoads sums call rates into and out of each node.
func callLoads(g *graph.Model) (incoming, outgoing map[string]float64) {
	incoming = make(map[string]float64, g.NodeCount())
	outgoing = make(map[string]float64, g.NodeCount())
	for _, node := range g.Nodes() {
		incoming[node] = 0
		outgoing[node] = 0
	}
	for _, e := range g.Edges() {
		incoming[e.Target] += e.CallRate
		outgoing[e.Source] += e.CallRate
	}
	return incoming, outgoing
}

func (e *MetricsEngine) calculateGraphMetrics(g *graph.Model, nodeMetrics map[string]models.NodeMetrics) models.GraphMetrics {
	n := g.NodeCount()
	m := g.EdgeCount()

	density := 0.0
	if n > 1 {
		density = float64(m) / float64(n*(n-1))
	}

	avgPathLength := averagePathLength(g)
	weightedAvg := weightedAveragePathLength(g)
	diameter := graphDiameter(g)

	avgClustering := 0.0
	for _, nm := range nodeMetrics {
		avgClustering += nm.ClusteringCoefficient
	}
	avgClustering /= float64(n)

	weak := weaklyConnectedComponents(g)
	strong := len(stronglyConnectedComponents(g))

	maxBetweenness := 0.0
	totalLoad := 0.0
	for _, nm := range nodeMetrics {
		if nm.BetweennessCentrality > maxBetweenness {
			maxBetweenness = nm.BetweennessCentrality
		}
		totalLoad += nm.IncomingLoad
	}

	return models.GraphMetrics{
		NodeCount:                   n,
		EdgeCount:                   m,
		Density:                     density,
		AveragePathLength:           avgPathLength,
		WeightedAveragePathLength:   weightedAvg,
		Diameter:                    diameter,
		AverageClustering:           avgClustering,
		IsConnected:                 weak == 1,
		StronglyConnectedComponents: strong,
		WeaklyConnectedComponents:   weak,
		MaxBetweenness:              maxBetweenness,
		TotalLoad:                   totalLoad,
		SmallWorldCoefficient:       smallWorldCoefficient(avgClustering, avgPathLength, n, m),
	}
}

// averagePathLength computes the mean unweighted shortest-path length.
// A weakly connected graph is measured inside its largest strongly
// connected component when that component has more than one node;
// otherwise the mean hop count over all reachable ordered pairs is used.
// No reachable pairs yields zero.
func averagePathLength(g *graph.Model) float64 {
	if weaklyConnectedComponents(g) == 1 {
		scc := largestSCC(g)
		if len(scc) > 1 {
			total := 0.0
			count := 0
			for v := range scc {
				for w, d := range bfsLengthsWithin(g, v, scc) {
					if w != v {
						total += float64(d)
						count++
					}
				}
			}
			if count > 0 {
				return total / float64(count)
			}
		}
	}

	total := 0.0
	count := 0
	for _, source := range g.Nodes() {
		for target, d := range bfsLengths(g, source) {
			if target != source {
				total += float64(d)
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// weightedAveragePathLength averages Dijkstra distances over all
// reachable ordered pairs; unreachable pairs are skipped, not penalized.
func weightedAveragePathLength(g *graph.Model) float64 {
	total := 0.0
	count := 0
	for _, source := range g.Nodes() {
		for target, d := range dijkstraLengths(g, source) {
			if target != source {
				total += d
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// graphDiameter is the longest shortest path within the graph when it is
// strongly connected, else within the largest SCC if that has more than
// one node, else zero.
func graphDiameter(g *graph.Model) int {
	scc := largestSCC(g)
	if len(scc) < 2 {
		return 0
	}
	diameter := 0
	for v := range scc {
		for w, d := range bfsLengthsWithin(g, v, scc) {
			if w != v && d > diameter {
				diameter = d
			}
		}
	}
	return diameter
}

// smallWorldCoefficient compares (clustering, path length) against an
// Erdos-Renyi baseline of the same (n, m). Values above 1 indicate
// stronger small-world structure than random.
func smallWorldCoefficient(clustering, pathLength float64, n, m int) float64 {
	if n < 3 || pathLength == 0 {
		return 0
	}

	p := float64(m) / float64(n*(n-1))
	randomClustering := p

	avgDegree := 2 * float64(m) / float64(n)
	var randomPathLength float64
	if avgDegree > 1 {
		randomPathLength = math.Log(float64(n)) / math.Log(avgDegree)
	} else {
		randomPathLength = float64(n) / 2
	}

	if randomClustering == 0 || randomPathLength == 0 {
		return 0
	}

	gamma := clustering / randomClustering
	lambda := pathLength / randomPathLength
	return gamma / lambda
}

// identifyHubsAndBottlenecks flags nodes above the degree and betweenness
// percentile thresholds and assigns vulnerability scores.
func (e *MetricsEngine) identifyHubsAndBottlenecks(nodeMetrics map[string]models.NodeMetrics, gm *models.GraphMetrics) {
	if len(nodeMetrics) == 0 {
		return
	}

	degrees := make([]float64, 0, len(nodeMetrics))
	betweenness := make([]float64, 0, len(nodeMetrics))
	for _, nm := range nodeMetrics {
		degrees = append(degrees, float64(nm.TotalDegree))
		betweenness = append(betweenness, nm.BetweennessCentrality)
	}

	hubThreshold := percentile(degrees, hubPercentile)
	bottleneckThreshold := percentile(betweenness, bottleneckPercentile)

	for name, nm := range nodeMetrics {
		if float64(nm.TotalDegree) >= hubThreshold {
			nm.IsHub = true
			gm.HubCount++
		}
		if nm.BetweennessCentrality >= bottleneckThreshold {
			nm.IsBottleneck = true
			gm.BottleneckCount++
		}
		nm.VulnerabilityScore = vulnerability(nm)
		nodeMetrics[name] = nm
	}
}

// vulnerability scores how much removing a node would hurt the network:
// 0.6 * betweenness + 0.4 * normalized total call load.
func vulnerability(nm models.NodeMetrics) float64 {
	load := nm.IncomingLoad + nm.OutgoingLoad
	normalized := math.Min(load/vulnerabilityMaxLoad, 1.0)
	return 0.6*nm.BetweennessCentrality + 0.4*normalized
}

// percentile computes the p-th percentile with linear interpolation
// between closest ranks.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
