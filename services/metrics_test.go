// ABOUTME: Unit tests for the metrics engine
// ABOUTME: Covers centralities, path lengths, small-world coefficient, and hubs

package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/topologylab/smallworld/graph"
	"github.com/topologylab/smallworld/models"
)

func mustGraph(t *testing.T, edges [][2]string) *graph.Model {
	t.Helper()
	g := graph.New()
	for _, e := range edges {
		if err := g.AddEdge(models.DependencyEdge{Source: e[0], Target: e[1], CallRate: 10, P50Latency: 5}); err != nil {
			t.Fatalf("AddEdge(%v) failed: %v", e, err)
		}
	}
	return g
}

func TestCalculateAll_EmptyGraph(t *testing.T) {
	e := NewMetricsEngine()
	gm, nodes := e.CalculateAll(graph.New())

	if gm != (models.GraphMetrics{}) {
		t.Errorf("Expected zero-valued graph metrics, got %+v", gm)
	}
	if nodes == nil || len(nodes) != 0 {
		t.Errorf("Expected empty non-nil node map, got %v", nodes)
	}
}

func TestDensity(t *testing.T) {
	g := mustGraph(t, [][2]string{{"a", "b"}, {"b", "c"}})
	gm, _ := NewMetricsEngine().CalculateAll(g)

	want := 2.0 / 6.0
	if math.Abs(gm.Density-want) > 1e-9 {
		t.Errorf("Density = %v, want %v", gm.Density, want)
	}
}

func TestBetweenness_SixChain(t *testing.T) {
	// a -> b -> c -> d -> e -> f
	g := mustGraph(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}, {"e", "f"}})
	gm, nodes := NewMetricsEngine().CalculateAll(g)

	// Node i of the chain sits on i*(5-i) shortest paths, scaled by 1/20.
	want := map[string]float64{
		"a": 0, "b": 4.0 / 20, "c": 6.0 / 20, "d": 6.0 / 20, "e": 4.0 / 20, "f": 0,
	}
	for name, w := range want {
		if got := nodes[name].BetweennessCentrality; math.Abs(got-w) > 1e-9 {
			t.Errorf("betweenness[%s] = %v, want %v", name, got, w)
		}
	}
	if math.Abs(gm.MaxBetweenness-0.3) > 1e-9 {
		t.Errorf("MaxBetweenness = %v, want 0.3", gm.MaxBetweenness)
	}
	// p80 of {0, 0, 0.2, 0.2, 0.3, 0.3} is 0.3, so c and d are bottlenecks.
	if gm.BottleneckCount != 2 {
		t.Errorf("BottleneckCount = %d, want 2", gm.BottleneckCount)
	}
	if !nodes["c"].IsBottleneck || !nodes["d"].IsBottleneck {
		t.Error("Expected c and d to be bottlenecks")
	}
}

func TestBetweenness_TinyGraphZero(t *testing.T) {
	g := mustGraph(t, [][2]string{{"a", "b"}})
	_, nodes := NewMetricsEngine().CalculateAll(g)

	for name, nm := range nodes {
		if nm.BetweennessCentrality != 0 {
			t.Errorf("betweenness[%s] = %v, want 0 for n<3", name, nm.BetweennessCentrality)
		}
	}
}

func TestCentralities_InRange(t *testing.T) {
	g := mustGraph(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "e"}, {"e", "b"},
	})
	_, nodes := NewMetricsEngine().CalculateAll(g)

	for name, nm := range nodes {
		for metric, v := range map[string]float64{
			"betweenness": nm.BetweennessCentrality,
			"closeness":   nm.ClosenessCentrality,
			"clustering":  nm.ClusteringCoefficient,
			"pagerank":    nm.PageRank,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s[%s] is not finite: %v", metric, name, v)
			}
			if v < 0 || v > 1 {
				t.Errorf("%s[%s] = %v, want within [0,1]", metric, name, v)
			}
		}
	}
}

func TestPageRank_SumsToOne(t *testing.T) {
	g := mustGraph(t, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	ranks := pageRank(g)

	sum := 0.0
	for _, r := range ranks {
		sum += r
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("PageRank sum = %v, want 1.0", sum)
	}
}

func TestAveragePathLength_Cycle(t *testing.T) {
	// 3-cycle: every node reaches the others at distances 1 and 2.
	g := mustGraph(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	gm, _ := NewMetricsEngine().CalculateAll(g)

	if math.Abs(gm.AveragePathLength-1.5) > 1e-9 {
		t.Errorf("AveragePathLength = %v, want 1.5", gm.AveragePathLength)
	}
	if gm.Diameter != 2 {
		t.Errorf("Diameter = %d, want 2", gm.Diameter)
	}
	if gm.StronglyConnectedComponents != 1 {
		t.Errorf("SCCs = %d, want 1", gm.StronglyConnectedComponents)
	}
}

func TestAveragePathLength_ChainFallback(t *testing.T) {
	// Weakly connected but trivial SCCs: reachable ordered pairs are
	// a->b (1), a->c (2), b->c (1), so the mean is 4/3.
	g := mustGraph(t, [][2]string{{"a", "b"}, {"b", "c"}})
	gm, _ := NewMetricsEngine().CalculateAll(g)

	if math.Abs(gm.AveragePathLength-4.0/3.0) > 1e-9 {
		t.Errorf("AveragePathLength = %v, want 4/3", gm.AveragePathLength)
	}
	// Largest SCC is a single node, so the diameter is zero.
	if gm.Diameter != 0 {
		t.Errorf("Diameter = %d, want 0", gm.Diameter)
	}
}

func TestWeightedAveragePathLength_SkipsUnreachable(t *testing.T) {
	g := graph.New()
	g.AddEdge(models.DependencyEdge{Source: "a", Target: "b", P50Latency: 10})
	g.AddNode(models.ServiceNode{Name: "island"})

	gm, _ := NewMetricsEngine().CalculateAll(g)
	if math.Abs(gm.WeightedAveragePathLength-10) > 1e-9 {
		t.Errorf("WeightedAveragePathLength = %v, want 10", gm.WeightedAveragePathLength)
	}
	if gm.IsConnected {
		t.Error("Graph with island should not be connected")
	}
	if gm.WeaklyConnectedComponents != 2 {
		t.Errorf("WeaklyConnectedComponents = %d, want 2", gm.WeaklyConnectedComponents)
	}
}

func TestSmallWorldCoefficient_ZeroConditions(t *testing.T) {
	engine := NewMetricsEngine()

	// Fewer than three nodes.
	small := mustGraph(t, [][2]string{{"a", "b"}})
	if gm, _ := engine.CalculateAll(small); gm.SmallWorldCoefficient != 0 {
		t.Errorf("Expected 0 for n<3, got %v", gm.SmallWorldCoefficient)
	}

	// No edges means zero path length.
	empty := graph.New()
	for _, name := range []string{"a", "b", "c"} {
		empty.AddNode(models.ServiceNode{Name: name})
	}
	if gm, _ := engine.CalculateAll(empty); gm.SmallWorldCoefficient != 0 {
		t.Errorf("Expected 0 for edgeless graph, got %v", gm.SmallWorldCoefficient)
	}
}

func TestStarHub(t *testing.T) {
	edges := [][2]string{}
	for i := 0; i < 6; i++ {
		edges = append(edges, [2]string{"hub", fmt.Sprintf("leaf%d", i)})
	}
	g := mustGraph(t, edges)
	gm, nodes := NewMetricsEngine().CalculateAll(g)

	if !nodes["hub"].IsHub {
		t.Error("Star center should be flagged as hub")
	}
	if gm.HubCount < 1 {
		t.Errorf("HubCount = %d, want at least 1", gm.HubCount)
	}
	for i := 0; i < 6; i++ {
		leaf := nodes[fmt.Sprintf("leaf%d", i)]
		if leaf.TotalDegree >= nodes["hub"].TotalDegree {
			t.Errorf("leaf%d degree %d should be below hub degree %d", i, leaf.TotalDegree, nodes["hub"].TotalDegree)
		}
	}
}

func TestVulnerability_Bounded(t *testing.T) {
	nm := models.NodeMetrics{BetweennessCentrality: 1.0, IncomingLoad: 50000, OutgoingLoad: 50000}
	if v := vulnerability(nm); math.Abs(v-1.0) > 1e-9 {
		t.Errorf("vulnerability = %v, want 1.0 at saturation", v)
	}

	nm = models.NodeMetrics{BetweennessCentrality: 0.5, IncomingLoad: 5000, OutgoingLoad: 0}
	want := 0.6*0.5 + 0.4*0.5
	if v := vulnerability(nm); math.Abs(v-want) > 1e-9 {
		t.Errorf("vulnerability = %v, want %v", v, want)
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{50, 3},
		{100, 5},
		{70, 3.8},
	}
	for _, tt := range tests {
		if got := percentile(values, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if got := percentile([]float64{7}, 80); got != 7 {
		t.Errorf("percentile single value = %v, want 7", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile(nil) = %v, want 0", got)
	}
}

func TestObjective(t *testing.T) {
	e := NewMetricsEngine()
	gm := models.GraphMetrics{AveragePathLength: 2.0, MaxBetweenness: 0.5}
	w := models.ObjectiveWeights{Alpha: 1.0, Beta: 1.0, Gamma: 0.1}

	got := e.Objective(gm, 10, w)
	want := 1.0*2.0 + 1.0*0.5 + 0.1*10
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Objective = %v, want %v", got, want)
	}
}

func TestTotalCost(t *testing.T) {
	g := graph.New()
	g.AddEdge(models.DependencyEdge{Source: "a", Target: "b", Cost: 1.5})
	g.AddEdge(models.DependencyEdge{Source: "b", Target: "c", Cost: 2.5})

	if got := NewMetricsEngine().TotalCost(g); math.Abs(got-4.0) > 1e-9 {
		t.Errorf("TotalCost = %v, want 4.0", got)
	}
}

func TestClustering_Triangle(t *testing.T) {
	// Directed triangle has full undirected clustering.
	g := mustGraph(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	coeffs := clusteringCoefficients(g)

	for name, c := range coeffs {
		if math.Abs(c-1.0) > 1e-9 {
			t.Errorf("clustering[%s] = %v, want 1.0", name, c)
		}
	}
}

func TestCallLoads(t *testing.T) {
	g := graph.New()
	g.AddEdge(models.DependencyEdge{Source: "a", Target: "b", CallRate: 100})
	g.AddEdge(models.DependencyEdge{Source: "c", Target: "b", CallRate: 50})

	incoming, outgoing := callLoads(g)
	if incoming["b"] != 150 {
		t.Errorf("incoming[b] = %v, want 150", incoming["b"])
	}
	if outgoing["a"] != 100 {
		t.Errorf("outgoing[a] = %v, want 100", outgoing["a"])
	}
	if incoming["a"] != 0 {
		t.Errorf("incoming[a] = %v, want 0", incoming["a"])
	}
}
