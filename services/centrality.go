// ABOUTME: Centrality and clustering algorithms over the directed graph
// ABOUTME: Brandes betweenness, closeness, undirected clustering, PageRank

package services

import "github.com/topologylab/smallworld/graph"

const (
	pageRankDamping   = 0.85
	pageRankMaxIter   = 100
	pageRankTolerance = 1e-6
)

// betweennessCentrality computes normalized directed betweenness using
// Brandes' algorithm: the fraction of all-pairs shortest paths passing
// through each node, scaled by 1/((n-1)(n-2)). Graphs with fewer than
// three nodes have no interior paths, so every value is zero.
func betweennessCentrality(g *graph.Model) map[string]float64 {
	nodes := g.Nodes()
	n := len(nodes)
	bc := make(map[string]float64, n)
	for _, v := range nodes {
		bc[v] = 0
	}
	if n < 3 {
		return bc
	}

	for _, s := range nodes {
		// Single-source shortest paths with path counts.
		var order []string
		pred := make(map[string][]string, n)
		sigma := map[string]float64{s: 1}
		dist := map[string]int{s: 0}
		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			order = append(order, v)
			for _, w := range g.Successors(v) {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		// Dependency accumulation in reverse BFS order.
		delta := make(map[string]float64, len(order))
		for i := len(order) - 1; i >= 0; i-- {
			w := order[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				bc[w] += delta[w]
			}
		}
	}

	scale := 1.0 / float64((n-1)*(n-2))
	for v := range bc {
		bc[v] *= scale
	}
	return bc
}

// closenessCentrality computes, per node, the reciprocal of its mean
// shortest-path distance to the nodes it can reach. Nodes that reach
// nothing score zero.
func closenessCentrality(g *graph.Model) map[string]float64 {
	closeness := make(map[string]float64, g.NodeCount())
	for _, u := range g.Nodes() {
		total := 0
		reachable := 0
		for v, d := range bfsLengths(g, u) {
			if v == u {
				continue
			}
			total += d
			reachable++
		}
		if total > 0 {
			closeness[u] = float64(reachable) / float64(total)
		} else {
			closeness[u] = 0
		}
	}
	return closeness
}

// clusteringCoefficients computes per-node clustering on the undirected
// projection: the fraction of neighbor pairs that are themselves
// connected. Nodes with fewer than two neighbors score zero.
func clusteringCoefficients(g *graph.Model) map[string]float64 {
	coeffs := make(map[string]float64, g.NodeCount())
	for _, v := range g.Nodes() {
		neighbors := g.UndirectedNeighbors(v)
		k := len(neighbors)
		if k < 2 {
			coeffs[v] = 0
			continue
		}
		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if g.HasUndirectedEdge(neighbors[i], neighbors[j]) {
					links++
				}
			}
		}
		coeffs[v] = 2 * float64(links) / float64(k*(k-1))
	}
	return coeffs
}

// pageRank computes damped PageRank by power iteration. Dangling mass is
// spread uniformly. If the iteration fails to converge the documented
// fallback applies: uniform 1/n for every node.
func pageRank(g *graph.Model) map[string]float64 {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return map[string]float64{}
	}

	uniform := 1.0 / float64(n)
	rank := make(map[string]float64, n)
	for _, v := range nodes {
		rank[v] = uniform
	}

	for iter := 0; iter < pageRankMaxIter; iter++ {
		dangling := 0.0
		for _, v := range nodes {
			if g.OutDegree(v) == 0 {
				dangling += rank[v]
			}
		}
		base := (1-pageRankDamping)*uniform + pageRankDamping*dangling*uniform

		next := make(map[string]float64, n)
		for _, v := range nodes {
			next[v] = base
		}
		for _, u := range nodes {
			out := g.Successors(u)
			if len(out) == 0 {
				continue
			}
			share := pageRankDamping * rank[u] / float64(len(out))
			for _, v := range out {
				next[v] += share
			}
		}

		diff := 0.0
		for _, v := range nodes {
			d := next[v] - rank[v]
			if d < 0 {
				d = -d
			}
			diff += d
		}
		rank = next
		if diff < float64(n)*pageRankTolerance {
			return rank
		}
	}

	// No convergence: fall back to the uniform distribution.
	for _, v := range nodes {
		rank[v] = uniform
	}
	return rank
}
