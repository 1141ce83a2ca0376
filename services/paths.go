// ABOUTME: Shortest-path and connectivity primitives over the graph model
// ABOUTME: BFS hop lengths, Dijkstra weighted lengths, strong and weak components

package services

import (
	"container/heap"

	"github.com/topologylab/smallworld/graph"
)

// bfsLengths returns hop distances from source to every reachable node,
// including source itself at distance 0.
func bfsLengths(g *graph.Model, source string) map[string]int {
	return bfsLengthsWithin(g, source, nil)
}

// bfsLengthsWithin restricts the search to the induced subgraph of
// `within` when non-nil.
func bfsLengthsWithin(g *graph.Model, source string, within map[string]bool) map[string]int {
	dist := map[string]int{source: 0}
	queue := []string{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Successors(u) {
			if within != nil && !within[v] {
				continue
			}
			if _, seen := dist[v]; seen {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}
	return dist
}

// pathLength returns the hop distance from source to target and whether
// any path exists.
func pathLength(g *graph.Model, source, target string) (int, bool) {
	dist := bfsLengths(g, source)
	d, ok := dist[target]
	return d, ok
}

// weightItem is a priority queue entry for Dijkstra.
type weightItem struct {
	node string
	dist float64
}

type weightQueue []weightItem

func (q weightQueue) Len() int            { return len(q) }
func (q weightQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q weightQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *weightQueue) Push(x interface{}) { *q = append(*q, x.(weightItem)) }
func (q *weightQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// dijkstraLengths returns weighted shortest-path distances from source to
// every reachable node. Edge weights are always positive (p50 latency or
// 1.0), so Dijkstra applies.
func dijkstraLengths(g *graph.Model, source string) map[string]float64 {
	dist := map[string]float64{source: 0}
	done := make(map[string]bool)
	q := &weightQueue{{node: source, dist: 0}}
	for q.Len() > 0 {
		item := heap.Pop(q).(weightItem)
		if done[item.node] {
			continue
		}
		done[item.node] = true
		for _, v := range g.Successors(item.node) {
			e, _ := g.Edge(item.node, v)
			d := item.dist + e.Weight()
			if cur, seen := dist[v]; !seen || d < cur {
				dist[v] = d
				heap.Push(q, weightItem{node: v, dist: d})
			}
		}
	}
	return dist
}

// stronglyConnectedComponents returns all SCCs using Tarjan's algorithm.
func stronglyConnectedComponents(g *graph.Model) [][]string {
	index := 0
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var components [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Successors(v) {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var component []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			components = append(components, component)
		}
	}

	for _, v := range g.Nodes() {
		if _, seen := indices[v]; !seen {
			strongconnect(v)
		}
	}
	return components
}

// largestSCC returns the biggest strongly connected component as a set.
func largestSCC(g *graph.Model) map[string]bool {
	var largest []string
	for _, c := range stronglyConnectedComponents(g) {
		if len(c) > len(largest) {
			largest = c
		}
	}
	set := make(map[string]bool, len(largest))
	for _, v := range largest {
		set[v] = true
	}
	return set
}

// weaklyConnectedComponents counts components of the undirected projection.
func weaklyConnectedComponents(g *graph.Model) int {
	visited := make(map[string]bool)
	count := 0
	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}
		count++
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range g.UndirectedNeighbors(u) {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
	}
	return count
}
