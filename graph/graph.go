// ABOUTME: Directed weighted graph model for service dependencies
// ABOUTME: Holds nodes and edges with attributes; algorithms live in services

package graph

import (
	"fmt"
	"sort"

	"github.com/topologylab/smallworld/models"
)

// Model is a directed graph of services. At most one edge exists per
// ordered pair and self-loops are rejected. It carries no algorithms;
// the metrics and optimizer engines consume it read-only.
type Model struct {
	nodes map[string]models.ServiceNode
	out   map[string]map[string]models.DependencyEdge
	in    map[string]map[string]struct{}
}

// New returns an empty graph.
func New() *Model {
	return &Model{
		nodes: make(map[string]models.ServiceNode),
		out:   make(map[string]map[string]models.DependencyEdge),
		in:    make(map[string]map[string]struct{}),
	}
}

// FromTopology builds a graph from a validated topology. Nodes referenced
// only by an edge are auto-created with empty attributes.
func FromTopology(t models.Topology) (*Model, error) {
	m := New()
	for _, s := range t.Services {
		m.AddNode(s)
	}
	for _, e := range t.Edges {
		if err := m.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddNode inserts or replaces a node.
func (m *Model) AddNode(n models.ServiceNode) {
	m.nodes[n.Name] = n
}

// ensureNode auto-creates a node with empty attributes.
func (m *Model) ensureNode(name string) {
	if _, ok := m.nodes[name]; !ok {
		m.nodes[name] = models.ServiceNode{Name: name}
	}
}

// AddEdge inserts a dependency edge, auto-creating missing endpoints.
// Self-loops and duplicate ordered pairs are rejected.
func (m *Model) AddEdge(e models.DependencyEdge) error {
	if e.Source == e.Target {
		return fmt.Errorf("self-loop not allowed: %s -> %s", e.Source, e.Target)
	}
	if m.HasEdge(e.Source, e.Target) {
		return fmt.Errorf("duplicate edge: %s -> %s", e.Source, e.Target)
	}
	m.ensureNode(e.Source)
	m.ensureNode(e.Target)
	if m.out[e.Source] == nil {
		m.out[e.Source] = make(map[string]models.DependencyEdge)
	}
	if m.in[e.Target] == nil {
		m.in[e.Target] = make(map[string]struct{})
	}
	m.out[e.Source][e.Target] = e
	m.in[e.Target][e.Source] = struct{}{}
	return nil
}

// AddShortcut adds a new edge flagged as a shortcut. Returns false if the
// edge already exists or would be a self-loop.
func (m *Model) AddShortcut(source, target string, callRate, p50, p95, errorRate, cost float64) bool {
	err := m.AddEdge(models.DependencyEdge{
		Source:     source,
		Target:     target,
		CallRate:   callRate,
		P50Latency: p50,
		P95Latency: p95,
		ErrorRate:  errorRate,
		Cost:       cost,
		IsShortcut: true,
	})
	return err == nil
}

// RemoveEdge deletes an edge. Returns false if it did not exist.
func (m *Model) RemoveEdge(source, target string) bool {
	if !m.HasEdge(source, target) {
		return false
	}
	delete(m.out[source], target)
	delete(m.in[target], source)
	return true
}

// HasNode reports whether a service exists in the graph.
func (m *Model) HasNode(name string) bool {
	_, ok := m.nodes[name]
	return ok
}

// HasEdge reports whether a dependency exists between two services.
func (m *Model) HasEdge(source, target string) bool {
	_, ok := m.out[source][target]
	return ok
}

// Node returns a node's attributes.
func (m *Model) Node(name string) (models.ServiceNode, bool) {
	n, ok := m.nodes[name]
	return n, ok
}

// Edge returns an edge's attributes.
func (m *Model) Edge(source, target string) (models.DependencyEdge, bool) {
	e, ok := m.out[source][target]
	return e, ok
}

// Zone returns a node's deployment zone, empty if unknown.
func (m *Model) Zone(name string) string {
	return m.nodes[name].Zone
}

// Nodes returns all node names in sorted order for deterministic iteration.
func (m *Model) Nodes() []string {
	names := make([]string, 0, len(m.nodes))
	for name := range m.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns all edges sorted by (source, target).
func (m *Model) Edges() []models.DependencyEdge {
	edges := make([]models.DependencyEdge, 0, m.EdgeCount())
	for _, targets := range m.out {
		for _, e := range targets {
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Successors returns the services this service calls, sorted.
func (m *Model) Successors(name string) []string {
	targets := make([]string, 0, len(m.out[name]))
	for t := range m.out[name] {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Predecessors returns the services that call this service, sorted.
func (m *Model) Predecessors(name string) []string {
	sources := make([]string, 0, len(m.in[name]))
	for s := range m.in[name] {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}

// UndirectedNeighbors returns the neighbor set of the undirected
// projection (a neighbor exists if either direction has an edge).
func (m *Model) UndirectedNeighbors(name string) []string {
	set := make(map[string]struct{}, len(m.out[name])+len(m.in[name]))
	for t := range m.out[name] {
		set[t] = struct{}{}
	}
	for s := range m.in[name] {
		set[s] = struct{}{}
	}
	neighbors := make([]string, 0, len(set))
	for n := range set {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}

// HasUndirectedEdge reports whether an edge exists in either direction.
func (m *Model) HasUndirectedEdge(a, b string) bool {
	return m.HasEdge(a, b) || m.HasEdge(b, a)
}

// InDegree returns the number of incoming edges.
func (m *Model) InDegree(name string) int {
	return len(m.in[name])
}

// OutDegree returns the number of outgoing edges.
func (m *Model) OutDegree(name string) int {
	return len(m.out[name])
}

// NodeCount returns the number of services.
func (m *Model) NodeCount() int {
	return len(m.nodes)
}

// EdgeCount returns the number of dependencies.
func (m *Model) EdgeCount() int {
	count := 0
	for _, targets := range m.out {
		count += len(targets)
	}
	return count
}

// Copy returns a deep copy. Evaluative trials mutate copies, never the
// caller's graph.
func (m *Model) Copy() *Model {
	c := New()
	for name, n := range m.nodes {
		c.nodes[name] = n
	}
	for source, targets := range m.out {
		c.out[source] = make(map[string]models.DependencyEdge, len(targets))
		for target, e := range targets {
			c.out[source][target] = e
		}
	}
	for target, sources := range m.in {
		c.in[target] = make(map[string]struct{}, len(sources))
		for source := range sources {
			c.in[target][source] = struct{}{}
		}
	}
	return c
}

// ToTopology exports the graph back to its wire form.
func (m *Model) ToTopology() models.Topology {
	t := models.Topology{
		Services: make([]models.ServiceNode, 0, m.NodeCount()),
		Edges:    m.Edges(),
	}
	for _, name := range m.Nodes() {
		t.Services = append(t.Services, m.nodes[name])
	}
	return t
}
