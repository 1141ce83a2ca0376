// ABOUTME: Unit tests for topology validation
// ABOUTME: Covers name rules, edge rules, and cross-record checks

package models

import (
	"strings"
	"testing"
)

func TestServiceNodeValidate_TrimsAndDefaults(t *testing.T) {
	s := ServiceNode{Name: "  api-gateway  ", Replicas: 2}

	if err := s.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.Name != "api-gateway" {
		t.Errorf("Expected trimmed name api-gateway, got %q", s.Name)
	}
	if s.Criticality != CriticalityMedium {
		t.Errorf("Expected default criticality medium, got %q", s.Criticality)
	}
}

func TestServiceNodeValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		node ServiceNode
	}{
		{"empty name", ServiceNode{Name: "   "}},
		{"bad charset", ServiceNode{Name: "api gateway"}},
		{"too long", ServiceNode{Name: strings.Repeat("a", 257)}},
		{"negative replicas", ServiceNode{Name: "api", Replicas: -1}},
		{"unknown criticality", ServiceNode{Name: "api", Criticality: "extreme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.node.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestDependencyEdgeValidate(t *testing.T) {
	tests := []struct {
		name    string
		edge    DependencyEdge
		wantErr bool
	}{
		{"valid", DependencyEdge{Source: "a", Target: "b", CallRate: 100, P50Latency: 5, P95Latency: 12}, false},
		{"self loop", DependencyEdge{Source: "a", Target: "a"}, true},
		{"negative call rate", DependencyEdge{Source: "a", Target: "b", CallRate: -1}, true},
		{"negative p50", DependencyEdge{Source: "a", Target: "b", P50Latency: -1}, true},
		{"error rate above one", DependencyEdge{Source: "a", Target: "b", ErrorRate: 1.5}, true},
		{"negative cost", DependencyEdge{Source: "a", Target: "b", Cost: -0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edge.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDependencyEdgeValidate_TrimmedSelfLoop(t *testing.T) {
	e := DependencyEdge{Source: "api ", Target: " api"}
	if err := e.Validate(); err == nil {
		t.Error("Expected self-loop error after trimming, got nil")
	}
}

func TestTopologyValidate_DuplicateService(t *testing.T) {
	topo := Topology{
		Services: []ServiceNode{{Name: "api"}, {Name: "api"}},
	}
	err := topo.Validate()
	if err == nil {
		t.Fatal("Expected duplicate name error, got nil")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	if verr.Field != "services.name" {
		t.Errorf("Expected field services.name, got %q", verr.Field)
	}
}

func TestEdgeWeight(t *testing.T) {
	if w := (DependencyEdge{P50Latency: 7.5}).Weight(); w != 7.5 {
		t.Errorf("Expected weight 7.5, got %v", w)
	}
	if w := (DependencyEdge{}).Weight(); w != 1.0 {
		t.Errorf("Expected fallback weight 1.0, got %v", w)
	}
}

func TestParseGoal(t *testing.T) {
	tests := []struct {
		name      string
		wantAlpha float64
		wantBeta  float64
		wantGamma float64
		wantErr   bool
	}{
		{"latency", 2.0, 0.5, 0.1, false},
		{"paths", 2.0, 0.3, 0.0, false},
		{"load", 0.5, 2.0, 0.1, false},
		{"balanced", 1.0, 1.0, 0.1, false},
		{"fastest", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, w, err := ParseGoal(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGoal(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if w.Alpha != tt.wantAlpha || w.Beta != tt.wantBeta || w.Gamma != tt.wantGamma {
				t.Errorf("ParseGoal(%q) weights = %+v", tt.name, w)
			}
		})
	}
}

func TestOptimizationOptionsValidate(t *testing.T) {
	neg := -0.5
	tests := []struct {
		name    string
		opts    OptimizationOptions
		wantErr bool
	}{
		{"empty", OptimizationOptions{}, false},
		{"valid goal and k", OptimizationOptions{Goal: "latency", K: 10}, false},
		{"unknown goal", OptimizationOptions{Goal: "speed"}, true},
		{"k over max", OptimizationOptions{K: 101}, true},
		{"negative k", OptimizationOptions{K: -1}, true},
		{"negative alpha", OptimizationOptions{Alpha: &neg}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate(100)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.23456789, 4); got != 1.2346 {
		t.Errorf("Round(1.23456789, 4) = %v, want 1.2346", got)
	}
	if got := Round(2.5, 0); got != 3 {
		t.Errorf("Round(2.5, 0) = %v, want 3", got)
	}
}
