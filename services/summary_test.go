// ABOUTME: Unit tests for graph summaries and recommendation text
// ABOUTME: Covers highlight selection and the recommendation triggers

package services

import (
	"strings"
	"testing"

	"github.com/topologylab/smallworld/models"
)

func TestBuildSummary_Highlights(t *testing.T) {
	gm := models.GraphMetrics{NodeCount: 3, EdgeCount: 2, SmallWorldCoefficient: 1.2}
	nodes := map[string]models.NodeMetrics{
		"api":  {Name: "api", TotalDegree: 4, IncomingLoad: 10, OutgoingLoad: 5, IsHub: true},
		"db":   {Name: "db", TotalDegree: 2, IncomingLoad: 500, IsBottleneck: true},
		"auth": {Name: "auth", TotalDegree: 1, IncomingLoad: 20},
	}

	s := BuildSummary(gm, nodes, nil)

	if s.TotalServices != 3 || s.TotalDependencies != 2 {
		t.Errorf("Counts = %d/%d", s.TotalServices, s.TotalDependencies)
	}
	if len(s.HubServices) != 1 || s.HubServices[0] != "api" {
		t.Errorf("HubServices = %v", s.HubServices)
	}
	if len(s.BottleneckServices) != 1 || s.BottleneckServices[0] != "db" {
		t.Errorf("BottleneckServices = %v", s.BottleneckServices)
	}
	if s.MostConnectedService != "api" {
		t.Errorf("MostConnectedService = %q", s.MostConnectedService)
	}
	if s.HighestLoadService != "db" {
		t.Errorf("HighestLoadService = %q", s.HighestLoadService)
	}
	if !s.IsSmallWorld {
		t.Error("Coefficient 1.2 should mark the graph small-world")
	}
}

func TestRecommendations_Triggers(t *testing.T) {
	tests := []struct {
		name        string
		gm          models.GraphMetrics
		bottlenecks []string
		shortcuts   []models.ShortcutCandidate
		wantPhrase  string
	}{
		{
			name:       "poor small world",
			gm:         models.GraphMetrics{IsConnected: true, SmallWorldCoefficient: 0.2},
			wantPhrase: "poor small-world properties",
		},
		{
			name:       "strong small world",
			gm:         models.GraphMetrics{IsConnected: true, SmallWorldCoefficient: 2.0},
			wantPhrase: "strong small-world properties",
		},
		{
			name:       "disconnected",
			gm:         models.GraphMetrics{SmallWorldCoefficient: 1.0, WeaklyConnectedComponents: 3},
			wantPhrase: "3 disconnected components",
		},
		{
			name:        "overloaded bottlenecks",
			gm:          models.GraphMetrics{IsConnected: true, SmallWorldCoefficient: 1.0, MaxBetweenness: 0.8},
			bottlenecks: []string{"gw", "db"},
			wantPhrase:  "risk of overload: gw, db",
		},
		{
			name:       "long paths",
			gm:         models.GraphMetrics{IsConnected: true, SmallWorldCoefficient: 1.0, AveragePathLength: 5.5},
			wantPhrase: "High average path length",
		},
		{
			name:       "shortcuts found",
			gm:         models.GraphMetrics{IsConnected: true, SmallWorldCoefficient: 1.0},
			shortcuts:  []models.ShortcutCandidate{{Source: "a", Target: "b"}},
			wantPhrase: "Found 1 beneficial shortcut",
		},
		{
			name:       "near optimal",
			gm:         models.GraphMetrics{IsConnected: true, SmallWorldCoefficient: 1.0},
			wantPhrase: "near-optimal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := recommendations(tt.gm, tt.bottlenecks, tt.shortcuts)
			joined := strings.Join(recs, "\n")
			if !strings.Contains(joined, tt.wantPhrase) {
				t.Errorf("Recommendations missing %q:\n%s", tt.wantPhrase, joined)
			}
		})
	}
}

func TestRecommendations_BottleneckListCapped(t *testing.T) {
	gm := models.GraphMetrics{IsConnected: true, SmallWorldCoefficient: 1.0, MaxBetweenness: 0.9}
	recs := recommendations(gm, []string{"a", "b", "c", "d", "e"}, nil)

	joined := strings.Join(recs, "\n")
	if !strings.Contains(joined, "a, b, c") {
		t.Errorf("Expected top 3 bottlenecks, got:\n%s", joined)
	}
	if strings.Contains(joined, "d") && strings.Contains(joined, "overload: a, b, c, d") {
		t.Errorf("List should be capped at 3:\n%s", joined)
	}
}
