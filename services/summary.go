// ABOUTME: Builds operator-facing graph summaries and plain-text recommendations
// ABOUTME: Condenses metrics and shortcut results into actionable highlights

package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/topologylab/smallworld/models"
)

// BuildSummary condenses an analysis into highlights: hub and bottleneck
// services, the most connected and highest load nodes, and text
// recommendations.
func BuildSummary(gm models.GraphMetrics, nodeMetrics map[string]models.NodeMetrics, shortcuts []models.ShortcutCandidate) models.GraphSummary {
	names := make([]string, 0, len(nodeMetrics))
	for name := range nodeMetrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var hubs, bottlenecks []string
	var mostConnected, highestLoad string
	bestDegree := -1
	bestLoad := -1.0
	for _, name := range names {
		nm := nodeMetrics[name]
		if nm.IsHub {
			hubs = append(hubs, name)
		}
		if nm.IsBottleneck {
			bottlenecks = append(bottlenecks, name)
		}
		if nm.TotalDegree > bestDegree {
			bestDegree = nm.TotalDegree
			mostConnected = name
		}
		if load := nm.IncomingLoad + nm.OutgoingLoad; load > bestLoad {
			bestLoad = load
			highestLoad = name
		}
	}

	return models.GraphSummary{
		TotalServices:        gm.NodeCount,
		TotalDependencies:    gm.EdgeCount,
		HubServices:          hubs,
		BottleneckServices:   bottlenecks,
		MostConnectedService: mostConnected,
		HighestLoadService:   highestLoad,
		IsSmallWorld:         gm.SmallWorldCoefficient > 1.0,
		Recommendations:      recommendations(gm, bottlenecks, shortcuts),
	}
}

// recommendations produces human-readable guidance from the metrics.
func recommendations(gm models.GraphMetrics, bottlenecks []string, shortcuts []models.ShortcutCandidate) []string {
	var recs []string

	if gm.SmallWorldCoefficient < 0.5 {
		recs = append(recs, "Graph has poor small-world properties. Consider adding shortcuts to reduce path lengths.")
	} else if gm.SmallWorldCoefficient > 1.5 {
		recs = append(recs, "Graph shows strong small-world properties. Topology is well-optimized.")
	}

	if !gm.IsConnected {
		recs = append(recs, fmt.Sprintf("Warning: Graph has %d disconnected components.", gm.WeaklyConnectedComponents))
	}

	if gm.MaxBetweenness > 0.5 && len(bottlenecks) > 0 {
		top := bottlenecks
		if len(top) > 3 {
			top = top[:3]
		}
		recs = append(recs, fmt.Sprintf("High betweenness centrality detected. Services at risk of overload: %s", strings.Join(top, ", ")))
	}

	if gm.AveragePathLength > 4 {
		recs = append(recs, "High average path length detected. Multi-hop calls may cause latency issues.")
	}

	if len(shortcuts) > 0 {
		recs = append(recs, fmt.Sprintf("Found %d beneficial shortcut(s) that could improve topology.", len(shortcuts)))
	} else {
		recs = append(recs, "No beneficial shortcuts identified. Current topology may be near-optimal.")
	}

	return recs
}
