// ABOUTME: Derived metric models for nodes and the whole graph
// ABOUTME: Values are computed at full precision and rounded only for serialization

package models

import "math"

// NodeMetrics holds per-service metrics derived from a graph snapshot.
type NodeMetrics struct {
	Name                  string  `json:"name"`
	InDegree              int     `json:"in_degree"`
	OutDegree             int     `json:"out_degree"`
	TotalDegree           int     `json:"total_degree"`
	BetweennessCentrality float64 `json:"betweenness_centrality"`
	ClosenessCentrality   float64 `json:"closeness_centrality"`
	ClusteringCoefficient float64 `json:"clustering_coefficient"`
	PageRank              float64 `json:"pagerank"`
	IncomingLoad          float64 `json:"incoming_load"`
	OutgoingLoad          float64 `json:"outgoing_load"`
	IsHub                 bool    `json:"is_hub"`
	IsBottleneck          bool    `json:"is_bottleneck"`
	VulnerabilityScore    float64 `json:"vulnerability_score"`
}

// GraphMetrics holds global metrics derived from a graph snapshot.
type GraphMetrics struct {
	NodeCount                   int     `json:"node_count"`
	EdgeCount                   int     `json:"edge_count"`
	Density                     float64 `json:"density"`
	AveragePathLength           float64 `json:"average_path_length"`
	WeightedAveragePathLength   float64 `json:"weighted_average_path_length"`
	Diameter                    int     `json:"diameter"`
	AverageClustering           float64 `json:"average_clustering"`
	IsConnected                 bool    `json:"is_connected"`
	StronglyConnectedComponents int     `json:"strongly_connected_components"`
	WeaklyConnectedComponents   int     `json:"weakly_connected_components"`
	MaxBetweenness              float64 `json:"max_betweenness"`
	TotalLoad                   float64 `json:"total_load"`
	HubCount                    int     `json:"hub_count"`
	BottleneckCount             int     `json:"bottleneck_count"`
	SmallWorldCoefficient       float64 `json:"small_world_coefficient"`
}

// Round returns a value rounded to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Rounded returns a copy with fields rounded to wire precision:
// centralities 6dp, loads 2dp, vulnerability 4dp.
func (nm NodeMetrics) Rounded() NodeMetrics {
	nm.BetweennessCentrality = Round(nm.BetweennessCentrality, 6)
	nm.ClosenessCentrality = Round(nm.ClosenessCentrality, 6)
	nm.ClusteringCoefficient = Round(nm.ClusteringCoefficient, 6)
	nm.PageRank = Round(nm.PageRank, 6)
	nm.IncomingLoad = Round(nm.IncomingLoad, 2)
	nm.OutgoingLoad = Round(nm.OutgoingLoad, 2)
	nm.VulnerabilityScore = Round(nm.VulnerabilityScore, 4)
	return nm
}

// Rounded returns a copy with fields rounded to wire precision:
// ratios 6dp, path lengths 4dp, loads 2dp.
func (gm GraphMetrics) Rounded() GraphMetrics {
	gm.Density = Round(gm.Density, 6)
	gm.AveragePathLength = Round(gm.AveragePathLength, 4)
	gm.WeightedAveragePathLength = Round(gm.WeightedAveragePathLength, 4)
	gm.AverageClustering = Round(gm.AverageClustering, 6)
	gm.MaxBetweenness = Round(gm.MaxBetweenness, 6)
	gm.TotalLoad = Round(gm.TotalLoad, 2)
	gm.SmallWorldCoefficient = Round(gm.SmallWorldCoefficient, 4)
	return gm
}
