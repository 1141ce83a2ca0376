// ABOUTME: Topology file loading and validation
// ABOUTME: Reads JSON topology documents into validated graph models

package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/topologylab/smallworld/graph"
	"github.com/topologylab/smallworld/models"
)

// FromBytes parses and validates a JSON topology document.
func FromBytes(data []byte) (models.Topology, error) {
	var topo models.Topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return models.Topology{}, fmt.Errorf("parse topology: %w", err)
	}
	if err := topo.Validate(); err != nil {
		return models.Topology{}, err
	}
	return topo, nil
}

// FromFile reads and validates a topology document from disk.
func FromFile(path string) (models.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Topology{}, fmt.Errorf("read topology file: %w", err)
	}
	return FromBytes(data)
}

// BuildGraph validates a topology and constructs its graph model.
func BuildGraph(topo models.Topology) (*graph.Model, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	return graph.FromTopology(topo)
}
