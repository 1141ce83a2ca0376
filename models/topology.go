// ABOUTME: Data models for service topology input
// ABOUTME: JSON-serializable service and dependency edge definitions with validation

package models

import (
	"fmt"
	"strings"
)

// CriticalityLevel classifies how important a service is to the platform.
type CriticalityLevel string

const (
	CriticalityLow      CriticalityLevel = "low"
	CriticalityMedium   CriticalityLevel = "medium"
	CriticalityHigh     CriticalityLevel = "high"
	CriticalityCritical CriticalityLevel = "critical"
)

// ValidationError reports malformed input with the offending field identified.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ServiceNode represents a microservice with its metadata.
type ServiceNode struct {
	Name        string           `json:"name"`
	Replicas    int              `json:"replicas"`
	Tags        []string         `json:"tags,omitempty"`
	Criticality CriticalityLevel `json:"criticality,omitempty"`
	Zone        string           `json:"zone,omitempty"`
}

// DependencyEdge represents a call relationship between two services.
// Wire names follow the original topology format: "from"/"to", "p50"/"p95".
type DependencyEdge struct {
	Source     string  `json:"from"`
	Target     string  `json:"to"`
	CallRate   float64 `json:"call_rate"`
	P50Latency float64 `json:"p50"`
	P95Latency float64 `json:"p95"`
	ErrorRate  float64 `json:"error_rate"`
	Cost       float64 `json:"cost"`
	IsShortcut bool    `json:"is_shortcut,omitempty"`
}

// Weight returns the unified pathfinding weight for this edge:
// median latency when known, 1.0 otherwise. Always positive.
func (e DependencyEdge) Weight() float64 {
	if e.P50Latency > 0 {
		return e.P50Latency
	}
	return 1.0
}

// Topology is the complete service dependency description.
type Topology struct {
	Services []ServiceNode    `json:"services"`
	Edges    []DependencyEdge `json:"edges"`
}

const maxServiceNameLength = 256

// validName reports whether a service name uses only the allowed charset.
func validName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

// validateServiceName checks charset and length rules shared by node and
// edge definitions. Returns the trimmed name.
func validateServiceName(field, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &ValidationError{Field: field, Message: "service name cannot be empty"}
	}
	if len(trimmed) > maxServiceNameLength {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("service name exceeds %d characters", maxServiceNameLength)}
	}
	if !validName(trimmed) {
		return "", &ValidationError{Field: field, Message: "service name can only contain alphanumeric characters, hyphens, underscores, and dots"}
	}
	return trimmed, nil
}

// Validate checks the node fields and normalizes the name in place.
func (s *ServiceNode) Validate() error {
	name, err := validateServiceName("services.name", s.Name)
	if err != nil {
		return err
	}
	s.Name = name

	if s.Replicas < 0 {
		return &ValidationError{Field: "services.replicas", Message: "replicas cannot be negative"}
	}
	switch s.Criticality {
	case "", CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical:
	default:
		return &ValidationError{Field: "services.criticality", Message: fmt.Sprintf("unknown criticality %q", s.Criticality)}
	}
	if s.Criticality == "" {
		s.Criticality = CriticalityMedium
	}
	return nil
}

// Validate checks edge fields and normalizes endpoint names in place.
func (e *DependencyEdge) Validate() error {
	source, err := validateServiceName("edges.from", e.Source)
	if err != nil {
		return err
	}
	target, err := validateServiceName("edges.to", e.Target)
	if err != nil {
		return err
	}
	e.Source = source
	e.Target = target

	if e.Source == e.Target {
		return &ValidationError{Field: "edges", Message: fmt.Sprintf("self-loop detected: %s -> %s", e.Source, e.Target)}
	}
	if e.CallRate < 0 {
		return &ValidationError{Field: "edges.call_rate", Message: "call rate cannot be negative"}
	}
	if e.P50Latency < 0 {
		return &ValidationError{Field: "edges.p50", Message: "latency cannot be negative"}
	}
	if e.P95Latency < 0 {
		return &ValidationError{Field: "edges.p95", Message: "latency cannot be negative"}
	}
	if e.ErrorRate < 0 || e.ErrorRate > 1 {
		return &ValidationError{Field: "edges.error_rate", Message: "error rate must be between 0 and 1"}
	}
	if e.Cost < 0 {
		return &ValidationError{Field: "edges.cost", Message: "cost cannot be negative"}
	}
	return nil
}

// Validate checks every service and edge, plus cross-record rules
// (duplicate service names). It is all-or-nothing: the topology is
// never partially normalized on failure.
func (t *Topology) Validate() error {
	seen := make(map[string]bool, len(t.Services))
	for i := range t.Services {
		if err := t.Services[i].Validate(); err != nil {
			return err
		}
		name := t.Services[i].Name
		if seen[name] {
			return &ValidationError{Field: "services.name", Message: fmt.Sprintf("duplicate service name: %s", name)}
		}
		seen[name] = true
	}
	for i := range t.Edges {
		if err := t.Edges[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
