package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/flowforge/types"
)

// Validator checks workflow graphs for structural soundness. It
// accumulates every applicable error instead of stopping at the first.
type Validator struct {
	registry *Registry
	logger   *zap.Logger
}

// NewValidator creates a validator. A nil logger falls back to
// zap.NewNop().
func NewValidator(registry *Registry, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		registry: registry,
		logger:   logger.With(zap.String("component", "graph_validator")),
	}
}

// ValidateGraph checks node/edge well-formedness:
//
//  1. at least one node;
//  2. non-empty, unique node ids (each duplicate named individually);
//  3. every node kind recognized;
//  4. every edge endpoint referencing an existing node id;
//  5. when structurally sound, topological orderability (a cycle
//     surfaces as one error).
//
// Isolated nodes in a multi-node graph produce a non-fatal warning.
func (v *Validator) ValidateGraph(nodes []types.NodeSpec, edges []types.Edge) types.ValidationReport {
	var errs []types.ValidationError
	warnings := []string{}

	if len(nodes) == 0 {
		errs = append(errs, graphError("", "graph", "Workflow must contain at least one node"))
		return types.ValidationReport{IsValid: false, Errors: errs, Warnings: warnings}
	}

	nodeIDs := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		if node.ID == "" {
			errs = append(errs, graphError("", "id", "All nodes must have an ID"))
			continue
		}
		if nodeIDs[node.ID] {
			errs = append(errs, graphError(node.ID, "id", fmt.Sprintf("Duplicate node ID: %s", node.ID)))
		}
		nodeIDs[node.ID] = true

		if node.Kind == "" {
			errs = append(errs, graphError(node.ID, "type", fmt.Sprintf("Node %s must have a type", node.ID)))
			continue
		}
		if !node.Kind.Valid() {
			errs = append(errs, graphError(node.ID, "type", fmt.Sprintf("Invalid node type: %s", node.Kind)))
		}
	}

	for _, edge := range edges {
		if !nodeIDs[edge.Source] {
			errs = append(errs, graphError(edge.Source, "edge", fmt.Sprintf("Edge source %s does not exist", edge.Source)))
		}
		if !nodeIDs[edge.Target] {
			errs = append(errs, graphError(edge.Target, "edge", fmt.Sprintf("Edge target %s does not exist", edge.Target)))
		}
	}

	// Only a structurally sound graph is worth ordering; a cycle is a
	// single terminal error on top of an otherwise clean graph.
	if len(errs) == 0 {
		if _, err := Schedule(nodes, edges); err != nil {
			errs = append(errs, graphError("", "cycle", "Workflow contains cycles"))
		}
	}

	if isolated := isolatedNodes(nodes, edges); len(nodes) > 1 && len(isolated) > 0 {
		warnings = append(warnings, "Isolated nodes detected: "+strings.Join(isolated, ", "))
	}

	v.logger.Debug("graph validated",
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
		zap.Int("errors", len(errs)),
		zap.Int("warnings", len(warnings)))

	return types.ValidationReport{IsValid: len(errs) == 0, Errors: errs, Warnings: warnings}
}

// ValidateWorkflow runs ValidateGraph and additionally validates every
// node's configuration against its kind schema, folding violations
// into one report.
func (v *Validator) ValidateWorkflow(graph *types.WorkflowGraph) types.ValidationReport {
	result := v.ValidateGraph(graph.Nodes, graph.Edges)

	for _, node := range graph.Nodes {
		if !node.Kind.Valid() {
			continue
		}
		configResult := v.registry.ValidateConfig(node.Kind, node.Config)
		for _, err := range configResult.Errors {
			err.NodeID = node.ID
			result.Errors = append(result.Errors, err)
		}
		result.Warnings = append(result.Warnings, configResult.Warnings...)
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// isolatedNodes returns, in declaration order, the ids of nodes with no
// incident edge.
func isolatedNodes(nodes []types.NodeSpec, edges []types.Edge) []string {
	connected := make(map[string]bool, len(nodes))
	for _, edge := range edges {
		connected[edge.Source] = true
		connected[edge.Target] = true
	}

	var isolated []string
	for _, node := range nodes {
		if node.ID != "" && !connected[node.ID] {
			isolated = append(isolated, node.ID)
		}
	}
	return isolated
}

func graphError(nodeID, field, message string) types.ValidationError {
	return types.ValidationError{NodeID: nodeID, Field: field, Message: message}
}
