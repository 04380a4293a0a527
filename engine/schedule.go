package engine

import (
	"github.com/BaSui01/flowforge/types"
)

// Schedule computes a deterministic linear execution order for the
// graph using Kahn's algorithm. Nodes with no unmet dependencies are
// processed in declaration order, which makes repeated calls on the
// same graph yield identical orders.
//
// Edges whose source or target is not a declared node are ignored; the
// graph validator reports those as errors before execution.
//
// When the graph contains a cycle, the produced order is shorter than
// the node count and Schedule fails with ErrGraphCycle.
func Schedule(nodes []types.NodeSpec, edges []types.Edge) ([]types.NodeSpec, error) {
	nodeByID := make(map[string]types.NodeSpec, len(nodes))
	inDegree := make(map[string]int, len(nodes))
	adjacency := make(map[string][]string, len(nodes))

	for _, n := range nodes {
		nodeByID[n.ID] = n
		inDegree[n.ID] = 0
	}

	for _, e := range edges {
		if _, ok := nodeByID[e.Source]; !ok {
			continue
		}
		if _, ok := nodeByID[e.Target]; !ok {
			continue
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		inDegree[e.Target]++
	}

	// Seed the queue in declaration order; append-as-released keeps the
	// remaining tie-break deterministic too.
	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]types.NodeSpec, 0, len(nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, nodeByID[current])

		for _, next := range adjacency[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, types.NewError(types.ErrGraphCycle, "Workflow contains cycles")
	}
	return order, nil
}
