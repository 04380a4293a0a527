package types

// NodeKind identifies the processing behavior of a workflow node.
// The set is closed: the engine dispatches over it exhaustively and
// rejects unrecognized values during graph validation.
type NodeKind string

const (
	// NodeKindQuery accepts and validates the user's free-text question.
	NodeKindQuery NodeKind = "userQuery"
	// NodeKindKnowledgeBase retrieves relevant passages from a vector store.
	NodeKindKnowledgeBase NodeKind = "knowledgeBase"
	// NodeKindLLM invokes a language model with query plus accumulated context.
	NodeKindLLM NodeKind = "llm"
	// NodeKindWebSearch queries an external web search engine.
	NodeKindWebSearch NodeKind = "webSearch"
	// NodeKindOutput formats the upstream response into the final result.
	NodeKindOutput NodeKind = "output"
)

// AllNodeKinds lists every recognized node kind in a stable order.
func AllNodeKinds() []NodeKind {
	return []NodeKind{
		NodeKindQuery,
		NodeKindKnowledgeBase,
		NodeKindLLM,
		NodeKindWebSearch,
		NodeKindOutput,
	}
}

// Valid reports whether k is one of the recognized node kinds.
func (k NodeKind) Valid() bool {
	switch k {
	case NodeKindQuery, NodeKindKnowledgeBase, NodeKindLLM, NodeKindWebSearch, NodeKindOutput:
		return true
	}
	return false
}

// Position is the node's location on the visual canvas. It carries no
// execution semantics.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeSpec describes one node of a user-authored workflow graph.
type NodeSpec struct {
	// ID is the unique node identifier within the graph.
	ID string `json:"id"`
	// Kind selects the node's processing behavior.
	Kind NodeKind `json:"type"`
	// Position is the visual placement; non-semantic.
	Position Position `json:"position"`
	// Config holds kind-specific settings (see engine.Registry for the
	// recognized keys and bounds per kind).
	Config map[string]any `json:"data"`
}

// Edge is a directed data-flow link between two nodes.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// WorkflowGraph is a complete workflow definition as authored in the
// visual builder. It is immutable during a run; executability requires
// the graph to be acyclic over node IDs.
type WorkflowGraph struct {
	Nodes []NodeSpec `json:"nodes"`
	Edges []Edge     `json:"edges"`
}

// NodeByID returns the node with the given id, if present.
func (g *WorkflowGraph) NodeByID(id string) (NodeSpec, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeSpec{}, false
}
