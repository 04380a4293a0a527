package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/flowforge/types"
)

func nodeIDs(order []types.NodeSpec) []string {
	ids := make([]string, len(order))
	for i, n := range order {
		ids[i] = n.ID
	}
	return ids
}

func specNodes(ids ...string) []types.NodeSpec {
	nodes := make([]types.NodeSpec, len(ids))
	for i, id := range ids {
		nodes[i] = types.NodeSpec{ID: id, Kind: types.NodeKindQuery}
	}
	return nodes
}

func edge(source, target string) types.Edge {
	return types.Edge{ID: source + "-" + target, Source: source, Target: target}
}

func TestSchedule_Linear(t *testing.T) {
	nodes := specNodes("a", "b", "c")
	edges := []types.Edge{edge("a", "b"), edge("b", "c")}

	order, err := Schedule(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, nodeIDs(order))
}

func TestSchedule_RespectsEdgeDirections(t *testing.T) {
	// Declaration order deliberately reversed relative to the data flow.
	nodes := specNodes("c", "b", "a")
	edges := []types.Edge{edge("a", "b"), edge("b", "c")}

	order, err := Schedule(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, nodeIDs(order))
}

func TestSchedule_Diamond(t *testing.T) {
	nodes := specNodes("start", "left", "right", "join")
	edges := []types.Edge{
		edge("start", "left"),
		edge("start", "right"),
		edge("left", "join"),
		edge("right", "join"),
	}

	order, err := Schedule(nodes, edges)
	require.NoError(t, err)
	ids := nodeIDs(order)
	assert.Equal(t, "start", ids[0])
	assert.Equal(t, "join", ids[3])
	// Independent branches fall back to declaration order.
	assert.Equal(t, []string{"left", "right"}, ids[1:3])
}

func TestSchedule_NoEdges_DeclarationOrder(t *testing.T) {
	nodes := specNodes("z", "m", "a")

	order, err := Schedule(nodes, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "m", "a"}, nodeIDs(order))
}

func TestSchedule_Deterministic(t *testing.T) {
	nodes := specNodes("q", "kb", "ws", "llm", "out")
	edges := []types.Edge{
		edge("q", "kb"),
		edge("q", "ws"),
		edge("kb", "llm"),
		edge("ws", "llm"),
		edge("llm", "out"),
	}

	first, err := Schedule(nodes, edges)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Schedule(nodes, edges)
		require.NoError(t, err)
		assert.Equal(t, nodeIDs(first), nodeIDs(again))
	}
}

func TestSchedule_Cycle(t *testing.T) {
	nodes := specNodes("a", "b", "c")
	edges := []types.Edge{edge("a", "b"), edge("b", "c"), edge("c", "a")}

	_, err := Schedule(nodes, edges)
	require.Error(t, err)
	assert.Equal(t, types.ErrGraphCycle, types.GetErrorCode(err))
}

func TestSchedule_SelfLoop(t *testing.T) {
	nodes := specNodes("a")
	edges := []types.Edge{edge("a", "a")}

	_, err := Schedule(nodes, edges)
	require.Error(t, err)
	assert.Equal(t, types.ErrGraphCycle, types.GetErrorCode(err))
}

func TestSchedule_PartialCycle(t *testing.T) {
	// A reachable prefix plus a cycle: no partial order is returned.
	nodes := specNodes("a", "b", "c")
	edges := []types.Edge{edge("a", "b"), edge("b", "c"), edge("c", "b")}

	order, err := Schedule(nodes, edges)
	require.Error(t, err)
	assert.Nil(t, order)
}

func TestSchedule_IgnoresDanglingEdges(t *testing.T) {
	nodes := specNodes("a", "b")
	edges := []types.Edge{edge("a", "b"), edge("ghost", "b"), edge("a", "phantom")}

	order, err := Schedule(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, nodeIDs(order))
}

func TestSchedule_Empty(t *testing.T) {
	order, err := Schedule(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}
