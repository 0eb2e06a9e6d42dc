package pathing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/grid"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/testutil"
)

func mustGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.Build(w, h)
	require.NoError(t, err)
	return g
}

func TestShortestPath_OpenGrid(t *testing.T) {
	g := mustGrid(t, 3, 3)

	path, err := ShortestPath(g, core.Cell{X: 0, Y: 0}, core.Cell{X: 2, Y: 2})
	require.NoError(t, err)

	require.Len(t, path, 5)
	testutil.AssertRoute(t, path, core.Cell{X: 0, Y: 0}, core.Cell{X: 2, Y: 2})

	// East is expanded before South, so the route hugs the top row first.
	expected := []core.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}
	assert.Equal(t, expected, path)

	n, err := ShortestPathLength(g, core.Cell{X: 0, Y: 0}, core.Cell{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestShortestPath_Deterministic(t *testing.T) {
	g := mustGrid(t, 6, 6)
	first, err := ShortestPath(g, core.Cell{X: 5, Y: 5}, core.Cell{X: 0, Y: 1})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := ShortestPath(g, core.Cell{X: 5, Y: 5}, core.Cell{X: 0, Y: 1})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestShortestPath_SameCell(t *testing.T) {
	g := mustGrid(t, 2, 2)
	path, err := ShortestPath(g, core.Cell{X: 1, Y: 1}, core.Cell{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, []core.Cell{{X: 1, Y: 1}}, path)
}

func TestShortestPath_AroundObstacles(t *testing.T) {
	g := mustGrid(t, 4, 4)
	safe := grid.BuildSafeGraph(g, []core.Cell{{X: 2, Y: 2}}, core.Cell{X: 3, Y: 0})

	path, err := ShortestPath(safe, core.Cell{X: 0, Y: 0}, core.Cell{X: 3, Y: 3})
	require.NoError(t, err)

	assert.Len(t, path, 7, "6 hops")
	testutil.AssertRoute(t, path, core.Cell{X: 0, Y: 0}, core.Cell{X: 3, Y: 3})
	testutil.AssertRouteAvoids(t, path, testutil.Cells(2, 2, 3, 0))
}

func TestShortestPath_Errors(t *testing.T) {
	g := mustGrid(t, 3, 3)
	// Wall off column x=1 so the right side is unreachable.
	walled := grid.BuildSafeGraph(g, []core.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}})

	tests := []struct {
		name   string
		graph  grid.Graph
		source core.Cell
		target core.Cell
		err    error
	}{
		{"unreachable target", walled, core.Cell{X: 0, Y: 0}, core.Cell{X: 2, Y: 2}, core.ErrNoPath},
		{"source removed", walled, core.Cell{X: 1, Y: 1}, core.Cell{X: 0, Y: 0}, core.ErrNodeAbsent},
		{"target removed", walled, core.Cell{X: 0, Y: 0}, core.Cell{X: 1, Y: 0}, core.ErrNodeAbsent},
		{"source out of bounds", g, core.Cell{X: -1, Y: 0}, core.Cell{X: 0, Y: 0}, core.ErrNodeAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ShortestPath(tt.graph, tt.source, tt.target)
			assert.Nil(t, path)
			assert.ErrorIs(t, err, tt.err)

			_, err = ShortestPathLength(tt.graph, tt.source, tt.target)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSelectNearestReachable_TieBreak(t *testing.T) {
	g := mustGrid(t, 3, 3)
	src := core.Cell{X: 0, Y: 0}
	a := core.Cell{X: 2, Y: 0}
	b := core.Cell{X: 0, Y: 2}

	for i := 0; i < 5; i++ {
		got, ok := SelectNearestReachable(g, src, []core.Cell{a, b})
		require.True(t, ok)
		assert.Equal(t, a, got, "first listed candidate wins a tie")
	}

	got, ok := SelectNearestReachable(g, src, []core.Cell{b, a})
	require.True(t, ok)
	assert.Equal(t, b, got, "order of supply, not coordinate order")
}

func TestSelectNearestReachable_PrefersCloser(t *testing.T) {
	g := mustGrid(t, 5, 5)
	got, ok := SelectNearestReachable(g, core.Cell{X: 0, Y: 0},
		[]core.Cell{{X: 4, Y: 4}, {X: 1, Y: 1}, {X: 0, Y: 3}})
	require.True(t, ok)
	assert.Equal(t, core.Cell{X: 1, Y: 1}, got)
}

func TestSelectNearestReachable_SkipsUnreachable(t *testing.T) {
	g := mustGrid(t, 3, 3)
	walled := grid.BuildSafeGraph(g, []core.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}})

	got, ok := SelectNearestReachable(walled, core.Cell{X: 0, Y: 0},
		[]core.Cell{{X: 2, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}})
	require.True(t, ok)
	assert.Equal(t, core.Cell{X: 0, Y: 2}, got)
}

func TestSelectNearestReachable_NoneReachable(t *testing.T) {
	g := mustGrid(t, 3, 3)
	walled := grid.BuildSafeGraph(g, []core.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}})

	_, ok := SelectNearestReachable(walled, core.Cell{X: 0, Y: 0}, []core.Cell{{X: 2, Y: 2}})
	assert.False(t, ok)

	_, ok = SelectNearestReachable(g, core.Cell{X: 0, Y: 0}, nil)
	assert.False(t, ok)

	_, ok = SelectNearestReachable(walled, core.Cell{X: 1, Y: 1}, []core.Cell{{X: 0, Y: 0}})
	assert.False(t, ok, "absent source")
}

func TestNearestPath(t *testing.T) {
	g := mustGrid(t, 4, 4)
	target, path, ok := NearestPath(g, core.Cell{X: 0, Y: 0},
		[]core.Cell{{X: 3, Y: 3}, {X: 0, Y: 2}})
	require.True(t, ok)

	assert.Equal(t, core.Cell{X: 0, Y: 2}, target)
	assert.Equal(t, []core.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, path)

	_, path, ok = NearestPath(g, core.Cell{X: 0, Y: 0}, nil)
	assert.False(t, ok)
	assert.Nil(t, path)
}

func TestDistances(t *testing.T) {
	g := mustGrid(t, 4, 3)
	tree, err := Distances(g, core.Cell{X: 1, Y: 1})
	require.NoError(t, err)

	for _, c := range g.Nodes() {
		d, ok := tree.Distance(c)
		require.True(t, ok)
		assert.Equal(t, c.DistanceTo(core.Cell{X: 1, Y: 1}), d, "open grid distance equals Manhattan at %v", c)
	}

	_, ok := tree.Distance(core.Cell{X: 9, Y: 9})
	assert.False(t, ok)
	_, ok = tree.Distance(core.Cell{X: -1, Y: 0})
	assert.False(t, ok)
}
