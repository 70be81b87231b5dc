package gridgraph_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridnav/gridgraph"
)

// gridWith builds a w×h grid with the given obstacles.
func gridWith(t *testing.T, w, h int, conn gridgraph.Connectivity, obstacles ...gridgraph.Cell) *gridgraph.Grid {
	t.Helper()
	opts := gridgraph.DefaultGridOptions()
	opts.Conn = conn
	g, err := gridgraph.NewGrid(w, h, opts)
	require.NoError(t, err)
	for _, c := range obstacles {
		g.AddObstacle(c)
	}
	return g
}

// TestConnectedComponents_Wall splits a 4×3 grid with a vertical wall.
//
//	. # . .
//	. # . .
//	. # . .
//
// Expected: 2 components of sizes 3 and 6.
func TestConnectedComponents_Wall(t *testing.T) {
	g := gridWith(t, 4, 3, gridgraph.Conn4, gridgraph.Cell{1, 0}, gridgraph.Cell{1, 1}, gridgraph.Cell{1, 2})

	comps := g.ConnectedComponents()
	require.Len(t, comps, 2)
	sizes := []int{len(comps[0]), len(comps[1])}
	sort.Ints(sizes)
	assert.Equal(t, []int{3, 6}, sizes)
}

// TestConnectedComponents_Diagonal8 checks that corner-touching free cells
// join under Conn8 but not under Conn4.
//
//	. #
//	# .
func TestConnectedComponents_Diagonal8(t *testing.T) {
	walls := []gridgraph.Cell{{1, 0}, {0, 1}}

	assert.Len(t, gridWith(t, 2, 2, gridgraph.Conn4, walls...).ConnectedComponents(), 2)
	assert.Len(t, gridWith(t, 2, 2, gridgraph.Conn8, walls...).ConnectedComponents(), 1)
}

// TestConnectedComponents_AllBlocked returns no components.
func TestConnectedComponents_AllBlocked(t *testing.T) {
	g := gridWith(t, 1, 2, gridgraph.Conn4, gridgraph.Cell{0, 0}, gridgraph.Cell{0, 1})
	assert.Empty(t, g.ConnectedComponents())
}

// TestReachable covers walled-off goals and obstructed endpoints.
func TestReachable(t *testing.T) {
	g := gridWith(t, 3, 3, gridgraph.Conn4, gridgraph.Cell{1, 2}, gridgraph.Cell{2, 1})

	assert.True(t, g.Reachable(gridgraph.Cell{0, 0}, gridgraph.Cell{1, 1}))
	assert.False(t, g.Reachable(gridgraph.Cell{0, 0}, gridgraph.Cell{2, 2}))
	assert.False(t, g.Reachable(gridgraph.Cell{0, 0}, gridgraph.Cell{1, 2}))
	assert.False(t, g.Reachable(gridgraph.Cell{0, 0}, gridgraph.Cell{3, 3}))
	assert.True(t, g.Reachable(gridgraph.Cell{0, 0}, gridgraph.Cell{0, 0}))
}
