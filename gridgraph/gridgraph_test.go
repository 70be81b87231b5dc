package gridgraph_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridnav/gridgraph"
)

//----------------------------------------------------------------------------//
// NewGrid and InBounds Tests
//----------------------------------------------------------------------------//

// TestNewGrid_Errors verifies that NewGrid rejects bad dimensions, scales and terrain.
func TestNewGrid_Errors(t *testing.T) {
	opts := func(mut func(*gridgraph.GridOptions)) gridgraph.GridOptions {
		o := gridgraph.DefaultGridOptions()
		mut(&o)
		return o
	}
	cases := []struct {
		name string
		w, h int
		opts gridgraph.GridOptions
		err  error
	}{
		{"ZeroWidth", 0, 3, gridgraph.DefaultGridOptions(), gridgraph.ErrEmptyGrid},
		{"NegativeHeight", 3, -1, gridgraph.DefaultGridOptions(), gridgraph.ErrEmptyGrid},
		{"ZeroScale", 3, 3, opts(func(o *gridgraph.GridOptions) { o.Scale = 0 }), gridgraph.ErrBadScale},
		{"NaNScale", 3, 3, opts(func(o *gridgraph.GridOptions) { o.Scale = math.NaN() }), gridgraph.ErrBadScale},
		{"InfScale", 3, 3, opts(func(o *gridgraph.GridOptions) { o.Scale = math.Inf(1) }), gridgraph.ErrBadScale},
		{"TerrainRows", 2, 2, opts(func(o *gridgraph.GridOptions) { o.Terrain = [][]float64{{1, 1}} }), gridgraph.ErrNonRectangular},
		{"TerrainCols", 2, 2, opts(func(o *gridgraph.GridOptions) { o.Terrain = [][]float64{{1, 1}, {1}} }), gridgraph.ErrNonRectangular},
		{"TerrainLight", 2, 1, opts(func(o *gridgraph.GridOptions) { o.Terrain = [][]float64{{1, 0.5}} }), gridgraph.ErrBadWeight},
		{"TerrainNaN", 2, 1, opts(func(o *gridgraph.GridOptions) { o.Terrain = [][]float64{{math.NaN(), 1}} }), gridgraph.ErrBadWeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgraph.NewGrid(tc.w, tc.h, tc.opts)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

// TestInBounds checks InBounds on a 3×2 grid.
func TestInBounds(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 2, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	for _, c := range []gridgraph.Cell{{0, 0}, {2, 1}, {1, 1}} {
		assert.True(t, g.InBounds(c), "InBounds%v", c)
	}
	for _, c := range []gridgraph.Cell{{-1, 0}, {3, 0}, {1, 2}, {2, -1}} {
		assert.False(t, g.InBounds(c), "InBounds%v", c)
	}
}

//----------------------------------------------------------------------------//
// Neighbors Tests
//----------------------------------------------------------------------------//

// TestNeighbors_Conn4 verifies orthogonal neighbours, order and unit cost.
func TestNeighbors_Conn4(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	got := g.Neighbors(gridgraph.Cell{X: 1, Y: 1})
	want := []gridgraph.WeightedEdge{
		{To: gridgraph.Cell{X: 1, Y: 0}, Cost: 1},
		{To: gridgraph.Cell{X: 2, Y: 1}, Cost: 1},
		{To: gridgraph.Cell{X: 1, Y: 2}, Cost: 1},
		{To: gridgraph.Cell{X: 0, Y: 1}, Cost: 1},
	}
	assert.Equal(t, want, got)

	corner := g.Neighbors(gridgraph.Cell{X: 0, Y: 0})
	assert.Len(t, corner, 2)
}

// TestNeighbors_Conn8 verifies diagonal steps cost √2 times the terrain weight.
func TestNeighbors_Conn8(t *testing.T) {
	opts := gridgraph.DefaultGridOptions()
	opts.Conn = gridgraph.Conn8
	opts.Terrain = [][]float64{
		{1, 1},
		{1, 3},
	}
	g, err := gridgraph.NewGrid(2, 2, opts)
	require.NoError(t, err)

	got := g.Neighbors(gridgraph.Cell{X: 0, Y: 0})
	require.Len(t, got, 3)
	costs := map[gridgraph.Cell]float64{}
	for _, e := range got {
		costs[e.To] = e.Cost
	}
	assert.Equal(t, 1.0, costs[gridgraph.Cell{X: 1, Y: 0}])
	assert.Equal(t, 1.0, costs[gridgraph.Cell{X: 0, Y: 1}])
	assert.InDelta(t, 3*math.Sqrt2, costs[gridgraph.Cell{X: 1, Y: 1}], 1e-12)
}

// TestNeighborOffsets verifies the visiting order for both connectivities and
// that the returned slice is a copy.
func TestNeighborOffsets(t *testing.T) {
	g4, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}, g4.NeighborOffsets())

	opts := gridgraph.DefaultGridOptions()
	opts.Conn = gridgraph.Conn8
	g8, err := gridgraph.NewGrid(3, 3, opts)
	require.NoError(t, err)
	offs := g8.NeighborOffsets()
	require.Len(t, offs, 8)

	// Neighbors of the centre follow the same order.
	edges := g8.Neighbors(gridgraph.Cell{X: 1, Y: 1})
	require.Len(t, edges, 8)
	for i, d := range offs {
		assert.Equal(t, gridgraph.Cell{X: 1 + d[0], Y: 1 + d[1]}, edges[i].To)
	}

	offs[0] = [2]int{9, 9}
	assert.Equal(t, [2]int{0, -1}, g8.NeighborOffsets()[0])
}

// TestCoordinate verifies that Coordinate inverts row-major indexing.
func TestCoordinate(t *testing.T) {
	g, err := gridgraph.NewGrid(4, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			assert.Equal(t, gridgraph.Cell{X: x, Y: y}, g.Coordinate(y*g.Width()+x))
		}
	}
	assert.Equal(t, gridgraph.Cell{X: 3, Y: 2}, g.Coordinate(11))
}

// TestNeighbors_SkipsObstacles verifies that obstructed cells are neither
// entered nor expanded.
func TestNeighbors_SkipsObstacles(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	g.AddObstacle(gridgraph.Cell{X: 1, Y: 0})

	for _, e := range g.Neighbors(gridgraph.Cell{X: 1, Y: 1}) {
		assert.NotEqual(t, gridgraph.Cell{X: 1, Y: 0}, e.To)
	}
	assert.Nil(t, g.Neighbors(gridgraph.Cell{X: 1, Y: 0}))
	assert.Nil(t, g.Neighbors(gridgraph.Cell{X: 5, Y: 5}))
}

//----------------------------------------------------------------------------//
// Obstacle, start/goal, path and trace bookkeeping
//----------------------------------------------------------------------------//

// TestAddObstacle_Idempotent verifies that re-adding a cell leaves the set size unchanged.
func TestAddObstacle_Idempotent(t *testing.T) {
	g, err := gridgraph.NewGrid(4, 4, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	c := gridgraph.Cell{X: 2, Y: 3}

	assert.True(t, g.AddObstacle(c))
	assert.False(t, g.AddObstacle(c))
	assert.Equal(t, 1, g.ObstacleCount())
	assert.True(t, g.IsObstacle(c))
}

// TestAddObstacle_OutOfBounds verifies out-of-grid cells are rejected.
func TestAddObstacle_OutOfBounds(t *testing.T) {
	g, err := gridgraph.NewGrid(2, 2, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	assert.False(t, g.AddObstacle(gridgraph.Cell{X: -1, Y: 0}))
	assert.False(t, g.AddObstacle(gridgraph.Cell{X: 2, Y: 0}))
	assert.Zero(t, g.ObstacleCount())
}

// TestObstacles_Sorted verifies the row-major ordering of Obstacles.
func TestObstacles_Sorted(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	g.AddObstacle(gridgraph.Cell{X: 2, Y: 1})
	g.AddObstacle(gridgraph.Cell{X: 0, Y: 2})
	g.AddObstacle(gridgraph.Cell{X: 1, Y: 1})

	assert.Equal(t, []gridgraph.Cell{{1, 1}, {2, 1}, {0, 2}}, g.Obstacles())
}

// TestStartGoal verifies bounds checking on SetStart and SetGoal.
func TestStartGoal(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	require.NoError(t, g.SetStart(gridgraph.Cell{X: 0, Y: 2}))
	require.NoError(t, g.SetGoal(gridgraph.Cell{X: 2, Y: 0}))
	assert.Equal(t, gridgraph.Cell{X: 0, Y: 2}, g.Start())
	assert.Equal(t, gridgraph.Cell{X: 2, Y: 0}, g.Goal())

	require.ErrorIs(t, g.SetStart(gridgraph.Cell{X: 3, Y: 0}), gridgraph.ErrOutOfBounds)
	require.ErrorIs(t, g.SetGoal(gridgraph.Cell{X: 0, Y: -1}), gridgraph.ErrOutOfBounds)
	assert.Equal(t, gridgraph.Cell{X: 2, Y: 0}, g.Goal())
}

// TestPath_Copies verifies SetPath and Path do not alias caller memory.
func TestPath_Copies(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	p := gridgraph.Path{{0, 0}, {1, 0}}
	g.SetPath(p)
	p[0] = gridgraph.Cell{X: 9, Y: 9}
	got := g.Path()
	assert.Equal(t, gridgraph.Path{{0, 0}, {1, 0}}, got)
	got[1] = gridgraph.Cell{X: 7, Y: 7}
	assert.Equal(t, gridgraph.Path{{0, 0}, {1, 0}}, g.Path())
}

// TestVisitedTrace verifies AddVisited, Visited and ClearVisited.
func TestVisitedTrace(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	g.AddVisited(gridgraph.Cell{X: 1, Y: 1})
	g.AddVisited(gridgraph.Cell{X: 0, Y: 0})
	g.AddVisited(gridgraph.Cell{X: 1, Y: 1})
	assert.Equal(t, []gridgraph.Cell{{0, 0}, {1, 1}}, g.Visited())

	g.ClearVisited()
	assert.Empty(t, g.Visited())
}

// TestCellAt verifies physical → grid conversion rounds to the nearest cell.
func TestCellAt(t *testing.T) {
	opts := gridgraph.DefaultGridOptions()
	opts.Scale = 25
	g, err := gridgraph.NewGrid(10, 10, opts)
	require.NoError(t, err)

	assert.Equal(t, gridgraph.Cell{X: 4, Y: 4}, g.CellAt(100, 100))
	assert.Equal(t, gridgraph.Cell{X: 1, Y: 0}, g.CellAt(20, -5))
}

// TestSnapshot_Isolated verifies that a snapshot does not observe later insertions.
func TestSnapshot_Isolated(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	g.AddObstacle(gridgraph.Cell{X: 1, Y: 1})

	s := g.Snapshot()
	g.AddObstacle(gridgraph.Cell{X: 0, Y: 1})

	assert.Equal(t, 1, s.ObstacleCount())
	assert.Equal(t, 2, g.ObstacleCount())
	assert.True(t, s.IsObstacle(gridgraph.Cell{X: 1, Y: 1}))
}

// TestConcurrentAddObstacleAndNeighbors ensures writers and readers do not race.
func TestConcurrentAddObstacleAndNeighbors(t *testing.T) {
	g, err := gridgraph.NewGrid(20, 20, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 400; i++ {
			g.AddObstacle(gridgraph.Cell{X: i % 20, Y: i / 20})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 400; i++ {
			_ = g.Neighbors(gridgraph.Cell{X: 10, Y: 10})
			_ = g.Snapshot()
		}
	}()
	wg.Wait()

	assert.Equal(t, 400, g.ObstacleCount())
}

// TestPathHelpers covers the small Path accessors.
func TestPathHelpers(t *testing.T) {
	var empty gridgraph.Path
	_, ok := empty.Start()
	assert.False(t, ok)
	_, ok = empty.End()
	assert.False(t, ok)
	assert.Nil(t, empty.Clone())

	p := gridgraph.Path{{0, 0}, {0, 1}, {1, 1}}
	s, _ := p.Start()
	e, _ := p.End()
	assert.Equal(t, gridgraph.Cell{X: 0, Y: 0}, s)
	assert.Equal(t, gridgraph.Cell{X: 1, Y: 1}, e)
	assert.Equal(t, 3, p.Len())
	assert.True(t, p.Contains(gridgraph.Cell{X: 0, Y: 1}))
	assert.False(t, p.Contains(gridgraph.Cell{X: 2, Y: 2}))
	assert.Equal(t, "(1,1)", e.String())
}
