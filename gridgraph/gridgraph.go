package gridgraph

import (
	"math"
	"sort"
	"sync"
)

// Grid treats a 2D cell grid as a weighted graph.
// Width and Height define dimensions; terrain[y][x] holds the entry weight.
// neighborOffsets is precomputed for efficient adjacency lookups.
type Grid struct {
	mu sync.RWMutex

	width, height   int
	scale           float64
	conn            Connectivity
	terrain         [][]float64
	neighborOffsets [][2]int

	obstacles map[Cell]struct{}
	visited   map[Cell]struct{}
	start     Cell
	goal      Cell
	path      Path
}

// NewGrid constructs an empty width×height Grid.
// Returns ErrEmptyGrid if a dimension is not positive, ErrBadScale for a bad
// scale, ErrNonRectangular if Terrain does not match the shape and
// ErrBadWeight if a terrain weight is below 1 or not finite.
// The terrain is deep-copied. Start and goal default to (0,0).
// Algorithmic complexity: O(W×H) time and memory.
func NewGrid(width, height int, opts GridOptions) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if !(opts.Scale > 0) || math.IsInf(opts.Scale, 0) {
		return nil, ErrBadScale
	}
	var terrain [][]float64
	if opts.Terrain != nil {
		if len(opts.Terrain) != height {
			return nil, ErrNonRectangular
		}
		terrain = make([][]float64, height)
		for y, row := range opts.Terrain {
			if len(row) != width {
				return nil, ErrNonRectangular
			}
			for _, w := range row {
				if !(w >= 1) || math.IsInf(w, 0) {
					return nil, ErrBadWeight
				}
			}
			terrain[y] = make([]float64, width)
			copy(terrain[y], row)
		}
	}
	// Precompute neighbor offsets based on connectivity
	var offsets [][2]int
	if opts.Conn == Conn8 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	return &Grid{
		width:           width,
		height:          height,
		scale:           opts.Scale,
		conn:            opts.Conn,
		terrain:         terrain,
		neighborOffsets: offsets,
		obstacles:       make(map[Cell]struct{}),
		visited:         make(map[Cell]struct{}),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Scale returns the physical length of one grid unit.
func (g *Grid) Scale() float64 { return g.scale }

// Conn returns the grid connectivity.
func (g *Grid) Conn() Connectivity { return g.conn }

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// NeighborOffsets returns a copy of the (dx, dy) offsets Neighbors visits, in
// visiting order: clockwise from north.
func (g *Grid) NeighborOffsets() [][2]int {
	out := make([][2]int, len(g.neighborOffsets))
	copy(out, g.neighborOffsets)
	return out
}

// Weight returns the terrain weight of an in-bounds cell (1 when uniform).
func (g *Grid) Weight(c Cell) float64 {
	if g.terrain == nil || !g.InBounds(c) {
		return 1
	}
	return g.terrain[c.Y][c.X]
}

// Neighbors returns the traversable neighbours of c in offset order.
// The cost of an edge is the entered cell's terrain weight times the step
// length (1 orthogonal, √2 diagonal). An out-of-bounds or obstructed c has no
// neighbours.
// Complexity: O(d).
func (g *Grid) Neighbors(c Cell) []WeightedEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.InBounds(c) {
		return nil
	}
	if _, blocked := g.obstacles[c]; blocked {
		return nil
	}
	out := make([]WeightedEdge, 0, len(g.neighborOffsets))
	for _, d := range g.neighborOffsets {
		n := c.Add(d[0], d[1])
		if !g.InBounds(n) {
			continue
		}
		if _, blocked := g.obstacles[n]; blocked {
			continue
		}
		step := 1.0
		if d[0] != 0 && d[1] != 0 {
			step = math.Sqrt2
		}
		out = append(out, WeightedEdge{To: n, Cost: g.Weight(n) * step})
	}

	return out
}

// IsObstacle reports whether c is marked impassable.
func (g *Grid) IsObstacle(c Cell) bool {
	g.mu.RLock()
	_, ok := g.obstacles[c]
	g.mu.RUnlock()
	return ok
}

// AddObstacle marks c impassable and reports whether it was newly marked.
// Adding an already-obstructed cell is a no-op; out-of-bounds cells are
// rejected and leave the set unchanged.
func (g *Grid) AddObstacle(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.obstacles[c]; ok {
		return false
	}
	g.obstacles[c] = struct{}{}
	return true
}

// Obstacles returns the obstacle set sorted by row, then column.
func (g *Grid) Obstacles() []Cell {
	g.mu.RLock()
	out := keys(g.obstacles)
	g.mu.RUnlock()
	return out
}

// ObstacleCount returns the size of the obstacle set.
func (g *Grid) ObstacleCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.obstacles)
}

// Start returns the start cell, which tracks the agent's position.
func (g *Grid) Start() Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.start
}

// SetStart moves the start cell. Returns ErrOutOfBounds for cells off the grid.
func (g *Grid) SetStart(c Cell) error {
	if !g.InBounds(c) {
		return ErrOutOfBounds
	}
	g.mu.Lock()
	g.start = c
	g.mu.Unlock()
	return nil
}

// Goal returns the current best-known goal.
func (g *Grid) Goal() Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.goal
}

// SetGoal replaces the goal. Returns ErrOutOfBounds for cells off the grid.
func (g *Grid) SetGoal(c Cell) error {
	if !g.InBounds(c) {
		return ErrOutOfBounds
	}
	g.mu.Lock()
	g.goal = c
	g.mu.Unlock()
	return nil
}

// SetPath stores a copy of p as the current plan.
func (g *Grid) SetPath(p Path) {
	g.mu.Lock()
	g.path = p.Clone()
	g.mu.Unlock()
}

// Path returns a copy of the current plan.
func (g *Grid) Path() Path {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.path.Clone()
}

// AddVisited records c in the visited trace. The trace is diagnostic only.
func (g *Grid) AddVisited(c Cell) {
	g.mu.Lock()
	g.visited[c] = struct{}{}
	g.mu.Unlock()
}

// Visited returns the visited trace sorted by row, then column.
func (g *Grid) Visited() []Cell {
	g.mu.RLock()
	out := keys(g.visited)
	g.mu.RUnlock()
	return out
}

// ClearVisited empties the visited trace.
func (g *Grid) ClearVisited() {
	g.mu.Lock()
	g.visited = make(map[Cell]struct{})
	g.mu.Unlock()
}

// CellAt converts a physical coordinate to the nearest grid cell.
// The result is not clipped to the grid.
func (g *Grid) CellAt(x, y float64) Cell {
	return Cell{X: int(math.Round(x / g.scale)), Y: int(math.Round(y / g.scale))}
}

// Snapshot returns a deep copy of the grid. Searches run against a snapshot
// never observe obstacle insertions made after it was taken.
// Complexity: O(W×H).
func (g *Grid) Snapshot() *Grid {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := &Grid{
		width:           g.width,
		height:          g.height,
		scale:           g.scale,
		conn:            g.conn,
		terrain:         g.terrain, // immutable after construction
		neighborOffsets: g.neighborOffsets,
		obstacles:       make(map[Cell]struct{}, len(g.obstacles)),
		visited:         make(map[Cell]struct{}, len(g.visited)),
		start:           g.start,
		goal:            g.goal,
		path:            g.path.Clone(),
	}
	for c := range g.obstacles {
		s.obstacles[c] = struct{}{}
	}
	for c := range g.visited {
		s.visited[c] = struct{}{}
	}

	return s
}

// keys returns the members of set sorted by Y, then X.
func keys(set map[Cell]struct{}) []Cell {
	out := make([]Cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// index maps c to a row‑major index: y*Width + x.
// Complexity: O(1).
func (g *Grid) index(c Cell) int {
	return c.Y*g.width + c.X
}

// Coordinate converts a row‑major index back to a Cell.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Cell {
	return Cell{X: idx % g.width, Y: idx / g.width}
}
