package gridgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrNonRectangular indicates terrain rows that do not match the grid shape.
	ErrNonRectangular = errors.New("gridgraph: terrain must match the grid dimensions")
	// ErrBadScale indicates a non-positive or non-finite scale factor.
	ErrBadScale = errors.New("gridgraph: scale must be a positive finite number")
	// ErrBadWeight indicates a terrain weight below 1 or not finite.
	// Weights below 1 would let the Euclidean heuristic overestimate.
	ErrBadWeight = errors.New("gridgraph: terrain weight must be finite and >= 1")
	// ErrOutOfBounds indicates a cell outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: cell out of bounds")
	// ErrBadLayout indicates a malformed layout document.
	ErrBadLayout = errors.New("gridgraph: bad layout")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// String returns "conn4" or "conn8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "conn8"
	}
	return "conn4"
}

// Cell identifies a grid location. X is the column, Y the row.
// Cells compare by value and are usable as map keys.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c translated by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// WeightedEdge is one outgoing step from a cell: the neighbor reached and the
// positive cost of entering it.
type WeightedEdge struct {
	To   Cell
	Cost float64
}

// Path is an ordered sequence of cells from start to goal inclusive.
// A replan supersedes a Path; it is never mutated in place.
type Path []Cell

// Len returns the number of cells in the path.
func (p Path) Len() int { return len(p) }

// Start returns the first cell and false if the path is empty.
func (p Path) Start() (Cell, bool) {
	if len(p) == 0 {
		return Cell{}, false
	}
	return p[0], true
}

// End returns the last cell and false if the path is empty.
func (p Path) End() (Cell, bool) {
	if len(p) == 0 {
		return Cell{}, false
	}
	return p[len(p)-1], true
}

// Contains reports whether c appears in the path.
func (p Path) Contains(c Cell) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of p (nil for nil).
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// GridOptions contains tunable parameters for a Grid.
type GridOptions struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// Scale maps one grid unit to physical distance units (e.g. millimetres).
	Scale float64
	// Terrain optionally holds per-cell entry weights, Terrain[y][x] >= 1.
	// Nil means uniform weight 1.
	Terrain [][]float64
}

// DefaultGridOptions returns a GridOptions with default settings:
// Conn=Conn4, Scale=1, uniform terrain.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Conn:  Conn4,
		Scale: 1,
	}
}
