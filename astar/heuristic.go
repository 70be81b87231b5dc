package astar

import (
	"math"

	"github.com/katalvlaran/gridnav/gridgraph"
)

// Heuristic estimates the remaining cost from a to b. Implementations must be
// pure; Search calls them from a single goroutine but several searches may
// share one heuristic concurrently.
type Heuristic func(a, b gridgraph.Cell) float64

// Euclidean is the straight-line distance between cell coordinates.
// Admissible for Conn4 and Conn8 grids whose weights are >= 1.
func Euclidean(a, b gridgraph.Cell) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Manhattan is |dx| + |dy|. Admissible on Conn4 grids only.
func Manhattan(a, b gridgraph.Cell) float64 {
	return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y))
}

// Octile is the exact unit-weight distance on Conn8 grids with √2 diagonals.
func Octile(a, b gridgraph.Cell) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

// Zero always returns 0; A* with Zero expands like Dijkstra.
func Zero(_, _ gridgraph.Cell) float64 { return 0 }
