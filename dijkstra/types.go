// Package dijkstra defines core types and configuration options
// for Dijkstra's single-source cost field over a grid.
//
// Dijkstra computes the minimum cost from a source cell to every reachable
// free cell. Edge costs come from the grid's Neighbors query.
//
// Complexity:
//
//	– Time:  O((V + E) log V)   where V = reachable cells, E = edges relaxed
//	– Space: O(V + E)
//
// Options:
//
//	– Source:      starting cell (must be in bounds and free).
//	– ReturnPath:  if true, return the predecessor map for path reconstruction.
//	– MaxDistance: optional cap on costs to explore; cells beyond this are skipped.
//
// Errors (sentinel):
//
//	– ErrNilGraph        if the provided graph is nil.
//	– ErrVertexNotFound  if the source cell is out of bounds or obstructed.
//	– ErrNegativeWeight  if a negative or NaN edge cost is encountered.
//	– ErrBadMaxDistance  if MaxDistance < 0.
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/gridnav/gridgraph"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source cell is off the grid or obstructed.
	ErrVertexNotFound = errors.New("dijkstra: source cell not found in graph")

	// ErrNegativeWeight indicates that a negative edge weight was encountered.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value,
	// which is not meaningful for a distance threshold.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Graph is the query surface Dijkstra needs. *gridgraph.Grid satisfies it.
type Graph interface {
	InBounds(c gridgraph.Cell) bool
	IsObstacle(c gridgraph.Cell) bool
	Neighbors(c gridgraph.Cell) []gridgraph.WeightedEdge
}

// Options configures the behavior of the Dijkstra algorithm.
//
// Source      – starting cell.
// ReturnPath  – if true, return the predecessor map; otherwise prev map is nil.
// MaxDistance – cells whose cost would exceed it are not explored. Default +Inf.
type Options struct {
	Source      gridgraph.Cell
	ReturnPath  bool
	MaxDistance float64
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting cell.
func Source(c gridgraph.Cell) Option {
	return func(o *Options) {
		o.Source = c
	}
}

// WithReturnPath enables generation of the predecessor map in the result.
// If not set, the predecessor map is not returned (prev == nil).
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance sets a maximum cost threshold.
// Cells whose shortest cost would exceed this value are not explored.
// Must pass a non-negative value; negative values cause a panic with ErrBadMaxDistance.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// DefaultOptions returns an Options struct initialized with defaults for the
// given source: no predecessor map, no distance cap.
func DefaultOptions(source gridgraph.Cell) Options {
	return Options{
		Source:      source,
		ReturnPath:  false,
		MaxDistance: math.Inf(1),
	}
}
