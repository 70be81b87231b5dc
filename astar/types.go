package astar

import (
	"context"
	"errors"

	"github.com/katalvlaran/gridnav/gridgraph"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGraph indicates that a nil Graph was passed to Search.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrInvalidCell indicates a start or goal outside the grid, or a start
	// on an obstructed cell.
	ErrInvalidCell = errors.New("astar: invalid cell")

	// ErrNoPathFound indicates the frontier emptied before the goal was reached.
	ErrNoPathFound = errors.New("astar: no path found")

	// ErrBadEdgeCost indicates an edge cost that is not a positive number.
	ErrBadEdgeCost = errors.New("astar: edge cost must be positive")

	// ErrCycleDetected indicates the predecessor chain from the goal did not
	// reach the start within the number of recorded predecessors.
	ErrCycleDetected = errors.New("astar: cycle detected in predecessor chain")

	// ErrExpansionLimit indicates the search expanded more cells than allowed.
	ErrExpansionLimit = errors.New("astar: expansion limit exceeded")

	// ErrBrokenPath indicates consecutive path cells that are not connected.
	ErrBrokenPath = errors.New("astar: path steps are not adjacent")
)

// Graph is the query surface Search needs. *gridgraph.Grid satisfies it.
type Graph interface {
	InBounds(c gridgraph.Cell) bool
	IsObstacle(c gridgraph.Cell) bool
	Neighbors(c gridgraph.Cell) []gridgraph.WeightedEdge
}

// Result is the outcome of a successful search.
type Result struct {
	Path     gridgraph.Path // start..goal inclusive
	Cost     float64        // sum of edge costs along Path
	Expanded int            // cells popped and expanded (stale entries excluded)
}

// Options configures Search.
//
// Heuristic     – remaining-cost estimate; default Euclidean.
// OnVisit       – called for every expanded cell (visited trace); may be nil.
// Ctx           – checked once per expansion; default context.Background().
// MaxExpansions – upper bound on expanded cells; 0 means unlimited.
type Options struct {
	Heuristic     Heuristic
	OnVisit       func(gridgraph.Cell)
	Ctx           context.Context
	MaxExpansions int
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// WithHeuristic sets the heuristic. A nil h keeps the default.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithOnVisit registers fn to receive every expanded cell, in expansion order.
// The callback has no effect on the search result.
func WithOnVisit(fn func(gridgraph.Cell)) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithContext makes the search abort with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxExpansions bounds the number of expanded cells.
// Must pass a non-negative value; negative values panic.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("astar: MaxExpansions must be non-negative")
		}
		o.MaxExpansions = n
	}
}

// DefaultOptions returns the options used when none are supplied:
// Euclidean heuristic, no visit hook, background context, no expansion limit.
func DefaultOptions() Options {
	return Options{
		Heuristic: Euclidean,
		Ctx:       context.Background(),
	}
}
