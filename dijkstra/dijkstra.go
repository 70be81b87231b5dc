package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/gridnav/gridgraph"
)

// Dijkstra computes minimum costs from the source cell (Options.Source,
// default (0,0)) to every reachable free cell of g.
//
// Returns:
//
//   - dist: map from cell to minimum cost; unreachable cells are absent.
//   - prev: predecessor map if ReturnPath=true (nil otherwise).
//     prev[v] == u means the cheapest route to v arrives from u.
//     The source has no entry.
//   - err:  error if inputs are invalid or a negative weight is met.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. Source must be in bounds and free (ErrVertexNotFound).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g Graph, opts ...Option) (map[gridgraph.Cell]float64, map[gridgraph.Cell]gridgraph.Cell, error) {
	// 1) Build Options
	cfg := DefaultOptions(gridgraph.Cell{})
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate graph is non-nil
	if g == nil {
		return nil, nil, ErrNilGraph
	}

	// 3) Validate Source exists and is free
	if !g.InBounds(cfg.Source) || g.IsObstacle(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: %v", ErrVertexNotFound, cfg.Source)
	}

	// 4) Initialize runner with all maps and the heap.
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[gridgraph.Cell]float64),
		visited: make(map[gridgraph.Cell]bool),
	}
	if cfg.ReturnPath {
		r.prev = make(map[gridgraph.Cell]gridgraph.Cell)
	}

	r.init()
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	return r.dist, r.prev, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       Graph                             // read-only within Dijkstra
	options Options                           // Source and thresholds
	dist    map[gridgraph.Cell]float64        // best known cost from Source
	prev    map[gridgraph.Cell]gridgraph.Cell // predecessor on the cheapest route
	visited map[gridgraph.Cell]bool           // cost finalized
	pq      nodePQ                            // lazy min-heap
}

// init sets the source cost to zero and pushes it into the heap.
func (r *runner) init() {
	r.dist[r.options.Source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{
		cell: r.options.Source,
		dist: 0,
	})
}

// process is the core loop of Dijkstra's algorithm. It repeatedly extracts the
// cell with the minimum cost and relaxes its outgoing edges.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable cells processed).
//   - The minimum cost in the heap exceeds MaxDistance.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)

		// Skip stale heap entries for settled cells.
		if r.visited[item.cell] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.cell] = true

		if err := r.relax(item.cell); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each edge leaving u and improves costs to its neighbours.
// Assumes r.dist[u] is finalized before calling relax(u).
func (r *runner) relax(u gridgraph.Cell) error {
	for _, e := range r.g.Neighbors(u) {
		if e.Cost < 0 || math.IsNaN(e.Cost) {
			return fmt.Errorf("%w: edge %v→%v weight=%v", ErrNegativeWeight, u, e.To, e.Cost)
		}

		newDist := r.dist[u] + e.Cost
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strictly better only; equal costs keep the first predecessor.
		if old, ok := r.dist[e.To]; ok && newDist >= old {
			continue
		}

		r.dist[e.To] = newDist
		if r.prev != nil {
			r.prev[e.To] = u
		}
		heap.Push(&r.pq, &nodeItem{
			cell: e.To,
			dist: newDist,
		})
	}

	return nil
}

// nodeItem represents a cell and its current cost from the source.
type nodeItem struct {
	cell gridgraph.Cell
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority.
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element from the heap.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
