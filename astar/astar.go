package astar

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/gridnav/gridgraph"
)

// Search runs A* once from start to goal over g and returns the minimum-cost
// path under g's edge weights, provided the heuristic is admissible.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. start and goal must be in bounds (ErrInvalidCell).
//  3. start must not be obstructed (ErrInvalidCell).
//  4. an obstructed goal can never be reached; the returned error matches
//     both ErrNoPathFound and ErrInvalidCell.
//
// During the search every expanded cell is passed to Options.OnVisit. A
// non-positive edge cost aborts with ErrBadEdgeCost. When the frontier empties
// the error is ErrNoPathFound; a partial path is never returned.
//
// Complexity:
//
//   - Time:  O(E log V)
//   - Space: O(V + E)
func Search(g Graph, start, goal gridgraph.Cell, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return Result{}, ErrNilGraph
	}
	if !g.InBounds(start) {
		return Result{}, fmt.Errorf("%w: start %v out of bounds", ErrInvalidCell, start)
	}
	if !g.InBounds(goal) {
		return Result{}, fmt.Errorf("%w: goal %v out of bounds", ErrInvalidCell, goal)
	}
	if g.IsObstacle(start) {
		return Result{}, fmt.Errorf("%w: start %v is obstructed", ErrInvalidCell, start)
	}
	if g.IsObstacle(goal) {
		return Result{}, fmt.Errorf("%w: goal %v is obstructed (%w)", ErrNoPathFound, goal, ErrInvalidCell)
	}

	r := &runner{
		g:         g,
		options:   cfg,
		goal:      goal,
		costSoFar: map[gridgraph.Cell]float64{start: 0},
		cameFrom:  make(map[gridgraph.Cell]gridgraph.Cell),
	}
	r.push(start, 0, 0)

	return r.process(start)
}

// runner holds the SearchState for a single invocation. It is never shared.
type runner struct {
	g         Graph
	options   Options
	goal      gridgraph.Cell
	costSoFar map[gridgraph.Cell]float64        // best known cost from start
	cameFrom  map[gridgraph.Cell]gridgraph.Cell // predecessor on the best known path
	pq        frontier
	seq       uint64
	expanded  int
}

// push enqueues c with cost-so-far gc and the given priority.
func (r *runner) push(c gridgraph.Cell, gc, priority float64) {
	heap.Push(&r.pq, frontierItem{cell: c, g: gc, priority: priority, seq: r.seq})
	r.seq++
}

// process is the main loop: pop the minimum-priority cell, skip stale
// entries, stop at the goal, otherwise relax its neighbours.
func (r *runner) process(start gridgraph.Cell) (Result, error) {
	for r.pq.Len() > 0 {
		if err := r.options.Ctx.Err(); err != nil {
			return Result{}, err
		}

		item := heap.Pop(&r.pq).(frontierItem)
		// A cheaper entry for this cell was pushed after this one.
		if item.g > r.costSoFar[item.cell] {
			continue
		}

		r.expanded++
		if r.options.MaxExpansions > 0 && r.expanded > r.options.MaxExpansions {
			return Result{}, fmt.Errorf("%w: %d", ErrExpansionLimit, r.options.MaxExpansions)
		}
		if r.options.OnVisit != nil {
			r.options.OnVisit(item.cell)
		}

		if item.cell == r.goal {
			path, err := r.reconstruct(start)
			if err != nil {
				return Result{}, err
			}
			return Result{Path: path, Cost: item.g, Expanded: r.expanded}, nil
		}

		if err := r.relax(item.cell, item.g); err != nil {
			return Result{}, err
		}
	}

	return Result{}, fmt.Errorf("%w: %v unreachable from %v after %d expansions",
		ErrNoPathFound, r.goal, start, r.expanded)
}

// relax examines each edge leaving u and records any strictly cheaper route.
func (r *runner) relax(u gridgraph.Cell, gu float64) error {
	for _, e := range r.g.Neighbors(u) {
		if !(e.Cost > 0) || math.IsInf(e.Cost, 0) {
			return fmt.Errorf("%w: edge %v→%v cost=%v", ErrBadEdgeCost, u, e.To, e.Cost)
		}

		newCost := gu + e.Cost
		if old, seen := r.costSoFar[e.To]; seen && newCost >= old {
			continue
		}

		r.costSoFar[e.To] = newCost
		r.cameFrom[e.To] = u
		r.push(e.To, newCost, newCost+r.options.Heuristic(e.To, r.goal))
	}

	return nil
}

// reconstruct walks predecessors from the goal back to start and reverses.
// The walk may take at most len(cameFrom) steps; more means the chain loops.
func (r *runner) reconstruct(start gridgraph.Cell) (gridgraph.Path, error) {
	path := gridgraph.Path{r.goal}
	limit := len(r.cameFrom)
	for cur := r.goal; cur != start; {
		if len(path) > limit {
			return nil, fmt.Errorf("%w: no start after %d steps from %v", ErrCycleDetected, limit, r.goal)
		}
		prev, ok := r.cameFrom[cur]
		if !ok {
			return nil, fmt.Errorf("%w: chain broken at %v", ErrCycleDetected, cur)
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// PathCost recomputes the cost of p from g's edge weights.
// Each consecutive pair must be joined by an edge (ErrBrokenPath).
// An empty or single-cell path costs 0.
func PathCost(g Graph, p gridgraph.Path) (float64, error) {
	if g == nil {
		return 0, ErrNilGraph
	}
	total := 0.0
	for i := 1; i < len(p); i++ {
		found := false
		for _, e := range g.Neighbors(p[i-1]) {
			if e.To == p[i] {
				total += e.Cost
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %v→%v", ErrBrokenPath, p[i-1], p[i])
		}
	}

	return total, nil
}
