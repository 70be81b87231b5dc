// Package astar implements A* shortest-path search over a weighted grid.
//
// A* expands cells in order of f = g + h, where g is the cost so far from the
// start and h is a heuristic estimate of the remaining cost to the goal. With
// an admissible heuristic (never overestimating) the returned path has minimum
// total cost.
//
// Complexity:
//
//   - Time:  O(E log V), V = cells expanded, E = edges relaxed.
//   - Space: O(V + E) for cost/predecessor maps and the lazy frontier.
//
// Notes on implementation choices:
//
//   - The frontier is a binary heap ordered by (priority, insertion sequence),
//     so equal priorities pop in insertion order and runs are reproducible.
//   - Decrease-key is lazy: an improved cell is pushed again and the stale
//     entry is discarded when popped.
//   - A cell is re-enqueued only on a strictly lower cost, which also reopens
//     finalised cells when the heuristic is admissible but inconsistent.
//   - Path reconstruction is bounded by the number of recorded predecessors;
//     exceeding the bound is ErrCycleDetected rather than an endless loop.
//
// Errors (sentinel):
//
//   - ErrNilGraph       if the graph is nil.
//   - ErrInvalidCell    if start or goal is out of bounds, or start is obstructed.
//   - ErrNoPathFound    if the goal is unreachable (also for an obstructed goal).
//   - ErrBadEdgeCost    if the graph yields a non-positive or NaN edge cost.
//   - ErrCycleDetected  if the predecessor chain does not reach the start.
//   - ErrExpansionLimit if WithMaxExpansions is exceeded.
package astar
