// Package gridgraph is the world model a planner searches: a rectangular grid
// of cells with a growing obstacle set, per-cell terrain weights, a start and a
// goal, and the most recent path and visited trace.
//
// What:
//
//   - Grid holds cell states behind a sync.RWMutex so a replanning loop can
//     mutate it while readers query neighbours.
//   - Neighbors yields WeightedEdge values under Conn4 or Conn8 connectivity.
//   - ConnectedComponents and Reachable analyse free-cell connectivity.
//   - Layout decodes a pre-authored grid description (YAML or JSON).
//
// Why:
//
//   - Search algorithms need a narrow query surface (InBounds, IsObstacle,
//     Neighbors) and nothing else.
//   - Obstacles are only ever added; a cell is never un-marked.
//
// Complexity:
//
//   - Neighbors:           O(d), d = 4 or 8.
//   - AddObstacle:         O(1).
//   - Snapshot:            O(W×H).
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid:      width or height is not positive.
//   - ErrNonRectangular: terrain rows do not match the grid shape.
//   - ErrBadScale:       scale is not a positive finite number.
//   - ErrBadWeight:      a terrain weight is below 1 or not finite.
//   - ErrOutOfBounds:    a start or goal lies outside the grid.
//   - ErrBadLayout:      a layout document is malformed.
package gridgraph
