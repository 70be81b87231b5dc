// Package dijkstra implements Dijkstra's shortest-path algorithm on a weighted grid.
//
// It is the exhaustive counterpart of package astar: where A* stops at one
// goal, Dijkstra settles every reachable cell. The planner uses it as an exact
// reference and to measure how much of the grid is reachable from the agent.
//
// Notes on implementation choices:
//
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap
//     and ignoring stale entries.
//   - We stop exploring once the minimum cost in the heap exceeds MaxDistance.
//   - Cells absent from the returned cost map are unreachable.
package dijkstra
