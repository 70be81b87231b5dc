// Package replan drives an agent along A* paths over a gridgraph.Grid and
// replans whenever the world model changes.
//
// What:
//
//	A Loop is a single sequential state machine:
//
//	  PLANNING → FOLLOWING → (REPLAN_TRIGGERED | ARRIVED) → PLANNING | TERMINATED
//
//	PLANNING searches from the agent's cell to the best-known goal on a
//	snapshot of the grid. FOLLOWING polls the Observer once per iteration: a
//	sighting is projected into the obstacle set (and, for the goal marker,
//	moves and confirms the goal) and forces a replan without moving. With no
//	sighting the loop either scans in place (goal unconfirmed, path end
//	reached), arrives (goal confirmed, path end reached) or issues one MoveTo
//	to the next waypoint.
//
// Why:
//
//   - Obstacle discovery always wins over motion: the iteration that registers
//     a sighting never issues a move command.
//   - The obstacle set only grows, so a failed search cannot succeed later
//     without a goal change; search failure ends the run in StateFailed.
//
// Cancellation:
//
//	The context passed to Run is checked at the top of every iteration and
//	again after each Observer poll. Once it is done no further motion command
//	is issued, the state becomes StateTerminated and Run returns ctx.Err().
//
// Errors:
//
//   - ErrNilGrid, ErrNilObserver, ErrNilExecutor, ErrBadOption from New.
//   - ErrPlanFailed wraps astar errors (astar.ErrNoPathFound, astar.ErrInvalidCell,
//     astar.ErrCycleDetected, ...).
//   - ErrMotion wraps executor failures; ErrObserver wraps observer failures.
//   - ErrGoalNotFound when WithMaxScans is exhausted.
package replan
