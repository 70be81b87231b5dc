package replan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/google/uuid"

	"github.com/katalvlaran/gridnav/astar"
	"github.com/katalvlaran/gridnav/gridgraph"
	"github.com/katalvlaran/gridnav/projector"
)

// Loop owns one agent's run over a grid. The grid's start cell tracks the
// agent's position; its goal is the best-known goal. Each plan is written to
// the grid with SetPath and followed by reading it back with Path. Only the
// Loop writes the obstacle set during a run.
type Loop struct {
	grid *gridgraph.Grid
	obs  Observer
	exec Executor
	opts Options
	log  *slog.Logger

	state     State
	idx       int // grid.Path()[idx] is the agent's cell
	heading   s1.Angle
	confirmed bool
	ran       bool
	rep       Report
}

// New validates the collaborators and options and returns a Loop ready to Run.
// Every invalid option is reported in one error (each matching ErrBadOption).
func New(grid *gridgraph.Grid, obs Observer, exec Executor, opts ...Option) (*Loop, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	if obs == nil {
		return nil, ErrNilObserver
	}
	if exec == nil {
		return nil, ErrNilExecutor
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}

	return &Loop{
		grid:      grid,
		obs:       obs,
		exec:      exec,
		opts:      cfg,
		log:       cfg.Logger.With("run_id", cfg.RunID),
		state:     StatePlanning,
		confirmed: cfg.GoalConfirmed,
		rep:       Report{RunID: cfg.RunID},
	}, nil
}

// RunID returns the run identifier.
func (l *Loop) RunID() string { return l.opts.RunID }

// State returns the current state. It is only meaningful between runs or
// from the goroutine calling Run.
func (l *Loop) State() State { return l.state }

// Run drives the state machine until the agent arrives, the run fails or ctx
// is done. The report is returned in every case.
//
//   - Arrived: nil error.
//   - Terminated: ctx.Err(); no motion command is issued after cancellation
//     is observed.
//   - Failed: an error matching ErrPlanFailed, ErrMotion, ErrObserver or
//     ErrGoalNotFound.
//
// A Loop runs once; later calls return ErrAlreadyRun.
func (l *Loop) Run(ctx context.Context) (Report, error) {
	if l.ran {
		return l.report(), ErrAlreadyRun
	}
	l.ran = true
	if ctx == nil {
		ctx = context.Background()
	}

	l.log.Info("run started",
		"start", l.grid.Start(), "goal", l.grid.Goal(),
		"goal_confirmed", l.confirmed, "obstacles", l.grid.ObstacleCount())

	err := l.loop(ctx)
	rep := l.report()
	l.opts.Metrics.finish(l.state)

	if err != nil {
		l.log.Warn("run ended", "state", l.state, "error", err,
			"moves", rep.Moves, "replans", rep.Replans)
	} else {
		l.log.Info("run ended", "state", l.state,
			"moves", rep.Moves, "replans", rep.Replans, "scans", rep.Scans)
	}

	return rep, err
}

// loop dispatches on the current state once per iteration. Cancellation is
// checked at the top of every iteration.
func (l *Loop) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			l.transition(StateTerminated)
			return err
		}

		var err error
		switch l.state {
		case StatePlanning:
			err = l.plan(ctx)
		case StateFollowing:
			err = l.follow(ctx)
		case StateReplanTriggered:
			l.idx = 0
			l.rep.Replans++
			l.opts.Metrics.replan()
			l.transition(StatePlanning)
		default:
			return fmt.Errorf("replan: unexpected state %v", l.state)
		}

		if err != nil {
			// Failures after cancellation are reported as cancellation.
			if cerr := ctx.Err(); cerr != nil {
				l.transition(StateTerminated)
				return cerr
			}
			l.transition(StateFailed)
			return err
		}
		if l.state == StateArrived {
			return nil
		}
	}
}

// plan searches from the agent's cell to the current goal on a snapshot of
// the grid. The visited trace is written back to the live grid.
func (l *Loop) plan(ctx context.Context) error {
	snap := l.grid.Snapshot()
	start, goal := snap.Start(), snap.Goal()

	l.grid.ClearVisited()
	res, err := astar.Search(snap, start, goal,
		astar.WithHeuristic(l.opts.Heuristic),
		astar.WithContext(ctx),
		astar.WithOnVisit(l.grid.AddVisited),
	)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.opts.Metrics.searchFailed(failureReason(err))
		l.opts.EventLog.PlanFailed(start, goal, err)
		return fmt.Errorf("%w: %v→%v: %w", ErrPlanFailed, start, goal, err)
	}

	l.grid.SetPath(res.Path)
	l.idx = 0
	l.rep.Plans++
	l.rep.PathLength = len(res.Path)
	l.opts.Metrics.plan(res.Expanded)
	l.opts.EventLog.Plan(start, goal, len(res.Path), res.Cost, res.Expanded)
	l.log.Info("planned", "start", start, "goal", goal,
		"cells", len(res.Path), "cost", res.Cost, "expanded", res.Expanded)

	l.transition(StateFollowing)
	return nil
}

// follow runs one FOLLOWING iteration: poll, then scan, arrive or move.
func (l *Loop) follow(ctx context.Context) error {
	s, ok, err := l.obs.Poll(ctx, l.opts.PollTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", ErrObserver, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if ok {
		if err := l.register(s); err != nil {
			return err
		}
		// Never move in the iteration that registered a sighting.
		l.transition(StateReplanTriggered)
		return nil
	}

	path := l.grid.Path()
	if l.idx >= len(path)-1 {
		if l.confirmed {
			l.transition(StateArrived)
			return nil
		}
		return l.scan(ctx)
	}

	return l.step(ctx, path)
}

// register projects s into the obstacle set. A goal marker also moves and
// confirms the goal; its own cell and the agent's cell are kept free.
func (l *Loop) register(s Sighting) error {
	size := s.Size
	if size == 0 {
		size = l.opts.Footprint
	}
	scale := l.grid.Scale()

	cells, err := projector.Project(s.Pose, size, scale)
	if err != nil {
		return fmt.Errorf("%w: sighting %q: %w", ErrObserver, s.ID, err)
	}

	var goal *gridgraph.Cell
	if s.Kind == KindGoalMarker {
		g, err := projector.ProjectGoalMarker(s.Pose, size, scale)
		if err != nil {
			return fmt.Errorf("%w: sighting %q: %w", ErrObserver, s.ID, err)
		}
		if l.grid.InBounds(g) {
			goal = &g
		} else {
			l.log.Warn("goal marker outside grid", "id", s.ID, "cell", g)
		}
	}

	here := l.grid.Start()
	added := 0
	for _, c := range cells {
		if c == here || (goal != nil && c == *goal) {
			continue
		}
		if l.grid.AddObstacle(c) {
			added++
		}
	}
	if goal != nil {
		if err := l.grid.SetGoal(*goal); err != nil {
			return fmt.Errorf("%w: goal %v: %w", ErrObserver, *goal, err)
		}
		l.confirmed = true
	}

	l.rep.Detections++
	l.opts.Metrics.detection(s.Kind)
	l.opts.EventLog.Detection(s.ID, s.Kind.String(), added, goal)
	l.log.Info("sighting registered", "id", s.ID, "kind", s.Kind,
		"cells", len(cells), "added", added, "goal", l.grid.Goal())

	return nil
}

// scan turns in place while the goal is unconfirmed.
func (l *Loop) scan(ctx context.Context) error {
	if l.opts.MaxScans > 0 && l.rep.Scans >= l.opts.MaxScans {
		return fmt.Errorf("%w: %d scans", ErrGoalNotFound, l.rep.Scans)
	}
	if err := l.exec.TurnInPlace(ctx, l.opts.ScanAngle); err != nil {
		return fmt.Errorf("%w: turn %v: %w", ErrMotion, l.opts.ScanAngle, err)
	}

	l.heading = (l.heading + l.opts.ScanAngle).Normalized()
	l.rep.Scans++
	l.opts.Metrics.scan()
	l.opts.EventLog.Scan(l.opts.ScanAngle.Degrees())
	l.log.Debug("scanned", "heading", l.heading.Degrees())

	return nil
}

// step moves the agent one waypoint along path. The displacement uses
// independent x and y deltas in physical units, expressed in the agent's
// frame before the move.
func (l *Loop) step(ctx context.Context, path gridgraph.Path) error {
	from, to := path[l.idx], path[l.idx+1]
	world, target := displacement(from, to, l.grid.Scale())
	body := projector.Rotate(world, -l.heading)
	delta := (target - l.heading).Normalized()

	if err := l.exec.MoveTo(ctx, body, delta); err != nil {
		return fmt.Errorf("%w: %v→%v: %w", ErrMotion, from, to, err)
	}
	if err := l.grid.SetStart(to); err != nil {
		return fmt.Errorf("%w: %v: %w", ErrMotion, to, err)
	}

	l.heading = target
	l.idx++
	l.rep.Moves++
	l.opts.Metrics.move()
	l.opts.EventLog.Move(from, to)
	l.log.Debug("moved", "from", from, "to", to, "heading", l.heading.Degrees())

	return nil
}

// transition records a state change.
func (l *Loop) transition(s State) {
	if s == l.state {
		return
	}
	l.log.Debug("state", "from", l.state, "to", s)
	l.state = s
}

// report snapshots the run counters and the agent's pose.
func (l *Loop) report() Report {
	r := l.rep
	r.State = l.state
	r.Position = l.grid.Start()
	r.Heading = l.heading
	r.Goal = l.grid.Goal()
	r.GoalConfirmed = l.confirmed
	return r
}

// displacement returns the world-frame vector from one cell to the next in
// physical units and the heading that faces along it.
func displacement(from, to gridgraph.Cell, scale float64) (r2.Point, s1.Angle) {
	d := r2.Point{
		X: float64(to.X-from.X) * scale,
		Y: float64(to.Y-from.Y) * scale,
	}
	return d, s1.Angle(math.Atan2(d.Y, d.X))
}

// failureReason labels a search error for metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, astar.ErrNoPathFound):
		return "no_path"
	case errors.Is(err, astar.ErrInvalidCell):
		return "invalid_cell"
	case errors.Is(err, astar.ErrCycleDetected):
		return "cycle"
	default:
		return "other"
	}
}
