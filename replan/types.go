package replan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"go.uber.org/multierr"

	"github.com/katalvlaran/gridnav/astar"
	"github.com/katalvlaran/gridnav/gridgraph"
	"github.com/katalvlaran/gridnav/planlog"
	"github.com/katalvlaran/gridnav/projector"
)

// Sentinel errors returned by New and Run.
var (
	// ErrNilGrid indicates that New was called without a grid.
	ErrNilGrid = errors.New("replan: grid is nil")

	// ErrNilObserver indicates that New was called without an observer.
	ErrNilObserver = errors.New("replan: observer is nil")

	// ErrNilExecutor indicates that New was called without a motion executor.
	ErrNilExecutor = errors.New("replan: executor is nil")

	// ErrBadOption indicates an invalid option value.
	ErrBadOption = errors.New("replan: invalid option")

	// ErrPlanFailed wraps a search failure; the run ends in StateFailed.
	ErrPlanFailed = errors.New("replan: planning failed")

	// ErrMotion wraps a motion-executor failure; the run ends in StateFailed.
	ErrMotion = errors.New("replan: motion failed")

	// ErrObserver wraps an observer failure; the run ends in StateFailed.
	ErrObserver = errors.New("replan: observer failed")

	// ErrAlreadyRun indicates a second call to Run on the same Loop.
	ErrAlreadyRun = errors.New("replan: loop already ran")

	// ErrGoalNotFound indicates that the scan budget ran out before the goal
	// marker was sighted.
	ErrGoalNotFound = errors.New("replan: goal marker not found")
)

// State is a ReplanLoop state.
type State int

const (
	StatePlanning State = iota
	StateFollowing
	StateReplanTriggered
	StateArrived
	StateTerminated
	StateFailed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StatePlanning:
		return "planning"
	case StateFollowing:
		return "following"
	case StateReplanTriggered:
		return "replan_triggered"
	case StateArrived:
		return "arrived"
	case StateTerminated:
		return "terminated"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the loop exits in s.
func (s State) Terminal() bool {
	return s == StateArrived || s == StateTerminated || s == StateFailed
}

// SightingKind distinguishes the goal marker from generic obstacles.
type SightingKind int

const (
	KindObstacle SightingKind = iota
	KindGoalMarker
)

// String returns "obstacle" or "goal_marker".
func (k SightingKind) String() string {
	if k == KindGoalMarker {
		return "goal_marker"
	}
	return "obstacle"
}

// Sighting is one detected object: its identity, kind, centre pose in
// physical units and square footprint size (half-extent).
type Sighting struct {
	ID   string
	Kind SightingKind
	Pose projector.Pose
	Size float64 // 0 means the loop's default footprint
}

// Observer reports newly detected objects.
// Poll blocks for at most timeout and returns ok=false when nothing new was
// seen. It must return promptly once ctx is done.
type Observer interface {
	Poll(ctx context.Context, timeout time.Duration) (s Sighting, ok bool, err error)
}

// Executor moves the agent.
// MoveTo takes a displacement in the agent's body frame (physical units,
// x forward) and the heading change to apply; both calls block until the
// motion completes or fails.
type Executor interface {
	MoveTo(ctx context.Context, displacement r2.Point, headingDelta s1.Angle) error
	TurnInPlace(ctx context.Context, angle s1.Angle) error
}

// Report summarises a run. It is returned by Run on success and failure.
type Report struct {
	RunID         string
	State         State
	Position      gridgraph.Cell
	Heading       s1.Angle
	Goal          gridgraph.Cell
	GoalConfirmed bool
	Plans         int // successful searches
	Replans       int // REPLAN_TRIGGERED transitions
	Moves         int
	Scans         int
	Detections    int
	PathLength    int // cells in the last plan
}

// Options configures a Loop.
//
// PollTimeout   – upper bound on each Observer.Poll; default 5s.
// ScanAngle     – in-place turn while the goal is unconfirmed; default 30°.
// Footprint     – half-extent of a sighting whose Size is 0; default 50.
// Heuristic     – search heuristic; default astar.Euclidean.
// GoalConfirmed – the grid goal is already known; no goal marker is needed.
// MaxScans      – scan turns allowed without confirming the goal; 0 = unbounded.
// RunID         – identifier of the run; default a fresh UUID.
// Logger        – structured logger; default discards.
// Metrics       – optional Prometheus collectors.
// EventLog      – optional JSONL event log.
type Options struct {
	PollTimeout   time.Duration
	ScanAngle     s1.Angle
	Footprint     float64
	Heuristic     astar.Heuristic
	GoalConfirmed bool
	MaxScans      int
	RunID         string
	Logger        *slog.Logger
	Metrics       *Metrics
	EventLog      *planlog.Log
}

// Option represents a functional option for configuring a Loop.
type Option func(*Options)

// WithPollTimeout bounds each Observer.Poll call.
func WithPollTimeout(d time.Duration) Option {
	return func(o *Options) { o.PollTimeout = d }
}

// WithScanAngle sets the in-place turn used while searching for the goal.
func WithScanAngle(a s1.Angle) Option {
	return func(o *Options) { o.ScanAngle = a }
}

// WithFootprint sets the default footprint half-extent in physical units.
func WithFootprint(size float64) Option {
	return func(o *Options) { o.Footprint = size }
}

// WithHeuristic sets the search heuristic. A nil h keeps the default.
func WithHeuristic(h astar.Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithGoalConfirmed marks the grid goal as known from the start.
func WithGoalConfirmed(confirmed bool) Option {
	return func(o *Options) { o.GoalConfirmed = confirmed }
}

// WithMaxScans bounds the number of scan turns; 0 disables the bound.
func WithMaxScans(n int) Option {
	return func(o *Options) { o.MaxScans = n }
}

// WithRunID sets the run identifier used in logs, metrics and the report.
func WithRunID(id string) Option {
	return func(o *Options) { o.RunID = id }
}

// WithLogger sets the structured logger. A nil l keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithEventLog attaches a JSONL event log.
func WithEventLog(l *planlog.Log) Option {
	return func(o *Options) { o.EventLog = l }
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		PollTimeout: 5 * time.Second,
		ScanAngle:   30 * s1.Degree,
		Footprint:   50,
		Heuristic:   astar.Euclidean,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// validate reports every invalid field at once.
func (o Options) validate() error {
	var err error
	if o.PollTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: poll timeout %v must be positive", ErrBadOption, o.PollTimeout))
	}
	if a := o.ScanAngle.Radians(); a == 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		err = multierr.Append(err, fmt.Errorf("%w: scan angle %v must be non-zero and finite", ErrBadOption, o.ScanAngle))
	}
	if !(o.Footprint >= 0) || math.IsInf(o.Footprint, 0) {
		err = multierr.Append(err, fmt.Errorf("%w: footprint %v must be non-negative and finite", ErrBadOption, o.Footprint))
	}
	if o.MaxScans < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max scans %d must be non-negative", ErrBadOption, o.MaxScans))
	}
	return err
}
