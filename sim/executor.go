package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"

	"github.com/katalvlaran/gridnav/projector"
)

// ErrInjected is returned by Executor once its failure budget is spent.
var ErrInjected = errors.New("sim: injected motion failure")

// CommandKind labels a recorded motion command.
type CommandKind string

const (
	CommandMove CommandKind = "move"
	CommandTurn CommandKind = "turn"
)

// Command is one motion command received by the Executor.
type Command struct {
	Kind         CommandKind
	Displacement r2.Point // body frame, move only
	Angle        s1.Angle // heading delta (move) or turn angle
}

// Executor integrates motion commands into a world pose.
// MoveTo rotates the body-frame displacement by the current heading, adds it
// to the position and then applies the heading delta.
type Executor struct {
	mu        sync.Mutex
	pose      projector.Pose
	commands  []Command
	moves     int
	failAfter int // 0 never fails
}

// NewExecutor returns an Executor starting at pose.
func NewExecutor(start projector.Pose) *Executor {
	return &Executor{pose: start}
}

// FailAfter makes every MoveTo after n successful moves return ErrInjected.
// n = 0 disables injection.
func (e *Executor) FailAfter(n int) {
	e.mu.Lock()
	e.failAfter = n
	e.mu.Unlock()
}

// MoveTo implements replan.Executor.
func (e *Executor) MoveTo(ctx context.Context, displacement r2.Point, headingDelta s1.Angle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.failAfter > 0 && e.moves >= e.failAfter {
		return fmt.Errorf("%w: after %d moves", ErrInjected, e.moves)
	}
	world := projector.Rotate(displacement, e.pose.Heading)
	e.pose.Position = e.pose.Position.Add(world)
	e.pose.Heading = (e.pose.Heading + headingDelta).Normalized()
	e.moves++
	e.commands = append(e.commands, Command{Kind: CommandMove, Displacement: displacement, Angle: headingDelta})

	return nil
}

// TurnInPlace implements replan.Executor.
func (e *Executor) TurnInPlace(ctx context.Context, angle s1.Angle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pose.Heading = (e.pose.Heading + angle).Normalized()
	e.commands = append(e.commands, Command{Kind: CommandTurn, Angle: angle})

	return nil
}

// Pose returns the integrated world pose.
func (e *Executor) Pose() projector.Pose {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pose
}

// Commands returns a copy of every command received, in order.
func (e *Executor) Commands() []Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Command, len(e.commands))
	copy(out, e.commands)
	return out
}

// Moves returns the number of successful MoveTo calls.
func (e *Executor) Moves() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moves
}
