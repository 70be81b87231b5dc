package sim

import (
	"context"
	"sync"
	"time"

	"github.com/katalvlaran/gridnav/replan"
)

type pending struct {
	due int // revealed on the poll after this many polls
	s   replan.Sighting
}

// Observer replays scripted sightings. Each Poll reveals at most one due
// sighting, in script order.
type Observer struct {
	mu      sync.Mutex
	queue   []pending
	polls   int
	idle    time.Duration
	history []replan.Sighting
}

// NewObserver builds an Observer from script. A nil script yields an
// observer that never reports anything.
func NewObserver(script *Script) (*Observer, error) {
	o := &Observer{}
	if script == nil {
		return o, nil
	}
	for _, ss := range script.Sightings {
		s, err := ss.Sighting()
		if err != nil {
			return nil, err
		}
		o.queue = append(o.queue, pending{due: ss.AfterPolls, s: s})
	}

	return o, nil
}

// SetIdle makes polls that find nothing block for d (capped by the poll
// timeout) instead of returning at once.
func (o *Observer) SetIdle(d time.Duration) {
	o.mu.Lock()
	o.idle = d
	o.mu.Unlock()
}

// Poll implements replan.Observer.
func (o *Observer) Poll(ctx context.Context, timeout time.Duration) (replan.Sighting, bool, error) {
	if err := ctx.Err(); err != nil {
		return replan.Sighting{}, false, err
	}

	o.mu.Lock()
	seen := o.polls
	o.polls++
	for i, p := range o.queue {
		if p.due <= seen {
			o.queue = append(o.queue[:i:i], o.queue[i+1:]...)
			o.history = append(o.history, p.s)
			o.mu.Unlock()
			return p.s, true, nil
		}
	}
	wait := o.idle
	o.mu.Unlock()

	if wait > timeout {
		wait = timeout
	}
	if wait <= 0 {
		return replan.Sighting{}, false, nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return replan.Sighting{}, false, ctx.Err()
	case <-t.C:
		return replan.Sighting{}, false, nil
	}
}

// Polls returns the number of Poll calls so far.
func (o *Observer) Polls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.polls
}

// Pending returns the number of sightings not yet reported.
func (o *Observer) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}

// Reported returns the sightings reported so far, in order.
func (o *Observer) Reported() []replan.Sighting {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]replan.Sighting, len(o.history))
	copy(out, o.history)
	return out
}
