// Package planlog writes one JSONL event file per replanning run.
//
// Events capture every decision the loop takes: each plan with its cost and
// expansion count, failed searches, detections and the cells they added, moves,
// scan turns, and the final state with counters.
//
// Design constraints:
//   - All Log methods are nil-safe (no-op on nil receiver) so the loop does not
//     need nil checks before every call.
//   - Registry is the sole owner of JSONL persistence; the loop never opens files.
package planlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/katalvlaran/gridnav/gridgraph"
)

// EventKind labels a single structured event in the run log.
type EventKind string

const (
	KindRunBegin   EventKind = "run_begin"
	KindRunEnd     EventKind = "run_end"
	KindPlan       EventKind = "plan"
	KindPlanFailed EventKind = "plan_failed"
	KindDetection  EventKind = "detection"
	KindMove       EventKind = "move"
	KindScan       EventKind = "scan"
)

// Event is one JSONL line in the run log.
// Fields are omitempty so each event only serialises relevant data.
type Event struct {
	Kind      EventKind `json:"kind"`
	Timestamp string    `json:"ts"`

	// run_begin / run_end
	RunID     string `json:"run_id,omitempty"`
	Layout    string `json:"layout,omitempty"`
	State     string `json:"state,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms,omitempty"`
	Plans     int    `json:"plans,omitempty"`
	Moves     int    `json:"moves,omitempty"`
	Scans     int    `json:"scans,omitempty"`

	// plan / plan_failed
	Start    *gridgraph.Cell `json:"start,omitempty"`
	Goal     *gridgraph.Cell `json:"goal,omitempty"`
	PathLen  int             `json:"path_len,omitempty"`
	Cost     float64         `json:"cost,omitempty"`
	Expanded int             `json:"expanded,omitempty"`
	Error    string          `json:"error,omitempty"`

	// detection
	ObjectID   string `json:"object_id,omitempty"`
	ObjectKind string `json:"object_kind,omitempty"`
	CellsAdded int    `json:"cells_added,omitempty"`

	// move / scan
	From     *gridgraph.Cell `json:"from,omitempty"`
	To       *gridgraph.Cell `json:"to,omitempty"`
	AngleDeg float64         `json:"angle_deg,omitempty"`
}

// Log is a handle for writing structured events for one run.
//
// Expectations:
//   - All methods are nil-safe (no-op when called on nil *Log)
//   - Concurrent writes are safe (mutex-protected)
type Log struct {
	runID   string
	started time.Time
	mu      sync.Mutex
	f       *os.File
	plans   int
	moves   int
	scans   int
}

// Registry maps run IDs to open Logs.
//
// Expectations:
//   - Open creates the log directory if absent
//   - Open writes a run_begin event as the first JSONL line
//   - Open returns the existing log when called twice for the same runID
//   - Close writes run_end, closes the file and forgets the runID
//   - Close no-ops gracefully when runID is not registered
type Registry struct {
	dir  string
	mu   sync.Mutex
	logs map[string]*Log
}

// NewRegistry creates a Registry that writes one JSONL file per run under dir.
func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:  dir,
		logs: make(map[string]*Log),
	}
}

// Open creates a new Log for runID, writes a run_begin event, and registers it.
// Returns nil (a valid no-op Log) when the file cannot be created.
func (r *Registry) Open(runID, layout string) *Log {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.logs[runID]; ok {
		return l
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		slog.Error("[PLANLOG] could not create dir", "dir", r.dir, "error", err)
		return nil
	}
	path := filepath.Join(r.dir, runID+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Error("[PLANLOG] could not open log file", "path", path, "error", err)
		return nil
	}

	l := &Log{runID: runID, started: time.Now(), f: f}
	r.logs[runID] = l
	l.write(Event{
		Kind:   KindRunBegin,
		RunID:  runID,
		Layout: layout,
	})
	return l
}

// Get returns the Log for runID, or nil if not found.
func (r *Registry) Get(runID string) *Log {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logs[runID]
}

// Close writes a run_end event with the final state, closes the file and
// removes the entry. Safe to call on a nil *Registry or unknown runID.
func (r *Registry) Close(runID, state string) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	l, ok := r.logs[runID]
	delete(r.logs, runID)
	r.mu.Unlock()
	if !ok {
		return nil
	}

	return l.finish(state)
}

// finish writes run_end and closes the file.
func (l *Log) finish(state string) error {
	l.mu.Lock()
	e := Event{
		Kind:      KindRunEnd,
		RunID:     l.runID,
		State:     state,
		ElapsedMs: time.Since(l.started).Milliseconds(),
		Plans:     l.plans,
		Moves:     l.moves,
		Scans:     l.scans,
	}
	l.mu.Unlock()
	l.write(e)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	if err != nil {
		return fmt.Errorf("planlog: close %s: %w", l.runID, err)
	}
	return nil
}

// Plan writes a plan event for a successful search.
func (l *Log) Plan(start, goal gridgraph.Cell, pathLen int, cost float64, expanded int) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.plans++
	l.mu.Unlock()
	l.write(Event{
		Kind:     KindPlan,
		Start:    &start,
		Goal:     &goal,
		PathLen:  pathLen,
		Cost:     cost,
		Expanded: expanded,
	})
}

// PlanFailed writes a plan_failed event.
func (l *Log) PlanFailed(start, goal gridgraph.Cell, err error) {
	if l == nil {
		return
	}
	l.write(Event{
		Kind:  KindPlanFailed,
		Start: &start,
		Goal:  &goal,
		Error: err.Error(),
	})
}

// Detection writes a detection event. goal is nil for plain obstacles.
func (l *Log) Detection(objectID, kind string, cellsAdded int, goal *gridgraph.Cell) {
	if l == nil {
		return
	}
	l.write(Event{
		Kind:       KindDetection,
		ObjectID:   objectID,
		ObjectKind: kind,
		CellsAdded: cellsAdded,
		Goal:       goal,
	})
}

// Move writes a move event.
func (l *Log) Move(from, to gridgraph.Cell) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.moves++
	l.mu.Unlock()
	l.write(Event{
		Kind: KindMove,
		From: &from,
		To:   &to,
	})
}

// Scan writes a scan event for an in-place turn.
func (l *Log) Scan(angleDeg float64) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.scans++
	l.mu.Unlock()
	l.write(Event{
		Kind:     KindScan,
		AngleDeg: angleDeg,
	})
}

// write appends one JSON line to the run log file. Adds timestamp, mutex-protected.
func (l *Log) write(e Event) {
	e.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("[PLANLOG] marshal event", "error", err)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return
	}
	if _, err = fmt.Fprintf(l.f, "%s\n", data); err != nil {
		slog.Error("[PLANLOG] write event", "error", err)
	}
}
