// Package gridnav plans and follows paths across an occupancy grid while the
// world is still being discovered.
//
// 🚀 What is gridnav?
//
//	A small, thread-safe toolkit for a mobile agent that knows its map only
//	partly:
//		• World model: cells, weighted neighbours, a grow-only obstacle set
//		• Path search: A* with pluggable admissible heuristics
//		• Cost fields: Dijkstra from a single source (reference oracle)
//		• Projection: rotated object footprints rasterised into cells
//		• Replanning: a state machine that follows, scans and replans
//
// ✨ Why gridnav?
//
//   - Deterministic – equal-priority frontier entries pop in insertion order
//   - Loud failures – no partial paths, no silent motion after an error
//   - Cancellable – one context stops search and motion alike
//   - Observable – slog logs, Prometheus metrics and a JSONL event log
//
// Subpackages:
//
//	gridgraph/   Cell, WeightedEdge, Path, Grid and YAML layouts
//	astar/       Heuristic and Search
//	dijkstra/    single-source cost field over a grid
//	projector/   Project and ProjectGoalMarker
//	replan/      Loop (PLANNING → FOLLOWING → REPLAN_TRIGGERED | ARRIVED)
//	planlog/     per-run JSONL event log
//	sim/         scripted observer and pose-integrating executor
//	config/      GRIDNAV_* environment and .env loading
//	cmd/gridnav  command wiring all of the above
//
// Quick ASCII example (S start, G goal, # obstacle, * path):
//
//	S * * # .
//	. . * # .
//	. . * * G
//
//	go run ./cmd/gridnav cmd/gridnav/testdata/arena.yaml cmd/gridnav/testdata/cubes.yaml
package gridnav
