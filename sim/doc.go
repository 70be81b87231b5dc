// Package sim provides in-process stand-ins for the physical collaborators
// of a replan.Loop.
//
// Observer replays a Script of sightings, revealing each one after a given
// number of polls. Executor integrates body-frame motion commands into a
// world pose and records every command, with optional failure injection.
// Both are safe for concurrent use.
package sim
