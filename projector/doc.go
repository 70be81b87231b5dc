// Package projector rasterises an observed object into grid cells.
//
// An object is a square footprint centred on a pose. Project samples offsets
// across the footprint every grid-scale step, rotates them by the object's
// heading, translates them to the object's position and converts the result
// to grid coordinates. ProjectGoalMarker projects the single point behind the
// object where a goal marker sits.
//
// No bounds clipping is performed: cells outside the grid are returned as-is
// and the grid decides whether to reject them.
package projector
