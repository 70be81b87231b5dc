package projector

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"

	"github.com/katalvlaran/gridnav/gridgraph"
)

// Sentinel errors for projection.
var (
	// ErrBadScale indicates a non-positive or non-finite grid scale.
	ErrBadScale = errors.New("projector: scale must be a positive finite number")
	// ErrBadFootprint indicates a negative or non-finite footprint size.
	ErrBadFootprint = errors.New("projector: footprint size must be a non-negative finite number")
)

// MaxSamplesPerAxis bounds ⌊2·size/scale⌋ in Project. A footprint that would
// need more samples per axis is rejected with ErrBadFootprint.
const MaxSamplesPerAxis = 1 << 12

// Pose is an object's centre position in physical units and its heading.
type Pose struct {
	Position r2.Point
	Heading  s1.Angle
}

// Rotate applies the standard 2-D rotation by heading to p:
// x' = x·cosθ − y·sinθ, y' = x·sinθ + y·cosθ.
func Rotate(p r2.Point, heading s1.Angle) r2.Point {
	s, c := math.Sincos(heading.Radians())
	return r2.Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Project returns the grid cells covered by a square footprint around pose.
//
// Offsets run from -size to +size in steps of scale on both axes
// (-size + k·scale for k = 0..⌊2·size/scale⌋). Each offset is rotated by the
// heading, added to the position, divided by scale and rounded to the nearest
// cell. Duplicates are removed and the result is sorted by row, then column.
// A size/scale ratio above MaxSamplesPerAxis/2 is ErrBadFootprint.
func Project(pose Pose, size, scale float64) ([]gridgraph.Cell, error) {
	if err := validate(size, scale); err != nil {
		return nil, err
	}
	ratio := math.Floor(2*size/scale + 1e-9)
	if ratio > MaxSamplesPerAxis {
		return nil, fmt.Errorf("%w: size %v at scale %v needs %.0f samples per axis (max %d)",
			ErrBadFootprint, size, scale, ratio, MaxSamplesPerAxis)
	}

	steps := int(ratio)
	seen := make(map[gridgraph.Cell]struct{})
	var out []gridgraph.Cell
	for i := 0; i <= steps; i++ {
		for j := 0; j <= steps; j++ {
			off := r2.Point{X: -size + float64(i)*scale, Y: -size + float64(j)*scale}
			c := toCell(pose.Position.Add(Rotate(off, pose.Heading)), scale)
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Y != out[b].Y {
			return out[a].Y < out[b].Y
		}
		return out[a].X < out[b].X
	})

	return out, nil
}

// ProjectGoalMarker returns the cell directly behind the object, one sampling
// step clear of its footprint: offset (0, -(size+scale)) rotated by the
// heading. At axis-aligned headings the marker cell is never one of the
// cells Project returns for the same object; at other headings rounding can
// make them coincide, so callers placing a goal should leave that cell free.
func ProjectGoalMarker(pose Pose, size, scale float64) (gridgraph.Cell, error) {
	if err := validate(size, scale); err != nil {
		return gridgraph.Cell{}, err
	}
	off := r2.Point{X: 0, Y: -(size + scale)}

	return toCell(pose.Position.Add(Rotate(off, pose.Heading)), scale), nil
}

func validate(size, scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return ErrBadScale
	}
	if !(size >= 0) || math.IsInf(size, 0) {
		return ErrBadFootprint
	}
	return nil
}

// toCell divides p by scale and rounds to the nearest integer cell.
func toCell(p r2.Point, scale float64) gridgraph.Cell {
	q := p.Mul(1 / scale)
	return gridgraph.Cell{X: int(math.Round(q.X)), Y: int(math.Round(q.Y))}
}
