package gridgraph

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout is a pre-authored grid description: dimensions, scale, start,
// candidate goals and static obstacles. JSON documents decode as well, since
// YAML is a superset of JSON.
//
//	name: arena
//	width: 26
//	height: 18
//	scale: 25
//	connectivity: 4
//	start: [1, 1]
//	goals: [[13, 9]]
//	obstacles: [[5, 5], [5, 6]]
type Layout struct {
	Name         string      `yaml:"name"`
	Width        int         `yaml:"width"`
	Height       int         `yaml:"height"`
	Scale        float64     `yaml:"scale"`
	Connectivity int         `yaml:"connectivity"`
	Start        [2]int      `yaml:"start"`
	Goals        [][2]int    `yaml:"goals"`
	Obstacles    [][2]int    `yaml:"obstacles"`
	Terrain      [][]float64 `yaml:"terrain"`
}

// LoadLayout decodes a single layout document from r.
func LoadLayout(r io.Reader) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrBadLayout)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadLayout, err)
	}

	return &l, nil
}

// LoadLayoutFile opens path and decodes it with LoadLayout.
func LoadLayoutFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridgraph: open layout: %w", err)
	}
	defer f.Close()

	l, err := LoadLayout(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return l, nil
}

// Build constructs a Grid from the layout.
//
// Scale defaults to 1 and connectivity to 4 when omitted. The first entry of
// Goals becomes the goal; with no goals the provisional goal is the grid
// centre (Width/2, Height/2). Obstacles outside the grid, a start or goal
// outside the grid, and a start placed on an obstacle are ErrBadLayout.
func (l *Layout) Build() (*Grid, error) {
	opts := DefaultGridOptions()
	if l.Scale != 0 {
		opts.Scale = l.Scale
	}
	switch l.Connectivity {
	case 0, 4:
		opts.Conn = Conn4
	case 8:
		opts.Conn = Conn8
	default:
		return nil, fmt.Errorf("%w: connectivity %d (want 4 or 8)", ErrBadLayout, l.Connectivity)
	}
	opts.Terrain = l.Terrain

	g, err := NewGrid(l.Width, l.Height, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadLayout, err)
	}

	for _, o := range l.Obstacles {
		c := Cell{X: o[0], Y: o[1]}
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: obstacle %v out of bounds", ErrBadLayout, c)
		}
		g.AddObstacle(c)
	}

	start := Cell{X: l.Start[0], Y: l.Start[1]}
	if err := g.SetStart(start); err != nil {
		return nil, fmt.Errorf("%w: start %v: %w", ErrBadLayout, start, err)
	}
	if g.IsObstacle(start) {
		return nil, fmt.Errorf("%w: start %v is an obstacle", ErrBadLayout, start)
	}

	goal := Cell{X: l.Width / 2, Y: l.Height / 2}
	if len(l.Goals) > 0 {
		goal = Cell{X: l.Goals[0][0], Y: l.Goals[0][1]}
	}
	if err := g.SetGoal(goal); err != nil {
		return nil, fmt.Errorf("%w: goal %v: %w", ErrBadLayout, goal, err)
	}

	return g, nil
}
