package sim

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridnav/projector"
	"github.com/katalvlaran/gridnav/replan"
)

// ErrBadScript indicates a malformed scenario script.
var ErrBadScript = errors.New("sim: bad script")

// ScriptedSighting is one object the Observer will report.
//
//	sightings:
//	  - id: cube-2
//	    kind: obstacle
//	    x: 300
//	    y: 250
//	    heading: 15
//	    after_polls: 3
//	  - id: cube-1
//	    kind: goal_marker
//	    x: 400
//	    y: 400
//	    size: 50
type ScriptedSighting struct {
	ID         string  `yaml:"id"`
	Kind       string  `yaml:"kind"` // obstacle | goal_marker
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Heading    float64 `yaml:"heading"` // degrees
	Size       float64 `yaml:"size"`    // 0 uses the loop's default footprint
	AfterPolls int     `yaml:"after_polls"`
}

// Script is a replayable scenario for the simulated collaborators.
type Script struct {
	Sightings []ScriptedSighting `yaml:"sightings"`
	// FailAfterMoves makes the executor fail every move after this many
	// successful ones; 0 never fails.
	FailAfterMoves int `yaml:"fail_after_moves"`
}

// Sighting converts s to the loop's representation.
func (s ScriptedSighting) Sighting() (replan.Sighting, error) {
	var kind replan.SightingKind
	switch s.Kind {
	case "", "obstacle":
		kind = replan.KindObstacle
	case "goal_marker", "goal":
		kind = replan.KindGoalMarker
	default:
		return replan.Sighting{}, fmt.Errorf("%w: sighting %q: unknown kind %q", ErrBadScript, s.ID, s.Kind)
	}
	if s.Size < 0 {
		return replan.Sighting{}, fmt.Errorf("%w: sighting %q: negative size", ErrBadScript, s.ID)
	}
	if s.AfterPolls < 0 {
		return replan.Sighting{}, fmt.Errorf("%w: sighting %q: negative after_polls", ErrBadScript, s.ID)
	}

	return replan.Sighting{
		ID:   s.ID,
		Kind: kind,
		Pose: projector.Pose{
			Position: r2.Point{X: s.X, Y: s.Y},
			Heading:  s1.Angle(s.Heading) * s1.Degree,
		},
		Size: s.Size,
	}, nil
}

// LoadScript decodes a single script document from r. An empty document is
// an empty script.
func LoadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrBadScript, err)
	}
	if s.FailAfterMoves < 0 {
		return nil, fmt.Errorf("%w: negative fail_after_moves", ErrBadScript)
	}
	for _, ss := range s.Sightings {
		if _, err := ss.Sighting(); err != nil {
			return nil, err
		}
	}

	return &s, nil
}

// LoadScriptFile opens path and decodes it with LoadScript.
func LoadScriptFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sim: open script: %w", err)
	}
	defer f.Close()

	s, err := LoadScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}
