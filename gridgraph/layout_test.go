package gridgraph_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridnav/gridgraph"
)

const arenaYAML = `
name: arena
width: 6
height: 4
scale: 25
connectivity: 8
start: [0, 0]
goals: [[5, 3], [1, 1]]
obstacles: [[2, 0], [2, 1]]
`

func TestLoadLayout_YAML(t *testing.T) {
	l, err := gridgraph.LoadLayout(strings.NewReader(arenaYAML))
	require.NoError(t, err)
	assert.Equal(t, "arena", l.Name)

	g, err := l.Build()
	require.NoError(t, err)
	assert.Equal(t, 6, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.Equal(t, 25.0, g.Scale())
	assert.Equal(t, gridgraph.Conn8, g.Conn())
	assert.Equal(t, gridgraph.Cell{X: 0, Y: 0}, g.Start())
	assert.Equal(t, gridgraph.Cell{X: 5, Y: 3}, g.Goal())
	assert.Equal(t, []gridgraph.Cell{{2, 0}, {2, 1}}, g.Obstacles())
}

func TestLoadLayout_JSON(t *testing.T) {
	doc := `{"name": "empty", "width": 5, "height": 3, "start": [1, 1]}`
	l, err := gridgraph.LoadLayout(strings.NewReader(doc))
	require.NoError(t, err)

	g, err := l.Build()
	require.NoError(t, err)
	assert.Equal(t, 1.0, g.Scale())
	assert.Equal(t, gridgraph.Conn4, g.Conn())
	// No goals: provisional goal at the grid centre.
	assert.Equal(t, gridgraph.Cell{X: 2, Y: 1}, g.Goal())
}

func TestLoadLayout_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"Empty", ""},
		{"UnknownField", "width: 2\nheight: 2\ncolour: red\n"},
		{"BadConnectivity", "width: 2\nheight: 2\nconnectivity: 6\n"},
		{"NoWidth", "height: 2\n"},
		{"ObstacleOutside", "width: 2\nheight: 2\nobstacles: [[2, 2]]\n"},
		{"StartOutside", "width: 2\nheight: 2\nstart: [5, 0]\n"},
		{"StartBlocked", "width: 2\nheight: 2\nstart: [1, 1]\nobstacles: [[1, 1]]\n"},
		{"GoalOutside", "width: 2\nheight: 2\ngoals: [[0, 9]]\n"},
		{"BadTerrain", "width: 2\nheight: 1\nterrain: [[1, 0]]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := gridgraph.LoadLayout(strings.NewReader(tc.doc))
			if err == nil {
				_, err = l.Build()
			}
			require.ErrorIs(t, err, gridgraph.ErrBadLayout)
		})
	}
}

func TestLoadLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(arenaYAML), 0o644))

	l, err := gridgraph.LoadLayoutFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, l.Width)

	_, err = gridgraph.LoadLayoutFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
