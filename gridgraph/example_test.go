// File: gridgraph/example_test.go
package gridgraph_test

import (
	"fmt"

	"github.com/katalvlaran/gridnav/gridgraph"
)

////////////////////////////////////////////////////////////////////////////////
// Example: ConnectedComponents
////////////////////////////////////////////////////////////////////////////////

// ExampleGrid_ConnectedComponents shows how a wall of obstacles splits the
// free space of a 4×3 grid into two regions.
//
//	. # . .
//	. # . .
//	. # . .
func ExampleGrid_ConnectedComponents() {
	g, _ := gridgraph.NewGrid(4, 3, gridgraph.DefaultGridOptions())
	for y := 0; y < 3; y++ {
		g.AddObstacle(gridgraph.Cell{X: 1, Y: y})
	}

	comps := g.ConnectedComponents()
	fmt.Println("components:", len(comps))
	for i, comp := range comps {
		fmt.Printf("component %d: %d cells\n", i, len(comp))
	}

	// Output:
	// components: 2
	// component 0: 3 cells
	// component 1: 6 cells
}

////////////////////////////////////////////////////////////////////////////////
// Example: Neighbors
////////////////////////////////////////////////////////////////////////////////

// ExampleGrid_Neighbors lists the weighted edges leaving a corner cell.
func ExampleGrid_Neighbors() {
	g, _ := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	g.AddObstacle(gridgraph.Cell{X: 1, Y: 0})

	for _, e := range g.Neighbors(gridgraph.Cell{X: 0, Y: 0}) {
		fmt.Printf("%v cost=%.0f\n", e.To, e.Cost)
	}

	// Output:
	// (0,1) cost=1
}
