// Package dijkstra_test provides examples demonstrating how to use the Dijkstra algorithm.
package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/gridnav/dijkstra"
	"github.com/katalvlaran/gridnav/gridgraph"
)

// ExampleDijkstra computes the cost field of a small grid with one obstacle.
//
//	S # .
//	. . .
func ExampleDijkstra() {
	g, _ := gridgraph.NewGrid(3, 2, gridgraph.DefaultGridOptions())
	g.AddObstacle(gridgraph.Cell{X: 1, Y: 0})

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(gridgraph.Cell{X: 0, Y: 0}))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("reachable=%d cost(2,0)=%.0f\n", len(dist), dist[gridgraph.Cell{X: 2, Y: 0}])
	// Output: reachable=5 cost(2,0)=4
}
