package astar

import "github.com/katalvlaran/gridnav/gridgraph"

// frontierItem is one lazy frontier entry: a cell with the cost-so-far it was
// pushed with and its priority g + h.
type frontierItem struct {
	cell     gridgraph.Cell
	g        float64
	priority float64
	seq      uint64 // insertion order, breaks priority ties
}

// frontier is a min-heap of frontierItem ordered by (priority, seq).
type frontier []frontierItem

// Len returns the number of items in the heap.
func (f frontier) Len() int { return len(f) }

// Less orders by priority, then by insertion sequence.
func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].seq < f[j].seq
}

// Swap swaps two elements in the heap.
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

// Push adds x onto the heap. Called by heap.Push; x must be a frontierItem.
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierItem)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]

	return item
}
