package gridgraph

// ConnectedComponents finds all contiguous regions of free (non-obstacle)
// cells according to the grid connectivity.
// Returns a slice of components; each component lists its cells in BFS order
// starting from the component's first cell in row-major order.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()

	seen := make([]bool, g.width*g.height)
	var comps [][]Cell

	for i := range seen {
		if seen[i] {
			continue
		}
		c0 := g.Coordinate(i)
		if _, blocked := g.obstacles[c0]; blocked {
			continue
		}
		comps = append(comps, g.flood(c0, seen))
	}

	return comps
}

// Reachable reports whether b can be reached from a through free cells.
// Either endpoint being obstructed or out of bounds makes it unreachable.
// Time: O(W·H·d) worst case.
func (g *Grid) Reachable(a, b Cell) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	if _, blocked := g.obstacles[a]; blocked {
		return false
	}
	if _, blocked := g.obstacles[b]; blocked {
		return false
	}
	seen := make([]bool, g.width*g.height)
	for _, c := range g.flood(a, seen) {
		if c == b {
			return true
		}
	}

	return false
}

// flood collects the free component containing c0 by BFS, marking seen.
// Caller holds the read lock.
func (g *Grid) flood(c0 Cell, seen []bool) []Cell {
	queue := []Cell{c0}
	seen[g.index(c0)] = true

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, d := range g.neighborOffsets {
			v := u.Add(d[0], d[1])
			if !g.InBounds(v) {
				continue
			}
			if _, blocked := g.obstacles[v]; blocked {
				continue
			}
			vi := g.index(v)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, v)
			}
		}
	}

	return queue
}
