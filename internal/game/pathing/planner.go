// Package pathing answers unweighted shortest-path queries over grid graphs.
//
// Every query is a breadth-first search from the source. Among equal-length
// paths the one found first wins, and expansion order is core.Directions,
// so results are reproducible for a given graph.
package pathing

import (
	"fmt"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/grid"
)

const unreached = -1

// Tree is a breadth-first search tree rooted at a source cell.
type Tree struct {
	graph  grid.Graph
	source core.Cell
	width  int
	dist   []int
	parent []int
}

// Distances runs a BFS over g from source.
func Distances(g grid.Graph, source core.Cell) (*Tree, error) {
	if !g.HasNode(source) {
		return nil, fmt.Errorf("source %v: %w", source, core.ErrNodeAbsent)
	}

	w, h := g.Bounds()
	t := &Tree{
		graph:  g,
		source: source,
		width:  w,
		dist:   make([]int, w*h),
		parent: make([]int, w*h),
	}
	for i := range t.dist {
		t.dist[i] = unreached
		t.parent[i] = unreached
	}

	srcIdx := source.ToIndex(w)
	t.dist[srcIdx] = 0
	queue := make([]core.Cell, 0, g.NodeCount())
	queue = append(queue, source)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		curIdx := cur.ToIndex(w)
		for _, n := range g.Neighbors(cur) {
			idx := n.ToIndex(w)
			if t.dist[idx] != unreached {
				continue
			}
			t.dist[idx] = t.dist[curIdx] + 1
			t.parent[idx] = curIdx
			queue = append(queue, n)
		}
	}
	return t, nil
}

// Distance returns the hop count from the source to c.
func (t *Tree) Distance(c core.Cell) (int, bool) {
	if !t.graph.HasNode(c) {
		return 0, false
	}
	d := t.dist[c.ToIndex(t.width)]
	return d, d != unreached
}

// PathTo returns the cells from the source to target, both inclusive.
func (t *Tree) PathTo(target core.Cell) ([]core.Cell, error) {
	if !t.graph.HasNode(target) {
		return nil, fmt.Errorf("target %v: %w", target, core.ErrNodeAbsent)
	}
	d, ok := t.Distance(target)
	if !ok {
		return nil, fmt.Errorf("%v -> %v: %w", t.source, target, core.ErrNoPath)
	}

	path := make([]core.Cell, d+1)
	idx := target.ToIndex(t.width)
	for i := d; i >= 0; i-- {
		path[i] = core.CellFromIndex(idx, t.width)
		idx = t.parent[idx]
	}
	return path, nil
}

// ShortestPath returns a shortest route from source to target, inclusive.
// It fails with core.ErrNodeAbsent if either end is not in g and with
// core.ErrNoPath if target cannot be reached.
func ShortestPath(g grid.Graph, source, target core.Cell) ([]core.Cell, error) {
	if !g.HasNode(target) {
		return nil, fmt.Errorf("target %v: %w", target, core.ErrNodeAbsent)
	}
	t, err := Distances(g, source)
	if err != nil {
		return nil, err
	}
	return t.PathTo(target)
}

// ShortestPathLength returns the hop count of ShortestPath.
func ShortestPathLength(g grid.Graph, source, target core.Cell) (int, error) {
	path, err := ShortestPath(g, source, target)
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}

// SelectNearestReachable returns the candidate closest to source in g.
// Ties go to the candidate listed first. The second result is false when
// no candidate is reachable, which callers treat as "stay put".
func SelectNearestReachable(g grid.Graph, source core.Cell, candidates []core.Cell) (core.Cell, bool) {
	t, err := Distances(g, source)
	if err != nil {
		return core.Cell{}, false
	}
	return t.nearest(candidates)
}

// NearestPath combines SelectNearestReachable with the route to the chosen
// candidate, using a single search.
func NearestPath(g grid.Graph, source core.Cell, candidates []core.Cell) (core.Cell, []core.Cell, bool) {
	t, err := Distances(g, source)
	if err != nil {
		return core.Cell{}, nil, false
	}
	target, ok := t.nearest(candidates)
	if !ok {
		return core.Cell{}, nil, false
	}
	path, err := t.PathTo(target)
	if err != nil {
		return core.Cell{}, nil, false
	}
	return target, path, true
}

func (t *Tree) nearest(candidates []core.Cell) (core.Cell, bool) {
	var best core.Cell
	bestDist := unreached
	for _, c := range candidates {
		d, ok := t.Distance(c)
		if !ok {
			continue
		}
		if bestDist == unreached || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist != unreached
}
