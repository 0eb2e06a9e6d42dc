// Package grid models the board as an undirected graph over cells with
// 4-directional adjacency, plus filtered views of it.
package grid

import (
	"fmt"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// Graph is the read-only surface the planner searches.
type Graph interface {
	// Bounds returns the width and height of the underlying board.
	Bounds() (w, h int)
	// HasNode reports whether c is a node of the graph.
	HasNode(c core.Cell) bool
	// Neighbors returns the nodes adjacent to c in core.Directions order.
	// It returns nil if c is not a node.
	Neighbors(c core.Cell) []core.Cell
	NodeCount() int
	EdgeCount() int
	// Nodes returns every node in row-major order.
	Nodes() []core.Cell
}

// Tag is an informational per-node marker. The planner never reads tags.
type Tag uint8

const (
	TagHazard Tag = 1 << iota
	TagReward
)

// Grid is the full W×H graph. Its topology is fixed at construction.
type Grid struct {
	w, h int
	tags []Tag // length = w*h (row-major)
}

// Build returns a w×h grid graph with edges between 4-adjacent cells.
func Build(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", w, h, core.ErrInvalidDimension)
	}
	return &Grid{w: w, h: h, tags: make([]Tag, w*h)}, nil
}

func (g *Grid) Bounds() (int, int) { return g.w, g.h }

func (g *Grid) HasNode(c core.Cell) bool { return c.IsValid(g.w, g.h) }

func (g *Grid) NodeCount() int { return g.w * g.h }

// EdgeCount returns W·(H-1) + H·(W-1).
func (g *Grid) EdgeCount() int { return g.w*(g.h-1) + g.h*(g.w-1) }

func (g *Grid) Neighbors(c core.Cell) []core.Cell {
	if !g.HasNode(c) {
		return nil
	}
	out := make([]core.Cell, 0, 4)
	for _, n := range c.Neighbors() {
		if g.HasNode(n) {
			out = append(out, n)
		}
	}
	return out
}

func (g *Grid) Nodes() []core.Cell {
	nodes := make([]core.Cell, 0, g.w*g.h)
	for i := 0; i < g.w*g.h; i++ {
		nodes = append(nodes, core.CellFromIndex(i, g.w))
	}
	return nodes
}

// SetTag marks c with t. Out-of-bounds cells are ignored.
func (g *Grid) SetTag(c core.Cell, t Tag) {
	if !g.HasNode(c) {
		return
	}
	g.tags[c.ToIndex(g.w)] |= t
}

// HasTag reports whether c carries t
func (g *Grid) HasTag(c core.Cell, t Tag) bool {
	if !g.HasNode(c) {
		return false
	}
	return g.tags[c.ToIndex(g.w)]&t != 0
}

