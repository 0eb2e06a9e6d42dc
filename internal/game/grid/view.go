package grid

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// View is a graph with some nodes of a base graph removed. Edges touching
// a removed node disappear with it. The base graph is never modified.
type View struct {
	base    Graph
	removed mapset.Set[core.Cell]
}

// BuildSafeGraph returns base minus every hazard and every excluded cell.
// Cells that are not nodes of base, or are listed twice, are ignored.
func BuildSafeGraph(base Graph, hazards []core.Cell, excluded ...core.Cell) *View {
	v := &View{
		base:    base,
		removed: mapset.New[core.Cell](),
	}
	for _, c := range hazards {
		v.remove(c)
	}
	for _, c := range excluded {
		v.remove(c)
	}
	return v
}

func (v *View) remove(c core.Cell) {
	if v.base.HasNode(c) {
		v.removed.Put(c)
	}
}

func (v *View) Bounds() (int, int) { return v.base.Bounds() }

func (v *View) HasNode(c core.Cell) bool {
	return v.base.HasNode(c) && !v.removed.Has(c)
}

func (v *View) Neighbors(c core.Cell) []core.Cell {
	if !v.HasNode(c) {
		return nil
	}
	base := v.base.Neighbors(c)
	out := base[:0:0]
	for _, n := range base {
		if !v.removed.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

func (v *View) NodeCount() int {
	return v.base.NodeCount() - v.removed.Size()
}

func (v *View) EdgeCount() int {
	degrees := 0
	for _, c := range v.Nodes() {
		degrees += len(v.Neighbors(c))
	}
	return degrees / 2
}

func (v *View) Nodes() []core.Cell {
	base := v.base.Nodes()
	out := make([]core.Cell, 0, len(base))
	for _, c := range base {
		if !v.removed.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Removed returns the removed cells in row-major order.
func (v *View) Removed() []core.Cell {
	out := make([]core.Cell, 0, v.removed.Size())
	v.removed.Each(func(c core.Cell) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
