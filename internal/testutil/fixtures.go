package testutil

import "github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"

// Cells builds a cell slice from flat x,y pairs: Cells(1,0, 0,1).
func Cells(xy ...int) []core.Cell {
	if len(xy)%2 != 0 {
		panic("testutil.Cells needs an even number of coordinates")
	}
	out := make([]core.Cell, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		out = append(out, core.NewCell(xy[i], xy[i+1]))
	}
	return out
}

// Layout describes a fixed board used across tests.
type Layout struct {
	Width, Height int
	PursuerStart  core.Cell
	EvaderStart   core.Cell
	Hazards       []core.Cell
	Rewards       []core.Cell
}

// ScenarioLayout is a 4x4 board with one hazard between the evader and its
// only reward, and the pursuer in the NE corner.
func ScenarioLayout() Layout {
	return Layout{
		Width:        4,
		Height:       4,
		PursuerStart: core.NewCell(3, 0),
		EvaderStart:  core.NewCell(0, 0),
		Hazards:      Cells(2, 2),
		Rewards:      Cells(3, 3),
	}
}
