package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// PlacementConfig holds configuration for hazard and reward placement
type PlacementConfig struct {
	Width      int
	Height     int
	NumRewards int
	NumHazards int
	// AttemptsPerItem bounds the rejection sampling for each placed cell.
	AttemptsPerItem int
	// Reserved cells never receive a hazard (agent starts). Rewards may
	// still land on them.
	Reserved []core.Cell
}

// DefaultPlacementConfig returns a sensible default configuration
func DefaultPlacementConfig(w, h, rewards, hazards int) PlacementConfig {
	return PlacementConfig{
		Width:           w,
		Height:          h,
		NumRewards:      rewards,
		NumHazards:      hazards,
		AttemptsPerItem: 64,
	}
}

// Placement is the output of a generator run. Slices keep placement order.
type Placement struct {
	Rewards []core.Cell
	Hazards []core.Cell
}

// Generator handles placement with deterministic RNG
type Generator struct {
	config PlacementConfig
	rng    *rand.Rand
}

// NewGenerator creates a new placement generator
func NewGenerator(config PlacementConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Generate places hazards first, off the reserved cells, then rewards on
// any cell without a hazard. No cell is used twice.
func (g *Generator) Generate() (Placement, error) {
	c := g.config
	if c.Width <= 0 || c.Height <= 0 {
		return Placement{}, fmt.Errorf("placement on %dx%d: %w", c.Width, c.Height, core.ErrInvalidDimension)
	}
	if c.NumRewards < 0 || c.NumHazards < 0 {
		return Placement{}, fmt.Errorf("rewards=%d hazards=%d: %w", c.NumRewards, c.NumHazards, core.ErrInvalidCount)
	}

	reserved := mapset.New[core.Cell]()
	for _, r := range c.Reserved {
		if r.IsValid(c.Width, c.Height) {
			reserved.Put(r)
		}
	}

	total := c.Width * c.Height
	if free := total - reserved.Size(); c.NumHazards > free {
		return Placement{}, fmt.Errorf("need %d hazard cells, %d unreserved: %w", c.NumHazards, free, core.ErrOvercrowded)
	}
	if want := c.NumRewards + c.NumHazards; want > total {
		return Placement{}, fmt.Errorf("need %d cells, board has %d: %w", want, total, core.ErrOvercrowded)
	}

	// Reserved cells block hazards only
	hazards, err := g.placeCells(c.NumHazards, reserved)
	if err != nil {
		return Placement{}, err
	}

	occupied := mapset.New[core.Cell]()
	for _, h := range hazards {
		occupied.Put(h)
	}
	rewards, err := g.placeCells(c.NumRewards, occupied)
	if err != nil {
		return Placement{}, err
	}
	return Placement{Rewards: rewards, Hazards: hazards}, nil
}

func (g *Generator) placeCells(n int, occupied mapset.Set[core.Cell]) ([]core.Cell, error) {
	cells := make([]core.Cell, 0, n)
	for len(cells) < n {
		c, err := g.findFreeCell(occupied)
		if err != nil {
			return nil, err
		}
		occupied.Put(c)
		cells = append(cells, c)
	}
	return cells, nil
}

func (g *Generator) findFreeCell(occupied mapset.Set[core.Cell]) (core.Cell, error) {
	w, h := g.config.Width, g.config.Height

	// Use a maximum attempt counter to avoid infinite loops
	for attempts := 0; attempts < g.config.AttemptsPerItem; attempts++ {
		c := core.NewCell(g.rng.Intn(w), g.rng.Intn(h))
		if !occupied.Has(c) {
			return c, nil
		}
	}

	// Fallback for dense boards: pick uniformly among the cells still free
	free := make([]core.Cell, 0, w*h-occupied.Size())
	for idx := 0; idx < w*h; idx++ {
		c := core.CellFromIndex(idx, w)
		if !occupied.Has(c) {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return core.Cell{}, fmt.Errorf("no free cell after %d attempts: %w", g.config.AttemptsPerItem, core.ErrOvercrowded)
	}
	return free[g.rng.Intn(len(free))], nil
}
