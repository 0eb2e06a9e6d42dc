package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/grid"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/mapgen"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/pathing"
)

// BoardConfig fixes a board's dimensions and where the agents start.
type BoardConfig struct {
	Width        int
	Height       int
	PursuerStart core.Cell
	EvaderStart  core.Cell
	// AttemptsPerItem bounds random placement; see mapgen.PlacementConfig.
	AttemptsPerItem int
}

// DefaultBoardConfig puts the pursuer in the NW corner and the evader in the SE corner.
func DefaultBoardConfig(w, h int) BoardConfig {
	return BoardConfig{
		Width:           w,
		Height:          h,
		PursuerStart:    core.NewCell(0, 0),
		EvaderStart:     core.NewCell(w-1, h-1),
		AttemptsPerItem: mapgen.DefaultPlacementConfig(w, h, 0, 0).AttemptsPerItem,
	}
}

// Board holds one game: the grid graph, hazards, rewards and both agents.
// A Board is not safe for concurrent use; updates must be serialized.
type Board struct {
	cfg    BoardConfig
	graph  *grid.Grid
	rng    *rand.Rand
	logger zerolog.Logger

	hazards []core.Cell
	rewards []core.Cell
	placed  bool

	pursuerPos  core.Cell
	evaderPos   core.Cell
	pursuerPath []core.Cell
	evaderPath  []core.Cell
	pursuerWon  bool
	evaderWon   bool
}

// NewBoard creates a w×h board with default starts, a time-seeded RNG and
// the global logger.
func NewBoard(w, h int) (*Board, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewBoardFromConfig(DefaultBoardConfig(w, h), rng, log.Logger)
}

// NewBoardFromConfig creates a board without hazards or rewards.
func NewBoardFromConfig(cfg BoardConfig, rng *rand.Rand, logger zerolog.Logger) (*Board, error) {
	g, err := grid.Build(cfg.Width, cfg.Height)
	if err != nil {
		return nil, core.WrapBoardError("construction", err)
	}
	for _, start := range []core.Cell{cfg.PursuerStart, cfg.EvaderStart} {
		if !g.HasNode(start) {
			return nil, core.WrapBoardError("construction",
				fmt.Errorf("start %v: %w", start, core.ErrInvalidCoordinates))
		}
	}
	// Agents share a start only when the board has a single cell
	if cfg.PursuerStart == cfg.EvaderStart && g.NodeCount() > 1 {
		return nil, core.WrapBoardError("construction",
			fmt.Errorf("both agents start at %v: %w", cfg.PursuerStart, core.ErrInvalidCoordinates))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Board{
		cfg:        cfg,
		graph:      g,
		rng:        rng,
		logger:     logger.With().Str("component", "Board").Logger(),
		pursuerPos: cfg.PursuerStart,
		evaderPos:  cfg.EvaderStart,
	}, nil
}

// PlaceRandom scatters hazards and rewards over the board. Hazards never land
// on an agent start cell; rewards may, and an evader starting on one wins on
// its first update. No cell is used twice.
func (b *Board) PlaceRandom(numRewards, numHazards int) error {
	if b.placed {
		return core.WrapBoardError("placement", core.ErrAlreadyPlaced)
	}

	pc := mapgen.DefaultPlacementConfig(b.cfg.Width, b.cfg.Height, numRewards, numHazards)
	if b.cfg.AttemptsPerItem > 0 {
		pc.AttemptsPerItem = b.cfg.AttemptsPerItem
	}
	pc.Reserved = []core.Cell{b.cfg.PursuerStart, b.cfg.EvaderStart}

	p, err := mapgen.NewGenerator(pc, b.rng).Generate()
	if err != nil {
		return core.WrapBoardError("placement", err)
	}
	b.applyPlacement(p.Hazards, p.Rewards)
	return nil
}

// PlaceLayout installs a fixed set of hazards and rewards. Rewards keep the
// given order, which decides ties between equally distant rewards.
func (b *Board) PlaceLayout(hazards, rewards []core.Cell) error {
	if b.placed {
		return core.WrapBoardError("placement", core.ErrAlreadyPlaced)
	}
	if err := b.validateLayout(hazards, rewards); err != nil {
		return core.WrapBoardError("placement", err)
	}
	b.applyPlacement(hazards, rewards)
	return nil
}

func (b *Board) validateLayout(hazards, rewards []core.Cell) error {
	seenRewards := mapset.New[core.Cell]()
	for _, r := range rewards {
		if !b.graph.HasNode(r) {
			return fmt.Errorf("reward %v: %w", r, core.ErrInvalidCoordinates)
		}
		if seenRewards.Has(r) {
			return fmt.Errorf("duplicate reward %v: %w", r, core.ErrInvalidLayout)
		}
		seenRewards.Put(r)
	}

	seenHazards := mapset.New[core.Cell]()
	for _, h := range hazards {
		switch {
		case !b.graph.HasNode(h):
			return fmt.Errorf("hazard %v: %w", h, core.ErrInvalidCoordinates)
		case seenHazards.Has(h):
			return fmt.Errorf("duplicate hazard %v: %w", h, core.ErrInvalidLayout)
		case seenRewards.Has(h):
			return fmt.Errorf("hazard %v on a reward: %w", h, core.ErrInvalidLayout)
		case h == b.cfg.PursuerStart || h == b.cfg.EvaderStart:
			return fmt.Errorf("hazard %v on a start cell: %w", h, core.ErrInvalidLayout)
		}
		seenHazards.Put(h)
	}
	return nil
}

func (b *Board) applyPlacement(hazards, rewards []core.Cell) {
	b.hazards = append([]core.Cell(nil), hazards...)
	b.rewards = append([]core.Cell(nil), rewards...)
	for _, h := range b.hazards {
		b.graph.SetTag(h, grid.TagHazard)
	}
	for _, r := range b.rewards {
		b.graph.SetTag(r, grid.TagReward)
	}
	b.placed = true

	b.logger.Debug().
		Int("hazards", len(b.hazards)).
		Int("rewards", len(b.rewards)).
		Msg("Placed hazards and rewards")
}

// PursuerUpdate moves the pursuer one step along a shortest path to the
// evader over the full grid. Hazards do not affect the pursuer.
func (b *Board) PursuerUpdate() {
	if b.IsOver() {
		return
	}

	path, err := pathing.ShortestPath(b.graph, b.pursuerPos, b.evaderPos)
	if err != nil {
		b.pursuerPath = nil
		b.logger.Warn().
			Err(core.WrapAgentError(core.Pursuer, "plan", err)).
			Str("position", b.pursuerPos.String()).
			Msg("Pursuer holds position")
		return
	}

	b.pursuerPath = path
	if len(path) > 1 {
		b.pursuerPos = path[1]
	}
	b.logger.Debug().
		Str("position", b.pursuerPos.String()).
		Int("path_len", len(path)).
		Msg("Pursuer updated")

	if b.pursuerPos == b.evaderPos {
		b.pursuerWon = true
		b.logger.Info().Str("position", b.pursuerPos.String()).Msg("Pursuer caught the evader")
	}
}

// EvaderUpdate moves the evader one step toward the nearest reward it can
// reach without crossing a hazard or the pursuer's cell. With no such
// reward the evader stays and its path is cleared. The recorded path is the
// planner's route, which already ends on the target reward, so the target
// is not appended a second time.
func (b *Board) EvaderUpdate() {
	if b.IsOver() {
		return
	}

	safe := grid.BuildSafeGraph(b.graph, b.hazards, b.pursuerPos)
	target, path, ok := pathing.NearestPath(safe, b.evaderPos, b.targetableRewards(safe))
	if !ok {
		b.evaderPath = nil
		b.logger.Debug().
			Str("position", b.evaderPos.String()).
			Str("blocked", fmt.Sprint(safe.Removed())).
			Msg("No reachable reward, evader holds position")
		return
	}

	b.evaderPath = path
	if len(path) > 1 {
		b.evaderPos = path[1]
	}
	b.logger.Debug().
		Str("position", b.evaderPos.String()).
		Str("target", target.String()).
		Int("path_len", len(path)).
		Msg("Evader updated")

	if core.ContainsCell(b.rewards, b.evaderPos) {
		b.evaderWon = true
		b.logger.Info().Str("position", b.evaderPos.String()).Msg("Evader reached a reward")
	}
}

// targetableRewards drops rewards missing from the safe graph, i.e. the
// one the pursuer is currently standing on. Order is preserved.
func (b *Board) targetableRewards(safe grid.Graph) []core.Cell {
	out := make([]core.Cell, 0, len(b.rewards))
	for _, r := range b.rewards {
		if safe.HasNode(r) {
			out = append(out, r)
		}
	}
	return out
}

// Accessors. Slices are copies.

func (b *Board) Width() int                { return b.cfg.Width }
func (b *Board) Height() int               { return b.cfg.Height }
func (b *Board) Dimensions() (int, int)    { return b.cfg.Width, b.cfg.Height }
func (b *Board) Graph() *grid.Grid         { return b.graph }
func (b *Board) PursuerPos() core.Cell     { return b.pursuerPos }
func (b *Board) EvaderPos() core.Cell      { return b.evaderPos }
func (b *Board) PursuerPath() []core.Cell  { return cloneCells(b.pursuerPath) }
func (b *Board) EvaderPath() []core.Cell   { return cloneCells(b.evaderPath) }
func (b *Board) Hazards() []core.Cell      { return cloneCells(b.hazards) }
func (b *Board) Rewards() []core.Cell      { return cloneCells(b.rewards) }
func (b *Board) PursuerWon() bool          { return b.pursuerWon }
func (b *Board) EvaderWon() bool           { return b.evaderWon }
func (b *Board) IsOver() bool              { return b.pursuerWon || b.evaderWon }
func (b *Board) Placed() bool              { return b.placed }
func (b *Board) Config() BoardConfig       { return b.cfg }
func (b *Board) IsHazard(c core.Cell) bool { return core.ContainsCell(b.hazards, c) }
func (b *Board) IsReward(c core.Cell) bool { return core.ContainsCell(b.rewards, c) }

// Winner returns the agent that won, or core.NoAgent while the game runs.
func (b *Board) Winner() core.Agent {
	switch {
	case b.pursuerWon:
		return core.Pursuer
	case b.evaderWon:
		return core.Evader
	default:
		return core.NoAgent
	}
}

// Position returns the current cell of agent a.
func (b *Board) Position(a core.Agent) core.Cell {
	if a == core.Pursuer {
		return b.pursuerPos
	}
	return b.evaderPos
}

// Path returns the last route computed for agent a.
func (b *Board) Path(a core.Agent) []core.Cell {
	if a == core.Pursuer {
		return b.PursuerPath()
	}
	return b.EvaderPath()
}

// Update runs the update of agent a.
func (b *Board) Update(a core.Agent) {
	switch a {
	case core.Pursuer:
		b.PursuerUpdate()
	case core.Evader:
		b.EvaderUpdate()
	}
}

func cloneCells(cells []core.Cell) []core.Cell {
	if cells == nil {
		return nil
	}
	return append([]core.Cell(nil), cells...)
}
