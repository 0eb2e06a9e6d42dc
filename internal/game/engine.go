package game

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/events"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/rules"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/states"
)

// Layout is a fixed hazard/reward placement used instead of random placement.
type Layout struct {
	Hazards []core.Cell
	Rewards []core.Cell
}

// GameConfig holds everything needed to start a game
type GameConfig struct {
	Board      BoardConfig
	NumRewards int
	NumHazards int
	// Layout, when set, replaces random placement and the counts are ignored.
	Layout     *Layout
	FirstMover core.Agent
	Rng        *rand.Rand
	Logger     zerolog.Logger
	EventBus   *events.EventBus
	// GameID of the first game; generated when empty. Resets always generate.
	GameID string
}

// Engine is the turn controller. It alternates agent updates on one Board,
// starting with the configured first mover, and stops once a win flag is set.
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg    GameConfig
	rng    *rand.Rand
	logger zerolog.Logger

	board     *Board
	gameID    string
	turn      int
	nextAgent core.Agent
	gameOver  bool
	winner    core.Agent

	eventBus      *events.EventBus
	winCondition  *rules.WinConditionChecker
	stateMachine  *states.StateMachine
	turnProcessor *TurnProcessor
}

// NewEngine creates a new game engine with a placed board
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Step runs one agent update and returns the agent that acted.
// On a decided game it returns a *core.TurnError wrapping core.ErrGameOver
// and changes nothing.
func (e *Engine) Step(ctx context.Context) (core.Agent, error) {
	return e.turnProcessor.ProcessTurn(ctx)
}

// Run steps until the game is decided or maxTurns steps have run in this call.
// maxTurns <= 0 means no cap. It returns the number of steps taken.
func (e *Engine) Run(ctx context.Context, maxTurns int) (int, error) {
	steps := 0
	for !e.gameOver && (maxTurns <= 0 || steps < maxTurns) {
		if _, err := e.Step(ctx); err != nil {
			return steps, err
		}
		steps++
	}

	e.logger.Debug().
		Int("steps", steps).
		Int("turn", e.turn).
		Bool("game_over", e.gameOver).
		Msg("Run finished")
	return steps, nil
}

// Reset discards the board and starts a new game with a fresh ID, using the
// same configuration and RNG stream. A reset that fails part way leaves the
// engine unable to step until a later Reset succeeds.
func (e *Engine) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	previousID := e.gameID
	nextID := newGameID()

	if err := e.stateMachine.TransitionTo(states.PhaseReset, "reset requested"); err != nil {
		return core.NewTurnError(e.turn, core.NoAgent, "reset", err)
	}
	e.eventBus.Publish(events.NewGameResetEvent(previousID, nextID, e.turn))

	ei := NewEngineInitializer(e.cfg)
	ei.config.GameID = nextID
	if err := ei.start(ctx, e); err != nil {
		return err
	}

	e.logger.Info().
		Str("previous_game_id", previousID).
		Str("game_id", nextID).
		Msg("Game reset")
	return nil
}

// Public accessors
func (e *Engine) Board() *Board                  { return e.board }
func (e *Engine) GameID() string                 { return e.gameID }
func (e *Engine) Turn() int                      { return e.turn }
func (e *Engine) NextAgent() core.Agent          { return e.nextAgent }
func (e *Engine) IsGameOver() bool               { return e.gameOver }
func (e *Engine) EventBus() *events.EventBus     { return e.eventBus }
func (e *Engine) CurrentPhase() states.GamePhase { return e.stateMachine.CurrentPhase() }

// GetWinner returns the winning agent, or core.NoAgent if the game isn't over
func (e *Engine) GetWinner() core.Agent {
	if !e.gameOver {
		return core.NoAgent
	}
	return e.winner
}
