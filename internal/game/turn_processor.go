package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/events"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/states"
)

// TurnProcessor handles the orchestration of a single turn
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessTurn runs the update of the agent whose turn it is, then checks
// the win flags. It returns the agent that acted.
func (tp *TurnProcessor) ProcessTurn(ctx context.Context) (core.Agent, error) {
	if err := tp.checkContext(ctx); err != nil {
		return core.NoAgent, err
	}

	if err := tp.validateGameState(); err != nil {
		return core.NoAgent, err
	}

	e := tp.engine
	agent := e.nextAgent
	e.turn++

	turnLogger := tp.logger.With().
		Str("game_id", e.gameID).
		Int("turn", e.turn).
		Str("agent", agent.String()).
		Logger()
	turnLogger.Debug().Msg("Starting turn")

	e.eventBus.Publish(events.NewTurnStartedEvent(e.gameID, e.turn, agent))

	tp.runUpdate(agent)
	e.nextAgent = agent.Opponent()

	tp.processEndOfTurn(turnLogger)

	turnLogger.Debug().Msg("Turn finished")
	return agent, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.turn).
			Msg("Game step cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures an agent update may run
func (tp *TurnProcessor) validateGameState() error {
	e := tp.engine
	if e.gameOver {
		tp.logger.Warn().
			Int("turn", e.turn).
			Msg("Attempted to step game that is already over")
		return core.NewTurnError(e.turn, core.NoAgent, "step", core.ErrGameOver)
	}

	if phase := e.stateMachine.CurrentPhase(); !phase.CanStep() {
		tp.logger.Warn().
			Str("current_phase", phase.String()).
			Int("turn", e.turn).
			Msg("Attempted to step game in phase that cannot run turns")
		return core.NewTurnError(e.turn, core.NoAgent, "step", fmt.Errorf("game is in %s phase", phase))
	}

	return nil
}

// runUpdate applies one agent update to the board and publishes what happened
func (tp *TurnProcessor) runUpdate(agent core.Agent) {
	e := tp.engine
	board := e.board

	from := board.Position(agent)
	board.Update(agent)
	to := board.Position(agent)
	path := board.Path(agent)

	if from != to {
		e.eventBus.Publish(events.NewAgentMovedEvent(e.gameID, e.turn, agent, from, to, len(path)))
		return
	}

	reason := events.HoldAtTarget
	if len(path) == 0 {
		reason = events.HoldNoRoute
	}
	e.eventBus.Publish(events.NewAgentHeldEvent(e.gameID, e.turn, agent, to, reason))
}

// processEndOfTurn evaluates both win flags and ends the game if one is set
func (tp *TurnProcessor) processEndOfTurn(turnLogger zerolog.Logger) {
	e := tp.engine

	over, winner := e.winCondition.CheckGameOver(e.board)
	if !over {
		return
	}

	e.gameOver = true
	e.winner = winner

	gameContext := e.stateMachine.GetContext()
	gameContext.Winner = winner
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, winner.String()+" won"); err != nil {
		turnLogger.Error().Err(err).Msg("Failed to transition to Ended state")
	}

	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, e.turn, gameContext.GetElapsedTime()))

	turnLogger.Info().
		Str("winner", winner.String()).
		Msg("Game over")
}
