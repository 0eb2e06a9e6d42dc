package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/events"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/rules"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/states"
)

// DefaultGameConfig returns a w×h game with default starts where the evader moves first.
func DefaultGameConfig(w, h, numRewards, numHazards int) GameConfig {
	return GameConfig{
		Board:      DefaultBoardConfig(w, h),
		NumRewards: numRewards,
		NumHazards: numHazards,
		FirstMover: core.Evader,
	}
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates an engine and starts its first game
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	ei.setupDefaults()

	if ei.config.FirstMover != core.Pursuer && ei.config.FirstMover != core.Evader {
		return nil, core.WrapAgentError(ei.config.FirstMover, "first mover", core.ErrInvalidAgent)
	}

	engine := &Engine{
		cfg:          ei.config,
		rng:          ei.config.Rng,
		logger:       ei.logger,
		eventBus:     ei.config.EventBus,
		winCondition: rules.NewWinConditionChecker(ei.logger),
		winner:       core.NoAgent,
	}
	engine.turnProcessor = NewTurnProcessor(engine)

	if err := ei.start(ctx, engine); err != nil {
		return nil, err
	}
	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.config.Logger)
	}

	if ei.config.GameID == "" {
		ei.config.GameID = newGameID()
	}
}

// start builds and places a board and installs it as the engine's current game
func (ei *EngineInitializer) start(ctx context.Context, engine *Engine) error {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine start cancelled or timed out")
		return ctx.Err()
	default:
	}

	gameID := ei.config.GameID
	gameContext := states.NewGameContext(gameID, ei.logger)
	if engine.stateMachine == nil {
		engine.stateMachine = states.NewStateMachine(gameContext, engine.eventBus)
	} else {
		engine.stateMachine.Rebind(gameContext)
		if err := engine.stateMachine.TransitionTo(states.PhaseInitializing, "new board"); err != nil {
			return err
		}
	}

	board, err := NewBoardFromConfig(ei.config.Board, engine.rng, ei.config.Logger.With().Str("game_id", gameID).Logger())
	if err != nil {
		return fmt.Errorf("board creation failed: %w", err)
	}

	if err := engine.stateMachine.TransitionTo(states.PhasePlacing, "board created"); err != nil {
		return err
	}
	if err := ei.place(board); err != nil {
		return fmt.Errorf("placement failed: %w", err)
	}
	if err := engine.stateMachine.TransitionTo(states.PhaseRunning, "placement complete"); err != nil {
		return err
	}

	engine.board = board
	engine.gameID = gameID
	engine.turn = 0
	engine.nextAgent = ei.config.FirstMover
	engine.gameOver = false
	engine.winner = core.NoAgent

	engine.eventBus.Publish(events.NewGameStartedEvent(
		gameID,
		board.Width(),
		board.Height(),
		board.Hazards(),
		board.Rewards(),
		engine.nextAgent,
	))

	ei.logger.Info().
		Str("game_id", gameID).
		Int("width", board.Width()).
		Int("height", board.Height()).
		Int("hazards", len(board.hazards)).
		Int("rewards", len(board.rewards)).
		Str("first_mover", engine.nextAgent.String()).
		Msg("Game started")

	return nil
}

// place applies the fixed layout if one is configured, random placement otherwise
func (ei *EngineInitializer) place(board *Board) error {
	if l := ei.config.Layout; l != nil {
		return board.PlaceLayout(l.Hazards, l.Rewards)
	}
	return board.PlaceRandom(ei.config.NumRewards, ei.config.NumHazards)
}

func newGameID() string {
	return uuid.NewString()
}
