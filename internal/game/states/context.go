package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// GameContext carries the per-game data the state machine records on transitions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// StartTime is when PhaseRunning was entered
	StartTime time.Time

	// EndTime is when PhaseEnded was entered
	EndTime time.Time

	// Winner is core.NoAgent until the game ends
	Winner core.Agent
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
		Winner: core.NoAgent,
	}
}

// GetElapsedTime returns the running time of the game, frozen once it ends
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
