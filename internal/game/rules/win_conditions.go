package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether either win flag is set and which agent holds it.
// Returns (isGameOver, winner); winner is core.NoAgent while the game is open.
func (wc *WinConditionChecker) CheckGameOver(o Outcome) (bool, core.Agent) {
	pursuerWon, evaderWon := o.PursuerWon(), o.EvaderWon()

	switch {
	case pursuerWon && evaderWon:
		// Board updates never allow this; report the pursuer so callers still terminate.
		wc.logger.Error().Msg("Both win flags set")
		return true, core.Pursuer
	case pursuerWon:
		wc.logger.Info().Str("winner", core.Pursuer.String()).Msg("Winner determined")
		return true, core.Pursuer
	case evaderWon:
		wc.logger.Info().Str("winner", core.Evader.String()).Msg("Winner determined")
		return true, core.Evader
	}

	wc.logger.Debug().Msg("Game continues")
	return false, core.NoAgent
}

// Outcome interface to avoid circular imports
type Outcome interface {
	PursuerWon() bool
	EvaderWon() bool
}
