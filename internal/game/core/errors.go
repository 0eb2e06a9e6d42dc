package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension   = errors.New("board dimensions must be positive")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidCount       = errors.New("placement counts must be non-negative")
	ErrOvercrowded        = errors.New("not enough free cells for placement")
	ErrInvalidLayout      = errors.New("invalid hazard/reward layout")
	ErrAlreadyPlaced      = errors.New("hazards and rewards already placed")
	ErrNoPath             = errors.New("no path between cells")
	ErrNodeAbsent         = errors.New("cell not present in graph")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidAgent       = errors.New("unknown agent")
)

// WrapBoardError annotates a board construction or placement failure.
func WrapBoardError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("board %s: %w", op, err)
}

// WrapAgentError annotates an error raised while updating an agent.
func WrapAgentError(agent Agent, op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", agent, op, err)
}

// TurnError carries the turn and agent an engine failure belongs to.
type TurnError struct {
	Turn      int
	Agent     Agent
	Operation string
	Err       error
}

func (e *TurnError) Error() string {
	if e.Agent == NoAgent {
		return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s %s: %v", e.Turn, e.Agent, e.Operation, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

// NewTurnError creates a TurnError
func NewTurnError(turn int, agent Agent, op string, err error) *TurnError {
	return &TurnError{Turn: turn, Agent: agent, Operation: op, Err: err}
}
