package events

import (
	"time"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted = "game.started"
	TypeGameEnded   = "game.ended"
	TypeGameReset   = "game.reset"
	TypeTurnStarted = "turn.started"
	TypeAgentMoved  = "agent.moved"
	TypeAgentHeld   = "agent.held"

	TypePhaseChanged = "phase.changed"
)

// GameStartedEvent is published when a board has been placed and play can begin
type GameStartedEvent struct {
	BaseEvent
	Width      int
	Height     int
	Hazards    []core.Cell
	Rewards    []core.Cell
	FirstMover core.Agent
}

func NewGameStartedEvent(gameID string, width, height int, hazards, rewards []core.Cell, first core.Agent) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID),
		Width:      width,
		Height:     height,
		Hazards:    hazards,
		Rewards:    rewards,
		FirstMover: first,
	}
}

// GameEndedEvent is published once, when a win flag is first set
type GameEndedEvent struct {
	BaseEvent
	Winner    core.Agent
	FinalTurn int
	Duration  time.Duration
}

func NewGameEndedEvent(gameID string, winner core.Agent, finalTurn int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		FinalTurn: finalTurn,
		Duration:  duration,
	}
}

// GameResetEvent is published when a board is discarded for a new one
type GameResetEvent struct {
	BaseEvent
	NextGameID string
	AtTurn     int
}

func NewGameResetEvent(gameID, nextGameID string, atTurn int) *GameResetEvent {
	return &GameResetEvent{
		BaseEvent:  newBase(TypeGameReset, gameID),
		NextGameID: nextGameID,
		AtTurn:     atTurn,
	}
}

// TurnStartedEvent is published before an agent update runs
type TurnStartedEvent struct {
	BaseEvent
	Turn  int
	Agent core.Agent
}

func NewTurnStartedEvent(gameID string, turn int, agent core.Agent) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, gameID),
		Turn:      turn,
		Agent:     agent,
	}
}

// AgentMovedEvent is published when an update changed an agent's cell
type AgentMovedEvent struct {
	BaseEvent
	Turn      int
	Agent     core.Agent
	From      core.Cell
	To        core.Cell
	Direction core.Direction
	PathLen   int
}

func NewAgentMovedEvent(gameID string, turn int, agent core.Agent, from, to core.Cell, pathLen int) *AgentMovedEvent {
	// Agents move one cell per update, so from and to are always adjacent
	dir, _ := from.DirectionTo(to)
	return &AgentMovedEvent{
		BaseEvent: newBase(TypeAgentMoved, gameID),
		Turn:      turn,
		Agent:     agent,
		From:      from,
		To:        to,
		Direction: dir,
		PathLen:   pathLen,
	}
}

// Hold reasons
const (
	HoldNoRoute    = "no_route"
	HoldAtTarget   = "at_target"
	HoldGameIsOver = "game_over"
)

// AgentHeldEvent is published when an update left the agent in place
type AgentHeldEvent struct {
	BaseEvent
	Turn     int
	Agent    core.Agent
	Position core.Cell
	Reason   string
}

func NewAgentHeldEvent(gameID string, turn int, agent core.Agent, at core.Cell, reason string) *AgentHeldEvent {
	return &AgentHeldEvent{
		BaseEvent: newBase(TypeAgentHeld, gameID),
		Turn:      turn,
		Agent:     agent,
		Position:  at,
		Reason:    reason,
	}
}

// PhaseChangedEvent is published by the game state machine on every transition
type PhaseChangedEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

func NewPhaseChangedEvent(gameID, from, to, reason string) *PhaseChangedEvent {
	return &PhaseChangedEvent{
		BaseEvent: newBase(TypePhaseChanged, gameID),
		FromPhase: from,
		ToPhase:   to,
		Reason:    reason,
	}
}
