package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/events"
)

// Transition represents a state transition in the history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages game phase transitions and history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   GamePhase
	context        *GameContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a new state machine. publisher may be nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	return &StateMachine{
		currentPhase:   PhaseInitializing,
		context:        ctx,
		history:        make([]Transition, 0, 8),
		maxHistorySize: 1000,
		publisher:      publisher,
	}
}

// CurrentPhase returns the current game phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	sm.mu.Lock()
	previousPhase := sm.currentPhase
	if !previousPhase.CanTransitionTo(targetPhase) {
		sm.mu.Unlock()
		return fmt.Errorf("invalid transition from %s to %s", previousPhase, targetPhase)
	}

	now := time.Now()
	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: now,
		Reason:    reason,
	})
	sm.currentPhase = targetPhase
	sm.enter(targetPhase, now)
	sm.mu.Unlock()

	// Published outside the lock so handlers may query the machine
	if sm.publisher != nil {
		sm.publisher.Publish(events.NewPhaseChangedEvent(
			sm.context.GameID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

func (sm *StateMachine) enter(phase GamePhase, at time.Time) {
	switch {
	case phase == PhaseRunning:
		sm.context.StartTime = at
	case phase.IsTerminal():
		sm.context.EndTime = at
	}
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the game context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}

// Rebind replaces the game context; used when a reset starts a new game
func (sm *StateMachine) Rebind(ctx *GameContext) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.context = ctx
}
