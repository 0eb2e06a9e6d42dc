package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseInitializing - Board object creation
	PhaseInitializing GamePhase = iota

	// PhasePlacing - Hazard and reward placement
	PhasePlacing

	// PhaseRunning - Agents taking turns
	PhaseRunning

	// PhaseEnded - A win flag is set
	PhaseEnded

	// PhaseReset - Board discarded, a new one follows
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhasePlacing:
		return "Placing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a decided game
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanStep returns true if agent updates may run in this phase
func (p GamePhase) CanStep() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhasePlacing, PhaseReset}
	case PhasePlacing:
		return []GamePhase{PhaseRunning, PhaseReset}
	case PhaseRunning:
		return []GamePhase{PhaseEnded, PhaseReset}
	case PhaseEnded:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		// Reset to Reset retries a reset whose new game failed to start
		return []GamePhase{PhaseInitializing, PhaseReset}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
