package core

import "fmt"

// Agent identifies one of the two players on the board.
type Agent int

const (
	// NoAgent is used where no agent applies, e.g. the winner of an undecided game.
	NoAgent Agent = iota - 1
	Pursuer
	Evader
)

func (a Agent) String() string {
	switch a {
	case Pursuer:
		return "pursuer"
	case Evader:
		return "evader"
	case NoAgent:
		return "none"
	default:
		return fmt.Sprintf("agent(%d)", int(a))
	}
}

// Opponent returns the other agent.
func (a Agent) Opponent() Agent {
	switch a {
	case Pursuer:
		return Evader
	case Evader:
		return Pursuer
	default:
		return NoAgent
	}
}

// ParseAgent maps a config string onto an Agent.
func ParseAgent(s string) (Agent, error) {
	switch s {
	case "pursuer", "tom":
		return Pursuer, nil
	case "evader", "jerry":
		return Evader, nil
	default:
		return NoAgent, fmt.Errorf("%q: %w", s, ErrInvalidAgent)
	}
}
