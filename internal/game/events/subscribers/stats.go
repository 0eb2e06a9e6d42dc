package subscribers

import (
	"sync"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/events"
)

// AgentStats counts what one agent did across all observed games
type AgentStats struct {
	Moves int
	Holds map[string]int // keyed by hold reason
	Wins  int
}

// GameStats is a snapshot of a StatsSubscriber
type GameStats struct {
	GamesStarted int
	GamesEnded   int
	Resets       int
	// TotalTurns sums the final turn of every ended game
	TotalTurns int
	Agents     map[core.Agent]AgentStats
}

// Undecided is the number of started games that never produced a winner
func (s GameStats) Undecided() int {
	return s.GamesStarted - s.GamesEnded
}

// AverageTurns is the mean length of the ended games
func (s GameStats) AverageTurns() float64 {
	if s.GamesEnded == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.GamesEnded)
}

// StatsSubscriber aggregates per-agent counters from game events
type StatsSubscriber struct {
	id    string
	mu    sync.Mutex
	stats GameStats
}

// NewStatsSubscriber creates a new stats subscriber
func NewStatsSubscriber(id string) *StatsSubscriber {
	return &StatsSubscriber{
		id: id,
		stats: GameStats{
			Agents: map[core.Agent]AgentStats{
				core.Pursuer: {Holds: make(map[string]int)},
				core.Evader:  {Holds: make(map[string]int)},
			},
		},
	}
}

func (ss *StatsSubscriber) ID() string {
	return ss.id
}

func (ss *StatsSubscriber) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeGameStarted, events.TypeGameEnded, events.TypeGameReset,
		events.TypeAgentMoved, events.TypeAgentHeld:
		return true
	}
	return false
}

// HandleEvent updates the counters for one event
func (ss *StatsSubscriber) HandleEvent(event events.Event) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	switch e := event.(type) {
	case *events.GameStartedEvent:
		ss.stats.GamesStarted++

	case *events.GameResetEvent:
		ss.stats.Resets++

	case *events.GameEndedEvent:
		ss.stats.GamesEnded++
		ss.stats.TotalTurns += e.FinalTurn
		ss.updateAgent(e.Winner, func(a *AgentStats) { a.Wins++ })

	case *events.AgentMovedEvent:
		ss.updateAgent(e.Agent, func(a *AgentStats) { a.Moves++ })

	case *events.AgentHeldEvent:
		ss.updateAgent(e.Agent, func(a *AgentStats) { a.Holds[e.Reason]++ })
	}
}

func (ss *StatsSubscriber) updateAgent(agent core.Agent, update func(*AgentStats)) {
	a, ok := ss.stats.Agents[agent]
	if !ok {
		return
	}
	update(&a)
	ss.stats.Agents[agent] = a
}

// Stats returns a copy of the current counters
func (ss *StatsSubscriber) Stats() GameStats {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	out := ss.stats
	out.Agents = make(map[core.Agent]AgentStats, len(ss.stats.Agents))
	for agent, a := range ss.stats.Agents {
		holds := make(map[string]int, len(a.Holds))
		for reason, n := range a.Holds {
			holds[reason] = n
		}
		a.Holds = holds
		out.Agents[agent] = a
	}
	return out
}
