package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // nil means every type
	devMode         bool            // attach the full event as JSON
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (empty means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}
	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("event_time", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("width", e.Width).
			Int("height", e.Height).
			Int("hazards", len(e.Hazards)).
			Int("rewards", len(e.Rewards)).
			Str("first_mover", e.FirstMover.String())

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Int("final_turn", e.FinalTurn).
			Dur("duration", e.Duration)

	case *events.GameResetEvent:
		logEvent.
			Str("next_game_id", e.NextGameID).
			Int("at_turn", e.AtTurn)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.Turn).
			Str("agent", e.Agent.String())

	case *events.AgentMovedEvent:
		logEvent.
			Int("turn", e.Turn).
			Str("agent", e.Agent.String()).
			Int("from_x", e.From.X).
			Int("from_y", e.From.Y).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y).
			Str("direction", e.Direction.String()).
			Int("path_len", e.PathLen)

	case *events.AgentHeldEvent:
		logEvent.
			Int("turn", e.Turn).
			Str("agent", e.Agent.String()).
			Str("position", e.Position.String()).
			Str("reason", e.Reason)

	case *events.PhaseChangedEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
