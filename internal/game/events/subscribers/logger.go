package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.SessionStartedEvent:
		logEvent.
			Str("mode", e.Mode).
			Str("first_player", e.FirstPlayer.String()).
			Str("opponent_color", e.OpponentColor.String()).
			Str("difficulty", e.Difficulty).
			Str("supply", e.Supply)

	case *events.MovePlayedEvent:
		logEvent.
			Int("move_number", e.MoveNumber).
			Str("color", e.Color.String()).
			Str("move", e.Move.String()).
			Str("piece_id", e.PieceID).
			Bool("automated", e.Automated)
		if e.CoveredID != "" {
			logEvent.Str("covered_id", e.CoveredID)
		}

	case *events.MoveRejectedEvent:
		logEvent.
			Str("color", e.Color.String()).
			Str("move", e.Move.String()).
			Str("reason", e.Reason)

	case *events.TurnPassedEvent:
		logEvent.Str("color", e.Color.String())

	case *events.GameEndedEvent:
		logEvent.
			Str("outcome", e.Outcome.String()).
			Int("moves", e.Moves).
			Dur("duration", e.Duration)

	case *events.DifficultyChangedEvent:
		logEvent.
			Str("from", e.From).
			Str("to", e.To)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_state", e.FromState).
			Str("to_state", e.ToState).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
