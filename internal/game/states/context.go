package states

import (
	"time"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/rs/zerolog"
)

// GameContext carries the session facts states use to validate transitions
type GameContext struct {
	// GameID uniquely identifies this session
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// StartTime is when PhaseRunning was entered
	StartTime time.Time

	// EndTime is when PhaseEnded was entered
	EndTime time.Time

	// Outcome is set by the session before moving to PhaseEnded
	Outcome core.Outcome

	// MoveCount is the number of placements applied in the current game
	MoveCount int

	// Games counts how many games this session has started
	Games int
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:  gameID,
		Logger:  logger.With().Str("game_id", gameID).Logger(),
		Outcome: core.NoOutcome(),
	}
}

// GetElapsedTime returns the time since the game started, frozen once it ended
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
