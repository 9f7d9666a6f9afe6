package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/ai"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/events"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/processor"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/states"
	"github.com/rs/zerolog"
)

// SessionInitializer builds a Session and starts its first game
type SessionInitializer struct {
	config SessionConfig
	logger zerolog.Logger
}

// NewSessionInitializer creates a new session initializer
func NewSessionInitializer(cfg SessionConfig) *SessionInitializer {
	return &SessionInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Session").Logger(),
	}
}

// Initialize creates the session, moves it to PhaseRunning and publishes
// session.started
func (si *SessionInitializer) Initialize(ctx context.Context) (*Session, error) {
	select {
	case <-ctx.Done():
		si.logger.Error().Err(ctx.Err()).Msg("Session creation cancelled or timed out")
		return nil, ctx.Err()
	default:
	}

	si.setupDefaults()
	if err := si.validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	s := si.createSession()

	s.mu.Lock()
	if err := si.initializeStateMachine(s); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}
	s.queue.Publish(events.NewSessionStartedEvent(
		s.gameID,
		s.mode.String(),
		s.firstPlayer,
		s.opponentColor,
		s.difficulty.String(),
		s.initialSupply,
	))
	s.unlockAndFlush()

	s.logger.Info().
		Str("mode", s.mode.String()).
		Str("first_player", s.firstPlayer.String()).
		Str("opponent_color", s.opponentColor.String()).
		Str("difficulty", s.difficulty.String()).
		Str("supply", s.initialSupply.String()).
		Dur("move_delay", s.moveDelay).
		Msg("Session created successfully")

	return s, nil
}

// setupDefaults sets up default values for missing configuration
func (si *SessionInitializer) setupDefaults() {
	if si.config.Rng == nil {
		si.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		si.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if si.config.GameID == "" {
		si.config.GameID = uuid.NewString()
	}

	if si.config.InitialSupply == (core.Supply{}) {
		si.config.InitialSupply = core.DefaultSupply()
	}
}

func (si *SessionInitializer) validate() error {
	cfg := si.config
	if !cfg.Mode.IsValid() {
		return fmt.Errorf("unknown mode %d", int(cfg.Mode))
	}
	if !cfg.FirstPlayer.IsValid() {
		return fmt.Errorf("first player: %w", core.ErrInvalidPlayer)
	}
	if !cfg.OpponentColor.IsValid() {
		return fmt.Errorf("opponent color: %w", core.ErrInvalidPlayer)
	}
	for _, size := range core.AllSizes() {
		if cfg.InitialSupply.Remaining(size) < 0 {
			return fmt.Errorf("supply of %s pieces is negative", size)
		}
	}
	if cfg.MoveDelay < 0 {
		return fmt.Errorf("move delay must be non-negative, got %s", cfg.MoveDelay)
	}
	return nil
}

// createSession creates the session with all its components
func (si *SessionInitializer) createSession() *Session {
	cfg := si.config
	logger := si.logger.With().Str("game_id", cfg.GameID).Logger()

	s := &Session{
		gameID:        cfg.GameID,
		mode:          cfg.Mode,
		firstPlayer:   cfg.FirstPlayer,
		opponentColor: cfg.OpponentColor,
		difficulty:    cfg.Difficulty,
		initialSupply: cfg.InitialSupply,
		moveDelay:     cfg.MoveDelay,
		opponent:      ai.NewOpponent(cfg.Rng, cfg.Logger),
		moveProcessor: processor.NewMoveProcessor(cfg.Logger),
		eventBus:      events.NewEventBus(cfg.Logger),
		logger:        logger,
	}

	for _, sub := range cfg.Subscribers {
		s.eventBus.Subscribe(sub)
	}

	gameContext := states.NewGameContext(cfg.GameID, cfg.Logger)
	s.stateMachine = states.NewStateMachine(gameContext, &s.queue)
	s.turnProcessor = NewTurnProcessor(s)
	s.resetGame()

	return s
}

// initializeStateMachine moves the new session to PhaseRunning
func (si *SessionInitializer) initializeStateMachine(s *Session) error {
	if err := s.stateMachine.TransitionTo(states.PhaseRunning, "session initialized"); err != nil {
		si.logger.Error().Err(err).Msg("Failed to transition to Running state")
		return err
	}
	return nil
}
