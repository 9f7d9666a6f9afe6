package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/ai"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/events"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/processor"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/rules"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/states"
	"github.com/rs/zerolog"
)

// Mode says which sides the computer plays
type Mode int

const (
	// ModePvP - two humans share the session
	ModePvP Mode = iota
	// ModePvE - one human against the computer opponent
	ModePvE
	// ModeCvC - the computer plays both sides
	ModeCvC
)

func (m Mode) String() string {
	switch m {
	case ModePvP:
		return "pvp"
	case ModePvE:
		return "pve"
	case ModeCvC:
		return "cvc"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// IsValid reports whether m is a known mode
func (m Mode) IsValid() bool {
	return m >= ModePvP && m <= ModeCvC
}

// ParseMode converts "pvp", "pve" or "cvc" (any case) to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pvp":
		return ModePvP, nil
	case "pve":
		return ModePvE, nil
	case "cvc":
		return ModeCvC, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want pvp, pve or cvc)", s)
	}
}

// SessionConfig configures a new Session
type SessionConfig struct {
	// GameID defaults to a random UUID
	GameID string
	Mode   Mode
	// FirstPlayer moves first in every game of the session
	FirstPlayer core.Color
	// OpponentColor is the side the computer plays in ModePvE
	OpponentColor core.Color
	Difficulty    ai.Difficulty
	// InitialSupply is given to both sides; the zero value means core.DefaultSupply
	InitialSupply core.Supply
	// MoveDelay is the pause before each computer move
	MoveDelay time.Duration
	// Rng drives every random choice of the opponent; defaults to a clock-seeded source
	Rng    ai.RandomSource
	Logger zerolog.Logger
	// Subscribers are attached before the first event is published
	Subscribers []events.Subscriber
}

// Session runs games of stacking tic-tac-toe: turn order, outcome detection,
// turn passing, restarts and the computer opponent. All methods are safe for
// concurrent use. Events are published after the session lock is released,
// so handlers may call back into the session.
type Session struct {
	mu sync.RWMutex

	gameID        string
	mode          Mode
	firstPlayer   core.Color
	opponentColor core.Color
	difficulty    ai.Difficulty
	initialSupply core.Supply
	moveDelay     time.Duration

	board      core.Board
	supplies   core.Supplies
	turn       core.Color
	outcome    core.Outcome
	moveCount  int
	history    []string
	scoreboard Scoreboard
	// generation changes on every restart so delayed computer moves can
	// detect that their game is gone
	generation int

	opponent      *ai.Opponent
	moveProcessor *processor.MoveProcessor
	turnProcessor *TurnProcessor
	eventBus      *events.EventBus
	queue         eventQueue
	stateMachine  *states.StateMachine
	logger        zerolog.Logger
}

// NewSession creates a session with its first game running
func NewSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	return NewSessionInitializer(cfg).Initialize(ctx)
}

// eventQueue holds events raised under the session lock
type eventQueue struct {
	pending []events.Event
}

func (q *eventQueue) Publish(e events.Event) {
	q.pending = append(q.pending, e)
}

func (q *eventQueue) drain() []events.Event {
	pending := q.pending
	q.pending = nil
	return pending
}

// unlockAndFlush releases the write lock and publishes queued events
func (s *Session) unlockAndFlush() {
	pending := s.queue.drain()
	s.mu.Unlock()
	for _, e := range pending {
		s.eventBus.Publish(e)
	}
}

// PlayMove places a piece of the given size for the side to move. In PvE the
// human may only move on their own turn; in CvC every move is automated.
func (s *Session) PlayMove(ctx context.Context, size core.PieceSize, row, col int) error {
	s.mu.Lock()
	defer s.unlockAndFlush()

	move := core.NewMove(size, row, col)
	if !s.outcome.IsOver() && s.isComputerTurn() {
		s.queue.Publish(events.NewMoveRejectedEvent(s.gameID, s.turn, move, core.ErrNotYourTurn.Error()))
		return core.WrapSessionError(s.moveCount+1, "play", core.ErrNotYourTurn)
	}
	return s.turnProcessor.PlayTurn(ctx, s.turn, move, false)
}

// PlayOpponentTurn lets the computer move for the side to move, after the
// configured delay. It reports the move and whether one was played; a side
// without legal moves passes instead.
func (s *Session) PlayOpponentTurn(ctx context.Context) (core.Move, bool, error) {
	s.mu.RLock()
	gen, moveNumber, err := s.generation, s.moveCount+1, s.checkComputerTurn()
	s.mu.RUnlock()
	if err != nil {
		return core.Move{}, false, core.WrapSessionError(moveNumber, "opponent turn", err)
	}

	if s.moveDelay > 0 {
		timer := time.NewTimer(s.moveDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return core.Move{}, false, core.WrapSessionError(moveNumber, "opponent delay", ctx.Err())
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.unlockAndFlush()

	if gen != s.generation {
		return core.Move{}, false, core.WrapSessionError(moveNumber, "opponent turn", fmt.Errorf("session restarted while waiting: %w", core.ErrGameOver))
	}
	if err := s.checkComputerTurn(); err != nil {
		return core.Move{}, false, core.WrapSessionError(s.moveCount+1, "opponent turn", err)
	}

	acting := s.turn
	move, ok := s.opponent.SelectMove(s.board, s.supplies, acting, acting.Opponent(), s.difficulty)
	if !ok {
		s.turnProcessor.PassTurn(acting)
		return core.Move{}, false, nil
	}
	if err := s.turnProcessor.PlayTurn(ctx, acting, move, true); err != nil {
		return move, false, err
	}
	return move, true, nil
}

// checkComputerTurn reports why the computer may not move now. Caller holds the lock.
func (s *Session) checkComputerTurn() error {
	switch {
	case s.mode == ModePvP:
		return core.ErrOpponentDisabled
	case s.outcome.IsOver():
		return core.ErrGameOver
	case !s.isComputerTurn():
		return core.ErrNotYourTurn
	}
	return nil
}

func (s *Session) isComputerTurn() bool {
	switch s.mode {
	case ModeCvC:
		return true
	case ModePvE:
		return s.turn == s.opponentColor
	default:
		return false
	}
}

// IsComputerTurn reports whether the next move belongs to the computer
func (s *Session) IsComputerTurn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.outcome.IsOver() && s.isComputerTurn()
}

// Restart abandons the current game and starts a fresh one with full
// supplies and the configured first player
func (s *Session) Restart(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.unlockAndFlush()

	if err := s.stateMachine.Reset("restart requested"); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	if !s.outcome.IsOver() && s.moveCount > 0 {
		s.scoreboard.Abandoned++
	}
	s.generation++
	s.resetGame()
	if err := s.stateMachine.TransitionTo(states.PhaseRunning, "new game"); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	s.queue.Publish(events.NewSessionStartedEvent(s.gameID, s.mode.String(), s.firstPlayer, s.opponentColor, s.difficulty.String(), s.initialSupply))
	s.logger.Info().Int("generation", s.generation).Msg("Session restarted")
	return nil
}

// resetGame sets up an empty board and full supplies. Caller holds the lock.
func (s *Session) resetGame() {
	s.board = core.EmptyBoard()
	s.supplies = core.NewSupplies(s.initialSupply)
	s.turn = s.firstPlayer
	s.outcome = core.NoOutcome()
	s.moveCount = 0
	s.history = s.history[:0]
}

// SetDifficulty changes the opponent tier for the following computer moves
func (s *Session) SetDifficulty(d ai.Difficulty) error {
	if d < ai.Easy || d > ai.Hard {
		return fmt.Errorf("set difficulty: unknown difficulty %d", int(d))
	}

	s.mu.Lock()
	defer s.unlockAndFlush()

	if d == s.difficulty {
		return nil
	}
	s.queue.Publish(events.NewDifficultyChangedEvent(s.gameID, s.difficulty.String(), d.String()))
	s.logger.Info().Str("from", s.difficulty.String()).Str("to", d.String()).Msg("Difficulty changed")
	s.difficulty = d
	return nil
}

// Snapshot returns a copy of the current position
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	line, _ := rules.WinningLine(s.board)
	return Snapshot{
		GameID:      s.gameID,
		Mode:        s.mode,
		Difficulty:  s.difficulty,
		Phase:       s.stateMachine.CurrentPhase(),
		Board:       s.board,
		Supplies:    s.supplies,
		Turn:        s.turn,
		Outcome:     s.outcome,
		WinningLine: line,
		MoveCount:   s.moveCount,
	}
}

// History returns the human-readable log of the current game
func (s *Session) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]string, len(s.history))
	copy(history, s.history)
	return history
}

// Scoreboard returns results across every game of the session
func (s *Session) Scoreboard() Scoreboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scoreboard
}

// LegalMoves returns the moves available to the side to move
func (s *Session) LegalMoves() []core.Move {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.outcome.IsOver() {
		return nil
	}
	return rules.LegalMoves(s.board, s.supplies.For(s.turn))
}

// Phase returns the current lifecycle phase
func (s *Session) Phase() states.GamePhase {
	return s.stateMachine.CurrentPhase()
}

// EventBus returns the bus session events are published on
func (s *Session) EventBus() *events.EventBus {
	return s.eventBus
}

// GameID returns the session identifier
func (s *Session) GameID() string {
	return s.gameID
}
