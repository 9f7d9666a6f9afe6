package game

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/events"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/processor"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/rules"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/states"
	"github.com/rs/zerolog"
)

// TurnProcessor applies one turn to a session: the placement, the outcome
// check and the hand-over to the next side. Every method expects the caller
// to hold the session write lock.
type TurnProcessor struct {
	session *Session
	logger  zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(session *Session) *TurnProcessor {
	return &TurnProcessor{
		session: session,
		logger:  session.logger,
	}
}

// PlayTurn places move for mover, which must be the side to move
func (tp *TurnProcessor) PlayTurn(ctx context.Context, mover core.Color, move core.Move, automated bool) error {
	s := tp.session
	moveNumber := s.moveCount + 1

	if err := tp.checkContext(ctx, moveNumber); err != nil {
		return core.WrapSessionError(moveNumber, "play", err)
	}
	if err := tp.validateGameState(mover, move); err != nil {
		return core.WrapSessionError(moveNumber, "play", err)
	}

	result, err := s.moveProcessor.ProcessMove(ctx, s.board, s.supplies, mover, move)
	if err != nil {
		tp.reject(mover, move, err)
		return core.WrapSessionError(moveNumber, "play", err)
	}

	s.board = result.Board
	s.supplies = result.Supplies
	s.moveCount = moveNumber
	s.stateMachine.GetContext().MoveCount = moveNumber

	coveredID := ""
	if result.HasCovered {
		coveredID = result.Covered.ID
	}
	s.history = append(s.history, historyLine(mover, move, result))
	s.queue.Publish(events.NewMovePlayedEvent(s.gameID, moveNumber, mover, move, result.Placed.ID, coveredID, automated))

	turnLogger := tp.logger.With().Int("move", moveNumber).Logger()
	turnLogger.Debug().
		Str("mover", mover.String()).
		Str("placed", move.String()).
		Bool("automated", automated).
		Msg("Turn played")

	if result.Outcome.IsOver() {
		tp.endGame(result.Outcome, turnLogger)
		return nil
	}
	tp.advanceTurn(mover)
	return nil
}

// PassTurn hands the move to the other side without a placement. If neither
// side can move the game ends in a draw.
func (tp *TurnProcessor) PassTurn(color core.Color) {
	s := tp.session
	next := color.Opponent()
	if !rules.HasLegalMove(s.board, s.supplies.For(next)) {
		tp.endGame(core.DrawOutcome(), tp.logger)
		return
	}
	tp.recordPass(color)
	s.turn = next
}

// advanceTurn gives the move to mover's opponent, or back to mover when the
// opponent cannot place anything
func (tp *TurnProcessor) advanceTurn(mover core.Color) {
	s := tp.session
	next := mover.Opponent()
	if rules.HasLegalMove(s.board, s.supplies.For(next)) {
		s.turn = next
		return
	}
	tp.recordPass(next)
	s.turn = mover
}

func (tp *TurnProcessor) recordPass(color core.Color) {
	s := tp.session
	s.history = append(s.history, fmt.Sprintf("%s has no legal move and passes", color))
	s.queue.Publish(events.NewTurnPassedEvent(s.gameID, color))
	tp.logger.Info().Str("color", color.String()).Msg("Turn passed")
}

func (tp *TurnProcessor) endGame(outcome core.Outcome, turnLogger zerolog.Logger) {
	s := tp.session
	s.outcome = outcome
	s.scoreboard.Record(outcome)

	gameCtx := s.stateMachine.GetContext()
	gameCtx.Outcome = outcome
	if err := s.stateMachine.TransitionTo(states.PhaseEnded, outcome.String()); err != nil {
		turnLogger.Error().Err(err).Msg("Failed to transition to Ended state")
	}

	if outcome.Kind == core.OutcomeWon {
		s.history = append(s.history, fmt.Sprintf("%s wins", outcome.Winner))
	} else {
		s.history = append(s.history, "Draw: neither side can move")
	}
	s.queue.Publish(events.NewGameEndedEvent(s.gameID, outcome, s.moveCount, gameCtx.GetElapsedTime()))
	turnLogger.Info().
		Str("outcome", outcome.String()).
		Int("moves", s.moveCount).
		Msg("Game over")
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, moveNumber int) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("move", moveNumber).
			Msg("Turn cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the session can take a move from mover
func (tp *TurnProcessor) validateGameState(mover core.Color, move core.Move) error {
	s := tp.session
	if s.outcome.IsOver() {
		tp.reject(mover, move, core.ErrGameOver)
		return core.ErrGameOver
	}
	if phase := s.stateMachine.CurrentPhase(); !phase.CanReceiveActions() {
		tp.logger.Warn().
			Str("current_phase", phase.String()).
			Msg("Attempted to play in phase that cannot receive moves")
		return fmt.Errorf("session is in %s phase and cannot receive moves", phase)
	}
	if mover != s.turn {
		tp.reject(mover, move, core.ErrNotYourTurn)
		return core.ErrNotYourTurn
	}
	return nil
}

func (tp *TurnProcessor) reject(mover core.Color, move core.Move, err error) {
	s := tp.session
	reason := processor.RejectReason(err)
	s.queue.Publish(events.NewMoveRejectedEvent(s.gameID, mover, move, reason))
	tp.logger.Warn().
		Str("mover", mover.String()).
		Str("move", move.String()).
		Str("reason", reason).
		Msg("Move rejected")
}

func historyLine(mover core.Color, move core.Move, result processor.MoveResult) string {
	line := fmt.Sprintf("%s placed %s at (%d,%d)", mover, move.Size, move.Row, move.Col)
	if result.HasCovered {
		line += " covering " + result.Covered.String()
	}
	return line
}
