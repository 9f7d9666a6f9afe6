package processor

import (
	"context"
	"errors"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/rules"
	"github.com/rs/zerolog"
)

// MoveResult is the position after one accepted placement
type MoveResult struct {
	Board    core.Board
	Supplies core.Supplies
	Placed   core.Piece
	// Covered is the piece that was on top of the target cell, if any
	Covered    core.Piece
	HasCovered bool
	Outcome    core.Outcome
}

// MoveProcessor validates, applies and evaluates single placements
type MoveProcessor struct {
	logger  zerolog.Logger
	checker *rules.WinConditionChecker
}

// NewMoveProcessor creates a new move processor
func NewMoveProcessor(logger zerolog.Logger) *MoveProcessor {
	return &MoveProcessor{
		logger:  logger.With().Str("component", "MoveProcessor").Logger(),
		checker: rules.NewWinConditionChecker(logger),
	}
}

// ProcessMove applies move for mover. On any error the returned result holds
// the unchanged inputs.
func (mp *MoveProcessor) ProcessMove(ctx context.Context, board core.Board, supplies core.Supplies, mover core.Color, move core.Move) (MoveResult, error) {
	unchanged := MoveResult{Board: board, Supplies: supplies, Outcome: core.NoOutcome()}

	select {
	case <-ctx.Done():
		mp.logger.Warn().Err(ctx.Err()).Msg("Move processing interrupted by context cancellation")
		return unchanged, ctx.Err()
	default:
	}

	nextBoard, nextSupplies, err := rules.ApplyMove(board, supplies, mover, move)
	if err != nil {
		mp.logger.Debug().
			Err(err).
			Str("mover", mover.String()).
			Str("move", move.String()).
			Msg("Rejected move")
		return unchanged, err
	}

	covered, hasCovered := board.TopOf(move.Row, move.Col)
	placed, _ := nextBoard.TopOf(move.Row, move.Col)
	outcome := mp.checker.Evaluate(nextBoard, nextSupplies)

	ev := mp.logger.Debug().
		Str("mover", mover.String()).
		Str("move", move.String()).
		Str("piece_id", placed.ID)
	if hasCovered {
		ev = ev.Str("covered_id", covered.ID)
	}
	ev.Str("outcome", outcome.String()).Msg("Applied move")

	return MoveResult{
		Board:      nextBoard,
		Supplies:   nextSupplies,
		Placed:     placed,
		Covered:    covered,
		HasCovered: hasCovered,
		Outcome:    outcome,
	}, nil
}

var rejectReasons = []error{
	core.ErrInvalidPlayer,
	core.ErrInvalidPieceSize,
	core.ErrNoSupply,
	core.ErrInvalidCoordinates,
	core.ErrCellCovered,
	core.ErrGameOver,
	core.ErrNotYourTurn,
}

// RejectReason returns the short cause of a rejected move for display and
// events, falling back to the full error text
func RejectReason(err error) string {
	if err == nil {
		return ""
	}
	for _, reason := range rejectReasons {
		if errors.Is(err, reason) {
			return reason.Error()
		}
	}
	return err.Error()
}
