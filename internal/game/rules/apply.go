package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
)

// ApplyMove places a piece for mover and takes it from mover's supply. The
// inputs are left untouched; the new board and supplies are returned. An
// illegal move is rejected with an error wrapping core.ErrIllegalMove and the
// specific cause, and nothing is applied.
func ApplyMove(board core.Board, supplies core.Supplies, mover core.Color, move core.Move) (core.Board, core.Supplies, error) {
	if !mover.IsValid() {
		return board, supplies, fmt.Errorf("%w: %w", core.ErrIllegalMove, core.ErrInvalidPlayer)
	}
	if err := ValidateMove(board, supplies.For(mover), move.Size, move.Row, move.Col); err != nil {
		return board, supplies, core.WrapMoveError(mover, move, fmt.Errorf("%w: %w", core.ErrIllegalMove, err))
	}
	nextBoard, nextSupplies := applyUnchecked(board, supplies, mover, move)
	return nextBoard, nextSupplies, nil
}

// MustApplyMove is ApplyMove for moves known to be legal, such as those from
// LegalMoves. It panics on an illegal move.
func MustApplyMove(board core.Board, supplies core.Supplies, mover core.Color, move core.Move) (core.Board, core.Supplies) {
	nextBoard, nextSupplies, err := ApplyMove(board, supplies, mover, move)
	if err != nil {
		panic(err)
	}
	return nextBoard, nextSupplies
}

func applyUnchecked(board core.Board, supplies core.Supplies, mover core.Color, move core.Move) (core.Board, core.Supplies) {
	piece := core.NewPiece(mover, move.Size, countPieces(board, mover, move.Size)+1)
	return board.Place(move.Row, move.Col, piece), supplies.Take(mover, move.Size)
}

// countPieces counts pieces of color and size on the board, covered ones included
func countPieces(board core.Board, color core.Color, size core.PieceSize) int {
	n := 0
	for _, c := range core.AllCoordinates() {
		for _, p := range board.Cell(c.Row, c.Col) {
			if p.Color == color && p.Size == size {
				n++
			}
		}
	}
	return n
}
