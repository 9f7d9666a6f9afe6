package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidPieceSize   = errors.New("invalid piece size")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrNoSupply           = errors.New("no pieces of that size left in supply")
	ErrCellCovered        = errors.New("cell is topped by an equal or larger piece")
	ErrIllegalMove        = errors.New("illegal move")
	ErrGameOver           = errors.New("game is over")
	ErrNotYourTurn        = errors.New("not this player's turn")
	ErrOpponentDisabled   = errors.New("computer opponent is not enabled")
)

// WrapMoveError adds the mover and move to err. Nil errors stay nil.
func WrapMoveError(color Color, move Move, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: place %s at (%d,%d): %w", color, move.Size, move.Row, move.Col, err)
}

// WrapSessionError adds the move number and operation to err. Nil errors stay nil.
func WrapSessionError(moveNumber int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("move %d: %s: %w", moveNumber, operation, err)
}
