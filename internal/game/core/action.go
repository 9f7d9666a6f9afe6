package core

import "fmt"

// Move is a placement of a piece from the supply onto a cell. The acting
// color is supplied separately by the caller.
type Move struct {
	Size PieceSize
	Row  int
	Col  int
}

// NewMove creates a move placing size at (row, col)
func NewMove(size PieceSize, row, col int) Move {
	return Move{Size: size, Row: row, Col: col}
}

// Coordinate returns the target cell
func (m Move) Coordinate() Coordinate {
	return Coordinate{Row: m.Row, Col: m.Col}
}

// String renders the move as "L@(1,1)"
func (m Move) String() string {
	return fmt.Sprintf("%s@(%d,%d)", m.Size, m.Row, m.Col)
}
