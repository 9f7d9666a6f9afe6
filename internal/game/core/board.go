package core

import "fmt"

// BoardSize is the width and height of the grid
const BoardSize = 3

// CellStack holds the pieces of one cell, bottom to top. Only the last piece
// is visible. The stack does not enforce the size ordering; the rules package does.
type CellStack []Piece

// Top returns the visible piece, or false for an empty cell
func (s CellStack) Top() (Piece, bool) {
	if len(s) == 0 {
		return Piece{}, false
	}
	return s[len(s)-1], true
}

// IsEmpty reports whether no piece occupies the cell
func (s CellStack) IsEmpty() bool { return len(s) == 0 }

// Clone returns a copy that shares no memory with s
func (s CellStack) Clone() CellStack {
	if s == nil {
		return nil
	}
	out := make(CellStack, len(s))
	copy(out, s)
	return out
}

// Board is the fixed 3x3 grid of stacks. It is a value type: Place returns a
// new Board and never writes into a stack that another Board may share.
type Board struct {
	cells [BoardSize][BoardSize]CellStack
}

// EmptyBoard returns a board with nine empty cells
func EmptyBoard() Board {
	return Board{}
}

// InBounds checks if coordinates are within board boundaries
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func mustInBounds(row, col int) {
	if !InBounds(row, col) {
		panic(fmt.Errorf("board access at (%d,%d): %w", row, col, ErrInvalidCoordinates))
	}
}

// TopOf returns the visible occupant of a cell. Out-of-range coordinates are a
// programming error and panic.
func (b Board) TopOf(row, col int) (Piece, bool) {
	mustInBounds(row, col)
	return b.cells[row][col].Top()
}

// Cell returns a copy of the stack at (row, col)
func (b Board) Cell(row, col int) CellStack {
	mustInBounds(row, col)
	return b.cells[row][col].Clone()
}

// Owner returns the color of the visible piece at (row, col)
func (b Board) Owner(row, col int) (Color, bool) {
	top, ok := b.TopOf(row, col)
	if !ok {
		return 0, false
	}
	return top.Color, true
}

// Place returns a new board with piece appended to the stack at (row, col).
// Legality is not checked here.
func (b Board) Place(row, col int, piece Piece) Board {
	mustInBounds(row, col)

	old := b.cells[row][col]
	stack := make(CellStack, len(old), len(old)+1)
	copy(stack, old)
	b.cells[row][col] = append(stack, piece)
	return b
}

// PieceCount returns the number of pieces on the board, covered ones included
func (b Board) PieceCount() int {
	n := 0
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			n += len(b.cells[r][c])
		}
	}
	return n
}

// Equal compares two boards piece by piece
func (b Board) Equal(other Board) bool {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			left, right := b.cells[r][c], other.cells[r][c]
			if len(left) != len(right) {
				return false
			}
			for i := range left {
				if left[i] != right[i] {
					return false
				}
			}
		}
	}
	return true
}
