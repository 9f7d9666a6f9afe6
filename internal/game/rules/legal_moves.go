package rules

import "github.com/mitchelldurbincs/gobblet-go/internal/game/core"

// ValidateMove reports why placing size at (row, col) is illegal for a side
// holding supply, or nil if the move is legal. Checks run in order: size,
// supply, bounds, then the target stack.
func ValidateMove(board core.Board, supply core.Supply, size core.PieceSize, row, col int) error {
	if !size.IsValid() {
		return core.ErrInvalidPieceSize
	}
	if supply.Remaining(size) <= 0 {
		return core.ErrNoSupply
	}
	if !core.InBounds(row, col) {
		return core.ErrInvalidCoordinates
	}
	if top, ok := board.TopOf(row, col); ok && !size.Covers(top.Size) {
		return core.ErrCellCovered
	}
	return nil
}

// IsLegalMove is the single legality predicate for placements: the mover has a
// piece of that size, the cell is on the board, and the cell is empty or
// topped by a strictly smaller piece.
func IsLegalMove(board core.Board, supply core.Supply, size core.PieceSize, row, col int) bool {
	return ValidateMove(board, supply, size, row, col) == nil
}

// LegalMoves enumerates every legal placement for a side holding supply.
// Sizes are visited Large, Medium, Small and cells in row-major order; search
// tie-breaks depend on this order.
func LegalMoves(board core.Board, supply core.Supply) []core.Move {
	moves := make([]core.Move, 0, core.NumSizes*core.BoardSize*core.BoardSize)
	for _, size := range core.AllSizes() {
		if supply.Remaining(size) <= 0 {
			continue
		}
		for _, c := range core.AllCoordinates() {
			if IsLegalMove(board, supply, size, c.Row, c.Col) {
				moves = append(moves, core.NewMove(size, c.Row, c.Col))
			}
		}
	}
	return moves
}

// HasLegalMove reports whether at least one placement is available
func HasLegalMove(board core.Board, supply core.Supply) bool {
	for _, size := range core.AllSizes() {
		if supply.Remaining(size) <= 0 {
			continue
		}
		for _, c := range core.AllCoordinates() {
			if IsLegalMove(board, supply, size, c.Row, c.Col) {
				return true
			}
		}
	}
	return false
}

// ActionSpaceSize is the number of entries in a legal move mask
const ActionSpaceSize = core.NumSizes * core.BoardSize * core.BoardSize

// ActionIndex maps a move to its position in a legal move mask
func ActionIndex(m core.Move) int {
	return int(m.Size)*core.BoardSize*core.BoardSize + m.Row*core.BoardSize + m.Col
}

// MoveFromActionIndex is the inverse of ActionIndex
func MoveFromActionIndex(idx int) core.Move {
	cells := core.BoardSize * core.BoardSize
	c := core.FromIndex(idx % cells)
	return core.NewMove(core.PieceSize(idx/cells), c.Row, c.Col)
}

// LegalMoveCalculator computes dense legal move masks for agents and views
// that prefer a fixed-size action space over a move list.
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// LegalMoveMask returns a flattened boolean mask indicating which placements
// are legal for a side holding supply.
// - Total actions = 3 sizes * 9 cells = 27
// - Index = size*9 + row*3 + col (Small=0, Medium=1, Large=2)
func (lmc *LegalMoveCalculator) LegalMoveMask(board core.Board, supply core.Supply) []bool {
	mask := make([]bool, ActionSpaceSize)
	for _, m := range LegalMoves(board, supply) {
		mask[ActionIndex(m)] = true
	}
	return mask
}
