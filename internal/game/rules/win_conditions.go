package rules

import (
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/rs/zerolog"
)

// CheckWinner scans rows, then columns, then the two diagonals and returns the
// first line whose three visible pieces share a color. It never reports a draw.
func CheckWinner(board core.Board) core.Outcome {
	for _, line := range core.WinningLines {
		if color, ok := lineOwner(board, line); ok {
			return core.WonBy(color)
		}
	}
	return core.NoOutcome()
}

// WinningLine returns the first winning line in scan order, if any
func WinningLine(board core.Board) (core.Line, bool) {
	for _, line := range core.WinningLines {
		if _, ok := lineOwner(board, line); ok {
			return line, true
		}
	}
	return core.Line{}, false
}

func lineOwner(board core.Board, line core.Line) (core.Color, bool) {
	first, ok := board.Owner(line[0].Row, line[0].Col)
	if !ok {
		return 0, false
	}
	for _, c := range line[1:] {
		owner, ok := board.Owner(c.Row, c.Col)
		if !ok || owner != first {
			return 0, false
		}
	}
	return first, true
}

// IsStalemate reports whether neither side has a legal placement left
func IsStalemate(board core.Board, supplies core.Supplies) bool {
	return !HasLegalMove(board, supplies.For(core.PlayerA)) &&
		!HasLegalMove(board, supplies.For(core.PlayerB))
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// Evaluate returns the outcome after a placement: a win from CheckWinner, a
// draw when neither side can place anything, otherwise no outcome.
func (wc *WinConditionChecker) Evaluate(board core.Board, supplies core.Supplies) core.Outcome {
	wc.logger.Debug().Msg("Checking game over conditions")

	if outcome := CheckWinner(board); outcome.IsOver() {
		line, _ := WinningLine(board)
		wc.logger.Info().
			Str("winner", outcome.Winner.String()).
			Str("line", line[0].String()+"-"+line[2].String()).
			Msg("Winner determined")
		return outcome
	}

	if IsStalemate(board, supplies) {
		wc.logger.Info().
			Str("supply_a", supplies.For(core.PlayerA).String()).
			Str("supply_b", supplies.For(core.PlayerB).String()).
			Msg("No legal placements left for either side, game drawn")
		return core.DrawOutcome()
	}

	return core.NoOutcome()
}
