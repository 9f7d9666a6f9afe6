package ai

import (
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/rules"
)

// MediumStrategy looks one placement ahead for both sides.
// Priority:
//  1. Win now, first winning move in enumeration order
//  2. Occupy a cell where the opponent would win next turn
//  3. Large piece on the center
//  4. Random legal move
type MediumStrategy struct{}

func (MediumStrategy) Name() string { return "medium" }

func (MediumStrategy) Choose(pos Position, moves []core.Move, rng RandomSource) core.Move {
	for _, m := range moves {
		if winsImmediately(pos.Board, pos.Supplies, pos.Acting, m) {
			return m
		}
	}

	if block, ok := findBlock(pos, moves); ok {
		return block
	}

	center := core.NewMove(core.Large, core.Center.Row, core.Center.Col)
	for _, m := range moves {
		if m == center {
			return m
		}
	}

	return pickRandom(moves, rng)
}

// findBlock walks the opponent's winning placements in their enumeration order
// and returns the first acting move onto the same cell. Whether the blocking
// piece can itself be covered next turn is not checked.
func findBlock(pos Position, moves []core.Move) (core.Move, bool) {
	for _, threat := range rules.LegalMoves(pos.Board, pos.Supplies.For(pos.Opponent)) {
		if !winsImmediately(pos.Board, pos.Supplies, pos.Opponent, threat) {
			continue
		}
		for _, m := range moves {
			if m.Row == threat.Row && m.Col == threat.Col {
				return m, true
			}
		}
	}
	return core.Move{}, false
}
