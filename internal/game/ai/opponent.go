package ai

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/rules"
	"github.com/rs/zerolog"
)

// Difficulty selects the strategy used by the computer opponent
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts "easy", "medium" or "hard" (any case) to a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// RandomSource is the only source of randomness in move selection.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Position is the snapshot a strategy decides on
type Position struct {
	Board    core.Board
	Supplies core.Supplies
	Acting   core.Color
	Opponent core.Color
}

// Strategy picks one of the acting side's legal moves. moves is never empty
// and is in rules.LegalMoves order.
type Strategy interface {
	Name() string
	Choose(pos Position, moves []core.Move, rng RandomSource) core.Move
}

// Opponent selects moves for the computer side
type Opponent struct {
	rng        RandomSource
	logger     zerolog.Logger
	strategies map[Difficulty]Strategy
}

// NewOpponent creates an opponent drawing all tie-breaks from rng
func NewOpponent(rng RandomSource, logger zerolog.Logger) *Opponent {
	return &Opponent{
		rng:    rng,
		logger: logger.With().Str("component", "Opponent").Logger(),
		strategies: map[Difficulty]Strategy{
			Easy:   EasyStrategy{},
			Medium: MediumStrategy{},
			Hard:   HardStrategy{},
		},
	}
}

// SelectMove returns the move the acting color plays at the given difficulty,
// or false when the acting color has no legal move at all. Inputs are never
// mutated.
func (o *Opponent) SelectMove(board core.Board, supplies core.Supplies, acting, opponent core.Color, difficulty Difficulty) (core.Move, bool) {
	moves := rules.LegalMoves(board, supplies.For(acting))
	if len(moves) == 0 {
		o.logger.Debug().
			Str("acting", acting.String()).
			Str("supply", supplies.For(acting).String()).
			Msg("No legal moves available")
		return core.Move{}, false
	}

	strategy, ok := o.strategies[difficulty]
	if !ok {
		o.logger.Warn().Int("difficulty", int(difficulty)).Msg("Unknown difficulty, using hard strategy")
		strategy = o.strategies[Hard]
	}

	pos := Position{Board: board, Supplies: supplies, Acting: acting, Opponent: opponent}
	move := strategy.Choose(pos, moves, o.rng)

	o.logger.Debug().
		Str("acting", acting.String()).
		Str("strategy", strategy.Name()).
		Int("candidates", len(moves)).
		Str("move", move.String()).
		Msg("Move selected")
	return move, true
}

// pickRandom returns a uniformly random element of moves
func pickRandom(moves []core.Move, rng RandomSource) core.Move {
	return moves[rng.Intn(len(moves))]
}

// winsImmediately reports whether mover playing move completes a line for mover
func winsImmediately(board core.Board, supplies core.Supplies, mover core.Color, move core.Move) bool {
	next, _ := rules.MustApplyMove(board, supplies, mover, move)
	return rules.CheckWinner(next).IsWinFor(mover)
}
