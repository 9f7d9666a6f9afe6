package positions

import (
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/rules"
)

// Config holds configuration for position generation
type Config struct {
	// Plies is the number of placements to play from the empty board
	Plies       int
	FirstPlayer core.Color
	Supply      core.Supply
}

// DefaultConfig returns a config for a position a few moves into a game
func DefaultConfig(plies int) Config {
	return Config{
		Plies:       plies,
		FirstPlayer: core.PlayerA,
		Supply:      core.DefaultSupply(),
	}
}

// Position is a board reached by legal play with no winner on it
type Position struct {
	Board    core.Board
	Supplies core.Supplies
	Turn     core.Color
	// Plies is how many placements were actually played
	Plies int
}

// RandomSource is the subset of *rand.Rand the generator needs
type RandomSource interface {
	Intn(n int) int
}

// Generator plays random legal moves to build positions, deterministic for a
// given random source
type Generator struct {
	config Config
	rng    RandomSource
}

// NewGenerator creates a new position generator
func NewGenerator(config Config, rng RandomSource) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Generate plays up to Plies random placements, skipping any that would end
// the game. It stops early once the side to move has no quiet move left. A side
// with no legal move at all passes, as it would in a session.
func (g *Generator) Generate() Position {
	pos := Position{
		Board:    core.EmptyBoard(),
		Supplies: core.NewSupplies(g.config.Supply),
		Turn:     g.config.FirstPlayer,
	}

	for pos.Plies < g.config.Plies {
		if !rules.HasLegalMove(pos.Board, pos.Supplies.For(pos.Turn)) {
			if !rules.HasLegalMove(pos.Board, pos.Supplies.For(pos.Turn.Opponent())) {
				break
			}
			pos.Turn = pos.Turn.Opponent()
			continue
		}

		quiet := g.quietMoves(pos)
		if len(quiet) == 0 {
			break
		}
		move := quiet[g.rng.Intn(len(quiet))]
		pos.Board, pos.Supplies = rules.MustApplyMove(pos.Board, pos.Supplies, pos.Turn, move)
		pos.Turn = pos.Turn.Opponent()
		pos.Plies++
	}

	return pos
}

// quietMoves returns the legal moves that leave no winning line on the board
func (g *Generator) quietMoves(pos Position) []core.Move {
	legal := rules.LegalMoves(pos.Board, pos.Supplies.For(pos.Turn))
	quiet := make([]core.Move, 0, len(legal))
	for _, m := range legal {
		next, _ := rules.MustApplyMove(pos.Board, pos.Supplies, pos.Turn, m)
		if _, won := rules.WinningLine(next); !won {
			quiet = append(quiet, m)
		}
	}
	return quiet
}
