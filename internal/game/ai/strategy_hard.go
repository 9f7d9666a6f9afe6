package ai

import (
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/rules"
)

// WinScore is the terminal value of a won position in the hard search
const WinScore = 100

// HardStrategy is a one-ply minimax over terminal values only. An immediate
// win is played at once. Every other move is valued as the negation of the
// opponent's best reply, where a reply scores +WinScore if it wins for the
// opponent, -WinScore if it leaves the acting side winning, and 0 otherwise.
// An opponent with no reply counts as -WinScore. Ties among the best moves
// are broken at random.
type HardStrategy struct{}

func (HardStrategy) Name() string { return "hard" }

func (HardStrategy) Choose(pos Position, moves []core.Move, rng RandomSource) core.Move {
	best := make([]core.Move, 0, len(moves))
	bestScore := 0

	for _, m := range moves {
		board, supplies := rules.MustApplyMove(pos.Board, pos.Supplies, pos.Acting, m)
		if rules.CheckWinner(board).IsWinFor(pos.Acting) {
			return m
		}

		score := -bestReplyScore(board, supplies, pos.Acting, pos.Opponent)
		switch {
		case len(best) == 0 || score > bestScore:
			bestScore = score
			best = append(best[:0], m)
		case score == bestScore:
			best = append(best, m)
		}
	}

	return pickRandom(best, rng)
}

// ScoreMove returns the hard search value of acting playing m, without the
// random tie-break. Exposed for analysis and tests.
func ScoreMove(pos Position, m core.Move) int {
	board, supplies := rules.MustApplyMove(pos.Board, pos.Supplies, pos.Acting, m)
	if rules.CheckWinner(board).IsWinFor(pos.Acting) {
		return WinScore
	}
	return -bestReplyScore(board, supplies, pos.Acting, pos.Opponent)
}

// bestReplyScore is the opponent's best terminal score over its replies
func bestReplyScore(board core.Board, supplies core.Supplies, acting, opponent core.Color) int {
	replies := rules.LegalMoves(board, supplies.For(opponent))
	if len(replies) == 0 {
		return -WinScore
	}

	best := -WinScore
	for _, r := range replies {
		next, _ := rules.MustApplyMove(board, supplies, opponent, r)
		outcome := rules.CheckWinner(next)

		score := 0
		switch {
		case outcome.IsWinFor(opponent):
			score = WinScore
		case outcome.IsWinFor(acting):
			score = -WinScore
		}
		if score > best {
			best = score
		}
		if best == WinScore {
			break
		}
	}
	return best
}
