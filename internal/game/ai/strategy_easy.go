package ai

import "github.com/mitchelldurbincs/gobblet-go/internal/game/core"

// EasyStrategy plays a uniformly random legal move
type EasyStrategy struct{}

func (EasyStrategy) Name() string { return "easy" }

func (EasyStrategy) Choose(_ Position, moves []core.Move, rng RandomSource) core.Move {
	return pickRandom(moves, rng)
}
