package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/gobblet-go/internal/config"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/ai"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/rs/zerolog"
)

// SessionConfigFromConfig builds a SessionConfig from the loaded application
// config. A zero seed leaves the random source to the session defaults.
func SessionConfigFromConfig(c *config.Config, logger zerolog.Logger) (SessionConfig, error) {
	mode, err := ParseMode(c.Game.Mode)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("game.mode: %w", err)
	}
	first, err := core.ParseColor(c.Game.FirstPlayer)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("game.first_player: %w", err)
	}
	opponent, err := core.ParseColor(c.Opponent.Color)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("opponent.color: %w", err)
	}
	difficulty, err := ai.ParseDifficulty(c.Opponent.Difficulty)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("opponent.difficulty: %w", err)
	}

	sc := SessionConfig{
		Mode:          mode,
		FirstPlayer:   first,
		OpponentColor: opponent,
		Difficulty:    difficulty,
		InitialSupply: core.NewSupply(c.Game.Supply.Small, c.Game.Supply.Medium, c.Game.Supply.Large),
		MoveDelay:     time.Duration(c.Opponent.MoveDelayMs) * time.Millisecond,
		Logger:        logger,
	}
	if c.Opponent.Seed != 0 {
		sc.Rng = rand.New(rand.NewSource(c.Opponent.Seed))
	}
	return sc, nil
}
