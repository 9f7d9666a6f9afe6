package game

import (
	"fmt"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
)

// Scoreboard counts finished games across restarts
type Scoreboard struct {
	Wins  [core.NumColors]int
	Draws int
	// Abandoned counts games restarted before they ended
	Abandoned int
}

// Record adds a finished game
func (sb *Scoreboard) Record(outcome core.Outcome) {
	switch outcome.Kind {
	case core.OutcomeWon:
		sb.Wins[outcome.Winner]++
	case core.OutcomeDraw:
		sb.Draws++
	}
}

// Played is the number of finished games
func (sb Scoreboard) Played() int {
	return sb.Wins[core.PlayerA] + sb.Wins[core.PlayerB] + sb.Draws
}

func (sb Scoreboard) String() string {
	return fmt.Sprintf("%s %d - %d %s (draws %d)",
		core.PlayerA, sb.Wins[core.PlayerA], sb.Wins[core.PlayerB], core.PlayerB, sb.Draws)
}
