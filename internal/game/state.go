package game

import (
	"github.com/mitchelldurbincs/gobblet-go/internal/game/ai"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/states"
)

// Snapshot is a value copy of a session's position
type Snapshot struct {
	GameID     string
	Mode       Mode
	Difficulty ai.Difficulty
	Phase      states.GamePhase
	Board      core.Board
	Supplies   core.Supplies
	// Turn is the side to move; after the game ends it is the side that moved last
	Turn    core.Color
	Outcome core.Outcome
	// WinningLine is meaningful only when Outcome is a win
	WinningLine core.Line
	MoveCount   int
}
