package states

import (
	"errors"
	"time"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
)

var errNoOutcome = errors.New("cannot end a game without a win or draw")

// InitializingState represents board and supply setup
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// RunningState represents active play
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() GamePhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.EndTime = time.Time{}
	ctx.Games++
	ctx.Logger.Info().
		Int("game", ctx.Games).
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Dur("elapsed", ctx.GetElapsedTime()).
		Int("moves", ctx.MoveCount).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	if ctx.Outcome.IsOver() {
		return errors.New("cannot run a game that already has an outcome")
	}
	return nil
}

// EndedState is entered once a win or draw is reached
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Str("outcome", ctx.Outcome.String()).
		Int("moves", ctx.MoveCount).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if !ctx.Outcome.IsOver() {
		return errNoOutcome
	}
	return nil
}

// ResetState clears per-game facts before the next game
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() GamePhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Str("previous_outcome", ctx.Outcome.String()).
		Msg("Resetting game")
	ctx.Outcome = core.NoOutcome()
	ctx.MoveCount = 0
	ctx.StartTime = time.Time{}
	ctx.EndTime = time.Time{}
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error {
	return nil
}
