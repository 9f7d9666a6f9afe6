package events

import (
	"time"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
)

// Event type constants
const (
	TypeSessionStarted    = "session.started"
	TypeMovePlayed        = "move.played"
	TypeMoveRejected      = "move.rejected"
	TypeTurnPassed        = "turn.passed"
	TypeGameEnded         = "game.ended"
	TypeDifficultyChanged = "difficulty.changed"
	TypeStateTransition   = "state.transition"
)

// SessionStartedEvent is published when a session is created or restarted
type SessionStartedEvent struct {
	BaseEvent
	Mode          string     `json:"mode"`
	FirstPlayer   core.Color `json:"first_player"`
	OpponentColor core.Color `json:"opponent_color"`
	Difficulty    string     `json:"difficulty"`
	Supply        string     `json:"supply"`
}

// NewSessionStartedEvent creates a new SessionStartedEvent
func NewSessionStartedEvent(gameID, mode string, first, opponent core.Color, difficulty string, supply core.Supply) *SessionStartedEvent {
	return &SessionStartedEvent{
		BaseEvent:     newBase(TypeSessionStarted, gameID),
		Mode:          mode,
		FirstPlayer:   first,
		OpponentColor: opponent,
		Difficulty:    difficulty,
		Supply:        supply.String(),
	}
}

// MovePlayedEvent is published after a placement has been applied
type MovePlayedEvent struct {
	BaseEvent
	MoveNumber int        `json:"move_number"`
	Color      core.Color `json:"color"`
	Move       core.Move  `json:"move"`
	PieceID    string     `json:"piece_id"`
	// CoveredID is the piece that was on top of the cell before, if any
	CoveredID string `json:"covered_id,omitempty"`
	Automated bool   `json:"automated"`
}

// NewMovePlayedEvent creates a new MovePlayedEvent
func NewMovePlayedEvent(gameID string, moveNumber int, color core.Color, move core.Move, pieceID, coveredID string, automated bool) *MovePlayedEvent {
	return &MovePlayedEvent{
		BaseEvent:  newBase(TypeMovePlayed, gameID),
		MoveNumber: moveNumber,
		Color:      color,
		Move:       move,
		PieceID:    pieceID,
		CoveredID:  coveredID,
		Automated:  automated,
	}
}

// MoveRejectedEvent is published when a requested placement is refused
type MoveRejectedEvent struct {
	BaseEvent
	Color  core.Color `json:"color"`
	Move   core.Move  `json:"move"`
	Reason string     `json:"reason"`
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, color core.Color, move core.Move, reason string) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Color:     color,
		Move:      move,
		Reason:    reason,
	}
}

// TurnPassedEvent is published when the side to move has no legal placement
type TurnPassedEvent struct {
	BaseEvent
	Color core.Color `json:"color"`
}

// NewTurnPassedEvent creates a new TurnPassedEvent
func NewTurnPassedEvent(gameID string, color core.Color) *TurnPassedEvent {
	return &TurnPassedEvent{
		BaseEvent: newBase(TypeTurnPassed, gameID),
		Color:     color,
	}
}

// GameEndedEvent is published once per game when a win or draw is reached
type GameEndedEvent struct {
	BaseEvent
	Outcome  core.Outcome  `json:"outcome"`
	Moves    int           `json:"moves"`
	Duration time.Duration `json:"duration"`
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, outcome core.Outcome, moves int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Outcome:   outcome,
		Moves:     moves,
		Duration:  duration,
	}
}

// DifficultyChangedEvent is published when the opponent tier changes mid-session
type DifficultyChangedEvent struct {
	BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

// NewDifficultyChangedEvent creates a new DifficultyChangedEvent
func NewDifficultyChangedEvent(gameID, from, to string) *DifficultyChangedEvent {
	return &DifficultyChangedEvent{
		BaseEvent: newBase(TypeDifficultyChanged, gameID),
		From:      from,
		To:        to,
	}
}

// StateTransitionEvent is published when the session phase changes
type StateTransitionEvent struct {
	BaseEvent
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	Reason    string `json:"reason"`
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromState, toState, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromState: fromState,
		ToState:   toState,
		Reason:    reason,
	}
}
