package states

import "fmt"

// GamePhase represents the current phase of a session
type GamePhase int

const (
	// PhaseInitializing - board and supplies being set up
	PhaseInitializing GamePhase = iota

	// PhaseRunning - moves are accepted
	PhaseRunning

	// PhaseEnded - a win or draw has been reached
	PhaseEnded

	// PhaseReset - the session is being restarted with a fresh game
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a finished game
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanReceiveActions returns true if the session can process moves in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseRunning}
	case PhaseRunning:
		return []GamePhase{PhaseEnded, PhaseReset}
	case PhaseEnded:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseInitializing}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	switch s {
	case "Initializing":
		return PhaseInitializing, nil
	case "Running":
		return PhaseRunning, nil
	case "Ended":
		return PhaseEnded, nil
	case "Reset":
		return PhaseReset, nil
	default:
		return PhaseInitializing, fmt.Errorf("unknown phase %q", s)
	}
}
