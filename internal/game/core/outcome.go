package core

// OutcomeKind says whether the game is undecided, won or drawn
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeWon
	OutcomeDraw
)

// Outcome is derived from the board after every placement. Winner is only
// meaningful when Kind is OutcomeWon.
type Outcome struct {
	Kind   OutcomeKind
	Winner Color
}

// NoOutcome is the outcome of an undecided game
func NoOutcome() Outcome { return Outcome{Kind: OutcomeNone} }

// WonBy is the outcome of a game won by color
func WonBy(color Color) Outcome { return Outcome{Kind: OutcomeWon, Winner: color} }

// DrawOutcome is the outcome of a drawn game
func DrawOutcome() Outcome { return Outcome{Kind: OutcomeDraw} }

// IsOver reports whether the game has been decided
func (o Outcome) IsOver() bool { return o.Kind != OutcomeNone }

// IsWinFor reports whether color won
func (o Outcome) IsWinFor(color Color) bool {
	return o.Kind == OutcomeWon && o.Winner == color
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeWon:
		return "Won(" + o.Winner.String() + ")"
	case OutcomeDraw:
		return "Draw"
	default:
		return "None"
	}
}
