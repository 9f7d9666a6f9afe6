package core

import "fmt"

// PieceSize is the size of a piece. Ordering matters: a piece may only cover
// pieces of a strictly smaller size.
type PieceSize int

const (
	Small PieceSize = iota
	Medium
	Large
)

// NumSizes is the number of distinct piece sizes
const NumSizes = 3

// AllSizes returns the sizes in enumeration order, largest first
func AllSizes() []PieceSize {
	return []PieceSize{Large, Medium, Small}
}

// IsValid reports whether the size is one of Small, Medium or Large
func (s PieceSize) IsValid() bool {
	return s >= Small && s <= Large
}

// Covers reports whether a piece of size s may be placed on top of other
func (s PieceSize) Covers(other PieceSize) bool {
	return s > other
}

// String returns the single-letter label used in logs and the terminal view
func (s PieceSize) String() string {
	switch s {
	case Small:
		return "S"
	case Medium:
		return "M"
	case Large:
		return "L"
	default:
		return fmt.Sprintf("Size(%d)", int(s))
	}
}

// ParsePieceSize converts a label ("S", "small", ...) to a PieceSize
func ParsePieceSize(s string) (PieceSize, error) {
	switch s {
	case "S", "s", "small", "SMALL":
		return Small, nil
	case "M", "m", "medium", "MEDIUM":
		return Medium, nil
	case "L", "l", "large", "LARGE":
		return Large, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPieceSize, s)
	}
}

// Color identifies one of the two sides
type Color int

const (
	PlayerA Color = iota
	PlayerB
)

// NumColors is the number of sides in a game
const NumColors = 2

// IsValid reports whether the color is PlayerA or PlayerB
func (c Color) IsValid() bool {
	return c == PlayerA || c == PlayerB
}

// Opponent returns the other side
func (c Color) Opponent() Color {
	if c == PlayerA {
		return PlayerB
	}
	return PlayerA
}

func (c Color) String() string {
	switch c {
	case PlayerA:
		return "PlayerA"
	case PlayerB:
		return "PlayerB"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// Symbol returns the short board symbol for the color
func (c Color) Symbol() string {
	if c == PlayerA {
		return "A"
	}
	return "B"
}

// ParseColor converts "A"/"B" (or the full names) to a Color
func ParseColor(s string) (Color, error) {
	switch s {
	case "A", "a", "PlayerA", "player_a":
		return PlayerA, nil
	case "B", "b", "PlayerB", "player_b":
		return PlayerB, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
}

// Piece is an immutable value created when a player places it on the board.
type Piece struct {
	ID    string
	Color Color
	Size  PieceSize
}

// NewPiece builds a piece whose ID is derived from its owner, size and the
// ordinal of that piece within the owner's supply. The same placement sequence
// therefore always yields the same IDs.
func NewPiece(color Color, size PieceSize, ordinal int) Piece {
	return Piece{
		ID:    fmt.Sprintf("%s-%s-%d", color.Symbol(), size, ordinal),
		Color: color,
		Size:  size,
	}
}

func (p Piece) String() string {
	return p.Color.Symbol() + p.Size.String()
}
