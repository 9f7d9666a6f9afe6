package core

import "fmt"

// Coordinate represents a cell position on the board
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a row-major cell index
func FromIndex(idx int) Coordinate {
	return Coordinate{
		Row: idx / BoardSize,
		Col: idx % BoardSize,
	}
}

// Center is the middle cell
var Center = Coordinate{Row: 1, Col: 1}

// IsValid checks if the coordinate is on the board
func (c Coordinate) IsValid() bool {
	return InBounds(c.Row, c.Col)
}

// ToIndex converts the coordinate to a row-major cell index
func (c Coordinate) ToIndex() int {
	return c.Row*BoardSize + c.Col
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// AllCoordinates returns the nine cells in row-major order
func AllCoordinates() []Coordinate {
	coords := make([]Coordinate, 0, BoardSize*BoardSize)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			coords = append(coords, Coordinate{Row: r, Col: c})
		}
	}
	return coords
}

// Line is three cells that win when they share a visible color
type Line [BoardSize]Coordinate

// WinningLines lists rows, then columns, then the main and anti diagonal.
// The order is the scan order of the win check.
var WinningLines = func() []Line {
	lines := make([]Line, 0, 2*BoardSize+2)
	for r := 0; r < BoardSize; r++ {
		lines = append(lines, Line{{r, 0}, {r, 1}, {r, 2}})
	}
	for c := 0; c < BoardSize; c++ {
		lines = append(lines, Line{{0, c}, {1, c}, {2, c}})
	}
	lines = append(lines,
		Line{{0, 0}, {1, 1}, {2, 2}},
		Line{{0, 2}, {1, 1}, {2, 0}},
	)
	return lines
}()
