package core

import "fmt"

// DefaultPiecesPerSize is the starting count of each size for each side
const DefaultPiecesPerSize = 2

// Supply holds the unplayed pieces of one side, indexed by PieceSize
type Supply [NumSizes]int

// NewSupply creates a supply with the given starting counts
func NewSupply(small, medium, large int) Supply {
	var s Supply
	s[Small] = small
	s[Medium] = medium
	s[Large] = large
	return s
}

// DefaultSupply returns the reference 2/2/2 supply
func DefaultSupply() Supply {
	return NewSupply(DefaultPiecesPerSize, DefaultPiecesPerSize, DefaultPiecesPerSize)
}

// Remaining returns how many pieces of size are left. Unknown sizes have none.
func (s Supply) Remaining(size PieceSize) int {
	if !size.IsValid() {
		return 0
	}
	return s[size]
}

// Total returns the number of unplayed pieces across all sizes
func (s Supply) Total() int {
	return s[Small] + s[Medium] + s[Large]
}

// IsExhausted reports whether every size is at zero
func (s Supply) IsExhausted() bool {
	return s.Total() == 0
}

// Take returns the supply with one piece of size removed. Taking from an
// empty slot panics; callers check legality first.
func (s Supply) Take(size PieceSize) Supply {
	if s.Remaining(size) <= 0 {
		panic(fmt.Errorf("take %s: %w", size, ErrNoSupply))
	}
	s[size]--
	return s
}

func (s Supply) String() string {
	return fmt.Sprintf("S:%d M:%d L:%d", s[Small], s[Medium], s[Large])
}

// Supplies holds one Supply per color
type Supplies [NumColors]Supply

// NewSupplies gives both sides the same starting supply
func NewSupplies(initial Supply) Supplies {
	return Supplies{initial, initial}
}

// For returns the supply of color
func (s Supplies) For(color Color) Supply {
	return s[color]
}

// Take returns the supplies with one piece of size removed from color
func (s Supplies) Take(color Color, size PieceSize) Supplies {
	s[color] = s[color].Take(size)
	return s
}
