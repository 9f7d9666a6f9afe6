package testutil

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
)

// BoardFromRows builds a board from three row strings. Each row holds three
// space-separated cells; a cell is "." when empty or a comma-separated stack,
// bottom to top, of color+size tokens such as "AS" or "BS,AL".
//
//	BoardFromRows(t,
//		"AS  .     BM",
//		".   BS,AL .",
//		".   .     .")
//
// Stacks are placed as written, without legality checks, so tests can build
// any position.
func BoardFromRows(t testing.TB, rows ...string) core.Board {
	t.Helper()
	if len(rows) != core.BoardSize {
		t.Fatalf("BoardFromRows: want %d rows, got %d", core.BoardSize, len(rows))
	}

	board := core.EmptyBoard()
	ordinals := make(map[core.Piece]int)
	for r, row := range rows {
		cells := strings.Fields(row)
		if len(cells) != core.BoardSize {
			t.Fatalf("BoardFromRows: row %d: want %d cells, got %d (%q)", r, core.BoardSize, len(cells), row)
		}
		for c, cell := range cells {
			if cell == "." {
				continue
			}
			for _, token := range strings.Split(cell, ",") {
				piece := parsePiece(t, token)
				ordinals[piece]++
				board = board.Place(r, c, core.NewPiece(piece.Color, piece.Size, ordinals[piece]))
			}
		}
	}
	return board
}

func parsePiece(t testing.TB, token string) core.Piece {
	t.Helper()
	if len(token) != 2 {
		t.Fatalf("BoardFromRows: bad piece token %q", token)
	}
	color, err := core.ParseColor(token[:1])
	if err != nil {
		t.Fatalf("BoardFromRows: %v", err)
	}
	size, err := core.ParsePieceSize(token[1:])
	if err != nil {
		t.Fatalf("BoardFromRows: %v", err)
	}
	return core.Piece{Color: color, Size: size}
}

// Supplies builds per-color supplies from small/medium/large counts
func Supplies(a, b [3]int) core.Supplies {
	return core.Supplies{
		core.NewSupply(a[0], a[1], a[2]),
		core.NewSupply(b[0], b[1], b[2]),
	}
}

// FullSupplies returns the 2/2/2 starting supplies for both sides
func FullSupplies() core.Supplies {
	return core.NewSupplies(core.DefaultSupply())
}
