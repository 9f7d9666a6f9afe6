package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
)

// This file contains all board rendering functionality for the session.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorBlue   = "\033[34m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
	BgYellow    = "\033[43m"
	EmptySymbol = "·"
)

var playerColors = [core.NumColors]string{ColorRed, ColorBlue}

// Render returns the board, supplies and status with ANSI colors
func (s *Session) Render() string {
	return RenderSnapshot(s.Snapshot(), true)
}

// RenderPlain returns the same view as Render without escape codes
func (s *Session) RenderPlain() string {
	return RenderSnapshot(s.Snapshot(), false)
}

// RenderSnapshot draws a snapshot. Each cell shows its top piece and, after
// a slash, the stack height when pieces are covered. Cells of a winning line
// are highlighted when colored output is on.
func RenderSnapshot(snap Snapshot, colored bool) string {
	var sb strings.Builder
	sb.Grow(512)

	winning := make(map[core.Coordinate]bool, core.BoardSize)
	if snap.Outcome.Kind == core.OutcomeWon {
		for _, c := range snap.WinningLine {
			winning[c] = true
		}
	}

	sb.WriteString("     ")
	for col := 0; col < core.BoardSize; col++ {
		fmt.Fprintf(&sb, "%-6d", col)
	}
	sb.WriteString("\n")

	for row := 0; row < core.BoardSize; row++ {
		fmt.Fprintf(&sb, "%2d   ", row)
		for col := 0; col < core.BoardSize; col++ {
			writeCell(&sb, snap.Board.Cell(row, col), winning[core.NewCoordinate(row, col)], colored)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, color := range []core.Color{core.PlayerA, core.PlayerB} {
		writeColored(&sb, fmt.Sprintf("%-8s", color), playerColor(color), colored)
		fmt.Fprintf(&sb, " %s\n", snap.Supplies.For(color))
	}

	switch snap.Outcome.Kind {
	case core.OutcomeWon:
		fmt.Fprintf(&sb, "\n%s wins after %d moves\n", snap.Outcome.Winner, snap.MoveCount)
	case core.OutcomeDraw:
		fmt.Fprintf(&sb, "\nDraw after %d moves\n", snap.MoveCount)
	default:
		fmt.Fprintf(&sb, "\nMove %d, %s to play\n", snap.MoveCount+1, snap.Turn)
	}

	return sb.String()
}

// writeCell writes a fixed-width cell so columns line up with and without color
func writeCell(sb *strings.Builder, stack core.CellStack, highlight, colored bool) {
	top, ok := stack.Top()
	if !ok {
		writeColored(sb, fmt.Sprintf("%-6s", " "+EmptySymbol), ColorGray, colored)
		return
	}

	label := top.String()
	if len(stack) > 1 {
		label = fmt.Sprintf("%s/%d", label, len(stack))
	}
	label = fmt.Sprintf("%-6s", label)

	color := playerColor(top.Color)
	if highlight {
		color = ColorBold + BgYellow + color
	}
	writeColored(sb, label, color, colored)
}

func writeColored(sb *strings.Builder, text, color string, colored bool) {
	if !colored {
		sb.WriteString(text)
		return
	}
	sb.WriteString(color)
	sb.WriteString(text)
	sb.WriteString(ColorReset)
}

// playerColor returns the color for the given side
func playerColor(c core.Color) string {
	if !c.IsValid() {
		return ColorWhite
	}
	return playerColors[c]
}
