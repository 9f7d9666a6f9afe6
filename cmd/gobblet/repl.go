package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/gobblet-go/internal/game"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/ai"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
)

const helpText = `Commands:
  <S|M|L> <row> <col>   place a piece, e.g. "L 1 1" (rows and columns 0-2)
  moves                 list legal moves for the side to play
  history               show the moves of this game
  score                 show results across games
  difficulty <tier>     switch the opponent to easy, medium or hard
  restart               abandon this game and start a new one
  help                  show this help
  quit                  leave
`

type commandKind int

const (
	cmdPlace commandKind = iota
	cmdMoves
	cmdHistory
	cmdScore
	cmdDifficulty
	cmdRestart
	cmdHelp
	cmdQuit
)

type command struct {
	kind       commandKind
	move       core.Move
	difficulty ai.Difficulty
}

var errEmptyCommand = errors.New("empty command")

// parseCommand reads one input line. A placement is a size followed by row
// and column, optionally prefixed with "place".
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errEmptyCommand
	}

	switch fields[0] {
	case "moves":
		return command{kind: cmdMoves}, nil
	case "history":
		return command{kind: cmdHistory}, nil
	case "score":
		return command{kind: cmdScore}, nil
	case "restart", "new":
		return command{kind: cmdRestart}, nil
	case "help", "?":
		return command{kind: cmdHelp}, nil
	case "quit", "exit", "q":
		return command{kind: cmdQuit}, nil
	case "difficulty":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: difficulty <easy|medium|hard>")
		}
		d, err := ai.ParseDifficulty(fields[1])
		if err != nil {
			return command{}, err
		}
		return command{kind: cmdDifficulty, difficulty: d}, nil
	case "place":
		fields = fields[1:]
	}

	if len(fields) != 3 {
		return command{}, fmt.Errorf("unknown command %q, type help for a list", line)
	}
	size, err := core.ParsePieceSize(fields[0])
	if err != nil {
		return command{}, err
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return command{}, fmt.Errorf("row %q is not a number", fields[1])
	}
	col, err := strconv.Atoi(fields[2])
	if err != nil {
		return command{}, fmt.Errorf("column %q is not a number", fields[2])
	}
	return command{kind: cmdPlace, move: core.NewMove(size, row, col)}, nil
}

// repl drives a session from line-based input, letting the computer move
// whenever it is its turn
type repl struct {
	session     *game.Session
	in          io.Reader
	out         io.Writer
	colored     bool
	showHistory bool
}

func newREPL(session *game.Session, in io.Reader, out io.Writer, colored, showHistory bool) *repl {
	return &repl{
		session:     session,
		in:          in,
		out:         out,
		colored:     colored,
		showHistory: showHistory,
	}
}

// Run plays until quit, end of input or ctx is cancelled
func (r *repl) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprintln(r.out, "Stacking tic-tac-toe. Type help for commands.")
	r.printBoard()

	for {
		if err := r.autoplay(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		r.prompt()

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := r.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

// autoplay lets the computer move until a human is to play or the game ends
func (r *repl) autoplay(ctx context.Context) error {
	for r.session.IsComputerTurn() {
		turn := r.session.Snapshot().Turn
		fmt.Fprintf(r.out, "%s is thinking...\n", turn)

		move, played, err := r.session.PlayOpponentTurn(ctx)
		switch {
		case errors.Is(err, core.ErrGameOver):
			// restarted while waiting
			continue
		case err != nil:
			return err
		case played:
			fmt.Fprintf(r.out, "%s plays %s\n", turn, move)
		default:
			fmt.Fprintf(r.out, "%s cannot move and passes\n", turn)
		}
		r.printBoard()
	}
	return nil
}

func (r *repl) prompt() {
	snap := r.session.Snapshot()
	if snap.Outcome.IsOver() {
		fmt.Fprint(r.out, "Game over. restart or quit> ")
		return
	}
	fmt.Fprintf(r.out, "%s> ", snap.Turn)
}

// handle runs one command and reports whether to quit
func (r *repl) handle(ctx context.Context, line string) bool {
	cmd, err := parseCommand(line)
	if errors.Is(err, errEmptyCommand) {
		return false
	}
	if err != nil {
		fmt.Fprintln(r.out, err)
		return false
	}

	switch cmd.kind {
	case cmdQuit:
		return true
	case cmdHelp:
		fmt.Fprint(r.out, helpText)
	case cmdMoves:
		r.printMoves()
	case cmdHistory:
		r.printHistory()
	case cmdScore:
		fmt.Fprintln(r.out, r.session.Scoreboard())
	case cmdDifficulty:
		if err := r.session.SetDifficulty(cmd.difficulty); err != nil {
			fmt.Fprintln(r.out, err)
			return false
		}
		fmt.Fprintf(r.out, "Opponent difficulty is now %s\n", cmd.difficulty)
	case cmdRestart:
		if err := r.session.Restart(ctx); err != nil {
			fmt.Fprintln(r.out, err)
			return false
		}
		fmt.Fprintln(r.out, "New game")
		r.printBoard()
	case cmdPlace:
		m := cmd.move
		if err := r.session.PlayMove(ctx, m.Size, m.Row, m.Col); err != nil {
			fmt.Fprintf(r.out, "Rejected: %v\n", err)
			return false
		}
		r.printBoard()
		if r.showHistory {
			r.printHistory()
		}
	}
	return false
}

func (r *repl) printBoard() {
	if r.colored {
		fmt.Fprint(r.out, r.session.Render())
		return
	}
	fmt.Fprint(r.out, r.session.RenderPlain())
}

func (r *repl) printHistory() {
	history := r.session.History()
	if len(history) == 0 {
		fmt.Fprintln(r.out, "No moves yet")
		return
	}
	for i, line := range history {
		fmt.Fprintf(r.out, "%2d. %s\n", i+1, line)
	}
}

func (r *repl) printMoves() {
	moves := r.session.LegalMoves()
	if len(moves) == 0 {
		fmt.Fprintln(r.out, "No legal moves")
		return
	}
	labels := make([]string, len(moves))
	for i, m := range moves {
		labels[i] = m.String()
	}
	fmt.Fprintln(r.out, strings.Join(labels, " "))
}
