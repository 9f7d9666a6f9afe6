package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mitchelldurbincs/gobblet-go/internal/game/ai"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/core"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/events"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/states"
	"github.com/mitchelldurbincs/gobblet-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps every event published on the session bus
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) ID() string                 { return "recorder" }
func (r *recorder) InterestedIn(_ string) bool { return true }

func (r *recorder) HandleEvent(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type()
	}
	return types
}

func (r *recorder) OfType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func newTestSession(t *testing.T, mutate func(cfg *SessionConfig)) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	cfg := SessionConfig{
		GameID:        "test-game",
		Mode:          ModePvP,
		FirstPlayer:   core.PlayerA,
		OpponentColor: core.PlayerB,
		Difficulty:    ai.Medium,
		Rng:           testutil.NewTestRNG(1),
		Logger:        testutil.NopLogger(),
		Subscribers:   []events.Subscriber{rec},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSession(context.Background(), cfg)
	require.NoError(t, err)
	return s, rec
}

type placement struct {
	size     core.PieceSize
	row, col int
}

func play(t *testing.T, s *Session, moves ...placement) {
	t.Helper()
	for _, m := range moves {
		require.NoError(t, s.PlayMove(context.Background(), m.size, m.row, m.col), "placing %s at (%d,%d)", m.size, m.row, m.col)
	}
}

// fullBoardMoves fills every cell without completing a line:
//
//	A B A
//	A B B
//	B A A
//
// PlayerB's centre piece is its only Large. With a 5/0/1 supply PlayerA is
// left holding its Large and PlayerB two Smalls that fit nowhere.
var fullBoardMoves = []placement{
	{core.Small, 0, 0}, {core.Large, 1, 1},
	{core.Small, 0, 2}, {core.Small, 0, 1},
	{core.Small, 1, 0}, {core.Small, 1, 2},
	{core.Small, 2, 1}, {core.Small, 2, 0},
	{core.Small, 2, 2},
}

func TestNewSession(t *testing.T) {
	s, rec := newTestSession(t, nil)

	assert.Equal(t, "test-game", s.GameID())
	assert.Equal(t, states.PhaseRunning, s.Phase())
	assert.Equal(t, []string{events.TypeStateTransition, events.TypeSessionStarted}, rec.Types())

	snap := s.Snapshot()
	assert.True(t, snap.Board.Equal(core.EmptyBoard()))
	assert.Equal(t, core.NewSupplies(core.DefaultSupply()), snap.Supplies, "zero supply falls back to the default")
	assert.Equal(t, core.PlayerA, snap.Turn)
	assert.False(t, snap.Outcome.IsOver())
	assert.Equal(t, 0, snap.MoveCount)
	assert.Len(t, s.LegalMoves(), 27)
	assert.Empty(t, s.History())

	started := rec.OfType(events.TypeSessionStarted)[0].(*events.SessionStartedEvent)
	assert.Equal(t, "pvp", started.Mode)
	assert.Equal(t, "medium", started.Difficulty)
	assert.Equal(t, core.PlayerA, started.FirstPlayer)
}

func TestNewSession_GeneratesGameID(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *SessionConfig) { cfg.GameID = "" })
	assert.Len(t, s.GameID(), 36)
}

func TestNewSession_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *SessionConfig)
		wantErr error
	}{
		{"unknown mode", func(cfg *SessionConfig) { cfg.Mode = Mode(7) }, nil},
		{"bad first player", func(cfg *SessionConfig) { cfg.FirstPlayer = core.Color(5) }, core.ErrInvalidPlayer},
		{"bad opponent color", func(cfg *SessionConfig) { cfg.OpponentColor = core.Color(-1) }, core.ErrInvalidPlayer},
		{"negative supply", func(cfg *SessionConfig) { cfg.InitialSupply = core.NewSupply(2, -1, 2) }, nil},
		{"negative delay", func(cfg *SessionConfig) { cfg.MoveDelay = -time.Second }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SessionConfig{Mode: ModePvP, Logger: testutil.NopLogger()}
			tt.mutate(&cfg)
			s, err := NewSession(context.Background(), cfg)
			require.Error(t, err)
			assert.Nil(t, s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSession(ctx, SessionConfig{Logger: testutil.NopLogger()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"pvp", ModePvP, false},
		{"PVE", ModePvE, false},
		{" cvc ", ModeCvC, false},
		{"online", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
			assert.True(t, m.IsValid())
		})
	}
	assert.False(t, Mode(3).IsValid())
}

func TestPlayMove_AlternatesAndRecordsHistory(t *testing.T) {
	s, rec := newTestSession(t, nil)

	play(t, s, placement{core.Small, 0, 0}, placement{core.Medium, 0, 0}, placement{core.Large, 1, 1})

	snap := s.Snapshot()
	assert.Equal(t, core.PlayerB, snap.Turn)
	assert.Equal(t, 3, snap.MoveCount)
	assert.Equal(t, core.NewSupply(1, 2, 1), snap.Supplies.For(core.PlayerA))
	assert.Equal(t, core.NewSupply(2, 1, 2), snap.Supplies.For(core.PlayerB))

	top, ok := snap.Board.TopOf(0, 0)
	require.True(t, ok)
	assert.Equal(t, "B-M-1", top.ID)
	assert.Len(t, snap.Board.Cell(0, 0), 2)

	assert.Equal(t, []string{
		"PlayerA placed S at (0,0)",
		"PlayerB placed M at (0,0) covering AS",
		"PlayerA placed L at (1,1)",
	}, s.History())

	played := rec.OfType(events.TypeMovePlayed)
	require.Len(t, played, 3)
	covering := played[1].(*events.MovePlayedEvent)
	assert.Equal(t, 2, covering.MoveNumber)
	assert.Equal(t, core.PlayerB, covering.Color)
	assert.Equal(t, "B-M-1", covering.PieceID)
	assert.Equal(t, "A-S-1", covering.CoveredID)
	assert.False(t, covering.Automated)
}

func TestPlayMove_RejectedLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		move    placement
		wantErr error
		reason  string
	}{
		{"cell covered", placement{core.Small, 1, 1}, core.ErrCellCovered, core.ErrCellCovered.Error()},
		{"equal size", placement{core.Large, 1, 1}, core.ErrCellCovered, core.ErrCellCovered.Error()},
		{"off the board", placement{core.Small, 3, 0}, core.ErrInvalidCoordinates, core.ErrInvalidCoordinates.Error()},
		{"negative column", placement{core.Small, 0, -1}, core.ErrInvalidCoordinates, core.ErrInvalidCoordinates.Error()},
		{"unknown size", placement{core.PieceSize(9), 0, 0}, core.ErrInvalidPieceSize, core.ErrInvalidPieceSize.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestSession(t, nil)
			play(t, s, placement{core.Large, 1, 1})
			before := s.Snapshot()
			rec.Reset()

			err := s.PlayMove(context.Background(), tt.move.size, tt.move.row, tt.move.col)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, core.ErrIllegalMove)
			assert.Contains(t, err.Error(), "move 2")

			after := s.Snapshot()
			assert.True(t, before.Board.Equal(after.Board))
			assert.Equal(t, before.Supplies, after.Supplies)
			assert.Equal(t, core.PlayerB, after.Turn)
			assert.Equal(t, 1, after.MoveCount)

			require.Equal(t, []string{events.TypeMoveRejected}, rec.Types())
			rejected := rec.OfType(events.TypeMoveRejected)[0].(*events.MoveRejectedEvent)
			assert.Equal(t, core.PlayerB, rejected.Color)
			assert.Equal(t, tt.reason, rejected.Reason)
		})
	}
}

func TestPlayMove_NoSupplyLeft(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *SessionConfig) { cfg.InitialSupply = core.NewSupply(1, 1, 1) })
	play(t, s, placement{core.Large, 0, 0}, placement{core.Large, 1, 1})

	err := s.PlayMove(context.Background(), core.Large, 2, 2)
	assert.ErrorIs(t, err, core.ErrNoSupply)
}

func TestPlayMove_WinEndsGame(t *testing.T) {
	s, rec := newTestSession(t, nil)

	play(t, s,
		placement{core.Large, 0, 0}, placement{core.Small, 1, 0},
		placement{core.Large, 0, 1}, placement{core.Small, 1, 1},
		placement{core.Medium, 0, 2})

	snap := s.Snapshot()
	assert.Equal(t, core.WonBy(core.PlayerA), snap.Outcome)
	assert.Equal(t, states.PhaseEnded, snap.Phase)
	assert.Equal(t, core.WinningLines[0], snap.WinningLine)
	assert.Equal(t, 5, snap.MoveCount)
	assert.Equal(t, "PlayerA wins", s.History()[len(s.History())-1])
	assert.Nil(t, s.LegalMoves())

	ended := rec.OfType(events.TypeGameEnded)
	require.Len(t, ended, 1)
	gameEnded := ended[0].(*events.GameEndedEvent)
	assert.Equal(t, core.WonBy(core.PlayerA), gameEnded.Outcome)
	assert.Equal(t, 5, gameEnded.Moves)

	sb := s.Scoreboard()
	assert.Equal(t, 1, sb.Wins[core.PlayerA])
	assert.Equal(t, 1, sb.Played())

	err := s.PlayMove(context.Background(), core.Small, 2, 2)
	assert.ErrorIs(t, err, core.ErrGameOver)
	assert.Equal(t, 5, s.Snapshot().MoveCount)
}

func TestPlayMove_WinByCovering(t *testing.T) {
	s, _ := newTestSession(t, nil)

	play(t, s,
		placement{core.Small, 2, 2}, placement{core.Small, 0, 0},
		placement{core.Small, 1, 1}, placement{core.Medium, 2, 1},
		placement{core.Large, 0, 0})

	snap := s.Snapshot()
	assert.Equal(t, core.WonBy(core.PlayerA), snap.Outcome)
	assert.Equal(t, core.Line{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, snap.WinningLine)
	assert.Equal(t, "PlayerA placed L at (0,0) covering BS", s.History()[4])
}

func TestPlayMove_DrawWhenNeitherSideCanMove(t *testing.T) {
	s, rec := newTestSession(t, func(cfg *SessionConfig) { cfg.InitialSupply = core.NewSupply(0, 0, 1) })

	play(t, s, placement{core.Large, 0, 0}, placement{core.Large, 1, 1})

	snap := s.Snapshot()
	assert.Equal(t, core.DrawOutcome(), snap.Outcome)
	assert.Equal(t, states.PhaseEnded, snap.Phase)
	assert.Equal(t, "Draw: neither side can move", s.History()[len(s.History())-1])
	assert.Equal(t, 1, s.Scoreboard().Draws)
	assert.Len(t, rec.OfType(events.TypeGameEnded), 1)
	assert.Empty(t, rec.OfType(events.TypeTurnPassed))
}

func TestPlayMove_StuckSidePasses(t *testing.T) {
	s, rec := newTestSession(t, func(cfg *SessionConfig) { cfg.InitialSupply = core.NewSupply(5, 0, 1) })

	play(t, s, fullBoardMoves...)

	snap := s.Snapshot()
	assert.False(t, snap.Outcome.IsOver())
	assert.Equal(t, core.PlayerA, snap.Turn, "PlayerB cannot place and passes back")
	assert.Equal(t, "PlayerB has no legal move and passes", s.History()[len(s.History())-1])

	passed := rec.OfType(events.TypeTurnPassed)
	require.Len(t, passed, 1)
	assert.Equal(t, core.PlayerB, passed[0].(*events.TurnPassedEvent).Color)

	assert.Equal(t, []core.Move{
		core.NewMove(core.Large, 0, 0),
		core.NewMove(core.Large, 0, 1),
		core.NewMove(core.Large, 0, 2),
		core.NewMove(core.Large, 1, 0),
		core.NewMove(core.Large, 1, 2),
		core.NewMove(core.Large, 2, 0),
		core.NewMove(core.Large, 2, 1),
		core.NewMove(core.Large, 2, 2),
	}, s.LegalMoves())
}

func TestPlayMove_PassThenWin(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *SessionConfig) { cfg.InitialSupply = core.NewSupply(5, 0, 1) })
	play(t, s, fullBoardMoves...)

	play(t, s, placement{core.Large, 0, 1})

	snap := s.Snapshot()
	assert.Equal(t, core.WonBy(core.PlayerA), snap.Outcome)
	assert.Equal(t, core.WinningLines[0], snap.WinningLine)
}

func TestPlayMove_PassThenDraw(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *SessionConfig) { cfg.InitialSupply = core.NewSupply(5, 0, 1) })
	play(t, s, fullBoardMoves...)

	// covering its own piece changes no line
	play(t, s, placement{core.Large, 0, 0})

	snap := s.Snapshot()
	assert.Equal(t, core.DrawOutcome(), snap.Outcome)
	assert.Equal(t, 10, snap.MoveCount)
}

func TestPlayMove_CancelledContext(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.PlayMove(ctx, core.Large, 1, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Snapshot().MoveCount)
}

func TestPvE_HumanCannotMoveForComputer(t *testing.T) {
	s, rec := newTestSession(t, func(cfg *SessionConfig) { cfg.Mode = ModePvE })

	assert.False(t, s.IsComputerTurn())
	play(t, s, placement{core.Large, 1, 1})
	assert.True(t, s.IsComputerTurn())

	err := s.PlayMove(context.Background(), core.Small, 0, 0)
	assert.ErrorIs(t, err, core.ErrNotYourTurn)

	rejected := rec.OfType(events.TypeMoveRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, core.PlayerB, rejected[0].(*events.MoveRejectedEvent).Color)
	assert.Equal(t, 1, s.Snapshot().MoveCount)
}

func TestPlayOpponentTurn_PvE(t *testing.T) {
	s, rec := newTestSession(t, func(cfg *SessionConfig) { cfg.Mode = ModePvE })

	_, _, err := s.PlayOpponentTurn(context.Background())
	assert.ErrorIs(t, err, core.ErrNotYourTurn, "human moves first")

	play(t, s, placement{core.Small, 0, 0})

	move, played, err := s.PlayOpponentTurn(context.Background())
	require.NoError(t, err)
	require.True(t, played)

	snap := s.Snapshot()
	assert.Equal(t, core.PlayerA, snap.Turn)
	assert.Equal(t, 2, snap.MoveCount)
	top, ok := snap.Board.TopOf(move.Row, move.Col)
	require.True(t, ok)
	assert.Equal(t, core.PlayerB, top.Color)
	assert.Equal(t, move.Size, top.Size)

	moves := rec.OfType(events.TypeMovePlayed)
	require.Len(t, moves, 2)
	assert.False(t, moves[0].(*events.MovePlayedEvent).Automated)
	assert.True(t, moves[1].(*events.MovePlayedEvent).Automated)
}

func TestPlayOpponentTurn_DisabledInPvP(t *testing.T) {
	s, _ := newTestSession(t, nil)

	_, played, err := s.PlayOpponentTurn(context.Background())
	assert.ErrorIs(t, err, core.ErrOpponentDisabled)
	assert.False(t, played)
	assert.False(t, s.IsComputerTurn())
}

func TestPlayOpponentTurn_ComputerVsComputer(t *testing.T) {
	s, rec := newTestSession(t, func(cfg *SessionConfig) {
		cfg.Mode = ModeCvC
		cfg.Difficulty = ai.Easy
	})

	err := s.PlayMove(context.Background(), core.Large, 1, 1)
	assert.ErrorIs(t, err, core.ErrNotYourTurn)

	for i := 0; i < 30 && !s.Snapshot().Outcome.IsOver(); i++ {
		_, _, err := s.PlayOpponentTurn(context.Background())
		require.NoError(t, err)
	}

	snap := s.Snapshot()
	require.True(t, snap.Outcome.IsOver())
	assert.Equal(t, states.PhaseEnded, snap.Phase)
	for _, e := range rec.OfType(events.TypeMovePlayed) {
		assert.True(t, e.(*events.MovePlayedEvent).Automated)
	}

	_, _, err = s.PlayOpponentTurn(context.Background())
	assert.ErrorIs(t, err, core.ErrGameOver)
}

func TestPlayOpponentTurn_DelayHonoursContext(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *SessionConfig) {
		cfg.Mode = ModePvE
		cfg.FirstPlayer = core.PlayerB
		cfg.MoveDelay = time.Hour
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, played, err := s.PlayOpponentTurn(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, played)
	assert.Equal(t, 0, s.Snapshot().MoveCount)
}

func TestPlayOpponentTurn_RestartDuringDelay(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *SessionConfig) {
		cfg.Mode = ModePvE
		cfg.FirstPlayer = core.PlayerB
		cfg.MoveDelay = 300 * time.Millisecond
	})

	errCh := make(chan error, 1)
	go func() {
		_, _, err := s.PlayOpponentTurn(context.Background())
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Restart(context.Background()))

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, core.ErrGameOver)
	case <-time.After(5 * time.Second):
		t.Fatal("opponent turn did not return")
	}
	assert.Equal(t, 0, s.Snapshot().MoveCount)
	assert.True(t, s.IsComputerTurn())
}

func TestRestart(t *testing.T) {
	s, rec := newTestSession(t, nil)
	play(t, s, placement{core.Large, 1, 1}, placement{core.Small, 0, 0})
	rec.Reset()

	require.NoError(t, s.Restart(context.Background()))

	snap := s.Snapshot()
	assert.True(t, snap.Board.Equal(core.EmptyBoard()))
	assert.Equal(t, core.NewSupplies(core.DefaultSupply()), snap.Supplies)
	assert.Equal(t, core.PlayerA, snap.Turn)
	assert.Equal(t, 0, snap.MoveCount)
	assert.Equal(t, states.PhaseRunning, snap.Phase)
	assert.Empty(t, s.History())
	assert.Equal(t, 1, s.Scoreboard().Abandoned)

	assert.Equal(t, []string{
		events.TypeStateTransition,
		events.TypeStateTransition,
		events.TypeStateTransition,
		events.TypeSessionStarted,
	}, rec.Types())
}

func TestRestart_AfterGameKeepsScore(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *SessionConfig) { cfg.InitialSupply = core.NewSupply(0, 0, 1) })
	play(t, s, placement{core.Large, 0, 0}, placement{core.Large, 1, 1})
	require.True(t, s.Snapshot().Outcome.IsOver())

	require.NoError(t, s.Restart(context.Background()))
	require.NoError(t, s.Restart(context.Background()))

	sb := s.Scoreboard()
	assert.Equal(t, 1, sb.Draws)
	assert.Equal(t, 0, sb.Abandoned, "restarting a finished or untouched game abandons nothing")
	assert.False(t, s.Snapshot().Outcome.IsOver())
	play(t, s, placement{core.Large, 2, 2})
}

func TestSetDifficulty(t *testing.T) {
	s, rec := newTestSession(t, nil)

	require.NoError(t, s.SetDifficulty(ai.Hard))
	assert.Equal(t, ai.Hard, s.Snapshot().Difficulty)

	changed := rec.OfType(events.TypeDifficultyChanged)
	require.Len(t, changed, 1)
	e := changed[0].(*events.DifficultyChangedEvent)
	assert.Equal(t, "medium", e.From)
	assert.Equal(t, "hard", e.To)

	require.NoError(t, s.SetDifficulty(ai.Hard))
	assert.Len(t, rec.OfType(events.TypeDifficultyChanged), 1, "unchanged difficulty publishes nothing")

	assert.Error(t, s.SetDifficulty(ai.Difficulty(9)))
	assert.Equal(t, ai.Hard, s.Snapshot().Difficulty)
}

func TestEventHandlerCanReadSession(t *testing.T) {
	s, _ := newTestSession(t, nil)

	var seen []int
	s.EventBus().SubscribeFunc(events.TypeMovePlayed, func(events.Event) {
		seen = append(seen, s.Snapshot().MoveCount)
	})

	errCh := make(chan error, 1)
	go func() {
		if err := s.PlayMove(context.Background(), core.Large, 1, 1); err != nil {
			errCh <- err
			return
		}
		errCh <- s.PlayMove(context.Background(), core.Small, 0, 0)
	}()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("handler deadlocked the session")
	}
	assert.Equal(t, []int{1, 2}, seen)
}

func TestScoreboard(t *testing.T) {
	var sb Scoreboard
	sb.Record(core.WonBy(core.PlayerA))
	sb.Record(core.WonBy(core.PlayerB))
	sb.Record(core.WonBy(core.PlayerA))
	sb.Record(core.DrawOutcome())
	sb.Record(core.NoOutcome())

	assert.Equal(t, 4, sb.Played())
	assert.Equal(t, "PlayerA 2 - 1 PlayerB (draws 1)", sb.String())
}
