package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceSize_Ordering(t *testing.T) {
	assert.True(t, Large.Covers(Medium))
	assert.True(t, Large.Covers(Small))
	assert.True(t, Medium.Covers(Small))
	assert.False(t, Medium.Covers(Medium))
	assert.False(t, Medium.Covers(Large))
	assert.False(t, Small.Covers(Small))
}

func TestAllSizes_LargestFirst(t *testing.T) {
	assert.Equal(t, []PieceSize{Large, Medium, Small}, AllSizes())
}

func TestParsePieceSize(t *testing.T) {
	tests := []struct {
		input    string
		expected PieceSize
		wantErr  bool
	}{
		{"S", Small, false},
		{"medium", Medium, false},
		{"l", Large, false},
		{"XL", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			size, err := ParsePieceSize(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPieceSize))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, size)
		})
	}
}

func TestColor_Opponent(t *testing.T) {
	assert.Equal(t, PlayerB, PlayerA.Opponent())
	assert.Equal(t, PlayerA, PlayerB.Opponent())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("B")
	require.NoError(t, err)
	assert.Equal(t, PlayerB, c)

	_, err = ParseColor("C")
	assert.True(t, errors.Is(err, ErrInvalidPlayer))
}

func TestNewPiece_DeterministicID(t *testing.T) {
	p := NewPiece(PlayerA, Large, 2)

	assert.Equal(t, "A-L-2", p.ID)
	assert.Equal(t, NewPiece(PlayerA, Large, 2), p)
	assert.NotEqual(t, NewPiece(PlayerB, Large, 2).ID, p.ID)
	assert.Equal(t, "AL", p.String())
}

func TestOutcome(t *testing.T) {
	assert.False(t, NoOutcome().IsOver())
	assert.True(t, WonBy(PlayerB).IsOver())
	assert.True(t, WonBy(PlayerB).IsWinFor(PlayerB))
	assert.False(t, WonBy(PlayerB).IsWinFor(PlayerA))
	assert.True(t, DrawOutcome().IsOver())
	assert.False(t, DrawOutcome().IsWinFor(PlayerA))
	assert.Equal(t, "Won(PlayerA)", WonBy(PlayerA).String())
	assert.Equal(t, "Draw", DrawOutcome().String())
}
