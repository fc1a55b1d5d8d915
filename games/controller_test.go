package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawMoves fills the whole board without anyone lining up four.
var drawMoves = []int{
	0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2, 2,
	4, 3, 3, 3, 3, 3, 3,
	4, 4, 4, 4, 4,
	5, 5, 5, 5, 5, 5,
	6, 6, 6, 6, 6, 6,
}

func play(t *testing.T, g *Game, moves ...int) {
	t.Helper()
	for _, col := range moves {
		require.NoError(t, g.MakeMove(col))
	}
}

func TestNewGame(t *testing.T) {
	g := NewGame()
	s := g.State()

	assert.Equal(t, StatusActive, s.Status)
	assert.Equal(t, RedToken, s.CurrentTurn)
	assert.Equal(t, Board{}, s.Board)
	assert.Equal(t, Tally{}, s.Tally)
	assert.Nil(t, s.LastMove)
}

func TestTurnsAlternate(t *testing.T) {
	g := NewGame()
	play(t, g, 3)
	assert.Equal(t, YellowToken, g.State().CurrentTurn)
	play(t, g, 3)
	assert.Equal(t, RedToken, g.State().CurrentTurn)

	s := g.State()
	assert.Equal(t, RedToken, s.Board[5][3])
	assert.Equal(t, YellowToken, s.Board[4][3])
	assert.Equal(t, &Position{Row: 4, Col: 3}, s.LastMove)
}

func TestWinEndsGameOnFourthDisc(t *testing.T) {
	tests := []struct {
		name   string
		moves  []int
		winner Cell
	}{
		{"horizontal red", []int{0, 0, 1, 1, 2, 2, 3}, RedToken},
		{"vertical yellow", []int{0, 1, 2, 1, 2, 1, 2, 1}, YellowToken},
		{"diagonal red", []int{6, 5, 5, 4, 4, 3, 4, 3, 3, 0, 3}, RedToken},
		{"anti-diagonal red", []int{0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3}, RedToken},
		{"anti-diagonal yellow", []int{5, 0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3}, YellowToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGame()
			last := len(tc.moves) - 1
			play(t, g, tc.moves[:last]...)
			require.Equal(t, StatusActive, g.State().Status, "game ended before the fourth disc")

			play(t, g, tc.moves[last])
			s := g.State()
			assert.Equal(t, StatusFinished, s.Status)
			assert.Equal(t, tc.winner, s.Winner)
			assert.Len(t, s.WinningCells, WinLength)
			for _, p := range s.WinningCells {
				assert.Equal(t, tc.winner, s.Board[p.Row][p.Col])
			}
		})
	}
}

func TestDraw(t *testing.T) {
	g := NewGame()
	last := len(drawMoves) - 1
	play(t, g, drawMoves[:last]...)
	require.Equal(t, StatusActive, g.State().Status)

	play(t, g, drawMoves[last])
	s := g.State()
	assert.True(t, s.Draw())
	assert.Empty(t, s.WinningCells)
	assert.Equal(t, Tally{Draw: 1}, s.Tally)
}

func TestMovesAfterFinishAreIgnored(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 0, 1, 1, 2, 2, 3)
	before := g.State()

	assert.ErrorIs(t, g.MakeMove(4), ErrGameFinished)
	assert.Equal(t, before, g.State())
	assert.Equal(t, Tally{P1: 1}, g.Tally())
}

func TestRejectedMoves(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 0, 0, 0, 0, 0)
	before := g.State()

	assert.ErrorIs(t, g.MakeMove(0), ErrColumnFull)
	assert.ErrorIs(t, g.MakeMove(-1), ErrInvalidColumn)
	assert.ErrorIs(t, g.MakeMove(BoardWidth), ErrInvalidColumn)
	assert.Equal(t, before, g.State())
}

func TestResetKeepsTally(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 0, 1, 1, 2, 2, 3)
	g.Reset()

	s := g.State()
	assert.Equal(t, StatusActive, s.Status)
	assert.Equal(t, RedToken, s.CurrentTurn)
	assert.Equal(t, Board{}, s.Board)
	assert.Equal(t, Tally{P1: 1}, s.Tally)

	// yellow wins the second game
	play(t, g, 0, 1, 0, 1, 0, 1, 6, 1)
	g.Reset()
	play(t, g, drawMoves...)
	g.Reset()

	assert.Equal(t, Tally{P1: 1, P2: 1, Draw: 1}, g.Tally())
	assert.Equal(t, 3, g.Tally().Games())
}

func TestObservers(t *testing.T) {
	g := NewGame()
	var seen []State
	g.Observe(func(s State) { seen = append(seen, s) })

	play(t, g, 3, 3)
	_ = g.MakeMove(-1)
	g.Reset()

	require.Len(t, seen, 3)
	assert.Equal(t, YellowToken, seen[0].CurrentTurn)
	assert.Equal(t, RedToken, seen[1].CurrentTurn)
	assert.Equal(t, Board{}, seen[2].Board)
}

func TestStateIsSnapshot(t *testing.T) {
	g := NewGame()
	play(t, g, 0, 0, 1, 1, 2, 2, 3)
	s := g.State()
	s.WinningCells[0] = Position{Row: 0, Col: 0}
	s.LastMove.Col = 6

	fresh := g.State()
	assert.NotEqual(t, s.WinningCells, fresh.WinningCells)
	assert.Equal(t, 3, fresh.LastMove.Col)
}
