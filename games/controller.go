package games

import (
	"errors"
)

var (
	ErrGameFinished  = errors.New("game is not active")
	ErrInvalidColumn = errors.New("invalid column")
	ErrColumnFull    = errors.New("column is full")
)

// Game drives one local two-player session: the board, whose turn it is, and
// the tally of games finished since the session began.
type Game struct {
	board        Board
	currentTurn  Cell
	status       GameStatus
	winner       Cell
	winningCells []Position
	lastMove     *Position
	tally        Tally

	observers []func(State)
}

// NewGame creates a game with an empty board and a zero tally. Red starts.
func NewGame() *Game {
	return &Game{
		currentTurn: RedToken,
		status:      StatusActive,
	}
}

// Observe registers fn to receive a snapshot after every accepted move and
// every reset.
func (g *Game) Observe(fn func(State)) {
	g.observers = append(g.observers, fn)
}

// MakeMove drops the current player's disc into column. A move that cannot be
// played returns an error and leaves the game exactly as it was.
func (g *Game) MakeMove(column int) error {
	if g.status != StatusActive {
		return ErrGameFinished
	}
	if column < 0 || column >= BoardWidth {
		return ErrInvalidColumn
	}

	if g.board.ColumnFull(column) {
		return ErrColumnFull
	}

	row, _ := g.board.Drop(column, g.currentTurn)
	g.lastMove = &Position{Row: row, Col: column}

	if line := g.board.WinningLine(row, column); line != nil {
		g.winningCells = line
		g.finish(g.currentTurn)
	} else if g.board.TopRowFull() {
		g.finish(EmptyCell)
	} else {
		g.switchTurn()
	}

	g.notify()
	return nil
}

// Reset starts a new game: fresh board, red to play. The tally is kept.
func (g *Game) Reset() {
	g.board = Board{}
	g.currentTurn = RedToken
	g.status = StatusActive
	g.winner = EmptyCell
	g.winningCells = nil
	g.lastMove = nil

	g.notify()
}

// State returns a snapshot of the game.
func (g *Game) State() State {
	s := State{
		Board:       g.board,
		CurrentTurn: g.currentTurn,
		Status:      g.status,
		Winner:      g.winner,
		Tally:       g.tally,
	}
	if g.winningCells != nil {
		s.WinningCells = append([]Position(nil), g.winningCells...)
	}
	if g.lastMove != nil {
		last := *g.lastMove
		s.LastMove = &last
	}
	return s
}

// Tally returns the session's finished-game counters.
func (g *Game) Tally() Tally {
	return g.tally
}

func (g *Game) finish(winner Cell) {
	g.status = StatusFinished
	g.winner = winner

	switch winner {
	case RedToken:
		g.tally.P1++
	case YellowToken:
		g.tally.P2++
	default:
		g.tally.Draw++
	}
}

func (g *Game) switchTurn() {
	if g.currentTurn == RedToken {
		g.currentTurn = YellowToken
	} else {
		g.currentTurn = RedToken
	}
}

func (g *Game) notify() {
	if len(g.observers) == 0 {
		return
	}
	s := g.State()
	for _, fn := range g.observers {
		fn(s)
	}
}
