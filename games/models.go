package games

type GameStatus string

// Tally counts finished games for one session. It is only ever incremented;
// starting a new game keeps it.
type Tally struct {
	P1   int `json:"p1"`
	P2   int `json:"p2"`
	Draw int `json:"draw"`
}

// Games returns how many games the tally covers.
func (t Tally) Games() int {
	return t.P1 + t.P2 + t.Draw
}

// Summary aggregates every saved tally in the score store.
type Summary struct {
	P1Total    int64 `json:"p1_total" bun:"p1_total"`
	P2Total    int64 `json:"p2_total" bun:"p2_total"`
	DrawsTotal int64 `json:"draws_total" bun:"draws_total"`
	Games      int64 `json:"games" bun:"games"`
}

// Add folds one saved tally into the summary.
func (s *Summary) Add(t Tally) {
	s.P1Total += int64(t.P1)
	s.P2Total += int64(t.P2)
	s.DrawsTotal += int64(t.Draw)
	s.Games++
}

// Move is a column choice sent by the page.
type Move struct {
	Column int `json:"column"`
}

// State is a snapshot of a game, safe to hand to other goroutines.
type State struct {
	Board        Board      `json:"board"`
	CurrentTurn  Cell       `json:"currentTurn"`
	Status       GameStatus `json:"status"`
	Winner       Cell       `json:"winner"`
	WinningCells []Position `json:"winningCells,omitempty"`
	LastMove     *Position  `json:"lastMove,omitempty"`
	Tally        Tally      `json:"tally"`
}

// Draw reports whether the game ended with nobody winning.
func (s State) Draw() bool {
	return s.Status == StatusFinished && s.Winner == EmptyCell
}
