package games

// Cell holds the token occupying one slot of the grid.
type Cell int

// Board is the 6x7 grid. Row 0 is the top row, so discs fall towards
// BoardHeight-1.
type Board [BoardHeight][BoardWidth]Cell

// Position identifies a single cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func inBounds(row, col int) bool {
	return row >= 0 && row < BoardHeight && col >= 0 && col < BoardWidth
}

// At returns the token at row/col, or EmptyCell when out of range.
func (b *Board) At(row, col int) Cell {
	if !inBounds(row, col) {
		return EmptyCell
	}
	return b[row][col]
}

// Drop places token in the lowest empty row of column. It reports the row it
// landed in; ok is false when the column is out of range or already full, in
// which case the board is left untouched.
func (b *Board) Drop(column int, token Cell) (row int, ok bool) {
	if column < 0 || column >= BoardWidth {
		return -1, false
	}

	// Find the bottom-most empty cell in the column
	for r := BoardHeight - 1; r >= 0; r-- {
		if b[r][column] == EmptyCell {
			b[r][column] = token
			return r, true
		}
	}
	return -1, false
}

// ColumnFull reports whether no more discs fit in column.
func (b *Board) ColumnFull(column int) bool {
	return b.At(0, column) != EmptyCell
}

// TopRowFull checks if every cell of the top row is taken. Because discs
// stack from the bottom, this means the whole board is full.
func (b *Board) TopRowFull() bool {
	for col := 0; col < BoardWidth; col++ {
		if b[0][col] == EmptyCell {
			return false
		}
	}
	return true
}
