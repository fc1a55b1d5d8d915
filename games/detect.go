package games

// axes are the four directions a line can run through a cell: horizontal,
// vertical and the two diagonals. Each is walked both ways.
var axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// WinningLine checks if the disc at row/col completes a line. It returns every
// cell on the first axis holding WinLength or more consecutive discs of that
// player, or nil when there is none.
//
// Only lines through the last disc need checking: any new line must contain it.
func (b *Board) WinningLine(row, col int) []Position {
	token := b.At(row, col)
	if token == EmptyCell {
		return nil
	}

	for _, axis := range axes {
		line := []Position{{Row: row, Col: col}}
		line = append(line, b.walk(row, col, axis[0], axis[1], token)...)
		line = append(line, b.walk(row, col, -axis[0], -axis[1], token)...)

		if len(line) >= WinLength {
			return line
		}
	}
	return nil
}

// walk collects up to WinLength-1 consecutive cells owned by token, starting
// next to row/col and moving by rowDelta/colDelta.
func (b *Board) walk(row, col, rowDelta, colDelta int, token Cell) []Position {
	var cells []Position
	for i := 1; i < WinLength; i++ {
		r, c := row+rowDelta*i, col+colDelta*i
		if !inBounds(r, c) || b[r][c] != token {
			break
		}
		cells = append(cells, Position{Row: r, Col: c})
	}
	return cells
}
