package games

const (
	BoardWidth  = 7
	BoardHeight = 6

	// WinLength is how many discs in a row end the game.
	WinLength = 4

	// Player tokens
	EmptyCell   Cell = 0
	RedToken    Cell = 1
	YellowToken Cell = 2

	StatusActive   GameStatus = "active"
	StatusFinished GameStatus = "finished"
)
