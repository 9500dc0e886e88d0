package model

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

// homeRow is the row holding the color's king and rooks at the start.
func (c PlayerColor) homeRow() int {
	if c == PlayerColorWhite {
		return 7
	}
	return 0
}

// pawnDirection is the row delta of a forward pawn step.
func (c PlayerColor) pawnDirection() int {
	if c == PlayerColorWhite {
		return -1
	}
	return 1
}
