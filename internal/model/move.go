package model

// SimpleMove is one ply as submitted: origin and destination squares.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m SimpleMove) String() string {
	return m.From.String() + m.To.String()
}

type CastleSide string

const (
	Kingside  CastleSide = "kingside"
	Queenside CastleSide = "queenside"
)

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// record files a captured piece under the color that took it.
func (c *CapturedPieces) record(by PlayerColor, piece Piece) {
	switch by {
	case PlayerColorWhite:
		c.White = append(c.White, piece)
	case PlayerColorBlack:
		c.Black = append(c.Black, piece)
	}
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]Piece, 0, len(c.White)), c.White...),
		Black: append(make([]Piece, 0, len(c.Black)), c.Black...),
	}
}

// castleRookSquares gives the rook's origin and destination for a king
// moving two files from from to to.
func castleRookSquares(from, to Position) (Position, Position) {
	if to.X > from.X {
		return Position{X: 7, Y: from.Y}, Position{X: to.X - 1, Y: from.Y}
	}
	return Position{X: 0, Y: from.Y}, Position{X: to.X + 1, Y: from.Y}
}
