package model

import (
	"fmt"
)

// Position is a board coordinate: X is the column (file a..h), Y the row
// counted from black's back rank, so Y 0 is rank 8 and Y 7 is rank 1.
type Position struct {
	X int
	Y int
}

// AlgebraicToCoords maps a square such as "e4" to its zero-based row and
// column. The input must be a well formed square.
func AlgebraicToCoords(square string) (row, col int) {
	col = int(square[0] - 'a')
	row = 8 - int(square[1]-'0')
	return row, col
}

// CoordsToAlgebraic is the inverse of AlgebraicToCoords for in-range input.
func CoordsToAlgebraic(row, col int) string {
	return fmt.Sprintf("%c%d", col+'a', 8-row)
}

// ParsePosition validates square text before converting it.
func ParsePosition(square string) (Position, error) {
	if len(square) != 2 || square[0] < 'a' || square[0] > 'h' || square[1] < '1' || square[1] > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, square)
	}
	row, col := AlgebraicToCoords(square)
	return Position{X: col, Y: row}, nil
}

// MustPosition is ParsePosition for literals known to be valid.
func MustPosition(square string) Position {
	pos, err := ParsePosition(square)
	if err != nil {
		panic(err)
	}
	return pos
}

func (p Position) String() string {
	if !boundaryCheck(p) {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return CoordsToAlgebraic(p.Y, p.X)
}

// MarshalText renders the position as an algebraic square so JSON payloads
// carry "e4" rather than coordinate pairs.
func (p Position) MarshalText() ([]byte, error) {
	if !boundaryCheck(p) {
		return nil, fmt.Errorf("%w: %d,%d", ErrInvalidSquare, p.X, p.Y)
	}
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

func (p Position) offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func boundaryCheck(position Position) bool {
	return inBounds(position.Y, position.X)
}

func inBounds(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

func containsPosition(positions []Position, target Position) bool {
	for _, pos := range positions {
		if pos == target {
			return true
		}
	}
	return false
}
