package model

import (
	"fmt"
	"strings"
)

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// backRank is the piece order on rows 0 and 7, files a through h.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Piece is a single chessman. Position mirrors the board cell holding the
// piece and is rewritten whenever the piece is relocated.
type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	Position Position    `json:"position"`
	HasMoved bool        `json:"hasMoved"`
}

func (p Piece) String() string {
	notation := p.Type.getPieceNotation()
	if p.Type == Pawn {
		notation = "P"
	}
	if p.Color == PlayerColorBlack {
		notation = strings.ToLower(notation)
	}
	return notation + p.Position.String()
}

// Board is the 8x8 grid indexed [row][col]. Row 0 is rank 8.
type Board [8][8]*Piece

func newBoard() Board {
	var board Board
	for col, pieceType := range backRank {
		board.put(&Piece{Type: pieceType, Color: PlayerColorBlack}, Position{X: col, Y: 0})
		board.put(&Piece{Type: Pawn, Color: PlayerColorBlack}, Position{X: col, Y: 1})
		board.put(&Piece{Type: Pawn, Color: PlayerColorWhite}, Position{X: col, Y: 6})
		board.put(&Piece{Type: pieceType, Color: PlayerColorWhite}, Position{X: col, Y: 7})
	}
	return board
}

// At returns the piece on pos, or nil when the square is empty or off the board.
func (b *Board) At(pos Position) *Piece {
	if !boundaryCheck(pos) {
		return nil
	}
	return b[pos.Y][pos.X]
}

func (b *Board) put(piece *Piece, pos Position) {
	piece.Position = pos
	b[pos.Y][pos.X] = piece
}

// Clone returns a deep copy; no piece pointer is shared with b.
func (b *Board) Clone() Board {
	var out Board
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if piece := b[y][x]; piece != nil {
				cp := *piece
				out[y][x] = &cp
			}
		}
	}
	return out
}

// Pieces lists every piece of the given color in row-major order.
func (b *Board) Pieces(color PlayerColor) []*Piece {
	pieces := []*Piece{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if piece := b[y][x]; piece != nil && piece.Color == color {
				pieces = append(pieces, piece)
			}
		}
	}
	return pieces
}

func (b *Board) findKing(color PlayerColor) *Piece {
	for _, piece := range b.Pieces(color) {
		if piece.Type == King {
			return piece
		}
	}
	return nil
}

// applyMove builds the board that results from moving the piece on from to
// to. b itself is left untouched. A two-file king step also carries the
// castling rook across. The displaced occupant of to, if any, is returned.
func (b *Board) applyMove(from, to Position) (Board, *Piece) {
	next, captured := b.applyStep(from, to)
	piece := next.At(to)
	piece.HasMoved = true

	if piece.Type == King && abs(to.X-from.X) == 2 {
		rookFrom, rookTo := castleRookSquares(from, to)
		if rook := next.At(rookFrom); rook != nil {
			next[rookFrom.Y][rookFrom.X] = nil
			next.put(rook, rookTo)
			rook.HasMoved = true
		}
	}
	return next, captured
}

// snapshot serialises the board one cell at a time, used for the
// per-ply board history.
func (b *Board) snapshot() string {
	rows := make([]string, 0, 8)
	for y := 0; y < 8; y++ {
		cells := make([]string, 0, 8)
		for x := 0; x < 8; x++ {
			piece := b[y][x]
			if piece == nil {
				cells = append(cells, "null")
				continue
			}
			cells = append(cells, fmt.Sprintf("%s-%s-%s", piece.Type, piece.Color, piece.Position))
		}
		rows = append(rows, strings.Join(cells, "|"))
	}
	return strings.Join(rows, "\n")
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		fmt.Fprintf(&sb, "%d ", 8-y)
		for x := 0; x < 8; x++ {
			piece := b[y][x]
			if piece == nil {
				sb.WriteString(". ")
				continue
			}
			sb.WriteString(piece.String()[:1] + " ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
