package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// castlingMode selects how the king generator treats castling.
type castlingMode int

const (
	// castlingOff leaves castling out. Used for attack coverage: a castling
	// step always lands on an empty square, so it can never attack a king.
	castlingOff castlingMode = iota
	castlingRelaxed
	castlingStrict
)

// pseudoMoves returns the candidate destinations for piece without
// considering whether its own king is left in check.
func (b *Board) pseudoMoves(piece *Piece, castling castlingMode) []Position {
	switch piece.Type {
	case Pawn:
		return b.getPsuedoPawnMoves(piece)
	case Knight:
		return b.getPsuedoKnightMoves(piece)
	case Bishop:
		return b.getPsuedoBishopMoves(piece)
	case Rook:
		return b.getPsuedoRookMoves(piece)
	case Queen:
		return b.getPsuedoQueenMoves(piece)
	case King:
		return b.getPsuedoKingMoves(piece, castling)
	default:
		return []Position{}
	}
}

func (b *Board) getPsuedoPawnMoves(piece *Piece) []Position {
	pawnMoves := []Position{}
	dir := piece.Color.pawnDirection()

	// forward 1, then forward 2 from an unmoved pawn if both squares are free
	forward := piece.Position.offset(0, dir)
	if boundaryCheck(forward) && b.At(forward) == nil {
		pawnMoves = append(pawnMoves, forward)
		double := piece.Position.offset(0, 2*dir)
		if !piece.HasMoved && boundaryCheck(double) && b.At(double) == nil {
			pawnMoves = append(pawnMoves, double)
		}
	}
	for _, dx := range []int{-1, 1} {
		target := piece.Position.offset(dx, dir)
		if occupant := b.At(target); occupant != nil && occupant.Color != piece.Color {
			pawnMoves = append(pawnMoves, target)
		}
	}
	return pawnMoves
}

func (b *Board) getPsuedoKnightMoves(piece *Piece) []Position {
	return b.stepMoves(piece, knightDirs)
}

func (b *Board) getPsuedoBishopMoves(piece *Piece) []Position {
	return b.rayMoves(piece, bishopDirs)
}

func (b *Board) getPsuedoRookMoves(piece *Piece) []Position {
	return b.rayMoves(piece, rookDirs)
}

func (b *Board) getPsuedoQueenMoves(piece *Piece) []Position {
	return append(b.getPsuedoRookMoves(piece), b.getPsuedoBishopMoves(piece)...)
}

func (b *Board) getPsuedoKingMoves(piece *Piece, castling castlingMode) []Position {
	kingMoves := b.stepMoves(piece, kingDirs)
	if castling == castlingOff || piece.HasMoved {
		return kingMoves
	}
	strict := castling == castlingStrict
	if b.canCastle(piece.Color, Kingside, strict) {
		kingMoves = append(kingMoves, piece.Position.offset(2, 0))
	}
	if b.canCastle(piece.Color, Queenside, strict) {
		kingMoves = append(kingMoves, piece.Position.offset(-2, 0))
	}
	return kingMoves
}

// rayMoves walks each direction until the edge, stopping before a friendly
// piece and on an enemy one.
func (b *Board) rayMoves(piece *Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		targetPos := piece.Position.offset(dir.X, dir.Y)
		for boundaryCheck(targetPos) {
			occupant := b.At(targetPos)
			if occupant == nil {
				moves = append(moves, targetPos)
			} else if occupant.Color != piece.Color {
				moves = append(moves, targetPos)
				break
			} else {
				break
			}
			targetPos = targetPos.offset(dir.X, dir.Y)
		}
	}
	return moves
}

func (b *Board) stepMoves(piece *Piece, offsets []Position) []Position {
	moves := []Position{}
	for _, dir := range offsets {
		targetPos := piece.Position.offset(dir.X, dir.Y)
		if !boundaryCheck(targetPos) {
			continue
		}
		if occupant := b.At(targetPos); occupant == nil || occupant.Color != piece.Color {
			moves = append(moves, targetPos)
		}
	}
	return moves
}

// canCastle reports whether color's king may castle towards side: king and
// rook unmoved on their home squares with every square between them empty.
//
// Without strict, attacked squares are not considered, so the king may castle
// out of or through check. strict additionally rejects both.
// The landing square is covered by the ordinary legality filter either way.
func (b *Board) canCastle(color PlayerColor, side CastleSide, strict bool) bool {
	row := color.homeRow()
	king := b.findKing(color)
	if king == nil || king.HasMoved || king.Position != (Position{X: 4, Y: row}) {
		return false
	}
	rookCol, dir := 7, 1
	if side == Queenside {
		rookCol, dir = 0, -1
	}
	rook := b.At(Position{X: rookCol, Y: row})
	if rook == nil || rook.Type != Rook || rook.Color != color || rook.HasMoved {
		return false
	}
	for col := king.Position.X + dir; col != rookCol; col += dir {
		if b.At(Position{X: col, Y: row}) != nil {
			return false
		}
	}
	if strict {
		if b.isInCheck(color) {
			return false
		}
		transit, _ := b.applyStep(king.Position, king.Position.offset(dir, 0))
		if transit.isInCheck(color) {
			return false
		}
	}
	return true
}

// applyStep moves a piece one square on a copy without any castling side
// effects.
func (b *Board) applyStep(from, to Position) (Board, *Piece) {
	next := b.Clone()
	piece := next.At(from)
	captured := next.At(to)
	next[from.Y][from.X] = nil
	next.put(piece, to)
	return next, captured
}
