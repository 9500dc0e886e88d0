package model

// isInCheck reports whether any opposing piece has color's king square among
// its candidate moves. Only the unfiltered generators are consulted, since
// legality filtering itself calls isInCheck. A board without that king is
// never in check.
func (b *Board) isInCheck(color PlayerColor) bool {
	king := b.findKing(color)
	if king == nil {
		return false
	}
	return b.isSquareAttacked(color.Opponent(), king.Position)
}

func (b *Board) isSquareAttacked(attackingColor PlayerColor, position Position) bool {
	for _, piece := range b.Pieces(attackingColor) {
		if containsPosition(b.pseudoMoves(piece, castlingOff), position) {
			return true
		}
	}
	return false
}
