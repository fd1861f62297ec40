package model

// canMoveKing accepts a single step in any of the eight directions. Castling
// is handled by Game on top of this.
func (p *Piece) canMoveKing(m Move, b *Board) bool {
	if abs(m.rowDiff()) > 1 || abs(m.colDiff()) > 1 {
		return false
	}
	return p.validEnd(m.End, b)
}
