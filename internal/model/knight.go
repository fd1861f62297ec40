package model

func (p *Piece) canMoveKnight(m Move, b *Board) bool {
	dr, dc := abs(m.rowDiff()), abs(m.colDiff())
	if !(dr == 1 && dc == 2) && !(dr == 2 && dc == 1) {
		return false
	}
	return p.validEnd(m.End, b)
}
