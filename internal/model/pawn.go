package model

// validatePawn checks pawn geometry. Forward direction comes from the color.
// A double advance reports the skipped cell as an en-passant marker to arm,
// and a diagonal step onto the opposing marker reports the pawn to remove.
func (p *Piece) validatePawn(m Move, b *Board) (moveEffect, bool) {
	dir := p.color.forward()
	rowDiff, colDiff := m.rowDiff(), m.colDiff()

	if colDiff == 0 {
		switch rowDiff {
		case dir:
			return moveEffect{}, b.IsEmpty(m.End)
		case 2 * dir:
			if p.hasMoved {
				return moveEffect{}, false
			}
			skipped := m.Start.Offset(dir, 0)
			if !b.IsEmpty(skipped) || !b.IsEmpty(m.End) {
				return moveEffect{}, false
			}
			return moveEffect{marker: &skipped}, true
		}
		return moveEffect{}, false
	}

	if abs(colDiff) != 1 || rowDiff != dir {
		return moveEffect{}, false
	}
	if target := b.pieceAt(m.End); target != nil {
		return moveEffect{}, target.color != p.color
	}
	if marker := b.markerAt(m.End); marker != nil && marker.Color != p.color {
		victimLoc := marker.PawnLocation()
		victim := b.pieceAt(victimLoc)
		if victim == nil || victim.rank != Pawn || victim.color == p.color {
			return moveEffect{}, false
		}
		return moveEffect{enPassant: &victimLoc}, true
	}
	// Pawns may also step diagonally to pick up a power object.
	return moveEffect{}, b.PowerObjectAt(m.End) != nil
}
