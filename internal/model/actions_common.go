package model

// adjustAction slides one of the player's pawns a single file sideways.
type adjustAction struct{ actionBase }

func (a *adjustAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpMove || checkBounds(in.Move.Start, in.Move.End) != nil {
		return false
	}
	m := in.Move
	p := a.ownPiece(m.Start)
	if p == nil || p.rank != Pawn || m.rowDiff() != 0 || abs(m.colDiff()) != 1 {
		return false
	}
	if !placeable(a.board(), m.End) {
		return false
	}
	return a.safeAfter(func(b *Board) { b.RelocatePiece(m.Start, m.End) })
}

func (a *adjustAction) Execute(in FollowUp) {
	a.board().RelocatePiece(in.Move.Start, in.Move.End)
	a.touch(in.Move.Start, in.Move.End)
}

// rewindAction sends the opponent's last moved piece back where it came from.
type rewindAction struct{ actionBase }

// lastOpponentMove finds the most recent move made by the other side.
func (a *rewindAction) lastOpponentMove() (Move, bool) {
	plies := a.game.plies
	for i := len(plies) - 1; i >= 0; i-- {
		if plies[i].Color != a.color {
			return plies[i].Move, true
		}
	}
	return Move{}, false
}

func (a *rewindAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpNone {
		return false
	}
	m, ok := a.lastOpponentMove()
	if !ok || a.enemyPiece(m.End) == nil || !placeable(a.board(), m.Start) {
		return false
	}
	return a.safeAfter(func(b *Board) { b.RelocatePiece(m.End, m.Start) })
}

func (a *rewindAction) Execute(FollowUp) {
	m, _ := a.lastOpponentMove()
	a.board().RelocatePiece(m.End, m.Start)
	a.touch(m.End, m.Start)
}

// secondEffortAction gives the capturing piece one more ordinary move.
type secondEffortAction struct{ actionBase }

func (a *secondEffortAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpMove || checkBounds(in.Move.Start, in.Move.End) != nil {
		return false
	}
	m := in.Move
	if m.Start != a.captured {
		return false
	}
	p := a.ownPiece(m.Start)
	if p == nil {
		return false
	}
	b := a.board()
	effect, ok := p.validate(m, b)
	if !ok || effect.enPassant != nil || effect.marker != nil || b.PowerObjectAt(m.End) != nil {
		return false
	}
	if target := b.pieceAt(m.End); target != nil && (target.rank == King || b.IsInvulnerable(m.End)) {
		return false
	}
	if p.rank == King && b.HasBlackHole(m.End) {
		return false
	}
	return a.safeAfter(func(sim *Board) {
		sim.RelocatePiece(m.Start, m.End)
		if sim.HasBlackHole(m.End) {
			sim.RemovePiece(m.End)
		}
	})
}

func (a *secondEffortAction) Execute(in FollowUp) {
	m := in.Move
	b := a.board()
	mover := b.pieceAt(m.Start)
	captured, _ := b.RelocatePiece(m.Start, m.End)
	if captured != nil {
		a.game.recordLoss(captured)
	}
	if b.HasBlackHole(m.End) {
		b.RemovePiece(m.End)
		a.game.recordLoss(mover)
	}
	a.touch(m.Start, m.End)
}

// shieldAction makes one of the player's pieces invulnerable for a while.
type shieldAction struct{ actionBase }

func (a *shieldAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpLocation {
		return false
	}
	return a.ownPiece(in.Location) != nil && !a.board().IsInvulnerable(in.Location)
}

func (a *shieldAction) Execute(in FollowUp) {
	a.game.addPowerUp(PowerUpInvulnerability, in.Location, a.game.settings.ShieldTurns)
	a.touch(in.Location)
}

// swapAction exchanges two of the player's own pieces.
type swapAction struct{ actionBase }

func (a *swapAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpMove || checkBounds(in.Move.Start, in.Move.End) != nil {
		return false
	}
	m := in.Move
	x, y := a.ownPiece(m.Start), a.ownPiece(m.End)
	if x == nil || y == nil || m.Start == m.End {
		return false
	}
	if (x.rank == Pawn && backRow(m.End)) || (y.rank == Pawn && backRow(m.Start)) {
		return false
	}
	return a.safeAfter(func(b *Board) { b.swapPieces(m.Start, m.End) })
}

func (a *swapAction) Execute(in FollowUp) {
	a.board().swapPieces(in.Move.Start, in.Move.End)
	a.touch(in.Move.Start, in.Move.End)
}

func backRow(loc Location) bool {
	return loc.Row == White.HomeRow() || loc.Row == Black.HomeRow()
}
