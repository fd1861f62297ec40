package model

// blackHoleAction drops a black hole on an untouched cell. Any non-king piece
// that ends a move there is consumed.
type blackHoleAction struct{ actionBase }

func (a *blackHoleAction) ValidInput(in FollowUp) bool {
	return in.Kind == FollowUpLocation && a.board().vacant(in.Location)
}

func (a *blackHoleAction) Execute(in FollowUp) {
	a.game.addPowerUp(PowerUpBlackHole, in.Location, a.game.settings.BlackHoleTurns)
	a.touch(in.Location)
}

// energizeAction advances every pawn of the player that safely can one cell.
type energizeAction struct{ actionBase }

// plan walks the pawns front to back on a copy of the board and returns the
// advances that keep the king safe. Stepping onto the last row is excluded.
func (a *energizeAction) plan() []Move {
	sim := a.board().Clone()
	locs := sim.PieceLocations(a.color)
	if a.color == White {
		for i, j := 0, len(locs)-1; i < j; i, j = i+1, j-1 {
			locs[i], locs[j] = locs[j], locs[i]
		}
	}
	var moves []Move
	for _, loc := range locs {
		p := sim.pieceAt(loc)
		if p.rank != Pawn {
			continue
		}
		next := loc.Offset(a.color.forward(), 0)
		if !next.InBounds() || next.Row == a.color.FarRow() || !placeable(sim, next) {
			continue
		}
		sim.RelocatePiece(loc, next)
		if inCheck(sim, a.color) {
			sim.RelocatePiece(next, loc)
			continue
		}
		moves = append(moves, Move{Start: loc, End: next})
	}
	return moves
}

func (a *energizeAction) ValidInput(in FollowUp) bool {
	return in.Kind == FollowUpNone && len(a.plan()) > 0
}

func (a *energizeAction) Execute(FollowUp) {
	b := a.board()
	for _, m := range a.plan() {
		b.RelocatePiece(m.Start, m.End)
		b.pieceAt(m.End).hasMoved = true
		a.touch(m.Start, m.End)
	}
}

// eyeForAnEyeAction removes an enemy piece of the same rank as the player's
// most recently lost piece.
type eyeForAnEyeAction struct{ actionBase }

func (a *eyeForAnEyeAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpLocation {
		return false
	}
	lost := a.game.lost[a.color]
	if len(lost) == 0 {
		return false
	}
	want := lost[len(lost)-1].rank
	target := a.enemyPiece(in.Location)
	if target == nil || target.rank != want || target.rank == King || a.board().IsInvulnerable(in.Location) {
		return false
	}
	return a.safeAfter(func(b *Board) { b.RemovePiece(in.Location) })
}

func (a *eyeForAnEyeAction) Execute(in FollowUp) {
	p, _ := a.board().RemovePiece(in.Location)
	a.game.recordLoss(p)
	a.touch(in.Location)
}

// safetyNetAction shields every piece standing next to the player's king.
type safetyNetAction struct{ actionBase }

func (a *safetyNetAction) guards() []Location {
	b := a.board()
	king, ok := b.KingLocation(a.color)
	if !ok {
		return nil
	}
	var out []Location
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			loc := king.Offset(dr, dc)
			if loc == king || a.ownPiece(loc) == nil || b.IsInvulnerable(loc) {
				continue
			}
			out = append(out, loc)
		}
	}
	return out
}

func (a *safetyNetAction) ValidInput(in FollowUp) bool {
	return in.Kind == FollowUpNone && len(a.guards()) > 0
}

func (a *safetyNetAction) Execute(FollowUp) {
	for _, loc := range a.guards() {
		a.game.addPowerUp(PowerUpInvulnerability, loc, a.game.settings.ShieldTurns)
		a.touch(loc)
	}
}

// sendAwayAction teleports an enemy piece to a random free cell on its own
// home row.
type sendAwayAction struct {
	actionBase
	sentTo *Location
}

func (a *sendAwayAction) destinations(from Location) []Location {
	b := a.board()
	target := b.pieceAt(from)
	row := target.color.HomeRow()
	var out []Location
	for col := 0; col < BoardSize; col++ {
		to := Location{Row: row, Col: col}
		if !placeable(b, to) {
			continue
		}
		if a.safeAfter(func(sim *Board) { sim.RelocatePiece(from, to) }) {
			out = append(out, to)
		}
	}
	return out
}

func (a *sendAwayAction) ValidInput(in FollowUp) bool {
	if in.Kind != FollowUpLocation {
		return false
	}
	target := a.enemyPiece(in.Location)
	if target == nil || target.rank == King || a.board().IsInvulnerable(in.Location) {
		return false
	}
	return len(a.destinations(in.Location)) > 0
}

func (a *sendAwayAction) Execute(in FollowUp) {
	dests := a.destinations(in.Location)
	to := dests[a.game.rng.Intn(len(dests))]
	a.board().RelocatePiece(in.Location, to)
	a.sentTo = &to
	a.touch(in.Location, to)
}

// SentTo reports where the piece landed once the action ran.
func (a *sendAwayAction) SentTo() (Location, bool) {
	if a.sentTo == nil {
		return Location{}, false
	}
	return *a.sentTo, true
}
