package model

import "fmt"

// Replay rebuilds a position by playing moves from the standard start with
// spawning switched off. Pawns reaching the last row become queens. Power
// actions are not part of a move list, so games that used them do not
// replay exactly.
func Replay(moves []Move) (*Board, error) {
	settings := DefaultSettings()
	settings.SpawnChance = 0
	g := NewGame(WithSettings(settings))
	for _, c := range []Color{White, Black} {
		if err := g.AddPlayer(NewPlayer(c.String(), c)); err != nil {
			return nil, err
		}
	}

	for i, m := range moves {
		if err := g.SetPendingMove(m); err != nil {
			return nil, err
		}
		if err := g.Turn(); err != nil {
			return nil, fmt.Errorf("replay move %d (%s): %w", i+1, m, err)
		}
		if g.State() == WaitingForPromote {
			if _, err := g.ExecutePromotionToQueen(); err != nil {
				return nil, err
			}
		}
	}
	return g.board.Clone(), nil
}
