package model

import (
	"math/rand"
	"testing"
)

// at parses algebraic notation such as "e4".
func at(s string) Location {
	return Location{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}
}

func mv(from, to string) Move {
	return Move{Start: at(from), End: at(to)}
}

func boardWith(t *testing.T, pieces map[string]*Piece) *Board {
	t.Helper()
	b := NewBoard()
	for s, p := range pieces {
		if err := b.PlacePiece(at(s), p); err != nil {
			t.Fatalf("place %s at %s: %v", p, s, err)
		}
	}
	return b
}

func quietSettings() Settings {
	s := DefaultSettings()
	s.SpawnChance = 0
	return s
}

func newTestGame(t *testing.T, b *Board, opts ...Option) *Game {
	t.Helper()
	base := []Option{
		WithBoard(b),
		WithSettings(quietSettings()),
		WithRand(rand.New(rand.NewSource(1))),
	}
	g := NewGame(append(base, opts...)...)
	for _, c := range []Color{White, Black} {
		if err := g.AddPlayer(NewPlayer(c.String(), c)); err != nil {
			t.Fatalf("add %s player: %v", c, err)
		}
	}
	return g
}

func play(t *testing.T, g *Game, moves ...Move) {
	t.Helper()
	for _, m := range moves {
		if err := g.SetPendingMove(m); err != nil {
			t.Fatalf("set move %s: %v", m, err)
		}
		if err := g.Turn(); err != nil {
			t.Fatalf("turn %s: %v", m, err)
		}
	}
}

func sameCells(a, b [BoardSize][BoardSize]CellView) bool {
	for row := range a {
		for col := range a[row] {
			if !a[row][col].Equal(b[row][col]) {
				return false
			}
		}
	}
	return true
}

func boardCells(b *Board) [BoardSize][BoardSize]CellView {
	var out [BoardSize][BoardSize]CellView
	b.each(func(loc Location, _ *cell) {
		out[loc.Row][loc.Col] = b.view(loc)
	})
	return out
}

// firstValidInput enumerates inputs until a accepts one.
func firstValidInput(a PowerAction) (FollowUp, bool) {
	switch a.FollowUp() {
	case FollowUpNone:
		in := NoFollowUp()
		return in, a.ValidInput(in)
	case FollowUpLocation:
		for _, loc := range allLocations() {
			if in := LocationFollowUp(loc); a.ValidInput(in) {
				return in, true
			}
		}
	case FollowUpMove:
		for _, from := range allLocations() {
			for _, to := range allLocations() {
				if in := MoveFollowUp(Move{Start: from, End: to}); a.ValidInput(in) {
					return in, true
				}
			}
		}
	}
	return FollowUp{}, false
}

// wrongKind returns input of a shape a never accepts.
func wrongKind(a PowerAction) FollowUp {
	if a.FollowUp() == FollowUpMove {
		return NoFollowUp()
	}
	return MoveFollowUp(mv("a1", "a2"))
}
