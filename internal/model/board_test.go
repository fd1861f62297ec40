package model

import (
	"errors"
	"testing"
)

func TestStandardBoardLayout(t *testing.T) {
	b := NewStandardBoard()
	tests := []struct {
		square string
		color  Color
		rank   Rank
	}{
		{"a1", White, Rook},
		{"b1", White, Knight},
		{"c1", White, Bishop},
		{"d1", White, Queen},
		{"e1", White, King},
		{"e2", White, Pawn},
		{"d8", Black, Queen},
		{"e8", Black, King},
		{"h7", Black, Pawn},
	}
	for _, tt := range tests {
		p, err := b.PieceAt(at(tt.square))
		if err != nil {
			t.Fatalf("piece at %s: %v", tt.square, err)
		}
		if p == nil || p.Color() != tt.color || p.Rank() != tt.rank {
			t.Fatalf("%s: expected %s %s, got %v", tt.square, tt.color, tt.rank, p)
		}
	}
	for row := 2; row < 6; row++ {
		for col := 0; col < BoardSize; col++ {
			if !b.IsEmpty(Location{Row: row, Col: col}) {
				t.Fatalf("expected row %d col %d empty", row, col)
			}
		}
	}
}

func TestBoardRejectsOutOfBounds(t *testing.T) {
	b := NewBoard()
	bad := Location{Row: 8, Col: 0}

	if _, err := b.PieceAt(bad); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("PieceAt: expected ErrInvalidLocation, got %v", err)
	}
	if _, err := b.ObjectsAt(bad); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("ObjectsAt: expected ErrInvalidLocation, got %v", err)
	}
	if err := b.PlacePiece(bad, NewPiece(White, Pawn)); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("PlacePiece: expected ErrInvalidLocation, got %v", err)
	}
	if b.IsEmpty(bad) {
		t.Fatalf("out of bounds cell must not read as empty")
	}
	if _, err := NewLocation(-1, 3); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("NewLocation: expected ErrInvalidLocation, got %v", err)
	}
}

func TestPlaceAndRemovePiece(t *testing.T) {
	b := NewBoard()
	loc := at("d4")
	knight := NewPiece(Black, Knight)

	if err := b.PlacePiece(loc, knight); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := b.PlacePiece(loc, NewPiece(White, Pawn)); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	got, err := b.RemovePiece(loc)
	if err != nil || got != knight {
		t.Fatalf("remove: got %v, %v", got, err)
	}
	if _, err := b.RemovePiece(loc); !errors.Is(err, ErrNoPiece) {
		t.Fatalf("expected ErrNoPiece, got %v", err)
	}
}

func TestObjectsAtListsOverlays(t *testing.T) {
	b := NewBoard()
	loc := at("c5")

	objs, err := b.ObjectsAt(loc)
	if err != nil {
		t.Fatalf("objects: %v", err)
	}
	if len(objs) != 1 || objs[0].ObjectKind() != KindEmpty {
		t.Fatalf("expected a lone EmptySpace, got %v", objs)
	}

	if err := b.PlacePowerObject(NewPowerObject(Rare, loc)); err != nil {
		t.Fatalf("place power object: %v", err)
	}
	if err := b.PlacePowerObject(NewPowerObject(Common, loc)); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied for a second power object, got %v", err)
	}
	if err := b.SetEnPassantMarker(loc, Black); err != nil {
		t.Fatalf("set marker: %v", err)
	}

	objs, _ = b.ObjectsAt(loc)
	var kinds []ObjectKind
	for _, o := range objs {
		kinds = append(kinds, o.ObjectKind())
	}
	want := []ObjectKind{KindEmpty, KindPowerObject, KindEnPassantMarker}
	if len(kinds) != len(want) {
		t.Fatalf("expected kinds %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected kinds %v, got %v", want, kinds)
		}
	}

	b.ClearEnPassantMarker(Black)
	if b.markerAt(loc) != nil || b.EnPassantMarker(Black) != nil {
		t.Fatalf("marker should be cleared")
	}
}

func TestRelocateCarriesInvulnerability(t *testing.T) {
	b := boardWith(t, map[string]*Piece{
		"a1": NewPiece(White, Rook),
		"a5": NewPiece(Black, Knight),
	})
	shield := newPowerUp(PowerUpInvulnerability, at("a1"), 3)
	b.addPowerUp(shield)

	if _, err := b.RelocatePiece(at("a1"), at("a3")); err != nil {
		t.Fatalf("relocate: %v", err)
	}
	if b.IsInvulnerable(at("a1")) || !b.IsInvulnerable(at("a3")) {
		t.Fatalf("invulnerability should follow the piece")
	}
	if shield.Location() != at("a3") {
		t.Fatalf("expected shield at a3, got %s", shield.Location())
	}

	guard := newPowerUp(PowerUpInvulnerability, at("a5"), 3)
	b.addPowerUp(guard)
	captured, err := b.RelocatePiece(at("a3"), at("a5"))
	if err != nil || captured == nil || captured.Rank() != Knight {
		t.Fatalf("expected knight captured, got %v, %v", captured, err)
	}
	if !guard.Expired() {
		t.Fatalf("captured piece's shield should expire")
	}
}

func TestCloneIsolatesOverlays(t *testing.T) {
	b := boardWith(t, map[string]*Piece{"d4": NewPiece(White, Bishop)})
	shield := newPowerUp(PowerUpInvulnerability, at("d4"), 2)
	b.addPowerUp(shield)

	sim := b.Clone()
	if _, err := sim.RelocatePiece(at("d4"), at("f6")); err != nil {
		t.Fatalf("relocate on clone: %v", err)
	}
	if _, err := sim.RemovePiece(at("f6")); err != nil {
		t.Fatalf("remove on clone: %v", err)
	}

	if b.IsEmpty(at("d4")) || !b.IsInvulnerable(at("d4")) {
		t.Fatalf("original board changed by clone")
	}
	if shield.Location() != at("d4") || shield.Expired() {
		t.Fatalf("original shield changed by clone")
	}
}

func TestSwapPiecesMovesShields(t *testing.T) {
	b := boardWith(t, map[string]*Piece{
		"a1": NewPiece(White, Rook),
		"b1": NewPiece(White, Knight),
	})
	b.addPowerUp(newPowerUp(PowerUpInvulnerability, at("a1"), 2))

	b.swapPieces(at("a1"), at("b1"))

	if p := b.pieceAt(at("a1")); p.Rank() != Knight {
		t.Fatalf("expected knight on a1, got %v", p)
	}
	if !b.IsInvulnerable(at("b1")) || b.IsInvulnerable(at("a1")) {
		t.Fatalf("shield should follow the rook to b1")
	}
}

func TestPruneMarkersDropsOrphans(t *testing.T) {
	b := boardWith(t, map[string]*Piece{"e4": NewPiece(White, Pawn)})
	if err := b.SetEnPassantMarker(at("e3"), White); err != nil {
		t.Fatalf("set marker: %v", err)
	}
	b.pruneMarkers()
	if b.EnPassantMarker(White) == nil {
		t.Fatalf("marker with its pawn in place should survive")
	}

	b.RelocatePiece(at("e4"), at("d4"))
	b.pruneMarkers()
	if b.EnPassantMarker(White) != nil || b.markerAt(at("e3")) != nil {
		t.Fatalf("orphaned marker should be cleared")
	}
}
