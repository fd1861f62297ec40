package model

import "fmt"

// ObjectKind tags the entities that can share a cell.
type ObjectKind uint8

const (
	KindEmpty ObjectKind = iota
	KindPiece
	KindPowerObject
	KindEnPassantMarker
	KindPowerUp
)

func (k ObjectKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPiece:
		return "piece"
	case KindPowerObject:
		return "power"
	case KindEnPassantMarker:
		return "enPassant"
	case KindPowerUp:
		return "powerUp"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// BoardObject is anything that can occupy a cell.
type BoardObject interface {
	ObjectKind() ObjectKind
}

// EmptySpace stands in for a missing piece in ObjectsAt results.
type EmptySpace struct{}

func (EmptySpace) ObjectKind() ObjectKind { return KindEmpty }

// EnPassantMarker marks the cell a pawn skipped with its double advance.
type EnPassantMarker struct {
	Color Color
	At    Location
}

func (m *EnPassantMarker) ObjectKind() ObjectKind { return KindEnPassantMarker }

// PawnLocation is where the pawn that left the marker stands.
func (m *EnPassantMarker) PawnLocation() Location {
	return m.At.Offset(m.Color.forward(), 0)
}

type cell struct {
	piece    *Piece
	power    *PowerObject
	marker   *EnPassantMarker
	powerUps []*PowerUp
}

// Board is the 8x8 grid. A cell holds at most one piece plus overlays.
// Every exported mutator validates before it writes, so a failed call leaves
// the grid untouched.
type Board struct {
	cells   [BoardSize][BoardSize]cell
	markers [2]*EnPassantMarker
}

func NewBoard() *Board {
	return &Board{}
}

var backRank = [BoardSize]Rank{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns the usual starting position, white on rows 0 and 1.
func NewStandardBoard() *Board {
	b := NewBoard()
	for _, color := range []Color{White, Black} {
		home := color.HomeRow()
		pawnRow := home + color.forward()
		for col := 0; col < BoardSize; col++ {
			b.cells[home][col].piece = NewPiece(color, backRank[col])
			b.cells[pawnRow][col].piece = NewPiece(color, Pawn)
		}
	}
	return b
}

func checkBounds(locs ...Location) error {
	for _, loc := range locs {
		if !loc.InBounds() {
			return fmt.Errorf("%w: %s", ErrInvalidLocation, loc)
		}
	}
	return nil
}

func (b *Board) cell(loc Location) *cell {
	return &b.cells[loc.Row][loc.Col]
}

// pieceAt is the unchecked lookup used by move validation. Out of bounds
// reads as no piece.
func (b *Board) pieceAt(loc Location) *Piece {
	if !loc.InBounds() {
		return nil
	}
	return b.cell(loc).piece
}

func (b *Board) PieceAt(loc Location) (*Piece, error) {
	if err := checkBounds(loc); err != nil {
		return nil, err
	}
	return b.cell(loc).piece, nil
}

// IsEmpty reports whether no piece occupies loc. Overlays do not count.
func (b *Board) IsEmpty(loc Location) bool {
	return loc.InBounds() && b.cell(loc).piece == nil
}

// ObjectsAt lists everything on loc. EmptySpace is included whenever no piece
// is present so that before and after listings can be diffed.
func (b *Board) ObjectsAt(loc Location) ([]BoardObject, error) {
	if err := checkBounds(loc); err != nil {
		return nil, err
	}
	c := b.cell(loc)
	objs := make([]BoardObject, 0, 2+len(c.powerUps))
	if c.piece != nil {
		objs = append(objs, c.piece)
	} else {
		objs = append(objs, EmptySpace{})
	}
	if c.power != nil {
		objs = append(objs, c.power)
	}
	if c.marker != nil {
		objs = append(objs, c.marker)
	}
	for _, u := range c.powerUps {
		objs = append(objs, u)
	}
	return objs, nil
}

func (b *Board) PowerObjectAt(loc Location) *PowerObject {
	if !loc.InBounds() {
		return nil
	}
	return b.cell(loc).power
}

func (b *Board) PlacePiece(loc Location, p *Piece) error {
	if err := checkBounds(loc); err != nil {
		return err
	}
	if b.cell(loc).piece != nil {
		return fmt.Errorf("%w: %s", ErrOccupied, loc)
	}
	b.cell(loc).piece = p
	return nil
}

// RemovePiece takes the piece off loc. Any invulnerability it carried expires.
func (b *Board) RemovePiece(loc Location) (*Piece, error) {
	if err := checkBounds(loc); err != nil {
		return nil, err
	}
	c := b.cell(loc)
	if c.piece == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, loc)
	}
	p := c.piece
	c.piece = nil
	c.dropPowerUps(PowerUpInvulnerability)
	return p, nil
}

// RelocatePiece moves the piece at from onto to, capturing whatever piece was
// there. Invulnerability travels with the moving piece.
func (b *Board) RelocatePiece(from, to Location) (*Piece, error) {
	if err := checkBounds(from, to); err != nil {
		return nil, err
	}
	src, dst := b.cell(from), b.cell(to)
	if src.piece == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if from == to {
		return nil, nil
	}
	captured := dst.piece
	if captured != nil {
		dst.dropPowerUps(PowerUpInvulnerability)
	}
	dst.piece, src.piece = src.piece, nil

	kept := src.powerUps[:0]
	for _, u := range src.powerUps {
		if u.kind == PowerUpInvulnerability {
			u.at = to
			dst.powerUps = append(dst.powerUps, u)
			continue
		}
		kept = append(kept, u)
	}
	src.powerUps = kept
	return captured, nil
}

// replacePiece swaps the piece on an occupied cell, keeping its overlays.
func (b *Board) replacePiece(loc Location, p *Piece) {
	b.cell(loc).piece = p
}

// swapPieces exchanges the pieces on x and y. Invulnerability follows them.
func (b *Board) swapPieces(x, y Location) {
	cx, cy := b.cell(x), b.cell(y)
	cx.piece, cy.piece = cy.piece, cx.piece
	fromX := cx.takePowerUps(PowerUpInvulnerability)
	fromY := cy.takePowerUps(PowerUpInvulnerability)
	for _, u := range fromX {
		u.at = y
		cy.powerUps = append(cy.powerUps, u)
	}
	for _, u := range fromY {
		u.at = x
		cx.powerUps = append(cx.powerUps, u)
	}
}

func (b *Board) SetEnPassantMarker(loc Location, color Color) error {
	if err := checkBounds(loc); err != nil {
		return err
	}
	b.ClearEnPassantMarker(color)
	m := &EnPassantMarker{Color: color, At: loc}
	b.markers[color] = m
	b.cell(loc).marker = m
	return nil
}

func (b *Board) ClearEnPassantMarker(color Color) {
	m := b.markers[color]
	if m == nil {
		return
	}
	if c := b.cell(m.At); c.marker == m {
		c.marker = nil
	}
	b.markers[color] = nil
}

func (b *Board) EnPassantMarker(color Color) *EnPassantMarker {
	return b.markers[color]
}

// pruneMarkers clears markers whose pawn no longer stands behind them.
func (b *Board) pruneMarkers() {
	for _, m := range b.markers {
		if m == nil {
			continue
		}
		p := b.pieceAt(m.PawnLocation())
		if p == nil || p.rank != Pawn || p.color != m.Color {
			b.ClearEnPassantMarker(m.Color)
		}
	}
}

func (b *Board) markerAt(loc Location) *EnPassantMarker {
	if !loc.InBounds() {
		return nil
	}
	return b.cell(loc).marker
}

// PlacePowerObject puts o on its location, which must hold no piece, power
// object or black hole.
func (b *Board) PlacePowerObject(o *PowerObject) error {
	if err := checkBounds(o.at); err != nil {
		return err
	}
	c := b.cell(o.at)
	if c.piece != nil || c.power != nil || c.hasPowerUp(PowerUpBlackHole) {
		return fmt.Errorf("%w: %s", ErrOccupied, o.at)
	}
	c.power = o
	return nil
}

func (b *Board) removePowerObject(loc Location) *PowerObject {
	c := b.cell(loc)
	o := c.power
	c.power = nil
	return o
}

// PowerObjects lists the power objects on the board in row-major order.
func (b *Board) PowerObjects() []*PowerObject {
	var out []*PowerObject
	b.each(func(loc Location, c *cell) {
		if c.power != nil {
			out = append(out, c.power)
		}
	})
	return out
}

func (b *Board) addPowerUp(u *PowerUp) {
	c := b.cell(u.at)
	c.powerUps = append(c.powerUps, u)
}

func (b *Board) removePowerUp(u *PowerUp) bool {
	c := b.cell(u.at)
	for i, other := range c.powerUps {
		if other == u {
			c.powerUps = append(c.powerUps[:i], c.powerUps[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Board) IsInvulnerable(loc Location) bool {
	return loc.InBounds() && b.cell(loc).hasPowerUp(PowerUpInvulnerability)
}

func (b *Board) HasBlackHole(loc Location) bool {
	return loc.InBounds() && b.cell(loc).hasPowerUp(PowerUpBlackHole)
}

// vacant reports whether loc holds nothing at all: no piece, no power object,
// no marker and no overlay.
func (b *Board) vacant(loc Location) bool {
	if !loc.InBounds() {
		return false
	}
	c := b.cell(loc)
	return c.piece == nil && c.power == nil && c.marker == nil && len(c.powerUps) == 0
}

// PieceLocations returns the cells holding pieces of color in row-major order.
func (b *Board) PieceLocations(color Color) []Location {
	var out []Location
	b.each(func(loc Location, c *cell) {
		if c.piece != nil && c.piece.color == color {
			out = append(out, loc)
		}
	})
	return out
}

// KingLocation finds the king of color. Power actions may leave a side
// without one, in which case ok is false.
func (b *Board) KingLocation(color Color) (Location, bool) {
	for _, loc := range b.PieceLocations(color) {
		if b.pieceAt(loc).rank == King {
			return loc, true
		}
	}
	return Location{}, false
}

func (b *Board) each(fn func(loc Location, c *cell)) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			fn(Location{Row: row, Col: col}, &b.cells[row][col])
		}
	}
}

// Clone copies the grid for hypothetical play. Pieces are shared, overlays
// are copied so that simulated relocations cannot move the real ones.
func (b *Board) Clone() *Board {
	out := &Board{cells: b.cells, markers: b.markers}
	out.each(func(loc Location, c *cell) {
		if len(c.powerUps) == 0 {
			c.powerUps = nil
			return
		}
		copied := make([]*PowerUp, len(c.powerUps))
		for i, u := range c.powerUps {
			dup := *u
			copied[i] = &dup
		}
		c.powerUps = copied
	})
	return out
}

func (c *cell) hasPowerUp(kind PowerUpKind) bool {
	for _, u := range c.powerUps {
		if u.kind == kind {
			return true
		}
	}
	return false
}

func (c *cell) dropPowerUps(kind PowerUpKind) {
	kept := c.powerUps[:0]
	for _, u := range c.powerUps {
		if u.kind == kind {
			u.expired = true
			continue
		}
		kept = append(kept, u)
	}
	c.powerUps = kept
}

// takePowerUps detaches the overlays of kind without expiring them.
func (c *cell) takePowerUps(kind PowerUpKind) []*PowerUp {
	var taken []*PowerUp
	kept := c.powerUps[:0]
	for _, u := range c.powerUps {
		if u.kind == kind {
			taken = append(taken, u)
			continue
		}
		kept = append(kept, u)
	}
	c.powerUps = kept
	return taken
}
