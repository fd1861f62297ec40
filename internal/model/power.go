package model

import "fmt"

// Rarity orders power objects and actions: Common < Rare < Legendary.
type Rarity uint8

const (
	Common Rarity = iota
	Rare
	Legendary
)

var rarities = []Rarity{Common, Rare, Legendary}

func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Rare:
		return "rare"
	case Legendary:
		return "legendary"
	}
	return fmt.Sprintf("rarity(%d)", uint8(r))
}

func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// PowerObject sits on a cell until a piece moves onto it.
type PowerObject struct {
	rarity Rarity
	at     Location
}

func NewPowerObject(rarity Rarity, at Location) *PowerObject {
	return &PowerObject{rarity: rarity, at: at}
}

func (o *PowerObject) Rarity() Rarity { return o.rarity }
func (o *PowerObject) Location() Location { return o.at }
func (o *PowerObject) ObjectKind() ObjectKind { return KindPowerObject }

// PowerUpKind tags the lasting effects power actions leave on the board.
type PowerUpKind uint8

const (
	// PowerUpBlackHole consumes any non-king piece that lands on its cell.
	PowerUpBlackHole PowerUpKind = iota
	// PowerUpInvulnerability travels with a piece and prevents its capture.
	PowerUpInvulnerability
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpBlackHole:
		return "blackHole"
	case PowerUpInvulnerability:
		return "invulnerability"
	}
	return fmt.Sprintf("powerUp(%d)", uint8(k))
}

func (k PowerUpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PowerUp is a timed board overlay. It expires after a number of half-turns
// or when the piece carrying it leaves the board.
type PowerUp struct {
	kind      PowerUpKind
	at        Location
	turnsLeft int
	expired   bool
}

func newPowerUp(kind PowerUpKind, at Location, turns int) *PowerUp {
	return &PowerUp{kind: kind, at: at, turnsLeft: turns}
}

func (u *PowerUp) Kind() PowerUpKind { return u.kind }
func (u *PowerUp) Location() Location { return u.at }
func (u *PowerUp) TurnsLeft() int { return u.turnsLeft }
func (u *PowerUp) Expired() bool { return u.expired }
func (u *PowerUp) ObjectKind() ObjectKind { return KindPowerUp }
