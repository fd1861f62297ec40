package model

import "fmt"

// ActionID is the tagged discriminant of a power action.
type ActionID uint8

const (
	ActionAdjust ActionID = iota
	ActionRewind
	ActionSecondEffort
	ActionShield
	ActionSwap
	ActionBlackHole
	ActionEnergize
	ActionEyeForAnEye
	ActionSafetyNet
	ActionSendAway
	ActionArmageddon
	ActionAwaken
	ActionClone
	ActionReanimate
)

var actionsByRarity = map[Rarity][]ActionID{
	Common:    {ActionAdjust, ActionRewind, ActionSecondEffort, ActionShield, ActionSwap},
	Rare:      {ActionBlackHole, ActionEnergize, ActionEyeForAnEye, ActionSafetyNet, ActionSendAway},
	Legendary: {ActionArmageddon, ActionAwaken, ActionClone, ActionReanimate},
}

func (id ActionID) String() string {
	switch id {
	case ActionAdjust:
		return "adjust"
	case ActionRewind:
		return "rewind"
	case ActionSecondEffort:
		return "secondEffort"
	case ActionShield:
		return "shield"
	case ActionSwap:
		return "swap"
	case ActionBlackHole:
		return "blackHole"
	case ActionEnergize:
		return "energize"
	case ActionEyeForAnEye:
		return "eyeForAnEye"
	case ActionSafetyNet:
		return "safetyNet"
	case ActionSendAway:
		return "sendAway"
	case ActionArmageddon:
		return "armageddon"
	case ActionAwaken:
		return "awaken"
	case ActionClone:
		return "clone"
	case ActionReanimate:
		return "reanimate"
	}
	return fmt.Sprintf("action(%d)", uint8(id))
}

func (id ActionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id ActionID) Rarity() Rarity {
	switch {
	case id <= ActionSwap:
		return Common
	case id <= ActionSendAway:
		return Rare
	}
	return Legendary
}

// FollowUp reports what input the action needs once selected.
func (id ActionID) FollowUp() FollowUpKind {
	switch id {
	case ActionShield, ActionBlackHole, ActionEyeForAnEye, ActionSendAway, ActionAwaken, ActionReanimate:
		return FollowUpLocation
	case ActionAdjust, ActionSecondEffort, ActionSwap, ActionClone:
		return FollowUpMove
	}
	return FollowUpNone
}

// FollowUpKind tags the input shape a power action expects.
type FollowUpKind uint8

const (
	FollowUpNone FollowUpKind = iota
	FollowUpLocation
	FollowUpMove
)

func (k FollowUpKind) String() string {
	switch k {
	case FollowUpNone:
		return "none"
	case FollowUpLocation:
		return "location"
	case FollowUpMove:
		return "move"
	}
	return fmt.Sprintf("followUp(%d)", uint8(k))
}

func (k FollowUpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FollowUp is the caller's input to a selected power action: nothing, a
// location or a move, as told by Kind.
type FollowUp struct {
	Kind     FollowUpKind
	Location Location
	Move     Move
}

func NoFollowUp() FollowUp {
	return FollowUp{Kind: FollowUpNone}
}

func LocationFollowUp(loc Location) FollowUp {
	return FollowUp{Kind: FollowUpLocation, Location: loc}
}

func MoveFollowUp(m Move) FollowUp {
	return FollowUp{Kind: FollowUpMove, Move: m}
}

func (f FollowUp) String() string {
	switch f.Kind {
	case FollowUpLocation:
		return f.Location.String()
	case FollowUpMove:
		return f.Move.String()
	}
	return "none"
}

// PowerAction is a one-shot capability offered after a power object is
// captured. ValidInput never mutates anything; Execute assumes ValidInput
// accepted the same input on the same board.
type PowerAction interface {
	ID() ActionID
	Rarity() Rarity
	FollowUp() FollowUpKind
	// WhereCaptured is the cell of the power object that granted the action.
	WhereCaptured() Location
	ValidInput(in FollowUp) bool
	Execute(in FollowUp)
	// Affected lists the cells changed by Execute, beyond the follow-up
	// input itself.
	Affected() []Location
}

// actionBase carries what every action shares. Actions run with the game
// lock held and reach into the game directly.
type actionBase struct {
	id       ActionID
	color    Color
	captured Location
	game     *Game
	affected []Location
}

func (a *actionBase) ID() ActionID { return a.id }
func (a *actionBase) Rarity() Rarity { return a.id.Rarity() }
func (a *actionBase) FollowUp() FollowUpKind { return a.id.FollowUp() }
func (a *actionBase) WhereCaptured() Location { return a.captured }
func (a *actionBase) Affected() []Location { return a.affected }

func (a *actionBase) board() *Board { return a.game.board }

func (a *actionBase) touch(locs ...Location) {
	a.affected = append(a.affected, locs...)
}

// ownPiece returns the acting color's piece at loc, if any.
func (a *actionBase) ownPiece(loc Location) *Piece {
	p := a.board().pieceAt(loc)
	if p == nil || p.color != a.color {
		return nil
	}
	return p
}

func (a *actionBase) enemyPiece(loc Location) *Piece {
	p := a.board().pieceAt(loc)
	if p == nil || p.color == a.color {
		return nil
	}
	return p
}

// safeAfter reports whether the acting color's king is unattacked once
// mutate has been applied to a copy of the board.
func (a *actionBase) safeAfter(mutate func(b *Board)) bool {
	sim := a.board().Clone()
	mutate(sim)
	return !inCheck(sim, a.color)
}

// placeable reports whether a piece could be put on loc: no piece, no power
// object and no black hole.
func placeable(b *Board, loc Location) bool {
	return b.IsEmpty(loc) && b.PowerObjectAt(loc) == nil && !b.HasBlackHole(loc)
}

func (g *Game) newAction(id ActionID, color Color, captured Location) PowerAction {
	base := actionBase{id: id, color: color, captured: captured, game: g}
	switch id {
	case ActionAdjust:
		return &adjustAction{base}
	case ActionRewind:
		return &rewindAction{base}
	case ActionSecondEffort:
		return &secondEffortAction{base}
	case ActionShield:
		return &shieldAction{base}
	case ActionSwap:
		return &swapAction{base}
	case ActionBlackHole:
		return &blackHoleAction{base}
	case ActionEnergize:
		return &energizeAction{base}
	case ActionEyeForAnEye:
		return &eyeForAnEyeAction{base}
	case ActionSafetyNet:
		return &safetyNetAction{base}
	case ActionSendAway:
		return &sendAwayAction{actionBase: base}
	case ActionArmageddon:
		return &armageddonAction{base}
	case ActionAwaken:
		return &awakenAction{base}
	case ActionClone:
		return &cloneAction{base}
	case ActionReanimate:
		return &reanimateAction{base}
	}
	panic(fmt.Sprintf("unknown power action %d", uint8(id)))
}
