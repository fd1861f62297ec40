package ws

import (
	"encoding/json"

	"github.com/benbeisheim/powerchess-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove          MessageType = "move"
	MessageTypeSelectPower   MessageType = "selectPower"
	MessageTypeExecutePower  MessageType = "executePower"
	MessageTypeDrawOffer     MessageType = "drawOffer"
	MessageTypeResign        MessageType = "resign"
	MessageTypeGameState     MessageType = "gameState"
	MessageTypeGameUpdate    MessageType = "gameUpdate"
	MessageTypeIllegalAction MessageType = "illegalAction"
	MessageTypeGameOver      MessageType = "gameOver"
	MessageTypeError         MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into a message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

type MovePayload struct {
	Move model.Move `json:"move"`
}

type SelectPowerPayload struct {
	Index int `json:"index"`
}

// ExecutePowerPayload carries the follow-up for the selected action. At most
// one of Location and Move is set.
type ExecutePowerPayload struct {
	Location *model.Location `json:"location,omitempty"`
	Move     *model.Move     `json:"move,omitempty"`
}

func (p ExecutePowerPayload) FollowUp() model.FollowUp {
	switch {
	case p.Move != nil:
		return model.MoveFollowUp(*p.Move)
	case p.Location != nil:
		return model.LocationFollowUp(*p.Location)
	}
	return model.NoFollowUp()
}

// GameUpdate is broadcast after every accepted operation. Changed lists only
// the cells that differ from before the operation.
type GameUpdate struct {
	State        model.State        `json:"state"`
	ToMove       model.Color        `json:"toMove"`
	IsCheck      bool               `json:"isCheck"`
	Changed      []model.CellView   `json:"changed"`
	PowerOptions []model.ActionView `json:"powerOptions"`
	LastMove     *model.Move        `json:"lastMove"`
	Promoted     *model.Location    `json:"promoted,omitempty"`
	Outcome      *model.Outcome     `json:"outcome,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
