package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/powerchess-backend/internal/middleware"
	"github.com/benbeisheim/powerchess-backend/internal/service"
	"github.com/benbeisheim/powerchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	log         *zap.SugaredLogger
}

func NewWebSocketController(gameService *service.GameService, log *zap.SugaredLogger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Locals(middleware.WSGameIDKey).(string)
	playerID := c.Locals(middleware.WSPlayerIDKey).(string)
	log := wsc.log.With("game", gameID, "player", playerID)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnw("failed to register connection", "error", err)
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
		)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	if err := wsc.gameService.SendState(gameID, playerID); err != nil {
		log.Warnw("failed to send initial state", "error", err)
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.reply(gameID, playerID, ws.MessageTypeError, fmt.Errorf("parse error: %w", err))
			continue
		}
		wsc.dispatch(gameID, playerID, msg)
	}
}

// dispatch runs one client message and fans the outcome out.
func (wsc *WebSocketController) dispatch(gameID, playerID string, msg ws.Message) {
	update, err := wsc.handleMessage(gameID, playerID, msg)
	if err != nil {
		kind := ws.MessageTypeError
		if isRuleViolation(err) {
			kind = ws.MessageTypeIllegalAction
		}
		wsc.reply(gameID, playerID, kind, err)
		return
	}
	if err := wsc.gameService.Broadcast(gameID, update); err != nil {
		wsc.log.Errorw("broadcast failed", "game", gameID, "error", err)
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.GameUpdate, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, err
		}
		return wsc.gameService.HandleMove(gameID, playerID, payload.Move)

	case ws.MessageTypeSelectPower:
		var payload ws.SelectPowerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, err
		}
		return wsc.gameService.HandlePowerSelect(gameID, playerID, payload.Index)

	case ws.MessageTypeExecutePower:
		var payload ws.ExecutePowerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, err
		}
		return wsc.gameService.HandlePowerExecute(gameID, playerID, payload.FollowUp())

	case ws.MessageTypeResign:
		return wsc.gameService.HandleResign(gameID, playerID)

	case ws.MessageTypeDrawOffer:
		return wsc.gameService.HandleDrawOffer(gameID, playerID)
	}
	return nil, fmt.Errorf("unknown message type: %s", msg.Type)
}

// reply sends an error back to the player who caused it.
func (wsc *WebSocketController) reply(gameID, playerID string, kind ws.MessageType, cause error) {
	msg, err := ws.NewMessage(kind, ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		return
	}
	if err := wsc.gameService.Send(gameID, playerID, msg); err != nil {
		wsc.log.Warnw("failed to send error", "game", gameID, "player", playerID, "error", err)
	}
}
