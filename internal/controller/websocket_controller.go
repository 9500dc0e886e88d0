package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.LocalWSGameID).(string)
	clientID, _ := c.Locals(middleware.LocalWSClientID).(string)
	logger := wsc.logger.With(zap.String("game_id", gameID), zap.String("client_id", clientID))

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
		logger.Warn("failed to register connection", zap.Error(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID, c)

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("read loop ended", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug("parse error", zap.Error(err))
			wsc.sendError(gameID, c, "malformed message")
			continue
		}

		if err := wsc.handleMessage(gameID, c, msg); err != nil {
			logger.Debug("handle error", zap.String("type", string(msg.Type)), zap.Error(err))
			wsc.sendError(gameID, c, err.Error())
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID string, c service.Conn, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// the new state reaches every connection through the session broadcast
		_, err := wsc.gameService.HandleMove(gameID, move.From, move.To)
		return err

	case ws.MessageTypeMoves:
		var query ws.MovesPayload
		if err := json.Unmarshal(msg.Payload, &query); err != nil {
			return err
		}
		moves, err := wsc.gameService.PossibleMoves(gameID, query.Square)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeMoves, ws.MovesPayload{Square: query.Square, Moves: squareStrings(moves)})
		if err != nil {
			return err
		}
		return wsc.gameService.Reply(gameID, c, reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(gameID string, c service.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := wsc.gameService.Reply(gameID, c, msg); err != nil {
		wsc.logger.Debug("failed to send error", zap.String("game_id", gameID), zap.Error(err))
	}
}
