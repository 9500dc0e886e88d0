package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Conn // clientID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Session pairs one engine instance with its observers. The engine is not
// safe for concurrent use, so every call into it goes through mu.
type Session struct {
	ID          string
	CreatedAt   time.Time
	mu          sync.Mutex
	game        *model.Game
	connections *GameConnections
	logger      *zap.Logger
}

func NewSession(id string, game *model.Game, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		game:        game,
		connections: NewGameConnections(),
		logger:      logger.With(zap.String("game_id", id)),
	}
}

func (s *Session) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

func (s *Session) PossibleMoves(from model.Position) []model.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.MovesFrom(from)
}

// MakeMove plays a move and pushes the new state to every observer. The
// engine lock is held through the broadcast so observers see plies in order.
func (s *Session) MakeMove(from, to model.Position) (model.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.MakeMove(from, to) {
		s.logger.Debug("move rejected",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.String("to_move", string(s.game.CurrentPlayer())),
		)
		return model.GameState{}, fmt.Errorf("%w: %s-%s", model.ErrIllegalMove, from, to)
	}
	state := s.game.State()

	s.logger.Info("move played",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("status", string(state.Status)),
		zap.Int("ply", state.Ply),
	)
	s.broadcastState(state)
	return state, nil
}

// record builds the archive view of the game.
func (s *Session) record() (model.GameState, []string, model.PlayerColor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	winner, _ := s.game.Winner()
	return s.game.State(), s.game.BoardHistory(), winner
}

func (s *Session) RegisterConnection(clientID string, conn Conn) error {
	s.connections.mu.Lock()
	if _, exists := s.connections.connections[clientID]; exists {
		// keep the existing connection and turn the newcomer away
		s.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return fmt.Errorf("%w: %s", ErrDuplicateConnection, clientID)
	}
	s.connections.connections[clientID] = conn
	s.connections.mu.Unlock()
	s.logger.Info("connection registered", zap.String("client_id", clientID))

	s.sendState(clientID, conn, s.State())
	return nil
}

func (s *Session) UnregisterConnection(clientID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	// a stale handler must not drop the connection that replaced it
	if current, exists := s.connections.connections[clientID]; exists && current == conn {
		delete(s.connections.connections, clientID)
		s.logger.Info("connection unregistered", zap.String("client_id", clientID))
	}
}

func (s *Session) ConnectionCount() int {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	return len(s.connections.connections)
}

// broadcastState writes state to every observer, dropping connections that
// fail. Writes are serialised by the connections mutex.
func (s *Session) broadcastState(state model.GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		s.logger.Error("failed to marshal state", zap.Error(err))
		return
	}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for clientID, conn := range s.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Warn("failed to send state", zap.String("client_id", clientID), zap.Error(err))
			delete(s.connections.connections, clientID)
		}
	}
}

func (s *Session) sendState(clientID string, conn Conn, state model.GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		s.logger.Error("failed to marshal state", zap.Error(err))
		return
	}
	if err := s.Send(conn, msg); err != nil {
		s.logger.Warn("failed to send state", zap.String("client_id", clientID), zap.Error(err))
	}
}

// Send writes one message to conn without interleaving with broadcasts.
func (s *Session) Send(conn Conn, msg ws.Message) error {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	return conn.WriteJSON(msg)
}
