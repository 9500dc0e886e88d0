package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/storage"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Archive keeps finished games. *storage.Archive satisfies it.
type Archive interface {
	Save(rec storage.GameRecord) error
	Load(id string) (storage.GameRecord, error)
	List() ([]storage.GameRecord, error)
}

type GameService struct {
	gameManager *GameManager
	archive     Archive
	logger      *zap.Logger
}

// NewGameService wires the registry to an optional archive; a nil archive
// turns archiving off.
func NewGameService(gameManager *GameManager, archive Archive, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		gameManager: gameManager,
		archive:     archive,
		logger:      logger,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) ListGames() []string {
	return gs.gameManager.List()
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.State(), nil
}

func (gs *GameService) PossibleMoves(gameID string, square string) ([]model.Position, error) {
	from, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return nil, err
	}
	return session.PossibleMoves(from), nil
}

// HandleMove plays from-to in the given game. A game that ends with the
// move is written to the archive. Archive failures are logged and do not
// fail the move.
func (gs *GameService) HandleMove(gameID string, from, to string) (model.GameState, error) {
	fromPos, err := model.ParsePosition(from)
	if err != nil {
		return model.GameState{}, err
	}
	toPos, err := model.ParsePosition(to)
	if err != nil {
		return model.GameState{}, err
	}
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	state, err := session.MakeMove(fromPos, toPos)
	if err != nil {
		return model.GameState{}, err
	}

	if state.Status == model.GameStatusCheckmate || state.Status == model.GameStatusStalemate {
		gs.archiveGame(session)
	}
	return state, nil
}

func (gs *GameService) ArchivedGame(gameID string) (storage.GameRecord, error) {
	if gs.archive == nil {
		return storage.GameRecord{}, ErrArchiveDisabled
	}
	return gs.archive.Load(gameID)
}

func (gs *GameService) ArchivedGames() ([]storage.GameRecord, error) {
	if gs.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return gs.archive.List()
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn Conn) error {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn Conn) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(clientID, conn)
}

// Reply sends msg to a single connection of the game.
func (gs *GameService) Reply(gameID string, conn Conn, msg ws.Message) error {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.Send(conn, msg)
}

func (gs *GameService) archiveGame(session *Session) {
	if gs.archive == nil {
		return
	}
	state, snapshots, winner := session.record()

	moves := make([]string, 0, len(state.MoveHistory))
	for _, mv := range state.MoveHistory {
		moves = append(moves, mv.String())
	}
	rec := storage.GameRecord{
		ID:        session.ID,
		Status:    string(state.Status),
		Winner:    string(winner),
		Moves:     moves,
		Snapshots: snapshots,
		StartedAt: session.CreatedAt,
	}
	if err := gs.archive.Save(rec); err != nil {
		gs.logger.Error("failed to archive game", zap.String("game_id", session.ID), zap.Error(err))
		return
	}
	gs.logger.Info("game archived",
		zap.String("game_id", session.ID),
		zap.String("status", rec.Status),
		zap.String("winner", rec.Winner),
	)
}
