package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/benbeisheim/chessrules/internal/model"
	"go.uber.org/zap"
)

// GameManager owns every live session, keyed by game id.
type GameManager struct {
	games      map[string]*Session
	newOptions []model.Option
	logger     *zap.Logger
	mu         sync.RWMutex
}

// NewGameManager builds an empty registry. opts are applied to every game
// it creates.
func NewGameManager(logger *zap.Logger, opts ...model.Option) *GameManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameManager{
		games:      make(map[string]*Session),
		newOptions: opts,
		logger:     logger,
	}
}

func (gm *GameManager) CreateGame(gameID string) (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	session := NewSession(gameID, model.NewGame(gm.newOptions...), gm.logger)
	gm.games[gameID] = session
	gm.logger.Info("game created", zap.String("game_id", gameID))
	return session, nil
}

func (gm *GameManager) GetSession(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return session, nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(gm.games, gameID)
	gm.logger.Info("game removed", zap.String("game_id", gameID))
	return nil
}

// List returns the ids of all live games, oldest first.
func (gm *GameManager) List() []string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	sessions := make([]*Session, 0, len(gm.games))
	for _, session := range gm.games {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	ids := make([]string, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID)
	}
	return ids
}
