package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pocketarcade/tictactoe/internal/entity"
)

// memorySession keeps sessions as marshaled JSON, the same shape the redis
// repository stores, so both behave identically including copy isolation.
// It backs the game when no redis host is configured.
type memorySession struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	lastID   string
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		sessions: make(map[string][]byte),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = sessionJSON
	that.lastID = session.ID

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	sessionJSON, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return &entity.Session{}, ErrSessionNotFound
	}

	var existingSession entity.Session
	if err := json.Unmarshal(sessionJSON, &existingSession); err != nil {
		return &entity.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

func (that *memorySession) GetLast(ctx context.Context) (*entity.Session, error) {
	that.mu.RLock()
	lastID := that.lastID
	that.mu.RUnlock()

	if lastID == "" {
		return &entity.Session{}, ErrSessionNotFound
	}

	return that.GetByID(ctx, lastID)
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return ErrSessionNotFound
	}

	delete(that.sessions, id)
	if that.lastID == id {
		that.lastID = ""
	}

	return nil
}
