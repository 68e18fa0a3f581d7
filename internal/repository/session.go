package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pocketarcade/tictactoe/internal/entity"
)

var ErrSessionNotFound = errors.New("session not found")

const lastSessionKey = "session:last"

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	GetLast(ctx context.Context) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	sessionKey := "session:" + session.ID
	if err = that.client.Set(ctx, sessionKey, sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	// the last-session pointer is what Resume picks up after a restart
	if err = that.client.Set(ctx, lastSessionKey, session.ID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set last session pointer: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	sessionKey := "session:" + id

	response, err := that.client.Get(ctx, sessionKey).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Session{}, ErrSessionNotFound
	}

	if err != nil {
		return &entity.Session{}, fmt.Errorf("failed to get session by id: %w", err)
	}

	var existingSession entity.Session
	if err = json.Unmarshal([]byte(response), &existingSession); err != nil {
		return &entity.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

func (that *dbSession) GetLast(ctx context.Context) (*entity.Session, error) {
	id, err := that.client.Get(ctx, lastSessionKey).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Session{}, ErrSessionNotFound
	}

	if err != nil {
		return &entity.Session{}, fmt.Errorf("failed to get last session pointer: %w", err)
	}

	return that.GetByID(ctx, id)
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	sessionKey := "session:" + id

	deleted, err := that.client.Del(ctx, sessionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}

	last, err := that.client.Get(ctx, lastSessionKey).Result()
	if err == nil && last == id {
		if err = that.client.Del(ctx, lastSessionKey).Err(); err != nil {
			return fmt.Errorf("failed to delete last session pointer: %w", err)
		}
	}

	return nil
}
