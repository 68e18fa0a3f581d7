package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pocketarcade/tictactoe/internal/entity"
)

// sqliteSession persists sessions in a local database file, so a sitting
// survives restarts without a redis server. Payloads are the same marshaled
// JSON the other repositories store.
type sqliteSession struct {
	conn *sql.DB
}

func NewSQLiteSessionRepository(conn *sql.DB) SessionRepository {
	return &sqliteSession{
		conn: conn,
	}
}

func (that *sqliteSession) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	query := `INSERT INTO sessions (id, payload) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`

	if _, err = that.conn.ExecContext(ctx, query, session.ID, sessionJSON); err != nil {
		return fmt.Errorf("can't save session: %w", err)
	}

	query = `INSERT INTO last_session (slot, session_id) VALUES (0, ?)
		ON CONFLICT(slot) DO UPDATE SET session_id = excluded.session_id`

	if _, err = that.conn.ExecContext(ctx, query, session.ID); err != nil {
		return fmt.Errorf("can't update last session pointer: %w", err)
	}

	return nil
}

func (that *sqliteSession) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	query := `SELECT payload FROM sessions WHERE id = ?`

	var sessionJSON []byte

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&sessionJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return &entity.Session{}, fmt.Errorf("can't find session: %w", err)
	}

	var existingSession entity.Session
	if err = json.Unmarshal(sessionJSON, &existingSession); err != nil {
		return &entity.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

func (that *sqliteSession) GetLast(ctx context.Context) (*entity.Session, error) {
	query := `SELECT session_id FROM last_session WHERE slot = 0`

	var id string

	err := that.conn.QueryRowContext(ctx, query).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return &entity.Session{}, fmt.Errorf("can't find last session pointer: %w", err)
	}

	return that.GetByID(ctx, id)
}

func (that *sqliteSession) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`

	result, err := that.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("can't delete session: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't count deleted sessions: %w", err)
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}

	query = `DELETE FROM last_session WHERE session_id = ?`

	if _, err = that.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("can't clear last session pointer: %w", err)
	}

	return nil
}
