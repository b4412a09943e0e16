package repository

import (
	"context"
	"errors"
	"widgetdesk/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, visitor_id, visitor_name, status, created_at, updated_at`

func scanSession(row pgx.Row) (*entities.ChatSession, error) {
	var s entities.ChatSession
	err := row.Scan(&s.ID, &s.UserID, &s.VisitorID, &s.VisitorName, &s.Status,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &s, nil
}

func (r *SessionRepository) collectSessions(rows pgx.Rows) ([]entities.ChatSession, error) {
	defer rows.Close()
	sessions := []entities.ChatSession{}
	for rows.Next() {
		var s entities.ChatSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.VisitorID, &s.VisitorName, &s.Status,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListByOwner returns all sessions for an owner, newest first.
func (r *SessionRepository) ListByOwner(ctx context.Context, userID string) ([]entities.ChatSession, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+sessionColumns+" FROM chat_sessions WHERE user_id = $1 ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return r.collectSessions(rows)
}

// ListByOwnerAndStatus filters on a status set, newest first.
func (r *SessionRepository) ListByOwnerAndStatus(ctx context.Context, userID string, statuses []entities.SessionStatus) ([]entities.ChatSession, error) {
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+` FROM chat_sessions
		WHERE user_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC`,
		userID, vals)
	if err != nil {
		return nil, mapPgError(err)
	}
	return r.collectSessions(rows)
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*entities.ChatSession, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+sessionColumns+" FROM chat_sessions WHERE id = $1", id)
	return scanSession(row)
}

func (r *SessionRepository) Insert(ctx context.Context, s *entities.ChatSession) (*entities.ChatSession, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = entities.SessionActive
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO chat_sessions (id, user_id, visitor_id, visitor_name, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+sessionColumns,
		s.ID, s.UserID, s.VisitorID, s.VisitorName, s.Status)
	return scanSession(row)
}

// Update changes only the columns supplied in upd; nil fields keep their
// stored value. The row must belong to userID.
func (r *SessionRepository) Update(ctx context.Context, userID string, upd *entities.ChatSessionUpdate) (*entities.ChatSession, error) {
	var status *string
	if upd.Status != nil {
		v := string(*upd.Status)
		status = &v
	}
	row := r.db.QueryRow(ctx, `
		UPDATE chat_sessions SET
			visitor_name = COALESCE($3, visitor_name),
			status       = COALESCE($4, status),
			updated_at   = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+sessionColumns,
		upd.ID, userID, upd.VisitorName, status)
	return scanSession(row)
}

const messageColumns = `id, session_id, sender, content, created_at`

// ListMessages returns a session's messages oldest first. Messages are
// append-only: the repository intentionally has no update or delete.
func (r *SessionRepository) ListMessages(ctx context.Context, sessionID string) ([]entities.ChatMessage, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+messageColumns+" FROM chat_messages WHERE session_id = $1 ORDER BY created_at ASC, id ASC",
		sessionID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	messages := []entities.ChatMessage{}
	for rows.Next() {
		var m entities.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *SessionRepository) InsertMessage(ctx context.Context, m *entities.ChatMessage) (*entities.ChatMessage, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (id, session_id, sender, content)
		VALUES ($1, $2, $3, $4)
		RETURNING `+messageColumns,
		m.ID, m.SessionID, m.Sender, m.Content)

	var out entities.ChatMessage
	err := row.Scan(&out.ID, &out.SessionID, &out.Sender, &out.Content, &out.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &out, nil
}
