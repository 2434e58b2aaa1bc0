package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/playerbase/player-api/internal/model"
)

// sessionTTL is how long a session (and therefore its refresh token chain)
// stays usable after creation.
const sessionTTL = 7 * 24 * time.Hour

// SessionStore is the durable record of issued sessions. Invalidate flips a
// session to inactive only when it is still active and reports how many rows
// changed; invalidating an inactive or unknown session is a silent no-op so
// logout stays idempotent.
type SessionStore interface {
	Create(ctx context.Context, userID string) (model.Session, error)
	GetByID(ctx context.Context, id string) (model.Session, error)
	Invalidate(ctx context.Context, id string) (int64, error)
	InvalidateAllForUser(ctx context.Context, userID string) error
}

type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a fresh active session with a new opaque session token.
func (r *SessionRepo) Create(ctx context.Context, userID string) (model.Session, error) {
	now := time.Now().UTC()
	s := model.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionToken: uuid.NewString(),
		Status:       model.SessionStatusActive,
		ExpiresAt:    now.Add(sessionTTL),
		CreatedAt:    now,
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, session_token, status, expires_at, created_at) VALUES (?,?,?,?,?,?)",
		s.ID, s.UserID, s.SessionToken, s.Status, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return model.Session{}, err
	}
	return s, nil
}

// GetByID fetches a session by id. Missing sessions return sql.ErrNoRows.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,session_token,status,expires_at,created_at FROM sessions WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.UserID, &s.SessionToken, &s.Status, &s.ExpiresAt, &s.CreatedAt)
	return s, err
}

// Invalidate marks the session inactive only if it is currently active. The
// conditional update doubles as the rotation guard: of two concurrent
// refreshes against the same session, exactly one sees rows==1.
func (r *SessionRepo) Invalidate(ctx context.Context, id string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET status=? WHERE id=? AND status=?",
		model.SessionStatusInactive, id, model.SessionStatusActive)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// InvalidateAllForUser flips every active session owned by the user.
func (r *SessionRepo) InvalidateAllForUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET status=? WHERE user_id=? AND status=?",
		model.SessionStatusInactive, userID, model.SessionStatusActive)
	return err
}
