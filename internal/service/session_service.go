package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/repository"
)

// SessionInfo is the payload of GET /v1/session.
type SessionInfo struct {
	User    UserView    `json:"user"`
	Session SessionView `json:"session"`
}

// SessionView exposes the non-secret parts of a session row.
type SessionView struct {
	ID        string `json:"id"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

// SessionService reads back the state of the caller's session.
type SessionService struct {
	sessions repository.SessionStore
	users    repository.UserStore
	profiles repository.ProfileStore
}

func NewSessionService(sessions repository.SessionStore, users repository.UserStore,
	profiles repository.ProfileStore) *SessionService {
	return &SessionService{sessions: sessions, users: users, profiles: profiles}
}

// Info returns the user and session bound to sessionID. A dead session is
// ErrUnauthorized; a suspended owner is ErrForbidden.
func (s *SessionService) Info(ctx context.Context, sessionID string) (SessionInfo, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionInfo{}, ErrUnauthorized
		}
		return SessionInfo{}, err
	}
	if !sess.Live(time.Now().UTC()) {
		return SessionInfo{}, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionInfo{}, ErrUnauthorized
		}
		return SessionInfo{}, err
	}
	if user.Status != model.UserStatusActive {
		return SessionInfo{}, ErrForbidden
	}

	var profile *model.Profile
	if p, err := s.profiles.GetByUserID(ctx, user.ID); err == nil {
		profile = &p
	}

	return SessionInfo{
		User: NewUserView(user, profile),
		Session: SessionView{
			ID:        sess.ID,
			ExpiresAt: sess.ExpiresAt.UTC().Format(time.RFC3339),
			CreatedAt: sess.CreatedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}
