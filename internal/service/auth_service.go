package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/auth"
	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/repository"
	"github.com/playerbase/player-api/internal/utils"
)

// SignupInput carries the validated signup payload.
type SignupInput struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	State       string  `json:"state"`
	City        string  `json:"city"`
	CitySlug    *string `json:"city_slug,omitempty"`
}

// AuthService drives the session/token lifecycle: signup, login, refresh
// and logout. Sessions live in the database; tokens are stateless JWTs
// bound to a session id, so revoking the session revokes every token
// issued against it.
type AuthService struct {
	users      repository.UserStore
	profiles   repository.ProfileStore
	sessions   repository.SessionStore
	codec      *auth.Codec
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(users repository.UserStore, profiles repository.ProfileStore,
	sessions repository.SessionStore, codec *auth.Codec, bcryptCost int, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		profiles:   profiles,
		sessions:   sessions,
		codec:      codec,
		bcryptCost: bcryptCost,
		log:        log.With().Str("component", "auth").Logger(),
	}
}

// Signup registers a new account: uniqueness checks on email and username,
// then user+profile created atomically, then a fresh session with a token
// pair bound to it.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if taken {
		return AuthResult{}, &ConflictError{Field: "email"}
	}
	taken, err = s.profiles.UsernameExists(ctx, in.Username)
	if err != nil {
		return AuthResult{}, err
	}
	if taken {
		return AuthResult{}, &ConflictError{Field: "username"}
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return AuthResult{}, fmt.Errorf("%w: %s", ErrBadRequest, err)
		}
		return AuthResult{}, err
	}

	user, profile, err := s.users.CreateWithProfile(ctx,
		model.User{
			Email:        email,
			PasswordHash: hash,
			Role:         model.RolePlayer,
			Status:       model.UserStatusActive,
		},
		model.Profile{
			Username:    in.Username,
			DisplayName: in.DisplayName,
			State:       in.State,
			City:        in.City,
			CitySlug:    in.CitySlug,
			Status:      "active",
		})
	if err != nil {
		// The insert races against concurrent signups; map duplicate keys
		// to the same conflicts the pre-checks produce.
		if errors.Is(err, repository.ErrEmailExists) {
			return AuthResult{}, &ConflictError{Field: "email"}
		}
		if errors.Is(err, repository.ErrUsernameExists) {
			return AuthResult{}, &ConflictError{Field: "username"}
		}
		return AuthResult{}, err
	}

	return s.openSession(ctx, user, &profile)
}

// Login verifies credentials and opens a new session. Unknown email, wrong
// password and suspended account all collapse to ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return AuthResult{}, ErrUnauthorized
	}
	if user.Status != model.UserStatusActive {
		return AuthResult{}, ErrUnauthorized
	}

	profile := s.loadProfile(ctx, user.ID)
	return s.openSession(ctx, user, profile)
}

// Refresh rotates a session: the refresh token's session is atomically
// flipped to inactive and a new session with a new token pair replaces it.
// When two refreshes race on the same token the conditional invalidate lets
// only one through; the loser sees zero rows updated and gets a 401.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	claims, err := s.codec.Verify(auth.KindRefresh, refreshToken)
	if err != nil {
		return AuthResult{}, ErrUnauthorized
	}

	sess, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, err
	}
	if !sess.Live(time.Now().UTC()) {
		return AuthResult{}, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, err
	}
	if user.Status != model.UserStatusActive {
		return AuthResult{}, ErrUnauthorized
	}

	rotated, err := s.sessions.Invalidate(ctx, sess.ID)
	if err != nil {
		return AuthResult{}, err
	}
	if rotated == 0 {
		// Someone else rotated or logged out this session first.
		return AuthResult{}, ErrUnauthorized
	}

	profile := s.loadProfile(ctx, user.ID)
	return s.openSession(ctx, user, profile)
}

// Logout invalidates the session. It is idempotent: logging out an already
// inactive or unknown session still succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.Invalidate(ctx, sessionID); err != nil {
		return err
	}
	return nil
}

// LogoutAll invalidates every session owned by the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return s.sessions.InvalidateAllForUser(ctx, userID)
}

// openSession creates a session for the user and issues the pair bound to it.
func (s *AuthService) openSession(ctx context.Context, user model.User, profile *model.Profile) (AuthResult, error) {
	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	access, refresh, err := s.codec.IssuePair(user.ID, user.Role, sess.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		User: NewUserView(user, profile),
		Tokens: TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    s.codec.AccessTTLSeconds(),
		},
	}, nil
}

// loadProfile fetches the user's profile for response shaping. A missing
// profile is not an error here; the response simply omits it.
func (s *AuthService) loadProfile(ctx context.Context, userID string) *model.Profile {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("load profile failed")
		}
		return nil
	}
	return &p
}
