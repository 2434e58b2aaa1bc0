package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/playerbase/player-api/internal/auth"
	"github.com/playerbase/player-api/internal/model"
)

type stubSessions struct {
	sessions map[string]model.Session
}

func (s *stubSessions) Create(_ context.Context, userID string) (model.Session, error) {
	return model.Session{}, nil
}

func (s *stubSessions) GetByID(_ context.Context, id string) (model.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, sql.ErrNoRows
	}
	return sess, nil
}

func (s *stubSessions) Invalidate(context.Context, string) (int64, error)  { return 1, nil }
func (s *stubSessions) InvalidateAllForUser(context.Context, string) error { return nil }

func liveSession(id string) model.Session {
	return model.Session{
		ID:        id,
		UserID:    "user-1",
		Status:    model.SessionStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func deadSession(id string) model.Session {
	s := liveSession(id)
	s.Status = model.SessionStatusInactive
	return s
}

func newCodec() *auth.Codec {
	return auth.NewCodec("access-secret", "refresh-secret", "player-api", "player-client", 15, 7)
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestAuthAcceptsLiveSession(t *testing.T) {
	codec := newCodec()
	sessions := &stubSessions{sessions: map[string]model.Session{"sess-1": liveSession("sess-1")}}
	token, err := codec.Issue(auth.KindAccess, "user-1", model.RolePlayer, "sess-1")
	require.NoError(t, err)

	rec, c := doRequest(t, Auth(codec, sessions), "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", c.Get(CtxUserID))
	require.Equal(t, model.RolePlayer, c.Get(CtxRole))
	require.Equal(t, "sess-1", c.Get(CtxSessionID))
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	codec := newCodec()
	sessions := &stubSessions{sessions: map[string]model.Session{}}

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		rec, _ := doRequest(t, Auth(codec, sessions), header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthRejectsRefreshTokenOnAccessRoutes(t *testing.T) {
	codec := newCodec()
	sessions := &stubSessions{sessions: map[string]model.Session{"sess-1": liveSession("sess-1")}}
	refresh, err := codec.Issue(auth.KindRefresh, "user-1", model.RolePlayer, "sess-1")
	require.NoError(t, err)

	rec, _ := doRequest(t, Auth(codec, sessions), "Bearer "+refresh)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	codec := newCodec()
	sessions := &stubSessions{sessions: map[string]model.Session{"sess-1": liveSession("sess-1")}}

	auth.NowFunc = func() time.Time { return time.Now().Add(-16 * time.Minute) }
	token, err := codec.Issue(auth.KindAccess, "user-1", model.RolePlayer, "sess-1")
	auth.NowFunc = time.Now
	require.NoError(t, err)

	rec, _ := doRequest(t, Auth(codec, sessions), "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsDeadSession(t *testing.T) {
	codec := newCodec()
	sessions := &stubSessions{sessions: map[string]model.Session{"sess-1": deadSession("sess-1")}}
	token, err := codec.Issue(auth.KindAccess, "user-1", model.RolePlayer, "sess-1")
	require.NoError(t, err)

	rec, _ := doRequest(t, Auth(codec, sessions), "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAllowDeadAcceptsDeadSession(t *testing.T) {
	codec := newCodec()
	sessions := &stubSessions{sessions: map[string]model.Session{"sess-1": deadSession("sess-1")}}
	token, err := codec.Issue(auth.KindAccess, "user-1", model.RolePlayer, "sess-1")
	require.NoError(t, err)

	rec, c := doRequest(t, AuthAllowDead(codec, sessions), "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "sess-1", c.Get(CtxSessionID))
}

func TestOptionalAuth(t *testing.T) {
	codec := newCodec()
	sessions := &stubSessions{sessions: map[string]model.Session{"sess-1": liveSession("sess-1")}}
	token, err := codec.Issue(auth.KindAccess, "user-1", model.RolePlayer, "sess-1")
	require.NoError(t, err)

	// Valid credentials are attached.
	rec, c := doRequest(t, OptionalAuth(codec, sessions), "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", c.Get(CtxUserID))

	// No credentials still pass, anonymously.
	rec, c = doRequest(t, OptionalAuth(codec, sessions), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, c.Get(CtxUserID))

	// Garbage credentials also pass anonymously rather than failing.
	rec, c = doRequest(t, OptionalAuth(codec, sessions), "Bearer junk")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, c.Get(CtxUserID))
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	run := func(role any) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(CtxRole, role)
		}
		handler := RequireRole(model.RoleModerator, model.RoleAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))
		return rec.Code
	}

	require.Equal(t, http.StatusOK, run(model.RoleAdmin))
	require.Equal(t, http.StatusOK, run(model.RoleModerator))
	require.Equal(t, http.StatusForbidden, run(model.RolePlayer))
	require.Equal(t, http.StatusForbidden, run(nil))
	require.Equal(t, http.StatusForbidden, run(42))
}
