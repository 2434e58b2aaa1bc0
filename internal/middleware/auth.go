// Package middleware provides shared request processing for handlers.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/playerbase/player-api/internal/auth"
	"github.com/playerbase/player-api/internal/repository"
)

// Context keys set by the auth middleware. Handlers read them via c.Get.
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

var errUnauthorized = echo.Map{"error": "unauthorized"}

// Auth validates a Bearer access token and checks that its session is still
// active and unexpired, then injects user_id, role and session_id into the
// request context. Every failure mode yields the same 401 body so a caller
// cannot tell a bad signature from a revoked session.
func Auth(codec *auth.Codec, sessions repository.SessionStore) echo.MiddlewareFunc {
	return authWith(codec, sessions, true)
}

// AuthAllowDead is the logout variant: the token must still verify, but a
// session that was already invalidated passes through so logout stays
// idempotent.
func AuthAllowDead(codec *auth.Codec, sessions repository.SessionStore) echo.MiddlewareFunc {
	return authWith(codec, sessions, false)
}

func authWith(codec *auth.Codec, sessions repository.SessionStore, requireLive bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := bearerClaims(c, codec)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errUnauthorized)
			}

			if requireLive {
				sess, err := sessions.GetByID(c.Request().Context(), claims.SessionID)
				if err != nil || !sess.Live(time.Now().UTC()) {
					return c.JSON(http.StatusUnauthorized, errUnauthorized)
				}
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxSessionID, claims.SessionID)
			return next(c)
		}
	}
}

// OptionalAuth injects the caller's identity when a valid Bearer token with
// a live session is present and otherwise lets the request through
// anonymously. Used on public routes that record the reporter when known.
func OptionalAuth(codec *auth.Codec, sessions repository.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := bearerClaims(c, codec)
			if !ok {
				return next(c)
			}
			sess, err := sessions.GetByID(c.Request().Context(), claims.SessionID)
			if err != nil || !sess.Live(time.Now().UTC()) {
				return next(c)
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxSessionID, claims.SessionID)
			return next(c)
		}
	}
}

func bearerClaims(c echo.Context, codec *auth.Codec) (*auth.Claims, bool) {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	claims, err := codec.Verify(auth.KindAccess, raw)
	if err != nil {
		return nil, false
	}
	return claims, true
}
