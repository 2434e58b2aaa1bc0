package model

import "time"

// Session status values. A session is created active and flips to inactive
// exactly once, on logout or when a refresh rotates it out. It never goes
// back to active; continuing requires a new session row.
const (
	SessionStatusActive   = "active"
	SessionStatusInactive = "inactive"
)

// Session models a row in the `sessions` table. It is the server-side unit
// of revocation that refresh tokens are checked against. SessionToken is an
// opaque random identifier, distinct from the JWTs bound to the session.
type Session struct {
	ID           string    // sessions.id
	UserID       string    // sessions.user_id
	SessionToken string    // sessions.session_token
	Status       string    // sessions.status
	ExpiresAt    time.Time // sessions.expires_at
	CreatedAt    time.Time // sessions.created_at
}

// Live reports whether the session can still authenticate requests.
func (s Session) Live(now time.Time) bool {
	return s.Status == SessionStatusActive && s.ExpiresAt.After(now)
}
