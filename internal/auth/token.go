// Package auth implements the signed token codec. Access and refresh tokens
// are compact HS256 JWTs carrying the user id, role and the id of the
// session they are bound to. Each kind is signed with its own secret, so a
// token issued as one kind never verifies as the other.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects which of the two token flavors is issued or verified.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// expiry, wrong issuer or audience, malformed structure, wrong kind. Callers
// never learn which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// NowFunc returns the current time. Tests override it to issue tokens in
// the past.
var NowFunc = time.Now

// Claims is the payload embedded in every token.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Codec issues and verifies token pairs. It is a pure function of its
// secrets; it performs no I/O.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewCodec builds a Codec. TTLs follow the platform contract: accessTTLMin
// minutes for access tokens, refreshTTLDays days for refresh tokens.
func NewCodec(accessSecret, refreshSecret, issuer, audience string, accessTTLMin, refreshTTLDays int) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		audience:      audience,
		accessTTL:     time.Duration(accessTTLMin) * time.Minute,
		refreshTTL:    time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

func (c *Codec) secret(kind Kind) []byte {
	if kind == KindRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

func (c *Codec) ttl(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a token of the given kind for the supplied identity. The
// issuer and audience are embedded at signing time and re-checked during
// verification.
func (c *Codec) Issue(kind Kind, userID, role, sessionID string) (string, error) {
	now := NowFunc().UTC()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl(kind))),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret(kind))
}

// IssuePair issues an access+refresh pair bound to the same session.
func (c *Codec) IssuePair(userID, role, sessionID string) (access, refresh string, err error) {
	access, err = c.Issue(KindAccess, userID, role, sessionID)
	if err != nil {
		return "", "", err
	}
	refresh, err = c.Issue(KindRefresh, userID, role, sessionID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// AccessTTLSeconds reports the access token lifetime for response payloads.
func (c *Codec) AccessTTLSeconds() int {
	return int(c.accessTTL / time.Second)
}

// Verify parses and validates a token of the given kind, returning its
// claims. Every failure collapses to ErrInvalidToken.
func (c *Codec) Verify(kind Kind, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret(kind), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return NowFunc().UTC() }),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
