package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return NewCodec("access-secret", "refresh-secret", "player-api", "player-client", 15, 7)
}

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	c := newTestCodec()

	tok, err := c.Issue(KindAccess, "user-1", "player", "sess-1")
	require.NoError(t, err)

	claims, err := c.Verify(KindAccess, tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "player", claims.Role)
	require.Equal(t, "sess-1", claims.SessionID)
}

func TestKindIsolation(t *testing.T) {
	c := newTestCodec()

	access, err := c.Issue(KindAccess, "user-1", "player", "sess-1")
	require.NoError(t, err)
	refresh, err := c.Issue(KindRefresh, "user-1", "player", "sess-1")
	require.NoError(t, err)

	// An access token never verifies as a refresh token, and vice versa.
	_, err = c.Verify(KindRefresh, access)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = c.Verify(KindAccess, refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	c := newTestCodec()

	// Issue a token 16 minutes in the past so the 15 minute access TTL has
	// elapsed even though the signature is valid.
	NowFunc = func() time.Time { return time.Now().Add(-16 * time.Minute) }
	tok, err := c.Issue(KindAccess, "user-1", "player", "sess-1")
	require.NoError(t, err)
	NowFunc = time.Now
	defer func() { NowFunc = time.Now }()

	_, err = c.Verify(KindAccess, tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongIssuerRejected(t *testing.T) {
	other := NewCodec("access-secret", "refresh-secret", "other-api", "player-client", 15, 7)
	tok, err := other.Issue(KindAccess, "user-1", "player", "sess-1")
	require.NoError(t, err)

	_, err = newTestCodec().Verify(KindAccess, tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongAudienceRejected(t *testing.T) {
	other := NewCodec("access-secret", "refresh-secret", "player-api", "other-client", 15, 7)
	tok, err := other.Issue(KindAccess, "user-1", "player", "sess-1")
	require.NoError(t, err)

	_, err = newTestCodec().Verify(KindAccess, tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedTokenRejected(t *testing.T) {
	c := newTestCodec()
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := c.Verify(KindAccess, tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTamperedSignatureRejected(t *testing.T) {
	c := newTestCodec()
	tok, err := c.Issue(KindAccess, "user-1", "player", "sess-1")
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = c.Verify(KindAccess, tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuePairDistinctStrings(t *testing.T) {
	c := newTestCodec()
	access, refresh, err := c.IssuePair("user-1", "player", "sess-1")
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)
	require.Equal(t, 15*60, c.AccessTTLSeconds())
}
