package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/playerbase/player-api/internal/config"
)

func cacheCtx(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/players/:username")
	return c
}

func TestCacheKeySeparatesPathParams(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "path_query"}

	alice := cacheKeyFrom(cfg, cacheCtx("/v1/players/alice"))
	bob := cacheKeyFrom(cfg, cacheCtx("/v1/players/bob"))
	require.NotEqual(t, alice, bob)

	// Same URL keys the same entry.
	require.Equal(t, alice, cacheKeyFrom(cfg, cacheCtx("/v1/players/alice")))
}

func TestCacheKeyHonorsQueryStrategy(t *testing.T) {
	first := cacheCtx("/v1/players?limit=20")
	second := cacheCtx("/v1/players?limit=20&cursor=abc")

	withQuery := config.CacheConfig{Prefix: "cache", KeyStrategy: "path_query"}
	require.NotEqual(t, cacheKeyFrom(withQuery, first), cacheKeyFrom(withQuery, second))

	pathOnly := config.CacheConfig{Prefix: "cache", KeyStrategy: "path"}
	require.Equal(t, cacheKeyFrom(pathOnly, first), cacheKeyFrom(pathOnly, second))
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	c := cacheCtx("/v1/players/alice")
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))
	require.Empty(t, c.Response().Header().Get("X-Cache"))
}
