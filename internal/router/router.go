// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/playerbase/player-api/internal/auth"
	"github.com/playerbase/player-api/internal/config"
	"github.com/playerbase/player-api/internal/handler"
	"github.com/playerbase/player-api/internal/middleware"
	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/repository"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Me       *handler.MeHandler
	Players  *handler.PlayersHandler
	Browse   *handler.BrowseHandler
	Contact  *handler.ContactHandler
	Reports  *handler.ReportsHandler
	Boost    *handler.BoostHandler
	Files    *handler.FilesHandler
	Webhooks *handler.WebhooksHandler
}

// Register mounts every route. Public browse endpoints sit behind the Redis
// response cache; the token-bucket limiter wraps everything. Both degrade
// to pass-throughs when Redis is absent.
func Register(e *echo.Echo, h Handlers, codec *auth.Codec, sessions repository.SessionStore, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Auth flow.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/signup", h.Auth.Signup)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	// Logout still verifies the token but tolerates an already-dead session
	// so repeating it stays a no-op.
	authGroup.POST("/logout", h.Auth.Logout, middleware.AuthAllowDead(codec, sessions))
	authGroup.POST("/logout-all", h.Auth.LogoutAll, middleware.Auth(codec, sessions))

	// Public browse, cached.
	pub := e.Group("/v1", middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	pub.GET("/players", h.Players.List)
	pub.GET("/players/search", h.Players.List)
	pub.GET("/players/trending", h.Players.Trending)
	pub.GET("/players/:username", h.Players.ByUsername)
	pub.GET("/players/:username/media", h.Players.Media)
	pub.GET("/tags", h.Browse.ListTags)
	pub.GET("/tags/:slug/players", h.Browse.PlayersByTag)
	pub.GET("/locations/states", h.Browse.States)
	pub.GET("/locations/:state/cities", h.Browse.Cities)
	pub.GET("/locations/:state/:city/players", h.Browse.PlayersByLocation)
	pub.GET("/boost/plans", h.Boost.Plans)

	// Public writes, uncached.
	e.POST("/v1/contact", h.Contact.Create)
	e.POST("/v1/reports", h.Reports.Create, middleware.OptionalAuth(codec, sessions))
	e.POST("/v1/webhooks/mercadopago", h.Webhooks.MercadoPago)

	// Authenticated surface.
	me := e.Group("/v1", middleware.Auth(codec, sessions))
	me.GET("/session", h.Auth.Session)
	me.GET("/me", h.Me.Get)
	me.PATCH("/me", h.Me.Update)
	me.GET("/me/media", h.Me.ListMedia)
	me.POST("/me/media", h.Me.CreateMedia)
	me.PATCH("/me/media/:media_id", h.Me.UpdateMedia)
	me.DELETE("/me/media/:media_id", h.Me.DeleteMedia)
	me.POST("/me/avatar", h.Me.PresignAvatar)
	me.POST("/me/avatar/confirm", h.Me.ConfirmAvatar)
	me.POST("/me/boost/checkout", h.Boost.Checkout)
	me.GET("/me/boost", h.Boost.List)
	me.POST("/files/presign", h.Files.Presign)

	// Moderation surface.
	mod := e.Group("/v1", middleware.Auth(codec, sessions),
		middleware.RequireRole(model.RoleModerator, model.RoleAdmin))
	mod.POST("/uploads/callback", h.Files.Callback)
	mod.GET("/reports", h.Reports.ListOpen)
}
