package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/auth"
	"github.com/playerbase/player-api/internal/config"
	"github.com/playerbase/player-api/internal/database"
	"github.com/playerbase/player-api/internal/handler"
	"github.com/playerbase/player-api/internal/payment"
	"github.com/playerbase/player-api/internal/queue"
	"github.com/playerbase/player-api/internal/repository"
	"github.com/playerbase/player-api/internal/router"
	"github.com/playerbase/player-api/internal/service"
	"github.com/playerbase/player-api/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.Env == "dev" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, caching and rate limiting disabled")
	}

	codec := auth.NewCodec(cfg.JWTAccessSecret, cfg.JWTRefreshSecret,
		cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTLMin, cfg.RefreshTTLDays)

	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	sessions := repository.NewSessionRepo(db)
	media := repository.NewMediaRepo(db)
	tags := repository.NewTagRepo(db)
	contacts := repository.NewContactRepo(db)
	reports := repository.NewReportRepo(db)
	boosts := repository.NewBoostRepo(db)

	presigner, err := storage.NewR2Presigner(context.Background(), storage.R2Config{
		Endpoint:        cfg.R2Endpoint,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		Bucket:          cfg.R2Bucket,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage setup failed")
	}

	payments := payment.NewClient(cfg.MPBaseURL, cfg.MPAccessToken, log)

	var events service.EventPublisher
	if cfg.AMQPURL != "" {
		pub := queue.NewPublisher(cfg.AMQPURL, log)
		defer pub.Close()
		events = pub
		go queue.StartConsumer(cfg.AMQPURL, log)
	} else {
		log.Warn().Msg("RABBITMQ_URL unset, event publishing disabled")
	}

	authSvc := service.NewAuthService(users, profiles, sessions, codec, cfg.BcryptCost, log)
	sessionSvc := service.NewSessionService(sessions, users, profiles)
	profileSvc := service.NewProfileService(profiles, media, presigner, log)
	playersSvc := service.NewPlayersService(profiles, media, log)
	tagsSvc := service.NewTagsService(tags, playersSvc, log)
	locationsSvc := service.NewLocationsService(profiles, playersSvc, log)
	contactSvc := service.NewContactService(contacts, profiles, events, log)
	reportSvc := service.NewReportService(reports, events, log)
	boostSvc := service.NewBoostService(boosts, profiles, users, payments, log)
	filesSvc := service.NewFilesService(presigner, media, events, log)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, sessionSvc, log),
		Me:       handler.NewMeHandler(profileSvc, log),
		Players:  handler.NewPlayersHandler(playersSvc, log),
		Browse:   handler.NewBrowseHandler(tagsSvc, locationsSvc, log),
		Contact:  handler.NewContactHandler(contactSvc, log),
		Reports:  handler.NewReportsHandler(reportSvc, log),
		Boost:    handler.NewBoostHandler(boostSvc, log),
		Files:    handler.NewFilesHandler(filesSvc, log),
		Webhooks: handler.NewWebhooksHandler(boostSvc, log),
	}, codec, sessions, rdb)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
