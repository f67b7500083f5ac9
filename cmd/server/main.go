package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/event-rsvp/internal/config"
	"github.com/iliyamo/event-rsvp/internal/database"
	"github.com/iliyamo/event-rsvp/internal/handler"
	"github.com/iliyamo/event-rsvp/internal/middleware"
	"github.com/iliyamo/event-rsvp/internal/queue"
	"github.com/iliyamo/event-rsvp/internal/repository"
	"github.com/iliyamo/event-rsvp/internal/router"
	"github.com/iliyamo/event-rsvp/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, response cache and rate limiting disabled")
	}

	eventRepo := repository.NewEventRepo(db)
	rsvpRepo := repository.NewRSVPRepo(db)
	templateRepo := repository.NewTemplateRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	admission := service.NewAdmission(eventRepo, rsvpRepo)
	lifecycle := service.NewLifecycle(rsvpRepo)
	eventSvc := service.NewEventService(eventRepo)
	materializer := service.NewMaterializer(templateRepo, eventRepo)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicEvents := handler.NewPublicEventHandler(eventRepo, rsvpRepo)
	rsvpHandler := handler.NewRSVPHandler(admission)
	adminEvents := handler.NewAdminEventHandler(eventSvc, eventRepo, rsvpRepo)
	adminRSVPs := handler.NewAdminRSVPHandler(lifecycle)
	adminTemplates := handler.NewAdminTemplateHandler(templateRepo, materializer)

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler)
	router.RegisterPublic(e, publicEvents, rsvpHandler, cache, limit)
	router.RegisterAdmin(e, cfg.JWTSecret, adminEvents, adminRSVPs, adminTemplates)

	go func() {
		if err := queue.StartRSVPConsumer(); err != nil {
			log.Error().Err(err).Msg("rsvp consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
