package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"quickthumb/internal/cache"
	"quickthumb/internal/config"
	"quickthumb/internal/db"
	"quickthumb/internal/handler"
	"quickthumb/internal/model"
	"quickthumb/internal/provider"
	"quickthumb/internal/repository"
	"quickthumb/internal/router"
	"quickthumb/internal/service"
	"quickthumb/internal/storage"
)

// @title QuickThumb API
// @version 1.0
// @description Thumbnail generation backend with session auth, credit accounting and checkout.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	// .env is optional; real deployments use exported variables
	_ = godotenv.Load()
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Thumbnail{},
		&model.WebhookEvent{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	thumbnailRepo := repository.NewThumbnailRepository(gormDB)
	eventRepo := repository.NewWebhookEventRepository(gormDB)

	// External collaborators
	identityClient := provider.NewIdentityClient(cfg.IdentityURL)
	imageGen := provider.NewImageGenClient(cfg.ImageGenURL, cfg.ImageGenKey, cfg.ImageGenModel)

	var artifacts storage.ArtifactStore
	if cfg.ImagesDir != "" {
		artifacts, err = storage.NewDiskStore(cfg.ImagesDir)
		if err != nil {
			log.Fatalf("artifact store init: %v", err)
		}
		log.Printf("artifacts stored under %s, served at %s", cfg.ImagesDir, storage.PublicImagePath)
	} else {
		artifacts = storage.NewInlineStore()
		log.Println("artifacts returned inline as data URIs")
	}

	var settler service.Settler
	if cfg.StripeKey != "" {
		settler = service.NewStripeSettler(cfg.StripeKey, cfg.FrontendURL)
		log.Println("billing: live checkout enabled")
	} else {
		settler = service.NewMockSettler(userRepo, cacheClient, cfg.FrontendURL)
		log.Println("billing: no payment key configured, credits granted immediately")
	}
	if cfg.StripeWebhookSecret == "" {
		log.Println("billing: no webhook signing secret, accepting unsigned events")
	}

	// Services
	authService := service.NewAuthService(userRepo, sessionRepo, identityClient, cacheClient)
	generationService := service.NewGenerationService(userRepo, thumbnailRepo, imageGen, artifacts, cacheClient)
	billingService := service.NewBillingService(userRepo, eventRepo, settler, cacheClient, cfg.StripeWebhookSecret)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	generationHandler := handler.NewGenerationHandler(generationService)
	billingHandler := handler.NewBillingHandler(billingService)

	router.Register(e, cfg, authService, authHandler, generationHandler, billingHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
