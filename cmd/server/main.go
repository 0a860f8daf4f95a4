package main

import (
	"log"
	"net/http"

	_ "mangahub/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"mangahub/internal/auth"
	"mangahub/internal/cache"
	"mangahub/internal/config"
	"mangahub/internal/db"
	"mangahub/internal/handler"
	"mangahub/internal/mail"
	"mangahub/internal/model"
	"mangahub/internal/repository"
	"mangahub/internal/router"
	"mangahub/internal/service"
)

// @title MangaHub API
// @version 1.0
// @description Manga reading platform API with catalog browsing, reading progress, favorites, ratings, comments, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Preferences{},
		&model.RefreshToken{},
		&model.PasswordReset{},
		&model.Series{},
		&model.Volume{},
		&model.Chapter{},
		&model.Page{},
		&model.Favorite{},
		&model.Rating{},
		&model.Comment{},
		&model.Progress{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewRefreshTokenRepository(gormDB)
	resetRepo := repository.NewPasswordResetRepository(gormDB)
	seriesRepo := repository.NewSeriesRepository(gormDB)
	chapterRepo := repository.NewChapterRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	progressRepo := repository.NewProgressRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	sessions := auth.NewSessionCache(cacheClient)

	mailer, err := mail.NewClient(cfg.SMTPURL, cfg.MailAddress, cfg.MailName, cfg.MailSkipTLS)
	if err != nil {
		log.Fatalf("mail init: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenRepo, jwtService, sessions)
	verifyService := service.NewVerificationService(userRepo, mailer, cfg.VerifyResendWindow, cfg.VerifyCodeTTL, cfg.VerifyDevBypass)
	resetService := service.NewPasswordResetService(userRepo, resetRepo, mailer, sessions, cfg.ResetTokenTTL)
	userService := service.NewUserService(userRepo, cacheClient)
	catalogService := service.NewCatalogService(seriesRepo, chapterRepo, ratingRepo, cacheClient)
	socialService := service.NewSocialService(favoriteRepo, ratingRepo, commentRepo, seriesRepo, chapterRepo)
	progressService := service.NewProgressService(progressRepo, chapterRepo, cacheClient)
	adminService := service.NewAdminService(userRepo, tokenRepo, sessions)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, resetService, verifyService, cfg.RefreshTokenTTL, cfg.SecureCookies)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	socialHandler := handler.NewSocialHandler(socialService)
	progressHandler := handler.NewProgressHandler(progressService)
	adminHandler := handler.NewAdminHandler(adminService, catalogService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		userHandler,
		catalogHandler,
		socialHandler,
		progressHandler,
		adminHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
