package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"trustrate/internal/config"
	"trustrate/internal/database"
	"trustrate/internal/domain/auth"
	"trustrate/internal/domain/company"
	"trustrate/internal/domain/fraud"
	"trustrate/internal/domain/review"
	"trustrate/internal/middleware"
	jwtsvc "trustrate/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&auth.User{},
		&company.Company{},
		&review.Review{},
		&review.History{},
		&fraud.AuditEntry{},
	); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	userRepo := auth.NewRepository(db)
	companyRepo := company.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	auditRepo := fraud.NewAuditRepository(db)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	companyHandler := company.NewHandler(companyRepo)

	fraudService := fraud.NewService(fraud.DefaultConfig(), reviewRepo, auditRepo)
	fraudHandler := fraud.NewHandler(fraudService)

	reviewService := review.NewService(reviewRepo, companyRepo, fraudService)
	reviewHandler := review.NewHandler(reviewService)

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		companyHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))

		moderation := v1.Group("/moderation")
		moderation.Use(middleware.JWTAuth(j), middleware.ModeratorOnly())

		reviewHandler.RegisterRoutes(v1, protected, moderation)
	}

	internal := r.Group("/internal/v1")
	internal.Use(middleware.InternalTokenAuth(cfg.InternalToken))
	{
		fraudHandler.RegisterRoutes(internal)
	}

	log.WithField("addr", cfg.ListenAddr).Info("starting API server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
