package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yoockh/internhub/config"
	"github.com/yoockh/internhub/internal/api/handlers"
	"github.com/yoockh/internhub/internal/api/middleware"
	"github.com/yoockh/internhub/internal/api/routes"
	"github.com/yoockh/internhub/internal/cache"
	"github.com/yoockh/internhub/internal/logger"
	"github.com/yoockh/internhub/internal/models"
	pgrepo "github.com/yoockh/internhub/internal/repositories/postgres"
	"github.com/yoockh/internhub/internal/security"
	"github.com/yoockh/internhub/internal/services"
	"github.com/yoockh/internhub/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	log.Info("PostgreSQL connected")

	if err := config.PostgresDB.AutoMigrate(
		&models.User{},
		&models.Internship{},
		&models.Application{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	var listCache cache.Cache = cache.Noop{}
	var limiter *middleware.RedisLimiter
	if ok, err := config.InitRedis(); err != nil {
		log.Warnf("Redis init error, continuing without cache: %v", err)
	} else if ok {
		log.Info("Redis connected")
		listCache = cache.NewRedisCache(config.RedisClient)
		limiter = middleware.NewRedisLimiter(config.RedisClient)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	uploader, err := storage.NewLocalUploader(uploadDir)
	if err != nil {
		log.Fatalf("upload dir init error: %v", err)
	}

	tokens := security.NewTokenProvider(secret, 24*time.Hour)

	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	internshipRepo := pgrepo.NewInternshipRepo(config.PostgresDB)
	applicationRepo := pgrepo.NewApplicationRepo(config.PostgresDB)

	authSvc := services.NewAuthService(userRepo, tokens)
	internshipSvc := services.NewInternshipService(internshipRepo, applicationRepo, listCache)
	applicationSvc := services.NewApplicationService(applicationRepo, internshipRepo, uploader)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// uploaded resumes and certificates are served back by path
	r.Static("/uploads", uploadDir)

	routes.RegisterRoutes(r, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc),
		Internship:  handlers.NewInternshipHandler(internshipSvc),
		Application: handlers.NewApplicationHandler(applicationSvc),
		Tokens:      tokens,
		Limiter:     limiter,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
