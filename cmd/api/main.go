package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"area1337-backend/config"
	_ "area1337-backend/docs" // Important for Swagger
	v1 "area1337-backend/internal/delivery/http/v1"
	"area1337-backend/internal/domain"
	"area1337-backend/internal/repository/markdown"
	"area1337-backend/internal/repository/postgres"
	"area1337-backend/internal/usecase"
	"area1337-backend/pkg/database"
	"area1337-backend/pkg/email"
	"area1337-backend/pkg/logger"
	"area1337-backend/pkg/redis"
	"area1337-backend/pkg/security"
	"area1337-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

// @title           Area 1337 Website API
// @version         1.0
// @description     Contact form relay, blog feed and product catalog for the Area 1337 website.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.GinMode)
	gin.SetMode(cfg.GinMode)
	env := "development"
	if cfg.IsProduction() {
		env = "production"
	}
	secLogger := security.InitSecurityLogger("area1337-backend", env)
	defer func() { _ = secLogger.Sync() }()
	logger.Log.Info("Starting area1337 backend", "port", cfg.Port)

	// 3. Setup Redis (optional)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		}
	}
	defer func() { _ = redis.Close() }()

	// 4. Setup Content Repository
	var dbPool *pgxpool.Pool
	var postRepo domain.PostRepository
	if cfg.ContentDatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbPool, err = database.NewPostgresConnection(ctx, cfg.ContentDatabaseURL)
		cancel()
		if err != nil {
			logger.Log.Error("Failed to connect to content database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		postRepo = postgres.NewPostRepository(dbPool)
		logger.Log.Info("Serving blog posts from Postgres")
	} else {
		blogDir := filepath.Join(cfg.ContentDir, "blog")
		postRepo = markdown.NewPostRepository(blogDir)
		logger.Log.Info("Serving blog posts from markdown", "dir", blogDir)
	}

	// 5. Setup Email Client
	emailOpts := []email.Option{email.WithEndpoint(cfg.BrevoAPIURL)}
	if cfg.BrevoRatePerSecond > 0 {
		emailOpts = append(emailOpts, email.WithRateLimit(rate.NewLimiter(rate.Limit(cfg.BrevoRatePerSecond), 5)))
	}
	brevo := email.NewBrevoClient(emailOpts...)

	// 6. Setup UseCases
	blogUC := usecase.NewBlogUsecase(postRepo)
	feedUC := usecase.NewFeedUsecase(blogUC, usecase.FeedConfig{
		Title:       cfg.SiteTitle + " Blog",
		Description: cfg.SiteDescription,
		SiteURL:     cfg.SiteURL,
		Language:    "en-gb",
	})
	catalogUC := usecase.NewCatalogUsecase(usecase.SiteConfig{
		Title:       cfg.SiteTitle,
		Description: cfg.SiteDescription,
		URL:         cfg.SiteURL,
	})
	contactUC := usecase.NewContactUsecase(brevo, config.NewEnvSecrets(), validation.New(), usecase.ContactMailConfig{
		Sender:    email.Address{Name: cfg.ContactSenderName, Email: cfg.ContactSenderEmail},
		Recipient: email.Address{Name: cfg.ContactRecipientName, Email: cfg.ContactRecipientEmail},
	})
	healthUC := usecase.NewHealthUsecase(postRepo, redis.Status)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		BlogUC:    blogUC,
		FeedUC:    feedUC,
		CatalogUC: catalogUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// In-flight relays get the same budget as the Brevo client timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
