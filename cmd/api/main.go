package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/ujjwal0011/job-portal/internal/config"
	"github.com/ujjwal0011/job-portal/internal/database"
	"github.com/ujjwal0011/job-portal/internal/handlers"
	"github.com/ujjwal0011/job-portal/internal/middleware"
	"github.com/ujjwal0011/job-portal/internal/services"
	"github.com/ujjwal0011/job-portal/internal/storage"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger
	log := logrus.New()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	log.Info("Configuration loaded")

	// 3. Database
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database connected and migrated")

	// 4. Redis (optional; only the rate limiter needs it)
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Info("Redis connected")
	}

	// 5. Resume storage
	resumeStore, err := storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Fatalf("Failed to init resume storage: %v", err)
	}

	// 6. Services
	userService := services.NewUserService(db, resumeStore, cfg.JWTSecret, cfg.JWTExpiry)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db, resumeStore, cfg.AllowDuplicateApplications)
	llmService, err := services.NewLLMService(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to init LLM service: %v", err)
	}
	if llmService == nil {
		log.Warn("GEMINI_API_KEY not set; job extraction endpoint disabled")
	}

	// 7. Handlers
	userHandler := handlers.NewUserHandler(userService, cfg.CookieExpiry, cfg.IsProduction())
	jobHandler := handlers.NewJobHandler(jobService, llmService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)

	// 8. Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSAllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))
	}
	handlers.RegisterRoutes(router, db, cfg, userHandler, jobHandler, applicationHandler)

	// 9. Serve with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Infof("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server shutdown error: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Errorf("Redis close error: %v", err)
		}
	}
	log.Info("Server stopped")
}
