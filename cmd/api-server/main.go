package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"libraryhub/database"
	"libraryhub/internal/cache"
	"libraryhub/internal/config"
	"libraryhub/internal/http-api/handler"
	"libraryhub/internal/http-api/middleware"
	"libraryhub/internal/http-api/repository"
	"libraryhub/internal/http-api/service"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// 2. Connect to the database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	// 3. Redis summary cache; the API stays up without it
	var summaryCache *cache.SummaryCache
	if rdb, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPassword); err != nil {
		logger.Warn("redis unavailable, summary cache disabled", "error", err)
		summaryCache = cache.NewSummaryCache(nil, 0)
	} else {
		defer rdb.Close()
		summaryCache = cache.NewSummaryCache(rdb, cfg.SummaryCacheTTL())
	}

	// 4. Wire repositories, services, handlers
	bookRepo := repository.NewBookRepo(db)
	borrowRepo := repository.NewBorrowRepo(db)

	bookSvc := service.NewBookService(bookRepo, logger)
	borrowSvc := service.NewBorrowService(borrowRepo, summaryCache, logger)

	bookHandler := handler.NewBookHandler(bookSvc)
	borrowHandler := handler.NewBorrowHandler(borrowSvc)

	// 5. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Server is running")
	})

	api := r.Group("/api")
	bookHandler.RegisterRoutes(api.Group("/books"))
	borrowHandler.RegisterRoutes(api.Group("/borrow"))

	httpServer := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server running", "addr", httpServer)
	if err := r.Run(httpServer); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
