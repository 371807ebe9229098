package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"booknook/internal/catalog"
	"booknook/internal/config"
	"booknook/internal/database"
	"booknook/internal/handler"
	"booknook/internal/language"
	"booknook/internal/repository"
	"booknook/internal/service"
	"booknook/internal/session"
)

func logLevel(cfg *config.Config) slog.Level {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	ctx := context.Background()

	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg)}))
	slog.SetDefault(logger)

	// Connect to the database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Connect to Redis (session store)
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	if cfg.RedisPassword != "" {
		redisOpts.Password = cfg.RedisPassword
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}

	// Load the ISO 639-2 code table once. A failure here is tolerated:
	// search results fall back to "N/A" for unresolved codes.
	languages := language.NewTable()
	if err := languages.Load(ctx, cfg.LanguageCodeListURL); err != nil {
		logger.Warn("could not load language code table", "error", err)
	} else {
		logger.Info("language code table loaded", "codes", languages.Len())
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	authService := service.NewAuthService(userRepo)
	bookService := service.NewBookService(bookRepo)

	sessions := session.NewManager(rdb, cfg.SessionSecret, cfg.SessionTTL, logger)

	catalogs := catalog.NewSearcher(
		catalog.NewGoogleBooksClient(cfg.GoogleBooksAPIURL, cfg.GoogleBooksAPIKey),
		catalog.NewOpenLibraryClient(cfg.OpenLibraryAPIURL, languages),
	)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.LoadHTMLGlob("web/templates/*.html")

	handler.RegisterRoutes(r,
		sessions,
		handler.NewAuthHandler(authService, sessions, cfg.SessionTTL),
		handler.NewBookHandler(bookService, sessions),
		handler.NewSearchHandler(catalogs),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	if cfg.IsDevelopment() {
		addr = fmt.Sprintf("127.0.0.1:%d", cfg.HTTPPort)
	}
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
