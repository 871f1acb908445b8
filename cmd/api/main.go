package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/adapter/chromedp_scraper"
	"github.com/user/book-classifier/internal/adapter/gemini"
	"github.com/user/book-classifier/internal/adapter/googlebooks"
	"github.com/user/book-classifier/internal/adapter/postgres"
	redis_adapter "github.com/user/book-classifier/internal/adapter/redis"
	"github.com/user/book-classifier/internal/adapter/sqlite"
	"github.com/user/book-classifier/internal/delivery/http/handler"
	"github.com/user/book-classifier/internal/delivery/http/router"
	"github.com/user/book-classifier/internal/repository"
	"github.com/user/book-classifier/internal/usecase"
	"github.com/user/book-classifier/pkg/config"
	"github.com/user/book-classifier/pkg/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	checks := map[string]handler.Pinger{}

	// --- History store: PostgreSQL when configured, SQLite otherwise ---
	var (
		analysisRepo     repository.AnalysisRepository
		failedLookupRepo repository.FailedLookupRepository
	)
	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal("unable to connect to database", zap.Error(err))
		}
		defer dbpool.Close()
		if err := postgres.Migrate(ctx, dbpool); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
		analysisRepo = postgres.NewAnalysisRepo(dbpool)
		failedLookupRepo = postgres.NewFailedLookupRepo(dbpool)
		log.Info("postgres history store ready")
	} else {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal("unable to open sqlite store", zap.String("path", cfg.SQLitePath), zap.Error(err))
		}
		defer store.Close()
		analysisRepo = store
		failedLookupRepo = store
		log.Info("sqlite history store ready", zap.String("path", cfg.SQLitePath))
	}
	checks["database"] = analysisRepo

	// --- Result cache ---
	var cache repository.ResultCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis not reachable, continuing with cache errors logged", zap.Error(err))
		}
		redisCache := redis_adapter.NewCacheRepo(rdb)
		cache = redisCache
		checks["cache"] = redisCache
	} else {
		log.Info("result cache disabled")
	}

	// --- Adapters ---
	metadata := googlebooks.NewClient(&http.Client{Timeout: 15 * time.Second}, cfg.GoogleBooksURL, cfg.GoogleBooksAPIKey)

	scraper := chromedp_scraper.NewChromedpScraper(chromedp_scraper.Options{
		PageLoadTimeout: time.Duration(cfg.ScrapeTimeout) * time.Second,
		RenderWait:      time.Duration(cfg.ScrapeRenderWait) * time.Second,
		ScrollWait:      time.Duration(cfg.ScrapeScrollWait) * time.Second,
		MaxConcurrency:  cfg.ScrapeConcurrency,
	}, log)
	defer scraper.Close()

	var classifier repository.LevelClassifier
	gem, err := gemini.NewClassifier(ctx, cfg.GoogleAPIKey, cfg.GeminiModel, cfg.GeminiMaxRetries, log)
	if err != nil {
		log.Warn("classifier unavailable, analyses will use the fallback verdict", zap.Error(err))
		classifier = gemini.Unconfigured{Reason: err}
	} else {
		defer gem.Close()
		classifier = gem
	}

	// --- Use Cases ---
	analyzer := usecase.NewAnalyzer(usecase.AnalyzerDeps{
		Metadata:     metadata,
		Preview:      scraper,
		Classifier:   classifier,
		Cache:        cache,
		AnalysisRepo: analysisRepo,
		FailedLookup: failedLookupRepo,
		CacheTTL:     cfg.CacheTTLDuration(),
	}, log)
	history := usecase.NewHistory(analysisRepo)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(analyzer, history, checks, log)
	httpRouter := router.New(apiHandler, router.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		RequestTimeout: cfg.APITimeoutDuration(),
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.APITimeoutDuration() + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
