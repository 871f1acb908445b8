package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/delivery/web"
	"github.com/user/book-classifier/internal/frontend/client"
	"github.com/user/book-classifier/internal/frontend/page"
	"github.com/user/book-classifier/pkg/config"
	"github.com/user/book-classifier/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	api := client.New(cfg.APIURL, &http.Client{Timeout: cfg.APITimeoutDuration()})
	sessions := page.NewStore(api, cfg.SessionTTLDuration())

	server, err := web.NewServer(web.Options{
		Port:       cfg.WebPort,
		CoverHosts: cfg.CoverHostList(),
		SessionTTL: cfg.SessionTTLDuration(),
	}, sessions, log)
	if err != nil {
		log.Fatal("could not build web server", zap.Error(err))
	}

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()
	log.Info("web server started", zap.String("port", cfg.WebPort), zap.String("api_url", cfg.APIURL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
