// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shiburizu/concerto-server/internal/cache"
	"github.com/shiburizu/concerto-server/internal/config"
	"github.com/shiburizu/concerto-server/internal/database"
	"github.com/shiburizu/concerto-server/internal/handlers"
	"github.com/shiburizu/concerto-server/internal/lobby"
	"github.com/shiburizu/concerto-server/internal/lookup"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.Production() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	names, err := lookup.LoadWordFilter(cfg.BannedWordsPath)
	if err != nil {
		logger.Fatalf("banned words: %v", err)
	}
	aliases, err := lookup.LoadAliases(cfg.AliasesPath)
	if err != nil {
		logger.Fatalf("aliases: %v", err)
	}
	logger.WithField("aliases", aliases.Len()).Info("lookup data loaded")

	var store lobby.Store = lobby.NewMemoryStore()
	if cfg.Store == "postgres" {
		pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("database: %v", err)
		}
		defer pool.Close()
		if err := database.EnsureSchema(ctx, pool); err != nil {
			logger.Fatalf("database: %v", err)
		}
		store = database.NewPostgresStore(pool)
	}

	var queue handlers.Publisher
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		queue = cache.NewQueue(rdb, cfg.AnnounceQueue)
	} else {
		logger.Warn("REDIS_ADDR not set; announcements disabled")
	}

	svc := lobby.NewService(store, names, aliases, lobby.Config{
		LivenessTimeout: cfg.LivenessTimeout,
		DefaultGame:     cfg.DefaultGame,
	}, lobby.WithLogger(logger))

	srv := handlers.NewServer(svc, queue, handlers.Options{
		AnnounceKey:    cfg.AnnounceKey,
		CurrentVersion: cfg.CurrentVersion,
		StatsListLimit: cfg.StatsListLimit,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewRouter(srv),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()
	logger.WithFields(logrus.Fields{"addr": server.Addr, "store": cfg.Store}).Info("listening")

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("failed to serve: %v", err)
		}
	case <-ctx.Done():
		logger.Info("terminating")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
