package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bannedbooks/internal/config"
	"bannedbooks/internal/cover"
	"bannedbooks/internal/logging"
	"bannedbooks/internal/metrics"
	"bannedbooks/internal/session"
	"bannedbooks/internal/store"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		zap.NewExample().Fatal("cannot build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Fatal("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw, err := store.Open(ctx, cfg.DB.Driver, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.Timeout)
	if err != nil {
		logger.Fatal("cannot open database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer gw.Close()
	logger.Info("database connection OK", zap.String("driver", cfg.DB.Driver))

	a := &app{cfg: cfg, logger: logger, gw: gw, metrics: metrics.New()}

	if cfg.Redis.Enabled() {
		client, err := session.NewRedisClient(ctx, session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("cannot connect to redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		a.blacklist = session.NewRedisBlacklist(client)
	} else {
		logger.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	if cfg.Storage.Enabled() {
		s3, err := cover.NewS3Store(ctx, cover.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
		})
		if err != nil {
			logger.Fatal("cannot configure cover storage", zap.Error(err))
		}
		a.covers = s3
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      a.routes(ctx),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
}
