package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/logger"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.IsDev())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}

func run(cfg config.Config, lg *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()
	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		lg.Warnw("redis unavailable; cache disabled, rate limiting in-process", "error", err)
	} else {
		defer rdb.Close()
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb, lg)

	broker := config.LoadBrokerConfig()
	var events handler.EventPublisher
	if broker.Enabled {
		events = service.NewPublisher(broker, lg)
		consumer := &queue.AuditConsumer{URL: broker.URL, Dir: broker.AuditDir, Log: lg}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				lg.Errorw("movie consumer stopped", "error", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	router.UseCommon(e, lg)
	router.RegisterRoutes(e)
	h := handler.NewCatalogHandler(repository.NewMovieRepo(db), cache, events, lg)
	router.RegisterCatalog(e, h, router.CatalogOptions{
		RateLimit: middleware.NewTokenBucket(ctx, config.LoadRateLimitConfig(), rdb, lg),
		Cache:     cache.Middleware(),
		JWTSecret: cfg.JWTSecret,
	})

	addr := ":" + cfg.Port
	lg.Infow("listening", "addr", addr, "env", cfg.Env, "write_guard", cfg.JWTSecret != "", "broker", broker.Enabled)

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	lg.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	lg.Infow("stopped server", "addr", addr)
	return nil
}
