// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	authhandler "taskdeck/internal/auth/handler"
	"taskdeck/internal/auth/password"
	authservice "taskdeck/internal/auth/service"
	"taskdeck/internal/auth/session"
	tokenstore "taskdeck/internal/auth/store/token"
	userstore "taskdeck/internal/auth/store/user"
	"taskdeck/internal/platform/config"
	"taskdeck/internal/platform/httpserver"
	"taskdeck/internal/platform/logger"
	"taskdeck/internal/platform/metrics"
	"taskdeck/internal/platform/postgres"
	"taskdeck/internal/platform/redis"
	taskhandler "taskdeck/internal/task/handler"
	taskservice "taskdeck/internal/task/service"
	taskstore "taskdeck/internal/task/store"
	httptransport "taskdeck/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	cache, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	m := metrics.New()

	hasher, err := password.NewHasher(password.DefaultParams())
	if err != nil {
		log.Error("hasher configuration invalid", "error", err)
		os.Exit(1)
	}

	sessions := session.NewManager(tokenstore.NewRedis(cache.Client), session.Config{
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})

	auth := authservice.New(
		userstore.NewPostgres(db),
		hasher,
		sessions,
		authservice.WithLogger(log),
		authservice.WithMetrics(m),
	)
	tasks := taskservice.New(taskstore.NewPostgres(db), log)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  m,
		Auth:     authhandler.New(auth, log),
		Tasks:    taskhandler.New(tasks, log),
		Resolver: sessions,
		Health: func() error {
			if err := db.Ping(); err != nil {
				return err
			}
			return cache.Health(context.Background())
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting taskdeck", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
