package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/finance-trivia-bot/internal/app"
	"github.com/aliskhannn/finance-trivia-bot/internal/config"
	api "github.com/aliskhannn/finance-trivia-bot/internal/delivery/http"
	"github.com/aliskhannn/finance-trivia-bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	key, err := cfg.Auth.Key()
	if err != nil {
		lg.Fatal("auth secret", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core, err := app.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to build quiz engine", zap.Error(err))
	}
	defer core.Close()

	auth := api.NewAuthService(key, cfg.Auth.TokenTTL)
	router := api.NewRouter(api.NewHandler(core.Quiz, core.Resources, auth, lg), api.RouterConfig{
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	srv := api.NewServer(cfg.HTTP.Addr, router, lg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return core.Janitor.Start(gctx) })

	if err := g.Wait(); err != nil {
		lg.Error("api stopped", zap.Error(err))
		return
	}

	lg.Info("shutdown complete")
}
