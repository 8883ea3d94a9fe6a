package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/finance-trivia-bot/internal/app"
	"github.com/aliskhannn/finance-trivia-bot/internal/config"
	"github.com/aliskhannn/finance-trivia-bot/internal/delivery/telegram"
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

	token, err := cfg.Token()
	if err != nil {
		lg.Fatal("telegram token", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core, err := app.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to build quiz engine", zap.Error(err))
	}
	defer core.Close()

	handler := telegram.NewHandler(bot, lg, core.Quiz, core.Resources, core.Translator)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(gctx) })
	g.Go(func() error { return core.Janitor.Start(gctx) })

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		lg.Error("bot stopped", zap.Error(err))
		return
	}

	lg.Info("shutdown signal received")
}
