package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/tempad/internal/api/fantasy"
	"github.com/omarshaarawi/tempad/internal/api/fpl"
	"github.com/omarshaarawi/tempad/internal/bot"
	"github.com/omarshaarawi/tempad/internal/config"
	"github.com/omarshaarawi/tempad/internal/logger"
	"github.com/omarshaarawi/tempad/internal/repository/memory"
	"github.com/omarshaarawi/tempad/internal/scheduler"
	"github.com/omarshaarawi/tempad/internal/server"
	"github.com/omarshaarawi/tempad/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	logger.New(os.Stdout, cfg.LogLevel)

	fplClient := fpl.NewClient(cfg.FPLAPI)
	fplAPI := fpl.NewAPI(fplClient)

	repo := memory.NewRepository()
	fantasyAPI := fantasy.NewAPI(fplAPI, repo, cfg.FPLAPI.BootstrapTTL)
	timelineService := service.NewTimelineService(fantasyAPI, fantasyAPI)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sendMessage func(string) error
	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, timelineService)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("Telegram bot disabled, TELEGRAM_TOKEN not set")
	}

	sched, err := scheduler.NewScheduler(cfg, fantasyAPI, timelineService, sendMessage)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := server.New(cfg.Server.Addr, timelineService, fantasyAPI)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
