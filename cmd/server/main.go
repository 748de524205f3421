package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interview-tracker/internal/api/renderer"
	"interview-tracker/internal/config"
	"interview-tracker/internal/health"
	"interview-tracker/internal/logger"
	"interview-tracker/internal/notify"
	"interview-tracker/internal/schedule"
	"interview-tracker/internal/server"
	"interview-tracker/internal/storage/postgres"
	"interview-tracker/internal/storage/redis"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// .env is a local-dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting interview tracker",
		zap.String("log_level", cfg.LogLevel),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("PostgreSQL connected successfully")

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.EnsureSchema(schemaCtx); err != nil {
		schemaCancel()
		log.Fatal("failed to ensure schema", zap.Error(err))
	}
	schemaCancel()

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	rendererClient := renderer.New(cfg.RendererBaseURL, cfg.RendererTimeout, log)
	log.Info("PDF renderer client created", zap.String("base_url", cfg.RendererBaseURL))

	manager := schedule.NewManager(store, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := health.NewMonitor(rendererClient, cache, cfg.HealthInterval, log)
	go monitor.Start(ctx)

	if cfg.ReminderEnabled() {
		log.Info("initializing Telegram reminders...")
		bot, err := tele.NewBot(tele.Settings{
			Token:  cfg.TelegramToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			log.Fatal("failed to create Telegram bot", zap.Error(err))
		}

		reminder := notify.New(bot, store, cache, cfg, log)
		go reminder.Start(ctx)

		log.Info("Telegram reminders enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	} else {
		log.Info("Telegram reminders disabled (no token)")
	}

	srv := server.New(cfg, store, cache, rendererClient, manager, monitor, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		log.Error("HTTP server stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")
	log.Info("interview tracker stopped")
}
