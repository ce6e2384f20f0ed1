package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/bot"
	"github.com/ad/telegram-giveaway-bot/internal/config"
	"github.com/ad/telegram-giveaway-bot/internal/domain"
	"github.com/ad/telegram-giveaway-bot/internal/locale"
	"github.com/ad/telegram-giveaway-bot/internal/logger"
	"github.com/ad/telegram-giveaway-bot/internal/storage"

	"github.com/gin-gonic/gin"
	tgbot "github.com/go-telegram/bot"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration (.env is optional)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	log.Info("Starting Telegram Giveaway Bot", "log_level", cfg.LogLevel, "addr", cfg.HTTPAddr)

	localizer, err := locale.NewLocalizer(locale.NewLocale(cfg.Locale))
	if err != nil {
		log.Error("Failed to load translations", "locale", cfg.Locale, "error", err)
		os.Exit(1)
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Connect to Redis
	client, err := storage.OpenRedis(ctx, cfg.RedisURL, cfg.RedisToken)
	if err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() { _ = client.Close() }()
	log.Info("Redis connected")

	// Create repositories
	userRepo := storage.NewUserRepository(client, log)
	adminRepo := storage.NewAdminRepository(client, log)
	giveawayRepo := storage.NewGiveawayRepository(client, log)
	wizardStorage := storage.NewWizardStorage(client, cfg.WizardTTL, log)

	// Updates arrive through the webhook, so the client never polls
	b, err := tgbot.New(cfg.BotToken, tgbot.WithSkipGetMe())
	if err != nil {
		log.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}
	log.Info("Telegram bot created")

	roles := domain.NewRoleAuthority(cfg.OwnerID, adminRepo, b, localizer, log)
	broadcaster := domain.NewBroadcaster(userRepo, b, localizer, log, cfg.BroadcastMax)
	wizard := bot.NewAdminWizard(wizardStorage, adminRepo, giveawayRepo, broadcaster, b, cfg, localizer, log)
	handler := bot.NewBotHandler(b, userRepo, adminRepo, giveawayRepo, roles, wizard, cfg, localizer, log)

	log.Info("Bot handler created")

	if cfg.WebhookURL != "" {
		if _, err := b.SetWebhook(ctx, &tgbot.SetWebhookParams{
			URL:            cfg.WebhookURL,
			SecretToken:    cfg.WebhookSecret,
			AllowedUpdates: []string{"message", "callback_query"},
		}); err != nil {
			log.Error("Failed to register webhook", "url", cfg.WebhookURL, "error", err)
			os.Exit(1)
		}
		log.Info("Webhook registered", "url", cfg.WebhookURL)
	}

	gin.SetMode(gin.ReleaseMode)
	webhook := bot.NewWebhookServer(cfg, handler, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           webhook.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.HTTPAddr, "path", cfg.WebhookPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}

	log.Info("Bot stopped successfully")
}
