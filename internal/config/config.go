package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

var (
	ErrInvalidOwnerID          = errors.New("OWNER_ID must be a non-zero user ID")
	ErrInvalidBroadcastMax     = errors.New("BROADCAST_MAX must be positive")
	ErrInvalidWizardTTL        = errors.New("WIZARD_TTL must be positive")
	ErrInvalidWizardMaxAttempt = errors.New("WIZARD_MAX_ATTEMPTS must be non-negative")
)

// Config holds application configuration
type Config struct {
	BotToken string `env:"BOT_TOKEN,required,notEmpty"`
	OwnerID  int64  `env:"OWNER_ID,required,notEmpty"`

	// Destination chats for the operational logs
	StartLogChannelID int64 `env:"START_LOG_CHANNEL_ID,required,notEmpty"`
	SupportChannelID  int64 `env:"SUPPORT_CHANNEL_ID,required,notEmpty"`
	AdminLogChatID    int64 `env:"ADMIN_LOG_CHAT_ID,required,notEmpty"`

	RedisURL   string `env:"REDIS_URL,required,notEmpty"`
	RedisToken string `env:"REDIS_TOKEN"`

	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
	WebhookPath   string `env:"WEBHOOK_PATH" envDefault:"/api/bot"`
	WebhookURL    string `env:"WEBHOOK_URL"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`
	Locale   string `env:"LOCALE" envDefault:"en"`

	WizardTTL         time.Duration `env:"WIZARD_TTL" envDefault:"30m"`
	WizardMaxAttempts int           `env:"WIZARD_MAX_ATTEMPTS" envDefault:"0"` // 0 disables the cap
	BroadcastMax      int           `env:"BROADCAST_MAX" envDefault:"120"`
}

// Load loads configuration from the environment, reading .env first if present
func Load() (*Config, error) {
	// Missing .env is fine, variables may come from the platform
	_ = godotenv.Load()

	return Parse()
}

// Parse reads configuration from the current environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value constraints that struct tags cannot express
func (c *Config) Validate() error {
	if c.OwnerID == 0 {
		return ErrInvalidOwnerID
	}
	if c.BroadcastMax <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBroadcastMax, c.BroadcastMax)
	}
	if c.WizardTTL <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidWizardTTL, c.WizardTTL)
	}
	if c.WizardMaxAttempts < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWizardMaxAttempt, c.WizardMaxAttempts)
	}
	return nil
}
