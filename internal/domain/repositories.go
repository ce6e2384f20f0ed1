package domain

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Logger interface for logging
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}

// MessageSender is the part of the Telegram client needed to deliver messages
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// UserRepository tracks users that have started the bot
type UserRepository interface {
	// MarkStarted records a start and reports whether it is the user's first
	MarkStarted(ctx context.Context, userID int64, at time.Time) (bool, error)
	// EarliestStarted returns up to limit user IDs, oldest first
	EarliestStarted(ctx context.Context, limit int) ([]int64, error)
	CountStarted(ctx context.Context) (int64, error)
}

// AdminRepository manages the dynamic admin set. The owner is never stored here.
type AdminRepository interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	AddAdmin(ctx context.Context, userID int64) (bool, error)
	RemoveAdmin(ctx context.Context, userID int64) (bool, error)
	ListAdmins(ctx context.Context) ([]int64, error)
}

// GiveawayRepository persists giveaway records and their indexes.
// Writes spanning several keys are not guaranteed to be atomic by every implementation.
type GiveawayRepository interface {
	CreateDraft(ctx context.Context, g *Giveaway) error
	GetGiveaway(ctx context.Context, id string) (*Giveaway, error)
	ListActive(ctx context.Context) ([]string, error)
	ListDrafts(ctx context.Context) ([]string, error)
	ListAll(ctx context.Context, limit int) ([]string, error)
}
