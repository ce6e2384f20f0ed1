package domain

import (
	"context"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// DefaultBroadcastMax bounds how many users one notice reaches
const DefaultBroadcastMax = 120

// Broadcaster delivers notices to a bounded sample of the earliest users.
// The cap keeps one invocation inside the webhook time budget.
type Broadcaster struct {
	users     UserRepository
	bot       MessageSender
	localizer locale.Localizer
	logger    Logger
	max       int
	now       func() time.Time
}

// NewBroadcaster creates a new Broadcaster; max <= 0 selects DefaultBroadcastMax
func NewBroadcaster(
	users UserRepository,
	b MessageSender,
	localizer locale.Localizer,
	logger Logger,
	max int,
) *Broadcaster {
	if max <= 0 {
		max = DefaultBroadcastMax
	}
	return &Broadcaster{
		users:     users,
		bot:       b,
		localizer: localizer,
		logger:    logger,
		max:       max,
		now:       time.Now,
	}
}

// Max returns the sample cap
func (b *Broadcaster) Max() int {
	return b.max
}

// BroadcastNotice sends text to up to Max earliest users.
// Per-recipient failures are counted and never stop the loop.
func (b *Broadcaster) BroadcastNotice(ctx context.Context, text string) BroadcastResult {
	result := BroadcastResult{Max: b.max}

	ids, err := b.users.EarliestStarted(ctx, b.max)
	if err != nil {
		b.logger.Error("failed to read broadcast sample", "error", err)
		return result
	}
	result.Sample = len(ids)

	html := Lines(
		Bold(b.localizer.MustLocalize(locale.NoticeTitle)),
		"",
		Blockquote(text),
		"",
		EscapeHTML(b.localizer.MustLocalizeWithTemplate(locale.TimeLine, HumanUTC(b.now()))),
	)

	for _, userID := range ids {
		_, err := b.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:             userID,
			Text:               html,
			ParseMode:          models.ParseModeHTML,
			LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
		})
		if err != nil {
			result.Failed++
			b.logger.Debug("notice delivery failed", "user_id", userID, "error", err)
			continue
		}
		result.Sent++
	}

	b.logger.Info("notice broadcast finished",
		"sent", result.Sent,
		"failed", result.Failed,
		"sample", result.Sample,
		"max", result.Max,
	)
	return result
}
