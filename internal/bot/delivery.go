package bot

import (
	"context"
	"strings"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// rateLimitBackoff is how long to wait before the single retry after a 429
var rateLimitBackoff = time.Second

// sendHTML delivers an HTML message with link previews disabled.
// A rate-limited send is retried once.
func sendHTML(ctx context.Context, b TelegramClient, logger domain.Logger, chatID int64, html string, markup models.ReplyMarkup) (*models.Message, error) {
	params := &bot.SendMessageParams{
		ChatID:             chatID,
		Text:               html,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
		ReplyMarkup:        markup,
	}

	msg, err := b.SendMessage(ctx, params)
	if err == nil {
		return msg, nil
	}

	if !isRateLimitError(err) {
		return nil, err
	}

	logger.Info("rate limit hit, retrying send", "chat_id", chatID, "backoff", rateLimitBackoff.String())
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(rateLimitBackoff):
	}

	return b.SendMessage(ctx, params)
}

// safeSendHTML is sendHTML for destinations whose failure must not abort the caller
func safeSendHTML(ctx context.Context, b TelegramClient, logger domain.Logger, chatID int64, html string) bool {
	if _, err := sendHTML(ctx, b, logger, chatID, html, nil); err != nil {
		logger.Warn("message delivery failed", "chat_id", chatID, "error", err)
		return false
	}
	return true
}

// editOrSend replaces the text of messageID, sending a new message when editing is impossible
func editOrSend(ctx context.Context, b TelegramClient, logger domain.Logger, chatID int64, messageID int, html string, markup models.ReplyMarkup) error {
	if messageID != 0 {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:             chatID,
			MessageID:          messageID,
			Text:               html,
			ParseMode:          models.ParseModeHTML,
			LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
			ReplyMarkup:        markup,
		})
		if err == nil || isNotModifiedError(err) {
			return nil
		}
		logger.Debug("edit failed, sending new message", "chat_id", chatID, "message_id", messageID, "error", err)
	}

	_, err := sendHTML(ctx, b, logger, chatID, html, markup)
	return err
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "Too Many Requests") || strings.Contains(s, "retry after")
}

func isNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
