package domain

import (
	"context"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RoleAuthority answers owner and admin questions for a user ID.
// It does not decide who may change the admin set; callers enforce owner-only actions.
type RoleAuthority struct {
	ownerID   int64
	admins    AdminRepository
	bot       MessageSender
	localizer locale.Localizer
	logger    Logger
	now       func() time.Time
}

// NewRoleAuthority creates a new RoleAuthority
func NewRoleAuthority(
	ownerID int64,
	admins AdminRepository,
	b MessageSender,
	localizer locale.Localizer,
	logger Logger,
) *RoleAuthority {
	return &RoleAuthority{
		ownerID:   ownerID,
		admins:    admins,
		bot:       b,
		localizer: localizer,
		logger:    logger,
		now:       time.Now,
	}
}

// IsOwner reports whether userID is the configured owner
func (r *RoleAuthority) IsOwner(userID int64) bool {
	return userID != 0 && userID == r.ownerID
}

// IsAdmin reports whether userID is the owner or a member of the admin set
func (r *RoleAuthority) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	if r.IsOwner(userID) {
		return true, nil
	}
	return r.admins.IsAdmin(ctx, userID)
}

// RequireAdmin checks admin rights and tells the user when access is denied.
// Store failures deny access.
func (r *RoleAuthority) RequireAdmin(ctx context.Context, chatID int64, userID int64) bool {
	ok, err := r.IsAdmin(ctx, userID)
	if err != nil {
		r.logger.Error("failed to check admin membership", "user_id", userID, "error", err)
		ok = false
	}
	if ok {
		return true
	}

	r.logger.Warn("unauthorized admin access attempt", "user_id", userID, "chat_id", chatID)

	text := Lines(
		Bold(r.localizer.MustLocalize(locale.AccessDeniedTitle)),
		"",
		EscapeHTML(r.localizer.MustLocalize(locale.AccessDeniedBody)),
		"",
		EscapeHTML(r.localizer.MustLocalizeWithTemplate(locale.TimeLine, HumanUTC(r.now()))),
	)
	_, err = r.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:             chatID,
		Text:               text,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
	})
	if err != nil {
		r.logger.Error("failed to send access denied message", "chat_id", chatID, "error", err)
	}

	return false
}
