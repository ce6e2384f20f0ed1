package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/config"
	"github.com/ad/telegram-giveaway-bot/internal/domain"
	"github.com/ad/telegram-giveaway-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// BotHandler routes commands, callbacks and wizard text
type BotHandler struct {
	bot       TelegramClient
	users     domain.UserRepository
	admins    domain.AdminRepository
	giveaways domain.GiveawayRepository
	roles     *domain.RoleAuthority
	wizard    *AdminWizard
	config    *config.Config
	localizer locale.Localizer
	logger    domain.Logger
	now       func() time.Time
}

// NewBotHandler creates a new BotHandler with all dependencies
func NewBotHandler(
	b TelegramClient,
	users domain.UserRepository,
	admins domain.AdminRepository,
	giveaways domain.GiveawayRepository,
	roles *domain.RoleAuthority,
	wizard *AdminWizard,
	cfg *config.Config,
	localizer locale.Localizer,
	logger domain.Logger,
) *BotHandler {
	return &BotHandler{
		bot:       b,
		users:     users,
		admins:    admins,
		giveaways: giveaways,
		roles:     roles,
		wizard:    wizard,
		config:    cfg,
		localizer: localizer,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleUpdate dispatches one update. Returned errors are unexpected failures
// the caller reports; delivery problems are logged and swallowed.
func (h *BotHandler) HandleUpdate(ctx context.Context, update *models.Update) error {
	switch {
	case update == nil:
		return nil
	case update.Message != nil:
		return h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		return h.handleCallback(ctx, update.CallbackQuery)
	default:
		h.logger.Debug("ignoring update", "update_id", update.ID)
		return nil
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, msg *models.Message) error {
	if msg.Text == "" {
		return nil
	}

	chatID := msg.Chat.ID
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}

	if cmd, args, ok := parseCommand(msg.Text); ok {
		switch cmd {
		case "start":
			return h.handleStart(ctx, chatID, msg.From)
		case "ping":
			return h.send(ctx, chatID, localized(h.localizer, locale.Pong), nil)
		case "giveaway":
			return h.handleGiveaway(ctx, chatID)
		case "status":
			return h.handleStatus(ctx, chatID, userID)
		case "contact":
			return h.handleContact(ctx, chatID, msg.From, args)
		case "admin":
			return h.handleAdmin(ctx, chatID, userID)
		}
	}

	handled, err := h.wizard.HandleText(ctx, chatID, userID, msg.Text)
	if err != nil {
		h.logger.Error("wizard failed", "chat_id", chatID, "user_id", userID, "error", err)
		return err
	}
	if handled {
		return nil
	}

	if strings.HasPrefix(msg.Text, "/") {
		return h.send(ctx, chatID, localized(h.localizer, locale.UnknownCommand), nil)
	}
	return nil
}

// parseCommand splits "/cmd@bot args" into a lowercased command and trimmed args
func parseCommand(text string) (cmd string, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	head, rest := text[1:], ""
	if i := strings.IndexAny(head, " \t\n"); i >= 0 {
		head, rest = head[:i], head[i+1:]
	}
	head, _, _ = strings.Cut(head, "@")
	if head == "" {
		return "", "", false
	}
	return strings.ToLower(head), strings.TrimSpace(rest), true
}

func (h *BotHandler) handleStart(ctx context.Context, chatID int64, from *models.User) error {
	now := h.now()

	if from != nil && from.ID != 0 {
		firstSeen, err := h.users.MarkStarted(ctx, from.ID, now)
		if err != nil {
			return err
		}
		if firstSeen {
			h.logger.Info("new user started", "user_id", from.ID)
			safeSendHTML(ctx, h.bot, h.logger, h.config.StartLogChannelID, domain.Lines(
				domain.Bold(h.localizer.MustLocalize(locale.NewUserStartedTitle)),
				"",
				kvBlock(
					"userId", strconv.FormatInt(from.ID, 10),
					"username", username(h.localizer, from),
					"utc", domain.ISOTime(now),
				),
				userMention(h.localizer, from),
			))
		}
	}

	return h.send(ctx, chatID, domain.Lines(
		domain.Bold(h.localizer.MustLocalize(locale.WelcomeTitle)),
		"",
		localized(h.localizer, locale.WelcomeCommands),
		"",
		utcLine(h.localizer, now),
		footer(h.localizer),
	), nil)
}

func (h *BotHandler) handleGiveaway(ctx context.Context, chatID int64) error {
	ids, err := h.giveaways.ListActive(ctx)
	if err != nil {
		return err
	}
	now := h.now()

	switch len(ids) {
	case 0:
		return h.send(ctx, chatID, domain.Lines(
			domain.Bold(h.localizer.MustLocalize(locale.NoActiveGiveawayTitle)),
			"",
			localized(h.localizer, locale.NoActiveGiveawayBody),
			"",
			utcLine(h.localizer, now),
			footer(h.localizer),
		), nil)
	case 1:
		return h.send(ctx, chatID, h.giveawayCard(ctx, locale.ActiveGiveawayTitle, ids[0]), nil)
	default:
		return h.send(ctx, chatID, domain.Lines(
			domain.Bold(h.localizer.MustLocalize(locale.SelectGiveawayTitle)),
			"",
			localized(h.localizer, locale.SelectGiveawayBody),
			"",
			utcLine(h.localizer, now),
			footer(h.localizer),
		), giveawayPickerKeyboard(ids, cbUserViewPfx))
	}
}

// giveawayCard shows the ID and, when the record exists, its title
func (h *BotHandler) giveawayCard(ctx context.Context, titleID string, gid string) string {
	parts := []string{
		domain.Bold(h.localizer.MustLocalize(titleID)),
		"",
		localized(h.localizer, locale.GiveawayIDLabel) + " " + domain.Pre(gid),
	}

	g, err := h.giveaways.GetGiveaway(ctx, gid)
	switch {
	case err == nil:
		parts = append(parts, domain.Bold(h.localizer.MustLocalize(locale.GiveawayTitleLabel)), domain.Blockquote(g.Title))
	case !errors.Is(err, domain.ErrGiveawayNotFound):
		h.logger.Warn("failed to load giveaway", "gid", gid, "error", err)
	}

	return domain.Lines(append(parts, "", utcLine(h.localizer, h.now()), footer(h.localizer))...)
}

func (h *BotHandler) handleStatus(ctx context.Context, chatID int64, userID int64) error {
	if userID == 0 {
		return h.send(ctx, chatID, localized(h.localizer, locale.StatusNoUserID), nil)
	}

	ids, err := h.giveaways.ListActive(ctx)
	if err != nil {
		return err
	}
	now := h.now()

	if len(ids) == 0 {
		return h.send(ctx, chatID, domain.Lines(
			domain.Bold(h.localizer.MustLocalize(locale.StatusTitle)),
			"",
			localized(h.localizer, locale.StatusNoActive),
			"",
			utcLine(h.localizer, now),
			footer(h.localizer),
		), nil)
	}

	return h.send(ctx, chatID, domain.Lines(
		domain.Bold(h.localizer.MustLocalize(locale.StatusSelectTitle)),
		"",
		utcLine(h.localizer, now),
		footer(h.localizer),
	), giveawayPickerKeyboard(ids, cbUserStatusPfx))
}

func (h *BotHandler) handleContact(ctx context.Context, chatID int64, from *models.User, message string) error {
	now := h.now()

	if message == "" {
		return h.send(ctx, chatID, domain.Lines(
			domain.Bold(h.localizer.MustLocalize(locale.ContactUsageTitle)),
			"",
			localized(h.localizer, locale.ContactUsageBody),
			domain.Pre(h.localizer.MustLocalize(locale.ContactUsageExample)),
			"",
			utcLine(h.localizer, now),
			footer(h.localizer),
		), nil)
	}

	userID := "unknown"
	if from != nil {
		userID = strconv.FormatInt(from.ID, 10)
	}

	safeSendHTML(ctx, h.bot, h.logger, h.config.SupportChannelID, domain.Lines(
		domain.Bold(h.localizer.MustLocalize(locale.SupportMessageTitle)),
		"",
		kvBlock("userId", userID, "username", username(h.localizer, from), "utc", domain.ISOTime(now)),
		domain.Bold(h.localizer.MustLocalize(locale.SupportMessageLabel)),
		domain.Blockquote(message),
		"",
		userMention(h.localizer, from),
	))

	return h.send(ctx, chatID, domain.Lines(
		domain.Bold(h.localizer.MustLocalize(locale.ContactAckTitle)),
		"",
		localized(h.localizer, locale.ContactAckBody),
		"",
		utcLine(h.localizer, now),
		footer(h.localizer),
	), nil)
}

func (h *BotHandler) handleAdmin(ctx context.Context, chatID int64, userID int64) error {
	if !h.roles.RequireAdmin(ctx, chatID, userID) {
		return nil
	}
	return h.send(ctx, chatID, h.panel(locale.AdminPanelTitle, locale.AdminPanelBody), adminMainKeyboard(h.localizer))
}

// panel renders a titled admin screen
func (h *BotHandler) panel(titleID, bodyID string) string {
	return domain.Lines(
		domain.Bold(h.localizer.MustLocalize(titleID)),
		"",
		localized(h.localizer, bodyID),
		"",
		utcLine(h.localizer, h.now()),
	)
}

// callbackTarget identifies where a callback response goes
type callbackTarget struct {
	chatID    int64
	messageID int
	userID    int64
}

func (h *BotHandler) handleCallback(ctx context.Context, cb *models.CallbackQuery) error {
	if _, err := h.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cb.ID}); err != nil {
		h.logger.Debug("failed to answer callback", "callback_id", cb.ID, "error", err)
	}

	t := callbackTarget{chatID: cb.From.ID, userID: cb.From.ID}
	if m := cb.Message.Message; m != nil {
		t.chatID = m.Chat.ID
		t.messageID = m.ID
	} else if m := cb.Message.InaccessibleMessage; m != nil {
		t.chatID = m.Chat.ID
	}

	data := cb.Data
	h.logger.Debug("callback received", "chat_id", t.chatID, "user_id", t.userID, "data", data)

	switch {
	case strings.HasPrefix(data, cbUserViewPfx):
		gid := strings.TrimSpace(strings.TrimPrefix(data, cbUserViewPfx))
		return h.send(ctx, t.chatID, h.giveawayCard(ctx, locale.GiveawayDetailsTitle, gid), nil)
	case strings.HasPrefix(data, cbUserStatusPfx):
		gid := strings.TrimSpace(strings.TrimPrefix(data, cbUserStatusPfx))
		return h.send(ctx, t.chatID, h.giveawayCard(ctx, locale.StatusDetailsTitle, gid), nil)
	case data == cbWizardCancel:
		return h.handleWizardCancel(ctx, t)
	case data == cbAdminsAdd, data == cbAdminsRemove, data == cbAdminsList:
		return h.handleAdminManagementAction(ctx, t, data)
	case strings.HasPrefix(data, "a:"):
		return h.handleAdminCallback(ctx, t, data)
	}

	h.logger.Warn("unknown callback", "data", data, "user_id", t.userID)
	return nil
}

func (h *BotHandler) handleAdminCallback(ctx context.Context, t callbackTarget, data string) error {
	if !h.roles.RequireAdmin(ctx, t.chatID, t.userID) {
		return nil
	}

	switch data {
	case cbHome:
		return h.edit(ctx, t, h.panel(locale.AdminPanelTitle, locale.AdminPanelBody), adminMainKeyboard(h.localizer))
	case cbGiveaways:
		return h.edit(ctx, t, h.panel(locale.GiveawaysTitle, locale.GiveawaysBody), giveawaysKeyboard(h.localizer))
	case cbUsers:
		return h.edit(ctx, t, h.panel(locale.UsersTitle, locale.UsersBody), usersKeyboard(h.localizer))
	case cbWinners:
		return h.edit(ctx, t, h.panel(locale.WinnersTitle, locale.WinnersBody), winnersKeyboard(h.localizer))
	case cbMessaging:
		return h.edit(ctx, t, h.panel(locale.MessagingTitle, locale.MessagingBody), messagingKeyboard(h.localizer))
	case cbLogs:
		return h.edit(ctx, t, h.panel(locale.LogsTitle, locale.LogsBody), backKeyboard(h.localizer, cbHome))
	case cbStats:
		return h.handleStats(ctx, t)
	case cbSettings:
		return h.edit(ctx, t, h.panel(locale.SettingsTitle, locale.SettingsBody), settingsKeyboard(h.localizer))
	case cbAdmins:
		if !h.roles.IsOwner(t.userID) {
			return h.edit(ctx, t, h.panel(locale.AdminManagementTitle, locale.AdminManagementOwnerOnly), backKeyboard(h.localizer, cbHome))
		}
		return h.edit(ctx, t, h.panel(locale.AdminManagementTitle, locale.AdminManagementBody), adminManagementKeyboard(h.localizer))
	case cbCreate:
		if _, err := h.wizard.StartCreateGiveaway(ctx, t.chatID); err != nil {
			return err
		}
		return h.send(ctx, t.chatID, domain.Lines(
			domain.Bold(h.localizer.MustLocalize(locale.WizardCreateStep1Title)),
			"",
			localized(h.localizer, locale.WizardCreateTitlePrompt),
			domain.EscapeHTML(h.localizer.MustLocalizeWithTemplate(locale.WizardCreateTitleMinimum, strconv.Itoa(domain.MinTitleLength))),
			"",
			utcLine(h.localizer, h.now()),
		), nil)
	case cbNotice:
		if err := h.wizard.StartNotice(ctx, t.chatID); err != nil {
			return err
		}
		return h.edit(ctx, t, domain.Lines(
			domain.Bold(h.localizer.MustLocalize(locale.WizardNoticeTitle)),
			"",
			localized(h.localizer, locale.WizardNoticePrompt),
			"",
			localized(h.localizer, locale.WizardNoticeBatch),
			"",
			utcLine(h.localizer, h.now()),
		), cancelKeyboard(h.localizer))
	}

	if isPlaceholderAction(data) {
		return h.send(ctx, t.chatID, h.panel(locale.ComingSoonTitle, locale.ComingSoonBody), nil)
	}

	h.logger.Warn("unknown admin callback", "data", data, "user_id", t.userID)
	return nil
}

// isPlaceholderAction matches a:(g|u|w|m):* actions that have no implementation yet
func isPlaceholderAction(data string) bool {
	for _, prefix := range []string{"a:g:", "a:u:", "a:w:", "a:m:"} {
		if strings.HasPrefix(data, prefix) {
			return true
		}
	}
	return false
}

// handleAdminManagementAction serves the owner-only admin set actions
func (h *BotHandler) handleAdminManagementAction(ctx context.Context, t callbackTarget, data string) error {
	if !h.roles.IsOwner(t.userID) {
		h.logger.Warn("non-owner admin management attempt", "user_id", t.userID, "data", data)
		return nil
	}

	switch data {
	case cbAdminsAdd:
		if err := h.wizard.StartAddAdmin(ctx, t.chatID); err != nil {
			return err
		}
		return h.edit(ctx, t, h.panel(locale.WizardAddAdminTitle, locale.WizardAdminIDPrompt), cancelKeyboard(h.localizer))
	case cbAdminsRemove:
		if err := h.wizard.StartRemoveAdmin(ctx, t.chatID); err != nil {
			return err
		}
		return h.edit(ctx, t, h.panel(locale.WizardRemoveAdminTitle, locale.WizardAdminIDPrompt), cancelKeyboard(h.localizer))
	default:
		ids, err := h.admins.ListAdmins(ctx)
		if err != nil {
			return err
		}
		list := h.localizer.MustLocalize(locale.AdminListEmpty)
		if len(ids) > 0 {
			lines := make([]string, len(ids))
			for i, id := range ids {
				lines[i] = strconv.FormatInt(id, 10)
			}
			list = strings.Join(lines, "\n")
		}
		return h.edit(ctx, t, domain.Lines(
			domain.Bold(h.localizer.MustLocalize(locale.AdminListTitle)),
			"",
			domain.Pre(list),
			"",
			utcLine(h.localizer, h.now()),
		), backKeyboard(h.localizer, cbAdmins))
	}
}

func (h *BotHandler) handleStats(ctx context.Context, t callbackTarget) error {
	started, err := h.users.CountStarted(ctx)
	if err != nil {
		return err
	}
	admins, err := h.admins.ListAdmins(ctx)
	if err != nil {
		return err
	}
	drafts, err := h.giveaways.ListDrafts(ctx)
	if err != nil {
		return err
	}
	active, err := h.giveaways.ListActive(ctx)
	if err != nil {
		return err
	}

	body := h.localizer.MustLocalizeWithTemplate(locale.StatsBody,
		strconv.FormatInt(started, 10),
		strconv.Itoa(len(admins)),
		strconv.Itoa(len(drafts)),
		strconv.Itoa(len(active)),
	)
	return h.edit(ctx, t, domain.Lines(
		domain.Bold(h.localizer.MustLocalize(locale.StatsTitle)),
		"",
		domain.Pre(body),
		"",
		utcLine(h.localizer, h.now()),
	), backKeyboard(h.localizer, cbHome))
}

func (h *BotHandler) handleWizardCancel(ctx context.Context, t callbackTarget) error {
	if err := h.wizard.Cancel(ctx, t.chatID); err != nil {
		return err
	}
	return h.edit(ctx, t, h.panel(locale.WizardCancelledTitle, locale.WizardCancelledBody), backKeyboard(h.localizer, cbHome))
}

// send delivers a reply; delivery failures are logged, not returned
func (h *BotHandler) send(ctx context.Context, chatID int64, html string, markup *models.InlineKeyboardMarkup) error {
	var rm models.ReplyMarkup
	if markup != nil {
		rm = markup
	}
	if _, err := sendHTML(ctx, h.bot, h.logger, chatID, html, rm); err != nil {
		h.logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
	return nil
}

// edit replaces the callback message, falling back to a new message
func (h *BotHandler) edit(ctx context.Context, t callbackTarget, html string, markup *models.InlineKeyboardMarkup) error {
	var rm models.ReplyMarkup
	if markup != nil {
		rm = markup
	}
	if err := editOrSend(ctx, h.bot, h.logger, t.chatID, t.messageID, html, rm); err != nil {
		h.logger.Error("failed to deliver panel", "chat_id", t.chatID, "error", err)
	}
	return nil
}

// ReportError sends an escaped and truncated error report to the admin log
func (h *BotHandler) ReportError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	msg := truncateRunes(err.Error(), maxErrorReportLength)
	safeSendHTML(ctx, h.bot, h.logger, h.config.AdminLogChatID, domain.Lines(
		domain.Bold(h.localizer.MustLocalize(locale.BotErrorTitle)),
		"",
		domain.Pre(msg),
		utcLine(h.localizer, h.now()),
	))
}
