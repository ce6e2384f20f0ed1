package bot

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/config"
	"github.com/ad/telegram-giveaway-bot/internal/domain"
	"github.com/ad/telegram-giveaway-bot/internal/locale"
	"github.com/ad/telegram-giveaway-bot/internal/storage"
)

var numericIDPattern = regexp.MustCompile(`^\d+$`)

// WizardStore persists the conversation state of a chat
type WizardStore interface {
	Get(ctx context.Context, chatID int64) (domain.WizardState, error)
	Set(ctx context.Context, chatID int64, w domain.WizardState) error
	Start(ctx context.Context, chatID int64, w domain.WizardState) error
	Delete(ctx context.Context, chatID int64) error
}

// AdminWizard drives the multi-step admin conversations.
// Every call rehydrates the state from the store; nothing is kept in memory between updates.
type AdminWizard struct {
	store       WizardStore
	admins      domain.AdminRepository
	giveaways   domain.GiveawayRepository
	broadcaster *domain.Broadcaster
	bot         TelegramClient
	config      *config.Config
	localizer   locale.Localizer
	logger      domain.Logger
	locks       *chatLocks
	now         func() time.Time
}

// NewAdminWizard creates a new wizard engine
func NewAdminWizard(
	store WizardStore,
	admins domain.AdminRepository,
	giveaways domain.GiveawayRepository,
	broadcaster *domain.Broadcaster,
	b TelegramClient,
	cfg *config.Config,
	localizer locale.Localizer,
	logger domain.Logger,
) *AdminWizard {
	return &AdminWizard{
		store:       store,
		admins:      admins,
		giveaways:   giveaways,
		broadcaster: broadcaster,
		bot:         b,
		config:      cfg,
		localizer:   localizer,
		logger:      logger,
		locks:       newChatLocks(),
		now:         time.Now,
	}
}

// StartAddAdmin begins the add-admin wizard, replacing any wizard in progress
func (w *AdminWizard) StartAddAdmin(ctx context.Context, chatID int64) error {
	return w.start(ctx, chatID, &domain.AddAdminWizard{})
}

// StartRemoveAdmin begins the remove-admin wizard
func (w *AdminWizard) StartRemoveAdmin(ctx context.Context, chatID int64) error {
	return w.start(ctx, chatID, &domain.RemoveAdminWizard{})
}

// StartNotice begins the notice broadcast wizard
func (w *AdminWizard) StartNotice(ctx context.Context, chatID int64) error {
	return w.start(ctx, chatID, &domain.SendNoticeWizard{})
}

// StartCreateGiveaway begins the giveaway wizard and reserves its ID
func (w *AdminWizard) StartCreateGiveaway(ctx context.Context, chatID int64) (string, error) {
	gid := domain.NewGiveawayID(w.now())
	if err := w.start(ctx, chatID, &domain.CreateGiveawayWizard{Step: domain.StepTitle, GiveawayID: gid}); err != nil {
		return "", err
	}
	return gid, nil
}

// Cancel drops the wizard of a chat
func (w *AdminWizard) Cancel(ctx context.Context, chatID int64) error {
	unlock := w.locks.lock(chatID)
	defer unlock()

	if err := w.store.Delete(ctx, chatID); err != nil {
		return err
	}
	w.logger.Info("wizard cancelled", "chat_id", chatID)
	return nil
}

func (w *AdminWizard) start(ctx context.Context, chatID int64, state domain.WizardState) error {
	unlock := w.locks.lock(chatID)
	defer unlock()

	if err := w.store.Start(ctx, chatID, state); err != nil {
		w.logger.Error("failed to start wizard", "chat_id", chatID, "type", state.Kind(), "error", err)
		return err
	}
	w.logger.Info("wizard started", "chat_id", chatID, "type", state.Kind())
	return nil
}

// HandleText feeds a text message to the wizard of chatID.
// It returns handled=false when the chat has no wizard, so the caller can continue routing.
func (w *AdminWizard) HandleText(ctx context.Context, chatID int64, userID int64, text string) (bool, error) {
	unlock := w.locks.lock(chatID)
	defer unlock()

	state, err := w.store.Get(ctx, chatID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}

	text = strings.TrimSpace(text)

	switch s := state.(type) {
	case *domain.AddAdminWizard:
		return true, w.handleAdminID(ctx, chatID, s, text, true)
	case *domain.RemoveAdminWizard:
		return true, w.handleAdminID(ctx, chatID, s, text, false)
	case *domain.SendNoticeWizard:
		return true, w.handleNotice(ctx, chatID, s, text)
	case *domain.CreateGiveawayWizard:
		switch s.Step {
		case domain.StepTitle:
			return true, w.handleTitle(ctx, chatID, s, text)
		case domain.StepDetails:
			return true, w.handleDetails(ctx, chatID, userID, s, text)
		}
	}

	return true, w.failCorrupt(ctx, chatID, state)
}

func (w *AdminWizard) handleAdminID(ctx context.Context, chatID int64, state domain.WizardState, text string, add bool) error {
	if !numericIDPattern.MatchString(text) {
		return w.reject(ctx, chatID, state, localized(w.localizer, locale.WizardNumericOnly))
	}
	targetID, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return w.reject(ctx, chatID, state, localized(w.localizer, locale.WizardNumericOnly))
	}

	logTitle, doneBody := locale.AdminAddedLogTitle, locale.AdminAddedBody
	switch {
	case add && targetID == w.config.OwnerID:
		// the owner is implicit and never stored in the admin set
		w.logger.Info("owner passed to add-admin, set unchanged", "chat_id", chatID, "user_id", targetID)
	case add:
		_, err = w.admins.AddAdmin(ctx, targetID)
	default:
		logTitle, doneBody = locale.AdminRemovedLogTitle, locale.AdminRemovedBody
		_, err = w.admins.RemoveAdmin(ctx, targetID)
	}
	if err != nil {
		return err
	}

	if err := w.store.Delete(ctx, chatID); err != nil {
		return err
	}

	now := w.now()
	w.adminLog(ctx, domain.Lines(
		domain.Bold(w.localizer.MustLocalize(logTitle)),
		"",
		kvBlock("userId", text, "utc", domain.ISOTime(now)),
	))

	w.reply(ctx, chatID, domain.Lines(
		domain.Bold(w.localizer.MustLocalize(locale.WizardDoneTitle)),
		"",
		localized(w.localizer, doneBody)+" "+domain.Pre(text),
		"",
		utcLine(w.localizer, now),
	))
	return nil
}

func (w *AdminWizard) handleNotice(ctx context.Context, chatID int64, state *domain.SendNoticeWizard, text string) error {
	if text == "" {
		return w.reject(ctx, chatID, state, localized(w.localizer, locale.WizardNoticeEmpty))
	}

	if err := w.store.Delete(ctx, chatID); err != nil {
		return err
	}

	res := w.broadcaster.BroadcastNotice(ctx, text)
	now := w.now()

	w.adminLog(ctx, domain.Lines(
		domain.Bold(w.localizer.MustLocalize(locale.NoticeSentLogTitle)),
		"",
		kvBlock(
			"sent", strconv.Itoa(res.Sent),
			"failed", strconv.Itoa(res.Failed),
			"sample", strconv.Itoa(res.Sample),
			"max", strconv.Itoa(res.Max),
			"utc", domain.ISOTime(now),
		),
	))

	w.reply(ctx, chatID, domain.Lines(
		domain.Bold(w.localizer.MustLocalize(locale.NoticeSentTitle)),
		"",
		localized(w.localizer, locale.NoticeSentLabel)+" "+domain.Pre(strconv.Itoa(res.Sent)),
		localized(w.localizer, locale.NoticeFailedLabel)+" "+domain.Pre(strconv.Itoa(res.Failed)),
		"",
		utcLine(w.localizer, now),
	))
	return nil
}

func (w *AdminWizard) handleTitle(ctx context.Context, chatID int64, state *domain.CreateGiveawayWizard, text string) error {
	if !domain.ValidTitle(text) {
		msg := w.localizer.MustLocalizeWithTemplate(locale.WizardTitleTooShort, strconv.Itoa(domain.MinTitleLength))
		return w.reject(ctx, chatID, state, domain.EscapeHTML(msg))
	}

	next := &domain.CreateGiveawayWizard{
		Step:       domain.StepDetails,
		GiveawayID: state.GiveawayID,
		Title:      text,
	}
	if err := w.store.Set(ctx, chatID, next); err != nil {
		w.reply(ctx, chatID, localized(w.localizer, locale.WizardSaveFailed))
		return err
	}

	w.reply(ctx, chatID, domain.Lines(
		domain.Bold(w.localizer.MustLocalize(locale.WizardCreateStep2Title)),
		"",
		localized(w.localizer, locale.WizardCreateDetailsPrompt),
		"",
		utcLine(w.localizer, w.now()),
	))
	return nil
}

func (w *AdminWizard) handleDetails(ctx context.Context, chatID int64, userID int64, state *domain.CreateGiveawayWizard, text string) error {
	if text == "" {
		return w.reject(ctx, chatID, state, localized(w.localizer, locale.WizardDetailsEmpty))
	}

	now := w.now()
	g := &domain.Giveaway{
		ID:        state.GiveawayID,
		State:     domain.GiveawayStateDraft,
		Title:     state.Title,
		Details:   text,
		CreatedBy: userID,
		CreatedAt: now,
	}
	if err := w.giveaways.CreateDraft(ctx, g); err != nil {
		return err
	}

	if err := w.store.Delete(ctx, chatID); err != nil {
		return err
	}

	w.reply(ctx, chatID, domain.Lines(
		domain.Bold(w.localizer.MustLocalize(locale.GiveawayCreatedTitle)),
		"",
		localized(w.localizer, locale.GiveawayIDShortLabel)+" "+domain.Pre(g.ID),
		"",
		domain.Bold(w.localizer.MustLocalize(locale.GiveawayTitleLabel)),
		domain.Blockquote(g.Title),
		domain.Bold(w.localizer.MustLocalize(locale.GiveawayDetailsLabel)),
		domain.Blockquote(g.Details),
		"",
		localized(w.localizer, locale.GiveawayCreatedNext),
		"",
		utcLine(w.localizer, now),
	))

	w.adminLog(ctx, domain.Lines(
		domain.Bold(w.localizer.MustLocalize(locale.GiveawayDraftLogTitle)),
		"",
		kvBlock("gid", g.ID, "by", strconv.FormatInt(userID, 10), "utc", domain.ISOTime(now)),
	))
	return nil
}

// reject re-prompts after invalid input. With a configured cap the wizard is
// aborted on the N-th consecutive invalid input; without one the state is left untouched.
func (w *AdminWizard) reject(ctx context.Context, chatID int64, state domain.WizardState, prompt string) error {
	maxAttempts := w.config.WizardMaxAttempts
	if maxAttempts > 0 {
		attempts := state.InvalidAttempts() + 1
		if attempts >= maxAttempts {
			if err := w.store.Delete(ctx, chatID); err != nil {
				return err
			}
			w.logger.Warn("wizard aborted after invalid input", "chat_id", chatID, "type", state.Kind(), "attempts", attempts)
			w.reply(ctx, chatID, localized(w.localizer, locale.WizardTooManyInvalid))
			return nil
		}

		state.SetInvalidAttempts(attempts)
		if err := w.store.Set(ctx, chatID, state); err != nil {
			return err
		}
	}

	w.logger.Debug("wizard input rejected", "chat_id", chatID, "type", state.Kind())
	w.reply(ctx, chatID, prompt)
	return nil
}

func (w *AdminWizard) failCorrupt(ctx context.Context, chatID int64, state domain.WizardState) error {
	fields := []interface{}{"chat_id", chatID, "type", state.Kind()}
	if c, ok := state.(*domain.CorruptWizard); ok {
		fields = append(fields, "raw_type", c.RawKind, "raw_step", c.RawStep)
	}
	w.logger.Warn("clearing corrupt wizard state", fields...)

	if err := w.store.Delete(ctx, chatID); err != nil {
		return err
	}
	w.reply(ctx, chatID, localized(w.localizer, locale.WizardInvalidState))
	return nil
}

// reply delivery failures are logged and never abort the transition
func (w *AdminWizard) reply(ctx context.Context, chatID int64, html string) {
	if _, err := sendHTML(ctx, w.bot, w.logger, chatID, html, nil); err != nil {
		w.logger.Error("failed to send wizard reply", "chat_id", chatID, "error", err)
	}
}

func (w *AdminWizard) adminLog(ctx context.Context, html string) {
	safeSendHTML(ctx, w.bot, w.logger, w.config.AdminLogChatID, html)
}
