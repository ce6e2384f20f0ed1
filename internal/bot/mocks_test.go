package bot

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/ad/telegram-giveaway-bot/internal/config"
	"github.com/ad/telegram-giveaway-bot/internal/domain"
	"github.com/ad/telegram-giveaway-bot/internal/locale"
	"github.com/ad/telegram-giveaway-bot/internal/logger"
	"github.com/ad/telegram-giveaway-bot/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...interface{}) {}
func (m *mockLogger) Info(msg string, args ...interface{})  {}
func (m *mockLogger) Warn(msg string, args ...interface{})  {}
func (m *mockLogger) Error(msg string, args ...interface{}) {}

var errBlocked = errors.New("Forbidden: bot was blocked by the user")

type sentMessage struct {
	chatID int64
	text   string
	markup models.ReplyMarkup
}

// mockTelegram records outgoing calls
type mockTelegram struct {
	mu        sync.Mutex
	sent      []sentMessage
	edits     []sentMessage
	answers   []string
	failFor   map[int64]bool
	editErr   error
	sendErrFn func(call int) error
	sendCalls int
}

func newMockTelegram() *mockTelegram {
	return &mockTelegram{failFor: make(map[int64]bool)}
}

func (m *mockTelegram) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sendCalls++
	chatID, _ := params.ChatID.(int64)
	if m.sendErrFn != nil {
		if err := m.sendErrFn(m.sendCalls); err != nil {
			return nil, err
		}
	}
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: params.Text, markup: params.ReplyMarkup})
	if m.failFor[chatID] {
		return nil, errBlocked
	}
	return &models.Message{ID: len(m.sent), Chat: models.Chat{ID: chatID}}, nil
}

func (m *mockTelegram) EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.editErr != nil {
		return nil, m.editErr
	}
	chatID, _ := params.ChatID.(int64)
	m.edits = append(m.edits, sentMessage{chatID: chatID, text: params.Text, markup: params.ReplyMarkup})
	return &models.Message{ID: params.MessageID, Chat: models.Chat{ID: chatID}}, nil
}

func (m *mockTelegram) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, params.CallbackQueryID)
	return true, nil
}

func (m *mockTelegram) messagesTo(chatID int64) []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentMessage
	for _, s := range m.sent {
		if s.chatID == chatID {
			out = append(out, s)
		}
	}
	return out
}

// lastTo returns the text of the latest message sent to chatID
func (m *mockTelegram) lastTo(chatID int64) string {
	msgs := m.messagesTo(chatID)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].text
}

func (m *mockTelegram) lastEdit() sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.edits) == 0 {
		return sentMessage{}
	}
	return m.edits[len(m.edits)-1]
}

func (m *mockTelegram) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

const (
	testOwnerID      int64 = 1000
	testStartLogChat int64 = -100
	testSupportChat  int64 = -200
	testAdminLogChat int64 = -300
)

type testEnv struct {
	mr        *miniredis.Miniredis
	client    *redis.Client
	tg        *mockTelegram
	cfg       *config.Config
	users     *storage.UserRepository
	admins    *storage.AdminRepository
	giveaways *storage.GiveawayRepository
	store     *storage.WizardStorage
	wizard    *AdminWizard
	handler   *BotHandler
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		OwnerID:           testOwnerID,
		StartLogChannelID: testStartLogChat,
		SupportChannelID:  testSupportChat,
		AdminLogChatID:    testAdminLogChat,
		WebhookPath:       "/api/bot",
		WizardTTL:         storage.DefaultWizardTTL,
		BroadcastMax:      domain.DefaultBroadcastMax,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	log := logger.NewWithWriter(logger.ERROR, io.Discard)
	l, err := locale.NewLocalizer(locale.NewLocale(locale.En))
	require.NoError(t, err)
	tg := newMockTelegram()

	users := storage.NewUserRepository(client, log)
	admins := storage.NewAdminRepository(client, log)
	giveaways := storage.NewGiveawayRepository(client, log)
	store := storage.NewWizardStorage(client, cfg.WizardTTL, log)

	roles := domain.NewRoleAuthority(cfg.OwnerID, admins, tg, l, log)
	broadcaster := domain.NewBroadcaster(users, tg, l, log, cfg.BroadcastMax)
	wizard := NewAdminWizard(store, admins, giveaways, broadcaster, tg, cfg, l, log)
	handler := NewBotHandler(tg, users, admins, giveaways, roles, wizard, cfg, l, log)

	return &testEnv{
		mr:        mr,
		client:    client,
		tg:        tg,
		cfg:       cfg,
		users:     users,
		admins:    admins,
		giveaways: giveaways,
		store:     store,
		wizard:    wizard,
		handler:   handler,
	}
}

func textUpdate(chatID, userID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Chat: models.Chat{ID: chatID, Type: models.ChatTypePrivate},
			From: &models.User{ID: userID, FirstName: "Test", Username: "tester"},
			Text: text,
		},
	}
}

func callbackUpdate(chatID, userID int64, data string) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-" + data,
			From: models.User{ID: userID, FirstName: "Test"},
			Message: models.MaybeInaccessibleMessage{
				Type:    models.MaybeInaccessibleMessageTypeMessage,
				Message: &models.Message{ID: 77, Chat: models.Chat{ID: chatID}},
			},
			Data: data,
		},
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
