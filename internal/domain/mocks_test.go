package domain

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...interface{}) {}
func (m *mockLogger) Info(msg string, args ...interface{})  {}
func (m *mockLogger) Warn(msg string, args ...interface{})  {}
func (m *mockLogger) Error(msg string, args ...interface{}) {}

var errDelivery = errors.New("Forbidden: bot was blocked by the user")

// mockSender records messages and fails for chats listed in failFor
type mockSender struct {
	mu      sync.Mutex
	sent    []*bot.SendMessageParams
	failFor map[int64]bool
}

func newMockSender() *mockSender {
	return &mockSender{failFor: make(map[int64]bool)}
}

func (m *mockSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, params)
	if id, ok := params.ChatID.(int64); ok && m.failFor[id] {
		return nil, errDelivery
	}
	return &models.Message{ID: len(m.sent)}, nil
}

func (m *mockSender) messagesTo(chatID int64) []*bot.SendMessageParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*bot.SendMessageParams
	for _, p := range m.sent {
		if id, ok := p.ChatID.(int64); ok && id == chatID {
			out = append(out, p)
		}
	}
	return out
}

type mockAdminRepo struct {
	admins map[int64]bool
	err    error
}

func newMockAdminRepo(ids ...int64) *mockAdminRepo {
	r := &mockAdminRepo{admins: make(map[int64]bool)}
	for _, id := range ids {
		r.admins[id] = true
	}
	return r
}

func (m *mockAdminRepo) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.admins[userID], nil
}

func (m *mockAdminRepo) AddAdmin(ctx context.Context, userID int64) (bool, error) {
	added := !m.admins[userID]
	m.admins[userID] = true
	return added, m.err
}

func (m *mockAdminRepo) RemoveAdmin(ctx context.Context, userID int64) (bool, error) {
	removed := m.admins[userID]
	delete(m.admins, userID)
	return removed, m.err
}

func (m *mockAdminRepo) ListAdmins(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(m.admins))
	for id := range m.admins {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, m.err
}

// mockUserRepo keeps users in start order
type mockUserRepo struct {
	order []int64
	seen  map[int64]bool
	err   error
}

func newMockUserRepo(n int) *mockUserRepo {
	r := &mockUserRepo{seen: make(map[int64]bool)}
	for i := 1; i <= n; i++ {
		_, _ = r.MarkStarted(context.Background(), int64(i), time.Time{})
	}
	return r
}

func (m *mockUserRepo) MarkStarted(ctx context.Context, userID int64, at time.Time) (bool, error) {
	if m.seen[userID] {
		return false, nil
	}
	m.seen[userID] = true
	m.order = append(m.order, userID)
	return true, nil
}

func (m *mockUserRepo) EarliestStarted(ctx context.Context, limit int) ([]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > len(m.order) {
		limit = len(m.order)
	}
	return append([]int64(nil), m.order[:limit]...), nil
}

func (m *mockUserRepo) CountStarted(ctx context.Context) (int64, error) {
	return int64(len(m.order)), m.err
}

func testLocalizer() locale.Localizer {
	l, err := locale.NewLocalizer(locale.NewLocale(locale.En))
	if err != nil {
		panic(err)
	}
	return l
}
