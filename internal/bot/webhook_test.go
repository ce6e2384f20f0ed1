package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ad/telegram-giveaway-bot/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUpdateHandler struct {
	err      error
	panicMsg string
	updates  []*models.Update
	reported []error
}

func (s *stubUpdateHandler) HandleUpdate(ctx context.Context, update *models.Update) error {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	s.updates = append(s.updates, update)
	return s.err
}

func (s *stubUpdateHandler) ReportError(ctx context.Context, err error) {
	s.reported = append(s.reported, err)
}

func newTestWebhook(secret string, h UpdateHandler, health HealthCheck) *WebhookServer {
	cfg := &config.Config{WebhookPath: "/api/bot", WebhookSecret: secret}
	return NewWebhookServer(cfg, h, health, &mockLogger{})
}

func doRequest(s *WebhookServer, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

const pingUpdate = `{"update_id":1,"message":{"message_id":1,"date":0,"chat":{"id":5,"type":"private"},"from":{"id":5,"is_bot":false,"first_name":"A"},"text":"/ping"}}`

func TestWebhook_NonPostIsAcknowledged(t *testing.T) {
	h := &stubUpdateHandler{}
	s := newTestWebhook("", h, nil)

	w := doRequest(s, http.MethodGet, "/api/bot", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Empty(t, h.updates)
}

func TestWebhook_DispatchesUpdate(t *testing.T) {
	h := &stubUpdateHandler{}
	s := newTestWebhook("", h, nil)

	w := doRequest(s, http.MethodPost, "/api/bot", pingUpdate, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["ok"])
	require.Len(t, h.updates, 1)
	assert.Equal(t, "/ping", h.updates[0].Message.Text)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestWebhook_ReusesRequestID(t *testing.T) {
	s := newTestWebhook("", &stubUpdateHandler{}, nil)

	w := doRequest(s, http.MethodPost, "/api/bot", pingUpdate, map[string]string{requestIDHeader: "req-1"})
	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
}

func TestWebhook_MalformedBody(t *testing.T) {
	h := &stubUpdateHandler{}
	s := newTestWebhook("", h, nil)

	w := doRequest(s, http.MethodPost, "/api/bot", "{not json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["ok"])
	assert.Empty(t, h.updates)
}

func TestWebhook_HandlerErrorIsReportedWith200(t *testing.T) {
	h := &stubUpdateHandler{err: errors.New("redis down")}
	s := newTestWebhook("", h, nil)

	w := doRequest(s, http.MethodPost, "/api/bot", pingUpdate, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "redis down", body["error"])
	require.Len(t, h.reported, 1)
	assert.EqualError(t, h.reported[0], "redis down")
}

func TestWebhook_PanicIsRecoveredWith200(t *testing.T) {
	h := &stubUpdateHandler{panicMsg: "boom"}
	s := newTestWebhook("", h, nil)

	w := doRequest(s, http.MethodPost, "/api/bot", pingUpdate, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "panic: boom", body["error"])
	require.Len(t, h.reported, 1)
}

func TestWebhook_SecretToken(t *testing.T) {
	h := &stubUpdateHandler{}
	s := newTestWebhook("s3cret", h, nil)

	w := doRequest(s, http.MethodPost, "/api/bot", pingUpdate, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unauthorized", decodeBody(t, w)["error"])

	w = doRequest(s, http.MethodPost, "/api/bot", pingUpdate, map[string]string{secretTokenHeader: "wrong"})
	assert.Equal(t, "unauthorized", decodeBody(t, w)["error"])
	assert.Empty(t, h.updates)

	w = doRequest(s, http.MethodPost, "/api/bot", pingUpdate, map[string]string{secretTokenHeader: "s3cret"})
	assert.Equal(t, true, decodeBody(t, w)["ok"])
	assert.Len(t, h.updates, 1)
}

func TestWebhook_Health(t *testing.T) {
	s := newTestWebhook("", &stubUpdateHandler{}, func(ctx context.Context) error { return nil })
	w := doRequest(s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])

	s = newTestWebhook("", &stubUpdateHandler{}, func(ctx context.Context) error { return errors.New("ping failed") })
	w = doRequest(s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "ping failed", decodeBody(t, w)["error"])
}

func TestWebhook_EndToEndWithHandler(t *testing.T) {
	env := newTestEnv(t)
	s := NewWebhookServer(env.cfg, env.handler, nil, &mockLogger{})

	w := doRequest(s, http.MethodPost, "/api/bot", pingUpdate, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", env.tg.lastTo(5))
}

func TestWebhook_EndToEndFailureReachesAdminLog(t *testing.T) {
	env := newTestEnv(t)
	s := NewWebhookServer(env.cfg, env.handler, nil, &mockLogger{})
	env.mr.SetError("ERR simulated outage")
	defer env.mr.SetError("")

	start := `{"update_id":2,"message":{"message_id":1,"date":0,"chat":{"id":5,"type":"private"},"from":{"id":5,"is_bot":false,"first_name":"A"},"text":"/start"}}`
	w := doRequest(s, http.MethodPost, "/api/bot", start, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["ok"])

	logs := env.tg.messagesTo(testAdminLogChat)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].text, "Bot Error")
}
