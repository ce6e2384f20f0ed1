package bot

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/config"
	"github.com/ad/telegram-giveaway-bot/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

const (
	secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
	requestIDHeader   = "X-Request-ID"
	requestIDKey      = "request_id"
	healthTimeout     = 2 * time.Second
)

var errUnauthorized = errors.New("unauthorized")

// UpdateHandler processes one decoded update
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *models.Update) error
	ReportError(ctx context.Context, err error)
}

// HealthCheck probes a dependency
type HealthCheck func(ctx context.Context) error

// WebhookServer receives updates over HTTP. Every delivery is acknowledged
// with 200 so the platform never redelivers.
type WebhookServer struct {
	engine  *gin.Engine
	handler UpdateHandler
	health  HealthCheck
	secret  string
	logger  domain.Logger
}

// NewWebhookServer builds the gin engine serving the webhook and health routes
func NewWebhookServer(cfg *config.Config, handler UpdateHandler, health HealthCheck, logger domain.Logger) *WebhookServer {
	s := &WebhookServer{
		engine:  gin.New(),
		handler: handler,
		health:  health,
		secret:  cfg.WebhookSecret,
		logger:  logger,
	}

	s.engine.Use(requestID(), s.requestLogger(), gin.CustomRecovery(s.recoverPanic))
	s.engine.Any(cfg.WebhookPath, s.handleWebhook)
	s.engine.GET("/health", s.handleHealth)

	return s
}

// Handler exposes the engine for http.Server
func (s *WebhookServer) Handler() http.Handler {
	return s.engine
}

func (s *WebhookServer) handleWebhook(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.String(http.StatusOK, "OK")
		return
	}

	if s.secret != "" {
		got := c.GetHeader(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) != 1 {
			s.logger.Warn("rejected webhook with bad secret", "request_id", c.GetString(requestIDKey))
			s.fail(c, errUnauthorized)
			return
		}
	}

	var update models.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.logger.Warn("failed to decode update", "request_id", c.GetString(requestIDKey), "error", err)
		s.fail(c, err)
		return
	}

	if err := s.handler.HandleUpdate(c.Request.Context(), &update); err != nil {
		s.logger.Error("update handling failed",
			"request_id", c.GetString(requestIDKey),
			"update_id", update.ID,
			"error", err,
		)
		s.handler.ReportError(c.Request.Context(), err)
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *WebhookServer) handleHealth(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := s.health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
}

func (s *WebhookServer) recoverPanic(c *gin.Context, recovered interface{}) {
	err := fmt.Errorf("panic: %v", recovered)
	s.logger.Error("panic recovered",
		"request_id", c.GetString(requestIDKey),
		"path", c.Request.URL.Path,
		"error", err,
	)
	s.handler.ReportError(c.Request.Context(), err)
	s.fail(c, err)
}

func (s *WebhookServer) fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
}

// requestID tags each request, reusing an incoming X-Request-ID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *WebhookServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request processed",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}
