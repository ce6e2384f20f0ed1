package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/domain"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound is returned when a chat has no wizard in progress
	ErrSessionNotFound = errors.New("session not found")
)

// DefaultWizardTTL bounds how long an abandoned wizard survives
const DefaultWizardTTL = 30 * time.Minute

// WizardStorage persists one wizard per chat with a sliding expiry
type WizardStorage struct {
	client *redis.Client
	ttl    time.Duration
	logger domain.Logger
}

// NewWizardStorage creates a new wizard storage; ttl <= 0 selects DefaultWizardTTL
func NewWizardStorage(client *redis.Client, ttl time.Duration, log domain.Logger) *WizardStorage {
	if ttl <= 0 {
		ttl = DefaultWizardTTL
	}
	return &WizardStorage{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

// Get retrieves the wizard of a chat. Unparseable blobs are deleted and reported as absent.
func (s *WizardStorage) Get(ctx context.Context, chatID int64) (domain.WizardState, error) {
	raw, err := s.client.Get(ctx, AdminWizardKey(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("failed to get wizard", "chat_id", chatID, "error", err)
		return nil, err
	}

	w, err := domain.DecodeWizard(raw)
	if err != nil {
		s.logger.Warn("dropping malformed wizard", "chat_id", chatID, "error", err)
		if delErr := s.Delete(ctx, chatID); delErr != nil {
			return nil, delErr
		}
		return nil, ErrSessionNotFound
	}

	s.logger.Debug("wizard retrieved", "chat_id", chatID, "type", w.Kind())
	return w, nil
}

// Set stores the wizard and resets its expiry
func (s *WizardStorage) Set(ctx context.Context, chatID int64, w domain.WizardState) error {
	raw, err := domain.EncodeWizard(w)
	if err != nil {
		s.logger.Error("failed to encode wizard", "chat_id", chatID, "error", err)
		return err
	}

	if err := s.client.Set(ctx, AdminWizardKey(chatID), raw, s.ttl).Err(); err != nil {
		s.logger.Error("failed to set wizard", "chat_id", chatID, "type", w.Kind(), "error", err)
		return err
	}

	s.logger.Debug("wizard stored", "chat_id", chatID, "type", w.Kind())
	return nil
}

// Start replaces any wizard in progress with w
func (s *WizardStorage) Start(ctx context.Context, chatID int64, w domain.WizardState) error {
	prev, err := s.client.Get(ctx, AdminWizardKey(chatID)).Bytes()
	switch {
	case err == nil:
		kind := "unknown"
		if old, decodeErr := domain.DecodeWizard(prev); decodeErr == nil {
			kind = string(old.Kind())
		}
		s.logger.Warn("replacing wizard in progress", "chat_id", chatID, "previous", kind, "next", w.Kind())
	case !errors.Is(err, redis.Nil):
		s.logger.Error("failed to read wizard before start", "chat_id", chatID, "error", err)
		return err
	}

	return s.Set(ctx, chatID, w)
}

// Delete removes the wizard of a chat; deleting a missing wizard is not an error
func (s *WizardStorage) Delete(ctx context.Context, chatID int64) error {
	n, err := s.client.Del(ctx, AdminWizardKey(chatID)).Result()
	if err != nil {
		s.logger.Error("failed to delete wizard", "chat_id", chatID, "error", err)
		return err
	}

	if n == 0 {
		s.logger.Debug("wizard not found for deletion", "chat_id", chatID)
	} else {
		s.logger.Debug("wizard deleted", "chat_id", chatID)
	}
	return nil
}
