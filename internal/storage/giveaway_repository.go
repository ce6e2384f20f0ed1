package storage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/domain"

	"github.com/redis/go-redis/v9"
)

// meta hash fields
const (
	fieldGID       = "gid"
	fieldState     = "state"
	fieldTitle     = "title"
	fieldDetails   = "details"
	fieldCreatedAt = "createdAt"
	fieldCreatedBy = "createdBy"
)

const isoLayout = "2006-01-02T15:04:05.000Z"

// GiveawayRepository stores giveaway records and their indexes
type GiveawayRepository struct {
	client *redis.Client
	logger domain.Logger
}

// NewGiveawayRepository creates a new giveaway repository
func NewGiveawayRepository(client *redis.Client, log domain.Logger) *GiveawayRepository {
	return &GiveawayRepository{client: client, logger: log}
}

// CreateDraft writes the record and indexes it in one MULTI/EXEC block
func (r *GiveawayRepository) CreateDraft(ctx context.Context, g *domain.Giveaway) error {
	if g.State == "" {
		g.State = domain.GiveawayStateDraft
	}
	if err := g.Validate(); err != nil {
		return err
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, GiveawayMetaKey(g.ID), map[string]interface{}{
			fieldGID:       g.ID,
			fieldState:     string(g.State),
			fieldTitle:     g.Title,
			fieldDetails:   g.Details,
			fieldCreatedAt: domain.ISOTime(g.CreatedAt),
			fieldCreatedBy: strconv.FormatInt(g.CreatedBy, 10),
		})
		pipe.ZAdd(ctx, GiveawaysAllKey, redis.Z{
			Score:  float64(g.CreatedAt.UnixMilli()),
			Member: g.ID,
		})
		pipe.SAdd(ctx, GiveawaysDraftKey, g.ID)
		return nil
	})
	if err != nil {
		r.logger.Error("failed to create giveaway draft", "gid", g.ID, "error", err)
		return fmt.Errorf("failed to create giveaway %s: %w", g.ID, err)
	}

	r.logger.Info("giveaway draft created", "gid", g.ID, "created_by", g.CreatedBy)
	return nil
}

// GetGiveaway loads one record; ErrGiveawayNotFound when the hash is absent
func (r *GiveawayRepository) GetGiveaway(ctx context.Context, id string) (*domain.Giveaway, error) {
	fields, err := r.client.HGetAll(ctx, GiveawayMetaKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, domain.ErrGiveawayNotFound
	}

	g := &domain.Giveaway{
		ID:      fields[fieldGID],
		State:   domain.GiveawayState(fields[fieldState]),
		Title:   fields[fieldTitle],
		Details: fields[fieldDetails],
	}
	if g.ID == "" {
		g.ID = id
	}
	if v := fields[fieldCreatedBy]; v != "" {
		if g.CreatedBy, err = strconv.ParseInt(v, 10, 64); err != nil {
			r.logger.Warn("malformed giveaway creator", "gid", id, "value", v)
		}
	}
	if v := fields[fieldCreatedAt]; v != "" {
		if g.CreatedAt, err = time.Parse(isoLayout, v); err != nil {
			r.logger.Warn("malformed giveaway timestamp", "gid", id, "value", v)
		}
	}
	return g, nil
}

// ListActive returns active giveaway IDs sorted ascending
func (r *GiveawayRepository) ListActive(ctx context.Context) ([]string, error) {
	return r.sortedMembers(ctx, GiveawaysActiveKey)
}

// ListDrafts returns draft giveaway IDs sorted ascending
func (r *GiveawayRepository) ListDrafts(ctx context.Context) ([]string, error) {
	return r.sortedMembers(ctx, GiveawaysDraftKey)
}

// ListAll returns up to limit giveaway IDs, newest first
func (r *GiveawayRepository) ListAll(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	return r.client.ZRevRange(ctx, GiveawaysAllKey, 0, int64(limit-1)).Result()
}

func (r *GiveawayRepository) sortedMembers(ctx context.Context, key string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
