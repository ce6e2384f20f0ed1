package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/domain"

	"github.com/redis/go-redis/v9"
)

// UserRepository tracks started users in a set and a first-seen sorted set
type UserRepository struct {
	client *redis.Client
	logger domain.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(client *redis.Client, log domain.Logger) *UserRepository {
	return &UserRepository{client: client, logger: log}
}

// MarkStarted records a /start. The first-seen score is never overwritten.
func (r *UserRepository) MarkStarted(ctx context.Context, userID int64, at time.Time) (bool, error) {
	member := strconv.FormatInt(userID, 10)

	added, err := r.client.SAdd(ctx, UsersStartedSetKey, member).Result()
	if err != nil {
		r.logger.Error("failed to add started user", "user_id", userID, "error", err)
		return false, err
	}

	err = r.client.ZAddNX(ctx, UsersStartedZKey, redis.Z{
		Score:  float64(at.UnixMilli()),
		Member: member,
	}).Err()
	if err != nil {
		r.logger.Error("failed to index started user", "user_id", userID, "error", err)
		return false, err
	}

	if added == 1 {
		r.logger.Debug("user started for the first time", "user_id", userID)
	}
	return added == 1, nil
}

// EarliestStarted returns up to limit user IDs ordered by first start
func (r *UserRepository) EarliestStarted(ctx context.Context, limit int) ([]int64, error) {
	if limit <= 0 {
		return []int64{}, nil
	}

	members, err := r.client.ZRange(ctx, UsersStartedZKey, 0, int64(limit-1)).Result()
	if err != nil {
		r.logger.Error("failed to read started users", "error", err)
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			r.logger.Warn("skipping malformed started user", "member", m)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CountStarted returns the number of distinct users that sent /start
func (r *UserRepository) CountStarted(ctx context.Context) (int64, error) {
	return r.client.SCard(ctx, UsersStartedSetKey).Result()
}
