package storage

import (
	"context"
	"sort"
	"strconv"

	"github.com/ad/telegram-giveaway-bot/internal/domain"

	"github.com/redis/go-redis/v9"
)

// AdminRepository stores the dynamic admin set
type AdminRepository struct {
	client *redis.Client
	logger domain.Logger
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(client *redis.Client, log domain.Logger) *AdminRepository {
	return &AdminRepository{client: client, logger: log}
}

func (r *AdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return r.client.SIsMember(ctx, AdminsSetKey, strconv.FormatInt(userID, 10)).Result()
}

// AddAdmin reports whether the user was not an admin before
func (r *AdminRepository) AddAdmin(ctx context.Context, userID int64) (bool, error) {
	n, err := r.client.SAdd(ctx, AdminsSetKey, strconv.FormatInt(userID, 10)).Result()
	if err != nil {
		r.logger.Error("failed to add admin", "user_id", userID, "error", err)
		return false, err
	}
	r.logger.Info("admin added", "user_id", userID, "new", n == 1)
	return n == 1, nil
}

// RemoveAdmin reports whether the user was an admin before
func (r *AdminRepository) RemoveAdmin(ctx context.Context, userID int64) (bool, error) {
	n, err := r.client.SRem(ctx, AdminsSetKey, strconv.FormatInt(userID, 10)).Result()
	if err != nil {
		r.logger.Error("failed to remove admin", "user_id", userID, "error", err)
		return false, err
	}
	r.logger.Info("admin removed", "user_id", userID, "existed", n == 1)
	return n == 1, nil
}

// ListAdmins returns admin IDs in ascending order
func (r *AdminRepository) ListAdmins(ctx context.Context) ([]int64, error) {
	members, err := r.client.SMembers(ctx, AdminsSetKey).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			r.logger.Warn("skipping malformed admin id", "member", m)
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
