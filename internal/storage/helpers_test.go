package storage

import (
	"io"
	"testing"

	"github.com/ad/telegram-giveaway-bot/internal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(logger.ERROR, io.Discard)
}
