package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmptyRedisURL is returned when no connection URL is configured
var ErrEmptyRedisURL = errors.New("empty redis url")

const (
	redisMaxRetries      = 3
	redisMinRetryBackoff = 100 * time.Millisecond
	redisMaxRetryBackoff = 300 * time.Millisecond
	upstashTLSPort       = "6379"
)

// OpenRedis creates a client from a redis://, rediss:// or Upstash https:// URL
// and pings it to validate the connection. A non-empty token is used as the password.
func OpenRedis(ctx context.Context, rawURL, token string) (*redis.Client, error) {
	opts, err := ParseRedisURL(rawURL, token)
	if err != nil {
		return nil, err
	}

	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return c, nil
}

// ParseRedisURL builds client options. Upstash REST URLs are mapped to the
// TLS endpoint of the same database.
func ParseRedisURL(rawURL, token string) (*redis.Options, error) {
	if rawURL == "" {
		return nil, ErrEmptyRedisURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		host := u.Hostname()
		port := u.Port()
		if port == "" || port == "443" || port == "80" {
			port = upstashTLSPort
		}
		u = &url.URL{Scheme: "rediss", User: url.User("default"), Host: net.JoinHostPort(host, port)}
	}

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if token != "" {
		opts.Password = token
	}

	// transient errors (LOADING, TRYAGAIN, network) are retried by the client
	opts.MaxRetries = redisMaxRetries
	opts.MinRetryBackoff = redisMinRetryBackoff
	opts.MaxRetryBackoff = redisMaxRetryBackoff

	return opts, nil
}
